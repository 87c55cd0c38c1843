package handlers

import (
	"hospital-gin/internal/apperr"
	"hospital-gin/internal/database"
	"hospital-gin/internal/models"

	"github.com/gin-gonic/gin"
)

type AppointmentRequest struct {
	PatientID       int    `json:"patient_id" form:"patient_id" binding:"required,gt=0"`
	DoctorID        int    `json:"doctor_id" form:"doctor_id" binding:"required,gt=0"`
	AppointmentDate string `json:"appointment_date" form:"appointment_date" binding:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointment_time" form:"appointment_time" binding:"required,datetime=15:04"`
	Status          string `json:"status" form:"status" binding:"omitempty,appointment_status"`
	Reason          string `json:"reason" form:"reason" binding:"required,max=500"`
	Notes           string `json:"notes" form:"notes" binding:"omitempty,max=1000"`
}

type MedicalRecordRequest struct {
	PatientID int    `json:"patient_id" form:"patient_id" binding:"required,gt=0"`
	DoctorID  int    `json:"doctor_id" form:"doctor_id" binding:"required,gt=0"`
	VisitDate string `json:"visit_date" form:"visit_date" binding:"required,datetime=2006-01-02"`
	Diagnosis string `json:"diagnosis" form:"diagnosis" binding:"required,max=500"`
	Treatment string `json:"treatment" form:"treatment" binding:"omitempty,max=1000"`
	Notes     string `json:"notes" form:"notes" binding:"omitempty,max=1000"`
}

type PrescriptionRequest struct {
	PatientID    int    `json:"patient_id" form:"patient_id" binding:"required,gt=0"`
	DoctorID     int    `json:"doctor_id" form:"doctor_id" binding:"required,gt=0"`
	MedicationID int    `json:"medication_id" form:"medication_id" binding:"required,gt=0"`
	Dosage       string `json:"dosage" form:"dosage" binding:"required,max=100"`
	Frequency    string `json:"frequency" form:"frequency" binding:"required,max=100"`
	Duration     string `json:"duration" form:"duration" binding:"required,max=100"`
	Instructions string `json:"instructions" form:"instructions" binding:"omitempty,max=500"`
}

// ownClinical restricts patients and doctors to rows naming their own record.
func ownClinical(v viewer, patientID, doctorID int) bool {
	switch v.role {
	case models.RolePatient:
		return v.patientID != 0 && patientID == v.patientID
	case models.RoleDoctor:
		return v.doctorID != 0 && doctorID == v.doctorID
	default:
		return true
	}
}

// doctorOwnsRow keeps a doctor's writes on rows naming their own record.
func doctorOwnsRow(v viewer, doctorID int) error {
	if v.role == models.RoleDoctor && (v.doctorID == 0 || doctorID != v.doctorID) {
		return apperr.Forbidden("You can only manage your own records")
	}
	return nil
}

var appointmentRecords = recordSpec[models.Appointment, AppointmentRequest]{
	collection: database.Appointments,
	noun:       "Appointment",
	visible: func(v viewer, a models.Appointment) bool {
		return ownClinical(v, a.PatientID, a.DoctorID)
	},
	refs: func(req *AppointmentRequest) []reference {
		return []reference{
			{field: "patient_id", collection: database.Patients, id: req.PatientID},
			{field: "doctor_id", collection: database.Doctors, id: req.DoctorID},
		}
	},
	authorize: func(v viewer, req *AppointmentRequest) error {
		if v.role == models.RolePatient && (v.patientID == 0 || req.PatientID != v.patientID) {
			return apperr.Forbidden("You can only book appointments for yourself")
		}
		return doctorOwnsRow(v, req.DoctorID)
	},
	create: func(req *AppointmentRequest, id int, now string) models.Appointment {
		a := models.Appointment{ID: id, CreatedAt: now}
		req.applyTo(&a)
		return a
	},
	update: func(a models.Appointment, req *AppointmentRequest, now string) models.Appointment {
		req.applyTo(&a)
		a.UpdateTime = now
		return a
	},
}

func (req *AppointmentRequest) applyTo(a *models.Appointment) {
	a.PatientID = req.PatientID
	a.DoctorID = req.DoctorID
	a.AppointmentDate = req.AppointmentDate
	a.AppointmentTime = req.AppointmentTime
	a.Status = req.Status
	if a.Status == "" {
		a.Status = models.StatusScheduled
	}
	a.Reason = req.Reason
	a.Notes = req.Notes
}

var medicalRecordRecords = recordSpec[models.MedicalRecord, MedicalRecordRequest]{
	collection: database.MedicalRecords,
	noun:       "Medical record",
	visible: func(v viewer, r models.MedicalRecord) bool {
		return ownClinical(v, r.PatientID, r.DoctorID)
	},
	refs: func(req *MedicalRecordRequest) []reference {
		return []reference{
			{field: "patient_id", collection: database.Patients, id: req.PatientID},
			{field: "doctor_id", collection: database.Doctors, id: req.DoctorID},
		}
	},
	authorize: func(v viewer, req *MedicalRecordRequest) error {
		return doctorOwnsRow(v, req.DoctorID)
	},
	create: func(req *MedicalRecordRequest, id int, now string) models.MedicalRecord {
		r := models.MedicalRecord{ID: id, CreatedAt: now}
		req.applyTo(&r)
		return r
	},
	update: func(r models.MedicalRecord, req *MedicalRecordRequest, now string) models.MedicalRecord {
		req.applyTo(&r)
		r.UpdateTime = now
		return r
	},
}

func (req *MedicalRecordRequest) applyTo(r *models.MedicalRecord) {
	r.PatientID = req.PatientID
	r.DoctorID = req.DoctorID
	r.VisitDate = req.VisitDate
	r.Diagnosis = req.Diagnosis
	r.Treatment = req.Treatment
	r.Notes = req.Notes
}

var prescriptionRecords = recordSpec[models.Prescription, PrescriptionRequest]{
	collection: database.Prescriptions,
	noun:       "Prescription",
	visible: func(v viewer, p models.Prescription) bool {
		return ownClinical(v, p.PatientID, p.DoctorID)
	},
	refs: func(req *PrescriptionRequest) []reference {
		return []reference{
			{field: "patient_id", collection: database.Patients, id: req.PatientID},
			{field: "doctor_id", collection: database.Doctors, id: req.DoctorID},
			{field: "medication_id", collection: database.Medications, id: req.MedicationID},
		}
	},
	authorize: func(v viewer, req *PrescriptionRequest) error {
		return doctorOwnsRow(v, req.DoctorID)
	},
	create: func(req *PrescriptionRequest, id int, now string) models.Prescription {
		p := models.Prescription{ID: id, CreatedAt: now}
		req.applyTo(&p)
		return p
	},
	update: func(p models.Prescription, req *PrescriptionRequest, now string) models.Prescription {
		req.applyTo(&p)
		p.UpdateTime = now
		return p
	},
}

func (req *PrescriptionRequest) applyTo(p *models.Prescription) {
	p.PatientID = req.PatientID
	p.DoctorID = req.DoctorID
	p.MedicationID = req.MedicationID
	p.Dosage = req.Dosage
	p.Frequency = req.Frequency
	p.Duration = req.Duration
	p.Instructions = req.Instructions
}

func (h *Handler) GetAllAppointments(c *gin.Context) { listRecords(h, c, appointmentRecords) }

func (h *Handler) GetAppointmentByID(c *gin.Context) { showRecord(h, c, appointmentRecords) }

func (h *Handler) InsertAppointment(c *gin.Context) { createRecord(h, c, appointmentRecords) }

func (h *Handler) UpdateAppointmentByID(c *gin.Context) { updateRecord(h, c, appointmentRecords) }

func (h *Handler) GetAllMedicalRecords(c *gin.Context) { listRecords(h, c, medicalRecordRecords) }

func (h *Handler) GetMedicalRecordByID(c *gin.Context) { showRecord(h, c, medicalRecordRecords) }

func (h *Handler) InsertMedicalRecord(c *gin.Context) { createRecord(h, c, medicalRecordRecords) }

func (h *Handler) UpdateMedicalRecordByID(c *gin.Context) { updateRecord(h, c, medicalRecordRecords) }

func (h *Handler) GetAllPrescriptions(c *gin.Context) { listRecords(h, c, prescriptionRecords) }

func (h *Handler) GetPrescriptionByID(c *gin.Context) { showRecord(h, c, prescriptionRecords) }

func (h *Handler) InsertPrescription(c *gin.Context) { createRecord(h, c, prescriptionRecords) }

func (h *Handler) UpdatePrescriptionByID(c *gin.Context) { updateRecord(h, c, prescriptionRecords) }
