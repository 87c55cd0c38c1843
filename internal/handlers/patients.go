package handlers

import (
	"hospital-gin/internal/database"
	"hospital-gin/internal/models"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type PatientRequest struct {
	UserID      int    `json:"user_id" form:"user_id" binding:"omitempty,gt=0"`
	FirstName   string `json:"first_name" form:"first_name" binding:"required,max=50"`
	LastName    string `json:"last_name" form:"last_name" binding:"required,max=50"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" form:"gender" binding:"required,gender"`
	Phone       string `json:"phone" form:"phone" binding:"required,phone"`
	Email       string `json:"email" form:"email" binding:"omitempty,email,max=100"`
	Address     string `json:"address" form:"address" binding:"omitempty,max=255"`
}

var patientRecords = recordSpec[models.Patient, PatientRequest]{
	collection: database.Patients,
	noun:       "Patient",
	visible: func(v viewer, p models.Patient) bool {
		if v.role == models.RolePatient {
			return v.patientID != 0 && p.ID == v.patientID
		}
		return true
	},
	owner:     func(req *PatientRequest) int { return req.UserID },
	ownerRole: models.RolePatient,
	create: func(req *PatientRequest, id int, now string) models.Patient {
		p := models.Patient{ID: id, UserID: req.UserID, CreatedAt: now}
		req.applyTo(&p)
		return p
	},
	update: func(p models.Patient, req *PatientRequest, now string) models.Patient {
		if req.UserID != 0 {
			p.UserID = req.UserID
		}
		req.applyTo(&p)
		p.UpdateTime = now
		return p
	},
}

func (req *PatientRequest) applyTo(p *models.Patient) {
	p.FirstName = req.FirstName
	p.LastName = req.LastName
	p.DateOfBirth = req.DateOfBirth
	p.Gender = req.Gender
	p.Phone = req.Phone
	p.Email = req.Email
	p.Address = req.Address
}

// --- Handler Functions ---

func (h *Handler) GetAllPatients(c *gin.Context) { listRecords(h, c, patientRecords) }

func (h *Handler) GetPatientByID(c *gin.Context) { showRecord(h, c, patientRecords) }

func (h *Handler) InsertPatient(c *gin.Context) { createRecord(h, c, patientRecords) }

func (h *Handler) UpdatePatientByID(c *gin.Context) { updateRecord(h, c, patientRecords) }
