package handlers

import (
	"context"

	"hospital-gin/internal/apperr"
	"hospital-gin/internal/database"
	"hospital-gin/internal/models"
	"hospital-gin/internal/utils"

	"github.com/gin-gonic/gin"
)

// Dashboard returns the headline counts for the signed-in role.
func (h *Handler) Dashboard(c *gin.Context) {
	v, err := h.viewerFor(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	stats, err := h.dashboardStats(c.Request.Context(), v)
	if err != nil {
		h.fail(c, apperr.Persistence(err))
		return
	}
	respondData(c, gin.H{"role": v.role, "stats": stats})
}

type dashboardData struct {
	patients     []models.Patient
	doctors      []models.Doctor
	appointments []models.Appointment
	records      []models.MedicalRecord
	bills        []models.Billing
}

func (h *Handler) loadDashboard(ctx context.Context) (dashboardData, error) {
	var d dashboardData
	var err error
	if d.patients, err = database.ReadAll[models.Patient](ctx, h.store, database.Patients); err != nil {
		return d, err
	}
	if d.doctors, err = database.ReadAll[models.Doctor](ctx, h.store, database.Doctors); err != nil {
		return d, err
	}
	if d.appointments, err = database.ReadAll[models.Appointment](ctx, h.store, database.Appointments); err != nil {
		return d, err
	}
	if d.records, err = database.ReadAll[models.MedicalRecord](ctx, h.store, database.MedicalRecords); err != nil {
		return d, err
	}
	if d.bills, err = database.ReadAll[models.Billing](ctx, h.store, database.Billing); err != nil {
		return d, err
	}
	return d, nil
}

func (h *Handler) dashboardStats(ctx context.Context, v viewer) (gin.H, error) {
	d, err := h.loadDashboard(ctx)
	if err != nil {
		return nil, err
	}

	switch v.role {
	case models.RoleAdmin:
		amounts := make([]float64, 0, len(d.bills))
		for _, b := range d.bills {
			amounts = append(amounts, b.TotalAmount)
		}
		average, _ := utils.CalculateStats(amounts)
		return gin.H{
			"patients":     len(d.patients),
			"doctors":      len(d.doctors),
			"appointments": len(d.appointments),
			"revenue":      utils.SumAmounts(amounts),
			"average_bill": average,
		}, nil

	case models.RoleDoctor:
		appointments, records := 0, 0
		seen := make(map[int]bool)
		if v.doctorID != 0 {
			for _, a := range d.appointments {
				if a.DoctorID == v.doctorID {
					appointments++
				}
			}
			for _, r := range d.records {
				if r.DoctorID == v.doctorID {
					records++
					seen[r.PatientID] = true
				}
			}
		}
		return gin.H{"appointments": appointments, "patients": len(seen), "records": records}, nil

	case models.RolePatient:
		appointments, records, bills, pending := 0, 0, 0, 0
		if v.patientID != 0 {
			for _, a := range d.appointments {
				if a.PatientID == v.patientID {
					appointments++
				}
			}
			for _, r := range d.records {
				if r.PatientID == v.patientID {
					records++
				}
			}
			for _, b := range d.bills {
				if b.PatientID == v.patientID {
					bills++
					if b.PaymentStatus == models.PaymentPending {
						pending++
					}
				}
			}
		}
		return gin.H{"appointments": appointments, "records": records, "bills": bills, "pending_bills": pending}, nil

	default:
		pending := 0
		for _, b := range d.bills {
			if b.PaymentStatus == models.PaymentPending {
				pending++
			}
		}
		return gin.H{"patients": len(d.patients), "appointments": len(d.appointments), "pending_bills": pending}, nil
	}
}
