package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"hospital-gin/internal/apperr"
	"hospital-gin/internal/database"
	"hospital-gin/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type BillingRequest struct {
	PatientID     int     `json:"patient_id" form:"patient_id" binding:"required,gt=0"`
	AppointmentID int     `json:"appointment_id" form:"appointment_id" binding:"omitempty,gt=0"`
	Description   string  `json:"description" form:"description" binding:"required,max=500"`
	TotalAmount   float64 `json:"total_amount" form:"total_amount" binding:"required,gt=0"`
	PaymentStatus string  `json:"payment_status" form:"payment_status" binding:"omitempty,payment_status"`
	DueDate       string  `json:"due_date" form:"due_date" binding:"required,datetime=2006-01-02"`
}

var billingRecords = recordSpec[models.Billing, BillingRequest]{
	collection: database.Billing,
	noun:       "Bill",
	visible: func(v viewer, b models.Billing) bool {
		if v.role == models.RolePatient {
			return v.patientID != 0 && b.PatientID == v.patientID
		}
		return true
	},
	refs: func(req *BillingRequest) []reference {
		return []reference{
			{field: "patient_id", collection: database.Patients, id: req.PatientID},
			{field: "appointment_id", collection: database.Appointments, id: req.AppointmentID},
		}
	},
	create: func(req *BillingRequest, id int, now string) models.Billing {
		b := models.Billing{ID: id, CreatedAt: now}
		req.applyTo(&b)
		return b
	},
	update: func(b models.Billing, req *BillingRequest, now string) models.Billing {
		req.applyTo(&b)
		b.UpdateTime = now
		return b
	},
}

func (req *BillingRequest) applyTo(b *models.Billing) {
	b.PatientID = req.PatientID
	b.AppointmentID = req.AppointmentID
	b.Description = req.Description
	b.TotalAmount = req.TotalAmount
	b.PaymentStatus = req.PaymentStatus
	if b.PaymentStatus == "" {
		b.PaymentStatus = models.PaymentPending
	}
	b.DueDate = req.DueDate
}

func (h *Handler) GetAllBills(c *gin.Context) { listRecords(h, c, billingRecords) }

func (h *Handler) GetBillByID(c *gin.Context) { showRecord(h, c, billingRecords) }

func (h *Handler) InsertBill(c *gin.Context) { createRecord(h, c, billingRecords) }

func (h *Handler) UpdateBillByID(c *gin.Context) { updateRecord(h, c, billingRecords) }

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportBills downloads every bill as a spreadsheet.
func (h *Handler) ExportBills(c *gin.Context) {
	ctx := c.Request.Context()
	bills, err := database.ReadAll[models.Billing](ctx, h.store, database.Billing)
	if err != nil {
		h.fail(c, apperr.Persistence(err))
		return
	}
	patients, err := database.ReadAll[models.Patient](ctx, h.store, database.Patients)
	if err != nil {
		h.fail(c, apperr.Persistence(err))
		return
	}

	data, err := billingWorkbook(bills, patients)
	if err != nil {
		h.fail(c, apperr.Persistence(err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="billing.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

var billingHeaders = []string{"ID", "Patient", "Description", "Amount", "Status", "Due Date", "Created At"}

func billingWorkbook(bills []models.Billing, patients []models.Patient) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Billing"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &billingHeaders); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	names := make(map[int]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.FirstName + " " + p.LastName
	}

	for i, b := range bills {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{b.ID, names[b.PatientID], b.Description, b.TotalAmount, b.PaymentStatus, b.DueDate, b.CreatedAt}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write bill %d: %w", b.ID, err)
		}
	}
	if err := f.SetColWidth(sheet, "B", "C", 30); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
