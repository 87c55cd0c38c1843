package models

// Appointment statuses.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// AppointmentStatuses is the allow-list for Appointment.Status.
var AppointmentStatuses = []string{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled}

type Appointment struct {
	ID              int    `json:"id"`
	PatientID       int    `json:"patient_id"`
	DoctorID        int    `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Status          string `json:"status"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"created_at"`
	UpdateTime      string `json:"updated_at,omitempty"`
}

func (a Appointment) GetID() int { return a.ID }

type MedicalRecord struct {
	ID         int    `json:"id"`
	PatientID  int    `json:"patient_id"`
	DoctorID   int    `json:"doctor_id"`
	VisitDate  string `json:"visit_date"`
	Diagnosis  string `json:"diagnosis"`
	Treatment  string `json:"treatment"`
	Notes      string `json:"notes"`
	CreatedAt  string `json:"created_at"`
	UpdateTime string `json:"updated_at,omitempty"`
}

func (m MedicalRecord) GetID() int { return m.ID }

type Prescription struct {
	ID           int    `json:"id"`
	PatientID    int    `json:"patient_id"`
	DoctorID     int    `json:"doctor_id"`
	MedicationID int    `json:"medication_id"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
	CreatedAt    string `json:"created_at"`
	UpdateTime   string `json:"updated_at,omitempty"`
}

func (p Prescription) GetID() int { return p.ID }

// Payment statuses.
const (
	PaymentPending   = "Pending"
	PaymentPaid      = "Paid"
	PaymentPartial   = "Partially Paid"
	PaymentCancelled = "Cancelled"
)

// PaymentStatuses is the allow-list for Billing.PaymentStatus.
var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentPartial, PaymentCancelled}

type Billing struct {
	ID            int     `json:"id"`
	PatientID     int     `json:"patient_id"`
	AppointmentID int     `json:"appointment_id,omitempty"`
	Description   string  `json:"description"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentStatus string  `json:"payment_status"`
	DueDate       string  `json:"due_date"`
	CreatedAt     string  `json:"created_at"`
	UpdateTime    string  `json:"updated_at,omitempty"`
}

func (b Billing) GetID() int { return b.ID }

// ChatInteraction is one patient exchange with the triage assistant.
type ChatInteraction struct {
	ID          int      `json:"id" bson:"id,omitempty"`
	UserID      int      `json:"user_id" bson:"user_id"`
	PatientID   int      `json:"patient_id" bson:"patient_id"`
	Message     string   `json:"message" bson:"message"`
	Response    string   `json:"response" bson:"response"`
	Departments []string `json:"departments" bson:"departments"`
	CreatedAt   string   `json:"created_at" bson:"created_at"`
}

func (c ChatInteraction) GetID() int { return c.ID }
