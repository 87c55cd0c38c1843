package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string  `json:"email" binding:"required,email"`
	Name   string  `json:"name" binding:"required,min=2,max=10"`
	Phone  string  `json:"phone" binding:"required,phone"`
	Gender string  `json:"gender" binding:"omitempty,gender"`
	Role   string  `json:"role" binding:"omitempty,account_role"`
	Date   string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time   string  `json:"time" binding:"omitempty,datetime=15:04"`
	Status string  `json:"status" binding:"required,oneof=Pending Paid 'Partially Paid'"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

func valid() sample {
	return sample{
		Email:  "jane@example.com",
		Name:   "Jane",
		Phone:  "(555) 123-4567",
		Gender: "Female",
		Role:   "doctor",
		Date:   "2024-02-29",
		Time:   "09:30",
		Status: "Partially Paid",
		Amount: 10,
	}
}

func TestValidSample(t *testing.T) {
	Register()
	assert.NoError(t, binding.Validator.ValidateStruct(valid()))
}

func TestFromBinding_FirstErrorPerField(t *testing.T) {
	Register()
	s := valid()
	s.Email = "not-an-email"
	s.Name = "J"
	s.Phone = "12345"
	s.Gender = "female"
	s.Role = "nurse"
	s.Date = "2023-02-29"
	s.Time = "25:00"
	s.Status = "Refunded"
	s.Amount = -1

	err := FromBinding(binding.Validator.ValidateStruct(s))
	require.NotNil(t, err)

	assert.Equal(t, "email must be a valid email address", err.Message)
	assert.Equal(t, map[string]string{
		"email":  "email must be a valid email address",
		"name":   "name must be at least 2 characters",
		"phone":  "phone must be a valid 10-digit phone number",
		"gender": "gender must be one of: Male, Female, Other",
		"role":   "role must be one of: admin, doctor, staff, patient",
		"date":   "date must be a valid date (YYYY-MM-DD)",
		"time":   "time must be a valid time (HH:MM)",
		"status": "status must be one of: Pending, Paid, Partially Paid",
		"amount": "amount must be 0 or more",
	}, err.Fields)
}

func TestFromBinding_Required(t *testing.T) {
	Register()
	err := FromBinding(binding.Validator.ValidateStruct(sample{}))
	require.NotNil(t, err)
	assert.Equal(t, "email is required", err.Message)
	assert.Equal(t, "name is required", err.Fields["name"])
}

func TestFromBinding_NonValidationError(t *testing.T) {
	err := FromBinding(errors.New("unexpected EOF"))
	assert.Equal(t, "Invalid request body", err.Message)
	assert.Empty(t, err.Fields)
}

func TestSplitOneOf(t *testing.T) {
	assert.Equal(t, []string{"a", "b c", "d"}, splitOneOf("a 'b c' d"))
	assert.Equal(t, []string{"scheduled"}, splitOneOf("scheduled"))
}

func TestNamedAllowLists(t *testing.T) {
	Register()
	type record struct {
		Status  string `json:"status" binding:"required,appointment_status"`
		Payment string `json:"payment_status" binding:"required,payment_status"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(record{Status: "confirmed", Payment: "Partially Paid"}))

	err := FromBinding(binding.Validator.ValidateStruct(record{Status: "done", Payment: "Refunded"}))
	require.NotNil(t, err)
	assert.Equal(t, "status must be one of: scheduled, confirmed, completed, cancelled", err.Fields["status"])
	assert.Equal(t, "payment_status must be one of: Pending, Paid, Partially Paid, Cancelled", err.Fields["payment_status"])
}
