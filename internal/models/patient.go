package models

// Patient is the clinical profile linked to a patient-role user.
type Patient struct {
	ID          int    `json:"id"`
	UserID      int    `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	CreatedAt   string `json:"created_at"`
	UpdateTime  string `json:"updated_at,omitempty"`
}

func (p Patient) GetID() int { return p.ID }

// Genders accepted on patient records.
var Genders = []string{"Male", "Female", "Other"}
