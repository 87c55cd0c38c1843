package models

// Doctor is the profile linked to a doctor-role user.
type Doctor struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Specialty    string `json:"specialty"`
	DepartmentID int    `json:"department_id"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	CreatedAt    string `json:"created_at"`
	UpdateTime   string `json:"updated_at,omitempty"`
}

func (d Doctor) GetID() int { return d.ID }

// Staff is the profile linked to a staff-role user.
type Staff struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Position     string `json:"role"` // job title, e.g. "Receptionist"
	DepartmentID int    `json:"department_id"`
	Phone        string `json:"phone"`
	CreatedAt    string `json:"created_at"`
	UpdateTime   string `json:"updated_at,omitempty"`
}

func (s Staff) GetID() int { return s.ID }
