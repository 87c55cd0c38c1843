package models

// Role identifies what a signed-in user may see and do.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RoleStaff   Role = "staff"
	RolePatient Role = "patient"

	// Hierarchy-only roles used by the permission ladder.
	RoleReceptionist Role = "receptionist"
	RoleNurse        Role = "nurse"
)

// Roles lists the roles a user account can hold.
var Roles = []Role{RoleAdmin, RoleDoctor, RoleStaff, RolePatient}

// Valid reports whether r is an account role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is an account able to sign in.
type User struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"` // bcrypt; never rendered to clients
	Phone        string `json:"phone"`
	Role         Role   `json:"role"`
	CreatedAt    string `json:"created_at"`
}

func (u User) GetID() int { return u.ID }
