package auth

import "hospital-gin/internal/models"

// demoAccount is a fixed login that exists without a users record.
type demoAccount struct {
	ID        int
	Email     string
	Password  string
	Role      models.Role
	FirstName string
	LastName  string
}

var demoAccounts = []demoAccount{
	{ID: 1, Email: "admin@hospital.com", Password: "admin123", Role: models.RoleAdmin, FirstName: "Admin", LastName: "User"},
	{ID: 2, Email: "doctor@hospital.com", Password: "doctor123", Role: models.RoleDoctor, FirstName: "Dr. John", LastName: "Smith"},
	{ID: 3, Email: "staff@hospital.com", Password: "staff123", Role: models.RoleStaff, FirstName: "Staff", LastName: "Member"},
	{ID: 4, Email: "patient@hospital.com", Password: "patient123", Role: models.RolePatient, FirstName: "John", LastName: "Doe"},
}

// reservedUserIDs keeps registered users from sharing an id with a demo login.
func reservedUserIDs() int {
	maxID := 0
	for _, d := range demoAccounts {
		if d.ID > maxID {
			maxID = d.ID
		}
	}
	return maxID
}
