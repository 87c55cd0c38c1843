// Package auth checks credentials and creates accounts.
package auth

import (
	"context"
	"fmt"
	"strings"

	"hospital-gin/internal/apperr"
	"hospital-gin/internal/database"
	"hospital-gin/internal/models"
	"hospital-gin/internal/session"
	"hospital-gin/internal/utils"

	"go.uber.org/zap"
)

// MsgInvalidCredentials is the only failure message login ever returns.
const MsgInvalidCredentials = "Invalid credentials or role mismatch"

// Credentials is a login attempt.
type Credentials struct {
	Email    string
	Password string
	Role     models.Role
}

// Registration is a self-service sign-up. The role-specific fields are
// copied onto the linked patient, doctor or staff record.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
	Role      models.Role

	DateOfBirth string
	Gender      string
	Address     string

	Specialty    string
	DepartmentID int
	Position     string
}

// PublicRoles are the roles open to self-registration.
var PublicRoles = []models.Role{models.RolePatient, models.RoleDoctor, models.RoleStaff}

type Service struct {
	store  database.Store
	demo   bool
	logger *zap.Logger
}

func NewService(store database.Store, demoAccounts bool, logger *zap.Logger) *Service {
	return &Service{store: store, demo: demoAccounts, logger: logger}
}

// Authenticate resolves credentials to an identity. Demo accounts are tried
// before registered users; both require the requested role to match.
func (s *Service) Authenticate(ctx context.Context, c Credentials) (session.Identity, error) {
	email := strings.TrimSpace(c.Email)
	if email == "" || c.Password == "" || c.Role == "" {
		return session.Identity{}, apperr.Validation("All fields are required")
	}

	if s.demo {
		for _, d := range demoAccounts {
			if !strings.EqualFold(d.Email, email) {
				continue
			}
			if utils.EqualSecret(d.Password, c.Password) && d.Role == c.Role {
				return session.Identity{UserID: d.ID, Email: d.Email, Role: d.Role, FirstName: d.FirstName, LastName: d.LastName}, nil
			}
		}
	}

	users, err := database.ReadAll[models.User](ctx, s.store, database.Users)
	if err != nil {
		return session.Identity{}, apperr.Persistence(err)
	}
	for _, u := range users {
		if !strings.EqualFold(u.Email, email) || u.Role != c.Role {
			continue
		}
		if utils.CheckPassword(c.Password, u.PasswordHash) {
			return session.Identity{UserID: u.ID, Email: u.Email, Role: u.Role, FirstName: u.FirstName, LastName: u.LastName}, nil
		}
	}

	s.logger.Info("login rejected", zap.String("email", email), zap.String("role", string(c.Role)))
	return session.Identity{}, apperr.Unauthenticated(MsgInvalidCredentials)
}

// Register creates the user and its role record in one transaction.
func (s *Service) Register(ctx context.Context, r Registration) (models.User, error) {
	if !isPublicRole(r.Role) {
		return models.User{}, apperr.ValidationFields(map[string]string{"role": "role must be one of: patient, doctor, staff"}, []string{"role"})
	}
	email := strings.ToLower(strings.TrimSpace(r.Email))
	if s.isDemoEmail(email) {
		return models.User{}, emailTaken()
	}

	hash, err := utils.HashPassword(r.Password)
	if err != nil {
		return models.User{}, apperr.Persistence(fmt.Errorf("hash password: %w", err))
	}

	collections := []string{database.Users, collectionFor(r.Role)}
	if r.Role != models.RolePatient {
		collections = append(collections, database.Departments)
	}
	var created models.User
	err = s.store.Transact(ctx, func(tx database.Tx) error {
		users, err := database.LoadAll[models.User](tx, database.Users)
		if err != nil {
			return err
		}
		for _, u := range users {
			if strings.EqualFold(u.Email, email) {
				return emailTaken()
			}
		}

		id := database.NextID(users)
		if s.demo && id <= reservedUserIDs() {
			id = reservedUserIDs() + 1
		}
		created = models.User{
			ID:           id,
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			Email:        email,
			PasswordHash: hash,
			Phone:        r.Phone,
			Role:         r.Role,
			CreatedAt:    models.Now(),
		}
		if err := database.SaveAll(tx, database.Users, append(users, created)); err != nil {
			return err
		}
		return s.linkRoleRecord(tx, created, r)
	}, collections...)
	if err != nil {
		return models.User{}, err
	}

	s.logger.Info("user registered", zap.Int("user_id", created.ID), zap.String("role", string(created.Role)))
	return created, nil
}

func (s *Service) linkRoleRecord(tx database.Tx, u models.User, r Registration) error {
	departmentID := defaultDepartment(r.DepartmentID)
	if u.Role != models.RolePatient {
		departments, err := database.LoadAll[models.Department](tx, database.Departments)
		if err != nil {
			return err
		}
		if _, ok := database.FindByID(departments, departmentID); !ok {
			return apperr.ValidationFields(map[string]string{"department_id": "department_id does not exist"}, []string{"department_id"})
		}
	}

	switch u.Role {
	case models.RolePatient:
		patients, err := database.LoadAll[models.Patient](tx, database.Patients)
		if err != nil {
			return err
		}
		return database.SaveAll(tx, database.Patients, append(patients, models.Patient{
			ID:          database.NextID(patients),
			UserID:      u.ID,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			DateOfBirth: r.DateOfBirth,
			Gender:      r.Gender,
			Phone:       u.Phone,
			Email:       u.Email,
			Address:     r.Address,
			CreatedAt:   u.CreatedAt,
		}))
	case models.RoleDoctor:
		doctors, err := database.LoadAll[models.Doctor](tx, database.Doctors)
		if err != nil {
			return err
		}
		return database.SaveAll(tx, database.Doctors, append(doctors, models.Doctor{
			ID:           database.NextID(doctors),
			UserID:       u.ID,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Specialty:    r.Specialty,
			DepartmentID: departmentID,
			Phone:        u.Phone,
			Email:        u.Email,
			CreatedAt:    u.CreatedAt,
		}))
	default:
		staff, err := database.LoadAll[models.Staff](tx, database.StaffMembers)
		if err != nil {
			return err
		}
		position := r.Position
		if position == "" {
			position = "Staff Member"
		}
		return database.SaveAll(tx, database.StaffMembers, append(staff, models.Staff{
			ID:           database.NextID(staff),
			UserID:       u.ID,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Position:     position,
			DepartmentID: departmentID,
			Phone:        u.Phone,
			CreatedAt:    u.CreatedAt,
		}))
	}
}

func (s *Service) isDemoEmail(email string) bool {
	if !s.demo {
		return false
	}
	for _, d := range demoAccounts {
		if strings.EqualFold(d.Email, email) {
			return true
		}
	}
	return false
}

func isPublicRole(role models.Role) bool {
	for _, r := range PublicRoles {
		if r == role {
			return true
		}
	}
	return false
}

func collectionFor(role models.Role) string {
	switch role {
	case models.RolePatient:
		return database.Patients
	case models.RoleDoctor:
		return database.Doctors
	default:
		return database.StaffMembers
	}
}

func defaultDepartment(id int) int {
	if id <= 0 {
		return 1
	}
	return id
}

func emailTaken() *apperr.Error {
	return apperr.ValidationFields(map[string]string{"email": "Email already exists"}, []string{"email"})
}
