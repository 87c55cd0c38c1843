package auth

import (
	"context"
	"sync"
	"testing"

	"hospital-gin/internal/apperr"
	"hospital-gin/internal/database"
	"hospital-gin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, demo bool) (*Service, database.Store) {
	store, err := database.NewJSONStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.EnsureSeed(context.Background(), store))
	return NewService(store, demo, zap.NewNop()), store
}

func jane() Registration {
	return Registration{
		FirstName:   "Jane",
		LastName:    "Roe",
		Email:       "Jane@Example.com",
		Password:    "secret123",
		Phone:       "5551234567",
		Role:        models.RolePatient,
		DateOfBirth: "1990-04-12",
		Gender:      "Female",
		Address:     "1 Main St",
	}
}

func TestAuthenticate_DemoAccounts(t *testing.T) {
	svc, _ := newTestService(t, true)
	ctx := context.Background()

	for _, d := range demoAccounts {
		ident, err := svc.Authenticate(ctx, Credentials{Email: d.Email, Password: d.Password, Role: d.Role})
		require.NoError(t, err, d.Email)
		assert.Equal(t, d.Role, ident.Role)
		assert.Equal(t, d.ID, ident.UserID)
		assert.Equal(t, d.FirstName, ident.FirstName)
	}
}

func TestAuthenticate_RoleMismatch(t *testing.T) {
	svc, _ := newTestService(t, true)

	_, err := svc.Authenticate(context.Background(), Credentials{Email: "admin@hospital.com", Password: "admin123", Role: models.RoleDoctor})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.As(err).Kind)
	assert.Equal(t, MsgInvalidCredentials, apperr.As(err).Message)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t, true)

	_, err := svc.Authenticate(context.Background(), Credentials{Email: "admin@hospital.com", Password: "admin124", Role: models.RoleAdmin})
	assert.Equal(t, apperr.KindUnauthenticated, apperr.As(err).Kind)
}

func TestAuthenticate_DemoDisabled(t *testing.T) {
	svc, _ := newTestService(t, false)

	_, err := svc.Authenticate(context.Background(), Credentials{Email: "admin@hospital.com", Password: "admin123", Role: models.RoleAdmin})
	assert.Equal(t, apperr.KindUnauthenticated, apperr.As(err).Kind)
}

func TestAuthenticate_MissingFields(t *testing.T) {
	svc, _ := newTestService(t, true)

	_, err := svc.Authenticate(context.Background(), Credentials{Email: "admin@hospital.com"})
	assert.Equal(t, apperr.KindValidation, apperr.As(err).Kind)
}

func TestRegister_PatientThenLogin(t *testing.T) {
	svc, store := newTestService(t, true)
	ctx := context.Background()

	u, err := svc.Register(ctx, jane())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Greater(t, u.ID, reservedUserIDs())
	assert.NotEqual(t, "secret123", u.PasswordHash)

	patients, err := database.ReadAll[models.Patient](ctx, store, database.Patients)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, u.ID, patients[0].UserID)
	assert.Equal(t, "1990-04-12", patients[0].DateOfBirth)

	ident, err := svc.Authenticate(ctx, Credentials{Email: "JANE@example.com", Password: "secret123", Role: models.RolePatient})
	require.NoError(t, err)
	assert.Equal(t, u.ID, ident.UserID)

	_, err = svc.Authenticate(ctx, Credentials{Email: "jane@example.com", Password: "secret123", Role: models.RoleDoctor})
	assert.Equal(t, apperr.KindUnauthenticated, apperr.As(err).Kind)
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	svc, store := newTestService(t, true)
	ctx := context.Background()

	_, err := svc.Register(ctx, jane())
	require.NoError(t, err)

	dup := jane()
	dup.Email = "JANE@EXAMPLE.COM"
	_, err = svc.Register(ctx, dup)
	require.Error(t, err)
	appErr := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, "Email already exists", appErr.Message)

	users, err := database.ReadAll[models.User](ctx, store, database.Users)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	patients, err := database.ReadAll[models.Patient](ctx, store, database.Patients)
	require.NoError(t, err)
	assert.Len(t, patients, 1)
}

func TestRegister_DemoEmailIsTaken(t *testing.T) {
	svc, _ := newTestService(t, true)

	r := jane()
	r.Email = "Doctor@Hospital.com"
	_, err := svc.Register(context.Background(), r)
	assert.Equal(t, "Email already exists", apperr.As(err).Message)
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	svc, _ := newTestService(t, true)

	r := jane()
	r.Role = models.RoleAdmin
	_, err := svc.Register(context.Background(), r)
	assert.Equal(t, apperr.KindValidation, apperr.As(err).Kind)
	assert.Contains(t, apperr.As(err).Fields, "role")
}

func TestRegister_DoctorAndStaffRecords(t *testing.T) {
	svc, store := newTestService(t, false)
	ctx := context.Background()

	doc := jane()
	doc.Email = "house@example.com"
	doc.Role = models.RoleDoctor
	doc.Specialty = "Diagnostics"
	doc.DepartmentID = 2
	u, err := svc.Register(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	staff := jane()
	staff.Email = "front@example.com"
	staff.Role = models.RoleStaff
	_, err = svc.Register(ctx, staff)
	require.NoError(t, err)

	doctors, err := database.ReadAll[models.Doctor](ctx, store, database.Doctors)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, 2, doctors[0].DepartmentID)
	assert.Equal(t, "Diagnostics", doctors[0].Specialty)

	members, err := database.ReadAll[models.Staff](ctx, store, database.StaffMembers)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Staff Member", members[0].Position)
	assert.Equal(t, 1, members[0].DepartmentID)
}

func TestRegister_UnknownDepartment(t *testing.T) {
	svc, store := newTestService(t, true)
	ctx := context.Background()

	doc := jane()
	doc.Role = models.RoleDoctor
	doc.DepartmentID = 99
	_, err := svc.Register(ctx, doc)
	assert.Equal(t, "department_id does not exist", apperr.As(err).Message)

	users, err := database.ReadAll[models.User](ctx, store, database.Users)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestRegister_ConcurrentSignupsGetDistinctIDs(t *testing.T) {
	svc, store := newTestService(t, true)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := jane()
			r.Email = string(rune('a'+i)) + "@example.com"
			_, err := svc.Register(ctx, r)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	users, err := database.ReadAll[models.User](ctx, store, database.Users)
	require.NoError(t, err)
	seen := map[int]bool{}
	for _, u := range users {
		assert.False(t, seen[u.ID])
		seen[u.ID] = true
	}
	assert.Len(t, users, 8)
}
