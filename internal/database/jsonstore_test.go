package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"hospital-gin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJSONStore(t *testing.T) (*JSONStore, string) {
	dir := t.TempDir()
	s, err := NewJSONStore(dir, zap.NewNop())
	require.NoError(t, err)
	return s, dir
}

func TestJSONStore_ReadMissingIsEmpty(t *testing.T) {
	s, _ := newTestJSONStore(t)

	doc, err := s.Read(context.Background(), Patients)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(doc))

	patients, err := ReadAll[models.Patient](context.Background(), s, Patients)
	require.NoError(t, err)
	assert.NotNil(t, patients)
	assert.Len(t, patients, 0)
}

func TestJSONStore_RejectsBadNames(t *testing.T) {
	s, _ := newTestJSONStore(t)

	_, err := s.Read(context.Background(), "../users")
	assert.ErrorIs(t, err, ErrInvalidCollection)
	err = s.Write(context.Background(), "Users", []byte("[]"))
	assert.ErrorIs(t, err, ErrInvalidCollection)
}

func TestJSONStore_WriteIsPrettyPrinted(t *testing.T) {
	s, dir := newTestJSONStore(t)
	ctx := context.Background()

	require.NoError(t, WriteAll(ctx, s, Departments, models.SeedDepartments[:1]))

	raw, err := os.ReadFile(filepath.Join(dir, "departments.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n    {\n        \"id\": 1,\n        \"name\": \"Cardiology\",\n        \"location\": \"Building A, Floor 2\"\n    }\n]", string(raw))
}

func TestJSONStore_WriteOfReadIsNoOp(t *testing.T) {
	s, dir := newTestJSONStore(t)
	ctx := context.Background()
	path := filepath.Join(dir, "medications.json")

	require.NoError(t, WriteAll(ctx, s, Medications, models.SeedMedications))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	doc, err := s.Read(ctx, Medications)
	require.NoError(t, err)
	require.NoError(t, s.Write(ctx, Medications, doc))

	meds, err := ReadAll[models.Medication](ctx, s, Medications)
	require.NoError(t, err)
	require.NoError(t, WriteAll(ctx, s, Medications, meds))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestJSONStore_TransactCommitsAllOrNothing(t *testing.T) {
	s, _ := newTestJSONStore(t)
	ctx := context.Background()
	boom := errors.New("second write rejected")

	err := s.Transact(ctx, func(tx Tx) error {
		if err := SaveAll(tx, Users, []models.User{{ID: 1, Email: "a@b.test"}}); err != nil {
			return err
		}
		return boom
	}, Users, Patients)
	assert.ErrorIs(t, err, boom)

	users, err := ReadAll[models.User](ctx, s, Users)
	require.NoError(t, err)
	assert.Empty(t, users)

	err = s.Transact(ctx, func(tx Tx) error {
		if err := SaveAll(tx, Users, []models.User{{ID: 1, Email: "a@b.test"}}); err != nil {
			return err
		}
		return SaveAll(tx, Patients, []models.Patient{{ID: 1, UserID: 1}})
	}, Users, Patients)
	require.NoError(t, err)

	users, err = ReadAll[models.User](ctx, s, Users)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	patients, err := ReadAll[models.Patient](ctx, s, Patients)
	require.NoError(t, err)
	assert.Len(t, patients, 1)
}

func TestJSONStore_TransactSeesOwnWrites(t *testing.T) {
	s, _ := newTestJSONStore(t)

	err := s.Transact(context.Background(), func(tx Tx) error {
		require.NoError(t, SaveAll(tx, Billing, []models.Billing{{ID: 7}}))
		bills, err := LoadAll[models.Billing](tx, Billing)
		require.NoError(t, err)
		assert.Equal(t, 7, bills[0].ID)
		return nil
	}, Billing)
	require.NoError(t, err)
}

func TestJSONStore_TransactRejectsUndeclared(t *testing.T) {
	s, _ := newTestJSONStore(t)

	err := s.Transact(context.Background(), func(tx Tx) error {
		_, err := tx.Load(Doctors)
		return err
	}, Patients)
	assert.ErrorIs(t, err, ErrUndeclared)
}

func TestJSONStore_ConcurrentInsertsGetUniqueIDs(t *testing.T) {
	s, _ := newTestJSONStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Insert(ctx, s, Appointments, func(id int) models.Appointment {
				return models.Appointment{ID: id, Status: models.StatusScheduled}
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	appts, err := ReadAll[models.Appointment](ctx, s, Appointments)
	require.NoError(t, err)
	require.Len(t, appts, writers)
	seen := map[int]bool{}
	for _, a := range appts {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
	assert.Equal(t, writers+1, NextID(appts))
}

func TestEnsureSeed(t *testing.T) {
	s, dir := newTestJSONStore(t)
	ctx := context.Background()

	require.NoError(t, EnsureSeed(ctx, s))
	require.NoError(t, EnsureSeed(ctx, s))

	for _, name := range AllCollections {
		_, err := os.Stat(filepath.Join(dir, name+".json"))
		assert.NoError(t, err, name)
	}
	deps, err := ReadAll[models.Department](ctx, s, Departments)
	require.NoError(t, err)
	assert.Equal(t, models.SeedDepartments, deps)
	meds, err := ReadAll[models.Medication](ctx, s, Medications)
	require.NoError(t, err)
	assert.Len(t, meds, 5)
}
