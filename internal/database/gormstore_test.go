package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func setupMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormStore(db), mock
}

func TestGormStore_Read(t *testing.T) {
	s, mock := setupMockStore(t)

	rows := sqlmock.NewRows([]string{"name", "document", "updated_at"}).
		AddRow("patients", `[{"id":1}]`, time.Now())
	mock.ExpectQuery(`SELECT \* FROM "collections" WHERE name = \$1`).WillReturnRows(rows)

	doc, err := s.Read(context.Background(), Patients)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(doc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ReadMissingIsEmpty(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "collections" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "document", "updated_at"}))

	doc, err := s.Read(context.Background(), Billing)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(doc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Write(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectExec(`INSERT INTO "collections" .* ON CONFLICT \("name"\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Write(context.Background(), Users, []byte("[]"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_WriteFailureIsWrapped(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectExec(`INSERT INTO "collections"`).WillReturnError(errors.New("connection reset"))

	err := s.Write(context.Background(), Users, []byte("[]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write users")
}

func TestGormStore_TransactLocksRows(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "collections" .* ON CONFLICT DO NOTHING`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "collections" .* ON CONFLICT DO NOTHING`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "collections" WHERE name IN \(\$1,\$2\) ORDER BY name FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "document", "updated_at"}).
			AddRow("patients", `[]`, time.Now()).
			AddRow("users", `[{"id":1}]`, time.Now()))
	mock.ExpectExec(`INSERT INTO "collections" .* ON CONFLICT \("name"\) DO UPDATE`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Transact(context.Background(), func(tx Tx) error {
		doc, err := tx.Load(Users)
		if err != nil {
			return err
		}
		assert.JSONEq(t, `[{"id":1}]`, string(doc))
		return tx.Save(Users, []byte(`[{"id":1},{"id":2}]`))
	}, Users, Patients)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_TransactRollsBack(t *testing.T) {
	s, mock := setupMockStore(t)
	boom := errors.New("abort")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "collections"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "document", "updated_at"}).AddRow("users", `[]`, time.Now()))
	mock.ExpectRollback()

	err := s.Transact(context.Background(), func(tx Tx) error { return boom }, Users)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionRow_DocumentColumnType(t *testing.T) {
	sch, err := schema.Parse(&collectionRow{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	field := sch.LookUpField("Document")
	require.NotNil(t, field)

	assert.Equal(t, "longtext", mysql.New(mysql.Config{}).DataTypeOf(field))
	assert.Equal(t, "text", postgres.New(postgres.Config{}).DataTypeOf(field))
}
