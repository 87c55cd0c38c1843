package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// collectionRow holds one collection document. Document carries no size so
// that mysql maps it to longtext and postgres to text; a sized string becomes
// varchar on postgres and a plain TEXT caps mysql at 64 KiB.
type collectionRow struct {
	Name      string `gorm:"primaryKey;size:64"`
	Document  string
	UpdatedAt time.Time
}

func (collectionRow) TableName() string { return "collections" }

// GormStore keeps collections in the collections table of a SQL database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps db; call Migrate before first use on a fresh database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the collections table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&collectionRow{})
}

func (s *GormStore) Read(ctx context.Context, collection string) ([]byte, error) {
	if err := checkName(collection); err != nil {
		return nil, err
	}
	var row collectionRow
	err := s.db.WithContext(ctx).Where("name = ?", collection).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emptyDocument, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return []byte(row.Document), nil
}

func (s *GormStore) Write(ctx context.Context, collection string, doc []byte) error {
	if err := checkName(collection); err != nil {
		return err
	}
	return upsert(s.db.WithContext(ctx), collection, doc)
}

func upsert(db *gorm.DB, collection string, doc []byte) error {
	row := collectionRow{Name: collection, Document: string(doc), UpdatedAt: time.Now()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

// Transact locks the collection rows with SELECT ... FOR UPDATE. Rows are
// created first so that a never-written collection can be locked as well.
func (s *GormStore) Transact(ctx context.Context, fn func(tx Tx) error, collections ...string) error {
	names, err := lockOrder(collections)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		for _, name := range names {
			row := collectionRow{Name: name, Document: string(emptyDocument), UpdatedAt: time.Now()}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("prepare %s: %w", name, err)
			}
		}

		var rows []collectionRow
		err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name IN ?", names).
			Order("name").
			Find(&rows).Error
		if err != nil {
			return fmt.Errorf("lock collections: %w", err)
		}

		tx := &gormTx{db: db, declared: names, docs: make(map[string][]byte, len(rows))}
		for _, row := range rows {
			tx.docs[row.Name] = []byte(row.Document)
		}
		return fn(tx)
	})
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormTx struct {
	db       *gorm.DB
	declared []string
	docs     map[string][]byte
}

func (tx *gormTx) check(name string) error {
	for _, d := range tx.declared {
		if d == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUndeclared, name)
}

func (tx *gormTx) Load(collection string) ([]byte, error) {
	if err := tx.check(collection); err != nil {
		return nil, err
	}
	if doc, ok := tx.docs[collection]; ok {
		return doc, nil
	}
	return emptyDocument, nil
}

func (tx *gormTx) Save(collection string, doc []byte) error {
	if err := tx.check(collection); err != nil {
		return err
	}
	if err := upsert(tx.db, collection, doc); err != nil {
		return err
	}
	tx.docs[collection] = doc
	return nil
}
