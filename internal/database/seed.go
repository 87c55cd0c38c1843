package database

import (
	"context"
	"fmt"

	"hospital-gin/internal/models"
)

// EnsureSeed creates missing collections and writes the fixed reference data
// into empty departments and medications collections.
func EnsureSeed(ctx context.Context, s Store) error {
	for _, name := range AllCollections {
		name := name
		err := s.Transact(ctx, func(tx Tx) error {
			doc, err := tx.Load(name)
			if err != nil {
				return err
			}
			records, err := Decode[map[string]any](doc)
			if err != nil {
				return fmt.Errorf("decode %s: %w", name, err)
			}
			if len(records) > 0 {
				return nil
			}
			switch name {
			case Departments:
				return SaveAll(tx, name, models.SeedDepartments)
			case Medications:
				return SaveAll(tx, name, models.SeedMedications)
			default:
				return SaveAll(tx, name, records)
			}
		}, name)
		if err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	return nil
}
