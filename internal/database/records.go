package database

import (
	"context"
	"encoding/json"
	"fmt"
)

// Identified is implemented by every stored record.
type Identified interface {
	GetID() int
}

// NextID returns one more than the largest id in records, or 1 when empty.
func NextID[T Identified](records []T) int {
	maxID := 0
	for _, r := range records {
		if id := r.GetID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// FindByID returns the record with the given id.
func FindByID[T Identified](records []T, id int) (T, bool) {
	for _, r := range records {
		if r.GetID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Encode renders records as a pretty-printed JSON array; nil encodes as [].
func Encode[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	return json.MarshalIndent(records, "", "    ")
}

// Decode parses a collection document.
func Decode[T any](doc []byte) ([]T, error) {
	records := []T{}
	if len(doc) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(doc, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// ReadAll reads and decodes a whole collection.
func ReadAll[T any](ctx context.Context, s Store, collection string) ([]T, error) {
	doc, err := s.Read(ctx, collection)
	if err != nil {
		return nil, err
	}
	records, err := Decode[T](doc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return records, nil
}

// WriteAll encodes and writes a whole collection.
func WriteAll[T any](ctx context.Context, s Store, collection string, records []T) error {
	doc, err := Encode(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	return s.Write(ctx, collection, doc)
}

// LoadAll is ReadAll inside a transaction.
func LoadAll[T any](tx Tx, collection string) ([]T, error) {
	doc, err := tx.Load(collection)
	if err != nil {
		return nil, err
	}
	records, err := Decode[T](doc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return records, nil
}

// SaveAll is WriteAll inside a transaction.
func SaveAll[T any](tx Tx, collection string, records []T) error {
	doc, err := Encode(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	return tx.Save(collection, doc)
}

// Insert appends the record built for the next free id. The read, the id
// assignment and the write happen under the collection lock.
func Insert[T Identified](ctx context.Context, s Store, collection string, build func(id int) T) (T, error) {
	var created T
	err := s.Transact(ctx, func(tx Tx) error {
		records, err := LoadAll[T](tx, collection)
		if err != nil {
			return err
		}
		created = build(NextID(records))
		return SaveAll(tx, collection, append(records, created))
	}, collection)
	return created, err
}
