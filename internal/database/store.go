package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// Collection names.
const (
	Users            = "users"
	Patients         = "patients"
	Doctors          = "doctors"
	StaffMembers     = "staff"
	Departments      = "departments"
	Medications      = "medications"
	Appointments     = "appointments"
	MedicalRecords   = "medical_records"
	Prescriptions    = "prescriptions"
	Billing          = "billing"
	ChatInteractions = "chat_interactions"
)

// AllCollections is every collection the application persists.
var AllCollections = []string{
	Users, Patients, Doctors, StaffMembers, Departments, Medications,
	Appointments, MedicalRecords, Prescriptions, Billing, ChatInteractions,
}

var (
	// ErrInvalidCollection is returned for names outside [a-z_]+.
	ErrInvalidCollection = errors.New("invalid collection name")
	// ErrUndeclared is returned when a Tx touches a collection it did not lock.
	ErrUndeclared = errors.New("collection not declared in transaction")
)

// emptyDocument is what Read returns for a collection that was never written.
var emptyDocument = []byte("[]")

// Store persists whole collections as JSON array documents. A collection that
// does not exist reads as an empty array.
type Store interface {
	Read(ctx context.Context, collection string) ([]byte, error)
	// Write replaces the whole collection and returns once it is durable.
	Write(ctx context.Context, collection string, doc []byte) error
	// Transact runs fn with exclusive access to the named collections. Saves
	// become visible together when fn returns nil and are discarded otherwise.
	Transact(ctx context.Context, fn func(tx Tx) error, collections ...string) error
	Close() error
}

// Tx is the view of the locked collections inside Transact.
type Tx interface {
	Load(collection string) ([]byte, error)
	Save(collection string, doc []byte) error
}

var collectionName = regexp.MustCompile(`^[a-z_]+$`)

func checkName(name string) error {
	if !collectionName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	return nil
}

// lockOrder validates, sorts and deduplicates collection names so that
// concurrent transactions always acquire locks in the same order.
func lockOrder(collections []string) ([]string, error) {
	seen := make(map[string]bool, len(collections))
	out := make([]string, 0, len(collections))
	for _, name := range collections {
		if err := checkName(name); err != nil {
			return nil, err
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}
