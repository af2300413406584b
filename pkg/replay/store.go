// Package replay persists minimal failing examples so later runs can
// replay them before generating fresh ones. Records are keyed by
// property name and the seed that regenerates the example.
package replay

import (
	"fmt"
	"time"
)

// Record is one persisted failing example.
type Record struct {
	// ID uniquely identifies the record.
	ID string

	// Property is the name of the property that failed.
	Property string

	// Seed regenerates the failing example from the property's strategy.
	Seed uint64

	// Value is a human-readable representation of the minimal
	// counterexample. Informational only; replay goes through Seed.
	Value string

	// ShrinkPath is the sequence of shrink candidate indices that led
	// from the originally generated value to the minimal one.
	ShrinkPath []int

	// CreatedAt is when the failure was recorded.
	CreatedAt time.Time
}

// Store persists failure records. Implementations must be safe for
// concurrent use; independent properties may run in parallel.
type Store interface {
	// Put inserts or replaces the record for (record.Property, record.Seed).
	Put(record Record) error

	// List returns the records for one property, oldest first.
	List(property string) ([]Record, error)

	// All returns every record, oldest first.
	All() ([]Record, error)

	// Delete removes a record by ID. Unknown IDs are not an error.
	Delete(id string) error

	// Prune removes records created before the cutoff and reports how
	// many were removed.
	Prune(cutoff time.Time) (int, error)

	// Close releases any resources held by the store.
	Close() error
}

// NotFoundError reports a lookup for a record that does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("replay record not found: %s", e.ID)
}
