package appointment

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by Create when a record with the same
// (name, email, date, time) tuple already exists.
var ErrDuplicate = errors.New("appointment: duplicate booking")

// Repository persists appointment records.
type Repository interface {
	// Create inserts a record and returns it with ID and CreatedAt set.
	// Returns ErrDuplicate when the (name, email, date, time) tuple is
	// already booked.
	Create(ctx context.Context, name, email, date, clock, purpose string) (*Record, error)

	// Find returns records matching the query, ordered by (date, time).
	Find(ctx context.Context, q Query) ([]Record, error)

	// Exists reports whether a record with the exact tuple is present.
	Exists(ctx context.Context, name, email, date, clock string) (bool, error)

	// Delete removes a record by ID, reporting whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
