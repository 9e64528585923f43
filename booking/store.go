package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StoreTx is the set of primitives the create path composes inside one
// atomic unit of work. The store guarantees that a RunInTx body never
// interleaves with another create or cancel in a way that lets two
// conflicting reservations both commit.
type StoreTx interface {
	HasOverlap(ctx context.Context, area string, start, end time.Time) (bool, error)
	CountUpcoming(ctx context.Context, unitID int64, winStart, winEnd time.Time) (int, error)
	Insert(ctx context.Context, unitID int64, area string, start, end time.Time, status Status) (*Reservation, error)
}

// Store is the persistence boundary for reservations. RunInTx runs fn as a
// single atomic transaction; an abort caused by a concurrent writer is
// returned as ErrConflict, and fn's own error is returned unchanged with no
// state committed.
type Store interface {
	RunInTx(ctx context.Context, fn func(StoreTx) error) error

	HasOverlap(ctx context.Context, area string, start, end time.Time) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Reservation, error)
	ListAll(ctx context.Context) ([]Reservation, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Reservation, error)
}

// OwnerResolver answers "who owns unit X". It is an external directory from
// this package's point of view; ErrOwnerNotFound means ownership could not
// be confirmed.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, unitID int64) (int64, error)
}
