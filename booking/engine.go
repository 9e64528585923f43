package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/condovia/reservation/logger"
)

// Engine applies the authorization, conflict and quota rules for common-area
// reservations. It holds no mutable state of its own and is safe for any
// number of concurrent callers; all shared state lives behind Store.
type Engine struct {
	Store  Store
	Owners OwnerResolver

	// Now supplies the engine's clock. Injected so quota-boundary cases
	// are deterministic under test.
	Now func() time.Time
}

func NewEngine(store Store, owners OwnerResolver) *Engine {
	return &Engine{
		Store:  store,
		Owners: owners,
		Now:    time.Now,
	}
}

// authorize checks that the caller may act for the given unit. Staff roles
// bypass ownership; a resident must be the unit's resolved owner.
func (e *Engine) authorize(ctx context.Context, unitID int64, caller Caller) error {
	if caller.Role.IsStaff() {
		return nil
	}
	ownerID, err := e.Owners.ResolveOwner(ctx, unitID)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			// Ownership cannot be confirmed, so the caller cannot be it.
			return ErrForbidden
		}
		return err
	}
	if ownerID != caller.ID {
		return ErrForbidden
	}
	return nil
}

// CreateReservation books area for unitID over [start, end). The overlap
// check, the quota check and the insert run inside one atomic store
// transaction, so a successful return means both invariants held at commit
// time, not merely at check time.
func (e *Engine) CreateReservation(ctx context.Context, unitID int64, area string, start, end time.Time, caller Caller) (*Reservation, error) {
	if !end.After(start) {
		return nil, ErrInvalidInterval
	}

	if err := e.authorize(ctx, unitID, caller); err != nil {
		return nil, err
	}

	var created *Reservation
	err := e.Store.RunInTx(ctx, func(tx StoreTx) error {
		overlap, err := tx.HasOverlap(ctx, area, start, end)
		if err != nil {
			return err
		}
		if overlap {
			return ErrConflict
		}

		winStart, winEnd := RollingWindow(e.Now())
		count, err := tx.CountUpcoming(ctx, unitID, winStart, winEnd)
		if err != nil {
			return err
		}
		if count >= QuotaLimit {
			return ErrQuotaExceeded
		}

		created, err = tx.Insert(ctx, unitID, area, start, end, StatusConfirmed)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("Reservation %s created for unit %d area %q", created.ID, unitID, area)
	return created, nil
}

// CancelReservation marks a reservation cancelled. Cancelling an already
// cancelled reservation is a no-op success; cancelled is terminal.
func (e *Engine) CancelReservation(ctx context.Context, id uuid.UUID, caller Caller) (*Reservation, error) {
	res, err := e.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := e.authorize(ctx, res.UnitID, caller); err != nil {
		return nil, err
	}

	if res.Status == StatusCancelled {
		return res, nil
	}

	updated, err := e.Store.SetStatus(ctx, id, StatusCancelled)
	if err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("Reservation %s cancelled", id)
	return updated, nil
}

// IsAvailable reports whether [start, end) is currently free for the area.
// Advisory only: a true result is not a hold and may be stale by the time a
// create request is issued.
func (e *Engine) IsAvailable(ctx context.Context, area string, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidInterval
	}
	overlap, err := e.Store.HasOverlap(ctx, area, start, end)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

// ListReservations returns every reservation for staff callers and only the
// reservations of the caller's own units for residents.
func (e *Engine) ListReservations(ctx context.Context, caller Caller) ([]Reservation, error) {
	if caller.Role.IsStaff() {
		return e.Store.ListAll(ctx)
	}
	return e.Store.ListByOwner(ctx, caller.ID)
}
