// Package unitdir answers unit-ownership lookups against the units table
// maintained by the unit administration service. From the booking engine's
// point of view this is an external directory.
package unitdir

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condovia/reservation/booking"
	"github.com/condovia/reservation/logger"
)

type Directory struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Directory {
	return &Directory{db: db}
}

// ResolveOwner returns the owning principal of a unit. A missing unit and a
// unit with no registered owner both come back as booking.ErrOwnerNotFound,
// since in either case ownership cannot be confirmed.
func (d *Directory) ResolveOwner(ctx context.Context, unitID int64) (int64, error) {
	var ownerID *int64
	err := d.db.QueryRow(ctx, `SELECT owner_id FROM units WHERE id = $1`, unitID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, booking.ErrOwnerNotFound
		}
		logger.ErrorLogger.Errorf("Failed to resolve owner of unit %d: %v", unitID, err)
		return 0, fmt.Errorf("resolve unit owner: %w", err)
	}
	if ownerID == nil {
		return 0, booking.ErrOwnerNotFound
	}
	return *ownerID, nil
}
