package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condovia/reservation/logger"
)

// PgStore is the Postgres-backed Store. The create path runs under
// serializable isolation, and the schema carries a gist exclusion constraint
// over (area, time range) for non-cancelled rows as the storage-level
// backstop, so a conflicting concurrent insert can never commit.
type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

// dbtx is the querying surface shared by *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// pgQueries implements StoreTx over a live transaction.
type pgQueries struct {
	q dbtx
}

// mapStorageErr converts concurrency aborts into ErrConflict. A losing
// serialization failure (40001) or exclusion violation (23P01) is
// indistinguishable from a lost race from the caller's perspective.
func mapStorageErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "23P01":
			return fmt.Errorf("%w (storage: %s)", ErrConflict, pgErr.Code)
		}
	}
	return err
}

func (s *PgStore) RunInTx(ctx context.Context, fn func(StoreTx) error) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to begin reservation transaction: %v", err)
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgQueries{q: tx}); err != nil {
		return mapStorageErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.WarnLogger.Warnf("Reservation transaction failed to commit: %v", err)
		return mapStorageErr(err)
	}
	return nil
}

func hasOverlap(ctx context.Context, q dbtx, area string, start, end time.Time) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE area = $1 AND status = 'confirmed'
			AND NOT (end_time <= $2 OR start_time >= $3)
		)`, area, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("overlap check for area %q: %w", area, mapStorageErr(err))
	}
	return exists, nil
}

func (t *pgQueries) HasOverlap(ctx context.Context, area string, start, end time.Time) (bool, error) {
	return hasOverlap(ctx, t.q, area, start, end)
}

func (t *pgQueries) CountUpcoming(ctx context.Context, unitID int64, winStart, winEnd time.Time) (int, error) {
	var count int
	err := t.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE unit_id = $1 AND status = 'confirmed'
		AND start_time >= $2 AND start_time <= $3`,
		unitID, winStart, winEnd).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("quota count for unit %d: %w", unitID, mapStorageErr(err))
	}
	return count, nil
}

func (t *pgQueries) Insert(ctx context.Context, unitID int64, area string, start, end time.Time, status Status) (*Reservation, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reservation id: %w", err)
	}
	now := time.Now()

	res := &Reservation{
		ID:        id,
		UnitID:    unitID,
		Area:      area,
		StartTime: start,
		EndTime:   end,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = t.q.Exec(ctx, `
		INSERT INTO reservations (id, unit_id, area, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		res.ID, res.UnitID, res.Area, res.StartTime, res.EndTime, res.Status, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert reservation for unit %d: %v", unitID, err)
		return nil, mapStorageErr(err)
	}
	return res, nil
}

func (s *PgStore) HasOverlap(ctx context.Context, area string, start, end time.Time) (bool, error) {
	return hasOverlap(ctx, s.db, area, start, end)
}

const reservationColumns = `id, unit_id, area, start_time, end_time, status, created_at, updated_at`

func scanReservation(row pgx.Row) (*Reservation, error) {
	res := &Reservation{}
	err := row.Scan(
		&res.ID, &res.UnitID, &res.Area, &res.StartTime,
		&res.EndTime, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *PgStore) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	res, err := scanReservation(s.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch reservation %s: %v", id, err)
		return nil, fmt.Errorf("fetch reservation: %w", err)
	}
	return res, nil
}

func (s *PgStore) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Reservation, error) {
	res, err := scanReservation(s.db.QueryRow(ctx, `
		UPDATE reservations SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+reservationColumns,
		id, status, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.ErrorLogger.Errorf("Failed to update reservation %s status: %v", id, err)
		return nil, fmt.Errorf("update reservation status: %w", err)
	}
	return res, nil
}

func (s *PgStore) listQuery(ctx context.Context, query string, args ...any) ([]Reservation, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list reservations: %v", err)
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		var res Reservation
		err := rows.Scan(
			&res.ID, &res.UnitID, &res.Area, &res.StartTime,
			&res.EndTime, &res.Status, &res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (s *PgStore) ListAll(ctx context.Context) ([]Reservation, error) {
	return s.listQuery(ctx,
		`SELECT `+reservationColumns+` FROM reservations ORDER BY start_time DESC`)
}

func (s *PgStore) ListByOwner(ctx context.Context, ownerID int64) ([]Reservation, error) {
	return s.listQuery(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		WHERE unit_id IN (SELECT id FROM units WHERE owner_id = $1)
		ORDER BY start_time DESC`, ownerID)
}
