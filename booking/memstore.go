package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for local development and tests. A single
// mutex serializes every transaction, which makes the RunInTx contract hold
// trivially. It also keeps a unit->owner map so it can double as the
// ownership directory when no real unit service is around.
type MemStore struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*Reservation
	owners       map[int64]int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		reservations: make(map[uuid.UUID]*Reservation),
		owners:       make(map[int64]int64),
	}
}

// RegisterUnit records ownerID as the owner of unitID for ResolveOwner and
// ListByOwner lookups.
func (m *MemStore) RegisterUnit(unitID, ownerID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[unitID] = ownerID
}

// ResolveOwner implements OwnerResolver.
func (m *MemStore) ResolveOwner(_ context.Context, unitID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ownerID, ok := m.owners[unitID]
	if !ok {
		return 0, ErrOwnerNotFound
	}
	return ownerID, nil
}

func (m *MemStore) RunInTx(_ context.Context, fn func(StoreTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(memTx{m})
}

// memTx exposes the transactional primitives over an already-locked store.
type memTx struct {
	m *MemStore
}

func (t memTx) HasOverlap(_ context.Context, area string, start, end time.Time) (bool, error) {
	return t.m.hasOverlapLocked(area, start, end), nil
}

func (t memTx) CountUpcoming(_ context.Context, unitID int64, winStart, winEnd time.Time) (int, error) {
	count := 0
	for _, res := range t.m.reservations {
		if res.UnitID != unitID || res.Status != StatusConfirmed {
			continue
		}
		if !res.StartTime.Before(winStart) && !res.StartTime.After(winEnd) {
			count++
		}
	}
	return count, nil
}

func (t memTx) Insert(_ context.Context, unitID int64, area string, start, end time.Time, status Status) (*Reservation, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
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
	t.m.reservations[id] = res
	copied := *res
	return &copied, nil
}

func (m *MemStore) hasOverlapLocked(area string, start, end time.Time) bool {
	for _, res := range m.reservations {
		if res.Area != area || res.Status != StatusConfirmed {
			continue
		}
		if Overlaps(start, end, res.StartTime, res.EndTime) {
			return true
		}
	}
	return false
}

func (m *MemStore) HasOverlap(_ context.Context, area string, start, end time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasOverlapLocked(area, start, end), nil
}

func (m *MemStore) GetByID(_ context.Context, id uuid.UUID) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *res
	return &copied, nil
}

func (m *MemStore) SetStatus(_ context.Context, id uuid.UUID, status Status) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	res.Status = status
	res.UpdatedAt = time.Now()
	copied := *res
	return &copied, nil
}

func (m *MemStore) listLocked(match func(*Reservation) bool) []Reservation {
	var out []Reservation
	for _, res := range m.reservations {
		if match(res) {
			out = append(out, *res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}

func (m *MemStore) ListAll(_ context.Context) ([]Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listLocked(func(*Reservation) bool { return true }), nil
}

func (m *MemStore) ListByOwner(_ context.Context, ownerID int64) ([]Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listLocked(func(res *Reservation) bool {
		return m.owners[res.UnitID] == ownerID
	}), nil
}
