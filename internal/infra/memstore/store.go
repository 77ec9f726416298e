package memstore

import (
	"context"
	"sort"
	"sync"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/usecase/shared"
)

// ReservationStore keeps reservations in process memory. Transactions are
// serialized by a single lock and writes are staged until fn returns nil.
type ReservationStore struct {
	mu      sync.RWMutex
	records map[slot.ID]*reservation.Record
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{records: make(map[slot.ID]*reservation.Record)}
}

func (s *ReservationStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{store: s, staged: make(map[slot.ID]*reservation.Record)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for id, rec := range tx.staged {
		s.records[id] = rec
	}
	return nil
}

func (s *ReservationStore) FindBySlotRange(ctx context.Context, start, end slot.ID) ([]*reservation.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*reservation.Record, 0)
	for id, rec := range s.records {
		if id >= start && id <= end {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slot() < result[j].Slot() })
	return result, nil
}

// Len reports the number of committed records.
func (s *ReservationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

type memTx struct {
	store  *ReservationStore
	staged map[slot.ID]*reservation.Record
}

func (t *memTx) Reservations() shared.ReservationRepository {
	return t
}

func (t *memTx) ExistsBySlot(ctx context.Context, s slot.ID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, ok := t.staged[s]; ok {
		return true, nil
	}
	_, ok := t.store.records[s]
	return ok, nil
}

func (t *memTx) Create(ctx context.Context, rec *reservation.Record) error {
	taken, err := t.ExistsBySlot(ctx, rec.Slot())
	if err != nil {
		return err
	}
	if taken {
		return reservation.NewConflictError(rec.Slot())
	}
	t.staged[rec.Slot()] = rec
	return nil
}
