package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"
)

const (
	DefaultCacheTTL     = 60 * time.Second
	DefaultStoreTimeout = 5 * time.Second
)

type Options struct {
	CacheTTL     time.Duration
	StoreTimeout time.Duration
}

// Ledger commits multi-slot reservations atomically and serves range queries
// through a short-lived cache. It is safe for concurrent use.
type Ledger struct {
	uow          shared.UnitOfWork
	reads        shared.ReservationReadStore
	cache        *queryCache
	clock        clock.Clock
	storeTimeout time.Duration
}

func New(uow shared.UnitOfWork, reads shared.ReservationReadStore, clk clock.Clock, opts Options) *Ledger {
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = DefaultStoreTimeout
	}
	return &Ledger{
		uow:          uow,
		reads:        reads,
		cache:        newQueryCache(clk, opts.CacheTTL),
		clock:        clk,
		storeTimeout: opts.StoreTimeout,
	}
}

// Reserve persists one record per slot, or none. Every slot is checked
// inside the transaction before anything is written; the first taken slot
// aborts the whole request with *reservation.ConflictError.
func (l *Ledger) Reserve(ctx context.Context, ownerID string, slots []slot.ID, durationHours int) error {
	if len(slots) == 0 {
		return errs.Mark(errs.New("reservation needs at least one slot"), errs.ErrSlotFormat)
	}
	seen := make(map[slot.ID]struct{}, len(slots))
	for _, s := range slots {
		if _, dup := seen[s]; dup {
			return errs.Mark(errs.Newf("slot %s requested twice", s), errs.ErrSlotFormat)
		}
		seen[s] = struct{}{}
	}

	ctx, cancel := context.WithTimeout(ctx, l.storeTimeout)
	defer cancel()

	records := reservation.NewRecords(ownerID, slots, durationHours, l.clock.Now())

	err := l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Reservations()
		for _, s := range slots {
			taken, err := repo.ExistsBySlot(ctx, s)
			if err != nil {
				return err
			}
			if taken {
				return reservation.NewConflictError(s)
			}
		}
		for _, rec := range records {
			if err := repo.Create(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return classify(ctx, err, "reserve")
	}

	l.cache.invalidate()
	slog.Debug("reservation committed", "owner", ownerID, "slots", len(slots), "first", slots[0])
	return nil
}

// Query returns committed records with start <= slot <= end in slot order.
func (l *Ledger) Query(ctx context.Context, start, end slot.ID) ([]*reservation.Record, error) {
	key := rangeKey{start: start, end: end}
	cached, gen, ok := l.cache.get(key)
	if ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.storeTimeout)
	defer cancel()

	records, err := l.reads.FindBySlotRange(ctx, start, end)
	if err != nil {
		return nil, classify(ctx, err, "query")
	}
	if records == nil {
		records = []*reservation.Record{}
	}

	l.cache.put(key, gen, records)
	return records, nil
}

// Invalidate drops the cached query result.
func (l *Ledger) Invalidate() {
	l.cache.invalidate()
}

func classify(ctx context.Context, err error, op string) error {
	if _, ok := reservation.AsConflict(err); ok {
		return err
	}
	if errs.Is(err, errs.ErrStoreTimeout) {
		return err
	}
	// Drivers surface an expired deadline as an ordinary store failure.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errs.Mark(errs.Wrap(err, op), errs.ErrStoreTimeout)
	}
	switch errs.KindOf(err) {
	case errs.KindStore, errs.KindFormat:
		return err
	}
	return errs.Mark(errs.Wrap(err, op), errs.ErrStoreFailure)
}
