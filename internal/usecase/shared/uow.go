package shared

import (
	"context"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow_mock.go -package=sharedmock

type UnitOfWork interface {
	// Within runs fn in one store transaction. Writes made through tx are
	// visible to other callers only if fn returns nil and commit succeeds.
	// Implementations may re-run fn on transient store conflicts.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
}

type ReservationRepository interface {
	ExistsBySlot(ctx context.Context, s slot.ID) (bool, error)
	// Create returns *reservation.ConflictError when the slot is already taken.
	Create(ctx context.Context, rec *reservation.Record) error
}

// ReservationReadStore serves committed records outside any transaction.
type ReservationReadStore interface {
	// FindBySlotRange returns records with start <= slot <= end, ordered by slot.
	FindBySlotRange(ctx context.Context, start, end slot.ID) ([]*reservation.Record, error)
}
