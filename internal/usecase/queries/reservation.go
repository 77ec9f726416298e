package queries

import (
	"context"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/errs"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation_mock.go -package=queriesmock

type ReservationQueries interface {
	ListBySlotRange(ctx context.Context, start, end string) ([]*reservation.Record, error)
}

// ReservationLedger is the read half of the ledger.
type ReservationLedger interface {
	Query(ctx context.Context, start, end slot.ID) ([]*reservation.Record, error)
}

type reservationQueriesImpl struct {
	ledger ReservationLedger
}

func NewReservationQueries(ledger ReservationLedger) ReservationQueries {
	return &reservationQueriesImpl{ledger: ledger}
}

func (q *reservationQueriesImpl) ListBySlotRange(ctx context.Context, start, end string) ([]*reservation.Record, error) {
	startID, err := slot.ParseID(start)
	if err != nil {
		return nil, err
	}
	endID, err := slot.ParseID(end)
	if err != nil {
		return nil, err
	}
	if startID > endID {
		return nil, errs.Mark(errs.Newf("start %s is after end %s", startID, endID), errs.ErrSlotFormat)
	}
	return q.ledger.Query(ctx, startID, endID)
}
