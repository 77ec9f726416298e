package readstore

import (
	"context"
	"log/slog"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
	"slot-booking/internal/infra/db"

	"github.com/google/uuid"
)

const findBySlotRangeSQL = `
	SELECT id, owner_id, slot, duration_hours, created_at
	FROM reservations
	WHERE slot >= $1 AND slot <= $2
	ORDER BY slot`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindBySlotRange(ctx context.Context, start, end slot.ID) ([]*reservation.Record, error) {
	rows, err := r.db.Query(ctx, findBySlotRangeSQL, string(start), string(end))
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.BackendPostgres, infra.KindDBFailure, "failed to query reservations", err)
	}
	defer rows.Close()

	result := make([]*reservation.Record, 0)
	for rows.Next() {
		var (
			id            uuid.UUID
			ownerID       string
			slotID        string
			durationHours int
			createdAt     time.Time
		)
		if err := rows.Scan(&id, &ownerID, &slotID, &durationHours, &createdAt); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.BackendPostgres, infra.KindDBFailure, "failed to scan reservation", err)
		}
		result = append(result, reservation.ReconstructRecord(id, ownerID, slot.ID(slotID), durationHours, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.BackendPostgres, infra.KindDBFailure, "failed to iterate reservations", err)
	}
	return result, nil
}
