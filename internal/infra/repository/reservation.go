package repository

import (
	"context"
	"errors"
	"log/slog"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
	"slot-booking/internal/infra/db"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation = "23505"

	existsBySlotSQL = `SELECT EXISTS (SELECT 1 FROM reservations WHERE slot = $1)`

	createReservationSQL = `
		INSERT INTO reservations (id, owner_id, slot, duration_hours, created_at)
		VALUES ($1, $2, $3, $4, $5)`
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) ExistsBySlot(ctx context.Context, s slot.ID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, existsBySlotSQL, string(s)).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr(slog.Default(), infra.BackendPostgres, infra.KindDBFailure, "failed to check slot", err)
	}
	return exists, nil
}

func (r *ReservationRepository) Create(ctx context.Context, rec *reservation.Record) error {
	_, err := r.db.Exec(ctx, createReservationSQL,
		rec.ID(), rec.OwnerID(), string(rec.Slot()), rec.DurationHours(), rec.CreatedAt())
	if err != nil {
		if isUniqueViolation(err) {
			return reservation.NewConflictError(rec.Slot())
		}
		return infra.WrapRepoErr(slog.Default(), infra.BackendPostgres, infra.KindDBFailure, "failed to create reservation", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
