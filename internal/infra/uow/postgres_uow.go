package uow

import (
	"context"
	"errors"
	"log/slog"

	"slot-booking/internal/infra/db"
	"slot-booking/internal/infra/repository"
	"slot-booking/internal/infra/retry"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

// TxBeginner is the slice of *pgxpool.Pool the unit of work needs.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool   TxBeginner
	policy retry.Policy
}

func NewPostgresUoW(pool TxBeginner, policy retry.Policy) *PostgresUoW {
	return &PostgresUoW{
		pool:   pool,
		policy: policy,
	}
}

// Within runs fn under SERIALIZABLE so the check-then-insert sequence cannot
// interleave with another booking. Serialization failures re-run fn.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	err := retry.Do(ctx, u.policy, isRetryableError, func(attempt int) error {
		return u.runOnce(ctx, attempt, fn)
	})
	if err != nil && errs.Is(err, retry.ErrMaxRetriesExceeded) {
		return errs.Mark(err, errs.ErrStoreFailure)
	}
	return err
}

// Avoids defer accumulation across retries.
func (u *PostgresUoW) runOnce(ctx context.Context, attempt int, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &pgTx{dbtx: pgxTx})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
		}
	}
	return err
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	reservationRepo shared.ReservationRepository
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}
