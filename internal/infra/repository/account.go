package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slot-booking/internal/domain/account"
	"slot-booking/internal/infra"
	"slot-booking/internal/infra/db"
	"slot-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	findAccountSQL = `SELECT id, line_user_id, created_at FROM accounts WHERE line_user_id = $1`

	// DO UPDATE with a no-op keeps RETURNING populated for the existing row.
	upsertAccountSQL = `
		INSERT INTO accounts (id, line_user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (line_user_id) DO UPDATE SET line_user_id = EXCLUDED.line_user_id
		RETURNING id, line_user_id, created_at`
)

type AccountRepository struct {
	db db.DBTX
}

func NewAccountRepository(dbtx db.DBTX) *AccountRepository {
	return &AccountRepository{db: dbtx}
}

func (r *AccountRepository) FindByLineUserID(ctx context.Context, lineUserID account.LineUserID) (*account.Account, error) {
	acc, err := scanAccount(r.db.QueryRow(ctx, findAccountSQL, lineUserID.Value()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.Mark(
				infra.WrapRepoErr(slog.Default(), infra.BackendPostgres, infra.KindNotFound, "account not found", err),
				errs.ErrAccountNotFound,
			)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.BackendPostgres, infra.KindDBFailure, "failed to find account", err)
	}
	return acc, nil
}

func (r *AccountRepository) CreateIfAbsent(ctx context.Context, acc *account.Account) (*account.Account, error) {
	stored, err := scanAccount(r.db.QueryRow(ctx, upsertAccountSQL, acc.ID(), acc.LineUserID().Value(), acc.CreatedAt()))
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.BackendPostgres, infra.KindDBFailure, "failed to create account", err)
	}
	return stored, nil
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var (
		id        uuid.UUID
		lineID    string
		createdAt time.Time
	)
	if err := row.Scan(&id, &lineID, &createdAt); err != nil {
		return nil, err
	}
	lineUserID, err := account.NewLineUserID(lineID)
	if err != nil {
		return nil, err
	}
	return account.ReconstructAccount(id, lineUserID, createdAt), nil
}
