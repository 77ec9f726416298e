//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"slot-booking/internal/domain/account"
	"slot-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFindByLineUserID(t *testing.T) {
	lineID, err := account.NewLineUserID("U123")
	require.NoError(t, err)
	id := uuid.New()
	createdAt := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		row          stubRow
		wantNotFound bool
		wantStore    bool
	}{
		{name: "found", row: stubRow{vals: []any{id, "U123", createdAt}}},
		{name: "not found", row: stubRow{err: pgx.ErrNoRows}, wantNotFound: true},
		{name: "database error", row: stubRow{err: assert.AnError}, wantStore: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := new(MockDBTX)
			mockDB.On("QueryRow", mock.Anything, findAccountSQL, []any{"U123"}).Return(tt.row)

			acc, err := NewAccountRepository(mockDB).FindByLineUserID(context.Background(), lineID)

			switch {
			case tt.wantNotFound:
				assert.True(t, errs.Is(err, errs.ErrAccountNotFound))
				assert.False(t, errs.Is(err, errs.ErrStoreFailure))
			case tt.wantStore:
				assert.True(t, errs.Is(err, errs.ErrStoreFailure))
				assert.False(t, errs.Is(err, errs.ErrAccountNotFound))
			default:
				require.NoError(t, err)
				assert.Equal(t, id, acc.ID())
				assert.Equal(t, "U123", acc.LineUserID().Value())
				assert.True(t, createdAt.Equal(acc.CreatedAt()))
			}
		})
	}
}

func TestCreateIfAbsent_ReturnsStoredAccount(t *testing.T) {
	lineID, err := account.NewLineUserID("U123")
	require.NoError(t, err)
	candidate := account.NewAccount(lineID, time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC))

	existingID := uuid.New()
	existingAt := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	mockDB := new(MockDBTX)
	mockDB.On("QueryRow", mock.Anything, upsertAccountSQL, []any{candidate.ID(), "U123", candidate.CreatedAt()}).
		Return(stubRow{vals: []any{existingID, "U123", existingAt}})

	stored, err := NewAccountRepository(mockDB).CreateIfAbsent(context.Background(), candidate)

	require.NoError(t, err)
	assert.Equal(t, existingID, stored.ID())
	mockDB.AssertExpectations(t)
}
