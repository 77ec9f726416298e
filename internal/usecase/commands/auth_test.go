//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"slot-booking/internal/domain/account"
	"slot-booking/internal/infra/memstore"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/jwt"
	"slot-booking/internal/usecase/commands"
	sharedmock "slot-booking/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newJWT(clk clock.Clock) *jwt.Service {
	return jwt.NewService("test-secret", "slot-booking-test", time.Hour, clk)
}

func TestIssueCustomToken(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC))

	t.Run("first login creates the account, second reuses it", func(t *testing.T) {
		svc := newJWT(clk)
		cmd := commands.NewAuthCommands(memstore.NewAccountStore(), svc, clk)

		first, err := cmd.IssueCustomToken(ctx, "U42")
		require.NoError(t, err)
		assert.True(t, first.Created)

		second, err := cmd.IssueCustomToken(ctx, "U42")
		require.NoError(t, err)
		assert.False(t, second.Created)
		assert.Equal(t, first.AccountID, second.AccountID)

		claims, err := svc.ValidateToken(second.Token)
		require.NoError(t, err)
		assert.Equal(t, "U42", claims.LineUserID)
		assert.Equal(t, first.AccountID, claims.AccountID.String())
	})

	t.Run("missing LINE user id", func(t *testing.T) {
		cmd := commands.NewAuthCommands(memstore.NewAccountStore(), newJWT(clk), clk)
		_, err := cmd.IssueCustomToken(ctx, "  ")
		assert.ErrorIs(t, err, account.ErrMissingLineUserID)
	})

	t.Run("lookup failure other than not-found propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockAccountStore(ctrl)
		store.EXPECT().FindByLineUserID(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
		store.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Times(0)

		cmd := commands.NewAuthCommands(store, newJWT(clk), clk)
		_, err := cmd.IssueCustomToken(ctx, "U1")
		assert.ErrorContains(t, err, "redis down")
	})

	t.Run("concurrent first logins converge on the stored account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockAccountStore(ctrl)
		lineID, _ := account.NewLineUserID("U1")
		winner := account.NewAccount(lineID, clk.Now())

		store.EXPECT().FindByLineUserID(gomock.Any(), lineID).
			Return(nil, errs.Mark(errs.New("missing"), errs.ErrAccountNotFound))
		store.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(winner, nil)

		cmd := commands.NewAuthCommands(store, newJWT(clk), clk)
		res, err := cmd.IssueCustomToken(ctx, "U1")
		require.NoError(t, err)
		assert.Equal(t, winner.ID().String(), res.AccountID)
	})
}
