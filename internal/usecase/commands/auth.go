package commands

import (
	"context"
	"log/slog"

	"slot-booking/internal/domain/account"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/jwt"
	"slot-booking/internal/usecase/shared"
)

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth_mock.go -package=commandsmock

type CustomTokenResult struct {
	Token     string
	AccountID string
	Created   bool
}

type AuthCommands interface {
	IssueCustomToken(ctx context.Context, lineUserID string) (*CustomTokenResult, error)
}

type authCommandsImpl struct {
	accounts   shared.AccountStore
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(accounts shared.AccountStore, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		accounts:   accounts,
		jwtService: jwtService,
		clock:      clk,
	}
}

// IssueCustomToken finds the account for lineUserID, creating it on first
// sight, and signs a session token for it.
func (a *authCommandsImpl) IssueCustomToken(ctx context.Context, lineUserID string) (*CustomTokenResult, error) {
	lineID, err := account.NewLineUserID(lineUserID)
	if err != nil {
		return nil, err
	}

	created := false
	acc, err := a.accounts.FindByLineUserID(ctx, lineID)
	if err != nil {
		if !errs.Is(err, errs.ErrAccountNotFound) {
			return nil, errs.Wrap(err, "failed to look up account")
		}
		acc, err = a.accounts.CreateIfAbsent(ctx, account.NewAccount(lineID, a.clock.Now()))
		if err != nil {
			return nil, errs.Wrap(err, "failed to create account")
		}
		created = true
		slog.Info("account created", "account_id", acc.ID(), "line_user_id", lineID.Value())
	}

	token, err := a.jwtService.GenerateToken(acc.ID(), lineID.Value())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTokenIssue)
	}

	return &CustomTokenResult{
		Token:     token,
		AccountID: acc.ID().String(),
		Created:   created,
	}, nil
}
