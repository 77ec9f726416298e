package shared

import (
	"context"

	"slot-booking/internal/domain/account"
)

//go:generate mockgen -source=identity.go -destination=../../../tests/mock/shared/identity_mock.go -package=sharedmock

type AccountStore interface {
	// FindByLineUserID returns errs.ErrAccountNotFound when no account exists.
	FindByLineUserID(ctx context.Context, lineUserID account.LineUserID) (*account.Account, error)
	// CreateIfAbsent stores acc unless an account for the same LINE user
	// already exists, and returns whichever account is stored afterwards.
	CreateIfAbsent(ctx context.Context, acc *account.Account) (*account.Account, error)
}
