package memstore

import (
	"context"
	"sync"

	"slot-booking/internal/domain/account"
	"slot-booking/internal/pkg/errs"
)

type AccountStore struct {
	mu       sync.Mutex
	accounts map[string]*account.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[string]*account.Account)}
}

func (s *AccountStore) FindByLineUserID(_ context.Context, lineUserID account.LineUserID) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[lineUserID.Value()]
	if !ok {
		return nil, errs.Mark(errs.Newf("no account for %s", lineUserID), errs.ErrAccountNotFound)
	}
	return acc, nil
}

func (s *AccountStore) CreateIfAbsent(_ context.Context, acc *account.Account) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := acc.LineUserID().Value()
	if existing, ok := s.accounts[key]; ok {
		return existing, nil
	}
	s.accounts[key] = acc
	return acc, nil
}
