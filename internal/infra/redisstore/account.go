package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"slot-booking/internal/domain/account"
	"slot-booking/internal/infra"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type accountDoc struct {
	ID         string    `json:"id"`
	LineUserID string    `json:"lineUserId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AccountStore struct {
	rdb    *redis.Client
	prefix string
}

type Option func(*AccountStore)

func WithPrefix(prefix string) Option {
	return func(s *AccountStore) { s.prefix = strings.Trim(prefix, ":") }
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewAccountStore(rdb *redis.Client, opts ...Option) *AccountStore {
	s := &AccountStore{rdb: rdb, prefix: "slot-booking:account"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AccountStore) key(lineUserID account.LineUserID) string {
	return s.prefix + ":line:" + lineUserID.Value()
}

func (s *AccountStore) FindByLineUserID(ctx context.Context, lineUserID account.LineUserID) (*account.Account, error) {
	raw, err := s.rdb.Get(ctx, s.key(lineUserID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.Mark(
				infra.WrapRepoErr(slog.Default(), infra.BackendRedis, infra.KindNotFound, "account not found", err),
				errs.ErrAccountNotFound,
			)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.BackendRedis, infra.KindDBFailure, "failed to get account", err)
	}
	return decode(raw)
}

// CreateIfAbsent uses SETNX so concurrent first logins agree on one account.
func (s *AccountStore) CreateIfAbsent(ctx context.Context, acc *account.Account) (*account.Account, error) {
	raw, err := json.Marshal(accountDoc{
		ID:         acc.ID().String(),
		LineUserID: acc.LineUserID().Value(),
		CreatedAt:  acc.CreatedAt().UTC(),
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode account")
	}

	created, err := s.rdb.SetNX(ctx, s.key(acc.LineUserID()), raw, 0).Result()
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.BackendRedis, infra.KindDBFailure, "failed to create account", err)
	}
	if created {
		return acc, nil
	}
	return s.FindByLineUserID(ctx, acc.LineUserID())
}

func decode(raw []byte) (*account.Account, error) {
	var doc accountDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.Wrap(err, "failed to decode account")
	}
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errs.Wrap(err, "invalid account id")
	}
	lineUserID, err := account.NewLineUserID(doc.LineUserID)
	if err != nil {
		return nil, err
	}
	return account.ReconstructAccount(id, lineUserID, doc.CreatedAt), nil
}
