package bootstrap

import (
	"context"
	"log/slog"

	"slot-booking/internal/infra/memstore"
	"slot-booking/internal/infra/redisstore"
	"slot-booking/internal/infra/repository"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var IdentityModule = fx.Module("identity",
	fx.Provide(
		NewAccountStore,
	),
)

// NewAccountStore prefers redis when REDIS_ADDR is set, then the postgres
// pool of the reservation store, then process memory.
func NewAccountStore(lc fx.Lifecycle, cfg config.Config, backend *StoreBackend) (shared.AccountStore, error) {
	if cfg.Redis.Addr != "" {
		rdb := redisstore.NewClient(cfg.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), storeStartupTimeout)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, errs.Wrap(err, "failed to ping redis")
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return rdb.Close()
			},
		})
		slog.Info("account store ready", "backend", "redis", "addr", cfg.Redis.Addr)
		return redisstore.NewAccountStore(rdb), nil
	}
	if backend.Pool != nil {
		slog.Info("account store ready", "backend", "postgres")
		return repository.NewAccountRepository(backend.Pool), nil
	}
	slog.Warn("account store is process-local", "backend", "memory")
	return memstore.NewAccountStore(), nil
}
