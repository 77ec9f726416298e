package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"slot-booking/internal/infra/db"
	"slot-booking/internal/infra/memstore"
	"slot-booking/internal/infra/mongostore"
	"slot-booking/internal/infra/readstore"
	"slot-booking/internal/infra/retry"
	"slot-booking/internal/infra/uow"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const storeStartupTimeout = 30 * time.Second

// StoreBackend is the reservation store picked by STORE_DRIVER. Pool is set
// only for the postgres driver.
type StoreBackend struct {
	UnitOfWork shared.UnitOfWork
	Reads      shared.ReservationReadStore
	Pool       *pgxpool.Pool
}

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStoreBackend,
		func(b *StoreBackend) shared.UnitOfWork { return b.UnitOfWork },
		func(b *StoreBackend) shared.ReservationReadStore { return b.Reads },
	),
)

func NewStoreBackend(lc fx.Lifecycle, cfg config.Config) (*StoreBackend, error) {
	policy := retry.Policy{MaxRetries: cfg.Ledger.MaxTxRetries, Base: retry.DefaultPolicy.Base}

	ctx, cancel := context.WithTimeout(context.Background(), storeStartupTimeout)
	defer cancel()

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				pool.Close()
				return nil
			},
		})
		slog.Info("reservation store ready", "driver", cfg.Store.Driver, "database", cfg.DB.DBName)
		return &StoreBackend{
			UnitOfWork: uow.NewPostgresUoW(pool, policy),
			Reads:      readstore.NewReservationReadStore(pool),
			Pool:       pool,
		}, nil

	case config.StoreDriverMongo:
		client, err := mongostore.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		store := mongostore.NewStore(client, cfg.Mongo.Database, policy)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Disconnect(ctx)
			},
		})
		slog.Info("reservation store ready", "driver", cfg.Store.Driver, "database", cfg.Mongo.Database)
		return &StoreBackend{UnitOfWork: store, Reads: store}, nil

	case config.StoreDriverMemory:
		store := memstore.NewReservationStore()
		slog.Warn("reservation store is process-local; bookings are lost on restart", "driver", cfg.Store.Driver)
		return &StoreBackend{UnitOfWork: store, Reads: store}, nil

	default:
		return nil, errs.Newf("unknown store driver %q", cfg.Store.Driver)
	}
}
