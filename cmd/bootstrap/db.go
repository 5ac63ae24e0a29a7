package bootstrap

import (
	"context"
	"log/slog"

	"order-core/internal/infra/db"
	"order-core/internal/infra/memstore"
	"order-core/internal/infra/migrations"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/infra/uow"
	"order-core/internal/pkg/config"
	"order-core/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork opens the store selected by STORE_DRIVER. The Postgres pool is
// only dialed when that driver is chosen.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("Using in-memory store; data is lost on restart")
		return memstore.NewUnitOfWork(memstore.New(logger)), nil
	}

	if cfg.Store.AutoMigrate {
		if err := migrations.Up(cfg.DB.BuildMigrateURL(), logger); err != nil {
			return nil, err
		}
	}

	pool, err := NewDB(lc, cfg)
	if err != nil {
		return nil, err
	}
	return uow.NewPostgresUoW(pool, sqlc.New(), logger), nil
}

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
