// Package storage arma los repositorios según DB_DRIVER (postgres o memory).
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/internal/domain/repository"
	"github.com/jhoicas/bodega/internal/infrastructure/memory"
	"github.com/jhoicas/bodega/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega/pkg/config"
	"github.com/jhoicas/bodega/pkg/logger"
)

// Repositories puertos de persistencia listos para inyectar.
type Repositories struct {
	Products    repository.ProductRepository
	Arrivals    repository.ArrivalRepository
	Corrections repository.CorrectionRepository
	Users       repository.UserRepository
	Dashboard   repository.DashboardRepository
	TxRunner    inventory.TxRunner

	close func()
}

// Close libera el pool de conexiones (no hace nada en memoria).
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open conecta con PostgreSQL (aplicando migraciones si AutoMigrate) o crea el store en memoria.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Repositories, error) {
	if cfg.InMemory() {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &Repositories{
			Products:    s.Products(),
			Arrivals:    s.Arrivals(),
			Corrections: s.Corrections(),
			Users:       s.Users(),
			Dashboard:   s.Dashboard(),
			TxRunner:    s.TxRunner(),
		}, nil
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.ConnectionString(), "up", log.Named("goose")); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Products:    postgres.NewProductRepository(pool),
		Arrivals:    postgres.NewArrivalRepository(pool),
		Corrections: postgres.NewCorrectionRepository(pool),
		Users:       postgres.NewUserRepository(pool),
		Dashboard:   postgres.NewDashboardRepository(pool),
		TxRunner:    postgres.NewTxRunner(pool),
		close:       pool.Close,
	}, nil
}
