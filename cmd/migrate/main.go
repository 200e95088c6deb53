// migrate aplica las migraciones goose embebidas.
//
// Uso: go run ./cmd/migrate [up|down|status|redo|version]
package main

import (
	"context"
	"os"

	"github.com/jhoicas/bodega/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega/pkg/config"
	"github.com/jhoicas/bodega/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if err := postgres.Migrate(context.Background(), cfg.DB.ConnectionString(), command, log); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migraciones")
	}
	log.Info().Str("command", command).Msg("migraciones completadas")
}
