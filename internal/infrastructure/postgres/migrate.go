package postgres

import (
	"context"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx" para database/sql
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/bodega/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate ejecuta un comando de goose (up, down, status, version, redo) con las migraciones embebidas.
func Migrate(ctx context.Context, dsn, command string, log *logger.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("abrir DB para migraciones: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := goose.RunContext(ctx, command, db, migrationsDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// gooseLogger adapta el logger de la app a goose.Logger.
type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msgf(format, v...)
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Str("component", "goose").Msgf(format, v...)
}
