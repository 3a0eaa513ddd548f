// Package main provides the database migration CLI tool.
// This command-line utility manages database schema migrations using goose.
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/archypix/arrangement-engine/internal/infrastructure/persistence/postgres"
	"github.com/archypix/arrangement-engine/internal/infrastructure/secrets"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	command := flag.String("command", "up", "goose command to run: up, down, status, version")
	migrationsDir := flag.String("migrations-dir", "migrations", "directory containing goose SQL migrations")
	flag.Parse()

	cfg := postgres.DefaultConfig()
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if db := os.Getenv("DB_NAME"); db != "" {
		cfg.Database = db
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}

	provider, err := secrets.NewProvider(secrets.SecretConfig{Provider: "env"})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize secret provider")
	}
	cfg.Password = provider.GetSecretWithDefault(context.Background(), secrets.SecretDBPassword, cfg.Password)

	sqlxDB, err := postgres.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() { _ = postgres.Close(sqlxDB) }()

	db := sqlxDB.DB
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("failed to set goose dialect")
	}

	if err := runGoose(db, *command, *migrationsDir); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("migration failed")
	}
	log.Info().Str("command", *command).Msg("migration command completed")
}

func runGoose(db *sql.DB, command, dir string) error {
	switch command {
	case "up":
		return goose.Up(db, dir)
	case "down":
		return goose.Down(db, dir)
	case "status":
		return goose.Status(db, dir)
	case "version":
		return goose.Version(db, dir)
	default:
		return goose.Up(db, dir)
	}
}
