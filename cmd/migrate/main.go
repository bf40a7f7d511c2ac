// Command migrate applies the SQL files under migrations/ in order, recording
// each applied version in schema_migrations with a checksum so a changed file
// is caught instead of silently re-run.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"billing-tool/internal/db"
	"billing-tool/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const advisoryLockKey = 4185112

func main() {
	_ = godotenv.Load()
	logger.Setup()
	log := logger.WithComponent("migrate")

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	conn := acquireLock(ctx, pool, log)
	defer conn.Release()

	setupSchemaMigrations(ctx, pool, log)

	for _, filename := range discoverMigrations(log) {
		applyMigration(ctx, pool, filename, log)
	}

	log.Info().Msg("all migrations processed")
}

func acquireLock(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) *pgxpool.Conn {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("acquiring connection for lock")
	}

	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", advisoryLockKey).Scan(&locked); err != nil {
		log.Fatal().Err(err).Msg("querying advisory lock")
	}
	if !locked {
		log.Fatal().Msg("another migrator is currently running")
	}
	return conn
}

func setupSchemaMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) {
	query := `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`
	if _, err := pool.Exec(ctx, query); err != nil {
		log.Fatal().Err(err).Msg("creating schema_migrations table")
	}
}

func discoverMigrations(log zerolog.Logger) []string {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		log.Fatal().Err(err).Msg("reading migrations directory")
	}

	var filenames []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version := extractVersion(entry.Name(), log)
		if seen[version] {
			log.Fatal().Str("version", version).Msg("duplicate migration version")
		}
		seen[version] = true
		filenames = append(filenames, entry.Name())
	}

	sort.Strings(filenames)
	return filenames
}

func extractVersion(filename string, log zerolog.Logger) string {
	parts := strings.SplitN(filename, "_", 2)
	if len(parts) < 2 {
		log.Fatal().Str("file", filename).Msg("migration filename must be NNN_description.sql")
	}
	return parts[0]
}

func checksumFile(filename string, log zerolog.Logger) string {
	bytes, err := os.ReadFile(filepath.Join("migrations", filename))
	if err != nil {
		log.Fatal().Err(err).Str("file", filename).Msg("reading migration for checksum")
	}
	hash := sha256.Sum256(bytes)
	return hex.EncodeToString(hash[:])
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, filename string, log zerolog.Logger) {
	version := extractVersion(filename, log)
	checksum := checksumFile(filename, log)

	var existing string
	err := pool.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", version).Scan(&existing)
	switch {
	case err == nil:
		if existing == checksum {
			log.Info().Str("file", filename).Msg("skip")
			return
		}
		log.Fatal().Str("file", filename).Msg("checksum mismatch: migration file changed after apply")
	case errors.Is(err, pgx.ErrNoRows):
		// not applied yet
	default:
		log.Fatal().Err(err).Str("file", filename).Msg("querying schema_migrations")
	}

	sqlBytes, err := os.ReadFile(filepath.Join("migrations", filename))
	if err != nil {
		log.Fatal().Err(err).Str("file", filename).Msg("reading migration file")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("file", filename).Msg("beginning transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(sqlBytes)); err != nil {
		log.Fatal().Err(err).Str("file", filename).Msg("executing migration")
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO schema_migrations (version, filename, checksum) VALUES ($1, $2, $3)",
		version, filename, checksum); err != nil {
		log.Fatal().Err(err).Str("file", filename).Msg("recording migration")
	}
	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Str("file", filename).Msg("committing migration")
	}

	log.Info().Str("file", filename).Msg("applied")
}
