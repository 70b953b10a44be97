package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"social-service/internal/config"
	"social-service/internal/logger"
)

// Connect opens the Postgres pool and applies migrations.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := RunMigrations(migrateCtx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
            id SERIAL PRIMARY KEY,
            username VARCHAR(150) NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE TABLE IF NOT EXISTS posts (
            id SERIAL PRIMARY KEY,
            author_id INT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
            content TEXT NOT NULL,
            image_path TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE INDEX IF NOT EXISTS posts_author_created_idx ON posts (author_id, created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS friendship_requests (
            id SERIAL PRIMARY KEY,
            from_user_id INT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
            to_user_id INT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
            is_approved BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE(from_user_id, to_user_id),
            CHECK (from_user_id <> to_user_id)
        );`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
            id SERIAL PRIMARY KEY,
            sender_id INT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
            receiver_id INT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
            message TEXT NOT NULL,
            timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            is_read BOOLEAN NOT NULL DEFAULT FALSE
        );`,
	`CREATE INDEX IF NOT EXISTS chat_messages_unread_idx ON chat_messages (receiver_id, sender_id) WHERE is_read = FALSE;`,
	`CREATE TABLE IF NOT EXISTS events (
            id SERIAL PRIMARY KEY,
            owner_id INT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
            title VARCHAR(100) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            date DATE NOT NULL
        );`,
}

// RunMigrations creates the schema if it does not exist yet.
func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return err
		}
	}
	logger.Info().Int("statements", len(migrations)).Msg("database migrations applied")
	return nil
}
