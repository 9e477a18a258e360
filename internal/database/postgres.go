package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/AnshRaj112/diary-backend/internal/store"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// ConnectPostgres opens the pool and creates the tables the service needs.
func ConnectPostgres(ctx context.Context, postgresURI string, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("connected to PostgreSQL")

	if err = InitPostgresTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(20) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,

		`CREATE TABLE IF NOT EXISTS activity_events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID REFERENCES users(id) ON DELETE SET NULL,
			path VARCHAR(500) NOT NULL,
			event_type VARCHAR(50) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		store.BackupTableSchema,

		`CREATE INDEX IF NOT EXISTS idx_activity_events_created_at ON activity_events(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_events_user_id ON activity_events(user_id)`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
