package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AnshRaj112/diary-backend/internal/models"
)

// BackupTableSchema is applied at startup alongside the account tables.
const BackupTableSchema = `CREATE TABLE IF NOT EXISTS journal_entry_backups (
	owner_id VARCHAR(64) NOT NULL,
	entry_date DATE NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	backed_up_at TIMESTAMP NOT NULL DEFAULT NOW(),
	PRIMARY KEY (owner_id, entry_date)
)`

// PostgresBackupStore is the remote backup API: a second, independent copy of every saved entry.
type PostgresBackupStore struct {
	db *sql.DB
}

func NewPostgresBackupStore(db *sql.DB) *PostgresBackupStore {
	return &PostgresBackupStore{db: db}
}

// Put upserts the entry. The first created_at recorded for a key is kept.
func (s *PostgresBackupStore) Put(ctx context.Context, entry models.JournalEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO journal_entry_backups (owner_id, entry_date, payload, created_at, updated_at, backed_up_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (owner_id, entry_date) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at, backed_up_at = NOW()
	`, entry.OwnerID, entry.Date, payload, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("backup entry %s: %w", models.EntryKey(entry.OwnerID, entry.Date), err)
	}
	return nil
}
