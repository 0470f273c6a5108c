package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/regrada-ai/regrada-auth/internal/storage"
)

// Ensure Backend implements storage.Backend interface at compile time
var _ storage.Backend = (*Backend)(nil)

// Backend stores session tokens as one row per (session, field).
type Backend struct {
	db *bun.DB
}

func NewBackend(db *bun.DB) *Backend {
	return &Backend{db: db}
}

// CreateSchema creates the session_tokens table when it does not exist yet.
func (b *Backend) CreateSchema(ctx context.Context) error {
	_, err := b.db.NewCreateTable().
		Model((*DBSessionToken)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session_tokens table: %w", err)
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	row := new(DBSessionToken)
	err := b.db.NewSelect().
		Model(row).
		Where("session_id = ?", sessionID).
		Where("field = ?", key).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return row.Value, true, nil
}

func (b *Backend) Set(ctx context.Context, sessionID string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]DBSessionToken, 0, len(values))
	for field, value := range values {
		rows = append(rows, DBSessionToken{
			SessionID: sessionID,
			Field:     field,
			Value:     value,
			UpdatedAt: now,
		})
	}

	_, err := b.db.NewInsert().
		Model(&rows).
		On("CONFLICT (session_id, field) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (b *Backend) Clear(ctx context.Context, sessionID string) error {
	_, err := b.db.NewDelete().
		Model((*DBSessionToken)(nil)).
		Where("session_id = ?", sessionID).
		Exec(ctx)
	return err
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}
