package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/elducche/mddcli/internal/dbx"
)

// KV is a string key/value repository over the kv_store table.
type KV struct {
	db *sql.DB
}

func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

// Get returns the value under key. ok is false when the key is absent.
func (r *KV) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	return get(ctx, r.db, key)
}

func get(ctx context.Context, q dbx.Querier, key string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or overwrites the value under key.
func (r *KV) Set(ctx context.Context, key, value string) error {
	return set(ctx, r.db, key, value)
}

func set(ctx context.Context, q dbx.Querier, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

// Swap stores value under key and returns what was there before, atomically.
func (r *KV) Swap(ctx context.Context, key, value string) (old string, existed bool, err error) {
	err = dbx.InTx(ctx, r.db, func(q dbx.Querier) error {
		var gerr error
		old, existed, gerr = get(ctx, q, key)
		if gerr != nil {
			return gerr
		}
		return set(ctx, q, key, value)
	})
	if err != nil {
		return "", false, err
	}
	return old, existed, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *KV) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}
