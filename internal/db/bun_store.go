// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// LocalStorageModel maps the local_storage table.
type LocalStorageModel struct {
	bun.BaseModel `bun:"table:local_storage"`
	Key           string    `bun:"item_key,pk"`
	Value         string    `bun:"item_value,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

// BunStore implements Store on top of a *bun.DB for any supported dialect.
type BunStore struct {
	bun    *bun.DB
	dbType string
}

// BunDB exposes the underlying handle for maintenance and tests.
func (s *BunStore) BunDB() *bun.DB { return s.bun }

// GetItem returns the value stored under key.
func (s *BunStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var m LocalStorageModel
	err := s.bun.NewSelect().Model(&m).Where("item_key = ?", key).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %q: %w", key, err)
	}
	return m.Value, true, nil
}

// SetItem upserts key. MySQL lacks ON CONFLICT, so it gets the
// ON DUPLICATE KEY form instead.
func (s *BunStore) SetItem(ctx context.Context, key, value string) error {
	m := &LocalStorageModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	q := s.bun.NewInsert().Model(m)
	if s.bun.Dialect().Name() == dialect.MySQL {
		q = q.On("DUPLICATE KEY UPDATE").
			Set("item_value = VALUES(item_value)").
			Set("updated_at = VALUES(updated_at)")
	} else {
		q = q.On("CONFLICT (item_key) DO UPDATE").
			Set("item_value = EXCLUDED.item_value").
			Set("updated_at = EXCLUDED.updated_at")
	}
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("set item %q: %w", key, MapDBError(err))
	}
	dbLogf("db: set %s (%d bytes)", key, len(value))
	return nil
}

// RemoveItem deletes key if present.
func (s *BunStore) RemoveItem(ctx context.Context, key string) error {
	_, err := s.bun.NewDelete().Model((*LocalStorageModel)(nil)).Where("item_key = ?", key).Exec(ctx)
	if err != nil {
		return fmt.Errorf("remove item %q: %w", key, err)
	}
	dbLogf("db: removed %s", key)
	return nil
}

// Items returns all stored pairs ordered by key.
func (s *BunStore) Items(ctx context.Context) ([]Item, error) {
	var ms []LocalStorageModel
	if err := s.bun.NewSelect().Model(&ms).Order("item_key ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	out := make([]Item, 0, len(ms))
	for _, m := range ms {
		out = append(out, Item{Key: m.Key, Value: m.Value, UpdatedAt: m.UpdatedAt})
	}
	return out, nil
}

// Close closes the underlying database handle.
func (s *BunStore) Close() error {
	return s.bun.Close()
}
