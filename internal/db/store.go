// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"time"
)

// Well-known storage keys.
const (
	KeyAPIKey    = "gtp_apiKey"
	KeyAuditLog  = "gtp_auditLog"
	KeyTimeRange = "gtp_timeRange"
)

// Item is a single stored key/value pair.
type Item struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a flat string key/value store. Writes are last-write-wins;
// nothing coordinates concurrent writers.
type Store interface {
	// GetItem returns the value for key and whether it was present.
	GetItem(ctx context.Context, key string) (string, bool, error)
	// SetItem inserts or replaces the value for key.
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
	// Items returns every stored pair ordered by key.
	Items(ctx context.Context) ([]Item, error)
	Close() error
}
