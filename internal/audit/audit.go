// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package audit keeps the bounded, most-recent-first event log shown in the
// API key tab. Every change is mirrored to the local store as a JSON array.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gtpilot/gtpilot/internal/db"
	"github.com/gtpilot/gtpilot/internal/logging"
)

// MaxEntries caps the log; older entries are dropped on append.
const MaxEntries = 100

// TimeLayout renders entry timestamps like a local wall clock, e.g. 3:04:05 PM.
const TimeLayout = "3:04:05 PM"

// Logger is the audit log. It is safe for concurrent use.
type Logger struct {
	store   db.Store
	mu      sync.Mutex
	entries []string
}

// New returns an empty Logger persisting to store. Call Load to adopt the
// stored history.
func New(store db.Store) *Logger {
	return &Logger{store: store}
}

// Load replaces the in-memory log with the stored one. Stored data that is
// not a JSON array of strings is removed and the log starts empty.
func (l *Logger) Load(ctx context.Context) error {
	raw, ok, err := l.store.GetItem(ctx, db.KeyAuditLog)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	if !ok {
		return nil
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logging.Warnf("audit: discarding unreadable stored log: %v", err)
		if rmErr := l.store.RemoveItem(ctx, db.KeyAuditLog); rmErr != nil {
			logging.Warnf("audit: failed to remove unreadable log: %v", rmErr)
		}
		return nil
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	l.entries = entries
	return nil
}

// Format renders event the way it is stored.
func Format(event string) string {
	return fmt.Sprintf("[%s] %s", Now().Format(TimeLayout), event)
}

// Append prepends a timestamped entry and persists the whole log. The entry
// stays in memory even when persisting fails.
func (l *Logger) Append(ctx context.Context, event string) error {
	entry := Format(event)

	// Held across the write so the stored log matches the in-memory order.
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]string, 0, min(len(l.entries)+1, MaxEntries))
	next = append(next, entry)
	next = append(next, l.entries...)
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	l.entries = next
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode audit log: %w", err)
	}

	if err := l.store.SetItem(ctx, db.KeyAuditLog, string(data)); err != nil {
		return fmt.Errorf("failed to persist audit log: %w", err)
	}
	return nil
}

// Log is Append for callers that cannot act on a storage failure; it logs
// the error instead of returning it.
func (l *Logger) Log(ctx context.Context, event string) {
	if err := l.Append(ctx, event); err != nil {
		logging.Warnf("audit: %v", err)
	}
}

// Entries returns a copy of the log, most recent first.
func (l *Logger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
