package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func TestNew_MigrationsApplied(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var version string
	err := s.BunDB().QueryRowContext(ctx, "SELECT version FROM schema_migrations ORDER BY version LIMIT 1").Scan(&version)
	if err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	if version != "0001_local_storage" {
		t.Fatalf("unexpected first migration %q", version)
	}

	var n int
	if err := s.BunDB().QueryRowContext(ctx, "SELECT COUNT(*) FROM local_storage").Scan(&n); err != nil {
		t.Fatalf("local_storage table missing: %v", err)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	s := newTestStore(t)
	if err := RunMigrations(s.BunDB().DB, "sqlite"); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}
	var n int
	if err := s.BunDB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", n)
	}
}

func TestBunStore_SetGetRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.GetItem(ctx, KeyAPIKey); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := s.SetItem(ctx, KeyAPIKey, "gtp_first"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := s.SetItem(ctx, KeyAPIKey, "gtp_second"); err != nil {
		t.Fatalf("SetItem overwrite: %v", err)
	}
	v, ok, err := s.GetItem(ctx, KeyAPIKey)
	if err != nil || !ok || v != "gtp_second" {
		t.Fatalf("expected last write to win, got %q ok=%v err=%v", v, ok, err)
	}

	if err := s.RemoveItem(ctx, KeyAPIKey); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := s.RemoveItem(ctx, KeyAPIKey); err != nil {
		t.Fatalf("RemoveItem of absent key should not fail: %v", err)
	}
	if _, ok, _ := s.GetItem(ctx, KeyAPIKey); ok {
		t.Fatalf("expected key to be gone after RemoveItem")
	}
}

func TestBunStore_ItemsOrdered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, k := range []string{KeyTimeRange, KeyAPIKey, KeyAuditLog} {
		if err := s.SetItem(ctx, k, "v-"+k); err != nil {
			t.Fatalf("SetItem %s: %v", k, err)
		}
	}
	items, err := s.Items(ctx)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	want := []string{KeyAPIKey, KeyAuditLog, KeyTimeRange}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, k := range want {
		if items[i].Key != k || items[i].Value != "v-"+k {
			t.Fatalf("item %d: got %+v, want key %s", i, items[i], k)
		}
	}
}

func TestNew_UnsupportedType(t *testing.T) {
	_, err := New("oracle", "whatever")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestNew_OpenFailure(t *testing.T) {
	prev := sqlOpenFunc
	sqlOpenFunc = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }
	defer func() { sqlOpenFunc = prev }()

	if _, err := New("sqlite", ":memory:"); err == nil {
		t.Fatalf("expected error when the driver cannot open")
	}
}

func TestRunDBMaintenance_SQLite(t *testing.T) {
	dsn := "file:" + t.TempDir() + "/maint.db"
	s, err := New("sqlite", dsn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.SetItem(context.Background(), KeyAPIKey, "gtp_x"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	_ = s.Close()

	if err := RunDBMaintenance(context.Background(), "sqlite", dsn); err != nil {
		t.Fatalf("RunDBMaintenance: %v", err)
	}
}
