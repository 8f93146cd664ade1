package db

import (
	"context"
	"testing"
)

func TestMemoryStore_Semantics(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	_ = m.SetItem(ctx, "b", "2")
	_ = m.SetItem(ctx, "a", "1")
	_ = m.SetItem(ctx, "a", "1b")

	v, ok, _ := m.GetItem(ctx, "a")
	if !ok || v != "1b" {
		t.Fatalf("expected a=1b, got %q ok=%v", v, ok)
	}
	items, _ := m.Items(ctx)
	if len(items) != 2 || items[0].Key != "a" || items[1].Key != "b" {
		t.Fatalf("unexpected items: %+v", items)
	}
	_ = m.RemoveItem(ctx, "a")
	if _, ok, _ := m.GetItem(ctx, "a"); ok {
		t.Fatalf("expected a removed")
	}
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*BunStore)(nil)
