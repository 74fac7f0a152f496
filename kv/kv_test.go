package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, "user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := m.Set(ctx, "user", `{"name":"A"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := m.Get(ctx, "user")
	if err != nil || got != `{"name":"A"}` {
		t.Fatalf("expected stored blob, got %q (%v)", got, err)
	}

	if err := m.Remove(ctx, "user"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := m.Remove(ctx, "user"); err != nil {
		t.Fatalf("second remove should be a no-op, got %v", err)
	}
	if _, err := m.Get(ctx, "user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}
