package idempotency

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreFirstSeen(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := store.FirstSeen(ctx, "update-1", time.Minute)
	if err != nil {
		t.Fatalf("FirstSeen returned error: %v", err)
	}
	if !first {
		t.Error("first claim of a key should return true")
	}

	second, err := store.FirstSeen(ctx, "update-1", time.Minute)
	if err != nil {
		t.Fatalf("FirstSeen returned error: %v", err)
	}
	if second {
		t.Error("repeated claim within the TTL should return false")
	}

	other, err := store.FirstSeen(ctx, "update-2", time.Minute)
	if err != nil {
		t.Fatalf("FirstSeen returned error: %v", err)
	}
	if !other {
		t.Error("a different key should be claimable")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if first, _ := store.FirstSeen(ctx, "update-1", 20*time.Millisecond); !first {
		t.Fatal("first claim should return true")
	}
	time.Sleep(40 * time.Millisecond)
	if again, _ := store.FirstSeen(ctx, "update-1", time.Minute); !again {
		t.Error("key should be claimable again after the TTL elapses")
	}
}
