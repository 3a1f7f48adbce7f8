package allocation

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryHoldStoreAcquireConflict(t *testing.T) {
	store := NewMemoryHoldStore()
	ctx := context.Background()

	first := Lease{ID: "a", RoomID: 1, CheckIn: day(2025, 7, 10), CheckOut: day(2025, 7, 12)}
	if err := store.Acquire(ctx, first, 5*time.Minute); err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	// one slot per room: even a disjoint interval conflicts while live
	second := Lease{ID: "b", RoomID: 1, CheckIn: day(2025, 8, 1), CheckOut: day(2025, 8, 3)}
	if err := store.Acquire(ctx, second, 5*time.Minute); !errors.Is(err, ErrHoldConflict) {
		t.Fatalf("err = %v, want ErrHoldConflict", err)
	}

	// other rooms are unaffected
	other := Lease{ID: "c", RoomID: 2, CheckIn: day(2025, 7, 10), CheckOut: day(2025, 7, 12)}
	if err := store.Acquire(ctx, other, 5*time.Minute); err != nil {
		t.Fatalf("acquire on other room: %v", err)
	}
}

func TestMemoryHoldStoreTTLExpiry(t *testing.T) {
	store := NewMemoryHoldStore()
	ctx := context.Background()

	current := day(2025, 7, 1)
	store.SetClock(func() time.Time { return current })

	lease := Lease{ID: "a", RoomID: 1, CheckIn: day(2025, 7, 10), CheckOut: day(2025, 7, 12)}
	if err := store.Acquire(ctx, lease, 5*time.Minute); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	got, err := store.Get(ctx, 1)
	if err != nil || got == nil {
		t.Fatalf("live lease should be readable, got %v err %v", got, err)
	}

	// six minutes later the five-minute hold no longer blocks anything
	current = current.Add(6 * time.Minute)
	got, err = store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if got != nil {
		t.Fatalf("expired lease must read as absent, got %+v", got)
	}

	// and the slot is reusable
	replacement := Lease{ID: "b", RoomID: 1, CheckIn: day(2025, 7, 10), CheckOut: day(2025, 7, 12)}
	if err := store.Acquire(ctx, replacement, 5*time.Minute); err != nil {
		t.Fatalf("acquire over expired hold: %v", err)
	}
}

func TestMemoryHoldStoreReleaseIdempotent(t *testing.T) {
	store := NewMemoryHoldStore()
	ctx := context.Background()

	lease := Lease{ID: "a", RoomID: 1, CheckIn: day(2025, 7, 10), CheckOut: day(2025, 7, 12)}
	if err := store.Acquire(ctx, lease, 5*time.Minute); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if err := store.Release(ctx, 1, "a"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := store.Release(ctx, 1, "a"); err != nil {
		t.Fatalf("second release must be a no-op, got %v", err)
	}

	// releasing with a foreign lease id never drops the current holder
	if err := store.Acquire(ctx, Lease{ID: "b", RoomID: 1}, 5*time.Minute); err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	if err := store.Release(ctx, 1, "stale"); err != nil {
		t.Fatalf("foreign release: %v", err)
	}
	got, err := store.Get(ctx, 1)
	if err != nil || got == nil || got.ID != "b" {
		t.Fatalf("holder b must survive a stale release, got %+v err %v", got, err)
	}
}

func TestMemoryHoldStoreConcurrentAcquire(t *testing.T) {
	store := NewMemoryHoldStore()
	ctx := context.Background()

	const attempts = 16
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func(n int) {
			lease := Lease{ID: string(rune('a' + n)), RoomID: 1, CheckIn: day(2025, 7, 10), CheckOut: day(2025, 7, 12)}
			results <- store.Acquire(ctx, lease, 5*time.Minute)
		}(i)
	}

	wins := 0
	for i := 0; i < attempts; i++ {
		err := <-results
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrHoldConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("exactly one acquirer must win, got %d", wins)
	}
}
