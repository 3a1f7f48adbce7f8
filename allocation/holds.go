package allocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultHoldTTL bridges the gap between allocation and booking
// confirmation; an unconfirmed hold simply lapses.
const DefaultHoldTTL = 5 * time.Minute

// Lease is the advisory exclusivity marker on a room. It is not a lock:
// the holder can still confirm a booking through it, while other allocation
// attempts treat the held interval as occupied until ExpiresAt.
type Lease struct {
	ID        string    `json:"id"`
	RoomID    uint      `json:"roomID"`
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
	HolderRef string    `json:"holderRef,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Live reports whether the lease still applies at the given instant.
func (l *Lease) Live(now time.Time) bool {
	return now.Before(l.ExpiresAt)
}

// HoldStore owns lease state. One lease slot per room: acquiring while a
// live lease exists fails with ErrHoldConflict regardless of interval, and
// Acquire must be atomic with respect to concurrent acquirers of the same
// room. Release is idempotent; releasing an expired or foreign lease is a
// no-op.
type HoldStore interface {
	Acquire(ctx context.Context, lease Lease, ttl time.Duration) error
	Get(ctx context.Context, roomID uint) (*Lease, error)
	Release(ctx context.Context, roomID uint, leaseID string) error
}

// ---- redis-backed store ----

// RedisHoldStore keeps one key per room with the lease JSON as value.
// SET NX PX is the atomic check-and-hold; key expiry is the TTL sweep.
type RedisHoldStore struct {
	client *redis.Client
}

func NewRedisHoldStore(client *redis.Client) *RedisHoldStore {
	return &RedisHoldStore{client: client}
}

func holdKey(roomID uint) string {
	return fmt.Sprintf("roomhold:%d", roomID)
}

// releaseScript deletes the hold only when the stored lease id matches, so
// a stale releaser cannot drop a newer holder's lease.
var releaseScript = redis.NewScript(`
local raw = redis.call("GET", KEYS[1])
if not raw then return 0 end
local lease = cjson.decode(raw)
if lease.id == ARGV[1] then return redis.call("DEL", KEYS[1]) end
return 0
`)

func (s *RedisHoldStore) Acquire(ctx context.Context, lease Lease, ttl time.Duration) error {
	lease.ExpiresAt = time.Now().Add(ttl)
	payload, err := json.Marshal(lease)
	if err != nil {
		return fmt.Errorf("marshal lease: %w", err)
	}
	ok, err := s.client.SetNX(ctx, holdKey(lease.RoomID), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire hold for room %d: %w", lease.RoomID, err)
	}
	if !ok {
		return ErrHoldConflict
	}
	return nil
}

func (s *RedisHoldStore) Get(ctx context.Context, roomID uint) (*Lease, error) {
	raw, err := s.client.Get(ctx, holdKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read hold for room %d: %w", roomID, err)
	}
	var lease Lease
	if err := json.Unmarshal(raw, &lease); err != nil {
		return nil, fmt.Errorf("decode hold for room %d: %w", roomID, err)
	}
	if !lease.Live(time.Now()) {
		// key TTL should have reaped it already; treat as absent
		return nil, nil
	}
	return &lease, nil
}

func (s *RedisHoldStore) Release(ctx context.Context, roomID uint, leaseID string) error {
	if err := releaseScript.Run(ctx, s.client, []string{holdKey(roomID)}, leaseID).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release hold for room %d: %w", roomID, err)
	}
	return nil
}

// ---- in-memory store ----

// MemoryHoldStore serves tests and single-node development. Expiry is lazy:
// a dead lease is dropped the next time its room is touched.
type MemoryHoldStore struct {
	mu     sync.Mutex
	leases map[uint]Lease
	now    func() time.Time
}

func NewMemoryHoldStore() *MemoryHoldStore {
	return &MemoryHoldStore{leases: map[uint]Lease{}, now: time.Now}
}

// SetClock swaps the time source; tests use it to step past TTLs.
func (s *MemoryHoldStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryHoldStore) Acquire(ctx context.Context, lease Lease, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if existing, ok := s.leases[lease.RoomID]; ok && existing.Live(now) {
		return ErrHoldConflict
	}
	lease.ExpiresAt = now.Add(ttl)
	s.leases[lease.RoomID] = lease
	return nil
}

func (s *MemoryHoldStore) Get(ctx context.Context, roomID uint) (*Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lease, ok := s.leases[roomID]
	if !ok {
		return nil, nil
	}
	if !lease.Live(s.now()) {
		delete(s.leases, roomID)
		return nil, nil
	}
	out := lease
	return &out, nil
}

func (s *MemoryHoldStore) Release(ctx context.Context, roomID uint, leaseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lease, ok := s.leases[roomID]; ok && lease.ID == leaseID {
		delete(s.leases, roomID)
	}
	return nil
}
