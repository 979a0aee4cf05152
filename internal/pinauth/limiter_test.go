package pinauth

import (
	"context"
	"testing"
	"time"

	"github.com/mayaserrano/framelight-backend/pkg/config"
)

type memoryAttemptStore struct {
	records map[string]*AttemptRecord
}

func newMemoryAttemptStore() *memoryAttemptStore {
	return &memoryAttemptStore{records: make(map[string]*AttemptRecord)}
}

func (m *memoryAttemptStore) Get(ctx context.Context, clientID string) (*AttemptRecord, error) {
	record, ok := m.records[clientID]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (m *memoryAttemptStore) Set(ctx context.Context, clientID string, record *AttemptRecord, ttl time.Duration) error {
	copied := *record
	m.records[clientID] = &copied
	return nil
}

func (m *memoryAttemptStore) Del(ctx context.Context, clientID string) error {
	delete(m.records, clientID)
	return nil
}

func newTestLimiter(t *testing.T, store AttemptStore) *Limiter {
	t.Helper()
	limiter, err := NewLimiter(store, config.PinConfig{MaxAttempts: 5, LockoutWindow: 15 * time.Minute})
	if err != nil {
		t.Fatalf("unexpected limiter error: %v", err)
	}
	return limiter
}

func TestLimiter_LockoutAfterFiveFailures(t *testing.T) {
	ctx := context.Background()
	limiter := newTestLimiter(t, newMemoryAttemptStore())

	for i := 1; i < 5; i++ {
		remaining, lockedFor, err := limiter.RecordFailure(ctx, "client-a")
		if err != nil {
			t.Fatalf("failure %d: %v", i, err)
		}
		if lockedFor != 0 {
			t.Fatalf("failure %d should not lock, got %s", i, lockedFor)
		}
		if remaining != 5-i {
			t.Fatalf("failure %d: expected %d remaining, got %d", i, 5-i, remaining)
		}
	}

	_, lockedFor, err := limiter.RecordFailure(ctx, "client-a")
	if err != nil {
		t.Fatalf("fifth failure: %v", err)
	}
	if lockedFor != 15*time.Minute {
		t.Fatalf("expected 15m lockout, got %s", lockedFor)
	}

	locked, wait, err := limiter.CheckLockout(ctx, "client-a")
	if err != nil {
		t.Fatalf("check lockout: %v", err)
	}
	if !locked {
		t.Fatal("expected client to be locked")
	}
	if wait <= 14*time.Minute || wait > 15*time.Minute {
		t.Fatalf("expected wait near 900s, got %s", wait)
	}
}

func TestLimiter_ExpiredLockoutClears(t *testing.T) {
	ctx := context.Background()
	store := newMemoryAttemptStore()
	limiter := newTestLimiter(t, store)

	past := time.Now().Add(-time.Minute)
	store.records["client-b"] = &AttemptRecord{Count: 5, LastAttempt: past, LockedUntil: &past}

	locked, _, err := limiter.CheckLockout(ctx, "client-b")
	if err != nil {
		t.Fatalf("check lockout: %v", err)
	}
	if locked {
		t.Fatal("expired lockout should read as unlocked")
	}
	if _, ok := store.records["client-b"]; ok {
		t.Fatal("expired record should have been cleared")
	}
}

func TestLimiter_ResetAttempts(t *testing.T) {
	ctx := context.Background()
	store := newMemoryAttemptStore()
	limiter := newTestLimiter(t, store)

	if _, _, err := limiter.RecordFailure(ctx, "client-c"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if err := limiter.ResetAttempts(ctx, "client-c"); err != nil {
		t.Fatalf("reset attempts: %v", err)
	}
	remaining, err := limiter.RemainingAttempts(ctx, "client-c")
	if err != nil {
		t.Fatalf("remaining attempts: %v", err)
	}
	if remaining != 5 {
		t.Fatalf("expected full allowance after reset, got %d", remaining)
	}
}

func TestLimiter_RemainingAttemptsWhileLocked(t *testing.T) {
	ctx := context.Background()
	store := newMemoryAttemptStore()
	limiter := newTestLimiter(t, store)

	future := time.Now().Add(10 * time.Minute)
	store.records["client-d"] = &AttemptRecord{Count: 5, LastAttempt: time.Now(), LockedUntil: &future}

	remaining, err := limiter.RemainingAttempts(ctx, "client-d")
	if err != nil {
		t.Fatalf("remaining attempts: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected 0 remaining while locked, got %d", remaining)
	}
}
