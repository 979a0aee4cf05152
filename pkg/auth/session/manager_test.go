package session

import (
	"context"
	"sync"
	"testing"
	"time"

	redisclient "github.com/mayaserrano/framelight-backend/pkg/redis"
)

type memoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, expires: map[string]time.Time{}}
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(string)
	if ttl > 0 {
		m.expires[key] = time.Now().Add(ttl)
	}
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if exp, ok := m.expires[key]; ok && time.Now().After(exp) {
		delete(m.values, key)
		delete(m.expires, key)
		return "", redisclient.Nil
	}
	value, ok := m.values[key]
	if !ok {
		return "", redisclient.Nil
	}
	return value, nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
		delete(m.expires, key)
	}
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) SessionKey(sessionID string) string { return "test:session:" + sessionID }

func testManager(ttl time.Duration) (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: prefixKeyer{}, ttl: ttl}, store
}

func TestOpenAndHasSession(t *testing.T) {
	mgr, _ := testManager(time.Hour)
	ctx := context.Background()

	id := NewSessionID()
	if err := mgr.Open(ctx, id, "maya@studio.com"); err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}

	ok, err := mgr.HasSession(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected active session")
	}
}

func TestHasSessionMissingIsNotError(t *testing.T) {
	mgr, _ := testManager(time.Hour)
	ok, err := mgr.HasSession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no session")
	}
}

func TestRevokeRemovesSession(t *testing.T) {
	mgr, _ := testManager(time.Hour)
	ctx := context.Background()

	id := NewSessionID()
	if err := mgr.Open(ctx, id, "maya@studio.com"); err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}
	if err := mgr.Revoke(ctx, id); err != nil {
		t.Fatalf("unexpected revoke error: %v", err)
	}
	ok, err := mgr.HasSession(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected revoked session to be gone")
	}
}

func TestExpiredSessionReadsAsAbsent(t *testing.T) {
	mgr, _ := testManager(time.Millisecond)
	ctx := context.Background()

	id := NewSessionID()
	if err := mgr.Open(ctx, id, "maya@studio.com"); err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	ok, err := mgr.HasSession(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected expired session to read as absent")
	}
}

func TestOpenRequiresSessionID(t *testing.T) {
	mgr, _ := testManager(time.Hour)
	if err := mgr.Open(context.Background(), " ", "maya@studio.com"); err == nil {
		t.Fatal("expected error for blank session id")
	}
}
