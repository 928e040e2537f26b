package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	user := uuid.New()

	if _, ok := store.Get(user); ok {
		t.Fatalf("empty store returned a session")
	}

	started := time.Now().UTC()
	store.Start(user, 7, started)

	sess, ok := store.Get(user)
	if !ok || sess.UnitID != 7 || !sess.StartedAt.Equal(started) {
		t.Fatalf("Get = %+v, %v; want unit 7 at %v", sess, ok, started)
	}

	store.Clear(user)
	if _, ok := store.Get(user); ok {
		t.Fatalf("session survived Clear")
	}
}

func TestPruneStale(t *testing.T) {
	store := NewMemorySessionStore()
	stale := uuid.New()
	fresh := uuid.New()

	store.Start(stale, 1, time.Now().UTC().Add(-3*time.Hour))
	store.Start(fresh, 2, time.Now().UTC())

	if removed := store.PruneStale(2 * time.Hour); removed != 1 {
		t.Fatalf("PruneStale removed %d, want 1", removed)
	}
	if _, ok := store.Get(stale); ok {
		t.Fatalf("stale session survived prune")
	}
	if _, ok := store.Get(fresh); !ok {
		t.Fatalf("fresh session was pruned")
	}
}
