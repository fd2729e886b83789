package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestSessionStore_OwnerIsolation(t *testing.T) {
	store := newSessionStore[string](0, errMissing, nil)
	id := uuid.New()
	store.put(id, "alice", "pipeline")

	v, err := store.get(id, "alice")
	require.NoError(t, err)
	assert.Equal(t, "pipeline", v)

	_, err = store.get(id, "bob")
	assert.ErrorIs(t, err, errMissing)
	_, err = store.remove(id, "bob")
	assert.ErrorIs(t, err, errMissing)
	assert.Equal(t, 1, store.count())

	_, err = store.remove(id, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, store.count())
}

func TestSessionStore_EvictsLeastRecentlyUsed(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	store := newSessionStore[string](2, errMissing, clock.now)

	first, second := uuid.New(), uuid.New()
	store.put(first, "alice", "first")
	clock.t = clock.t.Add(time.Minute)
	store.put(second, "alice", "second")
	clock.t = clock.t.Add(time.Minute)

	// Touching first makes second the oldest.
	_, err := store.get(first, "alice")
	require.NoError(t, err)
	clock.t = clock.t.Add(time.Minute)

	evicted := store.put(uuid.New(), "alice", "third")
	assert.Equal(t, []string{"second"}, evicted)
	assert.Equal(t, 2, store.count())

	_, err = store.get(second, "alice")
	assert.ErrorIs(t, err, errMissing)
}

func TestSessionStore_Sweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	store := newSessionStore[string](0, errMissing, clock.now)

	idle, active := uuid.New(), uuid.New()
	store.put(idle, "alice", "idle")
	store.put(active, "alice", "active")

	clock.t = clock.t.Add(90 * time.Minute)
	_, err := store.get(active, "alice")
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour)
	expired := store.sweep(2 * time.Hour)

	assert.Equal(t, []string{"idle"}, expired)
	assert.Equal(t, 1, store.count())
}
