package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogaslot/internal/docstore/docstoretest"
)

func newRegistry(t *testing.T, idle time.Duration) *Registry {
	return NewRegistry(NewFactory(newDeps(t, docstoretest.Secret)), idle)
}

func TestRegistry_AnonymousLookupsAreNotHeld(t *testing.T) {
	r := newRegistry(t, time.Minute)
	ctx := context.Background()

	seen := map[string]bool{}
	for _, id := range []string{"", "", "not-a-uuid", uuid.NewString()} {
		a, held := r.Lookup(ctx, id)
		assert.False(t, held)
		assert.False(t, a.LoggedIn())
		_, err := uuid.Parse(a.ID)
		require.NoError(t, err)
		seen[a.ID] = true
	}

	assert.Len(t, seen, 4)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_AdoptAndLookup(t *testing.T) {
	r := newRegistry(t, time.Minute)
	ctx := context.Background()

	a, _ := r.Lookup(ctx, "")
	login(t, a, "minh.tran@example.com", "password123")
	assert.Same(t, a, r.Adopt(a))
	assert.Equal(t, 1, r.Len())

	again, held := r.Lookup(ctx, a.ID)
	assert.True(t, held)
	assert.Same(t, a, again)

	other := New(a.ID, newDeps(t, docstoretest.Secret))
	assert.Same(t, a, r.Adopt(other))
	assert.Equal(t, 1, r.Len())

	r.Remove(a.ID)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Sweep(t *testing.T) {
	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	r := newRegistry(t, 30*time.Minute)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	stale, _ := r.Lookup(ctx, "")
	r.Adopt(stale)
	now = now.Add(20 * time.Minute)
	fresh, _ := r.Lookup(ctx, "")
	r.Adopt(fresh)
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	r.mu.Lock()
	_, ok := r.apps[fresh.ID]
	r.mu.Unlock()
	assert.True(t, ok)
}

func TestRegistry_EvictedSessionRehydrates(t *testing.T) {
	r := newRegistry(t, time.Minute)
	ctx := context.Background()

	a, _ := r.Lookup(ctx, "")
	login(t, a, "minh.tran@example.com", "password123")
	r.Adopt(a)

	r.now = func() time.Time { return time.Now().Add(time.Hour) }
	require.Equal(t, 1, r.Sweep())
	r.now = time.Now

	b, held := r.Lookup(ctx, a.ID)
	require.True(t, held)
	assert.NotSame(t, a, b)
	assert.Equal(t, 1, r.Len())

	u, ok := b.Session.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "minh.tran@example.com", u.Email)
	assert.Equal(t, a.Session.Token(), b.Session.Token())
}

func TestRegistry_LoggedOutSessionIsNotRehydrated(t *testing.T) {
	r := newRegistry(t, time.Minute)
	ctx := context.Background()

	a, _ := r.Lookup(ctx, "")
	login(t, a, "minh.tran@example.com", "password123")
	require.NoError(t, a.Session.Logout(ctx))

	b, held := r.Lookup(ctx, a.ID)
	assert.False(t, held)
	assert.False(t, b.LoggedIn())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Run(t *testing.T) {
	r := newRegistry(t, 0)
	a, _ := r.Lookup(context.Background(), "")
	r.Adopt(a)
	r.now = func() time.Time { return time.Now().Add(time.Second) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
