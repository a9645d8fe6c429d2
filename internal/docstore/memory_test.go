package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededMemory(t *testing.T) Store {
	t.Helper()
	s := NewMemoryStore(DefaultUniqueKeys)
	err := s.Seed(context.Background(), map[string][]Document{
		"users": {
			{"id": float64(1), "email": "Admin@Gym.vn", "role": "admin", "phone": "0901234567"},
			{"id": float64(2), "email": "lan@example.com", "role": "user"},
		},
		"bookings": {
			{"id": float64(1), "userId": float64(2), "courseId": float64(1), "bookingDate": "2025-01-10", "bookingTime": "06:00", "status": "pending"},
		},
	})
	require.NoError(t, err)
	return s
}

func TestMemoryStore_ListFilters(t *testing.T) {
	s := newSeededMemory(t)
	ctx := context.Background()

	t.Run("Equality on string", func(t *testing.T) {
		docs, err := s.List(ctx, "users", Query{Filters: []Filter{{Field: "role", Value: "admin"}}})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, int64(1), docs[0]["id"])
	})

	t.Run("Equality on number", func(t *testing.T) {
		docs, err := s.List(ctx, "bookings", Query{Filters: []Filter{{Field: "userId", Value: "2"}}})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("Text search is case-insensitive", func(t *testing.T) {
		docs, err := s.List(ctx, "users", Query{Search: "LAN@"})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "lan@example.com", docs[0]["email"])
	})

	t.Run("Missing field never matches", func(t *testing.T) {
		docs, err := s.List(ctx, "users", Query{Filters: []Filter{{Field: "phone", Value: ""}}})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("Unknown resource", func(t *testing.T) {
		_, err := s.List(ctx, "payments", Query{})
		assert.ErrorIs(t, err, ErrUnknownResource)
	})
}

func TestMemoryStore_CreateAssignsIDsAfterSeed(t *testing.T) {
	s := newSeededMemory(t)

	doc, err := s.Create(context.Background(), "users", Document{"id": 99, "email": "new@example.com"})
	require.NoError(t, err)

	assert.Equal(t, int64(3), doc["id"])
}

func TestMemoryStore_UniqueKeys(t *testing.T) {
	ctx := context.Background()

	t.Run("Duplicate booking tuple", func(t *testing.T) {
		s := newSeededMemory(t)
		_, err := s.Create(ctx, "bookings", Document{"userId": 2, "courseId": 1, "bookingDate": "2025-01-10", "bookingTime": "06:00"})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("Different time is fine", func(t *testing.T) {
		s := newSeededMemory(t)
		_, err := s.Create(ctx, "bookings", Document{"userId": 2, "courseId": 1, "bookingDate": "2025-01-10", "bookingTime": "07:00"})
		assert.NoError(t, err)
	})

	t.Run("Email is case-insensitive", func(t *testing.T) {
		s := newSeededMemory(t)
		_, err := s.Create(ctx, "users", Document{"email": "admin@gym.VN"})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("Patch may keep its own key", func(t *testing.T) {
		s := newSeededMemory(t)
		doc, err := s.Patch(ctx, "users", 1, Document{"fullName": "Admin"})
		require.NoError(t, err)
		assert.Equal(t, "Admin@Gym.vn", doc["email"])
		assert.Equal(t, "Admin", doc["fullName"])
	})

	t.Run("Patch into another key", func(t *testing.T) {
		s := newSeededMemory(t)
		_, err := s.Patch(ctx, "users", 2, Document{"email": "admin@gym.vn"})
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestMemoryStore_ReplaceAndDelete(t *testing.T) {
	s := newSeededMemory(t)
	ctx := context.Background()

	doc, err := s.Replace(ctx, "users", 2, Document{"email": "lan@example.com"})
	require.NoError(t, err)
	assert.NotContains(t, doc, "role")

	_, err = s.Replace(ctx, "users", 42, Document{})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "users", 2))
	_, err = s.Get(ctx, "users", 2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "users", 2), ErrNotFound)
}

func TestMemoryStore_SeedSkipsPopulatedResource(t *testing.T) {
	s := newSeededMemory(t)

	err := s.Seed(context.Background(), map[string][]Document{
		"users": {{"id": float64(10), "email": "late@example.com"}},
	})
	require.NoError(t, err)

	docs, _ := s.List(context.Background(), "users", Query{})
	assert.Len(t, docs, 2)
}
