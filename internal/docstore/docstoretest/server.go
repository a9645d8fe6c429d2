// Package docstoretest runs an in-memory document service for tests.
package docstoretest

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"yogaslot/internal/auth"
	"yogaslot/internal/docstore"
)

const Secret = "docstoretest-secret"

// NewServer starts a document service over a fresh memory store seeded with
// data. Bearer tokens are checked against Secret.
func NewServer(t testing.TB, data map[string][]docstore.Document) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := docstore.NewMemoryStore(docstore.DefaultUniqueKeys)
	if err := store.Seed(context.Background(), data); err != nil {
		t.Fatalf("seed docstore: %v", err)
	}

	r := gin.New()
	r.Use(auth.OptionalBearer(Secret))
	docstore.NewHandler(store).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}
