// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/backend"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/layout"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/store"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/testutil"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests, backed
// by an in-memory store.
type TestFixture struct {
	Store        store.Store
	Service      backend.Service
	Engine       *layout.Engine
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// SetupTestFixture creates a fixture whose store holds one schema per
// definition. Returns the fixture and the created schemas in input order.
func SetupTestFixture(t *testing.T, defs ...TestSchema) (*TestFixture, []*store.Schema) {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	schemas := make([]*store.Schema, 0, len(defs))
	for _, def := range defs {
		schema, err := st.CreateSchema(def.Name)
		require.NoError(t, err)
		require.NoError(t, st.ReplaceGraph(schema.ID, def.Nodes, def.Edges))
		schemas = append(schemas, schema)
	}

	fixture := &TestFixture{
		Store:        st,
		Service:      backend.NewLocal(st, logger),
		Engine:       layout.NewEngine(nil, logger),
		Notifier:     notifier.New(),
		SessionStore: sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!")),
	}
	return fixture, schemas
}

// TestSchema seeds one schema into the fixture store.
type TestSchema struct {
	Name  string
	Nodes []graph.Node
	Edges []graph.Edge
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
