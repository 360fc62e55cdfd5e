package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGetLineageGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/schemas/s1/graph", r.URL.Path)
		assert.Equal(t, "a,b", r.URL.Query().Get("expanded"))
		json.NewEncoder(w).Encode(&LineageGraph{
			Metadata: GraphMetadata{SchemaID: "s1", Version: 2, NodeCount: 0, EdgeCount: 0},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	lg, err := c.GetLineageGraph(context.Background(), "s1", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), lg.Metadata.Version)
}

func TestClientFindPaths_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "a,b", r.URL.Query().Get("nodes"))
		assert.Equal(t, "4", r.URL.Query().Get("maxDepth"))
		json.NewEncoder(w).Encode(&PathsResult{
			Paths:            [][]string{{"a", "b"}},
			HighlightedNodes: []string{"a", "b"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, WithRetries(4, time.Millisecond))
	res, err := c.FindPaths(context.Background(), "s1", []string{"a", "b"}, 4)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, res.Paths)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GivesUpAfterRetryBudget(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, WithRetries(2, time.Millisecond))
	_, err := c.GetSchemaStats(context.Background(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend returned 500")
	assert.Equal(t, int32(3), calls.Load(), "initial attempt plus two retries")
}

func TestClient_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "schema not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, WithRetries(5, time.Millisecond))
	_, err := c.GetSchemaStats(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load())
}
