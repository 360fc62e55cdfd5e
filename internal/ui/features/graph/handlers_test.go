package graph

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corgraph "github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/highlight"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/layout"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/store"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/ui/features"
)

func setupTestHandlers(t *testing.T) (*Handlers, *store.Schema) {
	t.Helper()

	fixture, schemas := features.SetupTestFixture(t, features.TestSchema{
		Name: "retail",
		Nodes: []corgraph.Node{
			{ID: "customer", Kind: corgraph.KindSchemaClass, Name: "Customer",
				Meta: map[string]string{"classification": "pii"}},
			{ID: "order", Kind: corgraph.KindSchemaClass, Name: "Order"},
			{ID: "invoice", Kind: corgraph.KindSchemaClass, Name: "Invoice"},
		},
		Edges: []corgraph.Edge{
			{ID: "e1", Source: "customer", Target: "order", Kind: corgraph.KindSchemaRelationship},
			{ID: "e2", Source: "order", Target: "invoice", Kind: corgraph.KindSchemaRelationship},
		},
	})

	handlers := NewHandlers(
		fixture.Service,
		fixture.Store,
		fixture.Engine,
		fixture.SessionStore,
		fixture.Notifier,
		nil,
	)
	return handlers, schemas[0]
}

func schemaRequest(t *testing.T, schemaID, target string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return features.RequestWithPathParam(req, "schemaID", schemaID)
}

func TestListSchemas(t *testing.T) {
	h, schema := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.ListSchemas(rec, httptest.NewRequest(http.MethodGet, "/api/schemas", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SchemaListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Schemas, 1)
	assert.Equal(t, schema.ID, resp.Schemas[0].ID)
	assert.Equal(t, "retail", resp.Schemas[0].Name)
}

func TestGetGraph(t *testing.T) {
	h, schema := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.GetGraph(rec, schemaRequest(t, schema.ID, "/api/schemas/x/graph"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp GraphResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Nodes, 3)
	assert.Len(t, resp.Edges, 2)
	for _, n := range resp.Nodes {
		assert.Equal(t, highlight.FullOpacity, n.Opacity, "no overlay means full opacity")
	}
	assert.Equal(t, schema.ID, resp.Metadata.SchemaID)
}

// setupHierarchyHandlers seeds a schema where s2 is a subclass of s1.
func setupHierarchyHandlers(t *testing.T) (*Handlers, *store.Schema) {
	t.Helper()

	fixture, schemas := features.SetupTestFixture(t, features.TestSchema{
		Name: "catalog",
		Nodes: []corgraph.Node{
			{ID: "s1", Kind: corgraph.KindSchemaClass, Name: "Asset"},
			{ID: "s2", Kind: corgraph.KindSchemaClass, Name: "Report", ParentID: "s1"},
			{ID: "s3", Kind: corgraph.KindSchemaClass, Name: "Source"},
		},
		Edges: []corgraph.Edge{
			{ID: "e1", Source: "s3", Target: "s1", Kind: corgraph.KindSchemaRelationship},
			{ID: "e2", Source: "s3", Target: "s2", Kind: corgraph.KindSchemaRelationship},
		},
	})

	handlers := NewHandlers(
		fixture.Service,
		fixture.Store,
		fixture.Engine,
		fixture.SessionStore,
		fixture.Notifier,
		nil,
	)
	return handlers, schemas[0]
}

func TestGetGraph_IncludesHierarchyForest(t *testing.T) {
	h, schema := setupHierarchyHandlers(t)

	rec := httptest.NewRecorder()
	h.GetGraph(rec, schemaRequest(t, schema.ID, "/api/schemas/x/graph"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp GraphResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Contains(t, resp.Hierarchy, "s1")
	require.Len(t, resp.Hierarchy["s1"].Children, 1)
	assert.Equal(t, "s2", resp.Hierarchy["s1"].Children[0].ID)
	assert.Equal(t, 1, resp.Hierarchy["s1"].Children[0].Level)
	assert.NotContains(t, resp.Hierarchy, "s2", "subclasses are not roots")
}

func TestComputeLayout_PositionsOnlyHierarchyRoots(t *testing.T) {
	h, schema := setupHierarchyHandlers(t)

	rec := httptest.NewRecorder()
	h.ComputeLayout(rec, schemaRequest(t, schema.ID, "/api/schemas/x/layout?strategy=grid"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp LayoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Positions, 2)
	assert.Contains(t, resp.Positions, "s1")
	assert.Contains(t, resp.Positions, "s3")
	assert.NotContains(t, resp.Positions, "s2", "descendants render inside their parent")
	assert.Empty(t, resp.ExcludedEdges, "edges into descendants are not malformed")
}

func TestGetGraph_UnknownSchema(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.GetGraph(rec, schemaRequest(t, "missing", "/api/schemas/missing/graph"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComputeLayout_Grid(t *testing.T) {
	h, schema := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.ComputeLayout(rec, schemaRequest(t, schema.ID, "/api/schemas/x/layout?strategy=grid&margin=0"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp LayoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, layout.StrategyGrid, resp.Strategy)
	assert.Equal(t, int64(1), resp.Generation)
	assert.Len(t, resp.Positions, 3)
	assert.False(t, resp.FellBack)
}

func TestComputeLayout_DefaultStrategyIsLayered(t *testing.T) {
	h, schema := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.ComputeLayout(rec, schemaRequest(t, schema.ID, "/api/schemas/x/layout"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp LayoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, layout.StrategyLayered, resp.Strategy)
}

func TestComputeLayout_BadStrategy(t *testing.T) {
	h, schema := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.ComputeLayout(rec, schemaRequest(t, schema.ID, "/api/schemas/x/layout?strategy=magnetic"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComputeLayout_GenerationIncreases(t *testing.T) {
	h, schema := setupTestHandlers(t)

	first := httptest.NewRecorder()
	h.ComputeLayout(first, schemaRequest(t, schema.ID, "/api/schemas/x/layout?strategy=grid"))
	second := httptest.NewRecorder()
	h.ComputeLayout(second, schemaRequest(t, schema.ID, "/api/schemas/x/layout?strategy=circular"))

	var a, b LayoutResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Greater(t, b.Generation, a.Generation)
}

func TestFindPaths(t *testing.T) {
	h, schema := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.FindPaths(rec, schemaRequest(t, schema.ID, "/api/schemas/x/paths?nodes=customer,invoice"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"customer","order","invoice"`)
}

func TestFindPaths_RequiresTwoNodes(t *testing.T) {
	h, schema := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.FindPaths(rec, schemaRequest(t, schema.ID, "/api/schemas/x/paths?nodes=customer"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStats(t *testing.T) {
	h, schema := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.GetStats(rec, schemaRequest(t, schema.ID, "/api/schemas/x/stats"))

	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.EqualValues(t, 3, stats["totalClasses"])
}

func TestSearch_DimsNonMatches(t *testing.T) {
	h, schema := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Search(rec, schemaRequest(t, schema.ID, "/api/schemas/x/highlight?q=pii"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HighlightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"customer"}, resp.Matches)

	for _, n := range resp.Nodes {
		if n.ID == "customer" {
			assert.True(t, n.Highlighted)
			assert.Equal(t, highlight.FullOpacity, n.Opacity)
		} else {
			assert.False(t, n.Highlighted)
			assert.Equal(t, highlight.DimmedOpacity, n.Opacity)
		}
	}
}

func TestSearch_EmptyQueryClears(t *testing.T) {
	h, schema := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Search(rec, schemaRequest(t, schema.ID, "/api/schemas/x/highlight?q="))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HighlightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Matches)
	for _, n := range resp.Nodes {
		assert.Equal(t, highlight.FullOpacity, n.Opacity)
	}
}

func TestGeneration_Tokens(t *testing.T) {
	var g Generation

	first := g.Next()
	assert.True(t, g.IsCurrent(first))

	second := g.Next()
	assert.False(t, g.IsCurrent(first), "older token is stale once a newer request starts")
	assert.True(t, g.IsCurrent(second))
	assert.Equal(t, second, g.Current())
}
