package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/store"
)

const sampleSchema = `name: retail
nodes:
  - id: customer
    kind: schemaClass
    name: Customer
    instanceCount: 12
    attributes:
      - name: id
        dataType: uuid
        primaryKey: true
      - name: email
        dataType: string
        nullable: true
      - name: region_id
        dataType: int
        foreignKey: true
    meta:
      classification: pii
  - id: order
    kind: schemaClass
    name: Order
  - id: cust-1
    kind: dataInstance
    name: cust-1
    parentId: customer
edges:
  - id: e1
    source: customer
    target: order
    kind: schemaRelationship
    label: places
    cardinality: "1:N"
  - source: customer
    target: cust-1
    kind: data
`

func writeSchemaFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSchemaFile(t, dir, "retail.yaml", sampleSchema)

	def, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "retail", def.Name)
	assert.Len(t, def.Nodes, 3)
	assert.Len(t, def.Edges, 2)
	assert.Equal(t, "pii", def.Nodes[0].Meta["classification"])
}

func TestParseFile_NameFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	path := writeSchemaFile(t, dir, "warehouse.yaml", "nodes: []\nedges: []\n")

	def, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "warehouse", def.Name)
}

func TestParseFile_UnknownFieldRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeSchemaFile(t, dir, "bad.yaml", "name: x\nnodez: []\n")

	_, err := ParseFile(path)
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestDefinitionGraph(t *testing.T) {
	dir := t.TempDir()
	path := writeSchemaFile(t, dir, "retail.yaml", sampleSchema)
	def, err := ParseFile(path)
	require.NoError(t, err)

	nodes, edges := def.Graph()
	require.Len(t, nodes, 3)
	require.Len(t, edges, 2)

	assert.Equal(t, graph.KindSchemaClass, nodes[0].Kind)
	assert.Equal(t, graph.KindDataInstance, nodes[2].Kind)
	// Normalize fills the display name and marks expandable classes.
	assert.Equal(t, "Customer", nodes[0].DisplayName)
	assert.True(t, nodes[0].Collapsed)

	assert.Equal(t, graph.Cardinality("1:N"), edges[0].Cardinality)
	assert.Equal(t, graph.KindDataRelationship, edges[1].Kind)
	assert.NotEmpty(t, edges[1].ID, "missing edge ids are synthesized")
}

func TestDefinitionGraph_Attributes(t *testing.T) {
	dir := t.TempDir()
	path := writeSchemaFile(t, dir, "retail.yaml", sampleSchema)
	def, err := ParseFile(path)
	require.NoError(t, err)

	nodes, _ := def.Graph()
	require.Len(t, nodes[0].Attributes, 3)

	want := []graph.Attribute{
		{Name: "id", DataType: "uuid", IsPrimaryKey: true},
		{Name: "email", DataType: "string", IsNullable: true},
		{Name: "region_id", DataType: "int", IsForeignKey: true},
	}
	assert.Equal(t, want, nodes[0].Attributes, "definition order is display order")
}

func TestLoadDir(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	dir := t.TempDir()
	writeSchemaFile(t, dir, "retail.yaml", sampleSchema)
	writeSchemaFile(t, dir, "empty.yml", "nodes: []\nedges: []\n")
	writeSchemaFile(t, dir, "notes.txt", "not a schema")
	writeSchemaFile(t, dir, "broken.yaml", ":::\n")

	l := New(st, nil)
	schemas, err := l.LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, schemas, 2, "txt ignored, broken yaml skipped")

	schema, err := st.GetSchemaByName("retail")
	require.NoError(t, err)
	nodes, edges, err := st.GetGraph(schema.ID)
	require.NoError(t, err)
	assert.Len(t, nodes, 3)
	assert.Len(t, edges, 2)
}

func TestLoadFile_ReplaceBumpsVersion(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	dir := t.TempDir()
	path := writeSchemaFile(t, dir, "retail.yaml", sampleSchema)

	l := New(st, nil)
	first, err := l.LoadFile(path)
	require.NoError(t, err)

	second, err := l.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "reload keeps the same schema row")

	schema, err := st.GetSchema(first.ID)
	require.NoError(t, err)
	assert.Greater(t, schema.Version, int64(1), "reload invalidates cached layouts")
}
