// Package graph provides the lineage graph data model: typed nodes and
// edges, a hierarchy encoded either as parent references or as a
// distinguished edge kind, and the derived adjacency index the layout and
// analysis packages operate on.
package graph

// NodeKind classifies a node.
type NodeKind string

const (
	// KindSchemaClass is a class defined by the schema.
	KindSchemaClass NodeKind = "schemaClass"
	// KindDataInstance is a concrete data record mapped onto a class.
	KindDataInstance NodeKind = "dataInstance"
)

// EdgeKind classifies an edge.
type EdgeKind string

const (
	// KindHierarchy is a parent -> child / subclass-of edge.
	KindHierarchy EdgeKind = "hierarchy"
	// KindSchemaRelationship is a user-defined relationship between classes.
	KindSchemaRelationship EdgeKind = "schemaRelationship"
	// KindDataRelationship is an instance-level relationship.
	KindDataRelationship EdgeKind = "dataRelationship"
)

// Cardinality describes a schema relationship's multiplicity.
type Cardinality string

const (
	CardinalityOneToOne   Cardinality = "1:1"
	CardinalityOneToMany  Cardinality = "1:N"
	CardinalityManyToOne  Cardinality = "N:1"
	CardinalityManyToMany Cardinality = "N:M"
)

// Position is a 2D canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Attribute describes a single class attribute. Slice order is display order.
type Attribute struct {
	Name         string `json:"name" yaml:"name"`
	DataType     string `json:"dataType" yaml:"data_type"`
	IsPrimaryKey bool   `json:"isPrimaryKey" yaml:"primary_key"`
	IsForeignKey bool   `json:"isForeignKey" yaml:"foreign_key"`
	IsNullable   bool   `json:"isNullable" yaml:"nullable"`
}

// Node is a vertex in the lineage graph.
type Node struct {
	ID          string      `json:"id"`
	Kind        NodeKind    `json:"kind"`
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	ParentID    string      `json:"parentId,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty"`

	InstanceCount int  `json:"instanceCount"`
	Collapsed     bool `json:"collapsed"`

	// Position is nil until a layout pass assigns one.
	Position *Position `json:"position,omitempty"`

	// Meta carries free-form classification fields (category, region,
	// sensitivity, owner, ...) used by search highlighting.
	Meta map[string]string `json:"meta,omitempty"`
}

// Edge is a directed, typed edge between two nodes.
type Edge struct {
	ID          string      `json:"id"`
	Source      string      `json:"source"`
	Target      string      `json:"target"`
	Kind        EdgeKind    `json:"kind"`
	Label       string      `json:"label,omitempty"`
	Cardinality Cardinality `json:"cardinality,omitempty"`
}

// Label returns the node's display label, falling back from DisplayName to
// Name to "Unknown". Normalize applies the same chain; Label exists for
// callers holding un-normalized nodes.
func (n *Node) Label() string {
	if n.DisplayName != "" {
		return n.DisplayName
	}
	if n.Name != "" {
		return n.Name
	}
	return "Unknown"
}

// IsHierarchy reports whether the edge encodes parent/child containment.
func (e *Edge) IsHierarchy() bool {
	return e.Kind == KindHierarchy
}
