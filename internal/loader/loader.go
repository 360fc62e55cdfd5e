// Package loader reads YAML schema definitions from disk and publishes
// them to the store. Each *.yaml file in the schemas directory describes
// one schema: its classes, data instances, and the edges between them.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/store"
)

// SchemaDefinition is the on-disk shape of a schema file.
type SchemaDefinition struct {
	Name  string           `yaml:"name"`
	Nodes []NodeDefinition `yaml:"nodes"`
	Edges []EdgeDefinition `yaml:"edges"`
}

// NodeDefinition is one node entry in a schema file.
type NodeDefinition struct {
	ID            string                `yaml:"id"`
	Kind          string                `yaml:"kind"`
	Name          string                `yaml:"name"`
	DisplayName   string                `yaml:"displayName"`
	ParentID      string                `yaml:"parentId"`
	InstanceCount int                   `yaml:"instanceCount"`
	Attributes    []AttributeDefinition `yaml:"attributes"`
	Meta          map[string]string     `yaml:"meta"`
}

// AttributeDefinition is one attribute entry on a node.
type AttributeDefinition struct {
	Name       string `yaml:"name"`
	DataType   string `yaml:"dataType"`
	PrimaryKey bool   `yaml:"primaryKey"`
	ForeignKey bool   `yaml:"foreignKey"`
	Nullable   bool   `yaml:"nullable"`
}

// EdgeDefinition is one edge entry in a schema file.
type EdgeDefinition struct {
	ID          string `yaml:"id"`
	Source      string `yaml:"source"`
	Target      string `yaml:"target"`
	Kind        string `yaml:"kind"`
	Label       string `yaml:"label"`
	Cardinality string `yaml:"cardinality"`
}

// ParseError reports a schema file that could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse schema file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader publishes schema definition files to a store.
type Loader struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a Loader writing into st.
func New(st store.Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{store: st, logger: logger}
}

// ParseFile reads and decodes a single schema definition file. Unknown
// fields are rejected so typos in definitions fail loudly.
func ParseFile(path string) (*SchemaDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	var def SchemaDefinition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if def.Name == "" {
		base := filepath.Base(path)
		def.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &def, nil
}

// Graph converts the definition into store-ready nodes and edges.
func (d *SchemaDefinition) Graph() ([]graph.Node, []graph.Edge) {
	nodes := make([]graph.Node, 0, len(d.Nodes))
	for _, nd := range d.Nodes {
		n := graph.Node{
			ID:            nd.ID,
			Kind:          parseNodeKind(nd.Kind),
			Name:          nd.Name,
			DisplayName:   nd.DisplayName,
			ParentID:      nd.ParentID,
			InstanceCount: nd.InstanceCount,
			Meta:          nd.Meta,
		}
		for _, ad := range nd.Attributes {
			n.Attributes = append(n.Attributes, graph.Attribute{
				Name:         ad.Name,
				DataType:     ad.DataType,
				IsPrimaryKey: ad.PrimaryKey,
				IsForeignKey: ad.ForeignKey,
				IsNullable:   ad.Nullable,
			})
		}
		nodes = append(nodes, n)
	}

	edges := make([]graph.Edge, 0, len(d.Edges))
	for i, ed := range d.Edges {
		id := ed.ID
		if id == "" {
			id = fmt.Sprintf("%s-%s-%d", ed.Source, ed.Target, i)
		}
		edges = append(edges, graph.Edge{
			ID:          id,
			Source:      ed.Source,
			Target:      ed.Target,
			Kind:        parseEdgeKind(ed.Kind),
			Label:       ed.Label,
			Cardinality: graph.Cardinality(ed.Cardinality),
		})
	}
	return graph.Normalize(nodes), edges
}

func parseNodeKind(s string) graph.NodeKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "datainstance", "data_instance", "instance":
		return graph.KindDataInstance
	default:
		return graph.KindSchemaClass
	}
}

func parseEdgeKind(s string) graph.EdgeKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hierarchy", "subclass":
		return graph.KindHierarchy
	case "datarelationship", "data_relationship", "data":
		return graph.KindDataRelationship
	default:
		return graph.KindSchemaRelationship
	}
}

// LoadFile publishes one schema file, creating the schema row on first
// sight and replacing its graph otherwise.
func (l *Loader) LoadFile(path string) (*store.Schema, error) {
	def, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	nodes, edges := def.Graph()
	if err := graph.Validate(nodes, edges); err != nil {
		// Structural problems are reported but do not block the load;
		// downstream layers exclude the offending edges themselves.
		l.logger.Warn("schema definition has structural issues",
			"file", path, "issues", err.Error())
	}

	schema, err := l.store.GetSchemaByName(def.Name)
	if err != nil {
		schema, err = l.store.CreateSchema(def.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create schema %s: %w", def.Name, err)
		}
	}

	if err := l.store.ReplaceGraph(schema.ID, nodes, edges); err != nil {
		return nil, fmt.Errorf("failed to store graph for schema %s: %w", def.Name, err)
	}

	l.logger.Info("loaded schema",
		"name", def.Name, "nodes", len(nodes), "edges", len(edges))
	return schema, nil
}

// LoadDir publishes every *.yaml / *.yml file under dir, in lexical
// order. Files that fail to parse are skipped with a warning; the first
// store error aborts the load.
func (l *Loader) LoadDir(dir string) ([]*store.Schema, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan schemas directory %s: %w", dir, err)
	}
	sort.Strings(paths)

	var schemas []*store.Schema
	for _, path := range paths {
		schema, err := l.LoadFile(path)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				l.logger.Warn("skipping unparseable schema file", "file", path, "error", err)
				continue
			}
			return schemas, err
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}
