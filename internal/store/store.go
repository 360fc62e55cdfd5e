// Package store persists schemas and their lineage graphs. It is the
// reference implementation of the backend the dashboard queries; the
// frontend-facing packages only ever see node/edge snapshots read from
// here, never the tables themselves.
package store

import (
	"errors"
	"time"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

// ErrSchemaNotFound is returned when a schema id does not exist.
var ErrSchemaNotFound = errors.New("schema not found")

// Schema is a stored schema header. Version increases on every graph
// mutation; the UI uses it to decide when a cached layout is stale.
type Schema struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Stats summarizes a stored schema graph.
type Stats struct {
	TotalClasses       int            `json:"totalClasses"`
	TotalRelationships int            `json:"totalRelationships"`
	TotalInstances     int            `json:"totalInstances"`
	InstancesByClass   map[string]int `json:"instancesByClass"`
}

// Store is the persistence interface the backend service builds on.
type Store interface {
	CreateSchema(name string) (*Schema, error)
	GetSchema(id string) (*Schema, error)
	GetSchemaByName(name string) (*Schema, error)
	ListSchemas() ([]*Schema, error)
	DeleteSchema(id string) error

	// ReplaceGraph swaps the schema's entire node/edge set and bumps the
	// schema version.
	ReplaceGraph(schemaID string, nodes []graph.Node, edges []graph.Edge) error
	GetGraph(schemaID string) ([]graph.Node, []graph.Edge, error)
	GetStats(schemaID string) (*Stats, error)

	Close() error
}
