package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/graph"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at path and runs pending
// migrations. Use ":memory:" for tests.
func Open(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) migrate() error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// CreateSchema inserts a new empty schema at version 1.
func (s *SQLiteStore) CreateSchema(name string) (*Schema, error) {
	now := time.Now().UTC()
	schema := &Schema{
		ID:        uuid.New().String(),
		Name:      name,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.Exec(
		`INSERT INTO schemas (id, name, version, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		schema.ID, schema.Name, schema.Version, schema.CreatedAt, schema.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema %q: %w", name, err)
	}
	return schema, nil
}

// GetSchema returns a schema header by id.
func (s *SQLiteStore) GetSchema(id string) (*Schema, error) {
	return s.scanSchema(s.db.QueryRow(
		`SELECT id, name, version, created_at, updated_at FROM schemas WHERE id = ?`, id))
}

// GetSchemaByName returns a schema header by its unique name.
func (s *SQLiteStore) GetSchemaByName(name string) (*Schema, error) {
	return s.scanSchema(s.db.QueryRow(
		`SELECT id, name, version, created_at, updated_at FROM schemas WHERE name = ?`, name))
}

func (s *SQLiteStore) scanSchema(row *sql.Row) (*Schema, error) {
	var schema Schema
	err := row.Scan(&schema.ID, &schema.Name, &schema.Version, &schema.CreatedAt, &schema.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSchemaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return &schema, nil
}

// ListSchemas returns all schema headers ordered by name.
func (s *SQLiteStore) ListSchemas() ([]*Schema, error) {
	rows, err := s.db.Query(
		`SELECT id, name, version, created_at, updated_at FROM schemas ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	defer rows.Close()

	var schemas []*Schema
	for rows.Next() {
		var schema Schema
		if err := rows.Scan(&schema.ID, &schema.Name, &schema.Version, &schema.CreatedAt, &schema.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schema: %w", err)
		}
		schemas = append(schemas, &schema)
	}
	return schemas, rows.Err()
}

// DeleteSchema removes a schema and, via cascade, its nodes and edges.
func (s *SQLiteStore) DeleteSchema(id string) error {
	res, err := s.db.Exec(`DELETE FROM schemas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schema: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSchemaNotFound
	}
	return nil
}

// ReplaceGraph swaps the schema's node/edge set in one transaction and
// bumps the schema version so cached layouts are invalidated.
func (s *SQLiteStore) ReplaceGraph(schemaID string, nodes []graph.Node, edges []graph.Edge) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		`UPDATE schemas SET version = version + 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), schemaID,
	)
	if err != nil {
		return fmt.Errorf("failed to bump schema version: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSchemaNotFound
	}

	if _, err := tx.Exec(`DELETE FROM nodes WHERE schema_id = ?`, schemaID); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM edges WHERE schema_id = ?`, schemaID); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}

	for i := range nodes {
		n := &nodes[i]
		attrs, err := json.Marshal(n.Attributes)
		if err != nil {
			return fmt.Errorf("failed to encode attributes for node %s: %w", n.ID, err)
		}
		meta, err := json.Marshal(n.Meta)
		if err != nil {
			return fmt.Errorf("failed to encode meta for node %s: %w", n.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO nodes (id, schema_id, kind, name, display_name, parent_id, attributes, instance_count, meta, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ID, schemaID, string(n.Kind), n.Name, n.DisplayName, n.ParentID,
			string(attrs), n.InstanceCount, string(meta), i,
		); err != nil {
			return fmt.Errorf("failed to insert node %s: %w", n.ID, err)
		}
	}

	for i := range edges {
		e := &edges[i]
		if _, err := tx.Exec(
			`INSERT INTO edges (id, schema_id, source, target, kind, label, cardinality, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, schemaID, e.Source, e.Target, string(e.Kind), e.Label, string(e.Cardinality), i,
		); err != nil {
			return fmt.Errorf("failed to insert edge %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// GetGraph reads the schema's node/edge snapshot in stored order and
// applies the data-model normalization pass.
func (s *SQLiteStore) GetGraph(schemaID string) ([]graph.Node, []graph.Edge, error) {
	if _, err := s.GetSchema(schemaID); err != nil {
		return nil, nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, kind, name, display_name, parent_id, attributes, instance_count, meta
		 FROM nodes WHERE schema_id = ? ORDER BY position`, schemaID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []graph.Node
	for rows.Next() {
		var n graph.Node
		var kind, attrs, meta string
		if err := rows.Scan(&n.ID, &kind, &n.Name, &n.DisplayName, &n.ParentID, &attrs, &n.InstanceCount, &meta); err != nil {
			return nil, nil, fmt.Errorf("failed to scan node: %w", err)
		}
		n.Kind = graph.NodeKind(kind)
		if err := json.Unmarshal([]byte(attrs), &n.Attributes); err != nil {
			return nil, nil, fmt.Errorf("corrupt attributes for node %s: %w", n.ID, err)
		}
		if err := json.Unmarshal([]byte(meta), &n.Meta); err != nil {
			return nil, nil, fmt.Errorf("corrupt meta for node %s: %w", n.ID, err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	edgeRows, err := s.db.Query(
		`SELECT id, source, target, kind, label, cardinality
		 FROM edges WHERE schema_id = ? ORDER BY position`, schemaID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer edgeRows.Close()

	var edges []graph.Edge
	for edgeRows.Next() {
		var e graph.Edge
		var kind, cardinality string
		if err := edgeRows.Scan(&e.ID, &e.Source, &e.Target, &kind, &e.Label, &cardinality); err != nil {
			return nil, nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		e.Kind = graph.EdgeKind(kind)
		e.Cardinality = graph.Cardinality(cardinality)
		edges = append(edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, nil, err
	}

	return graph.Normalize(nodes), edges, nil
}

// GetStats aggregates class, relationship, and instance counts.
func (s *SQLiteStore) GetStats(schemaID string) (*Stats, error) {
	nodes, edges, err := s.GetGraph(schemaID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{InstancesByClass: make(map[string]int)}
	for i := range nodes {
		n := &nodes[i]
		switch n.Kind {
		case graph.KindSchemaClass:
			stats.TotalClasses++
			stats.InstancesByClass[n.ID] = n.InstanceCount
		case graph.KindDataInstance:
			// Instance nodes count toward their class via InstanceCount
			// on the class node; the node itself adds nothing here.
		}
		stats.TotalInstances += n.InstanceCount
	}
	for i := range edges {
		if edges[i].Kind == graph.KindSchemaRelationship {
			stats.TotalRelationships++
		}
	}
	return stats, nil
}
