// Package db provides PostgreSQL storage for render history.
package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// DefaultListLimit is used when ListRenders is given a non-positive limit
const DefaultListLimit = 50

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the render tables if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// CreateRender inserts a running render and returns its ID
func (db *DB) CreateRender(ctx context.Context, name, source, engine string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO renders (id, name, source, engine, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, name, source, engine, StatusRunning,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create render: %w", err)
	}
	return id, nil
}

// CompleteRender records the outcome of a render. A non-nil renderErr marks
// it failed.
func (db *DB) CompleteRender(ctx context.Context, id uuid.UUID, pages int, renderErr error) error {
	status, message := completion(renderErr)
	_, err := db.pool.Exec(ctx,
		`UPDATE renders SET status = $1, pages = $2, error = $3, completed_at = NOW() WHERE id = $4`,
		status, pages, message, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete render: %w", err)
	}
	return nil
}

// completion returns the final status and error text stored for a render
func completion(renderErr error) (status, message string) {
	if renderErr != nil {
		return StatusFailed, renderErr.Error()
	}
	return StatusCompleted, ""
}

// SaveArtifact stores an output of a render, replacing any earlier one of the same kind
func (db *DB) SaveArtifact(ctx context.Context, renderID uuid.UUID, kind string, content []byte) error {
	if !IsArtifactKind(kind) {
		return fmt.Errorf("unknown artifact kind %q", kind)
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO render_artifacts (render_id, kind, content_type, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (render_id, kind) DO UPDATE SET content_type = $3, content = $4, created_at = NOW()`,
		renderID, kind, ContentTypeFor(kind), content,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", kind, err)
	}
	return nil
}

// GetArtifact retrieves an artifact by render ID and kind. It returns nil
// when none exists.
func (db *DB) GetArtifact(ctx context.Context, renderID uuid.UUID, kind string) (*Artifact, error) {
	var a Artifact
	err := db.pool.QueryRow(ctx,
		`SELECT id, render_id, kind, content_type, content, created_at
		 FROM render_artifacts WHERE render_id = $1 AND kind = $2`,
		renderID, kind,
	).Scan(&a.ID, &a.RenderID, &a.Kind, &a.ContentType, &a.Content, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", kind, err)
	}
	return &a, nil
}

// GetRender retrieves a render by ID. It returns nil when none exists.
func (db *DB) GetRender(ctx context.Context, id uuid.UUID) (*Render, error) {
	var r Render
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, source, engine, status, pages, error, created_at, completed_at
		 FROM renders WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Name, &r.Source, &r.Engine, &r.Status, &r.Pages, &r.Error, &r.CreatedAt, &r.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get render: %w", err)
	}
	return &r, nil
}

// ListRenders retrieves the most recent renders, newest first
func (db *DB) ListRenders(ctx context.Context, limit int) ([]Render, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, source, engine, status, pages, error, created_at, completed_at
		 FROM renders ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list renders: %w", err)
	}
	defer rows.Close()

	renders := []Render{}
	for rows.Next() {
		var r Render
		if err := rows.Scan(&r.ID, &r.Name, &r.Source, &r.Engine, &r.Status, &r.Pages, &r.Error, &r.CreatedAt, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan render: %w", err)
		}
		renders = append(renders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list renders: %w", err)
	}
	return renders, nil
}
