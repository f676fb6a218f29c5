//go:build integration

package db

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	// Clean up test data before each test
	_, _ = db.pool.Exec(ctx, "DELETE FROM renders WHERE name LIKE 'Integration %'")

	return db
}

func TestIntegration_RenderLifecycle(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	id, err := db.CreateRender(ctx, "Integration Render", SourceRender, "pdflatex")
	require.NoError(t, err)

	r, err := db.GetRender(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, StatusRunning, r.Status)
	assert.Nil(t, r.CompletedAt)

	require.NoError(t, db.SaveArtifact(ctx, id, ArtifactTeX, []byte(`\documentclass{article}`)))
	require.NoError(t, db.SaveArtifact(ctx, id, ArtifactPDF, []byte("%PDF-1.4")))
	require.NoError(t, db.SaveArtifact(ctx, id, ArtifactPDF, []byte("%PDF-1.5")))
	require.NoError(t, db.CompleteRender(ctx, id, 1, nil))

	r, err = db.GetRender(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, r.Status)
	assert.Equal(t, 1, r.Pages)
	assert.NotNil(t, r.CompletedAt)

	pdf, err := db.GetArtifact(ctx, id, ArtifactPDF)
	require.NoError(t, err)
	require.NotNil(t, pdf)
	assert.Equal(t, []byte("%PDF-1.5"), pdf.Content, "saving twice replaces the artifact")
	assert.Equal(t, "application/pdf", pdf.ContentType)

	missing, err := db.GetArtifact(ctx, id, ArtifactResume)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_CompleteRenderFailure(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	id, err := db.CreateRender(ctx, "Integration Failure", SourceTransform, "pdflatex")
	require.NoError(t, err)
	require.NoError(t, db.CompleteRender(ctx, id, 0, errors.New("pdflatex not found")))

	r, err := db.GetRender(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, "pdflatex not found", r.Error)
}

func TestIntegration_GetRenderNotFound(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	r, err := db.GetRender(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestIntegration_ListRenders(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	first, err := db.CreateRender(ctx, "Integration First", SourceRender, "pdflatex")
	require.NoError(t, err)
	second, err := db.CreateRender(ctx, "Integration Second", SourceRender, "pdflatex")
	require.NoError(t, err)

	renders, err := db.ListRenders(ctx, 0)
	require.NoError(t, err)

	var ids []uuid.UUID
	for _, r := range renders {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
}
