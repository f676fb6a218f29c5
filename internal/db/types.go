package db

import (
	"time"

	"github.com/google/uuid"
)

// Render is one PDF or LaTeX generation.
type Render struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Source      string     `json:"source"`
	Engine      string     `json:"engine"`
	Status      string     `json:"status"`
	Pages       int        `json:"pages"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Render statuses
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Render sources
const (
	SourceRender    = "render"
	SourceTransform = "transform"
)

// Artifact kinds stored per render
const (
	ArtifactPDF    = "resume.pdf"
	ArtifactTeX    = "resume.tex"
	ArtifactResume = "resume.json"
)

// Artifact is a stored render output.
type Artifact struct {
	ID          uuid.UUID `json:"id"`
	RenderID    uuid.UUID `json:"render_id"`
	Kind        string    `json:"kind"`
	ContentType string    `json:"content_type"`
	Content     []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContentTypeFor returns the MIME type served for an artifact kind.
func ContentTypeFor(kind string) string {
	switch kind {
	case ArtifactPDF:
		return "application/pdf"
	case ArtifactTeX:
		return "application/x-tex; charset=utf-8"
	case ArtifactResume:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// IsArtifactKind reports whether kind names a stored artifact.
func IsArtifactKind(kind string) bool {
	switch kind {
	case ArtifactPDF, ArtifactTeX, ArtifactResume:
		return true
	}
	return false
}
