package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/jonathan/resume-builder/internal/types"
)

// renderPDF renders resume and, when a store is configured, records the
// render with its artifacts. The returned ID is uuid.Nil when nothing was
// recorded. Store failures are logged and never fail the render.
func (s *Server) renderPDF(ctx context.Context, resume *types.Resume, th *theme.Theme, source string, resumeJSON []byte) (*rendering.Output, uuid.UUID, error) {
	engine := rendering.EngineFor(th)
	id := s.beginRender(ctx, resume.Name, source, engine)

	opts := rendering.RenderOptions{TemplatePath: s.templatePath, Compile: s.compile}
	opts.Compile.Engine = engine
	out, err := s.render(ctx, resume, th, opts)
	if err != nil && out != nil && len(out.PDF) > 0 {
		s.logger.Warn("LaTeX reported errors but produced a PDF", "error", err)
		err = nil
	}

	s.finishRender(context.WithoutCancel(ctx), id, out, resumeJSON, err)
	if err != nil {
		return nil, id, err
	}
	return out, id, nil
}

func (s *Server) beginRender(ctx context.Context, name, source, engine string) uuid.UUID {
	if s.store == nil {
		return uuid.Nil
	}
	id, err := s.store.CreateRender(ctx, name, source, engine)
	if err != nil {
		s.logger.Warn("failed to record render", "error", err)
		return uuid.Nil
	}
	return id
}

func (s *Server) finishRender(ctx context.Context, id uuid.UUID, out *rendering.Output, resumeJSON []byte, renderErr error) {
	if s.store == nil || id == uuid.Nil {
		return
	}

	artifacts := map[string][]byte{db.ArtifactResume: resumeJSON}
	pages := 0
	if out != nil {
		artifacts[db.ArtifactTeX] = []byte(out.TeX)
		artifacts[db.ArtifactPDF] = out.PDF
		pages = out.Pages
	}
	for kind, content := range artifacts {
		if len(content) == 0 {
			continue
		}
		if err := s.store.SaveArtifact(ctx, id, kind, content); err != nil {
			s.logger.Warn("failed to save artifact", "render_id", id, "kind", kind, "error", err)
		}
	}

	if err := s.store.CompleteRender(ctx, id, pages, renderErr); err != nil {
		s.logger.Warn("failed to complete render", "render_id", id, "error", err)
	}
}

// handleListRenders lists recent renders, newest first
func (s *Server) handleListRenders(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, ErrStoreUnavailable)
		return
	}

	query := listQuery{Limit: db.DefaultListLimit}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be a number"})
			return
		}
		query.Limit = n
	}
	if err := validateRequest(query); err != nil {
		s.writeError(w, err)
		return
	}

	renders, err := s.store.ListRenders(r.Context(), query.Limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"renders": renders, "count": len(renders)})
}

// handleGetRender returns one render record
func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, ErrStoreUnavailable)
		return
	}
	id, err := parseRenderID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	render, err := s.store.GetRender(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if render == nil {
		s.writeError(w, &ErrRenderNotFound{RenderID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, render)
}

// handleGetArtifact serves resume.pdf, resume.tex or resume.json for a render
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, ErrStoreUnavailable)
		return
	}
	id, err := parseRenderID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	kind := r.PathValue("artifact")
	if !db.IsArtifactKind(kind) {
		s.writeError(w, &ErrRenderNotFound{RenderID: id, Artifact: kind})
		return
	}

	artifact, err := s.store.GetArtifact(r.Context(), id, kind)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if artifact == nil {
		s.writeError(w, &ErrRenderNotFound{RenderID: id, Artifact: kind})
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Content)
}

func parseRenderID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}
