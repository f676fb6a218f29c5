package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resumefile"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// MaxUploadSize is the largest document accepted by /parse and /transform
	MaxUploadSize = 10 << 20

	// multipartOverhead allows for boundaries and headers around the file
	multipartOverhead = 1 << 20
	maxJSONSize       = 1 << 20
	compileLogLines   = 40
)

// Output formats for /render
const (
	FormatPDF = "pdf"
	FormatTeX = "tex"
)

var validate = validator.New()

// renderQuery holds the /render query parameters
type renderQuery struct {
	Format string `validate:"omitempty,oneof=pdf tex"`
}

// listQuery holds the /renders query parameters
type listQuery struct {
	Limit int `validate:"gte=1,lte=500"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"status": "ok", "history": s.store != nil})
}

// handleParse decodes an uploaded document into a parsed résumé
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	name, data, err := readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	parsed, err := s.parser.ParseFile(name, data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, parsed)
}

// handleRender renders a résumé JSON body to PDF, or to LaTeX with ?format=tex
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	query := renderQuery{Format: r.URL.Query().Get("format")}
	if err := validateRequest(query); err != nil {
		s.writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONSize))
	if err != nil {
		s.writeError(w, err)
		return
	}
	resume, err := resumefile.Decode(".json", body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	th, err := theme.Load(s.themePath)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if query.Format == FormatTeX {
		tex, err := rendering.RenderLaTeX(resume, th, s.templatePath)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", db.ContentTypeFor(db.ArtifactTeX))
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, tex)
		return
	}

	s.servePDF(w, r, resume, th, db.SourceRender, body)
}

// handleTransform parses an uploaded document and renders the result to PDF
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	name, data, err := readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	parsed, err := s.parser.ParseFile(name, data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resume := parsed.ToResume()

	th, err := theme.Load(s.themePath)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.servePDF(w, r, resume, th, db.SourceTransform, resumeJSON)
}

func (s *Server) servePDF(w http.ResponseWriter, r *http.Request, resume *types.Resume, th *theme.Theme, source string, resumeJSON []byte) {
	out, renderID, err := s.renderPDF(r.Context(), resume, th, source, resumeJSON)
	if renderID != uuid.Nil {
		w.Header().Set("X-Render-ID", renderID.String())
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", db.ContentTypeFor(db.ArtifactPDF))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.PDFFileName()))
	w.Header().Set("X-Page-Count", strconv.Itoa(out.Pages))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.PDF)
}

// handleGetTheme returns the current theme
func (s *Server) handleGetTheme(w http.ResponseWriter, _ *http.Request) {
	th, err := theme.Load(s.themePath)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, th)
}

// handlePutTheme validates a theme and saves it. Keys missing from the body take default values.
func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	th := theme.Default()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(th); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, err)
			return
		}
		s.writeError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	s.themeMu.Lock()
	err := theme.Save(s.themePath, th)
	s.themeMu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("theme saved", "path", s.themePath)
	s.jsonResponse(w, http.StatusOK, th)
}

// readUpload reads the multipart "file" field. Spooled parts are removed before returning.
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, err
		}
		return "", nil, &ErrValidation{Field: "file", Message: "expected a multipart/form-data upload"}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, &ErrValidation{Field: "file", Message: "is required"}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return "", nil, &http.MaxBytesError{Limit: MaxUploadSize}
	}
	return header.Filename, data, nil
}

// validateRequest checks a query struct and reports the first failing field
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed %q (got %v)", fe.Tag(), fe.Value()),
		}
	}
	return err
}

// writeError writes err as JSON with the status from HTTPStatus. Schema
// failures carry their field errors and compile failures the end of the
// engine log.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	resp := map[string]any{"error": err.Error()}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		resp["error"] = "resume does not match the schema"
		resp["details"] = schemaErr.Errors
	}
	var compileErr *rendering.CompilationError
	if errors.As(err, &compileErr) && compileErr.LogOutput != "" {
		resp["log"] = lastLines(compileErr.LogOutput, compileLogLines)
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	s.jsonResponse(w, status, resp)
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
