package rendering

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/pdfdoc"
	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// CompilationTimeout is the default limit for one LaTeX run
	CompilationTimeout = 30 * time.Second

	EnginePDFLaTeX = "pdflatex"
	EngineXeLaTeX  = "xelatex"

	texFileName = "resume.tex"
)

// CompileOptions configures Compile.
type CompileOptions struct {
	// Engine is the TeX binary; empty means pdflatex.
	Engine string
	// TempDir is the parent of the scratch directory; empty means os.TempDir.
	TempDir string
	// Timeout bounds the run; zero means CompilationTimeout.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Output is a compiled document.
type Output struct {
	TeX   string
	PDF   []byte
	Pages int
	Log   string
}

// Compile runs the TeX engine on tex in a scratch directory that is
// removed before returning.
func Compile(ctx context.Context, tex string, opts CompileOptions) (*Output, error) {
	engine := opts.Engine
	if engine == "" {
		engine = EnginePDFLaTeX
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = CompilationTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := exec.LookPath(engine); err != nil {
		return nil, &CompilationError{
			Message: fmt.Sprintf("%s not found. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)", engine),
			Cause:   fmt.Errorf("%w: %v", ErrEngineNotFound, err),
		}
	}

	workDir, err := os.MkdirTemp(opts.TempDir, "latex-compile-*")
	if err != nil {
		return nil, &CompilationError{Message: "failed to create temporary working directory", Cause: err}
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			logger.Warn("failed to remove LaTeX working directory", "dir", workDir, "error", rmErr)
		}
	}()

	texPath := filepath.Join(workDir, texFileName)
	if err := os.WriteFile(texPath, []byte(tex), 0644); err != nil {
		return nil, &CompilationError{Message: "failed to write LaTeX source", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, engine, "-interaction=nonstopmode", "-halt-on-error", "-output-directory", workDir, texPath)
	cmd.Dir = workDir
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	logOutput := stdout.String() + stderr.String()
	logger.Debug("LaTeX run finished", "engine", engine, "duration", time.Since(start), "error", runErr)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, &CompilationError{
			Message:   fmt.Sprintf("LaTeX compilation timed out after %s", timeout),
			LogOutput: logOutput,
			Cause:     ctx.Err(),
		}
	}

	pdfPath := filepath.Join(workDir, strings.TrimSuffix(texFileName, ".tex")+".pdf")
	pdf, readErr := os.ReadFile(pdfPath)
	if readErr != nil {
		cause := runErr
		if cause == nil {
			cause = readErr
		}
		return nil, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     cause,
		}
	}

	out := &Output{TeX: tex, PDF: pdf, Log: logOutput}
	if pages, err := pdfdoc.CountPages(pdf); err == nil {
		out.Pages = pages
	} else {
		logger.Warn("failed to count PDF pages", "error", err)
	}

	// LaTeX can produce a PDF and still exit non-zero
	if runErr != nil {
		return out, &CompilationError{
			Message:   "LaTeX compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return out, nil
}

// RenderOptions configures RenderPDF.
type RenderOptions struct {
	// TemplatePath overrides the built-in template.
	TemplatePath string
	Compile      CompileOptions
}

// EngineFor returns the TeX engine a theme needs: xelatex for TrueType
// fonts, pdflatex otherwise.
func EngineFor(th *theme.Theme) string {
	if th != nil && th.UseTTF() {
		return EngineXeLaTeX
	}
	return EnginePDFLaTeX
}

// RenderPDF renders resume to LaTeX and compiles it.
func RenderPDF(ctx context.Context, resume *types.Resume, th *theme.Theme, opts RenderOptions) (*Output, error) {
	if th == nil {
		th = theme.Default()
	}
	tex, err := RenderLaTeX(resume, th, opts.TemplatePath)
	if err != nil {
		return nil, err
	}

	compileOpts := opts.Compile
	if compileOpts.Engine == "" {
		compileOpts.Engine = EngineFor(th)
	}
	return Compile(ctx, tex, compileOpts)
}
