// Package rendering turns a résumé record and a theme into LaTeX and
// compiles it to PDF.
package rendering

import (
	"errors"
	"fmt"
)

// ErrEngineNotFound is the cause of a CompilationError when the TeX
// engine is not installed.
var ErrEngineNotFound = errors.New("TeX engine not found in PATH")

// TemplateError represents a LaTeX template that cannot be read, parsed or executed
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents invalid render input
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// CompilationError represents a failed LaTeX run. LogOutput holds the
// engine's combined stdout and stderr.
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
