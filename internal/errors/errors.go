// Package errors formats pipeline-stage (lex/parse) failures with
// source context: a line/column header, the offending source line, and
// a caret pointing at the column, modeled on the teacher's
// internal/errors package. Runtime throw completions are a separate,
// later-stage concern formatted by pkg/glyn instead, since they carry a
// JS value (ECMA-262 §6.2.4 Completion Record) rather than a fixed
// source position.
package errors

import (
	"fmt"
	"strings"

	"github.com/thegreatercurve/glyn-sub000/internal/token"
)

// SourceError is a single lex/parse failure with position and source
// context.
type SourceError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a SourceError.
func New(pos token.Position, message, source, file string) *SourceError {
	return &SourceError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface with an uncolored Format.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source-line snippet and caret
// indicator; color wraps the caret in ANSI red/bold when true.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: %s\n", e.File, e.Pos.Line, e.Pos.Column, e.Message)
	} else {
		fmt.Fprintf(&sb, "%d:%d: %s\n", e.Pos.Line, e.Pos.Column, e.Message)
	}

	line := e.sourceLine(e.Pos.Line)
	if line == "" {
		return strings.TrimRight(sb.String(), "\n")
	}

	lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(e.Pos.Column-1, 0)))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *SourceError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
