// Package diag turns the error nodes of a parse tree into diagnostics with
// resolved line and column positions.
package diag

import (
	"fmt"
	"strings"

	"github.com/dennwc/webidl/v2/ast"
)

// Severity represents the severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Position is a resolved location in a named file.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Range represents a range in the source code.
type Range struct {
	Start Position
	End   Position
}

// Diagnostic represents a single problem found in a file.
type Diagnostic struct {
	Range    Range
	Severity Severity
	Code     string // e.g., "E0201"
	Message  string
}

// String returns a human-readable representation of the diagnostic.
func (d Diagnostic) String() string {
	var b strings.Builder

	// Format: filename:line:column: severity: message [code]
	if d.Range.Start.Filename != "" {
		fmt.Fprintf(&b, "%s:", d.Range.Start.Filename)
	}
	fmt.Fprintf(&b, "%d:%d: ", d.Range.Start.Line, d.Range.Start.Column)
	fmt.Fprintf(&b, "%s: %s", d.Severity, d.Message)
	if d.Code != "" {
		fmt.Fprintf(&b, " [%s]", d.Code)
	}

	return b.String()
}

// Diagnostics is a collection of diagnostics.
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new Diagnostics collection.
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Add adds a diagnostic to the collection.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.items = append(d.items, diag)
}

// All returns all diagnostics.
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Errors returns all error diagnostics.
func (d *Diagnostics) Errors() []Diagnostic {
	var errors []Diagnostic
	for _, diag := range d.items {
		if diag.Severity == Error {
			errors = append(errors, diag)
		}
	}
	return errors
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	for _, diag := range d.items {
		if diag.Severity == Error {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics.
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// Merge merges another Diagnostics collection into this one.
func (d *Diagnostics) Merge(other *Diagnostics) {
	d.items = append(d.items, other.items...)
}

// Diagnostic codes.
// First two digits = category, last two = specific problem.
const (
	// Lexical errors (E01xx)
	ErrUnrecognizedInput = "E0101"

	// Syntax errors (E02xx)
	ErrSyntax = "E0201"

	// Warnings (W01xx)
	WarnImplements = "W0101"
)

// FromFile reports every error node of a parsed file, in offset order,
// followed by warnings for obsolete syntax.
func FromFile(filename string, f *ast.File) *Diagnostics {
	d := New()
	for _, e := range ast.Errors(f) {
		code := ErrSyntax
		if e.ErrKind == ast.LexicalError {
			code = ErrUnrecognizedInput
		}
		d.Add(Diagnostic{
			Range:    spanOf(filename, f, e),
			Severity: Error,
			Code:     code,
			Message:  e.Message,
		})
	}
	for _, def := range f.Definitions {
		if st, ok := def.(*ast.ImplementsStatement); ok {
			d.Add(Diagnostic{
				Range:    spanOf(filename, f, st),
				Severity: Warning,
				Code:     WarnImplements,
				Message:  "implements statements are obsolete, use includes",
			})
		}
	}
	return d
}

func spanOf(filename string, f *ast.File, n ast.Node) Range {
	b := n.NodeBase()
	return Range{
		Start: position(filename, f.Position(b.Start)),
		End:   position(filename, f.Position(b.End)),
	}
}

func position(filename string, p ast.Position) Position {
	return Position{Filename: filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}
