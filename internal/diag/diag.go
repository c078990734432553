// Package diag carries compile diagnostics with source spans.
// Diagnostics are accumulated so a single run reports as many
// independent problems as possible.
package diag

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"go.uber.org/multierr"
)

type Kind int

const (
	SyntaxError Kind = iota
	UnknownAttribute
	BadAttributeValue
	MissingReportKind
	ConflictingAttributes
	UsagePageOutOfScope
	CollectionMisnesting
	LogicalBoundsInverted
	ValueOverflowsSize
)

var kindNames = map[Kind]string{
	SyntaxError:           "SyntaxError",
	UnknownAttribute:      "UnknownAttribute",
	BadAttributeValue:     "BadAttributeValue",
	MissingReportKind:     "MissingReportKind",
	ConflictingAttributes: "ConflictingAttributes",
	UsagePageOutOfScope:   "UsagePageOutOfScope",
	CollectionMisnesting:  "CollectionMisnesting",
	LogicalBoundsInverted: "LogicalBoundsInverted",
	ValueOverflowsSize:    "ValueOverflowsSize",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Span points at the offending source region.
type Span struct {
	File   string
	Line   int
	Column int
}

func SpanAt(pos lexer.Position) Span {
	return Span{
		File:   pos.Filename,
		Line:   pos.Line,
		Column: pos.Column,
	}
}

func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

type Diagnostic struct {
	Kind    Kind
	Span    Span
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Kind, d.Message)
}

// List accumulates diagnostics across the parser and resolver stages.
type List struct {
	diags []Diagnostic
}

func (l *List) Add(kind Kind, span Span, format string, args ...any) {
	l.diags = append(l.diags, Diagnostic{
		Kind:    kind,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	})
}

func (l *List) HasErrors() bool {
	return len(l.diags) > 0
}

func (l *List) Diagnostics() []Diagnostic {
	return l.diags
}

// Err collapses the list into a single error, or nil when empty.
func (l *List) Err() error {
	var err error
	for _, d := range l.diags {
		err = multierr.Append(err, d)
	}
	return err
}
