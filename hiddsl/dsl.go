// Package hiddsl parses the annotated record definitions that describe
// HID reports. The grammar is fixed and closed: attribute assignments,
// nested collection blocks and input/output/feature field declarations.
package hiddsl

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/hidforge/hidforge/internal/diag"
)

// ParseString parses DSL source. Syntax errors are reported through the
// diagnostic list; the returned file is nil when parsing fails.
func ParseString(filename, source string, diags *diag.List) *File {
	file, err := fileParser.ParseString(filename, source)
	if err != nil {
		addParseError(err, diags)
		return nil
	}
	return file
}

func ParseReader(filename string, r io.Reader, diags *diag.List) *File {
	file, err := fileParser.Parse(filename, r)
	if err != nil {
		addParseError(err, diags)
		return nil
	}
	return file
}

func addParseError(err error, diags *diag.List) {
	if perr, ok := err.(participle.Error); ok {
		diags.Add(diag.SyntaxError, diag.SpanAt(perr.Position()), "%s", perr.Message())
		return
	}
	diags.Add(diag.SyntaxError, diag.Span{}, "%s", err.Error())
}

// Grammar returns the EBNF of the record grammar. Used by `hidforge
// grammar` for reference output.
func Grammar() string {
	return strings.TrimSpace(fileParser.String())
}
