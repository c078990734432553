package hiddsl

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	ruleWhitespace = lexer.SimpleRule{Name: "Whitespace", Pattern: `[ \t\r\n]+`}
	ruleComment    = lexer.SimpleRule{Name: "Comment", Pattern: `//[^\n]*`}
	ruleHexNumber  = lexer.SimpleRule{Name: "HexNumber", Pattern: `0[xX][0-9a-fA-F]+`}
	ruleNumber     = lexer.SimpleRule{Name: "Number", Pattern: `[-+]?\d+`}
	ruleIdent      = lexer.SimpleRule{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`}
	ruleArrow      = lexer.SimpleRule{Name: "Arrow", Pattern: `->`}
	rulePunct      = lexer.SimpleRule{Name: "Punct", Pattern: `[={}();,:\[\]]`}
)

var recordLexer = lexer.MustSimple([]lexer.SimpleRule{
	ruleWhitespace,
	ruleComment,
	ruleHexNumber,
	ruleNumber,
	ruleIdent,
	ruleArrow,
	rulePunct,
})

var fileParser = participle.MustBuild[File](
	participle.Lexer(recordLexer),
	participle.UseLookahead(4),
	participle.Elide(ruleWhitespace.Name, ruleComment.Name),
)

// File is a sequence of record definitions. Each record compiles to an
// independent descriptor and packer.
type File struct {
	Pos     lexer.Position
	Records []*Record `parser:"@@*"`
}

type Record struct {
	Pos     lexer.Position
	Name    string   `parser:"'record' @Ident"`
	Entries []*Entry `parser:"'{' @@* '}'"`
}

// Entry is a oneOf: nested collection block, field declaration or
// attribute assignment.
type Entry struct {
	Pos        lexer.Position
	Collection *CollectionBlock `parser:"@@"`
	Field      *FieldDecl       `parser:"| @@"`
	Attr       *AttrDecl        `parser:"| @@"`
}

type CollectionBlock struct {
	Pos     lexer.Position
	Kind    string   `parser:"'collection' '=' @Ident"`
	Entries []*Entry `parser:"'{' @@* '}'"`
}

type AttrDecl struct {
	Pos   lexer.Position
	Name  string `parser:"@Ident '='"`
	Value *Value `parser:"@@ ';'"`
}

// FieldDecl is a field declaration. Kind is any identifier at parse
// time; the resolver requires input, output or feature.
type FieldDecl struct {
	Pos        lexer.Position
	Kind       string     `parser:"@Ident"`
	Qualifiers []string   `parser:"'(' (@Ident (',' @Ident)*)? ')'"`
	Name       string     `parser:"':' @Ident"`
	Type       *FieldType `parser:"Arrow @@ ';'"`
}

type FieldType struct {
	Pos    lexer.Position
	Array  *ArrayType `parser:"@@"`
	Scalar *string    `parser:"| @Ident"`
}

type ArrayType struct {
	Pos    lexer.Position
	Scalar string `parser:"'[' @Ident ';'"`
	Len    Number `parser:"@Number ']'"`
}

// Value is either a numeric literal or a named constant resolved
// against the usage tables during attribute resolution.
type Value struct {
	Pos   lexer.Position
	Num   *Number `parser:"@(Number|HexNumber)"`
	Const *string `parser:"| @Ident"`
}

type Number int64

func (n *Number) Capture(values []string) error {
	v, err := strconv.ParseInt(values[0], 0, 64)
	if err != nil {
		return err
	}
	*n = Number(v)
	return nil
}
