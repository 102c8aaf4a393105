package lexer

import (
	"fmt"

	"github.com/octo-lang/octoc/internal/source"
)

// Position aliases source.Position so token positions flow unchanged into
// AST nodes and diagnostics.
type Position = source.Position

// Token is a classified lexeme with position and a kind-dependent payload.
// Only the field matching Kind is meaningful; the rest are zero values.
type Token struct {
	Kind    TokenKind
	Pos     Position
	Literal string // exact surface text that produced the token

	IntValue    uint64
	FloatValue  float64
	CharValue   byte
	StringValue string
	BoolValue   bool
}

// String formats a token for debugging (`lex` CLI output, test failures).
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Literal, t.Pos)
}
