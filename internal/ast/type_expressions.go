package ast

import (
	"github.com/octo-lang/octoc/internal/lexer"
	"github.com/octo-lang/octoc/internal/source"
)

// TypeIdentifier is a bare name in type position: either a built-in
// (`i32`, `bool`, ...) or a user `type` declaration.
type TypeIdentifier struct {
	Tok  lexer.Token
	Name string
	typed
}

func (n *TypeIdentifier) Pos() source.Position { return n.Tok.Pos }
func (*TypeIdentifier) typeExprNode()          {}

// PointerTypeExpr is `&T`.
type PointerTypeExpr struct {
	Tok  lexer.Token
	Elem TypeExpr
	typed
}

func (n *PointerTypeExpr) Pos() source.Position { return n.Tok.Pos }
func (*PointerTypeExpr) typeExprNode()          {}

// ArrayTypeExpr is `'[' N? ']' T`; Len == -1 when the length was omitted
// and must be inferred from an initializer.
type ArrayTypeExpr struct {
	Tok  lexer.Token
	Len  int
	Elem TypeExpr
	typed
}

func (n *ArrayTypeExpr) Pos() source.Position { return n.Tok.Pos }
func (*ArrayTypeExpr) typeExprNode()          {}

// CompoundMember is one `name: type-rvalue` field inside a struct/union
// definition.
type CompoundMember struct {
	Tok        lexer.Token
	Name       string
	Annotation TypeExpr
}

// CompoundDef is `struct { ... }` or `union { ... }`.
type CompoundDef struct {
	Tok      lexer.Token
	IsStruct bool
	Members  []CompoundMember
	typed
}

func (n *CompoundDef) Pos() source.Position { return n.Tok.Pos }
func (*CompoundDef) typeExprNode()          {}
