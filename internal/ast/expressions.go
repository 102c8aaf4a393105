package ast

import (
	"github.com/octo-lang/octoc/internal/lexer"
	"github.com/octo-lang/octoc/internal/source"
)

// ---- rvalue-only kinds ----

type IntegerLit struct {
	Tok   lexer.Token
	Value uint64
	typed
}

func (n *IntegerLit) Pos() source.Position { return n.Tok.Pos }
func (*IntegerLit) exprNode()              {}

type FloatLit struct {
	Tok   lexer.Token
	Value float64
	typed
}

func (n *FloatLit) Pos() source.Position { return n.Tok.Pos }
func (*FloatLit) exprNode()              {}

type StringLit struct {
	Tok   lexer.Token
	Value string
	typed
}

func (n *StringLit) Pos() source.Position { return n.Tok.Pos }
func (*StringLit) exprNode()              {}

type CharLit struct {
	Tok   lexer.Token
	Value byte
	typed
}

func (n *CharLit) Pos() source.Position { return n.Tok.Pos }
func (*CharLit) exprNode()              {}

type BoolLit struct {
	Tok   lexer.Token
	Value bool
	typed
}

func (n *BoolLit) Pos() source.Position { return n.Tok.Pos }
func (*BoolLit) exprNode()              {}

// Binary is a left-associative, precedence-correct binary expression. The
// parser builds these via precedence climbing, so by the time the
// analyzer sees one, Left/Right already reflect standard precedence.
type Binary struct {
	Tok         lexer.Token
	Op          lexer.TokenKind
	Left, Right Expr
	typed
}

func (n *Binary) Pos() source.Position { return n.Tok.Pos }
func (*Binary) exprNode()              {}

// Call is `identifier '(' args? ')'`; the callee is always a bare name
// resolved against the symbol table, never an arbitrary expression.
type Call struct {
	Tok    lexer.Token
	Callee string
	Args   []Expr
	typed
}

func (n *Call) Pos() source.Position { return n.Tok.Pos }
func (*Call) exprNode()              {}

// ArrayLit is `'[' rvalues ']'`.
type ArrayLit struct {
	Tok   lexer.Token
	Elems []Expr
	typed
}

func (n *ArrayLit) Pos() source.Position { return n.Tok.Pos }
func (*ArrayLit) exprNode()              {}

// CompoundField is one `.name = rvalue` initializer inside a compound
// literal.
type CompoundField struct {
	Tok   lexer.Token
	Name  string
	Value Expr
}

// CompoundLit is `identifier '{' .field = rvalue, ... '}'`.
type CompoundLit struct {
	Tok      lexer.Token
	TypeName string
	Fields   []CompoundField
	typed
}

func (n *CompoundLit) Pos() source.Position { return n.Tok.Pos }
func (*CompoundLit) exprNode()              {}

// ---- lvalue-or-rvalue kinds ----

type Identifier struct {
	Tok  lexer.Token
	Name string
	typed
}

func (n *Identifier) Pos() source.Position { return n.Tok.Pos }
func (*Identifier) exprNode()              {}

// Unary is a prefix `- ! * &` applied to Operand.
type Unary struct {
	Tok     lexer.Token
	Op      lexer.TokenKind
	Operand Expr
	typed
}

func (n *Unary) Pos() source.Position { return n.Tok.Pos }
func (*Unary) exprNode()              {}

// Subscript is `array '[' index ']'`.
type Subscript struct {
	Tok   lexer.Token
	Array Expr
	Index Expr
	typed
}

func (n *Subscript) Pos() source.Position { return n.Tok.Pos }
func (*Subscript) exprNode()              {}

// MemberAccess is `target '.' member`.
type MemberAccess struct {
	Tok    lexer.Token
	Target Expr
	Member string
	typed
}

func (n *MemberAccess) Pos() source.Position { return n.Tok.Pos }
func (*MemberAccess) exprNode()              {}
