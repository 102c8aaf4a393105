package ast

import (
	"github.com/octo-lang/octoc/internal/lexer"
	"github.com/octo-lang/octoc/internal/source"
	"github.com/octo-lang/octoc/internal/types"
)

// VarDecl is `let IDENT (: type)? (= rvalue)? ;`. At least one of
// Annotation/Init is non-nil (enforced by the parser); Type is filled in by
// the analyzer from whichever is present, or both once checked compatible.
type VarDecl struct {
	Tok        lexer.Token
	Name       string
	Annotation TypeExpr // nil if inferred from Init
	Init       Expr     // nil if declared by annotation only
	Type       types.Type
}

func (n *VarDecl) Pos() source.Position { return n.Tok.Pos }
func (*VarDecl) stmtNode()              {}

// Param is one `name: type` entry in a function's parameter list.
type Param struct {
	Tok        lexer.Token
	Name       string
	Annotation TypeExpr
	Type       types.Type
}

// FuncDecl is `func IDENT '(' params? ')' '->' type (body | ';')`. Body is
// nil for a `;`-terminated declaration. The parser accepts both forms with
// or without `extern`; the analyzer reports a missing body on a non-extern
// FuncDecl and a present body on an extern one.
type FuncDecl struct {
	Tok        lexer.Token
	Name       string
	Params     []Param
	Variadic   bool
	ReturnType TypeExpr
	Body       *Compound
	Type       types.Type // *types.FunctionType once analyzed
}

func (n *FuncDecl) Pos() source.Position { return n.Tok.Pos }
func (*FuncDecl) stmtNode()              {}

// ExternDecl is `extern func-decl ';'`: a function declaration with no
// body, bound at link time.
type ExternDecl struct {
	Tok  lexer.Token
	Func *FuncDecl
}

func (n *ExternDecl) Pos() source.Position { return n.Tok.Pos }
func (*ExternDecl) stmtNode()              {}

// Compound is a brace-delimited statement block. The whole program is the
// outermost Compound, bracketed by the lexer's synthetic `{`/`}` pair.
type Compound struct {
	Tok   lexer.Token
	Stmts []Stmt
}

func (n *Compound) Pos() source.Position { return n.Tok.Pos }
func (*Compound) stmtNode()              {}

// CallStmt is a function call in statement position:
// `identifier '(' args? ')' ';'`. The call's value, if any, is discarded.
type CallStmt struct {
	Call *Call
}

func (n *CallStmt) Pos() source.Position { return n.Call.Pos() }
func (*CallStmt) stmtNode()              {}

// Return is `return rvalue? ';'`.
type Return struct {
	Tok   lexer.Token
	Value Expr // nil for a bare `return;`
}

func (n *Return) Pos() source.Position { return n.Tok.Pos }
func (*Return) stmtNode()              {}

// Assignment is `lvalue '=' rvalue ';'`.
type Assignment struct {
	Tok    lexer.Token
	Target Expr
	Value  Expr
}

func (n *Assignment) Pos() source.Position { return n.Tok.Pos }
func (*Assignment) stmtNode()              {}

// Conditional covers both `if`/`else` and `while`: IsWhile selects the
// loop reading, in which case the analyzer rejects any Else. Else, when
// present, is either a *Compound (`else { ... }`) or another *Conditional
// (`else if ...`).
type Conditional struct {
	Tok     lexer.Token
	Cond    Expr
	Then    *Compound
	Else    Stmt
	IsWhile bool
}

func (n *Conditional) Pos() source.Position { return n.Tok.Pos }
func (*Conditional) stmtNode()              {}

// ForLoop is `for IDENT in rvalue compound`.
type ForLoop struct {
	Tok      lexer.Token
	IterName string
	Iterable Expr
	Body     *Compound
	ElemType types.Type
}

func (n *ForLoop) Pos() source.Position { return n.Tok.Pos }
func (*ForLoop) stmtNode()              {}

// TypeDecl is `type IDENT '=' type-rvalue ';'`.
type TypeDecl struct {
	Tok  lexer.Token
	Name string
	Def  TypeExpr
	Type types.Type // the resolved, interned *types.NamedType
}

func (n *TypeDecl) Pos() source.Position { return n.Tok.Pos }
func (*TypeDecl) stmtNode()              {}
