// Package ast is the tagged expression tree the parser produces: a shared
// header (the originating token, for diagnostics) plus a kind-specific
// payload, partitioned into rvalues, lvalue-or-rvalues, statements, and
// type-rvalues. Go has no native sum type, so each kind is its own struct
// implementing a marker interface, and the analyzer and emitter dispatch
// with a type switch.
package ast

import (
	"github.com/octo-lang/octoc/internal/lexer"
	"github.com/octo-lang/octoc/internal/source"
	"github.com/octo-lang/octoc/internal/types"
)

// Node is implemented by every tree node; Pos anchors diagnostics to the
// token that introduced the node.
type Node interface {
	Pos() source.Position
}

// Expr is an rvalue or lvalue-or-rvalue expression node. ExprType and
// SetExprType are promoted from the embedded typed header on every kind.
type Expr interface {
	Node
	ExprType() types.Type
	SetExprType(types.Type)
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is a type-rvalue node: an expression whose value is a type.
// The analyzer records the resolved type (wrapped in types.TypeOfType, the
// type OF the type expression) through the same promoted accessors.
type TypeExpr interface {
	Node
	ExprType() types.Type
	SetExprType(types.Type)
	typeExprNode()
}

// IsLvalue reports whether e has lvalue shape: identifier, a dereference
// (`*` unary), array subscript, or member access. Only these may be
// assigned to or have their address taken.
func IsLvalue(e Expr) bool {
	switch v := e.(type) {
	case *Identifier, *Subscript, *MemberAccess:
		return true
	case *Unary:
		return v.Op == lexer.STAR
	default:
		return false
	}
}

// typed is embedded by every expression and type-rvalue kind so the
// semantic analyzer stores inferred types the same way everywhere, without
// a dozen near-identical getter/setter pairs repeated per struct.
type typed struct{ Type types.Type }

// ExprType returns the type the analyzer inferred for this node, or nil
// before analysis.
func (t *typed) ExprType() types.Type { return t.Type }

// SetExprType records the analyzer's inferred type on the node.
func (t *typed) SetExprType(ty types.Type) { t.Type = ty }
