// Package errors is the compiler's diagnostic sink. It defines the closed
// error taxonomy every stage (lexer, parser, semantic analyzer) reports
// through, and renders diagnostics in the "path:line:col: error: message"
// plus caret format.
package errors

import (
	"fmt"

	"github.com/octo-lang/octoc/internal/source"
	"github.com/octo-lang/octoc/internal/types"
)

// Kind is the closed taxonomy of diagnosable errors. No stage may report
// an error outside this set.
type Kind int

const (
	InvalidSymbol Kind = iota
	MultiCharacterCharacter
	MismatchedParens
	UnclosedParens
	UnexpectedSymbol

	SymbolRedeclaration

	InvalidBinaryOperation
	InvalidUnaryOperation
	TypeMismatch
	InvalidImplicitCast
	UndeclaredSymbol
	NotAType
	CannotUseTypeAsValue
	NotCompound
	MissingMember
	InvalidCompoundLiteral
	NotAnIterator
	NotAnArray
	InvalidArraySubscript
	ZeroLengthArray
	ArrayLengthMismatch
	CannotInferArrayLength
	InvalidLvalue
	InvalidAddressOf
	MissingFunctionBody
	ExternWithBody
	WhileWithElse
	VoidVariable
	InvalidArgumentCount
)

// Error is a single diagnosable error: a taxonomy Kind, the offending
// position and lexeme, and whatever kind-specific payload the message
// needs. Every field beyond Kind/Pos/Lexeme is optional and only some are
// populated depending on Kind.
type Error struct {
	Kind   Kind
	Pos    source.Position
	Lexeme string

	// Redeclaration note.
	OriginalPos *source.Position

	// Type-related payloads.
	Expected types.Type
	Found    types.Type
	Operator string

	// Naming payloads.
	Name     string
	TypeName string

	// Argument-count payload.
	ExpectedCount int
	FoundCount    int

	// Free-form detail, used when no structured field fits (e.g. a custom
	// unexpected-symbol message listing the accepted kinds).
	Detail string
}

// Error implements the error interface so *Error can be returned/wrapped
// like any other Go error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

// Message renders the human-readable text for the error, independent of
// source context (no caret, no line). Format renders the full block.
func (e *Error) Message() string {
	switch e.Kind {
	case InvalidSymbol:
		return fmt.Sprintf("invalid symbol %q", e.Lexeme)
	case MultiCharacterCharacter:
		return "multi-character character literal"
	case MismatchedParens:
		return "mismatched parentheses"
	case UnclosedParens:
		return "unclosed parentheses"
	case UnexpectedSymbol:
		if e.Detail != "" {
			return fmt.Sprintf("unexpected symbol %q, expected %s", e.Lexeme, e.Detail)
		}
		return fmt.Sprintf("unexpected symbol %q", e.Lexeme)
	case SymbolRedeclaration:
		return fmt.Sprintf("'%s' is already declared in this scope", e.Name)
	case InvalidBinaryOperation:
		return fmt.Sprintf("invalid operation for types %s and %s", typeStr(e.Expected), typeStr(e.Found))
	case InvalidUnaryOperation:
		return fmt.Sprintf("invalid operation '%s' for type %s", e.Operator, typeStr(e.Found))
	case TypeMismatch:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("type mismatch: expected %s, found %s", typeStr(e.Expected), typeStr(e.Found))
	case InvalidImplicitCast:
		return fmt.Sprintf("cannot implicitly convert %s to %s", typeStr(e.Found), typeStr(e.Expected))
	case UndeclaredSymbol:
		return fmt.Sprintf("undeclared symbol '%s'", e.Name)
	case NotAType:
		return fmt.Sprintf("'%s' is not a type", e.Name)
	case CannotUseTypeAsValue:
		return fmt.Sprintf("cannot use type '%s' as a value", e.Name)
	case NotCompound:
		return fmt.Sprintf("type %s is not a struct or union", typeStr(e.Found))
	case MissingMember:
		return fmt.Sprintf("no member '%s' in type '%s'", e.Name, e.TypeName)
	case InvalidCompoundLiteral:
		return e.detailOr("invalid compound literal")
	case NotAnIterator:
		return e.detailOr("expression is not iterable")
	case NotAnArray:
		return fmt.Sprintf("type %s is not an array", typeStr(e.Found))
	case InvalidArraySubscript:
		return e.detailOr("array subscript must be an integer")
	case ZeroLengthArray:
		return "array length must be greater than zero"
	case ArrayLengthMismatch:
		return fmt.Sprintf("array length mismatch: expected %d, found %d", e.ExpectedCount, e.FoundCount)
	case CannotInferArrayLength:
		return "cannot infer array length from context"
	case InvalidLvalue:
		return "expression is not assignable"
	case InvalidAddressOf:
		return "cannot get address of expression"
	case MissingFunctionBody:
		return fmt.Sprintf("function '%s' must have a body", e.Name)
	case ExternWithBody:
		return fmt.Sprintf("extern function '%s' must not have a body", e.Name)
	case WhileWithElse:
		return "while-loop must not have an else branch"
	case VoidVariable:
		return fmt.Sprintf("variable '%s' cannot have type void", e.Name)
	case InvalidArgumentCount:
		return fmt.Sprintf("expected %d argument(s), found %d", e.ExpectedCount, e.FoundCount)
	default:
		return e.detailOr("compile error")
	}
}

func (e *Error) detailOr(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}

func typeStr(t types.Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}
