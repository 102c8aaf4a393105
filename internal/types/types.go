// Package types represents every type Octo can express and the structural
// equality/compatibility predicates the semantic analyzer and emitter
// need: small structs behind one interface, with String() rendering the
// surface syntax for diagnostics.
package types

import (
	"fmt"
	"strings"
)

// Kind is the closed tag of the type-value sum.
type Kind int

const (
	Void Kind = iota
	Bool
	Char
	Integer
	Float
	NumericLiteral
	Pointer
	Reference
	Array
	Function
	Compound
	Named
	TypeOf
	ToInfer
)

// Type is implemented by every concrete type value. Structural equality and
// formatting are the only operations every kind must support; compatibility
// is asymmetric (assignability depends on which side is the target) and
// lives in the package-level Assignable function instead.
type Type interface {
	Kind() Kind
	String() string
	Equal(other Type) bool
}

// NumericOrigin tags a NumericLiteralType with the literal syntax it came
// from, so coercion knows which concrete types are reachable: an
// integer-origin literal fits any numeric type, a float-origin literal
// only floats.
type NumericOrigin int

const (
	IntegerOrigin NumericOrigin = iota
	FloatOrigin
)

// ---- nullary kinds ----

type VoidType struct{}

func (VoidType) Kind() Kind          { return Void }
func (VoidType) String() string      { return "void" }
func (VoidType) Equal(o Type) bool   { _, ok := o.(VoidType); return ok }

type BoolType struct{}

func (BoolType) Kind() Kind        { return Bool }
func (BoolType) String() string    { return "bool" }
func (BoolType) Equal(o Type) bool { _, ok := o.(BoolType); return ok }

type CharType struct{}

func (CharType) Kind() Kind        { return Char }
func (CharType) String() string    { return "char" }
func (CharType) Equal(o Type) bool { _, ok := o.(CharType); return ok }

// ---- sized numerics ----

// IntegerType is a concrete sized/signed integer: i8 i16 i32 i64 u8 u16 u32 u64.
type IntegerType struct {
	Bits   int
	Signed bool
}

func (t *IntegerType) Kind() Kind { return Integer }

func (t *IntegerType) String() string {
	if t.Signed {
		return fmt.Sprintf("i%d", t.Bits)
	}
	return fmt.Sprintf("u%d", t.Bits)
}

func (t *IntegerType) Equal(o Type) bool {
	other, ok := o.(*IntegerType)
	return ok && other.Bits == t.Bits && other.Signed == t.Signed
}

// FloatType is a concrete f32/f64.
type FloatType struct{ Bits int }

func (t *FloatType) Kind() Kind     { return Float }
func (t *FloatType) String() string { return fmt.Sprintf("f%d", t.Bits) }

func (t *FloatType) Equal(o Type) bool {
	other, ok := o.(*FloatType)
	return ok && other.Bits == t.Bits
}

// NumericLiteralType is the untyped type of an integer or float literal
// before it is coerced onto a concrete numeric type on use.
type NumericLiteralType struct{ Origin NumericOrigin }

func (t *NumericLiteralType) Kind() Kind { return NumericLiteral }

func (t *NumericLiteralType) String() string {
	if t.Origin == FloatOrigin {
		return "<float literal>"
	}
	return "<integer literal>"
}

func (t *NumericLiteralType) Equal(o Type) bool {
	other, ok := o.(*NumericLiteralType)
	return ok && other.Origin == t.Origin
}

// ---- indirection ----

// PointerType is `&T`, produced by the address-of operator and the
// pointer type-rvalue. Never interchangeable with ReferenceType.
type PointerType struct{ Elem Type }

func (t *PointerType) Kind() Kind     { return Pointer }
func (t *PointerType) String() string { return "&" + t.Elem.String() }

func (t *PointerType) Equal(o Type) bool {
	other, ok := o.(*PointerType)
	return ok && other.Elem.Equal(t.Elem)
}

// ReferenceType is a reference to T. The surface grammar has no
// reference-type production (`&T` is the pointer type-rvalue), so the
// parser never produces one; the kind exists so the model can express
// both indirections and keep them distinct. See DESIGN.md.
type ReferenceType struct{ Elem Type }

func (t *ReferenceType) Kind() Kind     { return Reference }
func (t *ReferenceType) String() string { return "ref " + t.Elem.String() }

func (t *ReferenceType) Equal(o Type) bool {
	other, ok := o.(*ReferenceType)
	return ok && other.Elem.Equal(t.Elem)
}

// ArrayType is `[N]T`; Len == -1 means "to be inferred".
type ArrayType struct {
	Elem Type
	Len  int
}

func (t *ArrayType) Kind() Kind { return Array }

func (t *ArrayType) String() string {
	if t.Len < 0 {
		return "[]" + t.Elem.String()
	}
	return fmt.Sprintf("[%d]%s", t.Len, t.Elem.String())
}

func (t *ArrayType) Equal(o Type) bool {
	other, ok := o.(*ArrayType)
	return ok && other.Len == t.Len && other.Elem.Equal(t.Elem)
}

// FunctionType is a function's signature: ordered parameter types, a return
// type, and a variadic flag (trailing `..` in the declaration).
type FunctionType struct {
	Params   []Type
	Return   Type
	Variadic bool
}

func (t *FunctionType) Kind() Kind { return Function }

func (t *FunctionType) String() string {
	var sb strings.Builder
	sb.WriteString("func(")
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	if t.Variadic {
		if len(t.Params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("..")
	}
	sb.WriteString(") -> ")
	sb.WriteString(t.Return.String())
	return sb.String()
}

func (t *FunctionType) Equal(o Type) bool {
	other, ok := o.(*FunctionType)
	if !ok || other.Variadic != t.Variadic || len(other.Params) != len(t.Params) || !other.Return.Equal(t.Return) {
		return false
	}
	for i := range t.Params {
		if !other.Params[i].Equal(t.Params[i]) {
			return false
		}
	}
	return true
}

// Member is one named field of a CompoundType, stored by value rather
// than by reference to a symbol table entry, which would otherwise close
// a cycle: compound -> member symbol table -> symbol type -> compound.
type Member struct {
	Name string
	Type Type
}

// CompoundType is a struct or union: an ordered, name-unique list of members.
type CompoundType struct {
	IsStruct bool
	Members  []Member
}

func (t *CompoundType) Kind() Kind { return Compound }

func (t *CompoundType) String() string {
	kw := "union"
	if t.IsStruct {
		kw = "struct"
	}
	var sb strings.Builder
	sb.WriteString(kw)
	sb.WriteString(" { ")
	for i, m := range t.Members {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(m.Name)
		sb.WriteString(": ")
		sb.WriteString(m.Type.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// Equal on an anonymous compound is structural; Named is what the analyzer
// actually compares for declared types.
func (t *CompoundType) Equal(o Type) bool {
	other, ok := o.(*CompoundType)
	if !ok || other.IsStruct != t.IsStruct || len(other.Members) != len(t.Members) {
		return false
	}
	for i := range t.Members {
		if other.Members[i].Name != t.Members[i].Name || !other.Members[i].Type.Equal(t.Members[i].Type) {
			return false
		}
	}
	return true
}

// Member looks up a member by name, returning (Member{}, false) if absent.
func (t *CompoundType) Member(name string) (Member, bool) {
	for _, m := range t.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// NamedType is a user-introduced alias: the analyzer interns one
// canonical *NamedType per declared type name so member reasoning is
// shared. Equality compares by name identity, not by structural
// definition.
type NamedType struct {
	Name string
	Def  Type
}

func (t *NamedType) Kind() Kind     { return Named }
func (t *NamedType) String() string { return t.Name }

func (t *NamedType) Equal(o Type) bool {
	other, ok := o.(*NamedType)
	return ok && other.Name == t.Name
}

// TypeOfType is the type OF a type-rvalue expression: the analyzer records
// TypeOfType{Of: t} on every type-rvalue node (annotations, type
// declaration definitions) it resolves to t.
type TypeOfType struct{ Of Type }

func (t *TypeOfType) Kind() Kind     { return TypeOf }
func (t *TypeOfType) String() string { return "type(" + t.Of.String() + ")" }

func (t *TypeOfType) Equal(o Type) bool {
	other, ok := o.(*TypeOfType)
	return ok && other.Of.Equal(t.Of)
}

// ToInferType is a placeholder kind for a type not yet inferred. The
// analyzer does not install it: a declaration's Type stays nil until
// analysis fills it in.
type ToInferType struct{}

func (ToInferType) Kind() Kind     { return ToInfer }
func (ToInferType) String() string { return "<to infer>" }
func (ToInferType) Equal(o Type) bool {
	_, ok := o.(ToInferType)
	return ok
}

// Resolved strips NamedType wrappers to reach the underlying definition,
// used by member access and pointer/reference decay.
func Resolved(t Type) Type {
	for {
		named, ok := t.(*NamedType)
		if !ok {
			return t
		}
		t = named.Def
	}
}

// IsNumeric reports whether t is an Integer, Float, or NumericLiteral.
func IsNumeric(t Type) bool {
	switch t.Kind() {
	case Integer, Float, NumericLiteral:
		return true
	}
	return false
}

// IsIntegerish reports whether t is an Integer or an integer-origin literal.
func IsIntegerish(t Type) bool {
	if t.Kind() == Integer {
		return true
	}
	lit, ok := t.(*NumericLiteralType)
	return ok && lit.Origin == IntegerOrigin
}
