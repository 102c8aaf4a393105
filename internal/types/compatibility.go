package types

// DefaultInteger is the concrete type an integer-ish numeric literal
// coerces to when nothing else constrains it (array element defaulting,
// bare `let x = 5;`).
func DefaultInteger() Type { return &IntegerType{Bits: 32, Signed: true} }

// DefaultFloat is the concrete type a float-ish numeric literal coerces
// to absent a tighter context: `let x = 3.14;` makes x an f64.
func DefaultFloat() Type { return &FloatType{Bits: 64} }

// DefaultOf collapses a NumericLiteralType to its default concrete type; any
// other type is returned unchanged.
func DefaultOf(t Type) Type {
	lit, ok := t.(*NumericLiteralType)
	if !ok {
		return t
	}
	if lit.Origin == FloatOrigin {
		return DefaultFloat()
	}
	return DefaultInteger()
}

// Assignable reports whether a value of type source may be used where
// target is expected: numeric literals coerce onto concrete numerics,
// array lengths unify with a to-infer side, named types match by name,
// and everything else must agree structurally. The void-variable
// restriction is a declaration-site check in internal/semantic, not here:
// this function only answers "do these two types agree".
func Assignable(target, source Type) bool {
	if target == nil || source == nil {
		return false
	}

	if lit, ok := source.(*NumericLiteralType); ok {
		switch tt := target.(type) {
		case *IntegerType:
			return lit.Origin == IntegerOrigin
		case *FloatType:
			return true
		case *NumericLiteralType:
			return tt.Origin == lit.Origin
		default:
			return false
		}
	}

	switch tgt := target.(type) {
	case *IntegerType:
		src, ok := source.(*IntegerType)
		return ok && src.Bits == tgt.Bits && src.Signed == tgt.Signed
	case *FloatType:
		src, ok := source.(*FloatType)
		return ok && src.Bits == tgt.Bits
	case *ArrayType:
		src, ok := source.(*ArrayType)
		if !ok || !tgt.Elem.Equal(src.Elem) {
			return false
		}
		if tgt.Len == -1 || src.Len == -1 {
			return true
		}
		return tgt.Len == src.Len
	case *PointerType:
		src, ok := source.(*PointerType)
		return ok && tgt.Elem.Equal(src.Elem)
	case *ReferenceType:
		src, ok := source.(*ReferenceType)
		return ok && tgt.Elem.Equal(src.Elem)
	case *NamedType:
		src, ok := source.(*NamedType)
		return ok && src.Name == tgt.Name
	default:
		return target.Equal(source)
	}
}

// UnifyArrayLength resolves an array literal's element count against a
// context length (-1 meaning "infer"). ok is false on a length mismatch;
// an empty literal (count == 0) against an inferring context (ctxLen ==
// -1) is also rejected, since nothing then determines the length.
func UnifyArrayLength(ctxLen, count int) (length int, ok bool) {
	if ctxLen == -1 {
		if count == 0 {
			return 0, false
		}
		return count, true
	}
	return ctxLen, ctxLen == count
}

// CommonNumeric finds the concrete numeric type two operand types must
// share for a binary arithmetic operator, coercing numeric-literal operands
// toward the other side's concrete type, or to their shared default when
// both sides are literals. Returns ok=false when no common type exists.
func CommonNumeric(a, b Type) (Type, bool) {
	aLit, aIsLit := a.(*NumericLiteralType)
	bLit, bIsLit := b.(*NumericLiteralType)

	switch {
	case aIsLit && bIsLit:
		if aLit.Origin == FloatOrigin || bLit.Origin == FloatOrigin {
			return DefaultFloat(), true
		}
		return DefaultInteger(), true
	case aIsLit && !bIsLit:
		if IsNumeric(b) && Assignable(b, a) {
			return b, true
		}
		return nil, false
	case bIsLit && !aIsLit:
		if IsNumeric(a) && Assignable(a, b) {
			return a, true
		}
		return nil, false
	default:
		if a.Equal(b) && IsNumeric(a) {
			return a, true
		}
		return nil, false
	}
}

// Dereferenced returns the pointee type if t is a pointer or reference,
// implementing the one automatic dereference member access performs and
// the explicit unary `*` operator.
func Dereferenced(t Type) (Type, bool) {
	switch v := Resolved(t).(type) {
	case *PointerType:
		return v.Elem, true
	case *ReferenceType:
		return v.Elem, true
	default:
		return nil, false
	}
}
