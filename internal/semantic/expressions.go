package semantic

import (
	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/errors"
	"github.com/octo-lang/octoc/internal/lexer"
	"github.com/octo-lang/octoc/internal/types"
)

// analyzeExpr types an expression bottom-up with no outside expectation.
// It returns nil after reporting when the expression cannot be typed; the
// inferred type is also recorded on the node. Every expression kind has a
// case here.
func (a *Analyzer) analyzeExpr(expr ast.Expr) types.Type {
	var t types.Type
	switch e := expr.(type) {
	case *ast.IntegerLit:
		t = &types.NumericLiteralType{Origin: types.IntegerOrigin}
	case *ast.FloatLit:
		t = &types.NumericLiteralType{Origin: types.FloatOrigin}
	case *ast.StringLit:
		t = &types.PointerType{Elem: types.CharType{}}
	case *ast.CharLit:
		t = types.CharType{}
	case *ast.BoolLit:
		t = types.BoolType{}
	case *ast.Identifier:
		t = a.analyzeIdentifier(e)
	case *ast.Binary:
		t = a.analyzeBinary(e)
	case *ast.Unary:
		t = a.analyzeUnary(e)
	case *ast.Call:
		t = a.analyzeCall(e)
	case *ast.Subscript:
		t = a.analyzeSubscript(e)
	case *ast.MemberAccess:
		t = a.analyzeMemberAccess(e)
	case *ast.ArrayLit:
		t = a.analyzeArrayLit(e)
	case *ast.CompoundLit:
		t = a.analyzeCompoundLit(e)
	default:
		panic("semantic: unhandled expression kind")
	}
	if t != nil {
		expr.SetExprType(t)
	}
	return t
}

func (a *Analyzer) analyzeIdentifier(ident *ast.Identifier) types.Type {
	sym, ok := a.table.Lookup(ident.Name)
	if !ok {
		a.fail(&errors.Error{
			Kind: errors.UndeclaredSymbol,
			Pos:  ident.Pos(),
			Name: ident.Name,
		})
		return nil
	}
	if sym.IsType {
		a.fail(&errors.Error{
			Kind: errors.CannotUseTypeAsValue,
			Pos:  ident.Pos(),
			Name: ident.Name,
		})
		return nil
	}
	return sym.Type
}

func (a *Analyzer) analyzeBinary(bin *ast.Binary) types.Type {
	left := a.analyzeExpr(bin.Left)
	right := a.analyzeExpr(bin.Right)
	if left == nil || right == nil {
		return nil
	}

	invalid := func() types.Type {
		a.fail(&errors.Error{
			Kind:     errors.InvalidBinaryOperation,
			Pos:      bin.Pos(),
			Expected: left,
			Found:    right,
		})
		return nil
	}

	switch bin.Op {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH:
		common, ok := types.CommonNumeric(left, right)
		if !ok {
			return invalid()
		}
		return common
	case lexer.PERCENT:
		if !types.IsIntegerish(left) || !types.IsIntegerish(right) {
			return invalid()
		}
		common, ok := types.CommonNumeric(left, right)
		if !ok {
			return invalid()
		}
		return common
	case lexer.LESS, lexer.GREATER, lexer.LTEQ, lexer.GTEQ, lexer.EQEQ, lexer.NOTEQ:
		if types.IsNumeric(left) && types.IsNumeric(right) {
			if _, ok := types.CommonNumeric(left, right); !ok {
				return invalid()
			}
			return types.BoolType{}
		}
		if left.Equal(right) {
			return types.BoolType{}
		}
		return invalid()
	case lexer.AMPAMP, lexer.PIPEPIPE:
		if types.Resolved(left).Kind() != types.Bool || types.Resolved(right).Kind() != types.Bool {
			return invalid()
		}
		return types.BoolType{}
	default:
		panic("semantic: unhandled binary operator")
	}
}

func (a *Analyzer) analyzeUnary(un *ast.Unary) types.Type {
	operand := a.analyzeExpr(un.Operand)
	if operand == nil {
		return nil
	}

	invalid := func() types.Type {
		a.fail(&errors.Error{
			Kind:     errors.InvalidUnaryOperation,
			Pos:      un.Pos(),
			Operator: un.Tok.Literal,
			Found:    operand,
		})
		return nil
	}

	switch un.Op {
	case lexer.MINUS:
		if !types.IsNumeric(operand) {
			return invalid()
		}
		return operand
	case lexer.BANG:
		if types.Resolved(operand).Kind() != types.Bool {
			return invalid()
		}
		return types.BoolType{}
	case lexer.STAR:
		elem, ok := types.Dereferenced(operand)
		if !ok {
			return invalid()
		}
		return elem
	case lexer.AMP:
		if !ast.IsLvalue(un.Operand) {
			a.fail(&errors.Error{
				Kind: errors.InvalidAddressOf,
				Pos:  un.Pos(),
			})
			return nil
		}
		return &types.PointerType{Elem: operand}
	default:
		panic("semantic: unhandled unary operator")
	}
}

func (a *Analyzer) analyzeCall(call *ast.Call) types.Type {
	sym, ok := a.table.Lookup(call.Callee)
	if !ok {
		a.fail(&errors.Error{
			Kind: errors.UndeclaredSymbol,
			Pos:  call.Pos(),
			Name: call.Callee,
		})
		return nil
	}
	if sym.IsType {
		a.fail(&errors.Error{
			Kind: errors.CannotUseTypeAsValue,
			Pos:  call.Pos(),
			Name: call.Callee,
		})
		return nil
	}
	sig, ok := types.Resolved(sym.Type).(*types.FunctionType)
	if !ok {
		a.fail(&errors.Error{
			Kind:   errors.TypeMismatch,
			Pos:    call.Pos(),
			Detail: "'" + call.Callee + "' is not a function",
		})
		return nil
	}

	want := len(sig.Params)
	got := len(call.Args)
	if got < want || (got > want && !sig.Variadic) {
		a.fail(&errors.Error{
			Kind:          errors.InvalidArgumentCount,
			Pos:           call.Pos(),
			ExpectedCount: want,
			FoundCount:    got,
		})
		return sig.Return
	}
	for i, arg := range call.Args {
		if i < want {
			a.checkExprAgainst(sig.Params[i], arg)
			continue
		}
		// Extra variadic arguments are unconstrained; they still must type.
		a.analyzeExpr(arg)
	}
	return sig.Return
}

func (a *Analyzer) analyzeSubscript(sub *ast.Subscript) types.Type {
	base := a.analyzeExpr(sub.Array)
	index := a.analyzeExpr(sub.Index)
	if base == nil {
		return nil
	}
	arr, ok := types.Resolved(base).(*types.ArrayType)
	if !ok {
		a.fail(&errors.Error{
			Kind:  errors.NotAnArray,
			Pos:   sub.Array.Pos(),
			Found: base,
		})
		return nil
	}
	if index != nil && !types.IsIntegerish(index) {
		a.fail(&errors.Error{
			Kind:   errors.InvalidArraySubscript,
			Pos:    sub.Index.Pos(),
			Detail: "array subscript must be an integer, found " + index.String(),
		})
	}
	return arr.Elem
}

// analyzeMemberAccess types `target.name`, dereferencing one level of
// pointer or reference automatically.
func (a *Analyzer) analyzeMemberAccess(access *ast.MemberAccess) types.Type {
	base := a.analyzeExpr(access.Target)
	if base == nil {
		return nil
	}
	through := base
	if elem, ok := types.Dereferenced(base); ok {
		through = elem
	}
	compound, ok := types.Resolved(through).(*types.CompoundType)
	if !ok {
		a.fail(&errors.Error{
			Kind:  errors.NotCompound,
			Pos:   access.Target.Pos(),
			Found: base,
		})
		return nil
	}
	member, ok := compound.Member(access.Member)
	if !ok {
		a.fail(&errors.Error{
			Kind:     errors.MissingMember,
			Pos:      access.Pos(),
			Name:     access.Member,
			TypeName: through.String(),
		})
		return nil
	}
	return member.Type
}

// analyzeArrayLit types a literal with no expected type: the elements must
// unify to one element type and the length is the element count.
func (a *Analyzer) analyzeArrayLit(lit *ast.ArrayLit) types.Type {
	if len(lit.Elems) == 0 {
		a.fail(&errors.Error{
			Kind: errors.CannotInferArrayLength,
			Pos:  lit.Pos(),
		})
		return nil
	}

	var elemType types.Type
	for _, elem := range lit.Elems {
		t := a.analyzeExpr(elem)
		if t == nil {
			return nil
		}
		switch {
		case elemType == nil:
			elemType = t
		case types.Assignable(elemType, t):
			// element fits the running type
		case types.Assignable(t, elemType):
			elemType = t
		default:
			a.fail(&errors.Error{
				Kind:     errors.TypeMismatch,
				Pos:      elem.Pos(),
				Expected: elemType,
				Found:    t,
			})
			return nil
		}
	}
	return &types.ArrayType{Elem: elemType, Len: len(lit.Elems)}
}

// analyzeArrayLitAgainst types a literal against an expected array type,
// fixing an inferred length and checking a declared one.
func (a *Analyzer) analyzeArrayLitAgainst(lit *ast.ArrayLit, want *types.ArrayType) types.Type {
	for _, elem := range lit.Elems {
		a.checkExprAgainst(want.Elem, elem)
	}
	length, ok := types.UnifyArrayLength(want.Len, len(lit.Elems))
	if !ok {
		if want.Len < 0 {
			a.fail(&errors.Error{
				Kind: errors.CannotInferArrayLength,
				Pos:  lit.Pos(),
			})
		} else {
			a.fail(&errors.Error{
				Kind:          errors.ArrayLengthMismatch,
				Pos:           lit.Pos(),
				ExpectedCount: want.Len,
				FoundCount:    len(lit.Elems),
			})
		}
		return nil
	}
	result := &types.ArrayType{Elem: want.Elem, Len: length}
	lit.SetExprType(result)
	return result
}

// analyzeCompoundLit types `TypeName{ .field = value, ... }`. The head
// must name a declared compound type; fields are matched by name, may not
// repeat, and a union takes exactly one.
func (a *Analyzer) analyzeCompoundLit(lit *ast.CompoundLit) types.Type {
	sym, ok := a.table.Lookup(lit.TypeName)
	if !ok {
		a.fail(&errors.Error{
			Kind: errors.UndeclaredSymbol,
			Pos:  lit.Pos(),
			Name: lit.TypeName,
		})
		return nil
	}
	if !sym.IsType {
		a.fail(&errors.Error{
			Kind: errors.NotAType,
			Pos:  lit.Pos(),
			Name: lit.TypeName,
		})
		return nil
	}
	compound, ok := types.Resolved(sym.Type).(*types.CompoundType)
	if !ok {
		a.fail(&errors.Error{
			Kind:  errors.NotCompound,
			Pos:   lit.Pos(),
			Found: sym.Type,
		})
		return nil
	}

	if !compound.IsStruct && len(lit.Fields) != 1 {
		a.fail(&errors.Error{
			Kind:   errors.InvalidCompoundLiteral,
			Pos:    lit.Pos(),
			Detail: "union literal must initialize exactly one member",
		})
		return nil
	}

	seen := make(map[string]bool, len(lit.Fields))
	for _, field := range lit.Fields {
		if seen[field.Name] {
			a.fail(&errors.Error{
				Kind:   errors.InvalidCompoundLiteral,
				Pos:    field.Tok.Pos,
				Detail: "duplicate initializer for member '" + field.Name + "'",
			})
			continue
		}
		seen[field.Name] = true

		member, ok := compound.Member(field.Name)
		if !ok {
			a.fail(&errors.Error{
				Kind:     errors.MissingMember,
				Pos:      field.Tok.Pos,
				Name:     field.Name,
				TypeName: lit.TypeName,
			})
			continue
		}
		a.checkExprAgainst(member.Type, field.Value)
	}
	return sym.Type
}

// checkExprAgainst analyzes expr knowing the type its context expects,
// which is what lets array literals infer lengths and numeric literals
// coerce. It reports a mismatch itself and still returns the expected
// type, so one bad initializer does not cascade; nil is returned only
// when the expression could not be typed at all.
func (a *Analyzer) checkExprAgainst(want types.Type, expr ast.Expr) types.Type {
	if lit, ok := expr.(*ast.ArrayLit); ok {
		if arr, isArr := types.Resolved(want).(*types.ArrayType); isArr {
			got := a.analyzeArrayLitAgainst(lit, arr)
			if got == nil {
				return nil
			}
			return got
		}
	}

	got := a.analyzeExpr(expr)
	if got == nil {
		return nil
	}
	if !types.Assignable(want, got) {
		kind := errors.TypeMismatch
		if types.IsNumeric(want) && types.IsNumeric(got) {
			kind = errors.InvalidImplicitCast
		}
		a.fail(&errors.Error{
			Kind:     kind,
			Pos:      expr.Pos(),
			Expected: want,
			Found:    got,
		})
	}
	return want
}

// concretize collapses numeric-literal types to their defaults, including
// inside array element types, for declarations with no annotation.
func concretize(t types.Type) types.Type {
	switch v := t.(type) {
	case *types.NumericLiteralType:
		return types.DefaultOf(v)
	case *types.ArrayType:
		return &types.ArrayType{Elem: concretize(v.Elem), Len: v.Len}
	default:
		return t
	}
}
