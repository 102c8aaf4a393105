package semantic

import (
	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/errors"
	"github.com/octo-lang/octoc/internal/types"
)

// resolveTypeExpr turns a type-rvalue into a types.Type, reporting and
// returning nil when it does not denote a type. The resolved type is also
// recorded on the node for the emitter.
func (a *Analyzer) resolveTypeExpr(expr ast.TypeExpr) types.Type {
	var t types.Type
	switch e := expr.(type) {
	case *ast.TypeIdentifier:
		t = a.resolveTypeIdentifier(e)
	case *ast.PointerTypeExpr:
		elem := a.resolveTypeExpr(e.Elem)
		if elem == nil {
			return nil
		}
		t = &types.PointerType{Elem: elem}
	case *ast.ArrayTypeExpr:
		t = a.resolveArrayTypeExpr(e)
	case *ast.CompoundDef:
		t = a.resolveCompoundDef(e)
	default:
		panic("semantic: unhandled type expression kind")
	}
	if t != nil {
		expr.SetExprType(&types.TypeOfType{Of: t})
	}
	return t
}

// resolveTypeIdentifier resolves a bare name in type position: built-ins
// first, then `type` declarations in scope.
func (a *Analyzer) resolveTypeIdentifier(ident *ast.TypeIdentifier) types.Type {
	if t, ok := types.Builtin(ident.Name); ok {
		return t
	}
	sym, ok := a.table.Lookup(ident.Name)
	if !ok {
		a.fail(&errors.Error{
			Kind: errors.UndeclaredSymbol,
			Pos:  ident.Pos(),
			Name: ident.Name,
		})
		return nil
	}
	if !sym.IsType {
		a.fail(&errors.Error{
			Kind: errors.NotAType,
			Pos:  ident.Pos(),
			Name: ident.Name,
		})
		return nil
	}
	return sym.Type
}

func (a *Analyzer) resolveArrayTypeExpr(arr *ast.ArrayTypeExpr) types.Type {
	if arr.Len == 0 {
		a.fail(&errors.Error{
			Kind: errors.ZeroLengthArray,
			Pos:  arr.Pos(),
		})
		return nil
	}
	elem := a.resolveTypeExpr(arr.Elem)
	if elem == nil {
		return nil
	}
	if types.Resolved(elem).Kind() == types.Void {
		a.fail(&errors.Error{
			Kind: errors.VoidVariable,
			Pos:  arr.Pos(),
			Name: "array element",
		})
		return nil
	}
	return &types.ArrayType{Elem: elem, Len: arr.Len}
}

// resolveCompoundDef builds a struct/union type. Member names must be
// unique within the compound; members are stored by value in declaration
// order.
func (a *Analyzer) resolveCompoundDef(def *ast.CompoundDef) types.Type {
	compound := &types.CompoundType{IsStruct: def.IsStruct}
	seen := make(map[string]ast.CompoundMember, len(def.Members))
	for _, member := range def.Members {
		if first, dup := seen[member.Name]; dup {
			origin := first.Tok.Pos
			a.fail(&errors.Error{
				Kind:        errors.SymbolRedeclaration,
				Pos:         member.Tok.Pos,
				Name:        member.Name,
				OriginalPos: &origin,
			})
			continue
		}
		seen[member.Name] = member

		memberType := a.resolveTypeExpr(member.Annotation)
		if memberType == nil {
			continue
		}
		if types.Resolved(memberType).Kind() == types.Void {
			a.fail(&errors.Error{
				Kind: errors.VoidVariable,
				Pos:  member.Tok.Pos,
				Name: member.Name,
			})
			continue
		}
		compound.Members = append(compound.Members, types.Member{
			Name: member.Name,
			Type: memberType,
		})
	}
	return compound
}
