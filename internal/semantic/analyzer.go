// Package semantic resolves identifiers, infers and checks types, and
// validates lvalues over the parsed tree. It owns the scoped symbol table
// for the compilation and records every inferred type back onto the tree,
// so the emitter never re-derives typing.
//
// Diagnostics are reported per node and traversal continues, so one bad
// declaration does not hide problems later in the program; the failed flag
// still stops the pipeline before emission.
package semantic

import (
	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/errors"
	"github.com/octo-lang/octoc/internal/symtable"
	"github.com/octo-lang/octoc/internal/types"
)

// Context is what analysis hands to the emitter: the populated symbol
// table. The tree itself carries the inferred types.
type Context struct {
	Table *symtable.Table
}

// Analyzer walks one program. The return-type stack tracks the enclosing
// function so `return` always knows what it must produce.
type Analyzer struct {
	table    *symtable.Table
	reporter *errors.Reporter

	returnTypes []types.Type
	failed      bool
}

// New creates an Analyzer reporting to rep.
func New(rep *errors.Reporter) *Analyzer {
	return &Analyzer{table: symtable.New(), reporter: rep}
}

// Analyze walks the whole program. The program compound is the global
// scope; no scope is pushed for it. ok is false when any diagnostic was
// reported; the emitter must then be skipped.
func Analyze(program *ast.Compound, rep *errors.Reporter) (*Context, bool) {
	a := New(rep)
	for _, stmt := range program.Stmts {
		a.analyzeStmt(stmt)
	}
	return &Context{Table: a.table}, !a.failed
}

func (a *Analyzer) fail(err *errors.Error) {
	a.failed = true
	a.reporter.Report(err)
}

func (a *Analyzer) analyzeStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(s)
	case *ast.FuncDecl:
		a.analyzeFuncDecl(s, false)
	case *ast.ExternDecl:
		a.analyzeFuncDecl(s.Func, true)
	case *ast.TypeDecl:
		a.analyzeTypeDecl(s)
	case *ast.Compound:
		a.table.PushScope()
		for _, inner := range s.Stmts {
			a.analyzeStmt(inner)
		}
		a.table.PopScope()
	case *ast.Return:
		a.analyzeReturn(s)
	case *ast.Assignment:
		a.analyzeAssignment(s)
	case *ast.Conditional:
		a.analyzeConditional(s)
	case *ast.ForLoop:
		a.analyzeForLoop(s)
	case *ast.CallStmt:
		a.analyzeExpr(s.Call)
	default:
		panic("semantic: unhandled statement kind")
	}
}

// analyzeVarDecl checks `let`. The symbol is declared only after the
// initializer is analyzed, so `let x = x;` resolves x in the outer scope.
func (a *Analyzer) analyzeVarDecl(decl *ast.VarDecl) {
	var declType types.Type
	if decl.Annotation != nil {
		declType = a.resolveTypeExpr(decl.Annotation)
	}

	if decl.Init != nil {
		if declType != nil {
			got := a.checkExprAgainst(declType, decl.Init)
			if got == nil {
				return
			}
			// Array-length inference may have sharpened the type.
			declType = got
		} else if decl.Annotation == nil {
			initType := a.analyzeExpr(decl.Init)
			if initType == nil {
				return
			}
			declType = concretize(initType)
		}
	}
	if declType == nil {
		return
	}

	if types.Resolved(declType).Kind() == types.Void {
		a.fail(&errors.Error{
			Kind: errors.VoidVariable,
			Pos:  decl.Pos(),
			Name: decl.Name,
		})
		return
	}
	if arr, ok := types.Resolved(declType).(*types.ArrayType); ok && arr.Len < 0 {
		a.fail(&errors.Error{
			Kind: errors.CannotInferArrayLength,
			Pos:  decl.Pos(),
		})
		return
	}

	decl.Type = declType
	a.declare(symtable.Symbol{
		Name: decl.Name,
		Pos:  decl.Pos(),
		Type: declType,
	})
}

// analyzeFuncDecl handles both `func` and `extern func`. The function
// symbol is declared before the body is analyzed so recursive calls
// resolve.
func (a *Analyzer) analyzeFuncDecl(fn *ast.FuncDecl, isExtern bool) {
	sig := &types.FunctionType{Variadic: fn.Variadic}
	for i := range fn.Params {
		param := &fn.Params[i]
		paramType := a.resolveTypeExpr(param.Annotation)
		if paramType == nil {
			return
		}
		if types.Resolved(paramType).Kind() == types.Void {
			a.fail(&errors.Error{
				Kind: errors.VoidVariable,
				Pos:  param.Tok.Pos,
				Name: param.Name,
			})
			return
		}
		param.Type = paramType
		sig.Params = append(sig.Params, paramType)
	}
	sig.Return = a.resolveTypeExpr(fn.ReturnType)
	if sig.Return == nil {
		return
	}
	fn.Type = sig

	a.declare(symtable.Symbol{Name: fn.Name, Pos: fn.Pos(), Type: sig})

	if isExtern {
		if fn.Body != nil {
			a.fail(&errors.Error{
				Kind: errors.ExternWithBody,
				Pos:  fn.Pos(),
				Name: fn.Name,
			})
		}
		return
	}
	if fn.Body == nil {
		a.fail(&errors.Error{
			Kind: errors.MissingFunctionBody,
			Pos:  fn.Pos(),
			Name: fn.Name,
		})
		return
	}

	a.table.PushScope()
	for _, param := range fn.Params {
		a.declare(symtable.Symbol{Name: param.Name, Pos: param.Tok.Pos, Type: param.Type})
	}
	a.returnTypes = append(a.returnTypes, sig.Return)
	for _, stmt := range fn.Body.Stmts {
		a.analyzeStmt(stmt)
	}
	a.returnTypes = a.returnTypes[:len(a.returnTypes)-1]
	a.table.PopScope()
}

func (a *Analyzer) analyzeReturn(ret *ast.Return) {
	if len(a.returnTypes) == 0 {
		a.fail(&errors.Error{
			Kind:   errors.TypeMismatch,
			Pos:    ret.Pos(),
			Detail: "return statement outside of a function",
		})
		return
	}
	want := a.returnTypes[len(a.returnTypes)-1]
	isVoid := types.Resolved(want).Kind() == types.Void

	if ret.Value == nil {
		if !isVoid {
			a.fail(&errors.Error{
				Kind:     errors.TypeMismatch,
				Pos:      ret.Pos(),
				Expected: want,
				Found:    types.VoidType{},
			})
		}
		return
	}
	if isVoid {
		got := a.analyzeExpr(ret.Value)
		a.fail(&errors.Error{
			Kind:     errors.TypeMismatch,
			Pos:      ret.Value.Pos(),
			Expected: want,
			Found:    got,
		})
		return
	}
	a.checkExprAgainst(want, ret.Value)
}

func (a *Analyzer) analyzeAssignment(assign *ast.Assignment) {
	if !ast.IsLvalue(assign.Target) {
		a.fail(&errors.Error{
			Kind: errors.InvalidLvalue,
			Pos:  assign.Target.Pos(),
		})
		return
	}
	targetType := a.analyzeExpr(assign.Target)
	if targetType == nil {
		return
	}
	a.checkExprAgainst(targetType, assign.Value)
}

func (a *Analyzer) analyzeConditional(cond *ast.Conditional) {
	condType := a.analyzeExpr(cond.Cond)
	if condType != nil && types.Resolved(condType).Kind() != types.Bool {
		a.fail(&errors.Error{
			Kind:     errors.TypeMismatch,
			Pos:      cond.Cond.Pos(),
			Expected: types.BoolType{},
			Found:    condType,
		})
	}
	if cond.IsWhile && cond.Else != nil {
		a.fail(&errors.Error{
			Kind: errors.WhileWithElse,
			Pos:  cond.Else.Pos(),
		})
	}
	a.analyzeStmt(cond.Then)
	if cond.Else != nil && !cond.IsWhile {
		a.analyzeStmt(cond.Else)
	}
}

// analyzeForLoop introduces the iterator in a fresh scope typed as the
// iterable's element type.
func (a *Analyzer) analyzeForLoop(loop *ast.ForLoop) {
	iterType := a.analyzeExpr(loop.Iterable)
	if iterType == nil {
		return
	}
	arr, ok := types.Resolved(iterType).(*types.ArrayType)
	if !ok {
		a.fail(&errors.Error{
			Kind:   errors.NotAnIterator,
			Pos:    loop.Iterable.Pos(),
			Detail: "type " + iterType.String() + " is not iterable",
		})
		return
	}
	loop.ElemType = arr.Elem

	a.table.PushScope()
	a.declare(symtable.Symbol{Name: loop.IterName, Pos: loop.Pos(), Type: arr.Elem})
	for _, stmt := range loop.Body.Stmts {
		a.analyzeStmt(stmt)
	}
	a.table.PopScope()
}

func (a *Analyzer) analyzeTypeDecl(decl *ast.TypeDecl) {
	def := a.resolveTypeExpr(decl.Def)
	if def == nil {
		return
	}
	named := &types.NamedType{Name: decl.Name, Def: def}
	decl.Type = named
	a.declare(symtable.Symbol{
		Name:   decl.Name,
		Pos:    decl.Pos(),
		Type:   named,
		IsType: true,
	})
}

// declare pushes a symbol, converting a same-scope conflict into a
// symbol-redeclaration diagnostic with a note at the first declaration.
func (a *Analyzer) declare(sym symtable.Symbol) {
	if conflict, ok := a.table.Declare(sym); !ok {
		origin := conflict.Pos
		a.fail(&errors.Error{
			Kind:        errors.SymbolRedeclaration,
			Pos:         sym.Pos,
			Name:        sym.Name,
			OriginalPos: &origin,
		})
	}
}
