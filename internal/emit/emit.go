// Package emit lowers an analyzed tree to C source. The walk is
// mechanical: every language construct maps 1:1 onto a C construct, and
// every inferred type was already recorded on the tree by the analyzer, so
// nothing is re-derived here.
//
// The output always begins with a typedef preamble mapping the sized
// numeric names onto <stdint.h>, so the generated file compiles without a
// companion runtime header.
package emit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/types"
)

const preamble = `#include <stdint.h>
#include <stdbool.h>
#include <stddef.h>

typedef int8_t i8;
typedef int16_t i16;
typedef int32_t i32;
typedef int64_t i64;
typedef uint8_t u8;
typedef uint16_t u16;
typedef uint32_t u32;
typedef uint64_t u64;
typedef float f32;
typedef double f64;

`

// Emitter writes one translation unit. The first write error sticks and
// short-circuits the rest of the walk.
type Emitter struct {
	w      io.Writer
	indent int
	loops  int // counter for generated loop index names
	err    error
}

// Emit writes program as C to w. The tree must have passed semantic
// analysis; emitting an unanalyzed tree panics on the first missing type.
func Emit(program *ast.Compound, w io.Writer) error {
	e := &Emitter{w: w}
	e.printf(preamble)
	for _, stmt := range program.Stmts {
		e.stmt(stmt)
	}
	return e.err
}

func (e *Emitter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *Emitter) line(format string, args ...any) {
	e.printf("%s", strings.Repeat("\t", e.indent))
	e.printf(format, args...)
	e.printf("\n")
}

func (e *Emitter) stmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.TypeDecl:
		e.typeDecl(s)
	case *ast.VarDecl:
		e.varDecl(s)
	case *ast.FuncDecl:
		e.funcDecl(s, false)
	case *ast.ExternDecl:
		e.funcDecl(s.Func, true)
	case *ast.Compound:
		e.line("{")
		e.indent++
		for _, inner := range s.Stmts {
			e.stmt(inner)
		}
		e.indent--
		e.line("}")
	case *ast.Return:
		if s.Value == nil {
			e.line("return;")
		} else {
			e.line("return %s;", e.expr(s.Value))
		}
	case *ast.Assignment:
		e.line("%s = %s;", e.expr(s.Target), e.expr(s.Value))
	case *ast.CallStmt:
		e.line("%s;", e.expr(s.Call))
	case *ast.Conditional:
		e.conditional(s)
	case *ast.ForLoop:
		e.forLoop(s)
	default:
		panic("emit: unhandled statement kind")
	}
}

// typeDecl emits `typedef <def> Name;`. Compound definitions expand
// inline; alias declarations reduce to a plain typedef.
func (e *Emitter) typeDecl(decl *ast.TypeDecl) {
	named := decl.Type.(*types.NamedType)
	switch def := named.Def.(type) {
	case *types.CompoundType:
		kw := "union"
		if def.IsStruct {
			kw = "struct"
		}
		e.line("typedef %s {", kw)
		e.indent++
		for _, member := range def.Members {
			e.line("%s;", cDecl(member.Type, member.Name))
		}
		e.indent--
		e.line("} %s;", named.Name)
	default:
		e.line("typedef %s;", cDecl(named.Def, named.Name))
	}
	e.printf("\n")
}

func (e *Emitter) varDecl(decl *ast.VarDecl) {
	if decl.Init == nil {
		e.line("%s;", cDecl(decl.Type, decl.Name))
		return
	}
	e.line("%s = %s;", cDecl(decl.Type, decl.Name), e.initializer(decl.Init))
}

// initializer renders a declaration's right-hand side; array and compound
// literals become C brace initializers, everything else is an expression.
func (e *Emitter) initializer(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.ArrayLit:
		parts := make([]string, len(v.Elems))
		for i, elem := range v.Elems {
			parts[i] = e.initializer(elem)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.CompoundLit:
		parts := make([]string, len(v.Fields))
		for i, field := range v.Fields {
			parts[i] = "." + field.Name + " = " + e.initializer(field.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return e.expr(expr)
	}
}

func (e *Emitter) funcDecl(fn *ast.FuncDecl, isExtern bool) {
	sig := fn.Type.(*types.FunctionType)
	params := make([]string, 0, len(fn.Params)+1)
	for _, param := range fn.Params {
		params = append(params, cDecl(param.Type, param.Name))
	}
	if sig.Variadic {
		params = append(params, "...")
	}
	if len(params) == 0 {
		params = append(params, "void")
	}
	header := fmt.Sprintf("%s(%s)", cDecl(sig.Return, fn.Name), strings.Join(params, ", "))

	if isExtern {
		e.line("extern %s;", header)
		e.printf("\n")
		return
	}
	e.line("%s {", header)
	e.indent++
	for _, stmt := range fn.Body.Stmts {
		e.stmt(stmt)
	}
	e.indent--
	e.line("}")
	e.printf("\n")
}

func (e *Emitter) conditional(cond *ast.Conditional) {
	kw := "if"
	if cond.IsWhile {
		kw = "while"
	}
	e.line("%s (%s) {", kw, e.expr(cond.Cond))
	e.indent++
	for _, stmt := range cond.Then.Stmts {
		e.stmt(stmt)
	}
	e.indent--
	if cond.Else == nil || cond.IsWhile {
		e.line("}")
		return
	}
	e.elseTail(cond.Else)
}

func (e *Emitter) elseTail(alt ast.Stmt) {
	switch v := alt.(type) {
	case *ast.Conditional:
		e.printf("%s} else if (%s) {\n", strings.Repeat("\t", e.indent), e.expr(v.Cond))
		e.indent++
		for _, stmt := range v.Then.Stmts {
			e.stmt(stmt)
		}
		e.indent--
		if v.Else != nil {
			e.elseTail(v.Else)
			return
		}
		e.line("}")
	case *ast.Compound:
		e.line("} else {")
		e.indent++
		for _, stmt := range v.Stmts {
			e.stmt(stmt)
		}
		e.indent--
		e.line("}")
	}
}

// forLoop lowers `for x in xs` to an index loop over the array, with the
// iterator rebound each iteration.
func (e *Emitter) forLoop(loop *ast.ForLoop) {
	arr := types.Resolved(loop.Iterable.ExprType()).(*types.ArrayType)
	idx := fmt.Sprintf("__octo_i%d", e.loops)
	e.loops++
	e.line("for (size_t %s = 0; %s < %d; %s++) {", idx, idx, arr.Len, idx)
	e.indent++
	e.line("%s = %s[%s];", cDecl(loop.ElemType, loop.IterName), e.expr(loop.Iterable), idx)
	for _, stmt := range loop.Body.Stmts {
		e.stmt(stmt)
	}
	e.indent--
	e.line("}")
}

// expr renders an expression. Binary operands are parenthesized, so C's
// precedence can never disagree with the tree the parser built.
func (e *Emitter) expr(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.IntegerLit:
		return strconv.FormatUint(v.Value, 10)
	case *ast.FloatLit:
		s := strconv.FormatFloat(v.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case *ast.StringLit:
		return "\"" + v.Value + "\""
	case *ast.CharLit:
		return "'" + string(v.Value) + "'"
	case *ast.BoolLit:
		if v.Value {
			return "true"
		}
		return "false"
	case *ast.Identifier:
		return v.Name
	case *ast.Binary:
		return "(" + e.expr(v.Left) + " " + v.Tok.Literal + " " + e.expr(v.Right) + ")"
	case *ast.Unary:
		return v.Tok.Literal + "(" + e.expr(v.Operand) + ")"
	case *ast.Call:
		args := make([]string, len(v.Args))
		for i, arg := range v.Args {
			args[i] = e.expr(arg)
		}
		return v.Callee + "(" + strings.Join(args, ", ") + ")"
	case *ast.Subscript:
		return e.expr(v.Array) + "[" + e.expr(v.Index) + "]"
	case *ast.MemberAccess:
		if _, ok := types.Dereferenced(v.Target.ExprType()); ok {
			return e.expr(v.Target) + "->" + v.Member
		}
		return e.expr(v.Target) + "." + v.Member
	case *ast.ArrayLit, *ast.CompoundLit:
		// Outside a declaration these need a C compound-literal cast.
		return "(" + cDecl(exprType(expr), "") + ")" + e.initializer(expr)
	default:
		panic("emit: unhandled expression kind")
	}
}

func exprType(expr ast.Expr) types.Type {
	t := expr.ExprType()
	if t == nil {
		panic("emit: expression missing an inferred type")
	}
	return t
}

// cDecl renders a C declaration of name with the given type, handling the
// inside-out array declarator syntax. An empty name yields a bare type,
// usable in a cast.
func cDecl(t types.Type, name string) string {
	dims := ""
	for {
		arr, ok := t.(*types.ArrayType)
		if !ok {
			break
		}
		dims += "[" + strconv.Itoa(arr.Len) + "]"
		t = arr.Elem
	}
	base := cType(t)
	if name == "" {
		return base + dims
	}
	return base + " " + name + dims
}

// cType renders a non-array type. Arrays must go through cDecl, which owns
// the declarator placement.
func cType(t types.Type) string {
	switch v := t.(type) {
	case types.VoidType:
		return "void"
	case types.BoolType:
		return "bool"
	case types.CharType:
		return "char"
	case *types.IntegerType, *types.FloatType:
		return v.String()
	case *types.PointerType:
		return cType(v.Elem) + "*"
	case *types.ReferenceType:
		return cType(v.Elem) + "*"
	case *types.NamedType:
		return v.Name
	case *types.CompoundType:
		kw := "union"
		if v.IsStruct {
			kw = "struct"
		}
		var sb strings.Builder
		sb.WriteString(kw)
		sb.WriteString(" { ")
		for _, member := range v.Members {
			sb.WriteString(cDecl(member.Type, member.Name))
			sb.WriteString("; ")
		}
		sb.WriteString("}")
		return sb.String()
	case *types.ArrayType:
		// Reached only behind a pointer (`&[4]i8`); the array decays to
		// a pointer to its element in the emitted C.
		return cType(v.Elem)
	case *types.NumericLiteralType:
		return cType(types.DefaultOf(v))
	default:
		panic("emit: type has no C rendering: " + t.String())
	}
}
