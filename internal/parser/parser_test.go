package parser

import (
	"bytes"
	"testing"

	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/errors"
	"github.com/octo-lang/octoc/internal/lexer"
	"github.com/octo-lang/octoc/internal/source"
)

func parseProgram(t *testing.T, input string) (*ast.Compound, bool) {
	t.Helper()
	src := source.FromBytes("test.oc", []byte(input))
	rep := errors.NewReporter(&bytes.Buffer{}, src, false)
	tokens, ok := lexer.Tokenize(src, rep)
	if !ok {
		t.Fatalf("lexer errors in test input %q", input)
	}
	return Parse(tokens, rep)
}

func mustParse(t *testing.T, input string) *ast.Compound {
	t.Helper()
	program, ok := parseProgram(t, input)
	if !ok {
		t.Fatalf("parse failed for %q", input)
	}
	return program
}

func onlyStmt(t *testing.T, input string) ast.Stmt {
	t.Helper()
	program := mustParse(t, input)
	if len(program.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Stmts))
	}
	return program.Stmts[0]
}

func TestVarDecl(t *testing.T) {
	stmt := onlyStmt(t, "let x: i32 = 5;")
	decl, ok := stmt.(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", stmt)
	}
	if decl.Name != "x" {
		t.Errorf("name = %q, expected %q", decl.Name, "x")
	}
	annot, ok := decl.Annotation.(*ast.TypeIdentifier)
	if !ok || annot.Name != "i32" {
		t.Errorf("annotation = %#v, expected i32", decl.Annotation)
	}
	init, ok := decl.Init.(*ast.IntegerLit)
	if !ok || init.Value != 5 {
		t.Errorf("init = %#v, expected integer 5", decl.Init)
	}
}

func TestVarDeclForms(t *testing.T) {
	tests := []struct {
		input          string
		wantAnnotation bool
		wantInit       bool
	}{
		{"let x: i32;", true, false},
		{"let x = 5;", false, true},
		{"let x: i32 = 5;", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			decl := onlyStmt(t, tt.input).(*ast.VarDecl)
			if (decl.Annotation != nil) != tt.wantAnnotation {
				t.Errorf("annotation presence = %v, expected %v", decl.Annotation != nil, tt.wantAnnotation)
			}
			if (decl.Init != nil) != tt.wantInit {
				t.Errorf("init presence = %v, expected %v", decl.Init != nil, tt.wantInit)
			}
		})
	}
}

func TestVarDeclRequiresAnnotationOrInit(t *testing.T) {
	if _, ok := parseProgram(t, "let x;"); ok {
		t.Fatalf("`let x;` must be a parse error")
	}
}

func TestFuncDecl(t *testing.T) {
	stmt := onlyStmt(t, "func add(a: i32, b: i32) -> i32 { return a + b; }")
	fn := stmt.(*ast.FuncDecl)
	if fn.Name != "add" {
		t.Errorf("name = %q", fn.Name)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Errorf("params = %#v", fn.Params)
	}
	if fn.Variadic {
		t.Errorf("variadic = true, expected false")
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatalf("body = %#v", fn.Body)
	}
	ret := fn.Body.Stmts[0].(*ast.Return)
	bin, ok := ret.Value.(*ast.Binary)
	if !ok || bin.Op != lexer.PLUS {
		t.Errorf("return value = %#v, expected a + b", ret.Value)
	}
}

func TestExternVariadic(t *testing.T) {
	stmt := onlyStmt(t, "extern func printf(format: &char, ..) -> void;")
	ext := stmt.(*ast.ExternDecl)
	fn := ext.Func
	if !fn.Variadic {
		t.Errorf("variadic = false, expected true")
	}
	if fn.Body != nil {
		t.Errorf("extern declaration must have no body")
	}
	if len(fn.Params) != 1 {
		t.Fatalf("params = %#v", fn.Params)
	}
	if _, ok := fn.Params[0].Annotation.(*ast.PointerTypeExpr); !ok {
		t.Errorf("param annotation = %#v, expected pointer type", fn.Params[0].Annotation)
	}
}

// Precedence-climbing output must match standard precedence and
// left-associativity regardless of the flat surface form.
func TestBinaryPrecedence(t *testing.T) {
	tests := []struct {
		input string
		// the operator expected at the tree root
		root lexer.TokenKind
	}{
		{"let x = 1 + 2 * 3;", lexer.PLUS},
		{"let x = 1 * 2 + 3;", lexer.PLUS},
		{"let x = 1 < 2 == true;", lexer.EQEQ},
		{"let x = a && b || c;", lexer.PIPEPIPE},
		{"let x = 1 + 2 < 3 * 4;", lexer.LESS},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			decl := onlyStmt(t, tt.input).(*ast.VarDecl)
			bin := decl.Init.(*ast.Binary)
			if bin.Op != tt.root {
				t.Errorf("root op = %q, expected %q", bin.Op, tt.root)
			}
		})
	}
}

func TestLeftAssociativity(t *testing.T) {
	decl := onlyStmt(t, "let x = 10 - 3 - 2;").(*ast.VarDecl)
	root := decl.Init.(*ast.Binary)
	if root.Op != lexer.MINUS {
		t.Fatalf("root op = %q", root.Op)
	}
	left, ok := root.Left.(*ast.Binary)
	if !ok || left.Op != lexer.MINUS {
		t.Fatalf("left = %#v, expected (10 - 3)", root.Left)
	}
	if lit, ok := root.Right.(*ast.IntegerLit); !ok || lit.Value != 2 {
		t.Fatalf("right = %#v, expected 2", root.Right)
	}
}

func TestUnaryBindsTighterThanBinary(t *testing.T) {
	decl := onlyStmt(t, "let x = -a + b;").(*ast.VarDecl)
	root := decl.Init.(*ast.Binary)
	if root.Op != lexer.PLUS {
		t.Fatalf("root op = %q", root.Op)
	}
	if _, ok := root.Left.(*ast.Unary); !ok {
		t.Fatalf("left = %#v, expected unary minus", root.Left)
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	decl := onlyStmt(t, "let x = (1 + 2) * 3;").(*ast.VarDecl)
	root := decl.Init.(*ast.Binary)
	if root.Op != lexer.STAR {
		t.Fatalf("root op = %q, expected *", root.Op)
	}
	if inner, ok := root.Left.(*ast.Binary); !ok || inner.Op != lexer.PLUS {
		t.Fatalf("left = %#v, expected (1 + 2)", root.Left)
	}
}

func TestPostfixChain(t *testing.T) {
	stmt := onlyStmt(t, "m.rows[1] = 0;")
	assign := stmt.(*ast.Assignment)
	sub, ok := assign.Target.(*ast.Subscript)
	if !ok {
		t.Fatalf("target = %#v, expected subscript", assign.Target)
	}
	member, ok := sub.Array.(*ast.MemberAccess)
	if !ok || member.Member != "rows" {
		t.Fatalf("subscript base = %#v, expected member access .rows", sub.Array)
	}
	if ident, ok := member.Target.(*ast.Identifier); !ok || ident.Name != "m" {
		t.Fatalf("member target = %#v, expected identifier m", member.Target)
	}
}

func TestCallStatement(t *testing.T) {
	stmt := onlyStmt(t, `print("hi", 2);`)
	call := stmt.(*ast.CallStmt).Call
	if call.Callee != "print" || len(call.Args) != 2 {
		t.Fatalf("call = %#v", call)
	}
}

func TestArrayLiteral(t *testing.T) {
	decl := onlyStmt(t, "let a = [1, 2, 3];").(*ast.VarDecl)
	lit := decl.Init.(*ast.ArrayLit)
	if len(lit.Elems) != 3 {
		t.Fatalf("elems = %d, expected 3", len(lit.Elems))
	}
}

func TestCompoundLiteral(t *testing.T) {
	decl := onlyStmt(t, "let p = Point{ .x = 1, .y = 2 };").(*ast.VarDecl)
	lit := decl.Init.(*ast.CompoundLit)
	if lit.TypeName != "Point" || len(lit.Fields) != 2 {
		t.Fatalf("literal = %#v", lit)
	}
	if lit.Fields[0].Name != "x" || lit.Fields[1].Name != "y" {
		t.Fatalf("fields = %#v", lit.Fields)
	}
}

func TestIfElseChain(t *testing.T) {
	stmt := onlyStmt(t, "if a { } else if b { } else { }")
	cond := stmt.(*ast.Conditional)
	if cond.IsWhile {
		t.Fatalf("IsWhile = true for if")
	}
	elseIf, ok := cond.Else.(*ast.Conditional)
	if !ok {
		t.Fatalf("else = %#v, expected nested conditional", cond.Else)
	}
	if _, ok := elseIf.Else.(*ast.Compound); !ok {
		t.Fatalf("final else = %#v, expected compound", elseIf.Else)
	}
}

// A while with an else must parse; rejecting it is the analyzer's job so
// the user gets a while-with-else diagnostic rather than a syntax error.
func TestWhileWithElseParses(t *testing.T) {
	stmt := onlyStmt(t, "while x == 0 { } else { }")
	cond := stmt.(*ast.Conditional)
	if !cond.IsWhile || cond.Else == nil {
		t.Fatalf("conditional = %#v", cond)
	}
}

func TestForIn(t *testing.T) {
	stmt := onlyStmt(t, "for n in nums { }")
	loop := stmt.(*ast.ForLoop)
	if loop.IterName != "n" {
		t.Errorf("iterator = %q", loop.IterName)
	}
	if ident, ok := loop.Iterable.(*ast.Identifier); !ok || ident.Name != "nums" {
		t.Errorf("iterable = %#v", loop.Iterable)
	}
}

func TestTypeDeclStruct(t *testing.T) {
	stmt := onlyStmt(t, "type Point = struct { x: i32; y: i32; };")
	decl := stmt.(*ast.TypeDecl)
	def := decl.Def.(*ast.CompoundDef)
	if !def.IsStruct || len(def.Members) != 2 {
		t.Fatalf("def = %#v", def)
	}
}

func TestTypeDeclForms(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, def ast.TypeExpr)
	}{
		{"type B = i8;", func(t *testing.T, def ast.TypeExpr) {
			if id, ok := def.(*ast.TypeIdentifier); !ok || id.Name != "i8" {
				t.Errorf("def = %#v", def)
			}
		}},
		{"type P = &i32;", func(t *testing.T, def ast.TypeExpr) {
			if _, ok := def.(*ast.PointerTypeExpr); !ok {
				t.Errorf("def = %#v", def)
			}
		}},
		{"type A = [4]i32;", func(t *testing.T, def ast.TypeExpr) {
			arr, ok := def.(*ast.ArrayTypeExpr)
			if !ok || arr.Len != 4 {
				t.Errorf("def = %#v", def)
			}
		}},
		{"type S = []i32;", func(t *testing.T, def ast.TypeExpr) {
			arr, ok := def.(*ast.ArrayTypeExpr)
			if !ok || arr.Len != -1 {
				t.Errorf("def = %#v", def)
			}
		}},
		{"type U = union { i: i32; f: f32; };", func(t *testing.T, def ast.TypeExpr) {
			u, ok := def.(*ast.CompoundDef)
			if !ok || u.IsStruct {
				t.Errorf("def = %#v", def)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			decl := onlyStmt(t, tt.input).(*ast.TypeDecl)
			tt.check(t, decl.Def)
		})
	}
}

func TestErrorRecovery(t *testing.T) {
	src := source.FromBytes("test.oc", []byte("let = 5;\nlet y = 6;\nlet = 7;\n"))
	var out bytes.Buffer
	rep := errors.NewReporter(&out, src, false)
	tokens, _ := lexer.Tokenize(src, rep)
	program, ok := Parse(tokens, rep)
	if ok {
		t.Fatalf("expected parse failure")
	}
	if rep.Count() < 2 {
		t.Errorf("expected both bad statements reported, got %d diagnostics", rep.Count())
	}
	if program == nil {
		t.Fatalf("recovery must still produce the program compound")
	}
	if len(program.Stmts) != 1 {
		t.Errorf("expected the good statement to survive, got %d", len(program.Stmts))
	}
}

func TestNestedCompound(t *testing.T) {
	stmt := onlyStmt(t, "{ let x = 1; }")
	block := stmt.(*ast.Compound)
	if len(block.Stmts) != 1 {
		t.Fatalf("nested block statements = %d", len(block.Stmts))
	}
}
