package semantic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/errors"
	"github.com/octo-lang/octoc/internal/lexer"
	"github.com/octo-lang/octoc/internal/parser"
	"github.com/octo-lang/octoc/internal/source"
	"github.com/octo-lang/octoc/internal/types"
)

// analyze runs the full front end over input and returns the program tree,
// the analyzer verdict, and the rendered diagnostics.
func analyze(t *testing.T, input string) (*ast.Compound, bool, string) {
	t.Helper()
	src := source.FromBytes("test.oc", []byte(input))
	var out bytes.Buffer
	rep := errors.NewReporter(&out, src, false)
	tokens, ok := lexer.Tokenize(src, rep)
	if !ok {
		t.Fatalf("lexer errors: %s", out.String())
	}
	program, ok := parser.Parse(tokens, rep)
	if !ok {
		t.Fatalf("parser errors: %s", out.String())
	}
	_, ok = Analyze(program, rep)
	return program, ok, out.String()
}

func mustAnalyze(t *testing.T, input string) *ast.Compound {
	t.Helper()
	program, ok, diags := analyze(t, input)
	if !ok {
		t.Fatalf("unexpected diagnostics:\n%s", diags)
	}
	return program
}

func mustFail(t *testing.T, input string, wantFragment string) string {
	t.Helper()
	_, ok, diags := analyze(t, input)
	if ok {
		t.Fatalf("expected diagnostics for %q", input)
	}
	if !strings.Contains(diags, wantFragment) {
		t.Fatalf("diagnostics missing %q:\n%s", wantFragment, diags)
	}
	return diags
}

func TestVarDeclExplicit(t *testing.T) {
	program := mustAnalyze(t, "let x: i32 = 5;")
	decl := program.Stmts[0].(*ast.VarDecl)
	want := &types.IntegerType{Bits: 32, Signed: true}
	if !decl.Type.Equal(want) {
		t.Errorf("x type = %s, expected i32", decl.Type)
	}
}

func TestVarDeclInferredFloatDefault(t *testing.T) {
	program := mustAnalyze(t, "let x = 3.14;")
	decl := program.Stmts[0].(*ast.VarDecl)
	want := &types.FloatType{Bits: 64}
	if !decl.Type.Equal(want) {
		t.Errorf("x type = %s, expected f64", decl.Type)
	}
}

func TestVarDeclInferredIntDefault(t *testing.T) {
	program := mustAnalyze(t, "let x = 5;")
	decl := program.Stmts[0].(*ast.VarDecl)
	if !decl.Type.Equal(types.DefaultInteger()) {
		t.Errorf("x type = %s, expected i32", decl.Type)
	}
}

func TestFuncDecl(t *testing.T) {
	program := mustAnalyze(t, "func add(a: i32, b: i32) -> i32 { return a + b; }")
	fn := program.Stmts[0].(*ast.FuncDecl)
	sig := fn.Type.(*types.FunctionType)
	if sig.String() != "func(i32, i32) -> i32" {
		t.Errorf("signature = %s", sig)
	}
}

func TestRedeclaration(t *testing.T) {
	diags := mustFail(t, "let x: i32 = 5; let x: i32 = 6;", "'x' is already declared in this scope")
	if !strings.Contains(diags, "note: first declared here") {
		t.Errorf("missing note block:\n%s", diags)
	}
}

func TestShadowingAcrossScopesIsLegal(t *testing.T) {
	mustAnalyze(t, "let x: i32 = 5; { let x: f64 = 1.0; }")
}

func TestInitializerSeesOuterBinding(t *testing.T) {
	program := mustAnalyze(t, "let x = 5; { let x = x; }")
	block := program.Stmts[1].(*ast.Compound)
	inner := block.Stmts[0].(*ast.VarDecl)
	if !inner.Type.Equal(types.DefaultInteger()) {
		t.Errorf("inner x type = %s, expected outer i32", inner.Type)
	}
}

func TestSelfReferenceWithoutOuterFails(t *testing.T) {
	mustFail(t, "let x = x;", "undeclared symbol 'x'")
}

func TestArrayLengthMismatch(t *testing.T) {
	mustFail(t, "let a: [3]i32 = [1, 2];", "array length mismatch: expected 3, found 2")
}

func TestArrayLengthInference(t *testing.T) {
	program := mustAnalyze(t, "let a: []i32 = [1, 2];")
	decl := program.Stmts[0].(*ast.VarDecl)
	want := &types.ArrayType{Elem: &types.IntegerType{Bits: 32, Signed: true}, Len: 2}
	if !decl.Type.Equal(want) {
		t.Errorf("a type = %s, expected [2]i32", decl.Type)
	}
}

func TestEmptyArrayLiteralNeedsContext(t *testing.T) {
	mustFail(t, "let a = [];", "cannot infer array length")
}

func TestSubscript(t *testing.T) {
	program := mustAnalyze(t, "let a = [1, 2, 3]; let y: i32 = a[1];")
	decl := program.Stmts[1].(*ast.VarDecl)
	if !decl.Type.Equal(&types.IntegerType{Bits: 32, Signed: true}) {
		t.Errorf("y type = %s, expected i32", decl.Type)
	}
}

func TestSubscriptNonArray(t *testing.T) {
	mustFail(t, "let x = 5; let y = x[0];", "is not an array")
}

func TestSubscriptNonIntegerIndex(t *testing.T) {
	mustFail(t, "let a = [1, 2]; let y = a[1.5];", "array subscript must be an integer")
}

func TestPointerRoundTrip(t *testing.T) {
	program := mustAnalyze(t, "let x: i32 = 1; let p: &i32 = &x; let y: i32 = *p;")
	p := program.Stmts[1].(*ast.VarDecl)
	if p.Type.String() != "&i32" {
		t.Errorf("p type = %s, expected &i32", p.Type)
	}
}

func TestAddressOfRvalueFails(t *testing.T) {
	mustFail(t, "let p = &5;", "cannot get address of expression")
}

func TestDereferenceNonPointerFails(t *testing.T) {
	mustFail(t, "let x = 5; let y = *x;", "invalid operation '*'")
}

func TestWhileWithElse(t *testing.T) {
	mustFail(t, "let x = 0; while x == 0 { } else { }", "while-loop must not have an else branch")
}

func TestConditionMustBeBool(t *testing.T) {
	mustFail(t, "if 1 { }", "expected bool")
}

func TestIntegerWidthsAreDistinct(t *testing.T) {
	mustFail(t, "let a: i32 = 1; let b: i64 = a;", "cannot implicitly convert i32 to i64")
}

func TestNumericLiteralWidening(t *testing.T) {
	mustAnalyze(t, "let a: i64 = 1; let b: u8 = 255; let c: f32 = 1;")
}

func TestFloatLiteralNotAssignableToInteger(t *testing.T) {
	mustFail(t, "let a: i32 = 1.5;", "cannot implicitly convert")
}

func TestVoidVariableRejected(t *testing.T) {
	mustFail(t, "let x: void;", "cannot have type void")
}

func TestCompoundLiteralAndMemberAccess(t *testing.T) {
	program := mustAnalyze(t, `
type Point = struct { x: i32; y: i32; };
let p = Point{ .x = 1, .y = 2 };
let x: i32 = p.x;
`)
	decl := program.Stmts[1].(*ast.VarDecl)
	named, ok := decl.Type.(*types.NamedType)
	if !ok || named.Name != "Point" {
		t.Fatalf("p type = %s, expected Point", decl.Type)
	}
}

func TestCompoundLiteralUnknownMember(t *testing.T) {
	mustFail(t, `
type Point = struct { x: i32; };
let p = Point{ .z = 1 };
`, "no member 'z' in type 'Point'")
}

func TestCompoundLiteralDuplicateMember(t *testing.T) {
	mustFail(t, `
type Point = struct { x: i32; };
let p = Point{ .x = 1, .x = 2 };
`, "duplicate initializer for member 'x'")
}

func TestUnionLiteralExactlyOne(t *testing.T) {
	mustFail(t, `
type V = union { i: i32; f: f32; };
let v = V{ .i = 1, .f = 2.0 };
`, "union literal must initialize exactly one member")

	mustAnalyze(t, `
type V = union { i: i32; f: f32; };
let v = V{ .i = 1 };
`)
}

func TestMemberAccessThroughPointer(t *testing.T) {
	mustAnalyze(t, `
type Point = struct { x: i32; };
let p = Point{ .x = 1 };
let q: &Point = &p;
let x: i32 = q.x;
`)
}

func TestNamedTypesCompareByName(t *testing.T) {
	mustFail(t, `
type A = struct { v: i32; };
type B = struct { v: i32; };
let a = A{ .v = 1 };
let b: B = a;
`, "type mismatch: expected B, found A")
}

func TestCallChecksArity(t *testing.T) {
	mustFail(t, `
func add(a: i32, b: i32) -> i32 { return a + b; }
let x = add(1);
`, "expected 2 argument(s), found 1")
}

func TestVariadicCallAllowsExtra(t *testing.T) {
	mustAnalyze(t, `
extern func printf(format: &char, ..) -> void;
func main() -> i32 {
	printf("%d %d", 1, 2);
	return 0;
}
`)
}

func TestVariadicCallStillNeedsFixedArgs(t *testing.T) {
	mustFail(t, `
extern func printf(format: &char, ..) -> void;
func main() -> i32 {
	printf();
	return 0;
}
`, "expected 1 argument(s), found 0")
}

func TestExternWithBody(t *testing.T) {
	mustFail(t, "extern func f() -> void { };", "must not have a body")
}

func TestReturnTypeChecked(t *testing.T) {
	mustFail(t, "func f() -> i32 { return true; }", "type mismatch: expected i32, found bool")
}

func TestBareReturnRequiresVoid(t *testing.T) {
	mustFail(t, "func f() -> i32 { return; }", "type mismatch: expected i32, found void")
	mustAnalyze(t, "func f() -> void { return; }")
}

func TestReturnOutsideFunction(t *testing.T) {
	mustFail(t, "return 5;", "return statement outside of a function")
}

func TestForInArray(t *testing.T) {
	program := mustAnalyze(t, `
let nums = [1, 2, 3];
for n in nums {
	let m: i32 = n;
}
`)
	loop := program.Stmts[1].(*ast.ForLoop)
	if !loop.ElemType.Equal(&types.IntegerType{Bits: 32, Signed: true}) {
		t.Errorf("element type = %s, expected i32", loop.ElemType)
	}
}

func TestForInNonIterable(t *testing.T) {
	mustFail(t, "let x = 5; for n in x { }", "is not iterable")
}

func TestIteratorScopedToLoop(t *testing.T) {
	mustFail(t, `
let nums = [1, 2];
for n in nums { }
let y = n;
`, "undeclared symbol 'n'")
}

func TestTypeAsValueRejected(t *testing.T) {
	mustFail(t, "type T = i32; let x = T;", "cannot use type 'T' as a value")
}

func TestValueAsTypeRejected(t *testing.T) {
	mustFail(t, "let x = 5; let y: x = 1;", "'x' is not a type")
}

func TestZeroLengthArrayType(t *testing.T) {
	mustFail(t, "let a: [0]i32;", "array length must be greater than zero")
}

func TestAssignmentChecksTypes(t *testing.T) {
	mustFail(t, "let x: i32 = 1; x = true;", "type mismatch: expected i32, found bool")
}

func TestAssignmentToPostfixLvalue(t *testing.T) {
	mustAnalyze(t, `
type Point = struct { x: i32; };
let p = Point{ .x = 1 };
p.x = 2;
let a = [1, 2, 3];
a[0] = 9;
`)
}

func TestModuloRequiresIntegers(t *testing.T) {
	mustFail(t, "let x = 1.5 % 2.0;", "invalid operation")
	mustAnalyze(t, "let x: i32 = 7 % 3;")
}

func TestLogicalOperatorsRequireBool(t *testing.T) {
	mustFail(t, "let x = 1 && 2;", "invalid operation")
	mustAnalyze(t, "let x: bool = true && false || true;")
}

func TestComparisonYieldsBool(t *testing.T) {
	program := mustAnalyze(t, "let x = 1 < 2;")
	decl := program.Stmts[0].(*ast.VarDecl)
	if decl.Type.Kind() != types.Bool {
		t.Errorf("x type = %s, expected bool", decl.Type)
	}
}

// Analysis must be idempotent: re-running on an analyzed tree yields no
// new diagnostics and leaves stored types unchanged.
func TestAnalysisIdempotent(t *testing.T) {
	input := `
type Point = struct { x: i32; y: i32; };
func add(a: i32, b: i32) -> i32 { return a + b; }
let p = Point{ .x = 1, .y = 2 };
let s: i32 = add(p.x, p.y);
`
	src := source.FromBytes("test.oc", []byte(input))
	var out bytes.Buffer
	rep := errors.NewReporter(&out, src, false)
	tokens, _ := lexer.Tokenize(src, rep)
	program, _ := parser.Parse(tokens, rep)

	if _, ok := Analyze(program, rep); !ok {
		t.Fatalf("first analysis failed:\n%s", out.String())
	}
	firstType := program.Stmts[3].(*ast.VarDecl).Type

	if _, ok := Analyze(program, rep); !ok {
		t.Fatalf("second analysis reported diagnostics:\n%s", out.String())
	}
	secondType := program.Stmts[3].(*ast.VarDecl).Type
	if !firstType.Equal(secondType) {
		t.Errorf("stored type changed across runs: %s vs %s", firstType, secondType)
	}
}
