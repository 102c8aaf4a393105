package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleProgram = `
extern func printf(format: &char, ..) -> void;

func main() -> i32 {
	let x: i32 = 40 + 2;
	printf("%d", x);
	return 0;
}
`

func TestBuildWritesCNextToInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.oc")
	if err := os.WriteFile(in, []byte(sampleProgram), 0o644); err != nil {
		t.Fatal(err)
	}

	outputFile = ""
	if err := buildOne(in); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	out := filepath.Join(dir, "main.c")
	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", out, err)
	}
	generated := string(content)
	for _, want := range []string{
		"#include <stdint.h>",
		"extern void printf(char* format, ...);",
		"i32 main(void) {",
		"i32 x = (40 + 2);",
	} {
		if !strings.Contains(generated, want) {
			t.Errorf("generated C missing %q:\n%s", want, generated)
		}
	}
}

func TestBuildRespectsOutputFlag(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.oc")
	if err := os.WriteFile(in, []byte(sampleProgram), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "custom.c")
	outputFile = out
	defer func() { outputFile = "" }()

	if err := buildOne(in); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected %s to exist: %v", out, err)
	}
}

func TestBuildReportsSemanticErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.oc")
	if err := os.WriteFile(in, []byte("let x: i32 = 5; let x: i32 = 6;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outputFile = ""
	err := buildOne(in)
	if err == nil {
		t.Fatalf("expected build to fail")
	}
	if !strings.Contains(err.Error(), "semantic error") {
		t.Errorf("error = %v, expected semantic error summary", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "bad.c")); statErr == nil {
		t.Errorf("no output file may be written on a failed build")
	}
}

func TestExpandInputsLiteralAndGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.oc", "b.oc"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("let x = 1;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := expandInputs([]string{filepath.Join(dir, "*.oc")})
	if err != nil {
		t.Fatalf("expandInputs: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 matches, got %v", paths)
	}

	if _, err := expandInputs([]string{filepath.Join(dir, "*.nope")}); err == nil {
		t.Errorf("expected error for glob with no matches")
	}
}
