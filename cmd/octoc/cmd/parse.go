package cmd

import (
	"fmt"
	"strings"

	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/lexer"
	"github.com/octo-lang/octoc/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Octo source code and display the AST",
	Long: `Parse Octo source code and display the resulting syntax tree.

Use -e to parse inline code from the command line. Semantic analysis is
not run; see 'octoc check' for the full front end.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := loadInput(args, evalExpr)
	if err != nil {
		return err
	}

	rep := newReporter(src)
	tokens, ok := lexer.Tokenize(src, rep)
	if !ok {
		return fmt.Errorf("%s: %d lexical error(s)", src.Path, rep.Count())
	}
	program, ok := parser.Parse(tokens, rep)
	if !ok {
		return fmt.Errorf("%s: %d parse error(s)", src.Path, rep.Count())
	}

	fmt.Printf("Program (%d statements)\n", len(program.Stmts))
	for _, stmt := range program.Stmts {
		dumpNode(stmt, 1)
	}
	return nil
}

func dumpNode(node ast.Node, indent int) {
	pad := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *ast.Compound:
		fmt.Printf("%sCompound (%d statements)\n", pad, len(n.Stmts))
		for _, stmt := range n.Stmts {
			dumpNode(stmt, indent+1)
		}
	case *ast.VarDecl:
		fmt.Printf("%sVarDecl %s\n", pad, n.Name)
		if n.Annotation != nil {
			dumpNode(n.Annotation, indent+1)
		}
		if n.Init != nil {
			dumpNode(n.Init, indent+1)
		}
	case *ast.FuncDecl:
		variadic := ""
		if n.Variadic {
			variadic = " variadic"
		}
		fmt.Printf("%sFuncDecl %s (%d params%s)\n", pad, n.Name, len(n.Params), variadic)
		if n.Body != nil {
			dumpNode(n.Body, indent+1)
		}
	case *ast.ExternDecl:
		fmt.Printf("%sExternDecl\n", pad)
		dumpNode(n.Func, indent+1)
	case *ast.TypeDecl:
		fmt.Printf("%sTypeDecl %s\n", pad, n.Name)
		dumpNode(n.Def, indent+1)
	case *ast.Return:
		fmt.Printf("%sReturn\n", pad)
		if n.Value != nil {
			dumpNode(n.Value, indent+1)
		}
	case *ast.Assignment:
		fmt.Printf("%sAssignment\n", pad)
		dumpNode(n.Target, indent+1)
		dumpNode(n.Value, indent+1)
	case *ast.CallStmt:
		dumpNode(n.Call, indent)
	case *ast.Conditional:
		kw := "If"
		if n.IsWhile {
			kw = "While"
		}
		fmt.Printf("%s%s\n", pad, kw)
		dumpNode(n.Cond, indent+1)
		dumpNode(n.Then, indent+1)
		if n.Else != nil {
			fmt.Printf("%sElse\n", pad)
			dumpNode(n.Else, indent+1)
		}
	case *ast.ForLoop:
		fmt.Printf("%sForLoop %s\n", pad, n.IterName)
		dumpNode(n.Iterable, indent+1)
		dumpNode(n.Body, indent+1)
	case *ast.Binary:
		fmt.Printf("%sBinary (%s)\n", pad, n.Tok.Literal)
		dumpNode(n.Left, indent+1)
		dumpNode(n.Right, indent+1)
	case *ast.Unary:
		fmt.Printf("%sUnary (%s)\n", pad, n.Tok.Literal)
		dumpNode(n.Operand, indent+1)
	case *ast.Call:
		fmt.Printf("%sCall %s (%d args)\n", pad, n.Callee, len(n.Args))
		for _, arg := range n.Args {
			dumpNode(arg, indent+1)
		}
	case *ast.Subscript:
		fmt.Printf("%sSubscript\n", pad)
		dumpNode(n.Array, indent+1)
		dumpNode(n.Index, indent+1)
	case *ast.MemberAccess:
		fmt.Printf("%sMemberAccess .%s\n", pad, n.Member)
		dumpNode(n.Target, indent+1)
	case *ast.ArrayLit:
		fmt.Printf("%sArrayLit (%d elements)\n", pad, len(n.Elems))
		for _, elem := range n.Elems {
			dumpNode(elem, indent+1)
		}
	case *ast.CompoundLit:
		fmt.Printf("%sCompoundLit %s (%d fields)\n", pad, n.TypeName, len(n.Fields))
		for _, field := range n.Fields {
			fmt.Printf("%s  .%s =\n", pad, field.Name)
			dumpNode(field.Value, indent+2)
		}
	case *ast.IntegerLit:
		fmt.Printf("%sIntegerLit %d\n", pad, n.Value)
	case *ast.FloatLit:
		fmt.Printf("%sFloatLit %g\n", pad, n.Value)
	case *ast.StringLit:
		fmt.Printf("%sStringLit %q\n", pad, n.Value)
	case *ast.CharLit:
		fmt.Printf("%sCharLit %q\n", pad, n.Value)
	case *ast.BoolLit:
		fmt.Printf("%sBoolLit %v\n", pad, n.Value)
	case *ast.TypeIdentifier:
		fmt.Printf("%sTypeIdentifier %s\n", pad, n.Name)
	case *ast.PointerTypeExpr:
		fmt.Printf("%sPointerType\n", pad)
		dumpNode(n.Elem, indent+1)
	case *ast.ArrayTypeExpr:
		fmt.Printf("%sArrayType (len %d)\n", pad, n.Len)
		dumpNode(n.Elem, indent+1)
	case *ast.CompoundDef:
		kw := "union"
		if n.IsStruct {
			kw = "struct"
		}
		fmt.Printf("%sCompoundDef %s (%d members)\n", pad, kw, len(n.Members))
		for _, member := range n.Members {
			fmt.Printf("%s  %s:\n", pad, member.Name)
			dumpNode(member.Annotation, indent+2)
		}
	default:
		fmt.Printf("%s%T\n", pad, node)
	}
}
