// Package parser lowers the bracketed token stream into the tagged
// expression tree. It is a recursive-descent parser with one token of
// lookahead for statements and precedence climbing for binary expressions,
// so the trees it produces already reflect standard precedence and
// left-associativity.
//
// Error recovery is expect-based: when the current token is not in the
// accepted set the parser reports an unexpected-symbol diagnostic and the
// failing production returns nil. The enclosing compound then skips to the
// next statement boundary and keeps going, so one malformed statement does
// not hide errors in the rest of the program; the fatal flag still stops
// the pipeline before semantic analysis.
package parser

import (
	"strings"

	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/errors"
	"github.com/octo-lang/octoc/internal/lexer"
)

// Parser consumes a token stream produced by lexer.Tokenize. The stream is
// expected to be bracketed by synthetic braces and terminated by EOF.
type Parser struct {
	tokens   []lexer.Token
	pos      int
	reporter *errors.Reporter
	fatal    bool
}

// New creates a Parser over tokens, reporting diagnostics to rep.
func New(tokens []lexer.Token, rep *errors.Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: rep}
}

// Parse builds the program tree. The returned compound is the whole
// program (the synthetic brace pair). ok is false when any structural
// error was reported; the tree may then be partial and must not be
// analyzed.
func Parse(tokens []lexer.Token, rep *errors.Reporter) (*ast.Compound, bool) {
	p := New(tokens, rep)
	program := p.parseCompound()
	return program, program != nil && !p.fatal
}

// cur returns the current token. The stream always ends with EOF, so cur
// is total.
func (p *Parser) cur() lexer.Token { return p.tokens[p.pos] }

// peek returns the token after the current one; at the end it returns the
// final EOF again (EOF is sticky).
func (p *Parser) peek() lexer.Token { return p.at(1) }

func (p *Parser) at(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// advance moves to the next token unless already at EOF.
func (p *Parser) advance() {
	if p.cur().Kind != lexer.EOF {
		p.pos++
	}
}

// expect consumes and returns the current token when its kind is in the
// accepted set; otherwise it reports unexpected-symbol naming the accepted
// kinds and leaves the cursor in place.
func (p *Parser) expect(kinds ...lexer.TokenKind) (lexer.Token, bool) {
	tok := p.cur()
	for _, kind := range kinds {
		if tok.Kind == kind {
			p.advance()
			return tok, true
		}
	}
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = "'" + kind.String() + "'"
	}
	p.fail(&errors.Error{
		Kind:   errors.UnexpectedSymbol,
		Pos:    tok.Pos,
		Lexeme: tok.Literal,
		Detail: strings.Join(names, " or "),
	})
	return tok, false
}

func (p *Parser) fail(err *errors.Error) {
	p.fatal = true
	p.reporter.Report(err)
}

// synchronize skips ahead to the next statement boundary after a failed
// production: just past the next semicolon, or to a closing brace / EOF.
func (p *Parser) synchronize() {
	for {
		switch p.cur().Kind {
		case lexer.SEMICOLON:
			p.advance()
			return
		case lexer.RBRACE, lexer.EOF:
			return
		}
		p.advance()
	}
}

// parseCompound parses `'{' statement* '}'`. A failed statement is
// reported, skipped, and parsing resumes at the next boundary.
func (p *Parser) parseCompound() *ast.Compound {
	open, ok := p.expect(lexer.LBRACE)
	if !ok {
		return nil
	}
	node := &ast.Compound{Tok: open}
	for p.cur().Kind != lexer.RBRACE && p.cur().Kind != lexer.EOF {
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
			continue
		}
		node.Stmts = append(node.Stmts, stmt)
	}
	if _, ok := p.expect(lexer.RBRACE); !ok {
		return nil
	}
	return node
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Kind {
	case lexer.LET:
		return p.parseVarDecl()
	case lexer.FUNC:
		return p.parseFuncDecl()
	case lexer.EXTERN:
		return p.parseExternDecl()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IF:
		return p.parseConditional(false)
	case lexer.WHILE:
		return p.parseConditional(true)
	case lexer.FOR:
		return p.parseForLoop()
	case lexer.TYPE:
		return p.parseTypeDecl()
	case lexer.LBRACE:
		return p.parseCompound()
	case lexer.IDENT:
		return p.parseIdentStatement()
	default:
		p.fail(&errors.Error{
			Kind:   errors.UnexpectedSymbol,
			Pos:    p.cur().Pos,
			Lexeme: p.cur().Literal,
			Detail: "a statement",
		})
		return nil
	}
}

// parseVarDecl parses `let IDENT (':' type)? ('=' rvalue)? ';'`. At least
// one of the annotation and initializer must be present.
func (p *Parser) parseVarDecl() ast.Stmt {
	letTok, _ := p.expect(lexer.LET)
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}
	node := &ast.VarDecl{Tok: letTok, Name: name.StringValue}

	if p.cur().Kind == lexer.COLON {
		p.advance()
		node.Annotation = p.parseTypeExpr()
		if node.Annotation == nil {
			return nil
		}
	}
	if p.cur().Kind == lexer.EQUAL {
		p.advance()
		node.Init = p.parseRvalue()
		if node.Init == nil {
			return nil
		}
	}
	if node.Annotation == nil && node.Init == nil {
		p.fail(&errors.Error{
			Kind:   errors.UnexpectedSymbol,
			Pos:    p.cur().Pos,
			Lexeme: p.cur().Literal,
			Detail: "':' or '='",
		})
		return nil
	}
	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}
	return node
}

// parseFuncDecl parses
// `func IDENT '(' params? ')' '->' type (compound | ';')`. A body-less
// declaration is only legal under `extern`; that rule is enforced by the
// analyzer, not here, so both forms parse.
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	funcTok, _ := p.expect(lexer.FUNC)
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}
	node := &ast.FuncDecl{Tok: funcTok, Name: name.StringValue}

	if _, ok := p.expect(lexer.LPAREN); !ok {
		return nil
	}
	for p.cur().Kind != lexer.RPAREN {
		if p.cur().Kind == lexer.PERIODPERIOD {
			p.advance()
			node.Variadic = true
			break
		}
		paramName, ok := p.expect(lexer.IDENT)
		if !ok {
			return nil
		}
		if _, ok := p.expect(lexer.COLON); !ok {
			return nil
		}
		annotation := p.parseTypeExpr()
		if annotation == nil {
			return nil
		}
		node.Params = append(node.Params, ast.Param{
			Tok:        paramName,
			Name:       paramName.StringValue,
			Annotation: annotation,
		})
		if p.cur().Kind != lexer.RPAREN {
			if _, ok := p.expect(lexer.COMMA); !ok {
				return nil
			}
		}
	}
	if _, ok := p.expect(lexer.RPAREN); !ok {
		return nil
	}
	if _, ok := p.expect(lexer.ARROW); !ok {
		return nil
	}
	node.ReturnType = p.parseTypeExpr()
	if node.ReturnType == nil {
		return nil
	}

	if p.cur().Kind == lexer.SEMICOLON {
		p.advance()
		return node
	}
	node.Body = p.parseCompound()
	if node.Body == nil {
		return nil
	}
	return node
}

// parseExternDecl parses `extern func-decl ';'`. A body-less func-decl
// already ends in its own ';'; one with a body is followed by ';' here, and
// the analyzer then rejects the body.
func (p *Parser) parseExternDecl() ast.Stmt {
	externTok, _ := p.expect(lexer.EXTERN)
	fn := p.parseFuncDecl()
	if fn == nil {
		return nil
	}
	if fn.Body != nil {
		if _, ok := p.expect(lexer.SEMICOLON); !ok {
			return nil
		}
	}
	return &ast.ExternDecl{Tok: externTok, Func: fn}
}

func (p *Parser) parseReturn() ast.Stmt {
	retTok, _ := p.expect(lexer.RETURN)
	node := &ast.Return{Tok: retTok}
	if p.cur().Kind != lexer.SEMICOLON {
		node.Value = p.parseRvalue()
		if node.Value == nil {
			return nil
		}
	}
	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}
	return node
}

// parseConditional parses both `if` and `while`; they share one node shape.
// An `else` after `while` parses fine and is rejected by the analyzer with
// a while-with-else diagnostic, so the user gets a semantic message rather
// than a cascade of structural ones.
func (p *Parser) parseConditional(isWhile bool) ast.Stmt {
	kind := lexer.IF
	if isWhile {
		kind = lexer.WHILE
	}
	tok, _ := p.expect(kind)
	node := &ast.Conditional{Tok: tok, IsWhile: isWhile}

	node.Cond = p.parseRvalue()
	if node.Cond == nil {
		return nil
	}
	node.Then = p.parseCompound()
	if node.Then == nil {
		return nil
	}

	if p.cur().Kind == lexer.ELSE {
		p.advance()
		if p.cur().Kind == lexer.IF {
			node.Else = p.parseConditional(false)
		} else {
			node.Else = p.parseCompound()
		}
		if node.Else == nil {
			return nil
		}
	}
	return node
}

// parseForLoop parses `for IDENT in rvalue compound`.
func (p *Parser) parseForLoop() ast.Stmt {
	forTok, _ := p.expect(lexer.FOR)
	iter, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.IN); !ok {
		return nil
	}
	node := &ast.ForLoop{Tok: forTok, IterName: iter.StringValue}
	node.Iterable = p.parseRvalue()
	if node.Iterable == nil {
		return nil
	}
	node.Body = p.parseCompound()
	if node.Body == nil {
		return nil
	}
	return node
}

// parseTypeDecl parses `type IDENT '=' type-rvalue ';'`.
func (p *Parser) parseTypeDecl() ast.Stmt {
	typeTok, _ := p.expect(lexer.TYPE)
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.EQUAL); !ok {
		return nil
	}
	def := p.parseTypeExpr()
	if def == nil {
		return nil
	}
	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}
	return &ast.TypeDecl{Tok: typeTok, Name: name.StringValue, Def: def}
}

// parseIdentStatement dispatches a statement that begins with an
// identifier by peeking one token: '(' starts a call statement, anything
// else is an assignment whose left side is a postfix lvalue.
func (p *Parser) parseIdentStatement() ast.Stmt {
	if p.peek().Kind == lexer.LPAREN {
		call := p.parseCall()
		if call == nil {
			return nil
		}
		if _, ok := p.expect(lexer.SEMICOLON); !ok {
			return nil
		}
		return &ast.CallStmt{Call: call}
	}

	tok := p.cur()
	target := p.parsePostfix(p.parsePrimary())
	if target == nil {
		return nil
	}
	if _, ok := p.expect(lexer.EQUAL); !ok {
		return nil
	}
	value := p.parseRvalue()
	if value == nil {
		return nil
	}
	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}
	return &ast.Assignment{Tok: tok, Target: target, Value: value}
}
