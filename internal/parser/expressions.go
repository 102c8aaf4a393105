package parser

import (
	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/errors"
	"github.com/octo-lang/octoc/internal/lexer"
)

// Binary operator precedence, lowest first. Unary operators bind tighter
// than all of these and postfix tighter still, so only infix operators
// appear here.
const (
	precLowest = iota
	precOr     // ||
	precAnd    // &&
	precEq     // == !=
	precCmp    // < > <= >=
	precSum    // + -
	precProd   // * / %
)

var precedences = map[lexer.TokenKind]int{
	lexer.PIPEPIPE: precOr,
	lexer.AMPAMP:   precAnd,
	lexer.EQEQ:     precEq,
	lexer.NOTEQ:    precEq,
	lexer.LESS:     precCmp,
	lexer.GREATER:  precCmp,
	lexer.LTEQ:     precCmp,
	lexer.GTEQ:     precCmp,
	lexer.PLUS:     precSum,
	lexer.MINUS:    precSum,
	lexer.STAR:     precProd,
	lexer.SLASH:    precProd,
	lexer.PERCENT:  precProd,
}

// parseRvalue parses a full expression with standard precedence.
func (p *Parser) parseRvalue() ast.Expr {
	return p.parseBinary(precLowest)
}

// parseBinary is precedence climbing: operators at or above min bind here,
// lower ones return to the caller. Equal precedence recurses with min+1,
// which makes every level left-associative.
func (p *Parser) parseBinary(min int) ast.Expr {
	left := p.parsePostfix(p.parsePrimary())
	if left == nil {
		return nil
	}
	for {
		op := p.cur()
		prec, ok := precedences[op.Kind]
		if !ok || prec < min {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		if right == nil {
			return nil
		}
		left = &ast.Binary{Tok: op, Op: op.Kind, Left: left, Right: right}
	}
}

// parsePostfix applies left-associative `[index]` and `.member` chains to a
// primary expression.
func (p *Parser) parsePostfix(left ast.Expr) ast.Expr {
	if left == nil {
		return nil
	}
	for {
		switch p.cur().Kind {
		case lexer.LBRACKET:
			open := p.cur()
			p.advance()
			index := p.parseRvalue()
			if index == nil {
				return nil
			}
			if _, ok := p.expect(lexer.RBRACKET); !ok {
				return nil
			}
			left = &ast.Subscript{Tok: open, Array: left, Index: index}
		case lexer.PERIOD:
			dot := p.cur()
			p.advance()
			member, ok := p.expect(lexer.IDENT)
			if !ok {
				return nil
			}
			left = &ast.MemberAccess{Tok: dot, Target: left, Member: member.StringValue}
		default:
			return left
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case lexer.INT:
		p.advance()
		return &ast.IntegerLit{Tok: tok, Value: tok.IntValue}
	case lexer.FLOAT:
		p.advance()
		return &ast.FloatLit{Tok: tok, Value: tok.FloatValue}
	case lexer.STRING:
		p.advance()
		return &ast.StringLit{Tok: tok, Value: tok.StringValue}
	case lexer.CHAR:
		p.advance()
		return &ast.CharLit{Tok: tok, Value: tok.CharValue}
	case lexer.BOOL:
		p.advance()
		return &ast.BoolLit{Tok: tok, Value: tok.BoolValue}
	case lexer.LPAREN:
		p.advance()
		inner := p.parseRvalue()
		if inner == nil {
			return nil
		}
		if _, ok := p.expect(lexer.RPAREN); !ok {
			return nil
		}
		return inner
	case lexer.MINUS, lexer.BANG, lexer.STAR, lexer.AMP:
		p.advance()
		operand := p.parsePostfix(p.parsePrimary())
		if operand == nil {
			return nil
		}
		return &ast.Unary{Tok: tok, Op: tok.Kind, Operand: operand}
	case lexer.LBRACKET:
		return p.parseArrayLit()
	case lexer.IDENT:
		if p.peek().Kind == lexer.LPAREN {
			return p.parseCall()
		}
		if p.peek().Kind == lexer.LBRACE && p.startsCompoundLit() {
			return p.parseCompoundLit()
		}
		p.advance()
		return &ast.Identifier{Tok: tok, Name: tok.StringValue}
	default:
		p.fail(&errors.Error{
			Kind:   errors.UnexpectedSymbol,
			Pos:    tok.Pos,
			Lexeme: tok.Literal,
			Detail: "an expression",
		})
		return nil
	}
}

// startsCompoundLit disambiguates `identifier '{'` between a compound
// literal and an identifier followed by a block (as in `if x { ... }`): a
// literal's brace is always followed by a `.field` initializer. An empty
// `T{}` therefore does not parse as a literal; neither a struct nor a
// union can be initialized with zero fields anyway.
func (p *Parser) startsCompoundLit() bool {
	return p.at(2).Kind == lexer.PERIOD
}

// parseCall parses `identifier '(' (rvalue (',' rvalue)*)? ')'`.
func (p *Parser) parseCall() *ast.Call {
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.LPAREN); !ok {
		return nil
	}
	node := &ast.Call{Tok: name, Callee: name.StringValue}
	for p.cur().Kind != lexer.RPAREN {
		arg := p.parseRvalue()
		if arg == nil {
			return nil
		}
		node.Args = append(node.Args, arg)
		if p.cur().Kind != lexer.RPAREN {
			if _, ok := p.expect(lexer.COMMA); !ok {
				return nil
			}
		}
	}
	p.advance() // ')'
	return node
}

// parseArrayLit parses `'[' (rvalue (',' rvalue)*)? ']'`.
func (p *Parser) parseArrayLit() ast.Expr {
	open, _ := p.expect(lexer.LBRACKET)
	node := &ast.ArrayLit{Tok: open}
	for p.cur().Kind != lexer.RBRACKET {
		elem := p.parseRvalue()
		if elem == nil {
			return nil
		}
		node.Elems = append(node.Elems, elem)
		if p.cur().Kind != lexer.RBRACKET {
			if _, ok := p.expect(lexer.COMMA); !ok {
				return nil
			}
		}
	}
	p.advance() // ']'
	return node
}

// parseCompoundLit parses `identifier '{' ('.' IDENT '=' rvalue)? (','
// '.' IDENT '=' rvalue)* '}'`.
func (p *Parser) parseCompoundLit() ast.Expr {
	name, _ := p.expect(lexer.IDENT)
	if _, ok := p.expect(lexer.LBRACE); !ok {
		return nil
	}
	node := &ast.CompoundLit{Tok: name, TypeName: name.StringValue}
	for p.cur().Kind != lexer.RBRACE {
		dot, ok := p.expect(lexer.PERIOD)
		if !ok {
			return nil
		}
		field, ok := p.expect(lexer.IDENT)
		if !ok {
			return nil
		}
		if _, ok := p.expect(lexer.EQUAL); !ok {
			return nil
		}
		value := p.parseRvalue()
		if value == nil {
			return nil
		}
		node.Fields = append(node.Fields, ast.CompoundField{
			Tok:   dot,
			Name:  field.StringValue,
			Value: value,
		})
		if p.cur().Kind != lexer.RBRACE {
			if _, ok := p.expect(lexer.COMMA); !ok {
				return nil
			}
		}
	}
	p.advance() // '}'
	return node
}
