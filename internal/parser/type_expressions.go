package parser

import (
	"github.com/octo-lang/octoc/internal/ast"
	"github.com/octo-lang/octoc/internal/errors"
	"github.com/octo-lang/octoc/internal/lexer"
)

// parseTypeExpr parses a type-rvalue: `&T`, `[N?]T`, `struct { ... }`,
// `union { ... }`, or a bare identifier (built-in or declared type name).
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	tok := p.cur()
	switch tok.Kind {
	case lexer.AMP:
		p.advance()
		elem := p.parseTypeExpr()
		if elem == nil {
			return nil
		}
		return &ast.PointerTypeExpr{Tok: tok, Elem: elem}
	case lexer.LBRACKET:
		return p.parseArrayTypeExpr()
	case lexer.STRUCT, lexer.UNION:
		return p.parseCompoundDef()
	case lexer.IDENT:
		p.advance()
		return &ast.TypeIdentifier{Tok: tok, Name: tok.StringValue}
	default:
		p.fail(&errors.Error{
			Kind:   errors.UnexpectedSymbol,
			Pos:    tok.Pos,
			Lexeme: tok.Literal,
			Detail: "a type",
		})
		return nil
	}
}

// parseArrayTypeExpr parses `'[' INT? ']' T`; an omitted length means the
// length is inferred from the initializer.
func (p *Parser) parseArrayTypeExpr() ast.TypeExpr {
	open, _ := p.expect(lexer.LBRACKET)
	node := &ast.ArrayTypeExpr{Tok: open, Len: -1}
	if p.cur().Kind == lexer.INT {
		node.Len = int(p.cur().IntValue)
		p.advance()
	}
	if _, ok := p.expect(lexer.RBRACKET); !ok {
		return nil
	}
	node.Elem = p.parseTypeExpr()
	if node.Elem == nil {
		return nil
	}
	return node
}

// parseCompoundDef parses `(struct | union) '{' (IDENT ':' type ';')* '}'`.
func (p *Parser) parseCompoundDef() ast.TypeExpr {
	kw, _ := p.expect(lexer.STRUCT, lexer.UNION)
	node := &ast.CompoundDef{Tok: kw, IsStruct: kw.Kind == lexer.STRUCT}

	if _, ok := p.expect(lexer.LBRACE); !ok {
		return nil
	}
	for p.cur().Kind != lexer.RBRACE {
		name, ok := p.expect(lexer.IDENT)
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
		if _, ok := p.expect(lexer.SEMICOLON); !ok {
			return nil
		}
		node.Members = append(node.Members, ast.CompoundMember{
			Tok:        name,
			Name:       name.StringValue,
			Annotation: annotation,
		})
	}
	p.advance() // '}'
	return node
}
