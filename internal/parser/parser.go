// Package parser builds a concrete syntax tree from bakelite IDL tokens.
//
// The grammar is a straightforward recursive-descent mapping of the EBNF in
// the language reference: a file is a sequence of top-level declarations
// (enum, struct, protocol), each optionally preceded by annotations.
// Parsing stops at the first syntax error; errors carry (line, column).
package parser

import (
	"fmt"
	"strconv"

	"github.com/bakelite-lang/bakelite/internal/ast"
	"github.com/bakelite-lang/bakelite/internal/lexer"
	"github.com/bakelite-lang/bakelite/internal/token"
)

// Error is a syntax error tied to a source position.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Parser consumes tokens from a lexer and builds an *ast.File.
type Parser struct {
	toks []token.Token
	pos  int
}

// Parse tokenizes and parses src in one call.
func Parse(src string) (*ast.File, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseFile()
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errf(format string, args ...any) error {
	return &Error{Pos: p.cur().Pos, Msg: fmt.Sprintf(format, args...)}
}

// expect consumes the current token if it has kind k, else errors.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur().Kind != k {
		return token.Token{}, p.errf("expected %s, got %s %q", k, p.cur().Kind, p.cur().Text)
	}
	return p.advance(), nil
}

func (p *Parser) parseFile() (*ast.File, error) {
	file := &ast.File{}
	for p.cur().Kind != token.EOF {
		annots, err := p.parseAnnotations()
		if err != nil {
			return nil, err
		}

		var decl ast.Decl
		switch p.cur().Kind {
		case token.KwEnum:
			decl, err = p.parseEnum(annots)
		case token.KwStruct:
			decl, err = p.parseStruct(annots)
		case token.KwProtocol:
			decl, err = p.parseProtocol(annots)
		default:
			err = p.errf("expected enum, struct, or protocol declaration, got %s %q", p.cur().Kind, p.cur().Text)
		}
		if err != nil {
			return nil, err
		}
		file.Decls = append(file.Decls, decl)
	}
	return file, nil
}

func (p *Parser) parseAnnotations() ([]ast.Annotation, error) {
	var out []ast.Annotation
	for p.cur().Kind == token.At {
		pos := p.cur().Pos
		p.advance()
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		ann := ast.Annotation{Name: name.Text, Pos: pos}
		if p.cur().Kind == token.LParen {
			p.advance()
			for p.cur().Kind != token.RParen {
				if p.cur().Kind != token.Ident && p.cur().Kind != token.Int {
					return nil, p.errf("expected annotation argument, got %s %q", p.cur().Kind, p.cur().Text)
				}
				ann.Args = append(ann.Args, p.advance().Text)
				if p.cur().Kind == token.Comma {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
		}
		out = append(out, ann)
	}
	return out, nil
}

func (p *Parser) parseIntLiteral() (int64, error) {
	tok, err := p.expect(token.Int)
	if err != nil {
		return 0, err
	}
	var v int64
	if len(tok.Text) > 1 && (tok.Text[1] == 'x' || tok.Text[1] == 'X') {
		n, perr := strconv.ParseInt(tok.Text[2:], 16, 64)
		if perr != nil {
			return 0, &Error{Pos: tok.Pos, Msg: fmt.Sprintf("malformed hex literal %q: %v", tok.Text, perr)}
		}
		v = n
	} else {
		n, perr := strconv.ParseInt(tok.Text, 10, 64)
		if perr != nil {
			return 0, &Error{Pos: tok.Pos, Msg: fmt.Sprintf("malformed integer literal %q: %v", tok.Text, perr)}
		}
		v = n
	}
	return v, nil
}

// parseType parses a field or enum-underlying type reference:
//
//	ident
//	ident [ int ]
//	ident [ int ] [ int ]
//
// The first bracket group is a capacity (meaningful for bytes/string); the
// second, if present, is the outer array length. A single bracket group is
// read here as a capacity when Name is bytes or string and as an array
// length otherwise.
func (p *Parser) parseType() (ast.TypeRef, error) {
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return ast.TypeRef{}, err
	}
	ref := ast.TypeRef{Name: nameTok.Text, Pos: nameTok.Pos}

	var groups []int64
	for p.cur().Kind == token.LBracket && len(groups) < 2 {
		p.advance()
		n, err := p.parseIntLiteral()
		if err != nil {
			return ast.TypeRef{}, err
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return ast.TypeRef{}, err
		}
		groups = append(groups, n)
	}

	switch len(groups) {
	case 0:
	case 1:
		if ref.Name == "bytes" || ref.Name == "string" {
			ref.HasCapacity = true
			ref.Capacity = int(groups[0])
		} else {
			ref.HasArray = true
			ref.ArrayLen = int(groups[0])
		}
	case 2:
		ref.HasCapacity = true
		ref.Capacity = int(groups[0])
		ref.HasArray = true
		ref.ArrayLen = int(groups[1])
	}
	return ref, nil
}

func (p *Parser) parseEnum(annots []ast.Annotation) (*ast.EnumDecl, error) {
	pos := p.cur().Pos
	p.advance() // 'enum'

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	underlying, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	decl := &ast.EnumDecl{Name: name.Text, Underlying: underlying, Annotations: annots, Pos: pos}
	for p.cur().Kind != token.RBrace {
		memberName, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Equals); err != nil {
			return nil, err
		}
		value, err := p.parseIntLiteral()
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, ast.EnumMember{Name: memberName.Text, Value: value, Pos: memberName.Pos})
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseStruct(annots []ast.Annotation) (*ast.StructDecl, error) {
	pos := p.cur().Pos
	p.advance() // 'struct'

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	decl := &ast.StructDecl{Name: name.Text, Annotations: annots, Pos: pos}
	for p.cur().Kind != token.RBrace {
		fieldName, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, ast.FieldDecl{Name: fieldName.Text, Type: typ, Pos: fieldName.Pos})
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseProtocol parses the single protocol block:
//
//	protocol Name {
//	    max_length = 64
//	    framing = COBS
//	    crc = CRC8
//	    messages {
//	        Ack = 2
//	        TestMessage = 1
//	    }
//	}
func (p *Parser) parseProtocol(annots []ast.Annotation) (*ast.ProtocolDecl, error) {
	pos := p.cur().Pos
	p.advance() // 'protocol'

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	decl := &ast.ProtocolDecl{Name: name.Text, Annotations: annots, Pos: pos}
	for p.cur().Kind != token.RBrace {
		key, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		switch key.Text {
		case "max_length":
			if _, err := p.expect(token.Equals); err != nil {
				return nil, err
			}
			v, err := p.parseIntLiteral()
			if err != nil {
				return nil, err
			}
			decl.MaxLength = v
			decl.HasMaxLen = true
		case "framing":
			if _, err := p.expect(token.Equals); err != nil {
				return nil, err
			}
			v, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			decl.Framing = v.Text
		case "crc":
			if _, err := p.expect(token.Equals); err != nil {
				return nil, err
			}
			v, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			decl.CRC = v.Text
		case "messages":
			if _, err := p.expect(token.LBrace); err != nil {
				return nil, err
			}
			for p.cur().Kind != token.RBrace {
				msgName, err := p.expect(token.Ident)
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(token.Equals); err != nil {
					return nil, err
				}
				id, err := p.parseIntLiteral()
				if err != nil {
					return nil, err
				}
				decl.Messages = append(decl.Messages, ast.MessageBinding{StructName: msgName.Text, ID: id, Pos: msgName.Pos})
			}
			if _, err := p.expect(token.RBrace); err != nil {
				return nil, err
			}
		default:
			return nil, &Error{Pos: key.Pos, Msg: fmt.Sprintf("unknown protocol field %q", key.Text)}
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return decl, nil
}
