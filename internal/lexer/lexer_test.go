package lexer

import (
	"testing"

	"github.com/bakelite-lang/bakelite/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeStruct(t *testing.T) {
	src := `struct Ack {
		code: uint8
	}`

	toks, err := Tokenize(src)
	require.NoError(t, err)

	kinds := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []token.Kind{
		token.KwStruct, token.Ident, token.LBrace,
		token.Ident, token.Colon, token.Ident,
		token.RBrace, token.EOF,
	}, kinds)
}

func TestTokenizeHexAndDecimalLiterals(t *testing.T) {
	toks, err := Tokenize("id = 0x2A\nother = 42")
	require.NoError(t, err)

	require.Len(t, toks, 7) // id, =, 0x2A, other, =, 42, EOF
	assert.Equal(t, "0x2A", toks[2].Text)
	assert.Equal(t, token.Int, toks[2].Kind)
	assert.Equal(t, "42", toks[5].Text)
}

func TestTokenizeComment(t *testing.T) {
	toks, err := Tokenize("# a comment\nenum Foo")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, token.KwEnum, toks[0].Kind)
}

func TestTokenizeAnnotation(t *testing.T) {
	toks, err := Tokenize("@wire(8)")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.At, token.Ident, token.LParen, token.Int, token.RParen, token.EOF}, []token.Kind{
		toks[0].Kind, toks[1].Kind, toks[2].Kind, toks[3].Kind, toks[4].Kind, toks[5].Kind,
	})
}

func TestTokenizeRejectsIllegalCharacter(t *testing.T) {
	_, err := Tokenize("struct Foo $ {}")
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Pos.Line)
}

func TestTokenizeMalformedHex(t *testing.T) {
	_, err := Tokenize("id = 0x")
	require.Error(t, err)
}

func TestPositionsTrackLineAndColumn(t *testing.T) {
	toks, err := Tokenize("struct A {\n  x: uint8\n}")
	require.NoError(t, err)

	// 'x' is on line 2.
	var xTok token.Token
	for _, tok := range toks {
		if tok.Kind == token.Ident && tok.Text == "x" {
			xTok = tok
		}
	}
	assert.Equal(t, 2, xTok.Pos.Line)
}
