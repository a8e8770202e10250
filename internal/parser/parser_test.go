package parser

import (
	"testing"

	"github.com/bakelite-lang/bakelite/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `
# Acknowledgement message
struct Ack {
    code: uint8
}

struct TestMessage {
    a: uint8
    b: int32
    status: bool
    message: string[16]
}

enum Color: uint8 {
    Red = 0
    Green = 1
    Blue = 2
}

@wire(stable)
protocol Sample {
    max_length = 64
    framing = COBS
    crc = CRC8
    messages {
        Ack = 2
        TestMessage = 1
    }
}
`

func TestParseFullDocument(t *testing.T) {
	file, err := Parse(sampleSource)
	require.NoError(t, err)
	require.Len(t, file.Decls, 4)

	ack, ok := file.Decls[0].(*ast.StructDecl)
	require.True(t, ok)
	assert.Equal(t, "Ack", ack.Name)
	require.Len(t, ack.Fields, 1)
	assert.Equal(t, "code", ack.Fields[0].Name)
	assert.Equal(t, "uint8", ack.Fields[0].Type.Name)

	test, ok := file.Decls[1].(*ast.StructDecl)
	require.True(t, ok)
	require.Len(t, test.Fields, 4)
	assert.Equal(t, "message", test.Fields[3].Name)
	assert.True(t, test.Fields[3].Type.HasCapacity)
	assert.Equal(t, 16, test.Fields[3].Type.Capacity)

	color, ok := file.Decls[2].(*ast.EnumDecl)
	require.True(t, ok)
	assert.Equal(t, "uint8", color.Underlying.Name)
	require.Len(t, color.Members, 3)
	assert.Equal(t, int64(2), color.Members[2].Value)

	proto, ok := file.Decls[3].(*ast.ProtocolDecl)
	require.True(t, ok)
	assert.Equal(t, int64(64), proto.MaxLength)
	assert.Equal(t, "COBS", proto.Framing)
	assert.Equal(t, "CRC8", proto.CRC)
	require.Len(t, proto.Annotations, 1)
	assert.Equal(t, "wire", proto.Annotations[0].Name)
	require.Len(t, proto.Messages, 2)
	assert.Equal(t, "Ack", proto.Messages[0].StructName)
	assert.Equal(t, int64(2), proto.Messages[0].ID)
}

func TestParseArrayAndNestedCapacity(t *testing.T) {
	file, err := Parse(`struct S {
		samples: int16[8]
		tags: bytes[4][3]
	}`)
	require.NoError(t, err)
	s := file.Decls[0].(*ast.StructDecl)

	samples := s.Fields[0].Type
	assert.False(t, samples.HasCapacity)
	assert.True(t, samples.HasArray)
	assert.Equal(t, 8, samples.ArrayLen)

	tags := s.Fields[1].Type
	assert.True(t, tags.HasCapacity)
	assert.Equal(t, 4, tags.Capacity)
	assert.True(t, tags.HasArray)
	assert.Equal(t, 3, tags.ArrayLen)
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := Parse("struct Foo {\n  bad field\n}")
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos.Line)
}

func TestParseRejectsUnknownProtocolField(t *testing.T) {
	_, err := Parse("protocol P {\n  bogus = 1\n}")
	require.Error(t, err)
}

func TestParseEmptyFileProducesNoDecls(t *testing.T) {
	file, err := Parse("   \n  # just a comment\n")
	require.NoError(t, err)
	assert.Empty(t, file.Decls)
}
