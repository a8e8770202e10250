package wire

import (
	"testing"

	"github.com/bakelite-lang/bakelite/internal/parser"
	"github.com/bakelite-lang/bakelite/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildModelForTestMessage(t *testing.T) {
	file, err := parser.Parse(`
struct TestMessage {
    a: uint8
    b: int32
    status: bool
    message: string[16]
}

protocol P {
    max_length = 64
    crc = CRC8
    messages { TestMessage = 1 }
}
`)
	require.NoError(t, err)
	sch, err := schema.Resolve(file)
	require.NoError(t, err)

	model := Build(sch)
	require.Len(t, model.Structs, 1)
	tm := model.Structs[0]
	assert.Equal(t, "TestMessage", tm.Name)
	require.Len(t, tm.Fields, 4)

	assert.Equal(t, OpPrimitive, tm.Fields[0].Op.Kind)
	assert.Equal(t, schema.Uint8, tm.Fields[0].Op.Primitive)

	assert.Equal(t, OpPrimitive, tm.Fields[1].Op.Kind)
	assert.Equal(t, schema.Int32, tm.Fields[1].Op.Primitive)

	assert.Equal(t, OpBool, tm.Fields[2].Op.Kind)

	assert.Equal(t, OpString, tm.Fields[3].Op.Kind)
	assert.Equal(t, 16, tm.Fields[3].Op.Capacity)

	require.NotNil(t, model.Protocol)
	assert.Equal(t, schema.CRC8, model.Protocol.CRC)
}

func TestBuildModelForEnumAndArrayOfStruct(t *testing.T) {
	file, err := parser.Parse(`
enum Color: uint8 {
    Red = 0
    Green = 1
}

struct Point {
    x: int16
    y: int16
}

struct Path {
    tint: Color
    points: Point[4]
}
`)
	require.NoError(t, err)
	sch, err := schema.Resolve(file)
	require.NoError(t, err)

	model := Build(sch)
	require.Len(t, model.Enums, 1)
	assert.Equal(t, "Color", model.Enums[0].Name)
	assert.Equal(t, schema.Uint8, model.Enums[0].Underlying)

	path := model.Structs[1]
	assert.Equal(t, OpEnum, path.Fields[0].Op.Kind)
	assert.Equal(t, "Color", path.Fields[0].Op.TypeName)

	assert.Equal(t, OpArray, path.Fields[1].Op.Kind)
	assert.Equal(t, 4, path.Fields[1].Op.Capacity)
	require.NotNil(t, path.Fields[1].Op.Elem)
	assert.Equal(t, OpStruct, path.Fields[1].Op.Elem.Kind)
	assert.Equal(t, "Point", path.Fields[1].Op.Elem.TypeName)
}
