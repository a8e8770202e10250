// Package ctiny is the C99 "tiny" backend: it emits fixed-capacity plain
// C structs with no heap allocation; the structs carry no packed
// attribute and no unaligned-access check. Strings, bytes, and arrays all
// become inline storage sized at compile time; pack/unpack walk the same
// wire.Op tree the generic host backend does, so the two backends agree
// on wire bytes by construction.
package ctiny

import (
	"fmt"

	"github.com/bakelite-lang/bakelite/internal/schema"
	"github.com/bakelite-lang/bakelite/internal/wire"
)

var cPrimitive = map[schema.PrimitiveKind]string{
	schema.Int8: "int8_t", schema.Int16: "int16_t", schema.Int32: "int32_t", schema.Int64: "int64_t",
	schema.Uint8: "uint8_t", schema.Uint16: "uint16_t", schema.Uint32: "uint32_t", schema.Uint64: "uint64_t",
	schema.Float32: "float", schema.Float64: "double", schema.Bool: "uint8_t",
}

// cType returns the C99 member declaration for op, given the field name,
// e.g. "uint8_t code" or "uint8_t tag[8]" or "struct { uint8_t len; uint8_t data[32]; } blob".
func cType(op *wire.Op, name string) string {
	switch op.Kind {
	case wire.OpPrimitive, wire.OpBool:
		return fmt.Sprintf("%s %s", cPrimitive[op.Primitive], name)
	case wire.OpEnum:
		return fmt.Sprintf("%s %s", cPrimitive[op.Primitive], name)
	case wire.OpString:
		return fmt.Sprintf("char %s[%d]", name, op.Capacity)
	case wire.OpBytes:
		return fmt.Sprintf("struct { uint8_t len; uint8_t data[%d]; } %s", op.Capacity, name)
	case wire.OpStruct:
		return fmt.Sprintf("struct %s %s", op.TypeName, name)
	case wire.OpArray:
		return fmt.Sprintf("struct { uint8_t len; %s; } %s", cType(op.Elem, "data["+itoa(op.Capacity)+"]"), name)
	}
	return fmt.Sprintf("/* unknown */ %s", name)
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }

type fieldIR struct {
	Name string
	Decl string
	Op   *wire.Op
}

type structIR struct {
	Name   string
	Fields []fieldIR
}

type enumIR struct {
	Name       string
	Underlying string
	Members    []schema.EnumValue
}

func buildEnumIR(e wire.EnumLayout) enumIR {
	return enumIR{Name: e.Name, Underlying: cPrimitive[e.Underlying], Members: e.Members}
}

func buildStructIR(s wire.StructLayout) structIR {
	ir := structIR{Name: s.Name}
	for _, f := range s.Fields {
		ir.Fields = append(ir.Fields, fieldIR{Name: f.Name, Decl: cType(f.Op, f.Name), Op: f.Op})
	}
	return ir
}
