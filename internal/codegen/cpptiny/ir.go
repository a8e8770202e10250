// Package cpptiny is the C++ "tiny" backend. It shares the ctiny
// backend's fixed-capacity, no-heap storage strategy but exposes pack/
// unpack as member functions on a class. Its runtime header carries its
// own C++ COBS/CRC implementations (bkl::CobsEncode, bkl::Crc8, ...); it
// does not include or wrap the C runtime header.
package cpptiny

import (
	"fmt"

	"github.com/bakelite-lang/bakelite/internal/schema"
	"github.com/bakelite-lang/bakelite/internal/wire"
)

var cxxPrimitive = map[schema.PrimitiveKind]string{
	schema.Int8: "int8_t", schema.Int16: "int16_t", schema.Int32: "int32_t", schema.Int64: "int64_t",
	schema.Uint8: "uint8_t", schema.Uint16: "uint16_t", schema.Uint32: "uint32_t", schema.Uint64: "uint64_t",
	schema.Float32: "float", schema.Float64: "double", schema.Bool: "uint8_t",
}

// cxxType returns the C++ member declaration for op.
func cxxType(op *wire.Op, name string) string {
	switch op.Kind {
	case wire.OpPrimitive, wire.OpBool, wire.OpEnum:
		return fmt.Sprintf("%s %s", cxxPrimitive[op.Primitive], name)
	case wire.OpString:
		return fmt.Sprintf("bkl::InlineString<%d> %s", op.Capacity, name)
	case wire.OpBytes:
		return fmt.Sprintf("bkl::InlineBytes<%d> %s", op.Capacity, name)
	case wire.OpStruct:
		return fmt.Sprintf("%s %s", op.TypeName, name)
	case wire.OpArray:
		return fmt.Sprintf("bkl::InlineSequence<%s, %d> %s", elemCxxType(op.Elem), op.Capacity, name)
	}
	return fmt.Sprintf("/* unknown */ %s", name)
}

func elemCxxType(op *wire.Op) string {
	switch op.Kind {
	case wire.OpStruct:
		return op.TypeName
	case wire.OpPrimitive, wire.OpBool, wire.OpEnum:
		return cxxPrimitive[op.Primitive]
	}
	return "uint8_t"
}

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
	return enumIR{Name: e.Name, Underlying: cxxPrimitive[e.Underlying], Members: e.Members}
}

func buildStructIR(s wire.StructLayout) structIR {
	ir := structIR{Name: s.Name}
	for _, f := range s.Fields {
		ir.Fields = append(ir.Fields, fieldIR{Name: f.Name, Decl: cxxType(f.Op, f.Name), Op: f.Op})
	}
	return ir
}
