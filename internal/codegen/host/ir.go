// Package host is the generic-host backend: it emits Python source that
// allocates ordinary containers (bytes, str, list) for variable-length
// fields rather than the fixed-capacity inline storage the tiny backends
// use. It shares the wire model with every other backend, so the bytes it
// produces for a given message are identical to what ctiny/cpptiny
// produce.
package host

import (
	"fmt"

	"github.com/bakelite-lang/bakelite/internal/schema"
	"github.com/bakelite-lang/bakelite/internal/wire"
)

// structFmt maps a primitive kind to its Python `struct` format character.
var structFmt = map[schema.PrimitiveKind]string{
	schema.Int8: "b", schema.Int16: "h", schema.Int32: "i", schema.Int64: "q",
	schema.Uint8: "B", schema.Uint16: "H", schema.Uint32: "I", schema.Uint64: "Q",
	schema.Float32: "f", schema.Float64: "d",
}

// fieldIR is the per-field view handed to the struct template.
type fieldIR struct {
	Name       string
	Annotation string
	Op         *wire.Op
}

// structIR is the per-struct view handed to the struct template.
type structIR struct {
	Name   string
	Fields []fieldIR
}

// enumIR is the per-enum view handed to the enum template.
type enumIR struct {
	Name       string
	Underlying string
	Members    []schema.EnumValue
}

func buildEnumIR(e wire.EnumLayout) enumIR {
	return enumIR{Name: e.Name, Underlying: structFmt[e.Underlying], Members: e.Members}
}

func annotationFor(op *wire.Op) string {
	switch op.Kind {
	case wire.OpPrimitive, wire.OpEnum:
		if op.Primitive == schema.Float32 || op.Primitive == schema.Float64 {
			return "float"
		}
		return "int"
	case wire.OpBool:
		return "bool"
	case wire.OpBytes:
		return "bytes"
	case wire.OpString:
		return "str"
	case wire.OpStruct:
		return op.TypeName
	case wire.OpArray:
		return fmt.Sprintf("list[%s]", annotationFor(op.Elem))
	}
	return "object"
}

func buildStructIR(s wire.StructLayout) structIR {
	ir := structIR{Name: s.Name}
	for _, f := range s.Fields {
		ir.Fields = append(ir.Fields, fieldIR{
			Name:       f.Name,
			Annotation: annotationFor(f.Op),
			Op:         f.Op,
		})
	}
	return ir
}
