package ctiny

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/bakelite-lang/bakelite/internal/codegen"
	"github.com/bakelite-lang/bakelite/internal/schema"
	"github.com/bakelite-lang/bakelite/internal/wire"
)

func init() {
	codegen.Register(&Backend{})
}

// Backend is the C99 "tiny" target.
type Backend struct{}

// Name implements codegen.Backend.
func (*Backend) Name() string { return "ctiny" }

type fileIR struct {
	Enums    []enumIR
	Structs  []structIR
	Protocol *protocolIR
}

type protocolIR struct {
	Messages []messageIR
}

type messageIR struct {
	ID     int
	Struct struct{ Name string }
}

var tmpl = template.Must(template.New("ctiny").Funcs(template.FuncMap{
	"packField":   packField,
	"unpackField": unpackField,
}).Parse(fileTemplate))

// Generate implements codegen.Backend.
func (*Backend) Generate(model wire.Model) (string, error) {
	fir := fileIR{}
	for _, e := range model.Enums {
		fir.Enums = append(fir.Enums, buildEnumIR(e))
	}
	for _, s := range model.Structs {
		fir.Structs = append(fir.Structs, buildStructIR(s))
	}
	if model.Protocol != nil {
		p := &protocolIR{}
		for _, m := range model.Protocol.Messages {
			mi := messageIR{ID: m.ID}
			mi.Struct.Name = m.Struct.Name
			p.Messages = append(p.Messages, mi)
		}
		fir.Protocol = p
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, fir); err != nil {
		return "", fmt.Errorf("ctiny backend: %w", err)
	}
	return sb.String(), nil
}

func widthOf(k schema.PrimitiveKind) int {
	switch k {
	case schema.Int8, schema.Uint8, schema.Bool:
		return 1
	case schema.Int16, schema.Uint16:
		return 2
	case schema.Int32, schema.Uint32, schema.Float32:
		return 4
	default:
		return 8
	}
}

func packField(f fieldIR) string {
	var sb strings.Builder
	writeOp(&sb, "    ", "msg->"+f.Name, f.Op)
	return strings.TrimRight(sb.String(), "\n")
}

func writeOp(sb *strings.Builder, indent, expr string, op *wire.Op) {
	switch op.Kind {
	case wire.OpBool:
		fmt.Fprintf(sb, "%sif (bkl_put8(s, %s ? 1 : 0) != BKL_OK) return BKL_ERR_WRITE;\n", indent, expr)
	case wire.OpPrimitive, wire.OpEnum:
		fmt.Fprintf(sb, "%sif (bkl_put%d(s, (uint%d_t)%s) != BKL_OK) return BKL_ERR_WRITE;\n", indent, widthOf(op.Primitive)*8, widthOf(op.Primitive)*8, expr)
	case wire.OpString:
		fmt.Fprintf(sb, "%sif (bkl_put_cstr(s, %s, %d) != BKL_OK) return BKL_ERR_WRITE;\n", indent, expr, op.Capacity)
	case wire.OpBytes:
		fmt.Fprintf(sb, "%sif (bkl_put_bytes(s, %s.data, %s.len) != BKL_OK) return BKL_ERR_WRITE;\n", indent, expr, expr)
	case wire.OpStruct:
		fmt.Fprintf(sb, "%sif (pack_%s(&%s, s) != BKL_OK) return BKL_ERR_WRITE;\n", indent, op.TypeName, expr)
	case wire.OpArray:
		fmt.Fprintf(sb, "%sif (bkl_put8(s, %s.len) != BKL_OK) return BKL_ERR_WRITE;\n", indent, expr)
		fmt.Fprintf(sb, "%sfor (uint8_t _i = 0; _i < %s.len; _i++) {\n", indent, expr)
		writeOp(sb, indent+"    ", expr+".data[_i]", op.Elem)
		fmt.Fprintf(sb, "%s}\n", indent)
	}
}

func unpackField(f fieldIR) string {
	var sb strings.Builder
	readOp(&sb, "    ", "msg->"+f.Name, f.Op)
	return strings.TrimRight(sb.String(), "\n")
}

func readOp(sb *strings.Builder, indent, expr string, op *wire.Op) {
	switch op.Kind {
	case wire.OpBool:
		fmt.Fprintf(sb, "%s{ uint8_t _v; if (bkl_get8(s, &_v) != BKL_OK) return BKL_ERR_READ; %s = _v != 0; }\n", indent, expr)
	case wire.OpPrimitive, wire.OpEnum:
		w := widthOf(op.Primitive) * 8
		fmt.Fprintf(sb, "%s{ uint%d_t _v; if (bkl_get%d(s, &_v) != BKL_OK) return BKL_ERR_READ; %s = (%s)_v; }\n", indent, w, w, expr, cPrimitive[op.Primitive])
	case wire.OpString:
		fmt.Fprintf(sb, "%sif (bkl_get_cstr(s, %s, %d) != BKL_OK) return BKL_ERR_READ;\n", indent, expr, op.Capacity)
	case wire.OpBytes:
		fmt.Fprintf(sb, "%sif (bkl_get_bytes(s, %s.data, %d, &%s.len) != BKL_OK) return BKL_ERR_READ;\n", indent, expr, op.Capacity, expr)
	case wire.OpStruct:
		fmt.Fprintf(sb, "%sif (unpack_%s(&%s, s) != BKL_OK) return BKL_ERR_READ;\n", indent, op.TypeName, expr)
	case wire.OpArray:
		fmt.Fprintf(sb, "%s{ uint8_t _n; if (bkl_get8(s, &_n) != BKL_OK) return BKL_ERR_READ;\n", indent)
		fmt.Fprintf(sb, "%s  if (_n > %d) return BKL_ERR_CAPACITY;\n", indent, op.Capacity)
		fmt.Fprintf(sb, "%s  %s.len = _n;\n", indent, expr)
		fmt.Fprintf(sb, "%s  for (uint8_t _i = 0; _i < _n; _i++) {\n", indent)
		readOp(sb, indent+"    ", expr+".data[_i]", op.Elem)
		fmt.Fprintf(sb, "%s  }\n%s}\n", indent, indent)
	}
}
