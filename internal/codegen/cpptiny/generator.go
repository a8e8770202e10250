package cpptiny

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

// Backend is the C++ "tiny" target.
type Backend struct{}

// Name implements codegen.Backend.
func (*Backend) Name() string { return "cpptiny" }

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

var tmpl = template.Must(template.New("cpptiny").Funcs(template.FuncMap{
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
		return "", fmt.Errorf("cpptiny backend: %w", err)
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
	writeOp(&sb, "        ", f.Name, f.Op)
	return strings.TrimRight(sb.String(), "\n")
}

func writeOp(sb *strings.Builder, indent, expr string, op *wire.Op) {
	switch op.Kind {
	case wire.OpBool:
		fmt.Fprintf(sb, "%sif (s.PutU8(%s ? 1 : 0) != bkl::kOk) return bkl::kErrWrite;\n", indent, expr)
	case wire.OpPrimitive, wire.OpEnum:
		fmt.Fprintf(sb, "%sif (s.PutU%d(static_cast<uint%d_t>(%s)) != bkl::kOk) return bkl::kErrWrite;\n", indent, widthOf(op.Primitive)*8, widthOf(op.Primitive)*8, expr)
	case wire.OpString:
		fmt.Fprintf(sb, "%sif (s.PutCStr(%s.data(), %d) != bkl::kOk) return bkl::kErrWrite;\n", indent, expr, op.Capacity)
	case wire.OpBytes:
		fmt.Fprintf(sb, "%sif (s.PutBytes(%s.data(), %s.size()) != bkl::kOk) return bkl::kErrWrite;\n", indent, expr, expr)
	case wire.OpStruct:
		fmt.Fprintf(sb, "%s{ int _r = %s.Pack(s); if (_r != bkl::kOk) return _r; }\n", indent, expr)
	case wire.OpArray:
		fmt.Fprintf(sb, "%sif (s.PutU8(static_cast<uint8_t>(%s.size())) != bkl::kOk) return bkl::kErrWrite;\n", indent, expr)
		fmt.Fprintf(sb, "%sfor (size_t _i = 0; _i < %s.size(); _i++) {\n", indent, expr)
		writeOp(sb, indent+"    ", expr+"[_i]", op.Elem)
		fmt.Fprintf(sb, "%s}\n", indent)
	}
}

func unpackField(f fieldIR) string {
	var sb strings.Builder
	readOp(&sb, "        ", f.Name, f.Op)
	return strings.TrimRight(sb.String(), "\n")
}

func readOp(sb *strings.Builder, indent, expr string, op *wire.Op) {
	switch op.Kind {
	case wire.OpBool:
		fmt.Fprintf(sb, "%s{ uint8_t _v; if (s.GetU8(&_v) != bkl::kOk) return bkl::kErrRead; %s = _v != 0; }\n", indent, expr)
	case wire.OpPrimitive, wire.OpEnum:
		w := widthOf(op.Primitive) * 8
		fmt.Fprintf(sb, "%s{ uint%d_t _v; if (s.GetU%d(&_v) != bkl::kOk) return bkl::kErrRead; %s = static_cast<decltype(%s)>(_v); }\n", indent, w, w, expr, expr)
	case wire.OpString:
		fmt.Fprintf(sb, "%sif (s.GetCStr(%s.mutable_data(), %d) != bkl::kOk) return bkl::kErrRead;\n", indent, expr, op.Capacity)
	case wire.OpBytes:
		fmt.Fprintf(sb, "%sif (s.GetBytes(%s.mutable_data(), %d, %s.mutable_size()) != bkl::kOk) return bkl::kErrRead;\n", indent, expr, op.Capacity, expr)
	case wire.OpStruct:
		fmt.Fprintf(sb, "%s{ int _r = %s.Unpack(s); if (_r != bkl::kOk) return _r; }\n", indent, expr)
	case wire.OpArray:
		fmt.Fprintf(sb, "%s{ uint8_t _n; if (s.GetU8(&_n) != bkl::kOk) return bkl::kErrRead;\n", indent)
		fmt.Fprintf(sb, "%s  if (_n > %d) return bkl::kErrCapacity;\n", indent, op.Capacity)
		fmt.Fprintf(sb, "%s  %s.SetSize(_n);\n", indent, expr)
		fmt.Fprintf(sb, "%s  for (uint8_t _i = 0; _i < _n; _i++) {\n", indent)
		readOp(sb, indent+"    ", expr+"[_i]", op.Elem)
		fmt.Fprintf(sb, "%s  }\n%s}\n", indent, indent)
	}
}
