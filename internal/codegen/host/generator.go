package host

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/bakelite-lang/bakelite/internal/codegen"
	"github.com/bakelite-lang/bakelite/internal/wire"
)

func init() {
	codegen.Register(&Backend{})
}

// Backend is the generic-host (Python) target.
type Backend struct{}

// Name implements codegen.Backend.
func (*Backend) Name() string { return "python" }

type fileIR struct {
	ProtocolName string
	Enums        []enumIR
	Structs      []structIR
	Protocol     *protocolIR
}

type protocolIR struct {
	Messages []messageIR
}

type messageIR struct {
	ID     int
	Struct struct{ Name string }
}

var tmpl = template.Must(template.New("host").Funcs(template.FuncMap{
	"packField":   packField,
	"unpackField": unpackField,
}).Parse(fileTemplate))

// Generate implements codegen.Backend.
func (*Backend) Generate(model wire.Model) (string, error) {
	fir := fileIR{ProtocolName: "bakelite"}
	for _, e := range model.Enums {
		fir.Enums = append(fir.Enums, buildEnumIR(e))
	}
	for _, s := range model.Structs {
		fir.Structs = append(fir.Structs, buildStructIR(s))
	}
	if model.Protocol != nil {
		fir.ProtocolName = model.Protocol.Name
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
		return "", fmt.Errorf("host backend: %w", err)
	}
	return sb.String(), nil
}

// packField renders the Python statements that append field f's encoding
// to the bytearray `out`, indented for the struct template's pack() body.
func packField(f fieldIR) string {
	var sb strings.Builder
	writeOp(&sb, "        ", "self."+f.Name, f.Op)
	return strings.TrimRight(sb.String(), "\n")
}

func writeOp(sb *strings.Builder, indent, expr string, op *wire.Op) {
	switch op.Kind {
	case wire.OpBool:
		fmt.Fprintf(sb, "%sout += b'\\x01' if %s else b'\\x00'\n", indent, expr)
	case wire.OpPrimitive, wire.OpEnum:
		fmt.Fprintf(sb, "%sout += struct.pack('<%s', %s)\n", indent, structFmt[op.Primitive], expr)
	case wire.OpBytes:
		fmt.Fprintf(sb, "%sout += bytes([len(%s)]) + %s\n", indent, expr, expr)
	case wire.OpString:
		fmt.Fprintf(sb, "%s_s = %s.encode('utf-8')[:%d]\n", indent, expr, op.Capacity-1)
		fmt.Fprintf(sb, "%sout += _s + b'\\x00' * (%d - len(_s))\n", indent, op.Capacity)
	case wire.OpStruct:
		fmt.Fprintf(sb, "%sout += %s.pack()\n", indent, expr)
	case wire.OpArray:
		fmt.Fprintf(sb, "%sout += bytes([len(%s)])\n", indent, expr)
		fmt.Fprintf(sb, "%sfor _e in %s:\n", indent, expr)
		writeOp(sb, indent+"    ", "_e", op.Elem)
	}
}

// unpackField renders the Python statements that decode field f from
// `buf` starting at `pos`, binding a local variable named after the
// field, for the struct template's unpack() body.
func unpackField(f fieldIR) string {
	var sb strings.Builder
	readOp(&sb, "        ", f.Name, f.Op)
	return strings.TrimRight(sb.String(), "\n")
}

func readOp(sb *strings.Builder, indent, name string, op *wire.Op) {
	switch op.Kind {
	case wire.OpBool:
		fmt.Fprintf(sb, "%s%s = buf[pos] != 0\n", indent, name)
		fmt.Fprintf(sb, "%spos += 1\n", indent)
	case wire.OpPrimitive, wire.OpEnum:
		fmt.Fprintf(sb, "%s%s, = struct.unpack_from('<%s', buf, pos)\n", indent, name, structFmt[op.Primitive])
		fmt.Fprintf(sb, "%spos += %d\n", indent, op.MaxSize)
	case wire.OpBytes:
		fmt.Fprintf(sb, "%s_n = buf[pos]; pos += 1\n", indent)
		fmt.Fprintf(sb, "%s%s = bytes(buf[pos:pos+_n]); pos += _n\n", indent, name)
	case wire.OpString:
		fmt.Fprintf(sb, "%s_z = buf.index(0, pos, pos+%d)\n", indent, op.Capacity)
		fmt.Fprintf(sb, "%s%s = buf[pos:_z].decode('utf-8'); pos += %d\n", indent, name, op.Capacity)
	case wire.OpStruct:
		fmt.Fprintf(sb, "%s%s = %s.unpack(buf[pos:pos+%d]); pos += %d\n", indent, name, op.TypeName, op.MaxSize, op.MaxSize)
	case wire.OpArray:
		fmt.Fprintf(sb, "%s_n = buf[pos]; pos += 1\n", indent)
		fmt.Fprintf(sb, "%s%s = []\n", indent, name)
		fmt.Fprintf(sb, "%sfor _ in range(_n):\n", indent)
		readOp(sb, indent+"    ", "_elem", op.Elem)
		fmt.Fprintf(sb, "%s    %s.append(_elem)\n", indent, name)
	}
}
