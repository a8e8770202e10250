// Package wire describes, independent of any target language, how each
// resolved schema type is laid out on the wire. Every backend walks the
// same Op tree to emit its pack/unpack code, so that wire-breaking drift
// between the generic host backend and the tiny backends cannot occur
// structurally: there is exactly one place that says what the bytes look
// like, and backends only decide how to say it in their target language.
package wire

import "github.com/bakelite-lang/bakelite/internal/schema"

// OpKind tags the shape of one encoding step.
type OpKind int

const (
	OpPrimitive OpKind = iota
	OpBool
	OpEnum
	OpBytes
	OpString
	OpStruct
	OpArray
)

func (k OpKind) String() string {
	switch k {
	case OpPrimitive:
		return "primitive"
	case OpBool:
		return "bool"
	case OpEnum:
		return "enum"
	case OpBytes:
		return "bytes"
	case OpString:
		return "string"
	case OpStruct:
		return "struct"
	case OpArray:
		return "array"
	}
	return "unknown"
}

// Op is one node of a type's wire description. Exactly the fields
// relevant to Kind are populated; the rest are zero.
type Op struct {
	Kind OpKind

	// OpPrimitive, OpEnum
	Primitive schema.PrimitiveKind

	// OpEnum, OpStruct: the referenced declaration's name, so a backend
	// can emit a call to that type's own pack/unpack rather than
	// inlining it.
	TypeName string

	// OpBytes, OpString, OpArray
	Capacity int // bytes/string capacity, or array length for OpArray

	// OpArray
	Elem *Op

	MaxSize int // mirrors schema.Type.MaxSize() for convenience in templates
}

// FromType converts a resolved schema.Type into its wire Op description.
func FromType(t schema.Type) *Op {
	switch v := t.(type) {
	case schema.Primitive:
		return fromPrimitive(v)
	case *schema.Enum:
		return &Op{Kind: OpEnum, Primitive: v.Underlying.Kind, TypeName: v.Name, MaxSize: v.MaxSize()}
	case schema.Bytes:
		return &Op{Kind: OpBytes, Capacity: v.Capacity, MaxSize: v.MaxSize()}
	case schema.String:
		return &Op{Kind: OpString, Capacity: v.Capacity, MaxSize: v.MaxSize()}
	case *schema.Struct:
		return &Op{Kind: OpStruct, TypeName: v.Name, MaxSize: v.MaxSize()}
	case schema.Array:
		return &Op{Kind: OpArray, Capacity: v.Len, Elem: FromType(v.Elem), MaxSize: v.MaxSize()}
	}
	return nil
}

func fromPrimitive(p schema.Primitive) *Op {
	if p.Kind == schema.Bool {
		return &Op{Kind: OpBool, Primitive: p.Kind, MaxSize: 1}
	}
	return &Op{Kind: OpPrimitive, Primitive: p.Kind, MaxSize: p.MaxSize()}
}

// StructLayout is the ordered field list a backend needs to emit one
// struct's pack/unpack functions.
type StructLayout struct {
	Name   string
	Fields []FieldLayout
}

// FieldLayout pairs a field's name with its wire Op.
type FieldLayout struct {
	Name string
	Op   *Op
}

// BuildStructLayout converts a resolved schema.Struct into its layout.
func BuildStructLayout(s *schema.Struct) StructLayout {
	layout := StructLayout{Name: s.Name}
	for _, f := range s.Fields {
		layout.Fields = append(layout.Fields, FieldLayout{Name: f.Name, Op: FromType(f.Type)})
	}
	return layout
}

// EnumLayout is the ordered member list a backend needs to emit one
// enum's declaration.
type EnumLayout struct {
	Name       string
	Underlying schema.PrimitiveKind
	Members    []schema.EnumValue
}

// BuildEnumLayout converts a resolved schema.Enum into its layout.
func BuildEnumLayout(e *schema.Enum) EnumLayout {
	return EnumLayout{Name: e.Name, Underlying: e.Underlying.Kind, Members: e.Values}
}

// Model is the full per-schema wire description handed to every backend.
type Model struct {
	Enums    []EnumLayout
	Structs  []StructLayout
	Protocol *schema.Protocol
}

// Build converts a frozen Schema into a Model, preserving declaration
// order so generated output is deterministic across runs.
func Build(sch *schema.Schema) Model {
	m := Model{Protocol: sch.Protocol}
	for _, name := range sch.EnumOrder {
		m.Enums = append(m.Enums, BuildEnumLayout(sch.Enums[name]))
	}
	for _, name := range sch.StructOrder {
		m.Structs = append(m.Structs, BuildStructLayout(sch.Structs[name]))
	}
	return m
}
