// Package schema builds and validates the typed schema graph consumed by
// every backend: it resolves the names parsed by internal/parser, computes
// each type's maximum wire size, and enforces the invariants in the
// language reference (unique non-zero message ids, no cyclic aggregates,
// capacities that fit the one-byte length prefix, and so on).
package schema

import "fmt"

// PrimitiveKind enumerates the fixed-width scalar types of the wire format.
type PrimitiveKind int

const (
	Int8 PrimitiveKind = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Bool
)

var primitiveNames = map[string]PrimitiveKind{
	"int8": Int8, "int16": Int16, "int32": Int32, "int64": Int64,
	"uint8": Uint8, "uint16": Uint16, "uint32": Uint32, "uint64": Uint64,
	"float32": Float32, "float64": Float64, "bool": Bool,
}

var primitiveWidths = map[PrimitiveKind]int{
	Int8: 1, Int16: 2, Int32: 4, Int64: 8,
	Uint8: 1, Uint16: 2, Uint32: 4, Uint64: 8,
	Float32: 4, Float64: 8, Bool: 1,
}

var primitiveDisplay = map[PrimitiveKind]string{
	Int8: "int8", Int16: "int16", Int32: "int32", Int64: "int64",
	Uint8: "uint8", Uint16: "uint16", Uint32: "uint32", Uint64: "uint64",
	Float32: "float32", Float64: "float64", Bool: "bool",
}

func (k PrimitiveKind) String() string { return primitiveDisplay[k] }

// IsInteger reports whether k is an integer kind (eligible as an enum's
// underlying type).
func (k PrimitiveKind) IsInteger() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// Signed reports whether k is a signed integer kind.
func (k PrimitiveKind) Signed() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// Range returns the representable [min, max] for an integer kind.
func (k PrimitiveKind) Range() (min, max int64) {
	switch k {
	case Int8:
		return -128, 127
	case Int16:
		return -32768, 32767
	case Int32:
		return -2147483648, 2147483647
	case Int64:
		return -9223372036854775808, 9223372036854775807
	case Uint8:
		return 0, 255
	case Uint16:
		return 0, 65535
	case Uint32:
		return 0, 4294967295
	case Uint64:
		return 0, 9223372036854775807 // conservatively clamp to int64 max; wider values are parsed separately
	}
	return 0, 0
}

// Type is implemented by every resolved wire type. MaxSize returns the
// worst-case number of bytes the type occupies on the wire, per the rules
// in §4.2 of the language reference.
type Type interface {
	MaxSize() int
	String() string
}

// Primitive is a fixed-width scalar.
type Primitive struct {
	Kind PrimitiveKind
}

func (p Primitive) MaxSize() int    { return primitiveWidths[p.Kind] }
func (p Primitive) String() string  { return p.Kind.String() }

// Bytes is a capacity-bounded variable-length byte string: one length byte
// followed by at most Capacity data bytes.
type Bytes struct {
	Capacity int
}

func (b Bytes) MaxSize() int   { return 1 + b.Capacity }
func (b Bytes) String() string { return fmt.Sprintf("bytes[%d]", b.Capacity) }

// String is a capacity-bounded, null-terminated string. The terminator is
// included in Capacity: a String{16} can hold at most 15 content bytes
// plus the trailing 0x00.
type String struct {
	Capacity int
}

func (s String) MaxSize() int   { return s.Capacity }
func (s String) String() string { return fmt.Sprintf("string[%d]", s.Capacity) }

// EnumValue is one resolved (name, value) pair of an Enum.
type EnumValue struct {
	Name  string
	Value int64
}

// Enum is a named set of integer constants sharing an underlying
// primitive width.
type Enum struct {
	Name       string
	Underlying Primitive
	Values     []EnumValue
}

func (e *Enum) MaxSize() int   { return e.Underlying.MaxSize() }
func (e *Enum) String() string { return e.Name }

// Field is one member of a Struct, in declaration order.
type Field struct {
	Name string
	Type Type
}

// Struct is a named, ordered aggregate of fields with no padding.
type Struct struct {
	Name   string
	Fields []Field
}

func (s *Struct) MaxSize() int {
	total := 0
	for _, f := range s.Fields {
		total += f.Type.MaxSize()
	}
	return total
}

func (s *Struct) String() string { return s.Name }

// Array is a length-prefixed, fixed-capacity sequence of Elem: one length
// byte followed by at most Len encoded elements.
type Array struct {
	Elem Type
	Len  int
}

func (a Array) MaxSize() int   { return 1 + a.Len*a.Elem.MaxSize() }
func (a Array) String() string { return fmt.Sprintf("%s[%d]", a.Elem, a.Len) }

// Framing selects whether the protocol's frames are COBS-encoded.
type Framing int

const (
	FramingNone Framing = iota
	FramingCOBS
)

func (f Framing) String() string {
	if f == FramingCOBS {
		return "COBS"
	}
	return "None"
}

// CRCWidth selects the trailer checksum algorithm.
type CRCWidth int

const (
	CRCNone CRCWidth = iota
	CRC8
	CRC16
	CRC32
)

// Bytes returns the width in bytes of the configured CRC trailer.
func (c CRCWidth) Bytes() int {
	switch c {
	case CRC8:
		return 1
	case CRC16:
		return 2
	case CRC32:
		return 4
	}
	return 0
}

func (c CRCWidth) String() string {
	switch c {
	case CRC8:
		return "CRC8"
	case CRC16:
		return "CRC16"
	case CRC32:
		return "CRC32"
	}
	return "None"
}

// Message binds a declared Struct to a non-zero message id.
type Message struct {
	ID     int
	Struct *Struct
}

// Protocol is the frozen, validated description of the wire protocol: how
// frames are bounded, framed, checksummed, and dispatched by id.
type Protocol struct {
	Name      string
	MaxLength int
	Framing   Framing
	CRC       CRCWidth
	Messages  []Message // ordered by ascending ID for deterministic codegen
}

// MessageOffset returns cobs_overhead(max_length + crc_width), the fixed
// offset within a framer buffer at which a zero-copy overlay begins. It is
// defined here, alongside the schema it describes, because every backend
// must agree on it bit-for-bit; internal/refcodec duplicates the same
// formula for the reference codec used by conformance tests.
func (p *Protocol) MessageOffset() int {
	return cobsOverhead(p.MaxLength + p.CRC.Bytes())
}

// cobsOverhead returns n/254 + 1, the number of code bytes COBS adds to an
// n-byte payload: one code byte per run of up to 254 non-zero bytes, plus
// the final run's code byte. internal/refcodec.COBSOverhead computes the
// same quantity for the reference codec; both must agree bit-for-bit.
func cobsOverhead(n int) int {
	return n/254 + 1
}

// Schema is the frozen graph produced by Resolve: every declared enum and
// struct, plus the single protocol block, fully resolved and validated.
type Schema struct {
	Enums    map[string]*Enum
	Structs  map[string]*Struct
	Protocol *Protocol

	// EnumOrder and StructOrder preserve declaration order, since backends
	// must emit types in a stable, deterministic order.
	EnumOrder   []string
	StructOrder []string
}
