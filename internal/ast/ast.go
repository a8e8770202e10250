// Package ast defines the concrete syntax tree produced by the parser.
//
// The tree is intentionally untyped with respect to the semantic model:
// field and enum-underlying type references are plain names, resolved
// later by internal/schema. This mirrors the two-pass design in the
// language reference (parse, then resolve+validate).
package ast

import "github.com/bakelite-lang/bakelite/internal/token"

// File is the root of a parsed IDL document.
type File struct {
	Decls []Decl
}

// Decl is implemented by every top-level declaration kind.
type Decl interface {
	declNode()
	DeclName() string
	Position() token.Position
}

// Annotation is a collected @name(args...) attached to a declaration. The
// core never interprets annotations; it preserves them on the tree so a
// backend may choose to act on one.
type Annotation struct {
	Name string
	Args []string
	Pos  token.Position
}

// TypeRef names a field's or enum's underlying type, along with any
// capacity/array modifiers.
//
//   uint8            -> Name: "uint8"
//   MyEnum           -> Name: "MyEnum"
//   bytes[32]        -> Name: "bytes", HasCapacity: true, Capacity: 32
//   string[16]       -> Name: "string", HasCapacity: true, Capacity: 16
//   uint8[10]        -> Name: "uint8", HasArray: true, ArrayLen: 10
//   bytes[8][4]      -> Name: "bytes", HasCapacity, Capacity: 8, HasArray, ArrayLen: 4
type TypeRef struct {
	Name        string
	HasCapacity bool
	Capacity    int
	HasArray    bool
	ArrayLen    int
	Pos         token.Position
}

// EnumMember is one `name = value` pair inside an enum block.
type EnumMember struct {
	Name  string
	Value int64
	Pos   token.Position
}

// EnumDecl declares a named integer enumeration.
type EnumDecl struct {
	Name        string
	Underlying  TypeRef
	Members     []EnumMember
	Annotations []Annotation
	Pos         token.Position
}

func (*EnumDecl) declNode()                     {}
func (d *EnumDecl) DeclName() string             { return d.Name }
func (d *EnumDecl) Position() token.Position      { return d.Pos }

// FieldDecl is one field inside a struct block.
type FieldDecl struct {
	Name string
	Type TypeRef
	Pos  token.Position
}

// StructDecl declares a named aggregate of fields.
type StructDecl struct {
	Name        string
	Fields      []FieldDecl
	Annotations []Annotation
	Pos         token.Position
}

func (*StructDecl) declNode()                { }
func (d *StructDecl) DeclName() string        { return d.Name }
func (d *StructDecl) Position() token.Position { return d.Pos }

// MessageBinding assigns a message id to a struct name inside a protocol
// block: `MessageName = 3`.
type MessageBinding struct {
	StructName string
	ID         int64
	Pos        token.Position
}

// ProtocolDecl declares the single protocol block: framing, CRC, max
// length, and the message-id table.
type ProtocolDecl struct {
	Name        string
	MaxLength   int64
	HasMaxLen   bool
	Framing     string // "COBS" or "None"
	CRC         string // "None", "CRC8", "CRC16", "CRC32"
	Messages    []MessageBinding
	Annotations []Annotation
	Pos         token.Position
}

func (*ProtocolDecl) declNode()                { }
func (d *ProtocolDecl) DeclName() string        { return d.Name }
func (d *ProtocolDecl) Position() token.Position { return d.Pos }
