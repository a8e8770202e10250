package schema

import (
	"fmt"
	"sort"

	"github.com/bakelite-lang/bakelite/internal/ast"
	"github.com/bakelite-lang/bakelite/internal/token"
)

// Error is a semantic error tied to the declaration that caused it.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func errf(pos token.Position, format string, args ...any) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

const (
	maxCapacity  = 255 // one-byte length prefix
	maxArrayLen  = 255
	maxMessageID = 255
)

// resolver carries the state threaded through the two-pass resolution
// described in the language reference: first every enum/struct name is
// registered so forward references resolve, then each declaration's body
// is resolved and validated against the now-complete name table.
type resolver struct {
	enumDecls   map[string]*ast.EnumDecl
	structDecls map[string]*ast.StructDecl

	schema *Schema

	// structDeps records, for cycle detection, which other structs a
	// struct's fields reference (directly or through an array wrapper).
	structDeps map[string][]string
}

// Resolve builds and validates a Schema from a parsed file. It is the sole
// entry point into this package.
func Resolve(file *ast.File) (*Schema, error) {
	r := &resolver{
		enumDecls:   map[string]*ast.EnumDecl{},
		structDecls: map[string]*ast.StructDecl{},
		structDeps:  map[string][]string{},
		schema: &Schema{
			Enums:   map[string]*Enum{},
			Structs: map[string]*Struct{},
		},
	}

	var protoDecl *ast.ProtocolDecl
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.EnumDecl:
			if _, dup := r.enumDecls[d.Name]; dup {
				return nil, errf(d.Pos, "enum %q redeclared", d.Name)
			}
			if _, dup := r.structDecls[d.Name]; dup {
				return nil, errf(d.Pos, "%q redeclared as enum, already a struct", d.Name)
			}
			r.enumDecls[d.Name] = d
			r.schema.EnumOrder = append(r.schema.EnumOrder, d.Name)
		case *ast.StructDecl:
			if _, dup := r.structDecls[d.Name]; dup {
				return nil, errf(d.Pos, "struct %q redeclared", d.Name)
			}
			if _, dup := r.enumDecls[d.Name]; dup {
				return nil, errf(d.Pos, "%q redeclared as struct, already an enum", d.Name)
			}
			r.structDecls[d.Name] = d
			r.schema.StructOrder = append(r.schema.StructOrder, d.Name)
		case *ast.ProtocolDecl:
			if protoDecl != nil {
				return nil, errf(d.Pos, "only one protocol block is allowed, first declared at %s", protoDecl.Pos)
			}
			protoDecl = d
		default:
			return nil, errf(decl.Position(), "unrecognized declaration")
		}
	}

	for _, name := range r.schema.EnumOrder {
		e, err := r.resolveEnum(r.enumDecls[name])
		if err != nil {
			return nil, err
		}
		r.schema.Enums[name] = e
	}

	// Pass 2a: resolve struct field types without yet checking aggregate
	// cycles, so every Struct placeholder exists before MaxSize is needed.
	for _, name := range r.schema.StructOrder {
		s := &Struct{Name: name}
		r.schema.Structs[name] = s
	}
	for _, name := range r.schema.StructOrder {
		if err := r.resolveStructFields(r.structDecls[name], r.schema.Structs[name]); err != nil {
			return nil, err
		}
	}

	if err := r.checkStructCycles(); err != nil {
		return nil, err
	}

	if protoDecl == nil {
		return r.schema, nil
	}
	proto, err := r.resolveProtocol(protoDecl)
	if err != nil {
		return nil, err
	}
	r.schema.Protocol = proto

	return r.schema, nil
}

func (r *resolver) resolveEnum(decl *ast.EnumDecl) (*Enum, error) {
	if decl.Underlying.HasArray || decl.Underlying.HasCapacity {
		return nil, errf(decl.Pos, "enum %q underlying type must be a bare integer primitive", decl.Name)
	}
	kind, ok := primitiveNames[decl.Underlying.Name]
	if !ok || !kind.IsInteger() {
		return nil, errf(decl.Underlying.Pos, "enum %q underlying type %q is not an integer primitive", decl.Name, decl.Underlying.Name)
	}
	lo, hi := kind.Range()

	e := &Enum{Name: decl.Name, Underlying: Primitive{Kind: kind}}
	seenNames := map[string]bool{}
	seenValues := map[int64]string{}
	for _, m := range decl.Members {
		if seenNames[m.Name] {
			return nil, errf(m.Pos, "enum %q member %q declared more than once", decl.Name, m.Name)
		}
		seenNames[m.Name] = true
		if m.Value < lo || m.Value > hi {
			return nil, errf(m.Pos, "enum %q member %q value %d out of range for %s", decl.Name, m.Name, m.Value, kind)
		}
		if other, dup := seenValues[m.Value]; dup {
			return nil, errf(m.Pos, "enum %q members %q and %q share value %d", decl.Name, other, m.Name, m.Value)
		}
		seenValues[m.Value] = m.Name
		e.Values = append(e.Values, EnumValue{Name: m.Name, Value: m.Value})
	}
	if len(e.Values) == 0 {
		return nil, errf(decl.Pos, "enum %q has no members", decl.Name)
	}
	return e, nil
}

// resolveType resolves an ast.TypeRef to a schema.Type, recording a struct
// dependency edge in structDeps when owner references another struct
// (directly or via an array), for later cycle detection.
func (r *resolver) resolveType(owner string, ref ast.TypeRef) (Type, error) {
	base, err := r.resolveBaseType(owner, ref)
	if err != nil {
		return nil, err
	}
	if !ref.HasArray {
		return base, nil
	}
	if ref.ArrayLen < 0 || ref.ArrayLen > maxArrayLen {
		return nil, errf(ref.Pos, "array length %d exceeds the one-byte length prefix (max %d)", ref.ArrayLen, maxArrayLen)
	}
	return Array{Elem: base, Len: ref.ArrayLen}, nil
}

func (r *resolver) resolveBaseType(owner string, ref ast.TypeRef) (Type, error) {
	switch ref.Name {
	case "bytes":
		if !ref.HasCapacity {
			return nil, errf(ref.Pos, "bytes requires a capacity, e.g. bytes[32]")
		}
		if ref.Capacity < 0 || ref.Capacity > maxCapacity {
			return nil, errf(ref.Pos, "bytes capacity %d exceeds the one-byte length prefix (max %d)", ref.Capacity, maxCapacity)
		}
		return Bytes{Capacity: ref.Capacity}, nil
	case "string":
		if !ref.HasCapacity {
			return nil, errf(ref.Pos, "string requires a capacity, e.g. string[16]")
		}
		if ref.Capacity < 0 || ref.Capacity > maxCapacity {
			return nil, errf(ref.Pos, "string capacity %d exceeds the one-byte length prefix (max %d)", ref.Capacity, maxCapacity)
		}
		return String{Capacity: ref.Capacity}, nil
	}
	if ref.HasCapacity {
		return nil, errf(ref.Pos, "only bytes and string take a capacity; %q does not", ref.Name)
	}
	if kind, ok := primitiveNames[ref.Name]; ok {
		return Primitive{Kind: kind}, nil
	}
	if _, ok := r.enumDecls[ref.Name]; ok {
		return r.schema.Enums[ref.Name], nil
	}
	if _, ok := r.structDecls[ref.Name]; ok {
		r.structDeps[owner] = append(r.structDeps[owner], ref.Name)
		return r.schema.Structs[ref.Name], nil
	}
	return nil, errf(ref.Pos, "undefined type %q", ref.Name)
}

func (r *resolver) resolveStructFields(decl *ast.StructDecl, out *Struct) error {
	seen := map[string]bool{}
	for _, fd := range decl.Fields {
		if seen[fd.Name] {
			return errf(fd.Pos, "struct %q field %q declared more than once", decl.Name, fd.Name)
		}
		seen[fd.Name] = true
		typ, err := r.resolveType(decl.Name, fd.Type)
		if err != nil {
			return err
		}
		out.Fields = append(out.Fields, Field{Name: fd.Name, Type: typ})
	}
	if len(out.Fields) == 0 {
		return errf(decl.Pos, "struct %q has no fields", decl.Name)
	}
	return nil
}

// checkStructCycles rejects any struct that contains itself, directly or
// transitively, as a field (or as an array element) — such a type has no
// finite maximum wire size.
func (r *resolver) checkStructCycles() error {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := map[string]int{}
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case black:
			return nil
		case grey:
			cycle := append(append([]string{}, path...), name)
			return errf(r.structDecls[name].Pos, "cyclic struct definition: %v", cycle)
		}
		color[name] = grey
		path = append(path, name)
		for _, dep := range r.structDeps[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		color[name] = black
		return nil
	}

	for _, name := range r.schema.StructOrder {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveProtocol(decl *ast.ProtocolDecl) (*Protocol, error) {
	if !decl.HasMaxLen {
		return nil, errf(decl.Pos, "protocol %q is missing max_length", decl.Name)
	}
	if decl.MaxLength <= 0 || decl.MaxLength > 65535 {
		return nil, errf(decl.Pos, "protocol %q max_length %d is out of range", decl.Name, decl.MaxLength)
	}

	proto := &Protocol{Name: decl.Name, MaxLength: int(decl.MaxLength)}

	switch decl.Framing {
	case "", "COBS":
		proto.Framing = FramingCOBS
	case "None":
		proto.Framing = FramingNone
	default:
		return nil, errf(decl.Pos, "protocol %q has unknown framing %q", decl.Name, decl.Framing)
	}

	switch decl.CRC {
	case "", "None":
		proto.CRC = CRCNone
	case "CRC8":
		proto.CRC = CRC8
	case "CRC16":
		proto.CRC = CRC16
	case "CRC32":
		proto.CRC = CRC32
	default:
		return nil, errf(decl.Pos, "protocol %q has unknown crc %q", decl.Name, decl.CRC)
	}

	seenIDs := map[int64]string{}
	seenNames := map[string]bool{}
	for _, mb := range decl.Messages {
		if mb.ID <= 0 || mb.ID > maxMessageID {
			return nil, errf(mb.Pos, "message %q id %d must be in 1..%d (0 is reserved for NoMessage)", mb.StructName, mb.ID, maxMessageID)
		}
		if other, dup := seenIDs[mb.ID]; dup {
			return nil, errf(mb.Pos, "message id %d used by both %q and %q", mb.ID, other, mb.StructName)
		}
		if seenNames[mb.StructName] {
			return nil, errf(mb.Pos, "struct %q bound to more than one message id", mb.StructName)
		}
		seenIDs[mb.ID] = mb.StructName
		seenNames[mb.StructName] = true

		st, ok := r.schema.Structs[mb.StructName]
		if !ok {
			return nil, errf(mb.Pos, "message %q references undeclared struct %q", mb.StructName, mb.StructName)
		}

		// Payload bound: 1 message-id byte plus the struct's maximum
		// encoded size plus the CRC trailer must fit within max_length.
		// The framer buffer still sizes the CRC as its own region after
		// the payload area (see Protocol.MessageOffset).
		payload := 1 + st.MaxSize() + proto.CRC.Bytes()
		if payload > proto.MaxLength {
			return nil, errf(mb.Pos, "message %q worst-case payload (%d bytes, including the id byte and CRC) exceeds max_length (%d)", mb.StructName, payload, proto.MaxLength)
		}

		proto.Messages = append(proto.Messages, Message{ID: int(mb.ID), Struct: st})
	}

	sort.Slice(proto.Messages, func(i, j int) bool { return proto.Messages[i].ID < proto.Messages[j].ID })

	return proto, nil
}
