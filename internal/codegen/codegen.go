// Package codegen defines the shared Backend interface implemented by one
// package per target runtime. A backend is, per the design notes it is
// grounded on, "a function from the schema graph to source text": it
// receives a frozen wire.Model and returns the generated artifact as a
// string. Backends never encode differently from each other; they share
// the wire model and differ in syntax and in how variable-length fields
// are stored (host containers versus fixed-capacity inline storage).
package codegen

import (
	"fmt"

	"github.com/bakelite-lang/bakelite/internal/wire"
)

// Backend turns a resolved schema into target-language source text.
type Backend interface {
	// Name is the CLI-facing identifier, e.g. "python", "ctiny", "cpptiny".
	Name() string

	// Generate renders one complete source artifact for model.
	Generate(model wire.Model) (string, error)
}

// registry is populated by each backend package's init function via
// Register, so internal/compile only needs to import the backend packages
// for side effects and look them up by name.
var registry = map[string]Backend{}

// Register adds a backend under its Name(). Called from backend package
// init functions.
func Register(b Backend) {
	registry[b.Name()] = b
}

// Get looks up a registered backend by CLI name.
func Get(name string) (Backend, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("codegen: unknown backend %q", name)
	}
	return b, nil
}

// Names returns the registered backend names, for CLI help/validation.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}
