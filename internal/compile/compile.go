// Package compile wires the front end, semantic model, wire model, and a
// chosen codegen backend into the single pipeline the CLI runs on every
// invocation of "gen": lex+parse, resolve, build the wire model, generate.
package compile

import (
	"fmt"

	"github.com/bakelite-lang/bakelite/internal/codegen"
	_ "github.com/bakelite-lang/bakelite/internal/codegen/cpptiny"
	_ "github.com/bakelite-lang/bakelite/internal/codegen/ctiny"
	_ "github.com/bakelite-lang/bakelite/internal/codegen/host"
	"github.com/bakelite-lang/bakelite/internal/logger"
	"github.com/bakelite-lang/bakelite/internal/parser"
	"github.com/bakelite-lang/bakelite/internal/schema"
	"github.com/bakelite-lang/bakelite/internal/wire"
)

// backendNames maps the CLI-facing language flag to the registry name a
// backend registered itself under.
var backendNames = map[string]string{
	"python":  "python",
	"ctiny":   "ctiny",
	"cpptiny": "cpptiny",
}

// ResolveBackend returns the codegen.Backend for a CLI --lang value.
func ResolveBackend(lang string) (codegen.Backend, error) {
	name, ok := backendNames[lang]
	if !ok {
		return nil, fmt.Errorf("compile: unknown target language %q (want one of %v)", lang, codegen.Names())
	}
	return codegen.Get(name)
}

// Generate runs the full pipeline over source text and returns the
// generated source for the given target language.
func Generate(source, lang string) (string, error) {
	logger.Debug("stage transition", "stage", "lex")
	file, err := parser.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}

	logger.Debug("stage transition", "stage", "semantic")
	sch, err := schema.Resolve(file)
	if err != nil {
		return "", fmt.Errorf("semantic error: %w", err)
	}

	logger.Debug("stage transition", "stage", "codegen", "backend", lang)
	backend, err := ResolveBackend(lang)
	if err != nil {
		return "", err
	}

	model := wire.Build(sch)
	out, err := backend.Generate(model)
	if err != nil {
		return "", fmt.Errorf("codegen error: %w", err)
	}
	return out, nil
}
