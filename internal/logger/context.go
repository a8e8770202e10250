package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

// logContextKey is the key for CompileContext in context.Context.
var logContextKey = contextKey{}

// CompileContext holds invocation-scoped logging context for a single
// gen/runtime run: which source file is being processed, which pipeline
// stage emitted the record, and which backend (if any) is active.
type CompileContext struct {
	SourceFile string    // input .bakelite path
	Stage      string    // lex, parse, semantic, codegen
	Backend    string    // python, ctiny, cpptiny (empty outside codegen)
	StartTime  time.Time // for duration calculation
}

// WithContext returns a new context carrying the given CompileContext.
func WithContext(ctx context.Context, cc *CompileContext) context.Context {
	return context.WithValue(ctx, logContextKey, cc)
}

// FromContext retrieves the CompileContext from ctx, or nil if not present.
func FromContext(ctx context.Context) *CompileContext {
	if ctx == nil {
		return nil
	}
	cc, _ := ctx.Value(logContextKey).(*CompileContext)
	return cc
}

// NewCompileContext creates a CompileContext for the given source file.
func NewCompileContext(sourceFile string) *CompileContext {
	return &CompileContext{
		SourceFile: sourceFile,
		StartTime:  time.Now(),
	}
}

// Clone creates a copy of the CompileContext.
func (cc *CompileContext) Clone() *CompileContext {
	if cc == nil {
		return nil
	}
	clone := *cc
	return &clone
}

// WithStage returns a copy with the stage set.
func (cc *CompileContext) WithStage(stage string) *CompileContext {
	clone := cc.Clone()
	if clone != nil {
		clone.Stage = stage
	}
	return clone
}

// WithBackend returns a copy with the backend set.
func (cc *CompileContext) WithBackend(backend string) *CompileContext {
	clone := cc.Clone()
	if clone != nil {
		clone.Backend = backend
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds.
func (cc *CompileContext) DurationMs() float64 {
	if cc == nil || cc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(cc.StartTime).Microseconds()) / 1000.0
}
