package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging across the compiler pipeline.
// Use these keys consistently so log lines about the lex, parse, semantic,
// and codegen stages can be correlated and queried uniformly.
const (
	// ========================================================================
	// Compile Unit
	// ========================================================================
	KeySourceFile = "source_file" // path to the .bakelite file being processed
	KeyStage      = "stage"       // lex, parse, semantic, codegen
	KeyLine       = "line"        // 1-based source line
	KeyColumn     = "column"      // 1-based source column
	KeyToken      = "token"       // offending or current token text

	// ========================================================================
	// Schema
	// ========================================================================
	KeyDeclKind  = "decl_kind"  // enum, struct, protocol
	KeyDeclName  = "decl_name"  // name of the declaration being analyzed
	KeyFieldName = "field_name" // name of the field being analyzed
	KeyMaxSize   = "max_size"   // computed maximum wire size in bytes

	// ========================================================================
	// Code Generation
	// ========================================================================
	KeyBackend    = "backend" // python, ctiny, cpptiny
	KeyOutputPath = "output_path"
	KeyMessage    = "message" // message struct name
	KeyMessageID  = "message_id"
	KeyBytesOut   = "bytes_out" // size of emitted artifact

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms"
	KeyError      = "error"
)

// SourceFile returns a slog.Attr for the input IDL path.
func SourceFile(path string) slog.Attr {
	return slog.String(KeySourceFile, path)
}

// Stage returns a slog.Attr naming the pipeline stage emitting the record.
func Stage(stage string) slog.Attr {
	return slog.String(KeyStage, stage)
}

// Position returns line/column attrs for a diagnostic.
func Position(line, column int) []slog.Attr {
	return []slog.Attr{slog.Int(KeyLine, line), slog.Int(KeyColumn, column)}
}

// Token returns a slog.Attr for the token text involved in a diagnostic.
func Token(text string) slog.Attr {
	return slog.String(KeyToken, text)
}

// DeclKind returns a slog.Attr for the kind of declaration (enum, struct, protocol).
func DeclKind(kind string) slog.Attr {
	return slog.String(KeyDeclKind, kind)
}

// DeclName returns a slog.Attr for the declaration name under analysis.
func DeclName(name string) slog.Attr {
	return slog.String(KeyDeclName, name)
}

// FieldName returns a slog.Attr for the struct field under analysis.
func FieldName(name string) slog.Attr {
	return slog.String(KeyFieldName, name)
}

// MaxSize returns a slog.Attr for a computed maximum wire size.
func MaxSize(n int) slog.Attr {
	return slog.Int(KeyMaxSize, n)
}

// Backend returns a slog.Attr naming the target backend.
func Backend(name string) slog.Attr {
	return slog.String(KeyBackend, name)
}

// OutputPath returns a slog.Attr for a generated artifact's path.
func OutputPath(path string) slog.Attr {
	return slog.String(KeyOutputPath, path)
}

// Message returns a slog.Attr for a message struct name.
func Message(name string) slog.Attr {
	return slog.String(KeyMessage, name)
}

// MessageID returns a slog.Attr for an assigned message id.
func MessageID(id int) slog.Attr {
	return slog.Int(KeyMessageID, id)
}

// BytesOut returns a slog.Attr for the size of an emitted artifact.
func BytesOut(n int) slog.Attr {
	return slog.Int(KeyBytesOut, n)
}

// DurationMs returns a slog.Attr for duration in milliseconds.
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error, or a zero Attr for nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Handle formats an arbitrary byte slice as a hex-encoded attr. Kept for
// callers that want to log raw frame or payload bytes during debugging.
func Handle(b []byte) slog.Attr {
	return slog.String("bytes", fmt.Sprintf("%x", b))
}
