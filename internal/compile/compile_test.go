package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ackSource = `
struct Ack {
    code: uint8
}

protocol P {
    max_length = 64
    crc = CRC8
    messages { Ack = 1 }
}
`

func TestGenerateEachBackend(t *testing.T) {
	for _, lang := range []string{"python", "ctiny", "cpptiny"} {
		out, err := Generate(ackSource, lang)
		require.NoError(t, err, "lang=%s", lang)
		assert.Contains(t, out, "Ack")
	}
}

func TestGenerateRejectsUnknownLanguage(t *testing.T) {
	_, err := Generate(ackSource, "rust")
	assert.Error(t, err)
}

func TestGenerateSurfacesParseErrors(t *testing.T) {
	_, err := Generate("struct {{{ broken", "python")
	assert.Error(t, err)
}

func TestGenerateSurfacesSemanticErrors(t *testing.T) {
	src := `
struct Bad {
    code: NoSuchType
}
`
	_, err := Generate(src, "python")
	assert.Error(t, err)
}
