package cpptiny

import (
	"testing"

	"github.com/bakelite-lang/bakelite/internal/parser"
	"github.com/bakelite-lang/bakelite/internal/schema"
	"github.com/bakelite-lang/bakelite/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCPPSource(t *testing.T) {
	file, err := parser.Parse(`
struct Ack {
    code: uint8
    name: string[8]
}

protocol P {
    max_length = 64
    crc = CRC8
    messages { Ack = 1 }
}
`)
	require.NoError(t, err)
	sch, err := schema.Resolve(file)
	require.NoError(t, err)

	out, err := (&Backend{}).Generate(wire.Build(sch))
	require.NoError(t, err)

	assert.Contains(t, out, "class Ack {")
	assert.Contains(t, out, "bkl::InlineString<8> name;")
	assert.Contains(t, out, "int Pack(bkl::Stream &s) const {")
	assert.Contains(t, out, "int Unpack(bkl::Stream &s) {")
	assert.Contains(t, out, "constexpr uint8_t kMsgIdAck = 1;")
}

func TestBackendName(t *testing.T) {
	assert.Equal(t, "cpptiny", (&Backend{}).Name())
}
