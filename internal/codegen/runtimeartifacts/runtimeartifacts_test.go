package runtimeartifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCTiny(t *testing.T) {
	out, err := Generate("ctiny")
	require.NoError(t, err)
	assert.Contains(t, out, "bkl_stream_t")
	assert.Contains(t, out, "bkl_cobs_encode")
	assert.Contains(t, out, "bkl_cobs_decode")
	assert.Contains(t, out, "bkl_crc8")
	assert.Contains(t, out, "bkl_framer_push_byte")
	assert.Contains(t, out, "n / 254 + 1")

	name, err := Filename("ctiny")
	require.NoError(t, err)
	assert.Equal(t, "bakelite_runtime.h", name)
}

func TestGenerateCppTiny(t *testing.T) {
	out, err := Generate("cpptiny")
	require.NoError(t, err)
	assert.Contains(t, out, "namespace bkl")
	assert.Contains(t, out, "class Stream")
	assert.Contains(t, out, "class Framer")
	assert.Contains(t, out, "inline int CobsEncode(")

	name, err := Filename("cpptiny")
	require.NoError(t, err)
	assert.Equal(t, "bakelite_runtime.hpp", name)
}

func TestGenerateUnknownLanguage(t *testing.T) {
	_, err := Generate("rust")
	assert.Error(t, err)

	_, err = Filename("rust")
	assert.Error(t, err)
}
