package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectPrintsTables(t *testing.T) {
	fs := withMemFS(t)
	require.NoError(t, afero.WriteFile(fs, "ack.bakelite", []byte(genTestSource), 0o644))

	root := GetRootCmd()
	root.SetArgs([]string{"inspect", "-i", "ack.bakelite"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Ack")
	assert.Contains(t, out.String(), "Structs:")
	assert.Contains(t, out.String(), "Protocol:")
}

func TestInspectJSONSchema(t *testing.T) {
	fs := withMemFS(t)
	require.NoError(t, afero.WriteFile(fs, "ack.bakelite", []byte(genTestSource), 0o644))

	root := GetRootCmd()
	root.SetArgs([]string{"inspect", "-i", "ack.bakelite", "--json"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "\"$schema\"")
	assert.Contains(t, out.String(), "message_offset")
}

func TestInspectSurfacesSemanticErrors(t *testing.T) {
	fs := withMemFS(t)
	bad := `
struct Bad {
    code: NoSuchType
}
`
	require.NoError(t, afero.WriteFile(fs, "bad.bakelite", []byte(bad), 0o644))

	root := GetRootCmd()
	root.SetArgs([]string{"inspect", "-i", "bad.bakelite"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	assert.Error(t, root.Execute())
}
