package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateToLatest_CurrentIsNoop(t *testing.T) {
	in := []byte("version: 1\nenvironment:\n  mode: prod\n")

	out, err := MigrateToLatest(in, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMigrateToLatest_StampsUnversionedYAML(t *testing.T) {
	out, err := MigrateToLatest([]byte("---\nenvironment:\n  mode: prod\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\nenvironment:\n  mode: prod\n", string(out))

	o, err := DecodeOverride(out, FormatYAML)
	require.NoError(t, err)
	require.NotNil(t, o.Version)
	assert.Equal(t, SchemaVersion, *o.Version)
}

func TestMigrateToLatest_StampsUnversionedTOML(t *testing.T) {
	out, err := MigrateToLatest([]byte("[environment]\nmode = \"test\"\n"), FormatTOML)
	require.NoError(t, err)

	ver, err := peekVersion(out, FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, ver)
}

func TestMigrateToLatest_UnknownVersion(t *testing.T) {
	_, err := MigrateToLatest([]byte("version: 7\n"), FormatYAML)
	assert.ErrorContains(t, err, "unknown config version 7")
}

func TestMigrateToLatest_InvalidDocument(t *testing.T) {
	_, err := MigrateToLatest([]byte("version: [\n"), FormatYAML)
	assert.Error(t, err)
}
