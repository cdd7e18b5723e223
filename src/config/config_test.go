package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{".stagecraft.yml", FormatYAML},
		{"conf/override.YAML", FormatYAML},
		{"stagecraft.toml", FormatTOML},
		{"-", FormatYAML},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFor("config.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("ini")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_YAMLOverride(t *testing.T) {
	path := writeConfig(t, ".stagecraft.yml", `
version: 1
base:
  os:
    provider: official
    name: alpine
    tag: "3.20"
    architecture: arm64
environment:
  mode: prod
  variables:
    APP_ENV: production
runtime:
  orchestration:
    network:
      mode: host
    resources:
      cpu:
        shares: 512
      memory:
        limit: 1073741824
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "alpine:3.20", cfg.Base.OS.Reference())
	assert.Equal(t, ArchARM64, cfg.Base.OS.Architecture)
	assert.Equal(t, ModeProd, cfg.Environment.Mode)
	assert.Equal(t, map[string]string{"APP_ENV": "production"}, cfg.Environment.Variables)
	assert.Equal(t, NetworkHost, cfg.Runtime.Orchestration.Network.Mode)
	assert.Equal(t, Magnitude("1073741824"), cfg.Runtime.Orchestration.Resources.Memory.Limit)
	assert.True(t, cfg.Runtime.Orchestration.Resources.Memory.Swap.IsZero())

	// Untouched sections keep their defaults.
	assert.Equal(t, Default().Runtime.Ports, cfg.Runtime.Ports)
	assert.Equal(t, Default().Build, cfg.Build)
	assert.Empty(t, Validate(cfg))
}

func TestLoad_TOMLOverride(t *testing.T) {
	path := writeConfig(t, "stagecraft.toml", `
[environment]
mode = "test"

[environment.variables]
APP_ENV = "ci"

[build]
labels = { team = "platform" }
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeTest, cfg.Environment.Mode)
	assert.Equal(t, map[string]string{"APP_ENV": "ci"}, cfg.Environment.Variables)
	assert.Equal(t, map[string]string{"team": "platform"}, cfg.Build.Labels)
	assert.Equal(t, Default().Build.Stages, cfg.Build.Stages)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, ".stagecraft.yml", "base:\n  flavour: vanilla\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "stagecraft.json", "{}")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_RejectsNewerSchemaVersion(t *testing.T) {
	path := writeConfig(t, ".stagecraft.yml", "version: 7\nenvironment:\n  mode: prod\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Contains(t, err.Error(), "7 (latest supported: 1)")

	_, err = LoadOverride(writeConfig(t, "current.toml", "version = 1\n"))
	assert.NoError(t, err)
}

func TestDecodeOverride_EmptyDocument(t *testing.T) {
	o, err := DecodeOverride(nil, FormatYAML)
	require.NoError(t, err)
	assert.True(t, o.IsZero())
}

func TestEncode_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(Default(), format)
			require.NoError(t, err)

			o, err := DecodeOverride(data, format)
			require.NoError(t, err)
			assert.Equal(t, Default(), Merge(ContainerConfig{}, o))
		})
	}
}
