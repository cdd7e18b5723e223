package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/stagecraft/src/config"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDetectRepo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", "[package]\nname = \"demo\"\n")
	writeFile(t, root, "Cargo.lock", "")
	writeFile(t, root, "Dockerfile", "FROM rust:1.87.0-slim AS builder\nRUN cargo build\n")
	writeFile(t, root, "docker/ci.dockerfile", "FROM alpine:3.20\n")

	det, err := DetectRepo(root)
	require.NoError(t, err)

	assert.Equal(t, config.LanguageRust, det.Language)
	assert.Equal(t, []string{"Cargo.lock", "Cargo.toml"}, det.Lockfiles)

	require.Len(t, det.Dockerfiles, 2)
	assert.Equal(t, "Dockerfile", det.Dockerfiles[0].Path)
	assert.Equal(t, "builder", det.Dockerfiles[0].Stages[0].Name)
	assert.Equal(t, filepath.Join("docker", "ci.dockerfile"), det.Dockerfiles[1].Path)
	assert.Equal(t, "alpine:3.20", det.Dockerfiles[1].Stages[0].BaseImage)
}

func TestDetectRepo_Empty(t *testing.T) {
	det, err := DetectRepo(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, det.Language)
	assert.Empty(t, det.Dockerfiles)
}

func TestDetectRepo_MissingDir(t *testing.T) {
	_, err := DetectRepo(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
