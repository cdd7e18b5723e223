package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// MigrateToLatest takes a raw config document and migrates it to the
// current schema version. Returns the migrated bytes ready for writing.
//
// Migration chain:
//
//	unversioned → 1 (stamps "version: 1"; the layout did not change)
//	1           → current (no-op)
func MigrateToLatest(data []byte, format Format) ([]byte, error) {
	ver, err := peekVersion(data, format)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	switch ver {
	case SchemaVersion:
		return data, nil
	case 0:
		return stampVersion(data, format)
	default:
		return nil, fmt.Errorf("migrate: unknown config version %d (latest supported: %d)", ver, SchemaVersion)
	}
}

// peekVersion extracts the version field without decoding the rest.
// Returns 0 if no version field is present.
func peekVersion(data []byte, format Format) (int, error) {
	var probe struct {
		Version int `yaml:"version" toml:"version"`
	}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &probe)
	case FormatTOML:
		err = toml.Unmarshal(data, &probe)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return 0, fmt.Errorf("reading version: %w", err)
	}
	return probe.Version, nil
}

// stampVersion prepends the version key and checks the result still
// decodes as an override.
func stampVersion(data []byte, format Format) ([]byte, error) {
	var header string
	switch format {
	case FormatYAML:
		header = fmt.Sprintf("version: %d\n", SchemaVersion)
	case FormatTOML:
		header = fmt.Sprintf("version = %d\n", SchemaVersion)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	body := bytes.TrimLeft(data, "\n")
	if format == FormatYAML && bytes.HasPrefix(body, []byte("---\n")) {
		body = body[len("---\n"):]
	}
	out := append([]byte(header), body...)
	if _, err := DecodeOverride(out, format); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return out, nil
}
