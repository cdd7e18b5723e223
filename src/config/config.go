package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when no --config path is given.
const DefaultConfigFile = ".stagecraft.yml"

// SchemaVersion is the current config schema version.
const SchemaVersion = 1

// ErrUnsupportedFormat is returned for config files whose extension is
// neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// ErrUnsupportedVersion is returned for config files written for a schema
// version this build does not know.
var ErrUnsupportedVersion = errors.New("unsupported schema version")

// ContainerConfig is the full layered container description: the unit of
// validation, merging, and generation.
type ContainerConfig struct {
	Version int            `yaml:"version" toml:"version"`
	Project *ProjectConfig `yaml:"project,omitempty" toml:"project,omitempty"`

	Base        BaseSection        `yaml:"base" toml:"base"`
	Environment EnvironmentSection `yaml:"environment" toml:"environment"`
	Runtime     RuntimeSection     `yaml:"runtime" toml:"runtime"`
	Build       BuildSection       `yaml:"build" toml:"build"`

	Lint LintConfig `yaml:"lint,omitempty" toml:"lint,omitempty"`
}

// Default returns the canonical configuration used as the merge base.
// Every call returns a fresh value.
func Default() ContainerConfig {
	return ContainerConfig{
		Version:     SchemaVersion,
		Base:        DefaultBaseSection(),
		Environment: DefaultEnvironmentSection(),
		Runtime:     DefaultRuntimeSection(),
		Build:       DefaultBuildSection(),
		Lint:        DefaultLintConfig(),
	}
}

// Format is a config serialization format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension. Paths without an
// extension (including "-" for stdin) are treated as YAML.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml", "":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseFormat parses a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: yaml, toml)", ErrUnsupportedFormat, s)
	}
}

// Load reads an override file and layers it onto Default().
// If path is empty, it tries DefaultConfigFile.
// Returns the defaults if the file doesn't exist.
func Load(path string) (*ContainerConfig, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	o, err := LoadOverride(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			return &cfg, nil
		}
		return nil, err
	}

	cfg := Merge(Default(), o)
	return &cfg, nil
}

// LoadOverride reads a partial config file without applying it.
func LoadOverride(path string) (Override, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Override{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Override{}, fmt.Errorf("reading %s: %w", path, err)
	}

	o, err := DecodeOverride(data, format)
	if err != nil {
		return Override{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if o.Version != nil && (*o.Version < 0 || *o.Version > SchemaVersion) {
		return Override{}, fmt.Errorf("%s: %w %d (latest supported: %d)", path, ErrUnsupportedVersion, *o.Version, SchemaVersion)
	}
	return o, nil
}

// DecodeOverride decodes a partial config document. Unknown keys are
// rejected so that typos surface instead of silently doing nothing.
func DecodeOverride(data []byte, format Format) (Override, error) {
	var o Override
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
			return Override{}, err
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&o); err != nil {
			return Override{}, err
		}
	default:
		return Override{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return o, nil
}

// Encode serializes a full config.
func Encode(cfg ContainerConfig, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
