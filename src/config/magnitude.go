package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/docker/go-units"
	"gopkg.in/yaml.v3"
)

// Magnitude is a byte quantity written the way docker writes memory
// limits: "2Gi", "512m", "1GiB", or a plain byte count.
type Magnitude string

var errEmptyMagnitude = errors.New("empty magnitude")

// Bytes parses the magnitude with binary (1024-based) units.
func (m Magnitude) Bytes() (int64, error) {
	s := strings.TrimSpace(string(m))
	if s == "" {
		return 0, errEmptyMagnitude
	}
	// go-units wants the trailing "b" in kubernetes-style suffixes ("Gi" → "GiB").
	if strings.HasSuffix(s, "i") || strings.HasSuffix(s, "I") {
		s += "B"
	}
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, fmt.Errorf("magnitude %q: %w", string(m), err)
	}
	return n, nil
}

// IsZero reports whether the magnitude was left unset.
func (m Magnitude) IsZero() bool {
	return strings.TrimSpace(string(m)) == ""
}

// String renders the magnitude as written.
func (m Magnitude) String() string {
	return string(m)
}

// UnmarshalYAML accepts either a quoted magnitude or a bare integer byte
// count ("limit: 1073741824").
func (m *Magnitude) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: magnitude must be a string or integer", value.Line)
	}
	switch value.Tag {
	case "!!str", "!!int", "":
		*m = Magnitude(value.Value)
		return nil
	case "!!null":
		*m = ""
		return nil
	default:
		return fmt.Errorf("line %d: magnitude must be a string or integer, got %s", value.Line, value.Tag)
	}
}
