package modules

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeOptions round-trips a module's options block through YAML into
// dst, rejecting unknown keys.
func decodeOptions(module string, opts map[string]any, dst any) error {
	if len(opts) == 0 {
		return nil
	}
	raw, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("%s: marshal options: %w", module, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%s: decode options: %w", module, err)
	}
	return nil
}
