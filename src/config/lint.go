package config

import "slices"

// LintConfig tunes the lint modules. It does not affect validation or
// generation.
type LintConfig struct {
	// Exclude drops findings whose path matches any of these globs.
	// Paths are dotted ("environment.variables.API_TOKEN") with list
	// indexes as their own segment ("build.stages[0]" or "build.stages.0");
	// "*" matches one segment and "**" any number.
	Exclude []string                `yaml:"exclude,omitempty" toml:"exclude,omitempty"`
	Modules map[string]ModuleConfig `yaml:"modules,omitempty" toml:"modules,omitempty"`
}

// ModuleConfig holds per-module overrides.
type ModuleConfig struct {
	Enabled *bool          `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Options map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// DefaultLintConfig returns production defaults: every default-enabled
// module, nothing excluded.
func DefaultLintConfig() LintConfig {
	return LintConfig{}
}

func (l LintConfig) clone() LintConfig {
	return LintConfig{
		Exclude: slices.Clone(l.Exclude),
		Modules: cloneMapFunc(l.Modules, ModuleConfig.clone),
	}
}

func (m ModuleConfig) clone() ModuleConfig {
	out := ModuleConfig{Options: cloneMapFunc(m.Options, cloneValue)}
	if m.Enabled != nil {
		enabled := *m.Enabled
		out.Enabled = &enabled
	}
	return out
}
