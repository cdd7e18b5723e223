package config

import (
	"maps"
	"slices"
)

// BuildSection describes the multi-stage build and its cache policy.
type BuildSection struct {
	// Stages are emitted in declaration order.
	Stages       []BuildStage      `yaml:"stages,omitempty" toml:"stages,omitempty"`
	Cache        CacheConfig       `yaml:"cache" toml:"cache"`
	Optimization BuildOptimization `yaml:"optimization" toml:"optimization"`

	// Labels become LABEL instructions, sorted by key.
	Labels map[string]string `yaml:"labels,omitempty" toml:"labels,omitempty"`
}

// BuildStage is one named build step.
type BuildStage struct {
	Name      string            `yaml:"name" toml:"name"`
	BaseImage string            `yaml:"base_image,omitempty" toml:"base_image,omitempty"`
	Args      map[string]string `yaml:"args,omitempty" toml:"args,omitempty"`
	Commands  []string          `yaml:"commands,omitempty" toml:"commands,omitempty"`
	Artifacts StageArtifacts    `yaml:"artifacts" toml:"artifacts"`
}

// StageArtifacts selects which paths a stage hands to the next one.
type StageArtifacts struct {
	Include []string `yaml:"include,omitempty" toml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`
}

// CacheConfig holds build cache settings.
type CacheConfig struct {
	Enabled bool     `yaml:"enabled" toml:"enabled"`
	Paths   []string `yaml:"paths,omitempty" toml:"paths,omitempty"`
}

// BuildOptimization toggles multi-stage output and layer squashing.
type BuildOptimization struct {
	MultiStage        bool `yaml:"multi_stage" toml:"multi_stage"`
	LayerOptimization bool `yaml:"layer_optimization" toml:"layer_optimization"`
}

// DefaultBuildSection returns a single release-build stage with cargo
// caching enabled.
func DefaultBuildSection() BuildSection {
	return BuildSection{
		Stages: []BuildStage{
			{
				Name:      "builder",
				BaseImage: "rust:1.87.0-slim",
				Args:      map[string]string{"CARGO_INCREMENTAL": "0"},
				Commands:  []string{"cargo build --release", "cargo test"},
				Artifacts: StageArtifacts{
					Include: []string{"target/release/*"},
					Exclude: []string{"target/debug", "*.d"},
				},
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Paths:   []string{"/usr/local/cargo/registry", "target"},
		},
		Optimization: BuildOptimization{
			MultiStage:        true,
			LayerOptimization: true,
		},
	}
}

func (b BuildSection) clone() BuildSection {
	return BuildSection{
		Stages:       cloneSliceFunc(b.Stages, BuildStage.clone),
		Cache:        b.Cache.clone(),
		Optimization: b.Optimization,
		Labels:       maps.Clone(b.Labels),
	}
}

func (s BuildStage) clone() BuildStage {
	out := s
	out.Args = maps.Clone(s.Args)
	out.Commands = slices.Clone(s.Commands)
	out.Artifacts.Include = slices.Clone(s.Artifacts.Include)
	out.Artifacts.Exclude = slices.Clone(s.Artifacts.Exclude)
	return out
}

func (c CacheConfig) clone() CacheConfig {
	return CacheConfig{Enabled: c.Enabled, Paths: slices.Clone(c.Paths)}
}
