package config

import (
	"maps"
	"slices"
)

// Override is a partial ContainerConfig. Every field is a pointer; a nil
// field leaves the base untouched and a non-nil field replaces the
// corresponding base field wholesale. Nested structs are not merged field
// by field, so overriding Base.OS with {name: alpine} also clears the tag.
type Override struct {
	Version *int           `yaml:"version,omitempty" toml:"version,omitempty"`
	Project *ProjectConfig `yaml:"project,omitempty" toml:"project,omitempty"`

	Base        *BaseOverride        `yaml:"base,omitempty" toml:"base,omitempty"`
	Environment *EnvironmentOverride `yaml:"environment,omitempty" toml:"environment,omitempty"`
	Runtime     *RuntimeOverride     `yaml:"runtime,omitempty" toml:"runtime,omitempty"`
	Build       *BuildOverride       `yaml:"build,omitempty" toml:"build,omitempty"`

	Lint *LintConfig `yaml:"lint,omitempty" toml:"lint,omitempty"`
}

// BaseOverride overrides fields of BaseSection.
type BaseOverride struct {
	OS        *BaseImageConfig `yaml:"os,omitempty" toml:"os,omitempty"`
	Toolchain *ToolchainConfig `yaml:"toolchain,omitempty" toml:"toolchain,omitempty"`
	Registry  *RegistryConfig  `yaml:"registry,omitempty" toml:"registry,omitempty"`
}

// EnvironmentOverride overrides fields of EnvironmentSection.
type EnvironmentOverride struct {
	Mode         *Mode              `yaml:"mode,omitempty" toml:"mode,omitempty"`
	Tools        *ModeTools         `yaml:"tools,omitempty" toml:"tools,omitempty"`
	Dependencies *Dependencies      `yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
	Variables    *map[string]string `yaml:"variables,omitempty" toml:"variables,omitempty"`
}

// RuntimeOverride overrides fields of RuntimeSection.
type RuntimeOverride struct {
	Ports         *[]PortMapping       `yaml:"ports,omitempty" toml:"ports,omitempty"`
	Orchestration *OrchestrationConfig `yaml:"orchestration,omitempty" toml:"orchestration,omitempty"`
	Security      *SecurityConfig      `yaml:"security,omitempty" toml:"security,omitempty"`
	Observability *ObservabilityConfig `yaml:"observability,omitempty" toml:"observability,omitempty"`
	Health        *HealthConfig        `yaml:"health,omitempty" toml:"health,omitempty"`
}

// BuildOverride overrides fields of BuildSection.
type BuildOverride struct {
	Stages       *[]BuildStage      `yaml:"stages,omitempty" toml:"stages,omitempty"`
	Cache        *CacheConfig       `yaml:"cache,omitempty" toml:"cache,omitempty"`
	Optimization *BuildOptimization `yaml:"optimization,omitempty" toml:"optimization,omitempty"`
	Labels       *map[string]string `yaml:"labels,omitempty" toml:"labels,omitempty"`
}

// Merge layers o onto base and returns a new config. Neither input is
// modified and the result shares no slices or maps with either.
//
// Merge(c, Override{}) equals c, and applying the same override twice is
// the same as applying it once.
func Merge(base ContainerConfig, o Override) ContainerConfig {
	out := base.Clone()

	if o.Version != nil {
		out.Version = *o.Version
	}
	if o.Project != nil {
		out.Project = o.Project.clone()
	}

	if b := o.Base; b != nil {
		if b.OS != nil {
			out.Base.OS = b.OS.clone()
		}
		if b.Toolchain != nil {
			out.Base.Toolchain = b.Toolchain.clone()
		}
		if b.Registry != nil {
			out.Base.Registry = b.Registry.clone()
		}
	}

	if e := o.Environment; e != nil {
		if e.Mode != nil {
			out.Environment.Mode = *e.Mode
		}
		if e.Tools != nil {
			out.Environment.Tools = e.Tools.clone()
		}
		if e.Dependencies != nil {
			out.Environment.Dependencies = e.Dependencies.clone()
		}
		if e.Variables != nil {
			out.Environment.Variables = maps.Clone(*e.Variables)
		}
	}

	if r := o.Runtime; r != nil {
		if r.Ports != nil {
			out.Runtime.Ports = slices.Clone(*r.Ports)
		}
		if r.Orchestration != nil {
			out.Runtime.Orchestration = r.Orchestration.clone()
		}
		if r.Security != nil {
			out.Runtime.Security = r.Security.clone()
		}
		if r.Observability != nil {
			out.Runtime.Observability = r.Observability.clone()
		}
		if r.Health != nil {
			out.Runtime.Health = *r.Health
		}
	}

	if b := o.Build; b != nil {
		if b.Stages != nil {
			out.Build.Stages = cloneSliceFunc(*b.Stages, BuildStage.clone)
		}
		if b.Cache != nil {
			out.Build.Cache = b.Cache.clone()
		}
		if b.Optimization != nil {
			out.Build.Optimization = *b.Optimization
		}
		if b.Labels != nil {
			out.Build.Labels = maps.Clone(*b.Labels)
		}
	}

	if o.Lint != nil {
		out.Lint = o.Lint.clone()
	}

	return out
}

// IsZero reports whether applying o would change nothing.
func (o Override) IsZero() bool {
	if o.Version != nil || o.Project != nil || o.Lint != nil {
		return false
	}
	if b := o.Base; b != nil && (b.OS != nil || b.Toolchain != nil || b.Registry != nil) {
		return false
	}
	if e := o.Environment; e != nil && (e.Mode != nil || e.Tools != nil || e.Dependencies != nil || e.Variables != nil) {
		return false
	}
	if r := o.Runtime; r != nil && (r.Ports != nil || r.Orchestration != nil || r.Security != nil || r.Observability != nil || r.Health != nil) {
		return false
	}
	if b := o.Build; b != nil && (b.Stages != nil || b.Cache != nil || b.Optimization != nil || b.Labels != nil) {
		return false
	}
	return true
}

// OverrideFrom returns an override that sets every field of cfg, so that
// Merge(anything, OverrideFrom(cfg)) equals cfg. A nil cfg.Project leaves
// the base project in place.
func OverrideFrom(cfg ContainerConfig) Override {
	c := cfg.Clone()
	return Override{
		Version: &c.Version,
		Project: c.Project,
		Base: &BaseOverride{
			OS:        &c.Base.OS,
			Toolchain: &c.Base.Toolchain,
			Registry:  &c.Base.Registry,
		},
		Environment: &EnvironmentOverride{
			Mode:         &c.Environment.Mode,
			Tools:        &c.Environment.Tools,
			Dependencies: &c.Environment.Dependencies,
			Variables:    &c.Environment.Variables,
		},
		Runtime: &RuntimeOverride{
			Ports:         &c.Runtime.Ports,
			Orchestration: &c.Runtime.Orchestration,
			Security:      &c.Runtime.Security,
			Observability: &c.Runtime.Observability,
			Health:        &c.Runtime.Health,
		},
		Build: &BuildOverride{
			Stages:       &c.Build.Stages,
			Cache:        &c.Build.Cache,
			Optimization: &c.Build.Optimization,
			Labels:       &c.Build.Labels,
		},
		Lint: &c.Lint,
	}
}
