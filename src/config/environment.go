package config

import (
	"maps"
	"slices"
)

// EnvironmentSection holds everything that varies by lifecycle mode.
type EnvironmentSection struct {
	// Mode selects exactly one of Tools.Dev, Tools.Test, Tools.Prod.
	Mode Mode `yaml:"mode" toml:"mode"`

	Tools        ModeTools         `yaml:"tools" toml:"tools"`
	Dependencies Dependencies      `yaml:"dependencies" toml:"dependencies"`
	Variables    map[string]string `yaml:"variables,omitempty" toml:"variables,omitempty"`
}

// ModeTools carries one tool sub-config per mode. Only the one matching
// EnvironmentSection.Mode is in effect.
type ModeTools struct {
	Dev  DevTools  `yaml:"dev" toml:"dev"`
	Test TestTools `yaml:"test" toml:"test"`
	Prod ProdTools `yaml:"prod" toml:"prod"`
}

// DevTools configures debuggers and hot reload.
type DevTools struct {
	Debuggers []string        `yaml:"debuggers,omitempty" toml:"debuggers,omitempty"`
	HotReload HotReloadConfig `yaml:"hot_reload" toml:"hot_reload"`
}

// HotReloadConfig lists directories watched for changes.
type HotReloadConfig struct {
	Enabled     bool     `yaml:"enabled" toml:"enabled"`
	WatchDirs   []string `yaml:"watch_dirs,omitempty" toml:"watch_dirs,omitempty"`
	ExcludeDirs []string `yaml:"exclude_dirs,omitempty" toml:"exclude_dirs,omitempty"`
}

// TestTools configures coverage collection.
type TestTools struct {
	Coverage      CoverageConfig `yaml:"coverage" toml:"coverage"`
	ReportFormats []string       `yaml:"report_formats,omitempty" toml:"report_formats,omitempty"`
}

// CoverageConfig names the coverage tool and where it writes.
type CoverageConfig struct {
	Tool      string `yaml:"tool" toml:"tool"`
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
}

// ProdTools configures binary optimization and runtime hardening.
type ProdTools struct {
	Optimization OptimizationFlags `yaml:"optimization" toml:"optimization"`
	Hardening    HardeningFlags    `yaml:"hardening" toml:"hardening"`
}

// OptimizationFlags are release-binary optimizations.
type OptimizationFlags struct {
	StripSymbols bool `yaml:"strip_symbols" toml:"strip_symbols"`
	MinifyBinary bool `yaml:"minify_binary" toml:"minify_binary"`
}

// HardeningFlags are production hardening switches.
type HardeningFlags struct {
	NonRootUser  bool     `yaml:"non_root_user" toml:"non_root_user"`
	ReadOnlyFS   bool     `yaml:"read_only_fs" toml:"read_only_fs"`
	Capabilities []string `yaml:"capabilities,omitempty" toml:"capabilities,omitempty"`
}

// ActiveTools returns the tool sub-config selected by Mode. The second
// return value is false when Mode is not a known mode.
func (e EnvironmentSection) ActiveTools() (any, bool) {
	switch e.Mode {
	case ModeDev:
		return e.Tools.Dev, true
	case ModeTest:
		return e.Tools.Test, true
	case ModeProd:
		return e.Tools.Prod, true
	default:
		return nil, false
	}
}

// Dependencies aggregates system and language dependencies.
type Dependencies struct {
	System SystemDependencies `yaml:"system" toml:"system"`

	// Language is keyed by language name. In practice only the entry for
	// Base.Toolchain.Languages.Name is populated.
	Language map[string]LanguageDependencies `yaml:"language,omitempty" toml:"language,omitempty"`

	Tools ToolDependencies `yaml:"tools" toml:"tools"`
}

// SystemDependencies are OS packages, services, and shared libraries.
type SystemDependencies struct {
	Packages  []Package `yaml:"packages,omitempty" toml:"packages,omitempty"`
	Services  []Service `yaml:"services,omitempty" toml:"services,omitempty"`
	Libraries []Package `yaml:"libraries,omitempty" toml:"libraries,omitempty"`
}

// Package is a named, optionally version-pinned dependency.
type Package struct {
	Name    string `yaml:"name" toml:"name"`
	Version string `yaml:"version,omitempty" toml:"version,omitempty"`
}

// Service is a system service toggled on or off.
type Service struct {
	Name    string `yaml:"name" toml:"name"`
	Enabled bool   `yaml:"enabled" toml:"enabled"`
}

// LanguageDependencies are the dependency lists for one language
// ecosystem (crates for rust, modules for golang, and so on).
type LanguageDependencies struct {
	Packages  []LanguagePackage `yaml:"packages,omitempty" toml:"packages,omitempty"`
	Features  []string          `yaml:"features,omitempty" toml:"features,omitempty"`
	Toolchain []string          `yaml:"toolchain,omitempty" toml:"toolchain,omitempty"`
}

// LanguagePackage is a language-level dependency with feature flags.
type LanguagePackage struct {
	Name     string   `yaml:"name" toml:"name"`
	Version  string   `yaml:"version,omitempty" toml:"version,omitempty"`
	Features []string `yaml:"features,omitempty" toml:"features,omitempty"`
}

// ToolDependencies are developer binaries and editor plugins.
type ToolDependencies struct {
	Binaries []Package `yaml:"binaries,omitempty" toml:"binaries,omitempty"`
	Plugins  []Plugin  `yaml:"plugins,omitempty" toml:"plugins,omitempty"`
}

// Plugin is a tool plugin. Config is an opaque blob passed through
// untouched; nothing in stagecraft interprets it.
type Plugin struct {
	Name    string         `yaml:"name" toml:"name"`
	Version string         `yaml:"version,omitempty" toml:"version,omitempty"`
	Config  map[string]any `yaml:"config,omitempty" toml:"config,omitempty"`
}

// DefaultEnvironmentSection returns the canonical dev-mode environment for
// a Rust project.
func DefaultEnvironmentSection() EnvironmentSection {
	return EnvironmentSection{
		Mode: ModeDev,
		Tools: ModeTools{
			Dev: DevTools{
				Debuggers: []string{"lldb", "gdb"},
				HotReload: HotReloadConfig{
					Enabled:     true,
					WatchDirs:   []string{"src"},
					ExcludeDirs: []string{"target", ".git"},
				},
			},
			Test: TestTools{
				Coverage: CoverageConfig{
					Tool:      "tarpaulin",
					OutputDir: "coverage",
				},
				ReportFormats: []string{"html", "lcov"},
			},
			Prod: ProdTools{
				Optimization: OptimizationFlags{
					StripSymbols: true,
					MinifyBinary: true,
				},
				Hardening: HardeningFlags{
					NonRootUser:  true,
					ReadOnlyFS:   true,
					Capabilities: []string{"CAP_NET_BIND_SERVICE"},
				},
			},
		},
		Dependencies: Dependencies{
			System: SystemDependencies{
				Packages: []Package{
					{Name: "libssl-dev", Version: "1.1.1f"},
					{Name: "libclang-dev", Version: "12.0"},
					{Name: "build-essential", Version: "12.8"},
				},
				Services: []Service{
					{Name: "docker", Enabled: true},
					{Name: "ssh", Enabled: false},
				},
				Libraries: []Package{
					{Name: "libc6", Version: "2.31"},
					{Name: "libstdc++6", Version: "10.3.0"},
				},
			},
			Language: map[string]LanguageDependencies{
				string(LanguageRust): {
					Packages: []LanguagePackage{
						{Name: "tokio", Version: "1.28", Features: []string{"full"}},
						{Name: "serde", Version: "1.0", Features: []string{"derive"}},
					},
					Features:  []string{"async-std", "tokio"},
					Toolchain: []string{"rust-src", "clippy"},
				},
			},
			Tools: ToolDependencies{
				Binaries: []Package{
					{Name: "cargo-watch", Version: "8.4.0"},
					{Name: "cargo-edit", Version: "0.11.0"},
				},
				Plugins: []Plugin{
					{Name: "rust-analyzer", Version: "0.3.0"},
				},
			},
		},
		Variables: map[string]string{
			"RUST_BACKTRACE":   "1",
			"RUST_LOG":         "debug",
			"CARGO_TERM_COLOR": "always",
		},
	}
}

func (e EnvironmentSection) clone() EnvironmentSection {
	return EnvironmentSection{
		Mode:         e.Mode,
		Tools:        e.Tools.clone(),
		Dependencies: e.Dependencies.clone(),
		Variables:    maps.Clone(e.Variables),
	}
}

func (t ModeTools) clone() ModeTools {
	out := t
	out.Dev.Debuggers = slices.Clone(t.Dev.Debuggers)
	out.Dev.HotReload.WatchDirs = slices.Clone(t.Dev.HotReload.WatchDirs)
	out.Dev.HotReload.ExcludeDirs = slices.Clone(t.Dev.HotReload.ExcludeDirs)
	out.Test.ReportFormats = slices.Clone(t.Test.ReportFormats)
	out.Prod.Hardening.Capabilities = slices.Clone(t.Prod.Hardening.Capabilities)
	return out
}

func (d Dependencies) clone() Dependencies {
	return Dependencies{
		System: SystemDependencies{
			Packages:  slices.Clone(d.System.Packages),
			Services:  slices.Clone(d.System.Services),
			Libraries: slices.Clone(d.System.Libraries),
		},
		Language: cloneMapFunc(d.Language, func(l LanguageDependencies) LanguageDependencies {
			return LanguageDependencies{
				Packages: cloneSliceFunc(l.Packages, func(p LanguagePackage) LanguagePackage {
					p.Features = slices.Clone(p.Features)
					return p
				}),
				Features:  slices.Clone(l.Features),
				Toolchain: slices.Clone(l.Toolchain),
			}
		}),
		Tools: ToolDependencies{
			Binaries: slices.Clone(d.Tools.Binaries),
			Plugins: cloneSliceFunc(d.Tools.Plugins, func(p Plugin) Plugin {
				p.Config = cloneMapFunc(p.Config, cloneValue)
				return p
			}),
		},
	}
}
