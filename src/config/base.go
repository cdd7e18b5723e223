package config

import (
	"maps"
	"slices"
)

// BaseSection is the immutable identity of the image: which base image it
// starts from and which toolchain it carries.
type BaseSection struct {
	OS        BaseImageConfig `yaml:"os" toml:"os"`
	Toolchain ToolchainConfig `yaml:"toolchain" toml:"toolchain"`
	Registry  RegistryConfig  `yaml:"registry" toml:"registry"`
}

// BaseImageConfig names the base image and where it is pulled from.
type BaseImageConfig struct {
	Provider      ImageProvider `yaml:"provider" toml:"provider"`
	Name          string        `yaml:"name" toml:"name"`
	Tag           string        `yaml:"tag" toml:"tag"`
	Architecture  Architecture  `yaml:"architecture" toml:"architecture"`
	SourceMirrors SourceMirrors `yaml:"source_mirrors" toml:"source_mirrors"`
}

// Reference returns the image reference used in FROM ("name:tag", or just
// "name" when no tag is set).
func (b BaseImageConfig) Reference() string {
	if b.Tag == "" {
		return b.Name
	}
	return b.Name + ":" + b.Tag
}

// SourceMirrors are optional mirror URLs for the registry, OS package
// manager, and language package indexes.
type SourceMirrors struct {
	DockerRegistry string `yaml:"docker_registry,omitempty" toml:"docker_registry,omitempty"`

	// PackageManager maps distro name → mirror URL (e.g. "debian" → "https://mirrors.example/debian/").
	PackageManager map[string]string `yaml:"package_manager,omitempty" toml:"package_manager,omitempty"`

	// Language maps package index → mirror URL (e.g. "cargo", "npm").
	Language map[string]string `yaml:"language,omitempty" toml:"language,omitempty"`
}

// ToolchainConfig describes the language toolchain and system tooling.
type ToolchainConfig struct {
	Languages LanguageToolchain `yaml:"languages" toml:"languages"`
	System    SystemToolchain   `yaml:"system" toml:"system"`
}

// LanguageToolchain is the primary language installed in the image.
type LanguageToolchain struct {
	Name       Language `yaml:"name" toml:"name"`
	Version    string   `yaml:"version" toml:"version"`
	Components []string `yaml:"components,omitempty" toml:"components,omitempty"` // toolchain add-ons, ordered
	Features   []string `yaml:"features,omitempty" toml:"features,omitempty"`     // compile-time feature flags, ordered
}

// SystemToolchain is the OS-level tooling.
type SystemToolchain struct {
	PackageManager PackageManager `yaml:"package_manager" toml:"package_manager"`
	CoreTools      []string       `yaml:"core_tools,omitempty" toml:"core_tools,omitempty"`

	// DevTools maps tool name → acceptable versions.
	DevTools map[string][]string `yaml:"dev_tools,omitempty" toml:"dev_tools,omitempty"`
}

// RegistryConfig maps upstream registries to mirrors.
type RegistryConfig struct {
	Mirrors map[string]string `yaml:"mirrors,omitempty" toml:"mirrors,omitempty"`
}

// DefaultBaseSection returns the canonical base layer: the official Rust
// slim image on x86_64 with an apt-based system toolchain.
func DefaultBaseSection() BaseSection {
	return BaseSection{
		OS: BaseImageConfig{
			Provider:     ProviderOfficial,
			Name:         "rust",
			Tag:          "1.87.0-slim",
			Architecture: ArchAMD64,
			SourceMirrors: SourceMirrors{
				DockerRegistry: "https://registry.docker-cn.com",
				PackageManager: map[string]string{
					"debian": "https://mirrors.aliyun.com/debian/",
					"ubuntu": "https://mirrors.aliyun.com/ubuntu/",
				},
				Language: map[string]string{
					"cargo": "https://rsproxy.cn/crates.io-index",
					"npm":   "https://registry.npmmirror.com",
				},
			},
		},
		Toolchain: ToolchainConfig{
			Languages: LanguageToolchain{
				Name:       LanguageRust,
				Version:    "1.87.0",
				Components: []string{"rust-src", "clippy", "rustfmt", "rust-analyzer"},
				Features:   []string{"async-std", "tokio", "serde"},
			},
			System: SystemToolchain{
				PackageManager: PackageManagerAPT,
				CoreTools:      []string{"curl", "git", "build-essential", "pkg-config"},
				DevTools: map[string][]string{
					"gdb":  {"13.2"},
					"lldb": {"14.0"},
				},
			},
		},
		Registry: RegistryConfig{
			Mirrors: map[string]string{
				"docker.io": "https://registry.docker-cn.com",
				"ghcr.io":   "https://ghcr.mirrors.ustc.edu.cn",
			},
		},
	}
}

func (b BaseSection) clone() BaseSection {
	return BaseSection{
		OS:        b.OS.clone(),
		Toolchain: b.Toolchain.clone(),
		Registry:  b.Registry.clone(),
	}
}

func (b BaseImageConfig) clone() BaseImageConfig {
	out := b
	out.SourceMirrors.PackageManager = maps.Clone(b.SourceMirrors.PackageManager)
	out.SourceMirrors.Language = maps.Clone(b.SourceMirrors.Language)
	return out
}

func (t ToolchainConfig) clone() ToolchainConfig {
	out := t
	out.Languages.Components = slices.Clone(t.Languages.Components)
	out.Languages.Features = slices.Clone(t.Languages.Features)
	out.System.CoreTools = slices.Clone(t.System.CoreTools)
	out.System.DevTools = cloneMapFunc(t.System.DevTools, slices.Clone[[]string, string])
	return out
}

func (r RegistryConfig) clone() RegistryConfig {
	return RegistryConfig{Mirrors: maps.Clone(r.Mirrors)}
}
