package modules

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sofmeright/stagecraft/src/config"
	"github.com/sofmeright/stagecraft/src/lint"
)

func init() {
	lint.Register("pinning", func() lint.Module { return &pinningModule{} })
}

// pinningModule reports dependencies that float. The generated install
// line never embeds system package pins, so even a pinned system package
// only documents intent; unpinned ones document nothing.
type pinningModule struct {
	opts pinningOptions
}

type pinningOptions struct {
	// Ignore lists dependency name globs that may stay unpinned.
	Ignore []string `yaml:"ignore"`
}

func (m *pinningModule) Name() string        { return "pinning" }
func (m *pinningModule) DefaultEnabled() bool { return true }

// Configure implements lint.ConfigurableModule.
func (m *pinningModule) Configure(opts map[string]any) error {
	m.opts = pinningOptions{}
	return decodeOptions(m.Name(), opts, &m.opts)
}

func (m *pinningModule) Check(_ context.Context, cfg *config.ContainerConfig) ([]lint.Finding, error) {
	var findings []lint.Finding
	add := func(sev lint.Severity, path, format string, args ...any) {
		findings = append(findings, lint.Finding{
			Path:     path,
			Module:   m.Name(),
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	switch tag := strings.TrimSpace(cfg.Base.OS.Tag); tag {
	case "":
		add(lint.SeverityWarning, "base.os.tag", "no tag set; the image resolves to %s:latest", cfg.Base.OS.Name)
	case "latest":
		add(lint.SeverityWarning, "base.os.tag", "tag %q floats; pin a release tag", tag)
	}

	packages := func(path string, pkgs []config.Package) {
		for i, p := range pkgs {
			if p.Version == "" && !m.ignored(p.Name) {
				add(lint.SeverityInfo, fmt.Sprintf("%s[%d]", path, i), "%s has no version pin", p.Name)
			}
		}
	}
	packages("environment.dependencies.system.packages", cfg.Environment.Dependencies.System.Packages)
	packages("environment.dependencies.system.libraries", cfg.Environment.Dependencies.System.Libraries)
	packages("environment.dependencies.tools.binaries", cfg.Environment.Dependencies.Tools.Binaries)

	langs := make([]string, 0, len(cfg.Environment.Dependencies.Language))
	for lang := range cfg.Environment.Dependencies.Language {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		for i, p := range cfg.Environment.Dependencies.Language[lang].Packages {
			if p.Version == "" && !m.ignored(p.Name) {
				add(lint.SeverityInfo,
					fmt.Sprintf("environment.dependencies.language.%s.packages[%d]", lang, i),
					"%s has no version pin", p.Name)
			}
		}
	}

	return findings, nil
}

func (m *pinningModule) ignored(name string) bool {
	for _, pattern := range m.opts.Ignore {
		if lint.MatchGlob(pattern, name) {
			return true
		}
	}
	return false
}
