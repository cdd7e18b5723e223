package modules

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/sofmeright/stagecraft/src/config"
	"github.com/sofmeright/stagecraft/src/lint"
)

func init() {
	lint.Register("toolchain", func() lint.Module { return &toolchainModule{} })
}

// toolchainModule checks that declared tool versions are semantic versions
// and that an official language base image agrees with the toolchain.
type toolchainModule struct{}

func (m *toolchainModule) Name() string        { return "toolchain" }
func (m *toolchainModule) DefaultEnabled() bool { return true }

// languageImages maps a toolchain language to the official image names
// whose tags carry that language's version.
var languageImages = map[config.Language][]string{
	config.LanguageRust:   {"rust"},
	config.LanguageGo:     {"golang"},
	config.LanguagePython: {"python"},
	config.LanguageNode:   {"node"},
	config.LanguageJava:   {"openjdk", "eclipse-temurin", "amazoncorretto"},
}

func (m *toolchainModule) Check(_ context.Context, cfg *config.ContainerConfig) ([]lint.Finding, error) {
	var findings []lint.Finding
	warn := func(path, format string, args ...any) {
		findings = append(findings, lint.Finding{
			Path:     path,
			Module:   m.Name(),
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	lang := cfg.Base.Toolchain.Languages
	var langVer *semver.Version
	if lang.Version != "" {
		v, err := semver.NewVersion(lang.Version)
		if err != nil {
			warn("base.toolchain.languages.version", "%q is not a semantic version", lang.Version)
		} else {
			langVer = v
		}
	}

	devTools := cfg.Base.Toolchain.System.DevTools
	names := make([]string, 0, len(devTools))
	for name := range devTools {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for i, ver := range devTools[name] {
			if _, err := semver.NewVersion(ver); err != nil {
				warn(fmt.Sprintf("base.toolchain.system.dev_tools.%s[%d]", name, i),
					"%q is not a semantic version", ver)
			}
		}
	}

	if langVer != nil && isLanguageImage(lang.Name, cfg.Base.OS.Name) {
		if tagVer, parts, ok := tagVersion(cfg.Base.OS.Tag); ok && !sameRelease(tagVer, langVer, parts) {
			warn("base.os.tag", "tag %q does not match %s toolchain version %s",
				cfg.Base.OS.Tag, lang.Name, lang.Version)
		}
	}

	return findings, nil
}

func isLanguageImage(lang config.Language, image string) bool {
	// Strip any registry or namespace: "docker.io/library/rust" -> "rust".
	if i := strings.LastIndexByte(image, '/'); i >= 0 {
		image = image[i+1:]
	}
	for _, name := range languageImages[lang] {
		if image == name {
			return true
		}
	}
	return false
}

// tagVersion extracts the leading version of an image tag and how many
// components it spells out: "1.87.0-slim" gives (1.87.0, 3), "20-alpine"
// gives (20.0.0, 1). Codename tags like "bookworm" are not versions.
func tagVersion(tag string) (*semver.Version, int, bool) {
	head, _, _ := strings.Cut(strings.TrimPrefix(tag, "v"), "-")
	if head == "" {
		return nil, 0, false
	}
	v, err := semver.NewVersion(head)
	if err != nil {
		return nil, 0, false
	}
	return v, strings.Count(head, ".") + 1, true
}

// sameRelease compares only the components the tag spells out.
func sameRelease(tag, lang *semver.Version, parts int) bool {
	if tag.Major() != lang.Major() {
		return false
	}
	if parts >= 2 && tag.Minor() != lang.Minor() {
		return false
	}
	if parts >= 3 && tag.Patch() != lang.Patch() {
		return false
	}
	return true
}
