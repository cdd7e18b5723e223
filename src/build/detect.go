package build

import (
	"os"
	"path/filepath"

	"github.com/sofmeright/stagecraft/src/config"
)

// Detection holds what a repo scan found: existing Dockerfiles and the
// toolchain language implied by its manifests.
type Detection struct {
	RootDir     string
	Dockerfiles []DockerfileInfo
	Language    config.Language // empty if nothing matched
	Lockfiles   []string        // relative paths: go.mod, Cargo.toml, etc.
}

// languageIndicators maps manifest and lockfile names to a toolchain language.
var languageIndicators = map[string]config.Language{
	"go.mod":            config.LanguageGo,
	"go.sum":            config.LanguageGo,
	"Cargo.toml":        config.LanguageRust,
	"Cargo.lock":        config.LanguageRust,
	"package.json":      config.LanguageNode,
	"package-lock.json": config.LanguageNode,
	"yarn.lock":         config.LanguageNode,
	"pnpm-lock.yaml":    config.LanguageNode,
	"requirements.txt":  config.LanguagePython,
	"Pipfile":           config.LanguagePython,
	"pyproject.toml":    config.LanguagePython,
	"poetry.lock":       config.LanguagePython,
	"pom.xml":           config.LanguageJava,
	"build.gradle":      config.LanguageJava,
	"build.gradle.kts":  config.LanguageJava,
}

// dockerfileNames are filenames recognized as Dockerfiles.
var dockerfileNames = []string{
	"Dockerfile",
	"Dockerfile.dev",
	"Dockerfile.production",
	"Dockerfile.build",
}

// dockerfileDirs are directories searched for Dockerfiles.
var dockerfileDirs = []string{
	".",
	"build",
	"docker",
}

// DetectRepo inspects a directory for Dockerfiles and language manifests.
// Unreadable files are recorded without parse details rather than failing
// the scan.
func DetectRepo(rootDir string) (*Detection, error) {
	det := &Detection{RootDir: rootDir}

	for _, dir := range dockerfileDirs {
		var candidates []string
		for _, name := range dockerfileNames {
			path := filepath.Join(rootDir, dir, name)
			if _, err := os.Stat(path); err == nil {
				candidates = append(candidates, path)
			}
		}
		// Also check for *.dockerfile pattern
		matches, _ := filepath.Glob(filepath.Join(rootDir, dir, "*.dockerfile"))
		candidates = append(candidates, matches...)

		for _, path := range candidates {
			rel, _ := filepath.Rel(rootDir, path)
			info, err := ParseDockerfileFile(path)
			if err != nil {
				info = &DockerfileInfo{}
			}
			info.Path = rel
			det.Dockerfiles = append(det.Dockerfiles, *info)
		}
	}

	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if lang, ok := languageIndicators[name]; ok {
			det.Lockfiles = append(det.Lockfiles, name)
			if det.Language == "" {
				det.Language = lang
			}
		}
	}

	return det, nil
}
