package config

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// RepoType says where the project sources live.
type RepoType string

const (
	RepoLocal  RepoType = "local"
	RepoRemote RepoType = "remote"
)

// ProjectConfig is optional metadata about the project the image is built
// for. It is not consulted by the generator.
type ProjectConfig struct {
	RepoType    RepoType `yaml:"repo_type" toml:"repo_type"`
	LocalPath   string   `yaml:"local_path,omitempty" toml:"local_path,omitempty"`
	RemoteRepo  string   `yaml:"remote_repo,omitempty" toml:"remote_repo,omitempty"`
	Name        string   `yaml:"name" toml:"name"`
	Description string   `yaml:"description" toml:"description"`
	Version     string   `yaml:"version" toml:"version"`
	Author      string   `yaml:"author,omitempty" toml:"author,omitempty"`
}

var (
	projectVersionRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	remoteRepoRe     = regexp.MustCompile(`^(https?://|git@).*\.git$`)
)

// ValidateProject checks project metadata. Messages are prefixed with the
// offending field name.
func ValidateProject(p ProjectConfig) []string {
	var errs []string

	switch n := utf8.RuneCountInString(p.Name); {
	case n == 0:
		errs = append(errs, "name: is required")
	case n < 2 || n > 50:
		errs = append(errs, fmt.Sprintf("name: must be 2-50 characters, got %d", n))
	}

	switch n := utf8.RuneCountInString(p.Description); {
	case n == 0:
		errs = append(errs, "description: is required")
	case n > 200:
		errs = append(errs, fmt.Sprintf("description: must be at most 200 characters, got %d", n))
	}

	if p.Version == "" {
		errs = append(errs, "version: is required")
	} else if !projectVersionRe.MatchString(p.Version) {
		errs = append(errs, fmt.Sprintf("version: %q must look like 1.2.3", p.Version))
	}

	switch p.RepoType {
	case RepoLocal:
		if p.LocalPath == "" {
			errs = append(errs, "local_path: is required for repo_type local")
		}
	case RepoRemote:
		if p.RemoteRepo == "" {
			errs = append(errs, "remote_repo: is required for repo_type remote")
		} else if !remoteRepoRe.MatchString(p.RemoteRepo) {
			errs = append(errs, fmt.Sprintf("remote_repo: %q must be an http(s) or git@ URL ending in .git", p.RemoteRepo))
		}
	default:
		errs = append(errs, fmt.Sprintf("repo_type: unknown repo type %q (supported: local, remote)", p.RepoType))
	}

	return errs
}

func (p *ProjectConfig) clone() *ProjectConfig {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}
