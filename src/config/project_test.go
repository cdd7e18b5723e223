package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProject() ProjectConfig {
	return ProjectConfig{
		RepoType:    RepoRemote,
		RemoteRepo:  "https://github.com/acme/widget.git",
		Name:        "widget",
		Description: "A widget service",
		Version:     "1.2.3",
		Author:      "acme",
	}
}

func TestValidateProject_Valid(t *testing.T) {
	assert.Empty(t, ValidateProject(validProject()))

	p := validProject()
	p.RemoteRepo = "git@github.com:acme/widget.git"
	assert.Empty(t, ValidateProject(p))

	p = validProject()
	p.RepoType = RepoLocal
	p.RemoteRepo = ""
	p.LocalPath = "./widget"
	assert.Empty(t, ValidateProject(p))
}

func TestValidateProject_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProjectConfig)
		want   string
	}{
		{"missing name", func(p *ProjectConfig) { p.Name = "" }, "name: is required"},
		{"short name", func(p *ProjectConfig) { p.Name = "w" }, "name: must be 2-50 characters, got 1"},
		{"long name", func(p *ProjectConfig) { p.Name = strings.Repeat("n", 51) }, "name: must be 2-50 characters, got 51"},
		{"missing description", func(p *ProjectConfig) { p.Description = "" }, "description: is required"},
		{"long description", func(p *ProjectConfig) { p.Description = strings.Repeat("d", 201) }, "description: must be at most 200 characters, got 201"},
		{"missing version", func(p *ProjectConfig) { p.Version = "" }, "version: is required"},
		{"bad version", func(p *ProjectConfig) { p.Version = "v1.2" }, `version: "v1.2" must look like 1.2.3`},
		{"missing remote", func(p *ProjectConfig) { p.RemoteRepo = "" }, "remote_repo: is required for repo_type remote"},
		{"bad remote", func(p *ProjectConfig) { p.RemoteRepo = "https://github.com/acme/widget" }, `remote_repo: "https://github.com/acme/widget" must be an http(s) or git@ URL ending in .git`},
		{"missing local path", func(p *ProjectConfig) { p.RepoType = RepoLocal }, "local_path: is required for repo_type local"},
		{"unknown repo type", func(p *ProjectConfig) { p.RepoType = "svn" }, `repo_type: unknown repo type "svn" (supported: local, remote)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProject()
			tt.mutate(&p)
			assert.Equal(t, []string{tt.want}, ValidateProject(p))
		})
	}
}
