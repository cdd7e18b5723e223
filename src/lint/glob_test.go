package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"a/b", "a/b", true},
		{"a/*", "a/b", true},
		{"a/*", "a/b/c", false},
		{"a/**", "a/b/c", true},
		{"a/**", "a", true},
		{"**/c", "a/b/c", true},
		{"**/c", "c", true},
		{"a/**/d", "a/b/c/d", true},
		{"a/**/d", "a/d", true},
		{"a/**/d", "x/b/d", false},
		{"*/stages/*/args/**", "build/stages/0/args/TOKEN", true},
		{"environment/variables/*", "environment/variables/API_TOKEN", true},
		{"environment/variables/*", "environment/mode", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchGlob(tt.pattern, tt.path))
		})
	}
}

func TestPathToSlash(t *testing.T) {
	assert.Equal(t, "build/stages/0/commands/1", pathToSlash("build.stages[0].commands[1]"))
	assert.Equal(t, "environment/variables/API_TOKEN", pathToSlash("environment.variables.API_TOKEN"))
}
