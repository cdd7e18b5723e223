package gitver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteToHTTPS(t *testing.T) {
	tests := map[string]string{
		"git@github.com:org/repo.git":          "https://github.com/org/repo",
		"https://gitlab.com/org/sub/repo.git":  "https://gitlab.com/org/sub/repo",
		"ssh://git@git.example.com:2222/o/r":   "https://git.example.com/o/r",
		"http://internal/org/repo":             "http://internal/org/repo",
		"/srv/git/repo.git":                    "/srv/git/repo",
	}
	for in, want := range tests {
		assert.Equal(t, want, remoteToHTTPS(in), in)
	}
}

func TestRepoNameFromRemote(t *testing.T) {
	tests := map[string]string{
		"git@github.com:org/repo.git":  "repo",
		"https://github.com/org/repo/": "repo",
		"git@host:repo.git":            "repo",
		"repo":                         "repo",
	}
	for in, want := range tests {
		assert.Equal(t, want, repoNameFromRemote(in), in)
	}
}

func TestMatchLicense(t *testing.T) {
	tests := map[string]string{
		"GNU AFFERO GENERAL PUBLIC LICENSE Version 3":                             "AGPL-3.0",
		"GNU LESSER GENERAL PUBLIC LICENSE Version 3 ... GNU General Public License": "LGPL-3.0",
		"GNU GENERAL PUBLIC LICENSE Version 2, June 1991":                         "GPL-2.0",
		"Apache License\nVersion 2.0, January 2004":                               "Apache-2.0",
		"Permission is hereby granted, free of charge ... THE SOFTWARE":           "MIT",
		"Redistribution and use ... Neither the name of":                          "BSD-3-Clause",
		"Redistribution and use in source and binary forms":                       "BSD-2-Clause",
		"ISC License":                                                             "ISC",
		"All rights reserved.":                                                    "",
	}
	for text, want := range tests {
		assert.Equal(t, want, matchLicense(text), text)
	}
}

func TestDetectLicense_FirstMatchingFile(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", detectLicense(dir))

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "COPYING"), []byte("GNU GENERAL PUBLIC LICENSE Version 3"), 0o644))
	assert.Equal(t, "GPL-3.0", detectLicense(dir))

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "LICENSE.md"), []byte("MIT License"), 0o644))
	assert.Equal(t, "MIT", detectLicense(dir))
}
