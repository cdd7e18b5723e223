package gitver

import (
	"os"
	"path/filepath"
	"strings"
)

// repoNameFromRemote extracts the repository name from a remote URL.
// Handles SSH (git@host:org/repo.git) and HTTPS (https://host/org/repo.git).
func repoNameFromRemote(remote string) string {
	remote = strings.TrimSuffix(strings.TrimSuffix(remote, "/"), ".git")
	if i := strings.LastIndexAny(remote, "/:"); i != -1 {
		return remote[i+1:]
	}
	return remote
}

// remoteToHTTPS converts a remote URL to an https URL suitable for the
// org.opencontainers.image.source label.
func remoteToHTTPS(remote string) string {
	remote = strings.TrimSuffix(remote, ".git")

	switch {
	case strings.HasPrefix(remote, "https://"), strings.HasPrefix(remote, "http://"):
		return remote
	case strings.HasPrefix(remote, "ssh://"):
		// ssh://git@host[:port]/org/repo
		rest := strings.TrimPrefix(remote, "ssh://")
		if _, after, ok := strings.Cut(rest, "@"); ok {
			rest = after
		}
		host, path, _ := strings.Cut(rest, "/")
		host, _, _ = strings.Cut(host, ":")
		return "https://" + host + "/" + path
	}

	// scp-like: git@host:org/repo
	if _, after, ok := strings.Cut(remote, "@"); ok {
		return "https://" + strings.Replace(after, ":", "/", 1)
	}
	return remote
}

var licenseFiles = []string{
	"LICENSE", "LICENSE.md", "LICENSE.txt",
	"LICENCE", "LICENCE.md", "LICENCE.txt",
	"COPYING", "COPYING.md",
}

// detectLicense reads the first recognizable license file in rootDir.
func detectLicense(rootDir string) string {
	for _, name := range licenseFiles {
		data, err := os.ReadFile(filepath.Join(rootDir, name))
		if err != nil {
			continue
		}
		if id := matchLicense(string(data)); id != "" {
			return id
		}
	}
	return ""
}

// licenseRule matches when every phrase in all is present and none in none.
type licenseRule struct {
	id   string
	all  []string
	none []string
}

// Order matters: AGPL and LGPL text also mentions the GPL.
var licenseRules = []licenseRule{
	{id: "AGPL-3.0", all: []string{"gnu affero general public license", "version 3"}},
	{id: "LGPL-3.0", all: []string{"gnu lesser general public license", "version 3"}},
	{id: "LGPL-2.1", all: []string{"gnu lesser general public license", "version 2"}},
	{id: "GPL-3.0", all: []string{"gnu general public license", "version 3"}},
	{id: "GPL-2.0", all: []string{"gnu general public license", "version 2"}},
	{id: "Apache-2.0", all: []string{"apache license", "version 2.0"}},
	{id: "MPL-2.0", all: []string{"mozilla public license", "2.0"}},
	{id: "MIT", all: []string{"mit license"}},
	{id: "MIT", all: []string{"permission is hereby granted", "the software"}},
	{id: "BSD-3-Clause", all: []string{"redistribution and use", "neither the name"}},
	{id: "BSD-2-Clause", all: []string{"redistribution and use"}, none: []string{"neither the name", "gnu"}},
	{id: "ISC", all: []string{"isc license"}},
	{id: "Unlicense", all: []string{"the unlicense"}},
}

// matchLicense identifies an SPDX identifier from license text.
func matchLicense(text string) string {
	lower := strings.ToLower(text)
rules:
	for _, r := range licenseRules {
		for _, p := range r.all {
			if !strings.Contains(lower, p) {
				continue rules
			}
		}
		for _, p := range r.none {
			if strings.Contains(lower, p) {
				continue rules
			}
		}
		return r.id
	}
	return ""
}
