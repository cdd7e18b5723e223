package lint

import (
	"path/filepath"
	"strings"
)

// MatchGlob matches a glob pattern supporting ** against a forward-slash path.
// Exported so callers can reuse the engine's exclude semantics.
func MatchGlob(pattern, path string) bool { return matchGlob(pattern, path) }

// matchGlob extends filepath.Match with "**" (zero or more segments).
func matchGlob(pattern, path string) bool {
	if !strings.Contains(pattern, "**") {
		matched, _ := filepath.Match(pattern, path)
		return matched
	}

	idx := strings.Index(pattern, "**")
	prefix := strings.TrimRight(pattern[:idx], "/")
	suffix := strings.TrimLeft(pattern[idx+2:], "/")

	if prefix != "" {
		// The prefix may itself hold wildcards; match it against the
		// same number of leading segments.
		n := strings.Count(prefix, "/") + 1
		parts := strings.Split(path, "/")
		if len(parts) < n {
			return false
		}
		if ok, _ := filepath.Match(prefix, strings.Join(parts[:n], "/")); !ok {
			return false
		}
		path = strings.Join(parts[n:], "/")
	}

	if suffix == "" {
		return true
	}

	// Try the suffix against every tail: "a/b/c", "b/c", "c", "".
	parts := strings.Split(path, "/")
	for i := 0; i <= len(parts); i++ {
		if matchGlob(suffix, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}
