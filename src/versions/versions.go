// Package versions extracts toolchain version choices from a release
// listing such as the Rust "Stable: 1.87.0" channel page.
package versions

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Option is one selectable version.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// channels are matched in this order and listed first.
var channels = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Stable", regexp.MustCompile(`Stable:\s*([0-9.]+)`)},
	{"Beta", regexp.MustCompile(`Beta:\s*([0-9.]+)`)},
	{"Nightly", regexp.MustCompile(`Nightly:\s*([0-9.]+)`)},
}

var tokenRe = regexp.MustCompile(`\b\d+\.\d+\.\d+\b`)

// Parse returns the channel versions labelled "Stable (1.87.0)" and so on,
// followed by every other bare N.N.N token in first-seen order without
// duplicates. A non-empty query keeps only options whose value contains it.
func Parse(content, query string) []Option {
	var opts []Option
	seen := make(map[string]bool)

	for _, ch := range channels {
		m := ch.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		v := strings.TrimRight(m[1], ".")
		if v == "" {
			continue
		}
		opts = append(opts, Option{Label: ch.name + " (" + v + ")", Value: v})
		seen[v] = true
	}

	for _, tok := range tokenRe.FindAllString(content, -1) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		if _, err := semver.StrictNewVersion(tok); err != nil {
			// Leading zeros ("1.02.3") are not versions.
			continue
		}
		opts = append(opts, Option{Label: tok, Value: tok})
	}

	if query == "" {
		return opts
	}
	filtered := opts[:0]
	for _, o := range opts {
		if strings.Contains(o.Value, query) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// Latest returns the highest semantic version among opts, or false when
// none parse.
func Latest(opts []Option) (Option, bool) {
	var (
		best    Option
		bestVer *semver.Version
	)
	for _, o := range opts {
		v, err := semver.NewVersion(o.Value)
		if err != nil {
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) {
			best, bestVer = o, v
		}
	}
	return best, bestVer != nil
}
