package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sofmeright/stagecraft/src/lint"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// coreGroup holds validation messages that carry no config path.
const coreGroup = "core"

// Group returns the top-level config section a "path: message" string or
// finding path belongs to: "runtime.ports[0]: ..." is "runtime". Messages
// without a path belong to "core".
func Group(msg string) string {
	path, _, ok := strings.Cut(msg, ": ")
	if !ok || strings.ContainsAny(path, " ") {
		return coreGroup
	}
	if i := strings.IndexAny(path, ".["); i >= 0 {
		path = path[:i]
	}
	return path
}

// groupBy buckets items by key and returns the keys sorted, with "core"
// first when present.
func groupBy[T any](items []T, key func(T) string) ([]string, map[string][]T) {
	grouped := make(map[string][]T)
	for _, it := range items {
		k := key(it)
		grouped[k] = append(grouped[k], it)
	}
	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i] == coreGroup) != (keys[j] == coreGroup) {
			return keys[i] == coreGroup
		}
		return keys[i] < keys[j]
	})
	return keys, grouped
}

// ValidationReport renders validation errors grouped by config section,
// preserving their original order within each group. Returns true if
// there were any errors.
func ValidationReport(w io.Writer, errs []string, color bool) bool {
	sec := NewSection(w, "Validate", 0, color)
	defer sec.Close()

	if len(errs) == 0 {
		SummaryRow(sec, "config", StatusSuccess, "valid", color)
		return false
	}

	groups, grouped := groupBy(errs, Group)
	for _, g := range groups {
		sec.Row("%s", colorize(g, colorBold, color))
		for _, e := range grouped[g] {
			sec.Row("  %s %s", StatusIcon(StatusFailed, color), e)
		}
	}
	sec.Separator()
	SummaryRow(sec, "config", StatusFailed, fmt.Sprintf("%d error(s)", len(errs)), color)
	return true
}

// SectionFindings renders findings grouped by config section inside a
// section. Findings keep the engine's order within each group.
func SectionFindings(sec *Section, findings []lint.Finding, color bool) {
	if len(findings) == 0 {
		return
	}

	groups, grouped := groupBy(findings, func(f lint.Finding) string { return Group(f.Path + ": ") })
	for _, g := range groups {
		sec.Row("")
		sec.Row("%s", colorize(g, colorBold, color))
		for _, f := range grouped[g] {
			sec.Row("  %-4s  %-12s %s %s", severityTag(f.Severity, color), f.Module,
				Dimmed(f.Path, color), f.Message)
		}
	}
	sec.Row("")
}

// LintTable writes a per-module stats table inside a section.
func LintTable(sec *Section, stats []lint.ModuleStats) {
	sec.Row("%-14s%9s  %8s  %8s  %8s", "module", "findings", "critical", "warnings", "excluded")
	for _, s := range stats {
		sec.Row("%-14s%9d  %8d  %8d  %8d", s.Name, s.Findings, s.Critical, s.Warnings, s.Excluded)
	}
}

// Counts tallies findings by severity.
func Counts(findings []lint.Finding) (critical, warning, info int) {
	for _, f := range findings {
		switch f.Severity {
		case lint.SeverityCritical:
			critical++
		case lint.SeverityWarning:
			warning++
		default:
			info++
		}
	}
	return critical, warning, info
}

// FindingsSummaryLine returns a one-line findings summary, optionally colored.
func FindingsSummaryLine(findings []lint.Finding, modules int, color bool) string {
	critical, warning, info := Counts(findings)

	var parts []string
	if critical > 0 {
		parts = append(parts, colorize(fmt.Sprintf("%d critical", critical), colorRed, color))
	}
	if warning > 0 {
		parts = append(parts, colorize(fmt.Sprintf("%d warning", warning), colorYellow, color))
	}
	if info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", info))
	}

	summary := "no findings"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}

	total := colorize(fmt.Sprintf("%d", len(findings)), colorBold, color)
	return fmt.Sprintf("%s findings from %d modules: %s", total, modules, summary)
}

// severityTag returns a short severity label, optionally colored.
func severityTag(s lint.Severity, color bool) string {
	switch s {
	case lint.SeverityCritical:
		return colorize("CRIT", colorRed, color)
	case lint.SeverityWarning:
		return colorize("WARN", colorYellow, color)
	case lint.SeverityInfo:
		return colorize("INFO", colorGray, color)
	default:
		return s.String()
	}
}

func colorize(text, code string, color bool) string {
	if !color {
		return text
	}
	return code + text + colorReset
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal(os.Stdout) || IsCI()
}
