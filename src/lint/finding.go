package lint

import "fmt"

// Severity ranks a finding. Engine output lists the highest first, and
// only critical findings fail a lint run.
type Severity int

const (
	// SeverityInfo notes a config value worth a look, such as an unpinned package.
	SeverityInfo Severity = iota
	// SeverityWarning marks a value likely to produce a fragile or weak image.
	SeverityWarning
	// SeverityCritical marks a value that must not ship, such as a leaked secret.
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Finding is one problem a module found at a config path. Path uses the
// dotted form with bracketed list indexes, e.g.
// "build.stages[0].commands[1]", and is what lint.exclude globs match.
type Finding struct {
	Path     string
	Module   string
	Severity Severity
	Message  string
}

// String renders "path: [module] severity: message".
func (f Finding) String() string {
	return fmt.Sprintf("%s: [%s] %s: %s", f.Path, f.Module, f.Severity, f.Message)
}
