package modules

import (
	"context"
	"fmt"
	"strings"

	"github.com/sofmeright/stagecraft/src/config"
	"github.com/sofmeright/stagecraft/src/lint"
)

func init() {
	lint.Register("capabilities", func() lint.Module { return &capabilitiesModule{} })
}

// capabilitiesModule checks the Linux capability add/drop lists.
type capabilitiesModule struct {
	opts capabilitiesOptions
}

type capabilitiesOptions struct {
	// Forbidden capabilities are reported when added. Names may carry
	// the CAP_ prefix or not.
	Forbidden []string `yaml:"forbidden"`
}

func defaultCapabilitiesOptions() capabilitiesOptions {
	return capabilitiesOptions{Forbidden: []string{"ALL", "SYS_ADMIN", "SYS_PTRACE", "NET_ADMIN"}}
}

func (m *capabilitiesModule) Name() string        { return "capabilities" }
func (m *capabilitiesModule) DefaultEnabled() bool { return true }

// Configure implements lint.ConfigurableModule.
func (m *capabilitiesModule) Configure(opts map[string]any) error {
	m.opts = defaultCapabilitiesOptions()
	return decodeOptions(m.Name(), opts, &m.opts)
}

// normalizeCap maps "cap_net_admin" and "NET_ADMIN" to the same key.
func normalizeCap(c string) string {
	return strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(c)), "CAP_")
}

func (m *capabilitiesModule) Check(_ context.Context, cfg *config.ContainerConfig) ([]lint.Finding, error) {
	if m.opts.Forbidden == nil {
		m.opts = defaultCapabilitiesOptions()
	}

	caps := cfg.Runtime.Security.Capabilities
	var findings []lint.Finding
	add := func(sev lint.Severity, path, msg string) {
		findings = append(findings, lint.Finding{
			Path:     path,
			Module:   m.Name(),
			Severity: sev,
			Message:  msg,
		})
	}

	dropped := make(map[string]bool, len(caps.Drop))
	for _, c := range caps.Drop {
		dropped[normalizeCap(c)] = true
	}
	forbidden := make(map[string]bool, len(m.opts.Forbidden))
	for _, c := range m.opts.Forbidden {
		forbidden[normalizeCap(c)] = true
	}

	for i, c := range caps.Add {
		path := fmt.Sprintf("runtime.security.capabilities.add[%d]", i)
		key := normalizeCap(c)
		if dropped[key] {
			add(lint.SeverityWarning, path, fmt.Sprintf("%s is both added and dropped", c))
		}
		if forbidden[key] {
			add(lint.SeverityWarning, path, fmt.Sprintf("%s grants broad host privileges", c))
		}
	}

	if !dropped["ALL"] {
		add(lint.SeverityInfo, "runtime.security.capabilities.drop",
			"default capabilities are kept; drop ALL and add back what is needed")
	}

	return findings, nil
}
