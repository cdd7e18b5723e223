package modules

import (
	"context"
	"fmt"
	"strings"

	"github.com/sofmeright/stagecraft/src/config"
	"github.com/sofmeright/stagecraft/src/lint"
)

func init() {
	lint.Register("hardening", func() lint.Module { return &hardeningModule{} })
}

// hardeningModule flags runtime and production settings that weaken
// container isolation.
type hardeningModule struct{}

func (m *hardeningModule) Name() string        { return "hardening" }
func (m *hardeningModule) DefaultEnabled() bool { return true }

func (m *hardeningModule) Check(_ context.Context, cfg *config.ContainerConfig) ([]lint.Finding, error) {
	var findings []lint.Finding
	add := func(sev lint.Severity, path, msg string) {
		findings = append(findings, lint.Finding{
			Path:     path,
			Module:   m.Name(),
			Severity: sev,
			Message:  msg,
		})
	}

	if cfg.Environment.Mode == config.ModeProd {
		prod := cfg.Environment.Tools.Prod
		if !prod.Hardening.NonRootUser {
			add(lint.SeverityWarning, "environment.tools.prod.hardening.non_root_user",
				"production image runs as root")
		}
		if !prod.Hardening.ReadOnlyFS {
			add(lint.SeverityWarning, "environment.tools.prod.hardening.read_only_fs",
				"production image has a writable filesystem")
		}
		if !prod.Optimization.StripSymbols {
			add(lint.SeverityInfo, "environment.tools.prod.optimization.strip_symbols",
				"production binaries keep debug symbols")
		}
	}

	sec := cfg.Runtime.Security
	if !sec.Runtime.ReadonlyRootfs {
		add(lint.SeverityWarning, "runtime.security.runtime.readonly_rootfs", "root filesystem is writable")
	}
	if !sec.Runtime.NoNewPrivileges {
		add(lint.SeverityWarning, "runtime.security.runtime.no_new_privileges",
			"processes may gain privileges through setuid binaries")
	}
	if strings.EqualFold(sec.Isolation.SeccompProfile, "unconfined") {
		add(lint.SeverityWarning, "runtime.security.isolation.seccomp_profile", "seccomp filtering is disabled")
	}
	if strings.EqualFold(sec.Isolation.ApparmorProfile, "unconfined") {
		add(lint.SeverityWarning, "runtime.security.isolation.apparmor_profile", "AppArmor confinement is disabled")
	}

	if cfg.Runtime.Orchestration.Network.Mode == config.NetworkHost {
		add(lint.SeverityWarning, "runtime.orchestration.network.mode", "host networking shares the host network namespace")
	}

	for i, s := range sec.Secrets {
		if s.Mode&0o007 != 0 {
			add(lint.SeverityWarning, fmt.Sprintf("runtime.security.secrets[%d].mode", i),
				fmt.Sprintf("secret %s is accessible to other users (mode %#o)", s.Name, s.Mode))
		}
	}

	return findings, nil
}
