package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/stagecraft/src/config"
	"github.com/sofmeright/stagecraft/src/lint"
)

func hardeningPaths(t *testing.T, cfg config.ContainerConfig) map[string]lint.Severity {
	t.Helper()
	findings, err := (&hardeningModule{}).Check(context.Background(), &cfg)
	require.NoError(t, err)

	out := make(map[string]lint.Severity, len(findings))
	for _, f := range findings {
		out[f.Path] = f.Severity
	}
	return out
}

func TestHardening_DefaultIsClean(t *testing.T) {
	assert.Empty(t, hardeningPaths(t, config.Default()))
}

func TestHardening_ProdChecksOnlyInProd(t *testing.T) {
	cfg := config.Default()
	cfg.Environment.Tools.Prod.Hardening.NonRootUser = false
	cfg.Environment.Tools.Prod.Hardening.ReadOnlyFS = false
	cfg.Environment.Tools.Prod.Optimization.StripSymbols = false

	assert.Empty(t, hardeningPaths(t, cfg))

	cfg.Environment.Mode = config.ModeProd
	assert.Equal(t, map[string]lint.Severity{
		"environment.tools.prod.hardening.non_root_user":     lint.SeverityWarning,
		"environment.tools.prod.hardening.read_only_fs":      lint.SeverityWarning,
		"environment.tools.prod.optimization.strip_symbols": lint.SeverityInfo,
	}, hardeningPaths(t, cfg))
}

func TestHardening_RuntimeChecks(t *testing.T) {
	cfg := config.Default()
	cfg.Runtime.Security.Runtime.ReadonlyRootfs = false
	cfg.Runtime.Security.Runtime.NoNewPrivileges = false
	cfg.Runtime.Security.Isolation.SeccompProfile = "Unconfined"
	cfg.Runtime.Security.Isolation.ApparmorProfile = "unconfined"
	cfg.Runtime.Orchestration.Network.Mode = config.NetworkHost
	cfg.Runtime.Security.Secrets = append(cfg.Runtime.Security.Secrets,
		config.SecretMount{Name: "token", MountPath: "/run/secrets/token", Mode: 0o644})

	assert.Equal(t, map[string]lint.Severity{
		"runtime.security.runtime.readonly_rootfs":    lint.SeverityWarning,
		"runtime.security.runtime.no_new_privileges":  lint.SeverityWarning,
		"runtime.security.isolation.seccomp_profile":  lint.SeverityWarning,
		"runtime.security.isolation.apparmor_profile": lint.SeverityWarning,
		"runtime.orchestration.network.mode":          lint.SeverityWarning,
		"runtime.security.secrets[1].mode":            lint.SeverityWarning,
	}, hardeningPaths(t, cfg))
}

func TestHardening_SecretModeMessage(t *testing.T) {
	cfg := config.Default()
	cfg.Runtime.Security.Secrets = []config.SecretMount{{Name: "token", MountPath: "/run/secrets", Mode: 0o604}}

	findings, err := (&hardeningModule{}).Check(context.Background(), &cfg)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "secret token is accessible to other users (mode 0604)", findings[0].Message)
}
