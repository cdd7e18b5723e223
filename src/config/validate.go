package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"
)

// Core validation messages. They come first, in this order, so callers
// can match on them.
const (
	MsgBaseImageNameEmpty = "base image name empty"
	MsgInvalidMode        = "invalid environment mode"
	MsgInvalidPorts       = "invalid port configuration"
	MsgInvalidResources   = "invalid resource limits"
)

const (
	msgNilConfig = "config is nil"
	maxPort      = 65535

	maxSecretMode uint32 = 0o777
)

// ValidationError carries every problem Validate found.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Errors, "; ")
}

// Check runs Validate and wraps a non-empty result in a *ValidationError.
func Check(cfg *ContainerConfig) error {
	if errs := Validate(cfg); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Validate checks cfg and returns one message per problem, or nil if the
// config is valid. Every rule runs regardless of earlier failures and
// messages are never deduplicated, so the output order is stable.
//
// The four core rules produce fixed messages and always come first. The
// remaining rules produce "path: message" strings.
func Validate(cfg *ContainerConfig) []string {
	if cfg == nil {
		return []string{msgNilConfig}
	}

	var errs []string

	// ── Core rules ────────────────────────────────────────────────────────

	if cfg.Base.OS.Name == "" {
		errs = append(errs, MsgBaseImageNameEmpty)
	}
	if !cfg.Environment.Mode.Valid() {
		errs = append(errs, MsgInvalidMode)
	}
	for _, p := range cfg.Runtime.Ports {
		if !portInRange(p.Host) || !portInRange(p.Container) {
			errs = append(errs, MsgInvalidPorts)
			break
		}
	}
	if !resourcesValid(cfg.Runtime.Orchestration.Resources) {
		errs = append(errs, MsgInvalidResources)
	}

	if cfg.Version < 0 || cfg.Version > SchemaVersion {
		errs = append(errs, fmt.Sprintf("version: unsupported schema version %d (latest supported: %d)", cfg.Version, SchemaVersion))
	}

	// ── Base ──────────────────────────────────────────────────────────────

	img := cfg.Base.OS
	if !img.Provider.Valid() {
		errs = append(errs, fmt.Sprintf("base.os.provider: unknown provider %q (supported: %s)", img.Provider, supported(ImageProviders)))
	}
	if !img.Architecture.Valid() {
		errs = append(errs, fmt.Sprintf("base.os.architecture: unknown architecture %q (supported: %s)", img.Architecture, supported(Architectures)))
	}

	tc := cfg.Base.Toolchain
	if !tc.Languages.Name.Valid() {
		errs = append(errs, fmt.Sprintf("base.toolchain.languages.name: unknown language %q (supported: %s)", tc.Languages.Name, supported(Languages)))
	}
	if pm := tc.System.PackageManager; pm != "" && !pm.Valid() {
		errs = append(errs, fmt.Sprintf("base.toolchain.system.package_manager: unknown package manager %q (supported: %s)", pm, supported(PackageManagers)))
	}

	// ── Runtime ───────────────────────────────────────────────────────────

	for i, p := range cfg.Runtime.Ports {
		errs = append(errs, validatePort(p, fmt.Sprintf("runtime.ports[%d]", i), false)...)
	}

	orch := cfg.Runtime.Orchestration
	if !orch.Network.Mode.Valid() {
		errs = append(errs, fmt.Sprintf("runtime.orchestration.network.mode: unknown network mode %q (supported: %s)", orch.Network.Mode, supported(NetworkModes)))
	}
	for i, p := range orch.Network.Ports {
		errs = append(errs, validatePort(p, fmt.Sprintf("runtime.orchestration.network.ports[%d]", i), true)...)
	}
	errs = append(errs, validateResources(orch.Resources, "runtime.orchestration.resources")...)
	for i, v := range orch.Volumes {
		vpath := fmt.Sprintf("runtime.orchestration.volumes[%d]", i)
		if !v.Type.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown volume type %q (supported: %s)", vpath, v.Type, supported(VolumeTypes)))
		}
		if v.Source == "" && v.Type != VolumeTmpfs {
			errs = append(errs, fmt.Sprintf("%s: source is required", vpath))
		}
		if v.Target == "" {
			errs = append(errs, fmt.Sprintf("%s: target is required", vpath))
		}
	}

	sec := cfg.Runtime.Security
	for i, s := range sec.Secrets {
		spath := fmt.Sprintf("runtime.security.secrets[%d]", i)
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: name is required", spath))
		}
		if s.MountPath == "" {
			errs = append(errs, fmt.Sprintf("%s: mount_path is required", spath))
		}
		if s.Mode > maxSecretMode {
			errs = append(errs, fmt.Sprintf("%s: mode %#o exceeds %#o", spath, s.Mode, maxSecretMode))
		}
	}

	obs := cfg.Runtime.Observability
	if !obs.Logging.Driver.Valid() {
		errs = append(errs, fmt.Sprintf("runtime.observability.logging.driver: unknown log driver %q (supported: %s)", obs.Logging.Driver, supported(LogDrivers)))
	}
	if obs.Logging.Rotate.MaxFiles < 0 {
		errs = append(errs, fmt.Sprintf("runtime.observability.logging.rotate.max_files: must be >= 0, got %d", obs.Logging.Rotate.MaxFiles))
	}
	if obs.Metrics.Enabled {
		if !portInRange(obs.Metrics.Port) {
			errs = append(errs, fmt.Sprintf("runtime.observability.metrics.port: %d out of range 1-%d", obs.Metrics.Port, maxPort))
		}
		if !strings.HasPrefix(obs.Metrics.Path, "/") {
			errs = append(errs, fmt.Sprintf("runtime.observability.metrics.path: %q must start with /", obs.Metrics.Path))
		}
	}
	if obs.Tracing.Enabled && !obs.Tracing.Exporter.Valid() {
		errs = append(errs, fmt.Sprintf("runtime.observability.tracing.exporter: unknown exporter %q (supported: %s)", obs.Tracing.Exporter, supported(TracingExporters)))
	}
	if r := obs.Tracing.SamplingRate; r < 0 || r > 1 {
		errs = append(errs, fmt.Sprintf("runtime.observability.tracing.sampling_rate: %v not in [0, 1]", r))
	}

	health := cfg.Runtime.Health
	if !health.Check.Type.Valid() {
		errs = append(errs, fmt.Sprintf("runtime.health.check.type: unknown check type %q (supported: %s)", health.Check.Type, supported(HealthCheckTypes)))
	}
	errs = append(errs, validateDuration(health.Check.Interval, "runtime.health.check.interval")...)
	errs = append(errs, validateDuration(health.Check.Timeout, "runtime.health.check.timeout")...)
	if health.Check.Retries < 0 {
		errs = append(errs, fmt.Sprintf("runtime.health.check.retries: must be >= 0, got %d", health.Check.Retries))
	}
	if !health.Restart.Policy.Valid() {
		errs = append(errs, fmt.Sprintf("runtime.health.restart.policy: unknown restart policy %q (supported: %s)", health.Restart.Policy, supported(RestartPolicies)))
	}
	if health.Restart.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("runtime.health.restart.max_retries: must be >= 0, got %d", health.Restart.MaxRetries))
	}

	// ── Build ─────────────────────────────────────────────────────────────

	stageNames := make(map[string]bool)
	for i, s := range cfg.Build.Stages {
		spath := fmt.Sprintf("build.stages[%d]", i)

		if s.Name != "" {
			if stageNames[s.Name] {
				errs = append(errs, fmt.Sprintf("%s: duplicate stage name %q", spath, s.Name))
			}
			stageNames[s.Name] = true
		}

		for j, c := range s.Commands {
			if strings.TrimSpace(c) == "" {
				errs = append(errs, fmt.Sprintf("%s.commands[%d]: command is empty", spath, j))
			}
		}

		for j, p := range s.Artifacts.Include {
			errs = append(errs, validateRelativePath(p, fmt.Sprintf("%s.artifacts.include[%d]", spath, j))...)
		}
		for j, p := range s.Artifacts.Exclude {
			errs = append(errs, validateRelativePath(p, fmt.Sprintf("%s.artifacts.exclude[%d]", spath, j))...)
		}
	}

	// ── Dockerfile text ───────────────────────────────────────────────────

	errs = append(errs, validateArtifactText(cfg)...)

	// ── Project ───────────────────────────────────────────────────────────

	if cfg.Project != nil {
		for _, e := range ValidateProject(*cfg.Project) {
			errs = append(errs, "project."+e)
		}
	}

	return errs
}

func portInRange(p int) bool {
	return p > 0 && p <= maxPort
}

// validatePort checks protocol membership and, when withRange is set, the
// port numbers. Top-level ports get their range checked by the core rule.
func validatePort(p PortMapping, path string, withRange bool) []string {
	var errs []string
	if withRange {
		if !portInRange(p.Host) {
			errs = append(errs, fmt.Sprintf("%s: host port %d out of range 1-%d", path, p.Host, maxPort))
		}
		if !portInRange(p.Container) {
			errs = append(errs, fmt.Sprintf("%s: container port %d out of range 1-%d", path, p.Container, maxPort))
		}
	}
	if !p.Protocol.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown protocol %q (supported: %s)", path, p.Protocol, supported(Protocols)))
	}
	return errs
}

// resourcesValid is the core resource rule. An absent swap counts as equal
// to the limit; an unparsable magnitude fails.
func resourcesValid(r ResourcesConfig) bool {
	if r.CPU.Shares <= 0 {
		return false
	}
	limit, err := r.Memory.Limit.Bytes()
	if err != nil || limit <= 0 {
		return false
	}
	if r.Memory.Swap.IsZero() {
		return true
	}
	swap, err := r.Memory.Swap.Bytes()
	return err == nil && swap >= limit
}

// validateResources explains which part of the resource rule failed.
func validateResources(r ResourcesConfig, path string) []string {
	var errs []string

	if r.CPU.Shares <= 0 {
		errs = append(errs, fmt.Sprintf("%s.cpu.shares: must be > 0, got %d", path, r.CPU.Shares))
	}
	errs = append(errs, validateDuration(r.CPU.Quota, path+".cpu.quota")...)

	limit, err := r.Memory.Limit.Bytes()
	switch {
	case err != nil:
		errs = append(errs, fmt.Sprintf("%s.memory.limit: %v", path, err))
	case limit <= 0:
		errs = append(errs, fmt.Sprintf("%s.memory.limit: must be > 0", path))
	}

	if !r.Memory.Swap.IsZero() {
		swap, serr := r.Memory.Swap.Bytes()
		switch {
		case serr != nil:
			errs = append(errs, fmt.Sprintf("%s.memory.swap: %v", path, serr))
		case err == nil && swap < limit:
			errs = append(errs, fmt.Sprintf("%s.memory.swap: %s is less than limit %s", path, r.Memory.Swap, r.Memory.Limit))
		}
	}

	return errs
}

// validateDuration accepts an empty string or a Go duration ("30s", "200ms").
func validateDuration(s, path string) []string {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return []string{fmt.Sprintf("%s: %q is not a duration", path, s)}
	}
	if d < 0 {
		return []string{fmt.Sprintf("%s: %q must not be negative", path, s)}
	}
	return nil
}

// validateRelativePath checks that an artifact path stays inside the build
// context.
func validateRelativePath(p string, path string) []string {
	if p == "" {
		return []string{fmt.Sprintf("%s: path is empty", path)}
	}
	if filepath.IsAbs(p) {
		return []string{fmt.Sprintf("%s: path %q must be relative, not absolute", path, p)}
	}
	if strings.HasPrefix(p, "~") {
		return []string{fmt.Sprintf("%s: path %q must not start with ~", path, p)}
	}
	if strings.Contains(p, "..") {
		return []string{fmt.Sprintf("%s: path %q must not contain '..'", path, p)}
	}
	return nil
}

// validateArtifactText checks the values Generate writes into instructions
// verbatim. Each must stay on one line, and ENV, LABEL and ARG keys must
// be single tokens.
func validateArtifactText(cfg *ContainerConfig) []string {
	var errs []string
	oneLine := func(path, s string) {
		if strings.ContainsAny(s, "\r\n") {
			errs = append(errs, fmt.Sprintf("%s: must not contain a line break", path))
		}
	}
	token := func(path, s string) {
		if s == "" || strings.ContainsRune(s, '=') || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
			errs = append(errs, fmt.Sprintf("%s: %q must be non-empty with no whitespace or '='", path, s))
		}
	}
	keys := func(path string, m map[string]string, checkValues bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			token(path, k)
			if checkValues {
				oneLine(fmt.Sprintf("%s.%s", path, k), m[k])
			}
		}
	}

	if strings.IndexFunc(cfg.Base.OS.Name, unicode.IsSpace) >= 0 {
		errs = append(errs, fmt.Sprintf("base.os.name: %q must not contain whitespace", cfg.Base.OS.Name))
	}
	if strings.IndexFunc(cfg.Base.OS.Tag, unicode.IsSpace) >= 0 {
		errs = append(errs, fmt.Sprintf("base.os.tag: %q must not contain whitespace", cfg.Base.OS.Tag))
	}

	langs := cfg.Base.Toolchain.Languages
	oneLine("base.toolchain.languages.version", langs.Version)
	for i, c := range langs.Components {
		token(fmt.Sprintf("base.toolchain.languages.components[%d]", i), c)
	}

	for i, p := range cfg.Environment.Dependencies.System.Packages {
		token(fmt.Sprintf("environment.dependencies.system.packages[%d].name", i), p.Name)
	}

	// ENV and LABEL values are quoted with line breaks escaped.
	keys("environment.variables", cfg.Environment.Variables, false)
	keys("build.labels", cfg.Build.Labels, false)

	for i, s := range cfg.Build.Stages {
		spath := fmt.Sprintf("build.stages[%d]", i)
		keys(spath+".args", s.Args, true)
		for j, c := range s.Commands {
			oneLine(fmt.Sprintf("%s.commands[%d]", spath, j), c)
		}
	}
	return errs
}
