package build

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/sofmeright/stagecraft/src/config"
)

// Workdir is the directory sources are copied into.
const Workdir = "/workspace"

// Artifact is a rendered Dockerfile, one instruction per line.
type Artifact struct {
	Lines []string
}

// String joins the lines with a trailing newline.
func (a *Artifact) String() string {
	if len(a.Lines) == 0 {
		return ""
	}
	return strings.Join(a.Lines, "\n") + "\n"
}

// WriteTo writes the artifact text to w.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, a.String())
	return int64(n), err
}

// Render validates cfg and generates its Dockerfile. An invalid config
// returns a *config.ValidationError and no artifact.
func Render(cfg config.ContainerConfig) (*Artifact, error) {
	if err := config.Check(&cfg); err != nil {
		return nil, err
	}
	return &Artifact{Lines: Generate(cfg)}, nil
}

// Generate compiles cfg into Dockerfile instructions. Output depends only
// on cfg, so equal inputs give identical lines. Generate does not
// validate; an invalid config yields a best-effort result.
//
// Order:
//
//	FROM, LABELs, WORKDIR, system packages, toolchain bootstrap, ENVs,
//	COPY, then for each stage its ARGs and RUN commands.
func Generate(cfg config.ContainerConfig) []string {
	var lines []string

	lines = append(lines, "FROM "+cfg.Base.OS.Reference())

	for _, k := range slices.Sorted(maps.Keys(cfg.Build.Labels)) {
		lines = append(lines, "LABEL "+k+"="+quote(cfg.Build.Labels[k]))
	}

	lines = append(lines, "WORKDIR "+Workdir)

	if pkgs := cfg.Environment.Dependencies.System.Packages; len(pkgs) > 0 {
		names := make([]string, 0, len(pkgs))
		for _, p := range pkgs {
			names = append(names, p.Name)
		}
		lines = append(lines, installLine(cfg.Base.Toolchain.System.PackageManager, names))
	}

	lines = append(lines, bootstrapLines(cfg.Base)...)

	for _, k := range slices.Sorted(maps.Keys(cfg.Environment.Variables)) {
		lines = append(lines, "ENV "+k+"="+quote(cfg.Environment.Variables[k]))
	}

	lines = append(lines, "COPY . .")

	for _, stage := range cfg.Build.Stages {
		for _, k := range slices.Sorted(maps.Keys(stage.Args)) {
			if v := stage.Args[k]; v != "" {
				lines = append(lines, "ARG "+k+"="+quote(v))
			} else {
				lines = append(lines, "ARG "+k)
			}
		}
		for _, cmd := range stage.Commands {
			if strings.TrimSpace(cmd) == "" {
				continue
			}
			lines = append(lines, "RUN "+cmd)
		}
	}

	return lines
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// quote renders a LABEL, ENV or ARG value in double quotes.
func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
