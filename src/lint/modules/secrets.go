package modules

import (
	"context"
	"fmt"

	"github.com/zricethezav/gitleaks/v8/detect"
	"github.com/zricethezav/gitleaks/v8/report"

	"github.com/sofmeright/stagecraft/src/config"
	"github.com/sofmeright/stagecraft/src/lint"
)

func init() {
	lint.Register("secrets", func() lint.Module { return &secretsModule{} })
}

// secretsModule runs the gitleaks default ruleset over every config value
// that ends up baked into the image: environment variables, build labels,
// stage args and stage commands.
type secretsModule struct {
	detect func([]byte) []report.Finding
}

func (m *secretsModule) Name() string        { return "secrets" }
func (m *secretsModule) DefaultEnabled() bool { return true }

// candidate is one scannable value and the config path it came from.
type candidate struct {
	path string
	text string
}

func (m *secretsModule) Check(ctx context.Context, cfg *config.ContainerConfig) ([]lint.Finding, error) {
	// Lazy-init the detector (each engine gets its own module instance)
	if m.detect == nil {
		d, err := detect.NewDetectorDefaultConfig()
		if err != nil {
			return nil, err
		}
		m.detect = d.DetectBytes
	}

	var findings []lint.Finding
	for _, c := range secretCandidates(cfg) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, h := range m.detect([]byte(c.text)) {
			findings = append(findings, lint.Finding{
				Path:     c.path,
				Module:   m.Name(),
				Severity: lint.SeverityCritical,
				Message:  h.Description + " (" + h.RuleID + ")",
			})
		}
	}
	return findings, nil
}

// secretCandidates renders key/value pairs as KEY="value" so the
// assignment-shaped gitleaks rules can match them.
func secretCandidates(cfg *config.ContainerConfig) []candidate {
	var out []candidate
	walkBaked(cfg, func(path, key, value string) {
		text := value
		if key != "" {
			text = fmt.Sprintf("%s=%q", key, value)
		}
		out = append(out, candidate{path: path, text: text})
	})
	return out
}
