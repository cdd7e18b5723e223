package modules

import (
	"context"
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/sofmeright/stagecraft/src/config"
	"github.com/sofmeright/stagecraft/src/lint"
)

func init() {
	lint.Register("unicode", func() lint.Module { return &unicodeModule{} })
}

// unicodeModule flags invisible and direction-changing characters in
// values that end up in the Dockerfile, where a RUN line can read one way
// and execute another.
type unicodeModule struct {
	opts unicodeOptions
}

type unicodeOptions struct {
	DetectBidi         *bool `yaml:"detect_bidi"`
	DetectZeroWidth    *bool `yaml:"detect_zero_width"`
	DetectControlASCII *bool `yaml:"detect_control_ascii"`
	// AllowControlASCII lists control codes (0-31, 127) that are not
	// reported. Tab, newline and carriage return are always allowed.
	AllowControlASCII []int `yaml:"allow_control_ascii"`
}

func (m *unicodeModule) Name() string        { return "unicode" }
func (m *unicodeModule) DefaultEnabled() bool { return true }

// Configure implements lint.ConfigurableModule.
func (m *unicodeModule) Configure(opts map[string]any) error {
	m.opts = unicodeOptions{}
	if err := decodeOptions(m.Name(), opts, &m.opts); err != nil {
		return err
	}
	for _, c := range m.opts.AllowControlASCII {
		switch {
		case c == '\t' || c == '\n' || c == '\r':
			return fmt.Errorf("%s: allow_control_ascii: %d is always allowed", m.Name(), c)
		case c < 0 || (c > 31 && c != 127):
			return fmt.Errorf("%s: allow_control_ascii: %d is not an ASCII control code", m.Name(), c)
		}
	}
	return nil
}

func (m *unicodeModule) Check(ctx context.Context, cfg *config.ContainerConfig) ([]lint.Finding, error) {
	var findings []lint.Finding
	scan := func(path, text string) {
		if !utf8.ValidString(text) {
			findings = append(findings, lint.Finding{
				Path:     path,
				Module:   m.Name(),
				Severity: lint.SeverityWarning,
				Message:  "invalid UTF-8 encoding",
			})
			return
		}
		col := 0
		for _, r := range text {
			col++
			msg := checkRune(r)
			if msg == "" || !m.enabled(r) {
				continue
			}
			findings = append(findings, lint.Finding{
				Path:     path,
				Module:   m.Name(),
				Severity: severityForRune(r),
				Message:  fmt.Sprintf("%s (U+%04X) at column %d", msg, r, col),
			})
		}
	}

	scan("base.os.name", cfg.Base.OS.Name)
	scan("base.os.tag", cfg.Base.OS.Tag)
	for i, p := range cfg.Environment.Dependencies.System.Packages {
		scan(fmt.Sprintf("environment.dependencies.system.packages[%d]", i), p.Name)
	}
	walkBaked(cfg, func(path, key, value string) {
		scan(path, key+value)
	})

	return findings, ctx.Err()
}

func (m *unicodeModule) enabled(r rune) bool {
	switch {
	case isBidi(r):
		return optOn(m.opts.DetectBidi)
	case isZeroWidth(r):
		return optOn(m.opts.DetectZeroWidth)
	case r < 0x80 && unicode.IsControl(r):
		return optOn(m.opts.DetectControlASCII) && !slices.Contains(m.opts.AllowControlASCII, int(r))
	}
	return true
}

func optOn(b *bool) bool { return b == nil || *b }

func isBidi(r rune) bool {
	return (r >= '\u202A' && r <= '\u202E') || (r >= '\u2066' && r <= '\u2069')
}

func isZeroWidth(r rune) bool {
	return r == '\u200B' || r == '\u200C' || r == '\u200D' || r == '\uFEFF'
}

func checkRune(r rune) string {
	// Bidi controls change rendering direction.
	switch r {
	case '\u202A':
		return "bidi override: left-to-right embedding"
	case '\u202B':
		return "bidi override: right-to-left embedding"
	case '\u202C':
		return "bidi override: pop directional formatting"
	case '\u202D':
		return "bidi override: left-to-right override"
	case '\u202E':
		return "bidi override: right-to-left override"
	case '\u2066':
		return "bidi override: left-to-right isolate"
	case '\u2067':
		return "bidi override: right-to-left isolate"
	case '\u2068':
		return "bidi override: first strong isolate"
	case '\u2069':
		return "bidi override: pop directional isolate"
	}

	switch r {
	case '\u200B':
		return "zero-width space"
	case '\u200C':
		return "zero-width non-joiner"
	case '\u200D':
		return "zero-width joiner"
	case '\uFEFF':
		return "zero-width no-break space (unexpected BOM)"
	}

	// Other invisible characters
	switch r {
	case '\u00AD':
		return "soft hyphen (invisible)"
	case '\u034F':
		return "combining grapheme joiner"
	case '\u2060':
		return "word joiner (invisible)"
	case '\u2061', '\u2062', '\u2063', '\u2064':
		return "invisible math operator"
	case '\u180E':
		return "mongolian vowel separator (invisible whitespace)"
	}

	// Whitespace that looks like a space but isn't one to the shell.
	switch r {
	case '\u00A0':
		return "non-breaking space"
	case '\u2000', '\u2001', '\u2002', '\u2003', '\u2004',
		'\u2005', '\u2006', '\u2007', '\u2008', '\u2009', '\u200A':
		return "unusual whitespace character"
	case '\u205F':
		return "medium mathematical space"
	case '\u3000':
		return "ideographic space"
	}

	if r != '\t' && r != '\n' && r != '\r' && unicode.IsControl(r) && r < 0x80 {
		return "ASCII control character"
	}

	if r >= 0xE0001 && r <= 0xE007F {
		return "tag character (invisible)"
	}

	return ""
}

func severityForRune(r rune) lint.Severity {
	switch {
	case isBidi(r), isZeroWidth(r):
		return lint.SeverityCritical
	case r >= 0xE0001 && r <= 0xE007F:
		return lint.SeverityCritical
	default:
		return lint.SeverityWarning
	}
}
