package output

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sofmeright/stagecraft/src/lint"
)

// IsCI reports whether we are running under a CI system.
func IsCI() bool {
	return os.Getenv("CI") == "true"
}

// JUnit XML types for CI test reporting.

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// configSections are the test cases every report lists, so a clean run
// still shows what was checked.
var configSections = []string{coreGroup, "project", "base", "environment", "runtime", "build"}

// ValidationJUnit builds a report with one suite and one test case per
// config section. Each section with errors is a failure.
func ValidationJUnit(errs []string, elapsed time.Duration) JUnitTestSuites {
	_, grouped := groupBy(errs, Group)

	suite := JUnitTestSuite{
		Name: "stagecraft/validate",
		Time: fmt.Sprintf("%.3f", elapsed.Seconds()),
	}
	for _, section := range sectionsWith(grouped) {
		tc := JUnitTestCase{Name: section, Classname: "stagecraft.validate", Time: "0.000"}
		if ee := grouped[section]; len(ee) > 0 {
			tc.Failure = &JUnitFailure{
				Message: fmt.Sprintf("%d error(s) in %s", len(ee), section),
				Type:    "validation",
				Body:    strings.Join(ee, "\n"),
			}
			suite.Failures++
		}
		suite.Cases = append(suite.Cases, tc)
		suite.Tests++
	}

	return JUnitTestSuites{
		Name:     "stagecraft-validate",
		Tests:    suite.Tests,
		Failures: suite.Failures,
		Time:     suite.Time,
		Suites:   []JUnitTestSuite{suite},
	}
}

// LintJUnit builds a report where each lint module is a suite and each
// config section a test case. Only critical findings are failures.
func LintJUnit(findings []lint.Finding, modules []string, elapsed time.Duration) JUnitTestSuites {
	byModule := make(map[string]map[string][]lint.Finding, len(modules))
	for _, f := range findings {
		if byModule[f.Module] == nil {
			byModule[f.Module] = make(map[string][]lint.Finding)
		}
		g := Group(f.Path + ": ")
		byModule[f.Module][g] = append(byModule[f.Module][g], f)
	}

	root := JUnitTestSuites{
		Name: "stagecraft-lint",
		Time: fmt.Sprintf("%.3f", elapsed.Seconds()),
	}
	perModule := 0.0
	if len(modules) > 0 {
		perModule = elapsed.Seconds() / float64(len(modules))
	}

	for _, mod := range modules {
		suite := JUnitTestSuite{
			Name: "stagecraft/lint/" + mod,
			Time: fmt.Sprintf("%.3f", perModule),
		}
		for _, section := range sectionsWith(byModule[mod]) {
			tc := JUnitTestCase{Name: section, Classname: "stagecraft.lint." + mod, Time: "0.000"}

			if ff := byModule[mod][section]; len(ff) > 0 {
				worst := lint.SeverityInfo
				lines := make([]string, 0, len(ff))
				for _, f := range ff {
					worst = max(worst, f.Severity)
					lines = append(lines, fmt.Sprintf("  %s [%s] %s", f.Path, f.Severity, f.Message))
				}
				if worst >= lint.SeverityCritical {
					tc.Failure = &JUnitFailure{
						Message: fmt.Sprintf("%d finding(s) in %s", len(ff), section),
						Type:    worst.String(),
						Body:    strings.Join(lines, "\n"),
					}
					suite.Failures++
				}
			}

			suite.Cases = append(suite.Cases, tc)
			suite.Tests++
		}
		root.Tests += suite.Tests
		root.Failures += suite.Failures
		root.Suites = append(root.Suites, suite)
	}
	return root
}

// sectionsWith returns configSections plus any extra keys in grouped.
func sectionsWith[T any](grouped map[string][]T) []string {
	out := append([]string(nil), configSections...)
	known := make(map[string]bool, len(out))
	for _, s := range out {
		known[s] = true
	}
	var extra []string
	for k := range grouped {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// WriteJUnit writes report to dir/name as indented XML.
func WriteJUnit(dir, name string, report JUnitTestSuites) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	data, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding junit xml: %w", err)
	}

	path := filepath.Join(dir, name)
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
