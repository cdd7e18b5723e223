package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sofmeright/stagecraft/src/output"
)

// reportsDir receives JUnit reports in CI when --junit is not given.
const reportsDir = ".stagecraft/reports"

// readInput reads path, or stdin when path is "-".
func readInput(in io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("wrote", "path", path, "bytes", len(data))
	return nil
}

// junitTarget resolves the report directory: the flag wins, CI falls
// back to reportsDir, otherwise reports are skipped.
func junitTarget(flag string) string {
	if flag != "" {
		return flag
	}
	if output.IsCI() {
		return reportsDir
	}
	return ""
}
