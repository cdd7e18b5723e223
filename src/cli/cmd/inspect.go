package cmd

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sofmeright/stagecraft/src/build"
	"github.com/sofmeright/stagecraft/src/output"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <Dockerfile|dir>",
	Short: "Summarize a Dockerfile or scan a directory",
	Long: `Parse a Dockerfile and summarize its stages, args, ports, and labels.

Given a directory, scan it for Dockerfiles (root, build/, docker/) and
language manifests, and summarize each Dockerfile found.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{noConfig: "true"},
	RunE:        runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	st, err := os.Stat(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	color := output.UseColor()

	if !st.IsDir() {
		info, err := build.ParseDockerfileFile(path)
		if err != nil {
			return err
		}
		info.Path = path
		sec := output.NewSection(w, "Dockerfile", 0, color)
		output.ContextBlock(sec, dockerfileKV(info))
		sec.Close()
		return nil
	}

	det, err := build.DetectRepo(path)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}

	sec := output.NewSection(w, "Repository", 0, color)
	output.ContextBlock(sec, []output.KV{
		{Key: "Root", Value: det.RootDir},
		{Key: "Language", Value: orNone(string(det.Language))},
		{Key: "Manifests", Value: orNone(strings.Join(det.Lockfiles, ", "))},
		{Key: "Dockerfiles", Value: fmt.Sprint(len(det.Dockerfiles))},
	})
	sec.Close()

	for i := range det.Dockerfiles {
		info := &det.Dockerfiles[i]
		dSec := output.NewSection(w, info.Path, 0, color)
		output.ContextBlock(dSec, dockerfileKV(info))
		dSec.Close()
	}
	return nil
}

func dockerfileKV(info *build.DockerfileInfo) []output.KV {
	stages := make([]string, len(info.Stages))
	for i, s := range info.Stages {
		stages[i] = s.BaseImage
		if s.Name != "" {
			stages[i] += " AS " + s.Name
		}
	}
	labels := make([]string, 0, len(info.Labels))
	for _, k := range slices.Sorted(maps.Keys(info.Labels)) {
		labels = append(labels, k+"="+info.Labels[k])
	}

	health := "none"
	if info.Healthcheck != nil {
		health = *info.Healthcheck
	}

	return []output.KV{
		{Key: "Path", Value: info.Path},
		{Key: "Stages", Value: orNone(strings.Join(stages, " → "))},
		{Key: "Args", Value: orNone(strings.Join(info.Args, ", "))},
		{Key: "Expose", Value: orNone(strings.Join(info.Expose, ", "))},
		{Key: "Workdir", Value: orNone(info.Workdir)},
		{Key: "Healthcheck", Value: health},
		{Key: "Labels", Value: orNone(strings.Join(labels, ", "))},
		{Key: "Env", Value: fmt.Sprintf("%d vars", len(info.Env))},
		{Key: "Runs", Value: fmt.Sprintf("%d commands", len(info.Runs))},
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
