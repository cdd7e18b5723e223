package modules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sofmeright/stagecraft/src/config"
)

// walkBaked calls fn for every user-supplied value the generator writes
// into the Dockerfile verbatim: environment variables, build labels,
// stage args and non-blank stage commands. key is empty for bare values.
func walkBaked(cfg *config.ContainerConfig, fn func(path, key, value string)) {
	kv := func(prefix string, m map[string]string) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fn(prefix+"."+k, k, m[k])
		}
	}

	kv("environment.variables", cfg.Environment.Variables)
	kv("build.labels", cfg.Build.Labels)
	for i, st := range cfg.Build.Stages {
		prefix := fmt.Sprintf("build.stages[%d]", i)
		kv(prefix+".args", st.Args)
		for j, cmd := range st.Commands {
			if strings.TrimSpace(cmd) == "" {
				continue
			}
			fn(fmt.Sprintf("%s.commands[%d]", prefix, j), "", cmd)
		}
	}
}
