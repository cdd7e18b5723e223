package lint

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sofmeright/stagecraft/src/config"
)

// Engine runs a fixed set of lint modules against a config.
type Engine struct {
	Config  config.LintConfig
	Modules []Module
}

// NewEngine creates a lint engine with the selected modules.
//
// With explicit moduleNames only those run (minus skipNames). Otherwise every
// registered module runs whose lint.modules.<name>.enabled setting, or its
// DefaultEnabled when unset, is true.
func NewEngine(cfg config.LintConfig, moduleNames []string, skipNames []string) (*Engine, error) {
	for name := range cfg.Modules {
		if _, err := Get(name); err != nil {
			return nil, fmt.Errorf("lint.modules: %w", err)
		}
	}

	skipSet := make(map[string]bool, len(skipNames))
	for _, name := range skipNames {
		if _, err := Get(name); err != nil {
			return nil, err
		}
		skipSet[name] = true
	}

	var modules []Module

	if len(moduleNames) > 0 {
		// Explicit module selection
		for _, name := range moduleNames {
			if skipSet[name] {
				continue
			}
			m, err := Get(name)
			if err != nil {
				return nil, err
			}
			if err := configureModule(m, cfg, name); err != nil {
				return nil, err
			}
			modules = append(modules, m)
		}
	} else {
		for _, name := range All() {
			if skipSet[name] {
				continue
			}
			m, err := Get(name)
			if err != nil {
				return nil, err
			}

			enabled := m.DefaultEnabled()
			if mc, ok := cfg.Modules[name]; ok && mc.Enabled != nil {
				enabled = *mc.Enabled
			}
			if !enabled {
				continue
			}

			if err := configureModule(m, cfg, name); err != nil {
				return nil, err
			}
			modules = append(modules, m)
		}
	}

	if len(modules) == 0 {
		return nil, fmt.Errorf("no lint modules selected")
	}

	return &Engine{
		Config:  cfg,
		Modules: modules,
	}, nil
}

// ModuleStats holds per-module run statistics.
type ModuleStats struct {
	Name     string
	Findings int
	Critical int
	Warnings int
	Excluded int
}

// Run executes all modules against cfg and returns sorted findings.
func (e *Engine) Run(ctx context.Context, cfg *config.ContainerConfig) ([]Finding, error) {
	findings, _, err := e.RunWithStats(ctx, cfg)
	return findings, err
}

// RunWithStats executes all modules concurrently and returns findings plus
// per-module statistics. Each module sees its own clone of cfg. Findings
// are sorted by severity (highest first), module, path, then message, so
// the result does not depend on scheduling. A failing module does not stop
// the others; its error is reported after all modules finish.
func (e *Engine) RunWithStats(ctx context.Context, cfg *config.ContainerConfig) ([]Finding, []ModuleStats, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("lint: config is nil")
	}

	var (
		mu       sync.Mutex
		findings []Finding
		errs     []error
	)

	// Per-module stat counters (index matches e.Modules)
	modStats := make([]ModuleStats, len(e.Modules))
	for i, m := range e.Modules {
		modStats[i].Name = m.Name()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU() * 2)

	for mi, mod := range e.Modules {
		own := cfg.Clone()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results, err := mod.Check(gctx, &own)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", mod.Name(), err))
				return nil
			}
			for _, r := range results {
				if e.isExcluded(r.Path) {
					modStats[mi].Excluded++
					continue
				}
				modStats[mi].Findings++
				switch r.Severity {
				case SeverityCritical:
					modStats[mi].Critical++
				case SeverityWarning:
					modStats[mi].Warnings++
				}
				findings = append(findings, r)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, modStats, err
	}

	SortFindings(findings)

	if len(errs) > 0 {
		return findings, modStats, fmt.Errorf("%d module errors (first: %w)", len(errs), errs[0])
	}

	return findings, modStats, nil
}

// ModuleNames returns the names of all active modules in this engine.
func (e *Engine) ModuleNames() []string {
	names := make([]string, len(e.Modules))
	for i, m := range e.Modules {
		names[i] = m.Name()
	}
	return names
}

// SortFindings orders findings by severity (highest first), module, path,
// then message.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Message < b.Message
	})
}

// pathSegments turns a config path into slash-separated segments so
// exclude patterns get glob segment semantics: "build.stages[0].args.X"
// becomes "build/stages/0/args/X". Index brackets are segment separators,
// not glob character classes.
var pathSegments = strings.NewReplacer(".", "/", "[", "/", "]", "")

func pathToSlash(p string) string {
	return pathSegments.Replace(p)
}

func (e *Engine) isExcluded(path string) bool {
	if len(e.Config.Exclude) == 0 {
		return false
	}
	slashPath := pathToSlash(path)
	for _, pattern := range e.Config.Exclude {
		if matchGlob(pathToSlash(pattern), slashPath) {
			return true
		}
	}
	return false
}

// configureModule passes config options to modules that implement ConfigurableModule.
func configureModule(m Module, cfg config.LintConfig, name string) error {
	cm, ok := m.(ConfigurableModule)
	if !ok {
		return nil
	}
	mc, exists := cfg.Modules[name]
	if !exists || mc.Options == nil {
		// Call with empty map so the module can apply defaults.
		return cm.Configure(nil)
	}
	if err := cm.Configure(mc.Options); err != nil {
		return fmt.Errorf("lint.modules.%s.options: %w", name, err)
	}
	return nil
}
