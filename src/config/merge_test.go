package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMerge_EmptyOverrideIsIdentity(t *testing.T) {
	base := Default()
	assert.Equal(t, base, Merge(base, Override{}))

	// Empty section overrides are also no-ops.
	o := Override{
		Base:        &BaseOverride{},
		Environment: &EnvironmentOverride{},
		Runtime:     &RuntimeOverride{},
		Build:       &BuildOverride{},
	}
	assert.True(t, o.IsZero())
	assert.Equal(t, base, Merge(base, o))
}

func TestMerge_IsIdempotent(t *testing.T) {
	o := Override{
		Environment: &EnvironmentOverride{Mode: ptr(ModeProd)},
		Runtime: &RuntimeOverride{
			Ports: &[]PortMapping{{Host: 80, Container: 8080, Protocol: ProtocolTCP}},
		},
	}

	once := Merge(Default(), o)
	assert.Equal(t, once, Merge(once, o))
}

func TestMerge_LaterOverrideWins(t *testing.T) {
	o1 := Override{Environment: &EnvironmentOverride{
		Mode:      ptr(ModeTest),
		Variables: &map[string]string{"A": "1"},
	}}
	o2 := Override{Environment: &EnvironmentOverride{Mode: ptr(ModeProd)}}

	got := Merge(Merge(Default(), o1), o2)
	assert.Equal(t, ModeProd, got.Environment.Mode)
	// o2 leaves variables alone, so o1's value survives.
	assert.Equal(t, map[string]string{"A": "1"}, got.Environment.Variables)
}

func TestMerge_ReplacesFieldsWholesale(t *testing.T) {
	o := Override{Base: &BaseOverride{OS: &BaseImageConfig{Name: "alpine"}}}

	got := Merge(Default(), o)
	assert.Equal(t, "alpine", got.Base.OS.Name)
	assert.Empty(t, got.Base.OS.Tag)
	assert.Equal(t, "alpine", got.Base.OS.Reference())
	// Sibling fields keep the base value.
	assert.Equal(t, Default().Base.Toolchain, got.Base.Toolchain)
}

func TestMerge_EmptyCollectionReplaces(t *testing.T) {
	o := Override{
		Environment: &EnvironmentOverride{Variables: &map[string]string{}},
		Runtime:     &RuntimeOverride{Ports: &[]PortMapping{}},
	}

	got := Merge(Default(), o)
	require.NotNil(t, got.Environment.Variables)
	assert.Empty(t, got.Environment.Variables)
	require.NotNil(t, got.Runtime.Ports)
	assert.Empty(t, got.Runtime.Ports)
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	base := Default()
	vars := map[string]string{"KEY": "v1"}
	stages := []BuildStage{{Name: "only", Commands: []string{"make"}}}
	o := Override{
		Environment: &EnvironmentOverride{Variables: &vars},
		Build:       &BuildOverride{Stages: &stages},
	}

	got := Merge(base, o)

	got.Runtime.Ports[0].Host = 1
	got.Base.Toolchain.Languages.Components[0] = "mutated"
	got.Environment.Variables["KEY"] = "changed"
	got.Build.Stages[0].Commands[0] = "rm -rf /"

	assert.Equal(t, Default(), base)
	assert.Equal(t, "v1", vars["KEY"])
	assert.Equal(t, "make", stages[0].Commands[0])
}

func TestMerge_OverrideFromRoundTrip(t *testing.T) {
	want := Default()
	want.Base.OS.Name = "debian"
	want.Environment.Mode = ModeTest
	want.Build.Labels = map[string]string{"team": "platform"}

	got := Merge(ContainerConfig{}, OverrideFrom(want))
	assert.Equal(t, want, got)
	assert.False(t, OverrideFrom(want).IsZero())
}

func TestOverride_IsZero(t *testing.T) {
	assert.True(t, Override{}.IsZero())
	assert.False(t, Override{Version: ptr(1)}.IsZero())
	assert.False(t, Override{Build: &BuildOverride{Labels: &map[string]string{}}}.IsZero())
	assert.False(t, Override{Project: &ProjectConfig{}}.IsZero())
}

func TestClone_IsDeep(t *testing.T) {
	cfg := Default()
	cfg.Environment.Dependencies.Tools.Plugins[0].Config = map[string]any{
		"inlay_hints": map[string]any{"enabled": true},
		"targets":     []any{"x86_64", "arm64"},
	}
	cfg.Project = &ProjectConfig{Name: "demo"}

	cp := cfg.Clone()
	require.Equal(t, cfg, cp)

	cp.Environment.Dependencies.Tools.Plugins[0].Config["inlay_hints"].(map[string]any)["enabled"] = false
	cp.Environment.Dependencies.Tools.Plugins[0].Config["targets"].([]any)[0] = "riscv"
	cp.Environment.Dependencies.Language["rust"].Packages[0].Features[0] = "none"
	cp.Base.Toolchain.System.DevTools["gdb"][0] = "0.0"
	cp.Project.Name = "other"

	assert.Equal(t, true, cfg.Environment.Dependencies.Tools.Plugins[0].Config["inlay_hints"].(map[string]any)["enabled"])
	assert.Equal(t, "x86_64", cfg.Environment.Dependencies.Tools.Plugins[0].Config["targets"].([]any)[0])
	assert.Equal(t, "full", cfg.Environment.Dependencies.Language["rust"].Packages[0].Features[0])
	assert.Equal(t, "13.2", cfg.Base.Toolchain.System.DevTools["gdb"][0])
	assert.Equal(t, "demo", cfg.Project.Name)
}

func TestDefault_ReturnsFreshValues(t *testing.T) {
	a := Default()
	a.Runtime.Ports[0].Host = 1
	a.Environment.Variables["RUST_LOG"] = "trace"

	b := Default()
	assert.Equal(t, 8080, b.Runtime.Ports[0].Host)
	assert.Equal(t, "debug", b.Environment.Variables["RUST_LOG"])
}
