package config

import (
	"maps"
	"slices"
)

// Clone returns a deep copy of the config. Slices and maps are copied so
// the result shares no backing storage with c; nil and empty collections
// are preserved as-is so the copy is reflect.DeepEqual to the original.
func (c ContainerConfig) Clone() ContainerConfig {
	return ContainerConfig{
		Version:     c.Version,
		Project:     c.Project.clone(),
		Base:        c.Base.clone(),
		Environment: c.Environment.clone(),
		Runtime:     c.Runtime.clone(),
		Build:       c.Build.clone(),
		Lint:        c.Lint.clone(),
	}
}

func cloneSliceFunc[T any](s []T, fn func(T) T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

func cloneMapFunc[K comparable, V any](m map[K]V, fn func(V) V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = fn(v)
	}
	return out
}

// cloneValue deep-copies the container shapes produced by YAML/TOML
// decoding into an opaque blob. Scalars are returned unchanged.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMapFunc(t, cloneValue)
	case []any:
		return cloneSliceFunc(t, cloneValue)
	case []string:
		return slices.Clone(t)
	case map[string]string:
		return maps.Clone(t)
	default:
		return v
	}
}
