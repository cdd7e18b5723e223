package config

import (
	"maps"
	"slices"
)

// RuntimeSection describes how the built container runs.
type RuntimeSection struct {
	Ports         []PortMapping       `yaml:"ports,omitempty" toml:"ports,omitempty"`
	Orchestration OrchestrationConfig `yaml:"orchestration" toml:"orchestration"`
	Security      SecurityConfig      `yaml:"security" toml:"security"`
	Observability ObservabilityConfig `yaml:"observability" toml:"observability"`
	Health        HealthConfig        `yaml:"health" toml:"health"`
}

// PortMapping publishes a container port on the host. Host and Container
// are plain ints so that out-of-range values survive decoding and get
// reported by Validate instead of silently wrapping.
type PortMapping struct {
	Host        int      `yaml:"host" toml:"host"`
	Container   int      `yaml:"container" toml:"container"`
	Protocol    Protocol `yaml:"protocol" toml:"protocol"`
	Name        string   `yaml:"name,omitempty" toml:"name,omitempty"`
	Description string   `yaml:"description,omitempty" toml:"description,omitempty"`
}

// OrchestrationConfig covers networking, resource limits, and mounts.
type OrchestrationConfig struct {
	Network   NetworkConfig   `yaml:"network" toml:"network"`
	Resources ResourcesConfig `yaml:"resources" toml:"resources"`
	Volumes   []Volume        `yaml:"volumes,omitempty" toml:"volumes,omitempty"`
}

// NetworkConfig is the container network setup.
type NetworkConfig struct {
	Mode  NetworkMode   `yaml:"mode" toml:"mode"`
	Ports []PortMapping `yaml:"ports,omitempty" toml:"ports,omitempty"`
	DNS   DNSConfig     `yaml:"dns" toml:"dns"`
}

// DNSConfig lists resolvers.
type DNSConfig struct {
	Servers []string `yaml:"servers,omitempty" toml:"servers,omitempty"`
}

// ResourcesConfig holds CPU and memory limits.
type ResourcesConfig struct {
	CPU    CPUConfig    `yaml:"cpu" toml:"cpu"`
	Memory MemoryConfig `yaml:"memory" toml:"memory"`
}

// CPUConfig holds the relative CPU weight and an optional quota.
type CPUConfig struct {
	Shares int    `yaml:"shares" toml:"shares"`
	Quota  string `yaml:"quota,omitempty" toml:"quota,omitempty"`
}

// MemoryConfig holds memory ceilings as magnitude strings ("2Gi", "512m",
// "1073741824"). Swap is the combined memory+swap ceiling and, when set,
// must be at least Limit.
type MemoryConfig struct {
	Limit Magnitude `yaml:"limit" toml:"limit"`
	Swap  Magnitude `yaml:"swap,omitempty" toml:"swap,omitempty"`
}

// Volume is a mount into the container.
type Volume struct {
	Source string     `yaml:"source" toml:"source"`
	Target string     `yaml:"target" toml:"target"`
	Type   VolumeType `yaml:"type" toml:"type"`
}

// SecurityConfig holds isolation and privilege settings.
type SecurityConfig struct {
	Isolation    IsolationConfig    `yaml:"isolation" toml:"isolation"`
	Runtime      RuntimeFlags       `yaml:"runtime" toml:"runtime"`
	Capabilities CapabilitiesConfig `yaml:"capabilities" toml:"capabilities"`
	Secrets      []SecretMount      `yaml:"secrets,omitempty" toml:"secrets,omitempty"`
}

// IsolationConfig names the seccomp and AppArmor profiles.
type IsolationConfig struct {
	SeccompProfile  string `yaml:"seccomp_profile,omitempty" toml:"seccomp_profile,omitempty"`
	ApparmorProfile string `yaml:"apparmor_profile,omitempty" toml:"apparmor_profile,omitempty"`
}

// RuntimeFlags are runtime privilege switches.
type RuntimeFlags struct {
	ReadonlyRootfs  bool `yaml:"readonly_rootfs" toml:"readonly_rootfs"`
	NoNewPrivileges bool `yaml:"no_new_privileges" toml:"no_new_privileges"`
}

// CapabilitiesConfig adds and drops Linux capabilities.
type CapabilitiesConfig struct {
	Add  []string `yaml:"add,omitempty" toml:"add,omitempty"`
	Drop []string `yaml:"drop,omitempty" toml:"drop,omitempty"`
}

// SecretMount mounts a named secret at a path with a numeric file mode.
type SecretMount struct {
	Name      string `yaml:"name" toml:"name"`
	MountPath string `yaml:"mount_path" toml:"mount_path"`
	Mode      uint32 `yaml:"mode" toml:"mode"`
}

// ObservabilityConfig covers logs, metrics, and traces.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
	Tracing TracingConfig `yaml:"tracing" toml:"tracing"`
}

// LoggingConfig selects the log driver and rotation.
type LoggingConfig struct {
	Driver  LogDriver         `yaml:"driver" toml:"driver"`
	Options map[string]string `yaml:"options,omitempty" toml:"options,omitempty"`
	Rotate  RotateConfig      `yaml:"rotate" toml:"rotate"`
}

// RotateConfig bounds log file growth.
type RotateConfig struct {
	MaxSize  string `yaml:"max_size" toml:"max_size"`
	MaxFiles int    `yaml:"max_files" toml:"max_files"`
}

// MetricsConfig exposes a metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Port    int    `yaml:"port" toml:"port"`
	Path    string `yaml:"path" toml:"path"`
}

// TracingConfig configures trace export. SamplingRate is in [0, 1].
type TracingConfig struct {
	Enabled            bool            `yaml:"enabled" toml:"enabled"`
	Exporter           TracingExporter `yaml:"exporter" toml:"exporter"`
	SamplingRate       float64         `yaml:"sampling_rate" toml:"sampling_rate"`
	ContextPropagation bool            `yaml:"context_propagation" toml:"context_propagation"`
}

// HealthConfig holds the health probe and restart policy.
type HealthConfig struct {
	Check   HealthCheck   `yaml:"check" toml:"check"`
	Restart RestartConfig `yaml:"restart" toml:"restart"`
}

// HealthCheck is the probe definition.
type HealthCheck struct {
	Type     HealthCheckType `yaml:"type" toml:"type"`
	Interval string          `yaml:"interval" toml:"interval"`
	Timeout  string          `yaml:"timeout" toml:"timeout"`
	Retries  int             `yaml:"retries" toml:"retries"`
}

// RestartConfig is the restart policy.
type RestartConfig struct {
	Policy     RestartPolicy `yaml:"policy" toml:"policy"`
	MaxRetries int           `yaml:"max_retries" toml:"max_retries"`
}

// DefaultRuntimeSection returns the canonical runtime layer.
func DefaultRuntimeSection() RuntimeSection {
	return RuntimeSection{
		Ports: []PortMapping{
			{Host: 8080, Container: 8080, Protocol: ProtocolTCP, Name: "http", Description: "HTTP API"},
			{Host: 3000, Container: 3000, Protocol: ProtocolTCP, Name: "dev", Description: "Development Server"},
		},
		Orchestration: OrchestrationConfig{
			Network: NetworkConfig{
				Mode: NetworkBridge,
				Ports: []PortMapping{
					{Host: 8080, Container: 8080, Protocol: ProtocolTCP},
				},
				DNS: DNSConfig{Servers: []string{"8.8.8.8", "114.114.114.114"}},
			},
			Resources: ResourcesConfig{
				CPU: CPUConfig{Shares: 1024, Quota: "200ms"},
				// Swap is the memory+swap ceiling, so it has to cover Limit.
				Memory: MemoryConfig{Limit: "2Gi", Swap: "4Gi"},
			},
			Volumes: []Volume{
				{Source: "./src", Target: "/workspace/src", Type: VolumeBind},
			},
		},
		Security: SecurityConfig{
			Isolation: IsolationConfig{
				SeccompProfile:  "default",
				ApparmorProfile: "docker-default",
			},
			Runtime: RuntimeFlags{
				ReadonlyRootfs:  true,
				NoNewPrivileges: true,
			},
			Capabilities: CapabilitiesConfig{
				Add:  []string{"CAP_NET_BIND_SERVICE"},
				Drop: []string{"ALL"},
			},
			Secrets: []SecretMount{
				{Name: "ssh-key", MountPath: "/root/.ssh", Mode: 0o600},
			},
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Driver:  LogDriverJSON,
				Options: map[string]string{"max-size": "100m", "max-file": "3"},
				Rotate:  RotateConfig{MaxSize: "100m", MaxFiles: 3},
			},
			Metrics: MetricsConfig{Enabled: true, Port: 9090, Path: "/metrics"},
			Tracing: TracingConfig{
				Enabled:            true,
				Exporter:           ExporterJaeger,
				SamplingRate:       0.1,
				ContextPropagation: true,
			},
		},
		Health: HealthConfig{
			Check: HealthCheck{
				Type:     HealthCheckHTTP,
				Interval: "30s",
				Timeout:  "10s",
				Retries:  3,
			},
			Restart: RestartConfig{Policy: RestartUnlessStopped, MaxRetries: 3},
		},
	}
}

func (r RuntimeSection) clone() RuntimeSection {
	return RuntimeSection{
		Ports:         slices.Clone(r.Ports),
		Orchestration: r.Orchestration.clone(),
		Security:      r.Security.clone(),
		Observability: r.Observability.clone(),
		Health:        r.Health,
	}
}

func (o OrchestrationConfig) clone() OrchestrationConfig {
	out := o
	out.Network.Ports = slices.Clone(o.Network.Ports)
	out.Network.DNS.Servers = slices.Clone(o.Network.DNS.Servers)
	out.Volumes = slices.Clone(o.Volumes)
	return out
}

func (s SecurityConfig) clone() SecurityConfig {
	out := s
	out.Capabilities.Add = slices.Clone(s.Capabilities.Add)
	out.Capabilities.Drop = slices.Clone(s.Capabilities.Drop)
	out.Secrets = slices.Clone(s.Secrets)
	return out
}

func (o ObservabilityConfig) clone() ObservabilityConfig {
	out := o
	out.Logging.Options = maps.Clone(o.Logging.Options)
	return out
}
