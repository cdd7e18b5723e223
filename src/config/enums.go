package config

import (
	"slices"
	"strings"
)

// ImageProvider identifies where the base image comes from.
type ImageProvider string

const (
	ProviderOfficial ImageProvider = "official"
	ProviderCustom   ImageProvider = "custom"
)

// Architecture is the CPU architecture the image targets.
type Architecture string

const (
	ArchAMD64 Architecture = "x86_64"
	ArchARM64 Architecture = "arm64"
)

// Language is a supported toolchain language.
type Language string

const (
	LanguageRust   Language = "rust"
	LanguageGo     Language = "golang"
	LanguagePython Language = "python"
	LanguageNode   Language = "nodejs"
	LanguageJava   Language = "java"
)

// PackageManager is the OS package manager used inside the image.
type PackageManager string

const (
	PackageManagerAPK PackageManager = "apk"
	PackageManagerAPT PackageManager = "apt"
	PackageManagerYUM PackageManager = "yum"
)

// Mode is the environment lifecycle stage. It selects which tool
// sub-configuration applies.
type Mode string

const (
	ModeDev  Mode = "dev"
	ModeTest Mode = "test"
	ModeProd Mode = "prod"
)

// NetworkMode is the container network driver.
type NetworkMode string

const (
	NetworkBridge  NetworkMode = "bridge"
	NetworkHost    NetworkMode = "host"
	NetworkOverlay NetworkMode = "overlay"
)

// Protocol is a port transport protocol.
type Protocol string

const (
	ProtocolTCP Protocol = "tcp"
	ProtocolUDP Protocol = "udp"
)

// VolumeType is the kind of mount.
type VolumeType string

const (
	VolumeBind  VolumeType = "bind"
	VolumeNamed VolumeType = "volume"
	VolumeTmpfs VolumeType = "tmpfs"
)

// LogDriver is the container logging driver.
type LogDriver string

const (
	LogDriverJSON    LogDriver = "json"
	LogDriverSyslog  LogDriver = "syslog"
	LogDriverFluentd LogDriver = "fluentd"
)

// TracingExporter is the distributed tracing backend.
type TracingExporter string

const (
	ExporterJaeger TracingExporter = "jaeger"
	ExporterZipkin TracingExporter = "zipkin"
	ExporterOTel   TracingExporter = "otel"
)

// HealthCheckType is how container health is probed.
type HealthCheckType string

const (
	HealthCheckHTTP    HealthCheckType = "http"
	HealthCheckTCP     HealthCheckType = "tcp"
	HealthCheckCommand HealthCheckType = "command"
)

// RestartPolicy controls container restarts.
type RestartPolicy string

const (
	RestartNo            RestartPolicy = "no"
	RestartAlways        RestartPolicy = "always"
	RestartUnlessStopped RestartPolicy = "unless-stopped"
	RestartOnFailure     RestartPolicy = "on-failure"
)

// Value lists in declaration order. Used for membership checks and for the
// "(supported: ...)" hint in validation messages.
var (
	ImageProviders   = []ImageProvider{ProviderOfficial, ProviderCustom}
	Architectures    = []Architecture{ArchAMD64, ArchARM64}
	Languages        = []Language{LanguageRust, LanguageGo, LanguagePython, LanguageNode, LanguageJava}
	PackageManagers  = []PackageManager{PackageManagerAPK, PackageManagerAPT, PackageManagerYUM}
	Modes            = []Mode{ModeDev, ModeTest, ModeProd}
	NetworkModes     = []NetworkMode{NetworkBridge, NetworkHost, NetworkOverlay}
	Protocols        = []Protocol{ProtocolTCP, ProtocolUDP}
	VolumeTypes      = []VolumeType{VolumeBind, VolumeNamed, VolumeTmpfs}
	LogDrivers       = []LogDriver{LogDriverJSON, LogDriverSyslog, LogDriverFluentd}
	TracingExporters = []TracingExporter{ExporterJaeger, ExporterZipkin, ExporterOTel}
	HealthCheckTypes = []HealthCheckType{HealthCheckHTTP, HealthCheckTCP, HealthCheckCommand}
	RestartPolicies  = []RestartPolicy{RestartNo, RestartAlways, RestartUnlessStopped, RestartOnFailure}
)

func (p ImageProvider) Valid() bool   { return slices.Contains(ImageProviders, p) }
func (a Architecture) Valid() bool    { return slices.Contains(Architectures, a) }
func (l Language) Valid() bool        { return slices.Contains(Languages, l) }
func (p PackageManager) Valid() bool  { return slices.Contains(PackageManagers, p) }
func (m Mode) Valid() bool            { return slices.Contains(Modes, m) }
func (n NetworkMode) Valid() bool     { return slices.Contains(NetworkModes, n) }
func (p Protocol) Valid() bool        { return slices.Contains(Protocols, p) }
func (v VolumeType) Valid() bool      { return slices.Contains(VolumeTypes, v) }
func (d LogDriver) Valid() bool       { return slices.Contains(LogDrivers, d) }
func (e TracingExporter) Valid() bool { return slices.Contains(TracingExporters, e) }
func (h HealthCheckType) Valid() bool { return slices.Contains(HealthCheckTypes, h) }
func (r RestartPolicy) Valid() bool   { return slices.Contains(RestartPolicies, r) }

// supported renders an enum set as "a, b, c".
func supported[T ~string](set []T) string {
	names := make([]string, len(set))
	for i, s := range set {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
