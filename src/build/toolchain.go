package build

import (
	"fmt"
	"strings"

	"github.com/sofmeright/stagecraft/src/config"
)

// installCommands maps a package manager to its non-interactive install
// command. Package names are appended in order.
var installCommands = map[config.PackageManager]string{
	config.PackageManagerAPT: "apt-get update && apt-get install -y",
	config.PackageManagerAPK: "apk add --no-cache",
	config.PackageManagerYUM: "yum install -y",
}

// installLine returns a RUN line installing pkgs. Unknown or empty
// managers fall back to apt.
func installLine(pm config.PackageManager, pkgs []string) string {
	cmd, ok := installCommands[pm]
	if !ok {
		cmd = installCommands[config.PackageManagerAPT]
	}
	return "RUN " + cmd + " " + strings.Join(pkgs, " ")
}

// bootstrapFunc returns the instructions that install a language toolchain.
type bootstrapFunc func(base config.BaseSection) []string

// bootstraps holds the per-language install steps. Languages without an
// entry get no toolchain lines.
var bootstraps = map[config.Language]bootstrapFunc{
	config.LanguageRust:   rustBootstrap,
	config.LanguageGo:     goBootstrap,
	config.LanguagePython: pythonBootstrap,
	config.LanguageNode:   nodeBootstrap,
	config.LanguageJava:   javaBootstrap,
}

func bootstrapLines(base config.BaseSection) []string {
	fn, ok := bootstraps[base.Toolchain.Languages.Name]
	if !ok {
		return nil
	}
	return fn(base)
}

// RustupInstall is the rustup installer invocation.
const RustupInstall = "curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y"

func rustBootstrap(base config.BaseSection) []string {
	lang := base.Toolchain.Languages
	install := RustupInstall
	if lang.Version != "" {
		install += " --default-toolchain " + lang.Version
	}
	lines := []string{
		"RUN " + install,
		`ENV PATH="/root/.cargo/bin:$PATH"`,
	}
	if len(lang.Components) > 0 {
		lines = append(lines, "RUN rustup component add "+strings.Join(lang.Components, " "))
	}
	return lines
}

// goArch maps image architectures to the names used in Go release archives.
var goArch = map[config.Architecture]string{
	config.ArchAMD64: "amd64",
	config.ArchARM64: "arm64",
}

func goBootstrap(base config.BaseSection) []string {
	lang := base.Toolchain.Languages
	if lang.Version == "" {
		return nil
	}
	arch, ok := goArch[base.OS.Architecture]
	if !ok {
		arch = "amd64"
	}
	return []string{
		fmt.Sprintf("RUN curl -sSfL https://go.dev/dl/go%s.linux-%s.tar.gz | tar -C /usr/local -xz", lang.Version, arch),
		`ENV PATH="/usr/local/go/bin:/root/go/bin:$PATH"`,
	}
}

func pythonBootstrap(base config.BaseSection) []string {
	pkgs := map[config.PackageManager][]string{
		config.PackageManagerAPT: {"python3", "python3-pip", "python3-venv"},
		config.PackageManagerAPK: {"python3", "py3-pip"},
		config.PackageManagerYUM: {"python3", "python3-pip"},
	}
	return []string{
		installLine(base.Toolchain.System.PackageManager, forManager(pkgs, base.Toolchain.System.PackageManager)),
		`ENV PYTHONUNBUFFERED="1"`,
	}
}

func nodeBootstrap(base config.BaseSection) []string {
	return []string{
		installLine(base.Toolchain.System.PackageManager, []string{"nodejs", "npm"}),
	}
}

func javaBootstrap(base config.BaseSection) []string {
	major := majorVersion(base.Toolchain.Languages.Version, "17")
	pkgs := map[config.PackageManager][]string{
		config.PackageManagerAPT: {"openjdk-" + major + "-jdk-headless"},
		config.PackageManagerAPK: {"openjdk" + major},
		config.PackageManagerYUM: {"java-" + major + "-openjdk-devel"},
	}
	return []string{
		installLine(base.Toolchain.System.PackageManager, forManager(pkgs, base.Toolchain.System.PackageManager)),
	}
}

// forManager picks the package list for pm, falling back to apt the same
// way installLine does.
func forManager(pkgs map[config.PackageManager][]string, pm config.PackageManager) []string {
	if p, ok := pkgs[pm]; ok {
		return p
	}
	return pkgs[config.PackageManagerAPT]
}

// majorVersion returns the leading numeric component of v, or def.
func majorVersion(v, def string) string {
	major, _, _ := strings.Cut(v, ".")
	if major == "" || strings.Trim(major, "0123456789") != "" {
		return def
	}
	return major
}
