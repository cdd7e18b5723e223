package build

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	// FROM [--platform=...] <image> [AS <name>]
	fromRe = regexp.MustCompile(`(?i)^FROM\s+(?:--platform=\S+\s+)?(\S+)(?:\s+AS\s+(\S+))?`)
	// ARG <name>[=<default>]
	argRe = regexp.MustCompile(`(?i)^ARG\s+(\S+?)(?:=.*)?$`)
	// EXPOSE <port>[/<proto>]
	exposeRe = regexp.MustCompile(`(?i)^EXPOSE\s+(.+)`)
	// HEALTHCHECK ...
	healthcheckRe = regexp.MustCompile(`(?i)^HEALTHCHECK\s+(.+)`)
	// RUN <command>
	runRe = regexp.MustCompile(`(?i)^RUN\s+(.+)`)
	// LABEL / ENV <key>=<value>
	kvRe = regexp.MustCompile(`(?i)^(LABEL|ENV)\s+([^=\s]+)=(.*)$`)
	// WORKDIR <path>
	workdirRe = regexp.MustCompile(`(?i)^WORKDIR\s+(\S+)`)
)

// DockerfileInfo is what ParseDockerfile extracts from a Dockerfile.
type DockerfileInfo struct {
	Path        string // relative path from the scanned root, if any
	Stages      []Stage
	Args        []string
	Expose      []string
	Healthcheck *string
	Labels      map[string]string
	Env         map[string]string
	Workdir     string   // last WORKDIR seen
	Runs        []string // RUN commands in file order, continuations joined
}

// Stage describes a single FROM stage in a Dockerfile.
type Stage struct {
	Name      string // alias from "AS name", empty if unnamed
	BaseImage string // the FROM image reference
	Line      int    // line number of the FROM instruction
}

// ParseDockerfileFile opens path and parses it.
func ParseDockerfileFile(path string) (*DockerfileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	info, err := ParseDockerfile(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return info, nil
}

// ParseDockerfile extracts stage, arg, expose, healthcheck, label, env,
// and run info from a Dockerfile. This is a regex-based parser, not a full
// AST. Sufficient for inspection and for reading back generated output.
func ParseDockerfile(r io.Reader) (*DockerfileInfo, error) {
	info := &DockerfileInfo{}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	var pending strings.Builder
	startLine := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if pending.Len() == 0 {
			startLine = lineNum
		}
		if cont, ok := strings.CutSuffix(line, `\`); ok {
			pending.WriteString(strings.TrimSpace(cont))
			pending.WriteByte(' ')
			continue
		}
		pending.WriteString(line)
		info.apply(pending.String(), startLine)
		pending.Reset()
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if pending.Len() > 0 {
		info.apply(strings.TrimSpace(pending.String()), startLine)
	}

	return info, nil
}

func (info *DockerfileInfo) apply(line string, lineNum int) {
	if m := fromRe.FindStringSubmatch(line); m != nil {
		stage := Stage{
			BaseImage: m[1],
			Line:      lineNum,
		}
		if len(m) > 2 {
			stage.Name = m[2]
		}
		info.Stages = append(info.Stages, stage)
		return
	}

	if m := argRe.FindStringSubmatch(line); m != nil {
		info.Args = append(info.Args, m[1])
		return
	}

	if m := exposeRe.FindStringSubmatch(line); m != nil {
		// EXPOSE can list multiple ports on one line
		info.Expose = append(info.Expose, strings.Fields(m[1])...)
		return
	}

	if m := healthcheckRe.FindStringSubmatch(line); m != nil {
		if !strings.EqualFold(m[1], "NONE") {
			hc := m[1]
			info.Healthcheck = &hc
		}
		return
	}

	if m := runRe.FindStringSubmatch(line); m != nil {
		info.Runs = append(info.Runs, m[1])
		return
	}

	if m := kvRe.FindStringSubmatch(line); m != nil {
		target := &info.Labels
		if strings.EqualFold(m[1], "ENV") {
			target = &info.Env
		}
		if *target == nil {
			*target = make(map[string]string)
		}
		(*target)[m[2]] = unquote(m[3])
		return
	}

	if m := workdirRe.FindStringSubmatch(line); m != nil {
		info.Workdir = m[1]
	}
}

var unquoteReplacer = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\n`, "\n", `\r`, "\r")

// unquote reverses quote for double-quoted values; bare values pass through.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return unquoteReplacer.Replace(s[1 : len(s)-1])
	}
	return s
}
