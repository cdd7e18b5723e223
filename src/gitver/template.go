package gitver

import (
	"os"
	"strconv"
	"strings"
)

// Resolve expands template variables in a label value.
//
// Supported templates:
//
//	{version}  {base}  {major}  {minor}  {patch}  {prerelease}
//	{tag}              nearest semver tag, as written
//	{branch}           branch with "/" and " " replaced by "-"
//	{sha}              7-char abbreviated hash
//	{sha:N}            first N chars of the hash
//	{commit.date}      HEAD commit date, UTC, YYYY-MM-DD
//	{project.name}     {project.url}  {project.license}
//	{env:VAR_NAME}     value of an environment variable
//
// Unknown placeholders pass through unchanged.
func (i *Info) Resolve(tmpl string) string {
	if i == nil || !strings.Contains(tmpl, "{") {
		return tmpl
	}

	s := resolveParam(tmpl, "{env:", os.Getenv)
	s = resolveParam(s, "{sha:", func(width string) string {
		n, err := strconv.Atoi(strings.TrimPrefix(width, "."))
		if err != nil || n <= 0 {
			n = 7
		}
		return truncate(i.SHA, n)
	})

	commitDate := ""
	if !i.CommitTime.IsZero() {
		commitDate = i.CommitTime.UTC().Format("2006-01-02")
	}

	return strings.NewReplacer(
		"{version}", i.Version,
		"{base}", i.Base,
		"{major}", i.Major,
		"{minor}", i.Minor,
		"{patch}", i.Patch,
		"{prerelease}", i.Prerelease,
		"{tag}", i.Tag,
		"{branch}", sanitizeTag(i.Branch),
		"{sha}", i.ShortSHA(),
		"{commit.date}", commitDate,
		"{project.name}", i.Name,
		"{project.url}", i.URL,
		"{project.license}", i.License,
	).Replace(s)
}

// resolveParam replaces every prefix...} placeholder with fn(argument).
func resolveParam(s, prefix string, fn func(string) string) string {
	var out strings.Builder
	for {
		start := strings.Index(s, prefix)
		if start == -1 {
			break
		}
		end := strings.IndexByte(s[start:], '}')
		if end == -1 {
			break
		}
		end += start
		out.WriteString(s[:start])
		out.WriteString(fn(s[start+len(prefix) : end]))
		s = s[end+1:]
	}
	out.WriteString(s)
	return out.String()
}
