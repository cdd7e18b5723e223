// Package gitver reads build provenance from the git repository a config
// lives in and turns it into OCI image labels.
package gitver

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Info holds resolved version and provenance metadata from git.
type Info struct {
	Version      string // full version: "1.2.3", "1.2.3-alpha.1", "0.0.0-dev+abc1234"
	Base         string // semver base without prerelease: "1.2.3"
	Major        string
	Minor        string
	Patch        string
	Prerelease   string // "alpha.1", "rc.1", or "" for stable
	Tag          string // nearest semver tag, "" if none
	SHA          string // full commit hash
	Branch       string // "" when HEAD is detached
	IsRelease    bool   // true if HEAD is exactly at Tag
	IsPrerelease bool
	CommitTime   time.Time // HEAD committer time

	// Project metadata.
	Remote  string // origin URL as configured
	Name    string // repo name from the origin URL
	URL     string // origin URL as https
	License string // SPDX identifier from the LICENSE file
}

// ShortSHA returns the 7-character abbreviated hash.
func (i *Info) ShortSHA() string { return truncate(i.SHA, 7) }

// Detect opens the repository containing rootDir (searching parent
// directories) and resolves version info from HEAD and its tags.
func Detect(rootDir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(rootDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", rootDir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading HEAD commit: %w", err)
	}

	info := &Info{
		SHA:        head.Hash().String(),
		CommitTime: commit.Committer.When.UTC(),
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	if remote, err := repo.Remote("origin"); err == nil && len(remote.Config().URLs) > 0 {
		info.Remote = remote.Config().URLs[0]
		info.URL = remoteToHTTPS(info.Remote)
		info.Name = repoNameFromRemote(info.Remote)
	}

	if wt, err := repo.Worktree(); err == nil {
		info.License = detectLicense(wt.Filesystem.Root())
	}

	tags, err := semverTags(repo)
	if err != nil {
		return nil, err
	}
	tag, ver, atHead, err := nearestTag(repo, commit, tags)
	if err != nil {
		return nil, err
	}

	if ver == nil {
		// No tags, use dev version
		info.Version = fmt.Sprintf("0.0.0-dev+%s", info.ShortSHA())
		info.Base = "0.0.0"
		info.Major, info.Minor, info.Patch = "0", "0", "0"
		return info, nil
	}

	info.Tag = tag
	info.IsRelease = atHead
	info.Major = fmt.Sprint(ver.Major())
	info.Minor = fmt.Sprint(ver.Minor())
	info.Patch = fmt.Sprint(ver.Patch())
	info.Base = fmt.Sprintf("%d.%d.%d", ver.Major(), ver.Minor(), ver.Patch())
	info.Prerelease = ver.Prerelease()
	info.IsPrerelease = info.Prerelease != ""
	info.Version = info.Base
	if info.IsPrerelease {
		info.Version += "-" + info.Prerelease
	}

	// If not a release, append dev suffix
	if !info.IsRelease {
		info.Version = fmt.Sprintf("%s-dev+%s", info.Version, info.ShortSHA())
	}
	return info, nil
}

type taggedVersion struct {
	name string
	ver  *semver.Version
}

// semverTags maps commit hashes to the semver tags pointing at them.
// Annotated tags are peeled to their commit. When several tags share a
// commit the highest version wins.
func semverTags(repo *git.Repository) (map[plumbing.Hash]taggedVersion, error) {
	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	out := make(map[plumbing.Hash]taggedVersion)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		ver, err := semver.NewVersion(name)
		if err != nil {
			return nil
		}

		hash := ref.Hash()
		if tagObj, err := repo.TagObject(hash); err == nil {
			c, err := tagObj.Commit()
			if err != nil {
				return nil
			}
			hash = c.Hash
		}

		if cur, ok := out[hash]; !ok || ver.GreaterThan(cur.ver) {
			out[hash] = taggedVersion{name: name, ver: ver}
		}
		return nil
	})
	return out, err
}

// nearestTag walks history from head and returns the first tagged commit.
func nearestTag(repo *git.Repository, head *object.Commit, tags map[plumbing.Hash]taggedVersion) (string, *semver.Version, bool, error) {
	if len(tags) == 0 {
		return "", nil, false, nil
	}
	if tv, ok := tags[head.Hash]; ok {
		return tv.name, tv.ver, true, nil
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash, Order: git.LogOrderBSF})
	if err != nil {
		return "", nil, false, fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var found taggedVersion
	err = iter.ForEach(func(c *object.Commit) error {
		if tv, ok := tags[c.Hash]; ok {
			found = tv
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", nil, false, fmt.Errorf("walking history: %w", err)
	}
	return found.name, found.ver, false, nil
}

// truncate returns the first n characters of s, or s if shorter.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// sanitizeTag replaces characters not allowed in Docker tags.
func sanitizeTag(s string) string {
	return strings.NewReplacer("/", "-", " ", "-").Replace(s)
}
