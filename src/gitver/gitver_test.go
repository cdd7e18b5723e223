package gitver

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commitTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

type testRepo struct {
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	n    int
}

func initRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) commit(t *testing.T) plumbing.Hash {
	t.Helper()
	r.n++
	name := filepath.Join(r.dir, "file.txt")
	require.NoError(t, os.WriteFile(name, []byte(fmt.Sprintf("change %d", r.n)), 0o644))
	_, err := r.wt.Add("file.txt")
	require.NoError(t, err)

	sig := &object.Signature{Name: "Dev", Email: "dev@example.com", When: commitTime.Add(time.Duration(r.n) * time.Minute)}
	hash, err := r.wt.Commit("change", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
	return hash
}

func (r *testRepo) tag(t *testing.T, name string, hash plumbing.Hash, annotated bool) {
	t.Helper()
	var opts *git.CreateTagOptions
	if annotated {
		opts = &git.CreateTagOptions{
			Tagger:  &object.Signature{Name: "Dev", Email: "dev@example.com", When: commitTime},
			Message: name,
		}
	}
	_, err := r.repo.CreateTag(name, hash, opts)
	require.NoError(t, err)
}

func TestDetect_NoTags(t *testing.T) {
	r := initRepo(t)
	hash := r.commit(t)

	info, err := Detect(r.dir)
	require.NoError(t, err)

	assert.Equal(t, hash.String(), info.SHA)
	assert.Equal(t, "main", info.Branch)
	assert.Equal(t, "0.0.0-dev+"+hash.String()[:7], info.Version)
	assert.Equal(t, "0.0.0", info.Base)
	assert.Empty(t, info.Tag)
	assert.False(t, info.IsRelease)
	assert.True(t, commitTime.Add(time.Minute).Equal(info.CommitTime), info.CommitTime)
}

func TestDetect_ReleaseAtHead(t *testing.T) {
	r := initRepo(t)
	hash := r.commit(t)
	r.tag(t, "v1.2.3", hash, true)
	r.tag(t, "not-a-version", hash, false)

	info, err := Detect(r.dir)
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", info.Tag)
	assert.True(t, info.IsRelease)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, []string{"1", "2", "3"}, []string{info.Major, info.Minor, info.Patch})
}

func TestDetect_NearestTagBehindHead(t *testing.T) {
	r := initRepo(t)
	first := r.commit(t)
	r.tag(t, "v0.9.0", first, false)
	second := r.commit(t)
	r.tag(t, "v1.0.0-rc.1", second, false)
	head := r.commit(t)

	info, err := Detect(r.dir)
	require.NoError(t, err)

	assert.Equal(t, "v1.0.0-rc.1", info.Tag)
	assert.False(t, info.IsRelease)
	assert.True(t, info.IsPrerelease)
	assert.Equal(t, "rc.1", info.Prerelease)
	assert.Equal(t, "1.0.0-rc.1-dev+"+head.String()[:7], info.Version)
}

func TestDetect_HighestTagOnSameCommit(t *testing.T) {
	r := initRepo(t)
	hash := r.commit(t)
	r.tag(t, "v1.0.0", hash, false)
	r.tag(t, "v1.1.0", hash, true)

	info, err := Detect(r.dir)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", info.Version)
}

func TestDetect_RemoteAndLicense(t *testing.T) {
	r := initRepo(t)
	_, err := r.repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:sofmeright/demo.git"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(r.dir, "LICENSE"), []byte("MIT License\n\nCopyright"), 0o644))
	r.commit(t)

	info, err := Detect(r.dir)
	require.NoError(t, err)

	assert.Equal(t, "git@github.com:sofmeright/demo.git", info.Remote)
	assert.Equal(t, "https://github.com/sofmeright/demo", info.URL)
	assert.Equal(t, "demo", info.Name)
	assert.Equal(t, "MIT", info.License)
}

func TestDetect_FromSubdirectory(t *testing.T) {
	r := initRepo(t)
	hash := r.commit(t)
	sub := filepath.Join(r.dir, "deploy", "docker")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	info, err := Detect(sub)
	require.NoError(t, err)
	assert.Equal(t, hash.String(), info.SHA)
}

func TestDetect_NotARepo(t *testing.T) {
	_, err := Detect(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, git.ErrRepositoryNotExists)
}

func TestDetect_EmptyRepo(t *testing.T) {
	r := initRepo(t)
	_, err := Detect(r.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving HEAD")
}
