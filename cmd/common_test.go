package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git-global/internal/config"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareRun_NoCache(t *testing.T) {
	withTempHome(t)

	_, err := prepareRun()
	require.ErrorIs(t, err, errNoCachedRepos)
}

func TestPrepareRun_EmptyCache(t *testing.T) {
	home := withTempHome(t)
	writeReposFile(t, home, nil)

	_, err := prepareRun()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no repositories in cache")
}

func TestPrepareRun_BuildsHandlesInCacheOrder(t *testing.T) {
	home := withTempHome(t)
	paths := []string{
		filepath.Join(home, "code", "b"),
		filepath.Join(home, "code", "a"),
	}
	writeReposFile(t, home, paths)

	runCtx, err := prepareRun()
	require.NoError(t, err)
	require.Len(t, runCtx.Repos, 2)
	assert.Equal(t, paths[0], runCtx.Repos[0].Path)
	assert.Equal(t, paths[1], runCtx.Repos[1].Path)
}

func TestRunContext_AggregateOptions(t *testing.T) {
	runCtx := &RunContext{Config: config.Config{Workers: 8, Timeout: 60}}

	opts := runCtx.AggregateOptions()
	assert.Equal(t, 8, opts.Workers)
	assert.Equal(t, 60*time.Second, opts.Timeout)
}

func withTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	require.NoError(t, os.Setenv("HOME", home))
	t.Cleanup(func() {
		_ = os.Setenv("HOME", oldHome)
	})
	return home
}

func writeReposFile(t *testing.T, home string, repos []string) {
	t.Helper()

	dir := filepath.Join(home, ".config", "git-global")
	require.NoError(t, os.MkdirAll(dir, 0o700))

	path := filepath.Join(dir, "repos")
	data := strings.Join(repos, "\n")
	if len(repos) > 0 {
		data += "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func setTestConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	require.NoError(t, config.Save(cfg))
}

// createDiskRepo 在磁盘上创建一个带一次提交的干净仓库。
func createDiskRepo(t *testing.T, path string) *git.Repository {
	t.Helper()

	require.NoError(t, os.MkdirAll(path, 0o755))
	r, err := git.PlainInit(path, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(path, "README.md"), []byte("hello\n"), 0o644))

	wt, err := r.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)

	sig := &object.Signature{
		Name:  "Test",
		Email: "test@example.com",
		When:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local),
	}
	_, err = wt.Commit("initial commit", &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	require.NoError(t, err)

	return r
}
