package repo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initDiskRepo 在磁盘上创建一个带一次提交的干净仓库。
func initDiskRepo(t *testing.T, path string) *git.Repository {
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

// writeUntracked 在仓库工作区写入一个未跟踪文件。
func writeUntracked(t *testing.T, repoPath, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, name), []byte("new\n"), 0o644))
}

func TestRepositoryStatus_Clean(t *testing.T) {
	repoPath := filepath.Join(t.TempDir(), "clean-repo")
	initDiskRepo(t, repoPath)

	entry := NewRepository(repoPath).Status()
	require.NoError(t, entry.Err)
	assert.True(t, entry.Clean())
	assert.Empty(t, entry.Lines)
	assert.Equal(t, repoPath, entry.Path)
}

func TestRepositoryStatus_UntrackedFile(t *testing.T) {
	repoPath := filepath.Join(t.TempDir(), "dirty-repo")
	initDiskRepo(t, repoPath)

	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "x.txt"), []byte("new\n"), 0o644))

	entry := NewRepository(repoPath).Status()
	require.NoError(t, entry.Err)
	assert.False(t, entry.Clean())
	assert.Equal(t, []string{"?? x.txt"}, entry.Lines)
}

func TestRepositoryStatus_StagedFile(t *testing.T) {
	repoPath := filepath.Join(t.TempDir(), "staged-repo")
	r := initDiskRepo(t, repoPath)

	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "new.txt"), []byte("staged\n"), 0o644))
	wt, err := r.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("new.txt")
	require.NoError(t, err)

	entry := NewRepository(repoPath).Status()
	require.NoError(t, entry.Err)
	assert.Equal(t, []string{"A  new.txt"}, entry.Lines)
}

func TestRepositoryStatus_LinesSortedByPath(t *testing.T) {
	repoPath := filepath.Join(t.TempDir(), "multi-repo")
	initDiskRepo(t, repoPath)

	// 逆字典序创建，输出仍应按路径排序
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "zz.txt"), []byte("z\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "aa.txt"), []byte("a\n"), 0o644))

	entry := NewRepository(repoPath).Status()
	require.NoError(t, entry.Err)
	assert.Equal(t, []string{"?? aa.txt", "?? zz.txt"}, entry.Lines)
}

func TestRepositoryStatus_StalePath(t *testing.T) {
	stalePath := filepath.Join(t.TempDir(), "deleted-repo")

	entry := NewRepository(stalePath).Status()
	assert.True(t, entry.Failed())
	assert.Equal(t, stalePath, entry.Path)
	assert.ErrorContains(t, entry.Err, "not a git repository")
}

func TestRepositoryStatus_NotARepo(t *testing.T) {
	dir := t.TempDir()

	entry := NewRepository(dir).Status()
	assert.True(t, entry.Failed())
	assert.ErrorContains(t, entry.Err, "not a git repository")
}

func TestRepositoryStatus_CorruptMetadata(t *testing.T) {
	repoPath := filepath.Join(t.TempDir(), "corrupt-repo")
	// .git 存在但内容为空，PlainOpen 应失败并以失败条目返回
	require.NoError(t, os.MkdirAll(filepath.Join(repoPath, ".git"), 0o755))

	entry := NewRepository(repoPath).Status()
	assert.True(t, entry.Failed())
}

func TestStatusEntry_Helpers(t *testing.T) {
	clean := StatusEntry{Path: "/a"}
	assert.True(t, clean.Clean())
	assert.False(t, clean.Failed())

	dirty := StatusEntry{Path: "/b", Lines: []string{"?? x.txt"}}
	assert.False(t, dirty.Clean())
	assert.False(t, dirty.Failed())

	failed := StatusEntry{Path: "/c", Err: assert.AnError}
	assert.False(t, failed.Clean())
	assert.True(t, failed.Failed())
}
