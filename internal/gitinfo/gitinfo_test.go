package gitinfo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, dir, rel, body string, when time.Time) {
	t.Helper()
	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	_, err = wt.Add(rel)
	require.NoError(t, err)

	sig := &object.Signature{Name: "test", Email: "test@example.org", When: when}
	_, err = wt.Commit("update "+rel, &gogit.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
}

func TestOpenNotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.True(t, errors.Is(err, ErrNotRepository), "got %v", err)
}

func TestLastCommitTime(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	first := time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC)
	second := time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC)
	commitFile(t, dir, "content/posts/hello.md", "v1\n", first)
	commitFile(t, dir, "content/posts/hello.md", "v2\n", second)
	commitFile(t, dir, "content/posts/other.md", "x\n", second.Add(time.Hour))

	info, err := Open(filepath.Join(dir, "content"))
	require.NoError(t, err)

	got, err := info.LastCommitTime(filepath.Join(dir, "content/posts/hello.md"))
	require.NoError(t, err)
	assert.True(t, got.Equal(second), "got %v want %v", got, second)
}

func TestLastCommitTimeUncommittedFile(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	commitFile(t, dir, "a.md", "x\n", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	p := filepath.Join(dir, "new.md")
	require.NoError(t, os.WriteFile(p, []byte("fresh\n"), 0o644))

	info, err := Open(dir)
	require.NoError(t, err)

	got, err := info.LastCommitTime(p)
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "uncommitted file should report zero time, got %v", got)
}
