// Package gitinfo derives per-file modification times from git history.
// A content tree living inside a git work tree gets stable lastmod values
// from commit times instead of filesystem mtimes, which churn on checkout.
package gitinfo

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNotRepository indicates the directory is not inside a git work tree.
var ErrNotRepository = errors.New("directory is not inside a git repository")

// Info wraps an opened repository for lastmod lookups.
type Info struct {
	repo *gogit.Repository
	root string
}

// Open locates the repository containing dir, walking up like git does.
// Returns ErrNotRepository when dir is not under version control.
func Open(dir string) (*Info, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	return &Info{repo: repo, root: wt.Filesystem.Root()}, nil
}

// LastCommitTime returns the committer time of the most recent commit touching
// absPath. A file that has never been committed returns the zero time with a
// nil error; the caller falls back to frontmatter or build time.
func (i *Info) LastCommitTime(absPath string) (time.Time, error) {
	rel, err := filepath.Rel(i.root, absPath)
	if err != nil {
		return time.Time{}, err
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return time.Time{}, errors.New("path is outside the repository work tree")
	}

	iter, err := i.repo.Log(&gogit.LogOptions{FileName: &rel, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return time.Time{}, err
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		// io.EOF: no commit touches this file yet.
		return time.Time{}, nil
	}
	return commit.Committer.When, nil
}
