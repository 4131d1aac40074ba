package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogforge/internal/config"
	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func loadCorpus(t *testing.T, root string) *Corpus {
	t.Helper()
	corpus, err := NewLoader(config.ContentConfig{Dir: root}).Load()
	require.NoError(t, err)
	return corpus
}

func TestLoadParsesFrontmatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/retry-handlers.md", `---
title: Retry handlers in practice
description: Resiliency patterns for flaky downstreams
pubDate: "Jul 08 2022"
tags:
  - resilience
  - dotnet
---
Body text.
`)

	corpus := loadCorpus(t, root)
	require.Len(t, corpus.Documents, 1)

	doc := corpus.Documents[0]
	assert.Equal(t, "Retry handlers in practice", doc.Title)
	assert.Equal(t, "Resiliency patterns for flaky downstreams", doc.Description)
	assert.Equal(t, "posts/retry-handlers/", doc.Slug)
	assert.Equal(t, "posts", doc.Section)
	assert.Equal(t, []string{"resilience", "dotnet"}, doc.Tags)
	assert.False(t, doc.Draft)
	assert.Equal(t, time.Date(2022, 7, 8, 0, 0, 0, 0, time.UTC), doc.PubDate)
	assert.Equal(t, "Body text.\n", string(doc.Body))
	assert.NotEmpty(t, doc.Fingerprint)
}

func TestLoadTitleFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/idempotent-consumers.md", "No frontmatter here.\n")

	corpus := loadCorpus(t, root)
	require.Len(t, corpus.Documents, 1)
	assert.Equal(t, "Idempotent consumers", corpus.Documents[0].Title)
	assert.True(t, corpus.Documents[0].PubDate.IsZero())
}

func TestLoadMalformedFrontmatterFailsBuild(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/broken.md", "---\ntitle: [unclosed\n---\nbody\n")

	_, err := NewLoader(config.ContentConfig{Dir: root}).Load()
	require.Error(t, err)
	assert.True(t, bferrors.IsCategory(err, bferrors.CategoryContent), "got %v", err)
}

func TestLoadMissingClosingDelimiterFailsBuild(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/unterminated.md", "---\ntitle: Oops\n")

	_, err := NewLoader(config.ContentConfig{Dir: root}).Load()
	require.Error(t, err)
	assert.True(t, bferrors.IsCategory(err, bferrors.CategoryContent), "got %v", err)
}

func TestLoadSkipsHiddenAndUnderscore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/visible.md", "body\n")
	writeFile(t, root, "posts/_draft-notes.md", "body\n")
	writeFile(t, root, ".obsidian/workspace.md", "body\n")

	corpus := loadCorpus(t, root)
	require.Len(t, corpus.Documents, 1)
	assert.Equal(t, "posts/visible.md", corpus.Documents[0].RelativePath)
}

func TestLoadCollectsAssets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/hello.md", "body\n")
	writeFile(t, root, "posts/diagram.png", "not-really-a-png")

	corpus := loadCorpus(t, root)
	require.Len(t, corpus.Assets, 1)
	assert.Equal(t, "posts/diagram.png", corpus.Assets[0].RelativePath)
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := NewLoader(config.ContentConfig{Dir: filepath.Join(t.TempDir(), "nope")}).Load()
	require.Error(t, err)
	assert.True(t, bferrors.IsCategory(err, bferrors.CategoryContent))
}

func TestPublishedExcludesDrafts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/live.md", "---\ntitle: Live\npubDate: \"2024-01-02\"\n---\nbody\n")
	writeFile(t, root, "posts/wip.md", "---\ntitle: WIP\ndraft: true\npubDate: \"2024-03-01\"\n---\nbody\n")
	writeFile(t, root, "posts/older.md", "---\ntitle: Older\npubDate: \"2023-06-01\"\n---\nbody\n")

	corpus := loadCorpus(t, root)

	published := corpus.Published(false)
	require.Len(t, published, 2)
	assert.Equal(t, "Live", published[0].Title, "newest first")
	assert.Equal(t, "Older", published[1].Title)

	withDrafts := corpus.Published(true)
	assert.Len(t, withDrafts, 3)
	assert.Equal(t, "WIP", withDrafts[0].Title)
}

func TestFingerprintStableAcrossLastmod(t *testing.T) {
	fields := map[string]any{"title": "Hello", "tags": []any{"go"}}
	body := []byte("body\n")

	base, err := ComputeFingerprint(fields, body)
	require.NoError(t, err)

	withLastmod := map[string]any{"title": "Hello", "tags": []any{"go"}, "lastmod": "2024-01-01"}
	same, err := ComputeFingerprint(withLastmod, body)
	require.NoError(t, err)
	assert.Equal(t, base, same, "lastmod must not affect the fingerprint")

	changed, err := ComputeFingerprint(fields, []byte("different body\n"))
	require.NoError(t, err)
	assert.NotEqual(t, base, changed)
}

func TestTagsDeduplicatesCaseInsensitively(t *testing.T) {
	docs := []Document{
		{Tags: []string{"FHIR", "resilience"}},
		{Tags: []string{"fhir", "pdf"}},
	}
	assert.Equal(t, []string{"FHIR", "resilience", "pdf"}, Tags(docs))
}
