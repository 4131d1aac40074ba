package content

import (
	"sort"
	"strings"
	"time"
)

// Document is a single markdown content file with its parsed frontmatter.
// Authored by a human, read at build time, never mutated by the system.
type Document struct {
	Path         string // absolute path on disk
	RelativePath string // slash-separated path relative to the content dir
	Slug         string // site-relative page path without base prefix, e.g. "posts/hello/"
	Section      string // first path segment ("posts"), empty for root pages

	Title       string
	Description string
	PubDate     time.Time
	Lastmod     time.Time
	Draft       bool
	Tags        []string

	Body        []byte // markdown body, frontmatter removed
	Fingerprint string // canonical content fingerprint for change detection
}

// Asset is a non-markdown file under the content dir, copied through verbatim.
type Asset struct {
	Path         string
	RelativePath string
}

// Corpus is the loaded content tree.
type Corpus struct {
	Documents []Document
	Assets    []Asset
}

// Published returns the documents that belong in published output, newest
// first. Draft documents are excluded unless includeDrafts is set (preview
// builds). Ties are broken by slug so ordering stays stable across builds.
func (c *Corpus) Published(includeDrafts bool) []Document {
	out := make([]Document, 0, len(c.Documents))
	for _, d := range c.Documents {
		if d.Draft && !includeDrafts {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PubDate.Equal(out[j].PubDate) {
			return out[i].PubDate.After(out[j].PubDate)
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// Tags returns every tag carried by the provided documents, deduplicated,
// in first-seen order of the (already sorted) document slice.
func Tags(docs []Document) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, d := range docs {
		for _, tag := range d.Tags {
			key := strings.ToLower(tag)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
