package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogforge/internal/config"
	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
	"git.home.luguber.info/inful/blogforge/internal/frontmatter"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
	"git.home.luguber.info/inful/blogforge/internal/util/sets"
)

// markdownExtensions are the file extensions treated as renderable documents.
// Everything else under the content dir is an asset.
var markdownExtensions = sets.New(".md", ".markdown", ".mdx")

// pubDateLayouts are the accepted frontmatter date formats, tried in order.
var pubDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 02 2006",
	"Jan 2 2006",
	"January 2, 2006",
}

// docFields is the typed frontmatter surface of a content document.
type docFields struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	PubDate     string   `yaml:"pubDate"`
	Draft       bool     `yaml:"draft"`
	Tags        []string `yaml:"tags"`
}

// Loader reads the content corpus from disk.
type Loader struct {
	cfg config.ContentConfig
}

// NewLoader creates a corpus loader for the configured content directory.
func NewLoader(cfg config.ContentConfig) *Loader {
	return &Loader{cfg: cfg}
}

// Load walks the content directory and parses every markdown document.
// Malformed frontmatter is build-fatal; there is no runtime to recover at.
func (l *Loader) Load() (*Corpus, error) {
	root, err := filepath.Abs(l.cfg.Dir)
	if err != nil {
		return nil, bferrors.NewFileSystemError("resolve content directory", err)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return nil, bferrors.NewContentError("content directory does not exist", err).
			WithContext("dir", l.cfg.Dir)
	}

	corpus := &Corpus{}
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !markdownExtensions.Has(strings.ToLower(filepath.Ext(name))) {
			corpus.Assets = append(corpus.Assets, Asset{Path: p, RelativePath: rel})
			return nil
		}

		doc, err := l.loadDocument(p, rel)
		if err != nil {
			return err
		}
		corpus.Documents = append(corpus.Documents, doc)
		return nil
	})
	if walkErr != nil {
		if _, ok := walkErr.(*bferrors.BlogForgeError); ok {
			return nil, walkErr
		}
		return nil, bferrors.NewFileSystemError("walk content directory", walkErr)
	}

	slog.Debug("Content corpus loaded",
		logfields.Path(root),
		slog.Int("documents", len(corpus.Documents)),
		slog.Int("assets", len(corpus.Assets)))
	return corpus, nil
}

func (l *Loader) loadDocument(absPath, rel string) (Document, error) {
	raw, err := os.ReadFile(absPath) // #nosec G304 -- path comes from walking the configured content dir
	if err != nil {
		return Document{}, bferrors.NewContentError("read content file", err).WithContext("file", rel)
	}

	fm, body, _, _, err := frontmatter.Split(raw)
	if err != nil {
		return Document{}, bferrors.NewContentError("malformed frontmatter", err).WithContext("file", rel)
	}

	var fields docFields
	if err := frontmatter.Decode(fm, &fields); err != nil {
		return Document{}, bferrors.NewContentError("malformed frontmatter", err).WithContext("file", rel)
	}

	rawFields, err := frontmatter.ParseYAML(fm)
	if err != nil {
		return Document{}, bferrors.NewContentError("malformed frontmatter", err).WithContext("file", rel)
	}
	fingerprint, err := ComputeFingerprint(rawFields, body)
	if err != nil {
		return Document{}, bferrors.NewContentError("fingerprint content", err).WithContext("file", rel)
	}

	doc := Document{
		Path:         absPath,
		RelativePath: rel,
		Slug:         slugForFile(rel),
		Title:        strings.TrimSpace(fields.Title),
		Description:  strings.TrimSpace(fields.Description),
		Draft:        fields.Draft,
		Tags:         fields.Tags,
		Body:         body,
		Fingerprint:  fingerprint,
	}
	if idx := strings.IndexByte(rel, '/'); idx > 0 {
		doc.Section = rel[:idx]
	}
	if doc.Title == "" {
		doc.Title = titleFromFilename(rel)
	}
	if fields.PubDate != "" {
		t, err := parsePubDate(fields.PubDate)
		if err != nil {
			return Document{}, bferrors.NewContentError("unparseable pubDate", err).WithContext("file", rel)
		}
		doc.PubDate = t
	}
	return doc, nil
}

func parsePubDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range pubDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
