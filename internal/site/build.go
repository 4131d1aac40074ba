package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/blogforge/internal/content"
	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
	"git.home.luguber.info/inful/blogforge/internal/gitinfo"
	"git.home.luguber.info/inful/blogforge/internal/linkcheck"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
	"git.home.luguber.info/inful/blogforge/internal/markdown"
	"git.home.luguber.info/inful/blogforge/internal/sitemap"
	"git.home.luguber.info/inful/blogforge/internal/util/sets"
)

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	if err := os.RemoveAll(g.stageDir); err != nil {
		return newFatalStageError("prepare_output", bferrors.NewFileSystemError("remove stale staging directory", err))
	}
	if err := os.MkdirAll(g.stageDir, 0o755); err != nil {
		return newFatalStageError("prepare_output", bferrors.NewFileSystemError("create staging directory", err))
	}
	return nil
}

func stageLoadContent(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	corpus, err := content.NewLoader(g.cfg.Content).Load()
	if err != nil {
		return newFatalStageError("load_content", err)
	}
	bs.Corpus = corpus
	bs.Report.Documents = len(corpus.Documents)
	for _, d := range corpus.Documents {
		if d.Draft {
			bs.Report.Drafts++
		}
	}
	slog.Debug("Content loaded",
		logfields.Count(len(corpus.Documents)),
		slog.Int("assets", len(corpus.Assets)),
		slog.Int("drafts", bs.Report.Drafts))
	if len(corpus.Documents) == 0 {
		return newWarnStageError("load_content", fmt.Errorf("no documents found under %s", g.cfg.Content.Dir))
	}
	return nil
}

// stageGitLastmod enriches documents with their last commit time when the
// content dir lives inside a git work tree, then freezes the publication set
// for the remaining stages. Missing dates fall back pairwise: pubDate from
// lastmod (or the build start time), lastmod from pubDate.
func stageGitLastmod(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	info, err := gitinfo.Open(g.cfg.Content.Dir)
	switch {
	case errors.Is(err, gitinfo.ErrNotRepository):
		slog.Debug("Content directory is not in a git work tree, skipping lastmod enrichment")
	case err != nil:
		bs.publish()
		return newWarnStageError("git_lastmod", err)
	default:
		for i := range bs.Corpus.Documents {
			d := &bs.Corpus.Documents[i]
			t, err := info.LastCommitTime(d.Path)
			if err != nil {
				slog.Debug("No commit time for document", logfields.File(d.RelativePath), logfields.Error(err))
				continue
			}
			d.Lastmod = t
		}
	}
	for i := range bs.Corpus.Documents {
		d := &bs.Corpus.Documents[i]
		if d.PubDate.IsZero() {
			if !d.Lastmod.IsZero() {
				d.PubDate = d.Lastmod
			} else {
				d.PubDate = bs.start
			}
		}
		if d.Lastmod.IsZero() {
			d.Lastmod = d.PubDate
		}
	}
	bs.publish()
	return nil
}

// publish freezes the publication set from the (now fully enriched) corpus.
func (bs *BuildState) publish() {
	bs.Published = bs.Corpus.Published(bs.Generator.includeDrafts)
}

func stageRenderPages(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	for _, doc := range bs.Published {
		select {
		case <-ctx.Done():
			return newCanceledStageError("render_pages", ctx.Err())
		default:
		}
		rendered, err := g.renderer.Render(doc.Body)
		if err != nil {
			return newFatalStageError("render_pages",
				bferrors.NewRenderError(fmt.Sprintf("render %s", doc.RelativePath), err))
		}
		// Off-site links are never verified by the link check stage; count
		// them so the report shows how much of the site depends on them.
		if links, lerr := markdown.ExtractLinks(doc.Body); lerr == nil {
			for _, l := range links {
				if externalLink(l.Destination, g.site.URL) {
					bs.Report.ExternalLinks++
				}
			}
		}
		data := pageData{
			Site:        g.siteMeta(),
			Title:       doc.Title,
			Description: doc.Description,
			PubDate:     doc.PubDate,
			Lastmod:     doc.Lastmod,
			Tags:        g.tagRefs(doc.Tags),
			Content:     safeHTML(rendered),
		}
		stagePath := path.Join(doc.Slug, "index.html")
		if err := g.writePage(stagePath, "page", data); err != nil {
			return newFatalStageError("render_pages", err)
		}
		bs.Pages = append(bs.Pages, Page{StagePath: stagePath, PagePath: g.site.PagePath(doc.Slug)})
	}
	bs.Report.Pages = len(bs.Pages)
	g.recorder.PagesRendered(len(bs.Pages))
	return nil
}

func stageRenderIndexes(_ context.Context, bs *BuildState) error {
	g := bs.Generator

	// Home page, unless a root index document already claimed it.
	if !bs.hasPage("index.html") {
		data := listData{
			Site:    g.siteMeta(),
			Title:   g.cfg.Site.Title,
			Heading: g.cfg.Site.Title,
			Posts:   g.postRefs(bs.Published),
		}
		if err := g.writePage("index.html", "list", data); err != nil {
			return newFatalStageError("render_indexes", err)
		}
		bs.Pages = append(bs.Pages, Page{StagePath: "index.html", PagePath: g.site.PagePath("")})
		bs.Report.Pages++
	}

	tags := content.Tags(bs.Published)
	for _, tag := range tags {
		slug := content.Slugify(tag)
		var posts []content.Document
		for _, doc := range bs.Published {
			if docHasTag(doc, tag) {
				posts = append(posts, doc)
			}
		}
		display := g.titleCaser().String(tag)
		data := listData{
			Site:    g.siteMeta(),
			Title:   fmt.Sprintf("%s | %s", display, g.cfg.Site.Title),
			Heading: fmt.Sprintf("Posts tagged %q", display),
			Posts:   g.postRefs(posts),
		}
		stagePath := path.Join("tags", slug, "index.html")
		if err := g.writePage(stagePath, "list", data); err != nil {
			return newFatalStageError("render_indexes", err)
		}
		bs.Pages = append(bs.Pages, Page{StagePath: stagePath, PagePath: g.site.PagePath("tags/" + slug + "/")})
		bs.Report.Pages++
		slog.Debug("Rendered tag page", logfields.Tag(tag), logfields.Count(len(posts)))
	}
	bs.Report.Tags = len(tags)
	return nil
}

// stageGenerateSitemap writes sitemap.xml. The entry set is always computed
// without drafts: even a preview build that renders draft pages must not
// advertise them.
func stageGenerateSitemap(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	public := bs.Corpus.Published(false)

	tagPaths := sets.New[string]()
	for _, tag := range content.Tags(public) {
		tagPaths.Add("tags/" + content.Slugify(tag) + "/")
	}
	extras := append([]string{""}, sets.Sorted(tagPaths)...)

	data, err := sitemap.Generate(g.site, public, extras)
	if err != nil {
		return newFatalStageError("generate_sitemap", err)
	}
	if err := os.WriteFile(filepath.Join(g.stageDir, "sitemap.xml"), data, 0o644); err != nil {
		return newFatalStageError("generate_sitemap", bferrors.NewFileSystemError("write sitemap.xml", err))
	}
	bs.Report.SitemapEntries = len(extras) + len(public)
	return nil
}

func stageCopyStatic(_ context.Context, bs *BuildState) error {
	g := bs.Generator

	if dir := g.cfg.Content.StaticDir; dir != "" {
		n, err := copyTree(dir, g.stageDir)
		if err != nil {
			return newFatalStageError("copy_static", err)
		}
		bs.Report.Assets += n
	}
	for _, a := range bs.Corpus.Assets {
		dst := filepath.Join(g.stageDir, filepath.FromSlash(a.RelativePath))
		if err := copyFile(a.Path, dst); err != nil {
			return newFatalStageError("copy_static", err)
		}
		bs.Report.Assets++
	}

	// The layouts always link style.css; ship the built-in terminal theme
	// when the static dir didn't provide one.
	cssPath := filepath.Join(g.stageDir, "style.css")
	if _, err := os.Stat(cssPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(cssPath, []byte(defaultStylesheet), 0o644); err != nil {
			return newFatalStageError("copy_static", bferrors.NewFileSystemError("write default stylesheet", err))
		}
	}
	return nil
}

func stageCheckLinks(ctx context.Context, bs *BuildState) error {
	g := bs.Generator

	emitted := make([]string, 0, len(bs.Pages)+len(bs.Corpus.Assets)+2)
	for _, p := range bs.Pages {
		emitted = append(emitted, p.PagePath)
	}
	for _, a := range bs.Corpus.Assets {
		emitted = append(emitted, g.site.PagePath(a.RelativePath))
	}
	emitted = append(emitted, g.site.PagePath("sitemap.xml"), g.site.PagePath("style.css"))
	if dir := g.cfg.Content.StaticDir; dir != "" {
		_ = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil //nolint:nilerr // missing static dir is fine
			}
			rel, relErr := filepath.Rel(dir, p)
			if relErr == nil {
				emitted = append(emitted, g.site.PagePath(filepath.ToSlash(rel)))
			}
			return nil
		})
	}

	checker := linkcheck.NewChecker(g.site, emitted)
	var broken []linkcheck.Broken
	for _, p := range bs.Pages {
		select {
		case <-ctx.Done():
			return newCanceledStageError("check_links", ctx.Err())
		default:
		}
		found, err := checker.CheckFile(filepath.Join(g.stageDir, filepath.FromSlash(p.StagePath)), p.PagePath)
		if err != nil {
			return newWarnStageError("check_links", err)
		}
		broken = append(broken, found...)
	}
	if len(broken) > 0 {
		bs.Report.BrokenLinks = len(broken)
		for _, b := range broken {
			slog.Warn("Broken internal link", logfields.Page(b.SourcePage), logfields.URL(b.URL))
		}
		return newWarnStageError("check_links", fmt.Errorf("%d broken internal links", len(broken)))
	}
	return nil
}

// stageFinalize swaps the staging directory into place. The previous output
// is moved aside first so a crashed swap still leaves one complete tree.
func stageFinalize(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	oldDir := g.outputDir + ".old"

	if parent := filepath.Dir(g.outputDir); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return newFatalStageError("finalize", bferrors.NewFileSystemError("create output parent directory", err))
		}
	}
	if err := os.RemoveAll(oldDir); err != nil {
		return newFatalStageError("finalize", bferrors.NewFileSystemError("remove stale backup directory", err))
	}
	if _, err := os.Stat(g.outputDir); err == nil {
		if err := os.Rename(g.outputDir, oldDir); err != nil {
			return newFatalStageError("finalize", bferrors.NewFileSystemError("move previous output aside", err))
		}
	}
	if err := os.Rename(g.stageDir, g.outputDir); err != nil {
		// Try to restore the previous output before giving up.
		if restoreErr := os.Rename(oldDir, g.outputDir); restoreErr != nil {
			slog.Error("Failed to restore previous output", logfields.Path(oldDir), logfields.Error(restoreErr))
		}
		return newFatalStageError("finalize", bferrors.NewFileSystemError("swap staging directory into place", err))
	}
	if err := os.RemoveAll(oldDir); err != nil {
		slog.Warn("Failed to remove backup directory", logfields.Path(oldDir), logfields.Error(err))
	}
	return nil
}

func (bs *BuildState) hasPage(stagePath string) bool {
	for _, p := range bs.Pages {
		if p.StagePath == stagePath {
			return true
		}
	}
	return false
}

// externalLink reports whether dest targets another origin than the site.
func externalLink(dest, siteURL string) bool {
	return strings.Contains(dest, "://") && !strings.HasPrefix(dest, siteURL)
}

func docHasTag(d content.Document, tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func (g *Generator) siteMeta() siteMeta {
	lang := g.cfg.Site.Language
	if lang == "" {
		lang = "en"
	}
	return siteMeta{
		Title:       g.cfg.Site.Title,
		Description: g.cfg.Site.Description,
		Author:      g.cfg.Site.Author,
		Language:    lang,
		BasePath:    g.site.BasePath,
	}
}

func (g *Generator) titleCaser() cases.Caser {
	tag, err := language.Parse(g.cfg.Site.Language)
	if err != nil {
		tag = language.English
	}
	return cases.Title(tag)
}

func (g *Generator) tagRefs(tags []string) []tagRef {
	if len(tags) == 0 {
		return nil
	}
	caser := g.titleCaser()
	out := make([]tagRef, 0, len(tags))
	for _, t := range tags {
		slug := content.Slugify(t)
		out = append(out, tagRef{
			Name:    t,
			Display: caser.String(t),
			Href:    g.site.PagePath("tags/" + slug + "/"),
		})
	}
	return out
}

func (g *Generator) postRefs(docs []content.Document) []postRef {
	out := make([]postRef, 0, len(docs))
	for _, d := range docs {
		out = append(out, postRef{
			Title:       d.Title,
			Description: d.Description,
			PubDate:     d.PubDate,
			Href:        g.site.PagePath(d.Slug),
		})
	}
	return out
}

// writePage executes the named layout into stagePath under the staging root.
func (g *Generator) writePage(stagePath, layout string, data any) error {
	dst := filepath.Join(g.stageDir, filepath.FromSlash(stagePath))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return bferrors.NewFileSystemError("create page directory", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return bferrors.NewFileSystemError("create page file "+stagePath, err)
	}
	defer f.Close()
	if err := g.templates.ExecuteTemplate(f, layout, data); err != nil {
		return bferrors.NewRenderError("execute layout for "+stagePath, err)
	}
	return f.Close()
}

// copyTree copies every regular file under src into dst, preserving the
// relative layout. Returns the number of files copied. A missing src is not
// an error.
func copyTree(src, dst string) (int, error) {
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(src, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		if err := copyFile(p, filepath.Join(dst, rel)); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, bferrors.NewFileSystemError("copy static files", err)
	}
	return n, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return bferrors.NewFileSystemError("create asset directory", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return bferrors.NewFileSystemError("open asset "+src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return bferrors.NewFileSystemError("create asset "+dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return bferrors.NewFileSystemError("copy asset "+dst, err)
	}
	return out.Close()
}
