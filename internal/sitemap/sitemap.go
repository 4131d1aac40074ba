// Package sitemap emits the sitemap.xml build artifact: one absolute URL per
// published document. Draft documents never reach this package; callers pass
// the already-filtered publication set.
package sitemap

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogforge/internal/config"
	"git.home.luguber.info/inful/blogforge/internal/content"
	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URL is a single sitemap entry.
type URL struct {
	Loc     string `xml:"loc"`
	Lastmod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Generate renders sitemap.xml bytes for the published documents plus any
// extra site-relative paths (home page, tag indexes).
//
// The resolved site URL must be absolute: sitemap generation fails the build
// otherwise. Each entry is re-parsed after joining with the base path so an
// unjoinable document path also fails the build instead of emitting a
// malformed sitemap.
func Generate(site config.ResolvedSite, docs []content.Document, extraPaths []string) ([]byte, error) {
	if err := checkSite(site); err != nil {
		return nil, err
	}

	set := urlSet{Xmlns: xmlns}
	for _, p := range extraPaths {
		loc, err := entryURL(site, p)
		if err != nil {
			return nil, err
		}
		set.URLs = append(set.URLs, URL{Loc: loc})
	}
	for _, d := range docs {
		loc, err := entryURL(site, d.Slug)
		if err != nil {
			return nil, bferrors.NewSitemapError("document path cannot be joined with base path", err).
				WithContext("file", d.RelativePath)
		}
		set.URLs = append(set.URLs, URL{Loc: loc, Lastmod: lastmod(d)})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, bferrors.NewSitemapError("encode sitemap", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

func checkSite(site config.ResolvedSite) error {
	if strings.TrimSpace(site.URL) == "" {
		return bferrors.NewSitemapError("site URL is required for sitemap generation", nil)
	}
	u, err := url.Parse(site.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return bferrors.NewSitemapError("site URL must be absolute", err).
			WithContext("url", site.URL)
	}
	if !strings.HasPrefix(site.BasePath, "/") || !strings.HasSuffix(site.BasePath, "/") {
		return bferrors.NewSitemapError("base path must start and end with '/'", nil).
			WithContext("base", site.BasePath)
	}
	return nil
}

func entryURL(site config.ResolvedSite, rel string) (string, error) {
	loc := site.AbsoluteURL(rel)
	if _, err := url.Parse(loc); err != nil {
		return "", err
	}
	return loc, nil
}

func lastmod(d content.Document) string {
	t := d.Lastmod
	if t.IsZero() {
		t = d.PubDate
	}
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
