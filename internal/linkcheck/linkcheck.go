// Package linkcheck verifies that internal links in rendered HTML resolve to
// files the build actually emitted. Broken internal links surface as build
// warnings; external links are out of scope (no network at build time).
package linkcheck

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/blogforge/internal/config"
	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
)

// Link is a link-carrying attribute extracted from an HTML document.
type Link struct {
	URL       string // raw attribute value
	Tag       string // a, img, script, link
	Attribute string // href or src
}

// Broken describes an internal link whose target was not emitted.
type Broken struct {
	SourcePage string // site-relative page the link appears on
	URL        string // the offending link value
}

// ExtractLinksFromReader extracts link-carrying attributes from an HTML document.
func ExtractLinksFromReader(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, bferrors.NewValidationError("parse HTML", err)
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a", "link":
				if v := getAttr(n, "href"); v != "" {
					links = append(links, Link{URL: v, Tag: n.Data, Attribute: "href"})
				}
			case "img", "script":
				if v := getAttr(n, "src"); v != "" {
					links = append(links, Link{URL: v, Tag: n.Data, Attribute: "src"})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

// Checker validates internal links against the set of emitted output paths.
type Checker struct {
	site    config.ResolvedSite
	emitted map[string]struct{} // site-relative paths with base prefix, e.g. "/base/posts/x/"
}

// NewChecker builds a checker over the emitted path set. Paths are
// site-relative including the base prefix, exactly as pages link to them.
func NewChecker(site config.ResolvedSite, emittedPaths []string) *Checker {
	m := make(map[string]struct{}, len(emittedPaths))
	for _, p := range emittedPaths {
		m[p] = struct{}{}
	}
	return &Checker{site: site, emitted: m}
}

// CheckFile extracts links from one rendered HTML file and returns the
// internal ones that do not resolve.
func (c *Checker) CheckFile(htmlPath, pagePath string) ([]Broken, error) {
	f, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, bferrors.NewFileSystemError("open rendered page", err).WithContext("path", htmlPath)
	}
	defer func() { _ = f.Close() }()

	links, err := ExtractLinksFromReader(f)
	if err != nil {
		return nil, err
	}

	var broken []Broken
	for _, l := range links {
		if !c.isInternal(l.URL) {
			continue
		}
		if !c.resolves(l.URL) {
			broken = append(broken, Broken{SourcePage: pagePath, URL: l.URL})
		}
	}
	return broken, nil
}

// isInternal reports whether the link targets this site: either a rooted path
// or an absolute URL on the site origin.
func (c *Checker) isInternal(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme == "mailto" || u.Scheme == "tel" || u.Scheme == "data" {
		return false
	}
	if u.Host != "" {
		site, err := url.Parse(c.site.URL)
		if err != nil {
			return false
		}
		return u.Host == site.Host
	}
	// Fragment-only and relative links are skipped; the build emits rooted paths.
	return strings.HasPrefix(u.Path, "/")
}

func (c *Checker) resolves(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	p := u.Path
	if p == "" {
		return true
	}
	if _, ok := c.emitted[p]; ok {
		return true
	}
	// Directory links may appear without the trailing slash.
	if _, ok := c.emitted[p+"/"]; ok {
		return true
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
