package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogforge/internal/config"
	"git.home.luguber.info/inful/blogforge/internal/content"
	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
)

func resolved() config.ResolvedSite {
	return config.ResolvedSite{URL: "https://flashblaze.xyz", BasePath: "/astro-theme-terminal/"}
}

func TestGenerateListsPublishedDocuments(t *testing.T) {
	docs := []content.Document{
		{Slug: "posts/retry-handlers/", RelativePath: "posts/retry-handlers.md",
			PubDate: time.Date(2022, 7, 8, 0, 0, 0, 0, time.UTC)},
		{Slug: "posts/fhir-mapping/", RelativePath: "posts/fhir-mapping.md"},
	}

	out, err := Generate(resolved(), docs, []string{""})
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "<?xml"))
	assert.Contains(t, s, "<loc>https://flashblaze.xyz/astro-theme-terminal/</loc>")
	assert.Contains(t, s, "<loc>https://flashblaze.xyz/astro-theme-terminal/posts/retry-handlers/</loc>")
	assert.Contains(t, s, "<lastmod>2022-07-08T00:00:00Z</lastmod>")
	assert.Contains(t, s, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
}

func TestGenerateRequiresAbsoluteSiteURL(t *testing.T) {
	cases := []config.ResolvedSite{
		{URL: "", BasePath: "/"},
		{URL: "flashblaze.xyz", BasePath: "/"},
		{URL: "/relative/only", BasePath: "/"},
	}
	for _, site := range cases {
		_, err := Generate(site, nil, nil)
		require.Error(t, err, "site %+v", site)
		assert.True(t, bferrors.IsCategory(err, bferrors.CategorySitemap), "got %v", err)
	}
}

func TestGenerateRejectsMalformedBasePath(t *testing.T) {
	_, err := Generate(config.ResolvedSite{URL: "https://flashblaze.xyz", BasePath: "astro"}, nil, nil)
	require.Error(t, err)
	assert.True(t, bferrors.IsCategory(err, bferrors.CategorySitemap))
}

func TestGenerateUsesLastmodOverPubDate(t *testing.T) {
	docs := []content.Document{{
		Slug:    "posts/hello/",
		PubDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		Lastmod: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}}
	out, err := Generate(resolved(), docs, nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<lastmod>2024-05-01T12:00:00Z</lastmod>")
}

func TestGenerateOmitsLastmodWhenUnknown(t *testing.T) {
	out, err := Generate(resolved(), []content.Document{{Slug: "posts/x/"}}, nil)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<lastmod>")
}
