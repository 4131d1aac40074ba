package config

import "testing"

func testSite() SiteConfig {
	return SiteConfig{
		URL:      "https://flashblaze.xyz",
		Base:     "/",
		ProdBase: "/astro-theme-terminal/",
	}
}

func TestResolveSiteProduction(t *testing.T) {
	r := ResolveSite(testSite(), "production")
	if r.BasePath != "/astro-theme-terminal/" {
		t.Fatalf("production base = %q, want /astro-theme-terminal/", r.BasePath)
	}
	if r.URL != "https://flashblaze.xyz" {
		t.Fatalf("url = %q", r.URL)
	}
}

func TestResolveSiteNonProduction(t *testing.T) {
	// Any value other than the exact production marker selects the default
	// branch, including unset and case variants.
	for _, env := range []string{"", "development", "staging", "Production", "PRODUCTION", "prod"} {
		r := ResolveSite(testSite(), env)
		if r.BasePath != "/" {
			t.Errorf("env %q: base = %q, want /", env, r.BasePath)
		}
	}
}

func TestResolveSiteURLConstantAcrossEnvironments(t *testing.T) {
	prod := ResolveSite(testSite(), "production")
	dev := ResolveSite(testSite(), "development")
	if prod.URL != dev.URL {
		t.Fatalf("site URL must be independent of the environment flag: %q vs %q", prod.URL, dev.URL)
	}
}

func TestResolveSiteIsPure(t *testing.T) {
	first := ResolveSite(testSite(), "production")
	second := ResolveSite(testSite(), "production")
	if first != second {
		t.Fatalf("resolution must be deterministic: %+v vs %+v", first, second)
	}
}

func TestResolveSiteTrimsTrailingURLSlash(t *testing.T) {
	site := testSite()
	site.URL = "https://flashblaze.xyz/"
	r := ResolveSite(site, "")
	if r.URL != "https://flashblaze.xyz" {
		t.Fatalf("url = %q", r.URL)
	}
}

func TestPagePathAndAbsoluteURL(t *testing.T) {
	r := ResolveSite(testSite(), "production")

	cases := []struct {
		rel     string
		path    string
		absolut string
	}{
		{"", "/astro-theme-terminal/", "https://flashblaze.xyz/astro-theme-terminal/"},
		{"posts/hello/", "/astro-theme-terminal/posts/hello/", "https://flashblaze.xyz/astro-theme-terminal/posts/hello/"},
		{"/posts/hello/", "/astro-theme-terminal/posts/hello/", "https://flashblaze.xyz/astro-theme-terminal/posts/hello/"},
		{"sitemap.xml", "/astro-theme-terminal/sitemap.xml", "https://flashblaze.xyz/astro-theme-terminal/sitemap.xml"},
	}
	for _, c := range cases {
		if got := r.PagePath(c.rel); got != c.path {
			t.Errorf("PagePath(%q) = %q, want %q", c.rel, got, c.path)
		}
		if got := r.AbsoluteURL(c.rel); got != c.absolut {
			t.Errorf("AbsoluteURL(%q) = %q, want %q", c.rel, got, c.absolut)
		}
	}
}
