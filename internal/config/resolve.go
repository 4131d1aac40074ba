package config

import "strings"

// EnvVar is the single process-wide environment flag read once at build start.
const EnvVar = "BLOGFORGE_ENV"

// EnvProduction is the production marker. Matching is exact, case-sensitive
// string equality; any other value (including unset) selects the
// non-production branch, which is the default-safe configuration.
const EnvProduction = "production"

// ResolvedSite is the environment-resolved site identity consumed by the
// renderer and the sitemap. Computed once per build invocation and immutable
// afterwards.
type ResolvedSite struct {
	URL      string // canonical absolute origin, constant across environments
	BasePath string // path prefix the site is served under, starts and ends with "/"
}

// ResolveSite returns the (URL, BasePath) pair matching the environment flag
// value. Pure function of its inputs: the same flag value always yields the
// same result.
func ResolveSite(site SiteConfig, env string) ResolvedSite {
	base := site.Base
	if env == EnvProduction {
		base = site.ProdBase
	}
	return ResolvedSite{
		URL:      strings.TrimSuffix(site.URL, "/"),
		BasePath: base,
	}
}

// PagePath joins a site-relative page path with the base path prefix.
// The result always starts with "/".
func (r ResolvedSite) PagePath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	return r.BasePath + rel
}

// AbsoluteURL returns the full public URL for a site-relative page path.
func (r ResolvedSite) AbsoluteURL(rel string) string {
	return r.URL + r.PagePath(rel)
}
