package config

import (
	"net/url"
	"strings"

	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
)

// Validate checks the invariants a build depends on. Run after defaults and
// normalization; failures are build-fatal.
func Validate(c *Config) error {
	if c == nil {
		return bferrors.NewConfigError("configuration is nil", nil)
	}
	if strings.TrimSpace(c.Site.URL) == "" {
		return bferrors.NewConfigError("site.url is required", nil)
	}
	if err := validateAbsoluteURL(c.Site.URL); err != nil {
		return err
	}
	for field, base := range map[string]string{"site.base": c.Site.Base, "site.prod_base": c.Site.ProdBase} {
		if !strings.HasPrefix(base, "/") || !strings.HasSuffix(base, "/") {
			return bferrors.NewValidationError(field+" must start and end with '/'", nil).
				WithContext("value", base)
		}
	}
	if strings.TrimSpace(c.Content.Dir) == "" {
		return bferrors.NewConfigError("content.dir is required", nil)
	}
	if c.Events != nil && c.Events.Enabled && strings.TrimSpace(c.Events.NATSURL) == "" {
		return bferrors.NewConfigError("events.nats_url is required when events are enabled", nil)
	}
	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return bferrors.NewConfigError("site.url is not a valid URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return bferrors.NewConfigError("site.url must be an absolute http(s) URL", nil).
			WithContext("url", raw)
	}
	if u.Host == "" {
		return bferrors.NewConfigError("site.url must include a host", nil).
			WithContext("url", raw)
	}
	return nil
}
