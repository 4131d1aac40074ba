package config

import (
	"strings"
	"testing"
)

func TestNormalizeBasePathShapes(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"/", "/"},
		{"/blog/", "/blog/"},
		{"blog", "/blog/"},
		{"/blog", "/blog/"},
		{"blog/", "/blog/"},
		{"  /blog/  ", "/blog/"},
	}
	for _, c := range cases {
		if got := normalizeBasePath(c.in); got != c.want {
			t.Errorf("normalizeBasePath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeSiteWarns(t *testing.T) {
	cfg := &Config{Site: SiteConfig{URL: "https://example.org", Base: "blog", ProdBase: "/p"}}
	res, err := NormalizeConfig(cfg)
	if err != nil {
		t.Fatalf("NormalizeConfig: %v", err)
	}
	if cfg.Site.Base != "/blog/" || cfg.Site.ProdBase != "/p/" {
		t.Fatalf("base paths not coerced: %q %q", cfg.Site.Base, cfg.Site.ProdBase)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", res.Warnings)
	}
}

func TestNormalizeMonitoringLevels(t *testing.T) {
	cfg := &Config{
		Site:       SiteConfig{URL: "https://example.org"},
		Monitoring: &MonitoringConfig{Logging: LoggingConfig{Level: "WARNING", Format: "bogus"}},
	}
	res, err := NormalizeConfig(cfg)
	if err != nil {
		t.Fatalf("NormalizeConfig: %v", err)
	}
	if cfg.Monitoring.Logging.Level != LogLevelWarn {
		t.Fatalf("level = %q", cfg.Monitoring.Logging.Level)
	}
	if cfg.Monitoring.Logging.Format != LogFormatText {
		t.Fatalf("format = %q", cfg.Monitoring.Logging.Format)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "monitoring.logging.format") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a format warning, got %v", res.Warnings)
	}
}

func TestNormalizeRebuildInterval(t *testing.T) {
	cfg := &Config{Site: SiteConfig{URL: "https://example.org"}, Build: BuildConfig{RebuildInterval: "not-a-duration"}}
	res, err := NormalizeConfig(cfg)
	if err != nil {
		t.Fatalf("NormalizeConfig: %v", err)
	}
	if cfg.Build.RebuildInterval != "" {
		t.Fatalf("invalid interval should be disabled, got %q", cfg.Build.RebuildInterval)
	}
	if len(res.Warnings) == 0 {
		t.Fatalf("expected a warning")
	}

	cfg = &Config{Site: SiteConfig{URL: "https://example.org"}, Build: BuildConfig{RebuildInterval: "30m"}}
	if _, err := NormalizeConfig(cfg); err != nil {
		t.Fatalf("NormalizeConfig: %v", err)
	}
	if cfg.Build.RebuildInterval != "30m" {
		t.Fatalf("valid interval must survive, got %q", cfg.Build.RebuildInterval)
	}
}

func TestNormalizeNilConfig(t *testing.T) {
	if _, err := NormalizeConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
