package config

import (
	"fmt"
	"strings"
	"time"
)

// NormalizationResult captures adjustments & warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig performs canonicalization on enumerated and bounded fields
// prior to validation. It mutates the provided config in-place and returns a
// result describing any coercions.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	normalizeSite(&c.Site, res)
	normalizeBuild(&c.Build, res)
	normalizeMonitoring(c.Monitoring, res)
	return res, nil
}

func normalizeSite(s *SiteConfig, res *NormalizationResult) {
	if b := normalizeBasePath(s.Base); b != s.Base {
		res.Warnings = append(res.Warnings, warnChanged("site.base", s.Base, b))
		s.Base = b
	}
	if b := normalizeBasePath(s.ProdBase); b != s.ProdBase {
		res.Warnings = append(res.Warnings, warnChanged("site.prod_base", s.ProdBase, b))
		s.ProdBase = b
	}
}

// normalizeBasePath coerces a base path into the canonical "/.../" shape:
// leading and trailing slash, no internal whitespace. Empty stays empty so the
// defaults pass can fill it.
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p = p + "/"
	}
	return p
}

func normalizeBuild(b *BuildConfig, res *NormalizationResult) {
	if b == nil {
		return
	}
	if strings.TrimSpace(b.RebuildInterval) == "" {
		b.RebuildInterval = ""
		return
	}
	if _, err := time.ParseDuration(b.RebuildInterval); err != nil {
		res.Warnings = append(res.Warnings, warnUnknown("build.rebuild_interval", b.RebuildInterval, "disabled"))
		b.RebuildInterval = ""
	}
}

func normalizeMonitoring(m *MonitoringConfig, res *NormalizationResult) {
	if m == nil {
		return
	}
	// Logging level
	if lvl := NormalizeLogLevel(string(m.Logging.Level)); lvl != "" {
		if m.Logging.Level != lvl {
			res.Warnings = append(res.Warnings, warnChanged("monitoring.logging.level", m.Logging.Level, lvl))
			m.Logging.Level = lvl
		}
	} else if string(m.Logging.Level) != "" {
		res.Warnings = append(res.Warnings, warnUnknown("monitoring.logging.level", string(m.Logging.Level), string(LogLevelInfo)))
		m.Logging.Level = LogLevelInfo
	}
	// Logging format
	if f := NormalizeLogFormat(string(m.Logging.Format)); f != "" {
		if m.Logging.Format != f {
			res.Warnings = append(res.Warnings, warnChanged("monitoring.logging.format", m.Logging.Format, f))
			m.Logging.Format = f
		}
	} else if string(m.Logging.Format) != "" {
		res.Warnings = append(res.Warnings, warnUnknown("monitoring.logging.format", string(m.Logging.Format), string(LogFormatText)))
		m.Logging.Format = LogFormatText
	}
}

func warnChanged(field string, from, to interface{}) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}
func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
