package config

import "strings"

// Config is the root of the blogforge configuration file.
type Config struct {
	Site       SiteConfig        `yaml:"site"`
	Markdown   MarkdownConfig    `yaml:"markdown,omitempty"`
	Content    ContentConfig     `yaml:"content,omitempty"`
	Build      BuildConfig       `yaml:"build,omitempty"`
	Monitoring *MonitoringConfig `yaml:"monitoring,omitempty"`
	Events     *EventsConfig     `yaml:"events,omitempty"`
}

// SiteConfig describes the published site identity.
//
// URL is the canonical absolute origin and does not vary with the
// environment flag. Base and ProdBase are the two candidate base path
// prefixes; the resolver picks one per build (see resolve.go).
type SiteConfig struct {
	URL         string `yaml:"url"`
	Base        string `yaml:"base,omitempty"`      // base path outside production
	ProdBase    string `yaml:"prod_base,omitempty"` // base path when the env flag is the production marker
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	Language    string `yaml:"language,omitempty"`
}

// MarkdownConfig selects the syntax highlighting theme, the explicit
// allow-list of preloaded language grammars, and the line-wrap flag for
// overflowing code blocks. Theme defaults to a CSS-variable-driven theme so
// color schemes can be swapped via stylesheet rather than a rebuild.
type MarkdownConfig struct {
	Theme string   `yaml:"theme,omitempty"`
	Langs []string `yaml:"langs,omitempty"`
	Wrap  *bool    `yaml:"wrap,omitempty"`
}

// WrapLines reports the effective line-wrap flag (defaults to true when unset).
func (m MarkdownConfig) WrapLines() bool { return m.Wrap == nil || *m.Wrap }

// ContentConfig locates the content corpus on disk.
type ContentConfig struct {
	Dir           string `yaml:"dir,omitempty"`        // markdown corpus root (default "content")
	StaticDir     string `yaml:"static_dir,omitempty"` // copied verbatim into the output (default "static")
	IncludeDrafts bool   `yaml:"include_drafts,omitempty"`
}

// BuildConfig holds build output tuning knobs.
// All zero values trigger sensible defaults.
type BuildConfig struct {
	// Output is the directory receiving the generated site (default "public").
	Output string `yaml:"output,omitempty"`
	// History, when non-empty, is the path of a sqlite database recording
	// build events. Empty disables history.
	History string `yaml:"history,omitempty"`
	// RebuildInterval is a duration string ("30m") for the daemon's periodic
	// rebuild schedule. Empty disables scheduled rebuilds.
	RebuildInterval string `yaml:"rebuild_interval,omitempty"`
}

// MonitoringConfig groups logging and metrics settings.
type MonitoringConfig struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// LoggingConfig selects slog level and handler format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// MetricsConfig enables the prometheus endpoint in daemon mode.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"` // default "/metrics"
}

// EventsConfig enables NATS publication of build lifecycle events.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// LogLevel enumerates supported logging levels (stringly for YAML compatibility).
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported slog handler formats.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// NormalizeLogLevel returns the canonical log level for s, or "" when unknown.
func NormalizeLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return ""
	}
}

// NormalizeLogFormat returns the canonical log format for s, or "" when unknown.
func NormalizeLogFormat(s string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return LogFormatText
	case "json":
		return LogFormatJSON
	default:
		return ""
	}
}
