package config

// Default values applied after unmarshalling and before normalization.
const (
	DefaultBase     = "/"
	DefaultProdBase = "/astro-theme-terminal/"
	DefaultTheme    = "css-variables"
	DefaultContent  = "content"
	DefaultStatic   = "static"
	DefaultOutput   = "public"
	DefaultMetrics  = "/metrics"
	DefaultSubject  = "blogforge.builds"
	DefaultNATSURL  = "nats://127.0.0.1:4222"
)

// applyDefaults fills zero values with their documented defaults.
// It never overwrites a value the operator set explicitly.
func applyDefaults(c *Config) {
	if c.Site.Base == "" {
		c.Site.Base = DefaultBase
	}
	if c.Site.ProdBase == "" {
		c.Site.ProdBase = DefaultProdBase
	}
	if c.Site.Language == "" {
		c.Site.Language = "en"
	}
	if c.Markdown.Theme == "" {
		c.Markdown.Theme = DefaultTheme
	}
	if c.Markdown.Langs == nil {
		c.Markdown.Langs = []string{}
	}
	if c.Markdown.Wrap == nil {
		wrap := true
		c.Markdown.Wrap = &wrap
	}
	if c.Content.Dir == "" {
		c.Content.Dir = DefaultContent
	}
	if c.Content.StaticDir == "" {
		c.Content.StaticDir = DefaultStatic
	}
	if c.Build.Output == "" {
		c.Build.Output = DefaultOutput
	}
	if c.Monitoring != nil {
		if c.Monitoring.Logging.Level == "" {
			c.Monitoring.Logging.Level = LogLevelInfo
		}
		if c.Monitoring.Logging.Format == "" {
			c.Monitoring.Logging.Format = LogFormatText
		}
		if c.Monitoring.Metrics.Path == "" {
			c.Monitoring.Metrics.Path = DefaultMetrics
		}
	}
	if c.Events != nil {
		if c.Events.Subject == "" {
			c.Events.Subject = DefaultSubject
		}
		if c.Events.NATSURL == "" {
			c.Events.NATSURL = DefaultNATSURL
		}
	}
}
