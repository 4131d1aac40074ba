package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b-1", BuildID("b-1")},
		{"Stage", KeyStage, "render_pages", Stage("render_pages")},
		{"Page", KeyPage, "posts/hello", Page("posts/hello")},
		{"Tag", KeyTag, "resilience", Tag("resilience")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "post.md", File("post.md")},
		{"URL", KeyURL, "https://example.org/", URL("https://example.org/")},
		{"Env", KeyEnv, "production", Env("production")},
		{"ScheduleName", KeySchedule, "interval", ScheduleName("interval")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.attr.Key != c.attrKey {
				t.Fatalf("key mismatch: got %s want %s", c.attr.Key, c.attrKey)
			}
			if got := c.attr.Value.String(); got != c.attrVal {
				t.Fatalf("value mismatch: got %s want %s", got, c.attrVal)
			}
		})
	}
}

func TestErrorHelper(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Fatalf("nil error should produce empty value, got %q", got)
	}
}

func TestNumericHelpers(t *testing.T) {
	if got := Count(3).Value.Int64(); got != 3 {
		t.Fatalf("Count: got %d", got)
	}
	if got := DurationMS(12.5).Value.Float64(); got != 12.5 {
		t.Fatalf("DurationMS: got %v", got)
	}
}
