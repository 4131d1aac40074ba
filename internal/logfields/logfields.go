package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPage       = "page"
	KeyTag        = "tag"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyURL        = "url"
	KeyEnv        = "env"
	KeyError      = "error"
	KeyCount      = "count"
	KeySchedule   = "schedule_name"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Page(p string) slog.Attr          { return slog.String(KeyPage, p) }
func Tag(t string) slog.Attr           { return slog.String(KeyTag, t) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Env(e string) slog.Attr           { return slog.String(KeyEnv, e) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func ScheduleName(n string) slog.Attr  { return slog.String(KeySchedule, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
