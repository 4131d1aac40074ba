package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// StageCount aggregates per-stage outcome counts.
type StageCount struct {
	Success  int `json:"success,omitempty"`
	Warning  int `json:"warning,omitempty"`
	Fatal    int `json:"fatal,omitempty"`
	Canceled int `json:"canceled,omitempty"`
}

// BuildReport summarizes one build invocation. Written to build-report.json
// in the output directory and recorded in the daemon's build history.
type BuildReport struct {
	BuildID         string                   `json:"build_id"`
	StartedAt       time.Time                `json:"started_at"`
	Duration        time.Duration            `json:"duration_ns"`
	Environment     string                   `json:"environment"`
	BasePath        string                   `json:"base_path"`
	Documents       int                      `json:"documents"`
	Drafts          int                      `json:"drafts"`
	Pages           int                      `json:"pages"`
	Assets          int                      `json:"assets"`
	Tags            int                      `json:"tags"`
	SitemapEntries  int                      `json:"sitemap_entries"`
	BrokenLinks     int                      `json:"broken_links,omitempty"`
	ExternalLinks   int                      `json:"external_links,omitempty"`
	Success         bool                     `json:"success"`
	StageDurations  map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds map[string]string        `json:"stage_error_kinds,omitempty"`
	StageCounts     map[string]StageCount    `json:"stage_counts"`
	Warnings        []string                 `json:"warnings,omitempty"`
	Errors          []string                 `json:"errors,omitempty"`
}

func newBuildReport(buildID, environment, basePath string) *BuildReport {
	return &BuildReport{
		BuildID:         buildID,
		StartedAt:       time.Now(),
		Environment:     environment,
		BasePath:        basePath,
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[string]string),
		StageCounts:     make(map[string]StageCount),
	}
}

// reportFileName is the build report artifact written next to the site output.
const reportFileName = "build-report.json"

func (r *BuildReport) write(dir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, reportFileName), append(data, '\n'), 0o644)
}
