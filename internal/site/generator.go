package site

import (
	"context"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogforge/internal/config"
	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
	"git.home.luguber.info/inful/blogforge/internal/markdown"
	"git.home.luguber.info/inful/blogforge/internal/metrics"
)

// Generator builds the static site into an output directory. Each build
// renders into an ephemeral staging directory that is swapped in atomically
// on success, so a failed build never clobbers the last good output.
type Generator struct {
	cfg           *config.Config
	env           string
	site          config.ResolvedSite
	outputDir     string // final output dir
	stageDir      string // ephemeral staging dir for the current build
	renderer      *markdown.Renderer
	templates     *template.Template
	recorder      metrics.Recorder
	includeDrafts bool
}

// NewGenerator creates a site generator. The environment flag value is
// resolved into the site identity here, once, and never re-read during the
// build.
func NewGenerator(cfg *config.Config, env string, outputDir string) (*Generator, error) {
	tpl, err := parseTemplates()
	if err != nil {
		return nil, bferrors.NewInternalError("parse built-in layouts", err)
	}
	out := filepath.Clean(outputDir)
	return &Generator{
		cfg:           cfg,
		env:           env,
		site:          config.ResolveSite(cfg.Site, env),
		outputDir:     out,
		stageDir:      out + ".staging",
		renderer:      markdown.NewRenderer(cfg.Markdown),
		templates:     tpl,
		recorder:      metrics.NoopRecorder{},
		includeDrafts: cfg.Content.IncludeDrafts,
	}, nil
}

// WithRecorder attaches a metrics recorder (fluent helper).
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// Site returns the environment-resolved site identity for this generator.
func (g *Generator) Site() config.ResolvedSite { return g.site }

// OutputDir returns the final output directory.
func (g *Generator) OutputDir() string { return g.outputDir }

// buildStages is the fixed stage order of a full site build.
func buildStages() []namedStage {
	return []namedStage{
		{"prepare_output", stagePrepareOutput},
		{"load_content", stageLoadContent},
		{"git_lastmod", stageGitLastmod},
		{"render_pages", stageRenderPages},
		{"render_indexes", stageRenderIndexes},
		{"generate_sitemap", stageGenerateSitemap},
		{"copy_static", stageCopyStatic},
		{"check_links", stageCheckLinks},
		{"finalize", stageFinalize},
	}
}

// Build runs the full pipeline and returns the build report. The report is
// returned for failed builds too, so callers can inspect partial progress.
func (g *Generator) Build(ctx context.Context) (*BuildReport, error) {
	report := newBuildReport(uuid.NewString(), g.env, g.site.BasePath)
	slog.Info("Starting site build",
		logfields.BuildID(report.BuildID),
		logfields.Env(g.env),
		slog.String("base", g.site.BasePath),
		logfields.Path(g.outputDir))

	g.recorder.BuildStarted()
	bs := newBuildState(g, report)
	err := runStages(ctx, bs, buildStages())

	report.Duration = time.Since(bs.start)
	report.Success = err == nil
	for name, d := range bs.Timings {
		g.recorder.StageDuration(name, d)
	}
	g.recorder.BuildCompleted(report.Success, report.Duration)

	if err != nil {
		// Leave the previous output untouched; drop the partial staging dir.
		if rmErr := os.RemoveAll(g.stageDir); rmErr != nil {
			slog.Warn("Failed to remove staging directory", logfields.Path(g.stageDir), logfields.Error(rmErr))
		}
		slog.Error("Site build failed", logfields.BuildID(report.BuildID), logfields.Error(err))
		return report, err
	}

	if err := report.write(g.outputDir); err != nil {
		slog.Warn("Failed to write build report", logfields.Error(err))
	}

	slog.Info("Site build completed",
		logfields.BuildID(report.BuildID),
		slog.Int("pages", report.Pages),
		slog.Int("assets", report.Assets),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}
