package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogforge/internal/config"
	"git.home.luguber.info/inful/blogforge/internal/content"
	"git.home.luguber.info/inful/blogforge/internal/daemon"
	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
	"git.home.luguber.info/inful/blogforge/internal/frontmatter"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
	"git.home.luguber.info/inful/blogforge/internal/site"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"blogforge.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Env    string `help:"Environment flag override (defaults to $BLOGFORGE_ENV)"`
		Output string `short:"o" help:"Output directory override"`
		Drafts bool   `short:"D" help:"Include draft documents in the rendered output"`
	} `cmd:"" help:"Build the site into the output directory"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	New struct {
		Title   string `arg:"" help:"Title of the new post"`
		Section string `short:"s" help:"Content section for the new post" default:"posts"`
	} `cmd:"" help:"Scaffold a new draft post"`

	Preview struct {
		Addr     string `short:"a" help:"Listen address" default:"localhost:8080"`
		NoDrafts bool   `help:"Exclude draft documents from the preview"`
	} `cmd:"" help:"Build, serve and live-rebuild the site locally"`

	Daemon struct {
		Addr string `short:"a" help:"Listen address" default:":8080"`
		Env  string `help:"Environment flag override (defaults to $BLOGFORGE_ENV)"`
	} `cmd:"" help:"Run in long-lived mode: serve, watch, rebuild on schedule"`
}

func main() {
	ctx := kong.Parse(&CLI)
	setupLogging(nil)

	errAdapter := bferrors.NewCLIErrorAdapter(CLI.Verbose, slog.Default())

	var err error
	switch ctx.Command() {
	case "build":
		err = runBuild()
	case "init":
		err = runInit()
	case "new <title>":
		err = runNew()
	case "preview":
		err = runPreview()
	case "daemon":
		err = runDaemon()
	}
	errAdapter.HandleError(err)
}

// setupLogging installs the process logger. Called once before config load
// with defaults, and again afterwards so the configured level and format
// take effect.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	format := config.LogFormatText
	if cfg != nil && cfg.Monitoring != nil {
		switch cfg.Monitoring.Logging.Level {
		case config.LogLevelDebug:
			level = slog.LevelDebug
		case config.LogLevelWarn:
			level = slog.LevelWarn
		case config.LogLevelError:
			level = slog.LevelError
		}
		if cfg.Monitoring.Logging.Format != "" {
			format = cfg.Monitoring.Logging.Format
		}
	}
	if CLI.Verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg)
	return cfg, nil
}

func runBuild() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	env := CLI.Build.Env
	if env == "" {
		env = config.Environment()
	}
	if CLI.Build.Output != "" {
		cfg.Build.Output = CLI.Build.Output
	}
	if CLI.Build.Drafts {
		cfg.Content.IncludeDrafts = true
	}

	gen, err := site.NewGenerator(cfg, env, cfg.Build.Output)
	if err != nil {
		return err
	}
	report, err := gen.Build(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Built %d pages (%d documents, %d assets) in %s → %s\n",
		report.Pages, report.Documents, report.Assets,
		report.Duration.Round(time.Millisecond), cfg.Build.Output)
	return nil
}

func runInit() error {
	if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
		return bferrors.NewConfigError("initialize configuration", err)
	}
	fmt.Printf("Created %s\n", CLI.Config)

	// Seed the content tree so a fresh init builds something.
	sample := filepath.Join(config.DefaultContent, "posts", "hello-world.md")
	if _, err := os.Stat(sample); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(sample), 0o755); err != nil {
		return bferrors.NewFileSystemError("create content directory", err)
	}
	if err := os.MkdirAll(config.DefaultStatic, 0o755); err != nil {
		return bferrors.NewFileSystemError("create static directory", err)
	}
	body := fmt.Sprintf(`---
title: Hello World
description: First post
pubDate: %s
draft: false
tags:
  - meta
---

Welcome to your new blog. Edit or delete this post and run
`+"`blogforge build`"+` to regenerate the site.
`, time.Now().Format("2006-01-02"))
	if err := os.WriteFile(sample, []byte(body), 0o644); err != nil {
		return bferrors.NewFileSystemError("write sample post", err)
	}
	fmt.Printf("Created %s\n", sample)
	return nil
}

// postScaffold is the frontmatter written by the new command. Field order
// here is the order in the generated file.
type postScaffold struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	PubDate     string   `yaml:"pubDate"`
	Draft       bool     `yaml:"draft"`
	Tags        []string `yaml:"tags"`
}

func runNew() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slug := content.Slugify(CLI.New.Title)
	if slug == "" {
		return bferrors.NewValidationError("post title produces an empty slug", nil)
	}
	dir := filepath.Join(cfg.Content.Dir, CLI.New.Section)
	path := filepath.Join(dir, slug+".md")
	if _, err := os.Stat(path); err == nil {
		return bferrors.NewValidationError("post already exists: "+path, nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return bferrors.NewFileSystemError("create section directory", err)
	}

	fm, err := yaml.Marshal(postScaffold{
		Title:   CLI.New.Title,
		PubDate: time.Now().Format("2006-01-02"),
		Draft:   true,
		Tags:    []string{},
	})
	if err != nil {
		return bferrors.NewInternalError("serialize post frontmatter", err)
	}
	doc := frontmatter.Join(fm, []byte("\n"), true, "\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return bferrors.NewFileSystemError("write post file", err)
	}

	slog.Info("Created draft post", logfields.File(path))
	fmt.Println(path)
	return nil
}

func runPreview() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Preview renders drafts unless told otherwise; the sitemap still
	// excludes them.
	cfg.Content.IncludeDrafts = !CLI.Preview.NoDrafts

	d, err := daemon.New(cfg, config.Environment(), CLI.Config, CLI.Preview.Addr)
	if err != nil {
		return err
	}
	return runUntilSignal(d)
}

func runDaemon() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	env := CLI.Daemon.Env
	if env == "" {
		env = config.Environment()
	}

	d, err := daemon.New(cfg, env, CLI.Config, CLI.Daemon.Addr)
	if err != nil {
		return err
	}
	return runUntilSignal(d)
}

func runUntilSignal(d *daemon.Daemon) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return d.Run(ctx)
}
