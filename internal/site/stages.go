package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogforge/internal/content"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Helpers to classify errors.
func newFatalStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// Page is an HTML page emitted into the staging directory.
type Page struct {
	StagePath string // path relative to the staging root, e.g. "posts/hello/index.html"
	PagePath  string // site-relative URL path including base prefix, e.g. "/base/posts/hello/"
}

// BuildState carries mutable state and metrics across stages.
type BuildState struct {
	Generator *Generator
	Corpus    *content.Corpus
	Published []content.Document // publication set for this build (may include drafts in preview)
	Pages     []Page
	Report    *BuildReport
	Timings   map[string]time.Duration
	start     time.Time
}

// newBuildState constructs a BuildState.
func newBuildState(g *Generator, report *BuildReport) *BuildState {
	return &BuildState{
		Generator: g,
		Report:    report,
		Timings:   make(map[string]time.Duration),
		start:     time.Now(),
	}
}

type namedStage struct {
	name string
	fn   Stage
}

// runStages executes stages in order, recording timing and stopping on first fatal error.
func runStages(ctx context.Context, bs *BuildState, stages []namedStage) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			bs.Report.Errors = append(bs.Report.Errors, se.Error())
			bs.Report.StageErrorKinds[st.name] = string(se.Kind)
			return se
		default:
		}
		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.Timings[st.name] = dur
		bs.Report.StageDurations[st.name] = dur
		slog.Debug("Stage finished",
			logfields.Stage(st.name),
			logfields.DurationMS(float64(dur.Milliseconds())))
		if err != nil {
			var se *StageError
			if errors.As(err, &se) {
				bs.Report.StageErrorKinds[st.name] = string(se.Kind)
				sc := bs.Report.StageCounts[st.name]
				switch se.Kind {
				case StageErrorWarning:
					sc.Warning++
				case StageErrorCanceled:
					sc.Canceled++
				case StageErrorFatal:
					sc.Fatal++
				}
				bs.Report.StageCounts[st.name] = sc
				switch se.Kind {
				case StageErrorWarning:
					bs.Report.Warnings = append(bs.Report.Warnings, se.Error())
					continue // proceed to next stage
				case StageErrorCanceled, StageErrorFatal:
					bs.Report.Errors = append(bs.Report.Errors, se.Error())
					return se
				}
			}
			// Wrap unknown errors as fatal by default.
			se = newFatalStageError(st.name, err)
			bs.Report.StageErrorKinds[st.name] = string(se.Kind)
			sc := bs.Report.StageCounts[st.name]
			sc.Fatal++
			bs.Report.StageCounts[st.name] = sc
			bs.Report.Errors = append(bs.Report.Errors, se.Error())
			return se
		}
		sc := bs.Report.StageCounts[st.name]
		sc.Success++
		bs.Report.StageCounts[st.name] = sc
	}
	return nil
}
