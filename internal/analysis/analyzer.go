// Package analysis orchestrates one change-set analysis run: diff
// filtering and prioritization, pattern-based risk detection, and optional
// model-powered enrichment with pattern-only fallbacks.
package analysis

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/config"
	"github.com/sprite-ai/prsift/internal/diff"
	"github.com/sprite-ai/prsift/internal/model"
	"github.com/sprite-ai/prsift/internal/risk"
)

// Enricher supplements pattern-based analysis with model-generated
// content. Every method may fail or return empty results; the analyzer
// degrades to pattern-only output and never propagates enricher errors.
type Enricher interface {
	Summarize(ctx context.Context, pr *model.PRData, files []model.FileChange) (string, error)
	SupplementFindings(ctx context.Context, pr *model.PRData, files []model.FileChange, existing []model.Finding) ([]model.Finding, error)
	FocusAreas(ctx context.Context, pr *model.PRData, files []model.FileChange, findings []model.Finding) ([]string, error)
}

// Analyzer runs the full pipeline for one change-set.
type Analyzer struct {
	cfg      *config.Settings
	detector *risk.Detector
	enricher Enricher // nil when enrichment is disabled
}

// New builds an Analyzer from settings. enricher may be nil.
func New(cfg *config.Settings, enricher Enricher) *Analyzer {
	return &Analyzer{
		cfg: cfg,
		detector: risk.New(risk.Options{
			Security:       cfg.Analysis.EnableSecurityCheck,
			BreakingChange: cfg.Analysis.EnableBreakingChangeCheck,
			Performance:    cfg.Analysis.EnablePerformanceCheck,
			TestCoverage:   cfg.Analysis.EnableTestCoverageCheck,
		}),
		enricher: enricher,
	}
}

// Analyze runs the pipeline over a change-set and always returns a usable
// result: collaborator failures mark the result partial instead of
// aborting the run.
func (a *Analyzer) Analyze(ctx context.Context, pr *model.PRData) *model.Result {
	result := &model.Result{AIEnabled: a.enricher != nil}
	var errs []string

	processed := diff.Process(pr.Files, a.cfg.Analysis.MaxDiffLinesPerFile)

	if cap := a.cfg.Analysis.MaxFilesFullAnalysis; len(processed) > cap {
		log.Warnf("large change-set: %d files, prioritizing top %d", len(processed), cap)
		processed = diff.Prioritize(processed)[:cap]
		errs = append(errs, fmt.Sprintf(
			"Large PR: analysis focused on top %d of %d files (based on security/business logic priority)",
			cap, len(pr.Files)))
	}

	result.KeyFiles = processed

	log.Info("running pattern-based risk detection")
	result.Findings = a.detector.DetectAll(processed)

	if a.enricher != nil {
		errs = append(errs, a.enrich(ctx, pr, processed, result)...)
	} else {
		log.Info("using pattern-based analysis only (enrichment disabled)")
		result.Summary = basicSummary(pr, processed)
		result.FocusAreas = basicFocusAreas(processed, result.Findings)
	}

	if len(errs) > 0 {
		result.Partial = true
		result.Errors = errs
	}

	log.Infof("analysis complete: %d files, %d findings, %d errors",
		len(result.KeyFiles), len(result.Findings), len(errs))
	return result
}

// enrich runs the three enrichment steps, each individually contained
// with a pattern-only fallback. Returned strings are user-visible notes
// about what degraded.
func (a *Analyzer) enrich(ctx context.Context, pr *model.PRData, files []model.FileChange, result *model.Result) []string {
	var errs []string

	summary, err := a.enricher.Summarize(ctx, pr, files)
	if err != nil || summary == "" {
		if err != nil {
			log.Warnf("AI summary failed: %v", err)
			errs = append(errs, fmt.Sprintf("AI summary failed: %v", err))
		} else {
			errs = append(errs, "AI summary generation returned nothing, using basic summary")
		}
		result.Summary = basicSummary(pr, files)
	} else {
		result.Summary = summary
	}

	extra, err := a.enricher.SupplementFindings(ctx, pr, files, result.Findings)
	if err != nil {
		log.Warnf("AI risk analysis failed: %v", err)
		errs = append(errs, fmt.Sprintf("AI risk analysis failed: %v", err))
	} else if len(extra) > 0 {
		result.Findings = append(result.Findings, extra...)
		log.Infof("enrichment identified %d additional risks", len(extra))
	}

	areas, err := a.enricher.FocusAreas(ctx, pr, files, result.Findings)
	if err != nil || len(areas) == 0 {
		if err != nil {
			log.Warnf("AI focus areas failed: %v", err)
			errs = append(errs, fmt.Sprintf("AI review focus generation failed: %v", err))
		}
		result.FocusAreas = basicFocusAreas(files, result.Findings)
	} else {
		result.FocusAreas = areas
	}

	return errs
}
