package risk

import (
	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/model"
)

// Performance scans each file's added lines against the performance
// signature table.
func (d *Detector) Performance(files []model.FileChange) []model.Finding {
	if !d.opts.Performance {
		return nil
	}

	var findings []model.Finding

	for _, f := range files {
		if f.Patch == "" {
			continue
		}

		content := addedLines(f.Patch)

		for _, sig := range performanceSignatures {
			for _, loc := range sig.re.FindAllStringIndex(content, -1) {
				findings = append(findings, model.Finding{
					Category:    model.CategoryPerformance,
					Severity:    sig.severity,
					Title:       sig.title,
					Description: "Performance concern in " + f.Path,
					FilePath:    f.Path,
					Line:        locateLine(f.Patch, loc[0]),
					Suggestion:  sig.suggestion,
				})
			}
		}
	}

	log.Infof("detected %d performance issues", len(findings))
	return findings
}
