package risk

import (
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/model"
)

// defLine matches a function definition with its parameter list and colon.
var defLine = regexp.MustCompile(`def\s+([a-zA-Z_][a-zA-Z0-9_]*)\s*\([^)]*\):`)

// BreakingChanges scans each file's entire patch for removed public API:
// deleted function/method and class definitions, deleted exports, and the
// adjacent-line signature-change heuristic. The full patch is used, not
// just additions, because removal detection needs the "-" lines.
func (d *Detector) BreakingChanges(files []model.FileChange) []model.Finding {
	if !d.opts.BreakingChange {
		return nil
	}

	var findings []model.Finding

	for _, f := range files {
		if f.Patch == "" {
			continue
		}

		for _, sig := range breakingSignatures {
			for _, loc := range sig.re.FindAllStringIndex(f.Patch, -1) {
				findings = append(findings, model.Finding{
					Category:    model.CategoryBreakingChange,
					Severity:    sig.severity,
					Title:       sig.title,
					Description: "Breaking change in " + f.Path,
					FilePath:    f.Path,
					Line:        locateLine(f.Patch, loc[0]),
					Suggestion:  sig.suggestion,
				})
			}
		}

		findings = append(findings, signatureChanges(f)...)
	}

	log.Infof("detected %d potential breaking changes", len(findings))
	return findings
}

// signatureChanges flags an identifier defined on two adjacent lines of
// the diff, the shape a changed function signature takes in a unified
// diff (the old definition removed, the new one added right after). RE2
// has no backreferences, so the same-name constraint is checked directly.
func signatureChanges(f model.FileChange) []model.Finding {
	var findings []model.Finding

	lines := strings.Split(f.Patch, "\n")
	offset := 0

	for i := 0; i+1 < len(lines); i++ {
		m1 := defLine.FindStringSubmatchIndex(lines[i])
		m2 := defLine.FindStringSubmatch(lines[i+1])
		if m1 != nil && m2 != nil && lines[i][m1[2]:m1[3]] == m2[1] {
			findings = append(findings, model.Finding{
				Category:    model.CategoryBreakingChange,
				Severity:    model.SeverityMedium,
				Title:       "Function signature changed",
				Description: "Breaking change in " + f.Path,
				FilePath:    f.Path,
				Line:        locateLine(f.Patch, offset+m1[0]),
				Suggestion:  "Verify all callers are updated",
			})
		}
		offset += len(lines[i]) + 1
	}

	return findings
}
