package risk

import (
	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/model"
)

// Security scans each file's added lines against the security signature
// table. Each match yields one finding located back into the patch.
func (d *Detector) Security(files []model.FileChange) []model.Finding {
	if !d.opts.Security {
		return nil
	}

	var findings []model.Finding

	for _, f := range files {
		if f.Patch == "" {
			continue
		}

		content := addedLines(f.Patch)

		for _, sig := range securitySignatures {
			for _, loc := range sig.re.FindAllStringIndex(content, -1) {
				if matchExcluded(sig, content, loc[0]) {
					continue
				}

				snippet := clip(content[loc[0]:loc[1]])
				findings = append(findings, model.Finding{
					Category:    model.CategorySecurity,
					Severity:    sig.severity,
					Title:       sig.title,
					Description: "Found pattern: " + snippet,
					FilePath:    f.Path,
					Line:        locateLine(f.Patch, loc[0]),
					Suggestion:  sig.suggestion,
					Snippet:     snippet,
				})
			}
		}
	}

	log.Infof("detected %d security risks", len(findings))
	return findings
}
