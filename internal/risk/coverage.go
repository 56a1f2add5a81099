package risk

import (
	"path"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/model"
)

// minSignificantChanges is the change-count floor below which a source
// file is not expected to carry test updates.
const minSignificantChanges = 10

// testMarkers identify test files by path substring.
var testMarkers = []string{"test", "spec", "__test__"}

// nonCodeMarkers exclude documentation and data files from the source set.
var nonCodeMarkers = []string{".md", ".yml", ".yaml", ".json", ".txt"}

// sourceSuffixes are stripped from a filename to derive the base
// identifier used for test matching.
var sourceSuffixes = []string{".py", ".js", ".ts", ".go"}

// TestGaps flags source files changed significantly without any test file
// in the change-set whose path contains the source file's base name. This
// is a proxy for "was a test updated alongside this change," not a
// coverage measurement.
func (d *Detector) TestGaps(files []model.FileChange) []model.Finding {
	if !d.opts.TestCoverage {
		return nil
	}

	var sourceFiles []model.FileChange
	testFiles := make([]string, 0, len(files))

	for _, f := range files {
		lower := strings.ToLower(f.Path)
		if containsAny(lower, testMarkers) {
			testFiles = append(testFiles, f.Path)
		} else if !containsAny(lower, nonCodeMarkers) {
			sourceFiles = append(sourceFiles, f)
		}
	}

	var findings []model.Finding

	for _, f := range sourceFiles {
		if f.Changes < minSignificantChanges {
			continue
		}

		base := baseIdentifier(f.Path)

		hasTest := false
		for _, tf := range testFiles {
			if strings.Contains(tf, base) {
				hasTest = true
				break
			}
		}
		if hasTest {
			continue
		}

		findings = append(findings, model.Finding{
			Category:    model.CategoryTestCoverage,
			Severity:    model.SeverityMedium,
			Title:       "No test updates for changed file",
			Description: f.Path + " was modified significantly without test updates",
			FilePath:    f.Path,
			Suggestion:  "Add or update tests to cover the changes",
		})
	}

	log.Infof("detected %d test coverage gaps", len(findings))
	return findings
}

// baseIdentifier strips common source extensions from a filename.
func baseIdentifier(p string) string {
	base := path.Base(p)
	for _, suffix := range sourceSuffixes {
		base = strings.TrimSuffix(base, suffix)
	}
	return base
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
