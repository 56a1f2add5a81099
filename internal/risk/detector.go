// Package risk scans file diffs for risk signatures across security,
// breaking-change, performance, and test-coverage categories. Detection is
// line-oriented regular-expression matching over unified diffs. It is
// deliberately approximate, favoring recall over precision; human
// reviewers and the enrichment pass absorb the residual error.
package risk

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/model"
)

// snippetMax caps the length of matched-text excerpts embedded in findings.
const snippetMax = 100

// Options select which detectors run. A disabled detector returns an empty
// sequence and does no scanning work.
type Options struct {
	Security       bool
	BreakingChange bool
	Performance    bool
	TestCoverage   bool
}

// DefaultOptions enables every detector.
func DefaultOptions() Options {
	return Options{Security: true, BreakingChange: true, Performance: true, TestCoverage: true}
}

// Detector applies the signature tables to a change-set's files. Options
// are passed in explicitly; there is no ambient state.
type Detector struct {
	opts Options
}

// New creates a Detector with the given toggles.
func New(opts Options) *Detector {
	return &Detector{opts: opts}
}

// DetectAll runs every enabled detector and concatenates their findings in
// the fixed order security, breaking_change, performance, test_coverage.
// No cross-category deduplication happens; overlapping findings are
// expected. A detector that panics is logged and skipped so one faulty
// signature set cannot silence the other categories.
func (d *Detector) DetectAll(files []model.FileChange) []model.Finding {
	detectors := []struct {
		name string
		fn   func([]model.FileChange) []model.Finding
	}{
		{"security", d.Security},
		{"breaking_change", d.BreakingChanges},
		{"performance", d.Performance},
		{"test_coverage", d.TestGaps},
	}

	var all []model.Finding
	for _, det := range detectors {
		all = append(all, runContained(det.name, det.fn, files)...)
	}

	log.Infof("total risks detected: %d", len(all))
	return all
}

// runContained isolates a detector failure to its own category.
func runContained(name string, fn func([]model.FileChange) []model.Finding, files []model.FileChange) (findings []model.Finding) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("detector", name).Errorf("detector failed: %v", r)
			findings = nil
		}
	}()
	return fn(files)
}

// addedLines extracts the content of a patch's addition lines ("+" prefix,
// excluding the "+++" file header) joined by newlines. The "+" markers are
// kept, matching how the signature patterns were written.
func addedLines(patch string) string {
	var out []string
	for _, line := range strings.Split(patch, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// matchExcluded applies a signature's unless exclusion: the match is
// dropped when the remainder of its line contains the excluded substring.
func matchExcluded(sig signature, content string, start int) bool {
	if sig.unless == "" {
		return false
	}
	end := strings.IndexByte(content[start:], '\n')
	if end < 0 {
		end = len(content) - start
	}
	line := strings.ToLower(content[start : start+end])
	return strings.Contains(line, sig.unless)
}

// clip caps a snippet to snippetMax bytes.
func clip(s string) string {
	if len(s) > snippetMax {
		return s[:snippetMax]
	}
	return s
}
