// Package diff prepares a change-set's file diffs for analysis: filtering
// out noise, bounding oversized patches, ordering files by review
// importance, and parsing raw unified diffs.
package diff

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/model"
)

// skipExtensions lists path suffixes excluded from analysis: binary and
// media formats, compiled artifacts, minified bundles, and lock files.
// Matched case-insensitively.
var skipExtensions = []string{
	// Binary/media
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".svg",
	".pdf", ".zip", ".tar", ".gz", ".bz2", ".7z",
	".mp3", ".mp4", ".avi", ".mov", ".wmv",
	// Compiled/generated
	".pyc", ".pyo", ".so", ".dll", ".exe", ".class", ".jar",
	".min.js", ".min.css", ".map",
	// Lock files
	".lock", "package-lock.json", "yarn.lock", "poetry.lock", "Pipfile.lock",
}

// skipPatterns lists path shapes excluded from analysis. Patterns are
// anchored at the start of the path and matched case-sensitively.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^.*\.min\..*`),           // minified files
	regexp.MustCompile(`^.*-lock\..*`),           // lock files
	regexp.MustCompile(`^(.*/)?dist/.*`),         // distribution output
	regexp.MustCompile(`^(.*/)?build/.*`),        // build output
	regexp.MustCompile(`^(.*/)?node_modules/.*`), // vendored dependencies
	regexp.MustCompile(`^(.*/)?__pycache__/.*`),  // Python bytecode cache
}

// ShouldSkip reports whether a file path is excluded from analysis.
func ShouldSkip(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range skipExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	for _, pat := range skipPatterns {
		if pat.MatchString(path) {
			return true
		}
	}
	return false
}

// CleanPatch bounds a patch body to maxLines lines. Oversized patches are
// cut at maxLines and a single marker line reporting the omission is
// appended; patches at or under the limit pass through byte-identical.
func CleanPatch(patch string, maxLines int) string {
	if patch == "" {
		return ""
	}

	lines := strings.Split(patch, "\n")
	if len(lines) <= maxLines {
		return patch
	}

	truncated := append(lines[:maxLines:maxLines],
		fmt.Sprintf("... (truncated %d lines)", len(lines)-maxLines))
	return strings.Join(truncated, "\n")
}

// Process filters and normalizes a change-set's files: paths matching the
// denylists are dropped and retained patches are bounded to maxLines. The
// input slice is not mutated; retained files are copied into a new slice.
func Process(files []model.FileChange, maxLines int) []model.FileChange {
	processed := make([]model.FileChange, 0, len(files))

	for _, f := range files {
		if ShouldSkip(f.Path) {
			log.Debugf("skipping file: %s", f.Path)
			continue
		}
		if f.Patch != "" {
			f.Patch = CleanPatch(f.Patch, maxLines)
		}
		processed = append(processed, f)
	}

	log.Infof("processed %d files (skipped %d)", len(processed), len(files)-len(processed))
	return processed
}
