package diff

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/model"
)

// Priority tiers. When a change-set exceeds the analysis cap, the caller
// keeps the top-N files of the prioritized order, so security and
// business-logic-adjacent code wins over tests, docs, and config.
const (
	priorityHigh   = 3
	priorityMedium = 2
	priorityLow    = 1
)

// highPriorityTerms mark authentication, API surface, persistence, and
// payment code.
var highPriorityTerms = []string{
	"auth", "security", "crypto", "password", "token",
	"api", "endpoint", "route", "controller",
	"sql", "database", "query", "model",
	"payment", "billing", "transaction",
}

// lowPriorityTerms mark tests, docs, configuration, and fixtures.
var lowPriorityTerms = []string{
	"test", "spec", "mock",
	"readme", "doc", ".md",
	"config", "setting", ".yml", ".yaml", ".json",
	"migration", "fixture",
}

// priorityOf assigns a file its review-importance tier. The high-priority
// check runs first, so a path matching both tiers ranks high.
func priorityOf(path string) int {
	lower := strings.ToLower(path)

	for _, term := range highPriorityTerms {
		if strings.Contains(lower, term) {
			return priorityHigh
		}
	}
	for _, term := range lowPriorityTerms {
		if strings.Contains(lower, term) {
			return priorityLow
		}
	}
	return priorityMedium
}

// Prioritize returns the files reordered by descending priority with
// lexicographic path order as the tie-break. The same multiset of files
// comes back; the input slice is not reordered.
func Prioritize(files []model.FileChange) []model.FileChange {
	sorted := make([]model.FileChange, len(files))
	copy(sorted, files)

	sort.Slice(sorted, func(i, j int) bool {
		pi, pj := priorityOf(sorted[i].Path), priorityOf(sorted[j].Path)
		if pi != pj {
			return pi > pj
		}
		return sorted[i].Path < sorted[j].Path
	})

	log.Infof("prioritized %d files for analysis", len(sorted))
	return sorted
}
