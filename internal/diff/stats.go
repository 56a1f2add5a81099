package diff

import (
	"strings"

	"github.com/sprite-ai/prsift/internal/model"
)

// Keyword weights for the complexity heuristic. Control-flow and
// definition keywords weigh more than plumbing.
var (
	heavyKeywords = []string{"if ", "for ", "while ", "try:", "except", "class ", "def "}
	lightKeywords = []string{"import ", "from ", "return ", "yield "}
)

// Stats computes line counts and a 0-10 complexity score for a patch body.
// The score is keyword density over changed lines, not a real complexity
// measurement.
func Stats(patch string) model.DiffStats {
	if patch == "" {
		return model.DiffStats{}
	}

	lines := strings.Split(patch, "\n")
	var added, deleted int
	var complexity float64

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			added++
			if containsAny(line, heavyKeywords) {
				complexity += 1.5
			} else if containsAny(line, lightKeywords) {
				complexity += 0.5
			}
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			deleted++
		}
	}

	var score float64
	if total := added + deleted; total > 0 {
		score = complexity / float64(total) * 10
		if score > 10 {
			score = 10
		}
	}

	return model.DiffStats{
		TotalLines:      len(lines),
		AddedLines:      added,
		DeletedLines:    deleted,
		ComplexityScore: score,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
