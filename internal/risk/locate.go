package risk

import (
	"regexp"
	"strconv"
	"strings"
)

// hunkNewStart extracts the new-file starting line from a hunk header.
var hunkNewStart = regexp.MustCompile(`\+(\d+)`)

// locateLine maps a match offset within a patch to an approximate 1-based
// line number in the new file. It counts the newlines before the offset,
// then replays the patch up to that line: each hunk header resets the
// counter to the hunk's new-file start and each addition line advances it.
// If no hunk header was seen the raw newline count is the answer.
//
// The result is best effort, not exact: the counter deliberately keeps the
// original replay behavior (it does not track context lines, and callers
// may pass offsets measured in the added-lines concatenation rather than
// the full patch). Downstream consumers treat locations as approximate.
func locateLine(patch string, pos int) int {
	if pos > len(patch) {
		pos = len(patch)
	}
	linesBefore := strings.Count(patch[:pos], "\n")

	current := 0
	lines := strings.Split(patch, "\n")
	limit := linesBefore + 1
	if limit > len(lines) {
		limit = len(lines)
	}

	for _, line := range lines[:limit] {
		if strings.HasPrefix(line, "@@") {
			if m := hunkNewStart.FindStringSubmatch(line); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					current = n
				}
			}
		} else if strings.HasPrefix(line, "+") {
			current++
		}
	}

	if current > 0 {
		return current
	}
	return linesBefore + 1
}
