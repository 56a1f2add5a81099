package analysis

import (
	"fmt"

	"github.com/sprite-ai/prsift/internal/model"
)

// basicSummary builds a change-shape summary without the enricher.
func basicSummary(pr *model.PRData, files []model.FileChange) string {
	additions := pr.Metadata.Additions
	deletions := pr.Metadata.Deletions

	var changeType string
	switch {
	case additions > deletions*3:
		changeType = "primarily adds new code"
	case deletions > additions*3:
		changeType = "primarily removes code"
	default:
		changeType = "modifies existing code"
	}

	summary := fmt.Sprintf("This PR %s, affecting %d files with +%d/-%d lines changed.",
		changeType, len(files), additions, deletions)

	if pr.Metadata.Title != "" {
		summary += " " + pr.Metadata.Title
	}
	return summary
}

// basicFocusAreas derives reviewer hints from the finding categories
// without the enricher.
func basicFocusAreas(files []model.FileChange, findings []model.Finding) []string {
	var areas []string

	highCount := 0
	byCategory := make(map[model.Category]int)
	for _, f := range findings {
		byCategory[f.Category]++
		if f.Severity == model.SeverityHigh {
			highCount++
		}
	}

	if highCount > 0 {
		noun := "risks"
		if highCount == 1 {
			noun = "risk"
		}
		areas = append(areas, fmt.Sprintf("Address %d high-priority %s", highCount, noun))
	}
	if byCategory[model.CategorySecurity] > 0 {
		areas = append(areas, "Review security-related changes carefully")
	}
	if byCategory[model.CategoryBreakingChange] > 0 {
		areas = append(areas, "Verify backward compatibility and update documentation")
	}
	if byCategory[model.CategoryTestCoverage] > 0 {
		areas = append(areas, "Add tests for modified code")
	}
	if len(files) > 20 {
		areas = append(areas, "Large changeset - consider breaking into smaller PRs")
	}

	if len(areas) == 0 {
		areas = append(areas,
			"Verify code correctness and test coverage",
			"Check for edge cases and error handling")
	}
	return areas
}
