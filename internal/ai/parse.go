package ai

import (
	"encoding/json"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/model"
)

// stripCodeFence removes a surrounding markdown code block, if present.
// Models often wrap JSON output in ```json fences despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= 2 {
		return s
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

type riskItem struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
	Suggestion  string `json:"suggestion"`
}

// parseRiskItems decodes the model's JSON risk array into findings.
// Categories outside the pattern detectors map to Other.
func parseRiskItems(response string) ([]model.Finding, error) {
	var items []riskItem
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &items); err != nil {
		return nil, err
	}

	findings := make([]model.Finding, 0, len(items))
	for _, item := range items {
		title := item.Title
		if title == "" {
			title = "AI-identified risk"
		}
		findings = append(findings, model.Finding{
			Category:    mapCategory(item.Category),
			Severity:    mapSeverity(item.Severity),
			Title:       title,
			Description: item.Description,
			FilePath:    item.FilePath,
			Suggestion:  item.Suggestion,
		})
	}
	return findings, nil
}

func mapCategory(name string) model.Category {
	switch name {
	case "Security":
		return model.CategorySecurity
	case "Performance":
		return model.CategoryPerformance
	default:
		// Logic, Maintainability and Data have no pattern detector
		return model.CategoryOther
	}
}

func mapSeverity(name string) model.Severity {
	switch strings.ToUpper(name) {
	case "HIGH":
		return model.SeverityHigh
	case "LOW":
		return model.SeverityLow
	default:
		return model.SeverityMedium
	}
}

// parseFocusAreas decodes the model's JSON string array, falling back to
// splitting plain-text bullet lines. At most seven items are returned.
func parseFocusAreas(response string) []string {
	const maxItems = 7

	var areas []string
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &areas); err != nil {
		log.Warnf("failed to parse focus areas as JSON: %v", err)
		for _, line := range strings.Split(response, "\n") {
			line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "- "))
			if len(line) > 10 {
				areas = append(areas, line)
			}
		}
	}
	if len(areas) > maxItems {
		areas = areas[:maxItems]
	}
	return areas
}
