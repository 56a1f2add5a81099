// Package format renders analysis results as GitHub comment markdown.
package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sprite-ai/prsift/internal/config"
	"github.com/sprite-ai/prsift/internal/model"
)

var categoryEmoji = map[model.Category]string{
	model.CategorySecurity:       "🔒",
	model.CategoryBreakingChange: "⚠️",
	model.CategoryPerformance:    "⚡",
	model.CategoryTestCoverage:   "🧪",
	model.CategoryOther:          "📌",
}

var statusEmoji = map[string]string{
	"added":    "✨",
	"removed":  "🗑️",
	"modified": "📝",
	"renamed":  "🔄",
}

// Formatter renders comments according to the comment settings.
type Formatter struct {
	cfg config.CommentConfig
	now func() time.Time
}

// New builds a Formatter.
func New(cfg config.CommentConfig) *Formatter {
	return &Formatter{cfg: cfg, now: time.Now}
}

// Comment renders the full analysis comment. totalFiles is the change-set's
// file count before filtering, shown when the file list is collapsed.
func (fm *Formatter) Comment(result *model.Result, totalFiles int) string {
	var sections []string

	sections = append(sections, "## 🤖 PR Analysis\n")

	if result.Partial {
		sections = append(sections, "⚠️ **Partial Analysis**: Some components failed during analysis.\n")
	}
	if len(result.Errors) > 0 {
		sections = append(sections, "### Errors\n")
		for _, e := range result.Errors {
			sections = append(sections, "- "+e)
		}
		sections = append(sections, "")
	}

	if fm.cfg.IncludeSummary && result.Summary != "" {
		sections = append(sections, "### Summary\n", result.Summary+"\n")
	}

	if fm.cfg.IncludeKeyFiles && len(result.KeyFiles) > 0 {
		sections = append(sections, "### Key Files Changed\n")
		if fm.cfg.CollapseFileList && len(result.KeyFiles) > 10 {
			sections = append(sections,
				fmt.Sprintf("<details>\n<summary>📁 %d files modified</summary>\n", totalFiles),
				fm.fileTable(result.KeyFiles),
				"\n</details>\n")
		} else {
			sections = append(sections, fm.fileTable(result.KeyFiles), "")
		}
	}

	if fm.cfg.IncludeRisks {
		sections = append(sections, "### Risk Analysis\n")
		if len(result.Findings) == 0 {
			sections = append(sections, "✅ No significant risks detected.\n")
		} else {
			grouped := groupByCategory(result.Findings)
			for _, cat := range model.Categories {
				if findings, ok := grouped[cat]; ok {
					sections = append(sections, riskSection(cat, findings))
				}
			}
		}
	}

	if len(result.FocusAreas) > 0 {
		sections = append(sections, "### Review Focus Areas\n")
		for _, area := range result.FocusAreas {
			sections = append(sections, "- [ ] "+area)
		}
		sections = append(sections, "")
	}

	aiStatus := "Pattern-based analysis"
	if result.AIEnabled {
		aiStatus = "Powered by Claude AI"
	}
	sections = append(sections,
		"---",
		fmt.Sprintf("*Analysis generated on %s | %s*", fm.timestamp(), aiStatus))

	return strings.Join(sections, "\n")
}

// ErrorComment renders a failure notice for the change-set.
func (fm *Formatter) ErrorComment(message string) string {
	return fmt.Sprintf(`## 🤖 PR Analysis

### Error

❌ Analysis failed: %s

Please check the GitHub Actions logs for more details.

---
*Analysis attempted on %s*
`, message, fm.timestamp())
}

func (fm *Formatter) timestamp() string {
	return fm.now().UTC().Format("2006-01-02 15:04:05 UTC")
}

func (fm *Formatter) fileTable(files []model.FileChange) string {
	if len(files) == 0 {
		return "*No files to display*"
	}

	lines := []string{
		"| File | Changes | Impact |",
		"|------|---------|--------|",
	}

	for i, f := range files {
		if i >= fm.cfg.MaxKeyFiles {
			break
		}
		impact := "Low"
		switch {
		case f.Changes > 100:
			impact = "High"
		case f.Changes > 50:
			impact = "Medium"
		}

		emoji, ok := statusEmoji[f.Status]
		if !ok {
			emoji = "📝"
		}
		lines = append(lines, fmt.Sprintf("| %s `%s` | +%d, -%d | %s |",
			emoji, f.Path, f.Additions, f.Deletions, impact))
	}

	return strings.Join(lines, "\n")
}

func groupByCategory(findings []model.Finding) map[model.Category][]model.Finding {
	grouped := make(map[model.Category][]model.Finding)
	for _, f := range findings {
		grouped[f.Category] = append(grouped[f.Category], f)
	}
	return grouped
}

func riskSection(cat model.Category, findings []model.Finding) string {
	emoji, ok := categoryEmoji[cat]
	if !ok {
		emoji = "📌"
	}

	lines := []string{fmt.Sprintf("#### %s %s\n", emoji, cat.Title())}

	sorted := make([]model.Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity > sorted[j].Severity
	})

	for _, f := range sorted {
		lines = append(lines, fmt.Sprintf("- **%s**: %s", strings.ToUpper(f.Severity.String()), f.Title))

		if f.FilePath != "" {
			location := fmt.Sprintf("  - File: `%s`", f.FilePath)
			if f.Line > 0 {
				location += fmt.Sprintf(":%d", f.Line)
			}
			lines = append(lines, location)
		}
		if f.Description != "" && f.Description != f.Title {
			lines = append(lines, "  - "+f.Description)
		}
		if f.Suggestion != "" {
			lines = append(lines, "  - Suggestion: "+f.Suggestion)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
