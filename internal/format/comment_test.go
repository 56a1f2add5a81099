package format

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprite-ai/prsift/internal/config"
	"github.com/sprite-ai/prsift/internal/model"
)

func fixedFormatter(cfg config.CommentConfig) *Formatter {
	fm := New(cfg)
	fm.now = func() time.Time {
		return time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	}
	return fm
}

func fullResult() *model.Result {
	return &model.Result{
		Summary: "Adds login rate limiting.",
		KeyFiles: []model.FileChange{
			{Path: "src/auth.py", Status: "modified", Additions: 120, Deletions: 5, Changes: 125},
			{Path: "src/limiter.py", Status: "added", Additions: 60, Deletions: 0, Changes: 60},
			{Path: "README.md", Status: "modified", Additions: 3, Deletions: 1, Changes: 4},
		},
		Findings: []model.Finding{
			{Category: model.CategoryPerformance, Severity: model.SeverityLow, Title: "Sleep in loop", FilePath: "src/limiter.py", Line: 12},
			{Category: model.CategorySecurity, Severity: model.SeverityHigh, Title: "Hardcoded secret", FilePath: "src/auth.py", Line: 3, Suggestion: "Move to environment variables"},
			{Category: model.CategorySecurity, Severity: model.SeverityMedium, Title: "Weak hash", FilePath: "src/auth.py"},
		},
		FocusAreas: []string{"Verify limiter thresholds", "Check secret rotation"},
		AIEnabled:  true,
	}
}

func TestCommentSections(t *testing.T) {
	out := fixedFormatter(config.Default().Comment).Comment(fullResult(), 3)

	assert.True(t, strings.HasPrefix(out, "## 🤖 PR Analysis"))
	assert.Contains(t, out, "### Summary")
	assert.Contains(t, out, "Adds login rate limiting.")
	assert.Contains(t, out, "### Key Files Changed")
	assert.Contains(t, out, "| 📝 `src/auth.py` | +120, -5 | High |")
	assert.Contains(t, out, "| ✨ `src/limiter.py` | +60, -0 | Medium |")
	assert.Contains(t, out, "| 📝 `README.md` | +3, -1 | Low |")
	assert.Contains(t, out, "### Risk Analysis")
	assert.Contains(t, out, "#### 🔒 Security")
	assert.Contains(t, out, "#### ⚡ Performance")
	assert.Contains(t, out, "- [ ] Verify limiter thresholds")
	assert.Contains(t, out, "*Analysis generated on 2025-06-01 10:30:00 UTC | Powered by Claude AI*")
	assert.NotContains(t, out, "Partial Analysis")
}

func TestCommentSeverityOrderWithinCategory(t *testing.T) {
	out := fixedFormatter(config.Default().Comment).Comment(fullResult(), 3)

	high := strings.Index(out, "**HIGH**: Hardcoded secret")
	medium := strings.Index(out, "**MEDIUM**: Weak hash")
	require.Positive(t, high)
	require.Positive(t, medium)
	assert.Less(t, high, medium)

	// security section precedes performance
	assert.Less(t, strings.Index(out, "#### 🔒 Security"), strings.Index(out, "#### ⚡ Performance"))
}

func TestCommentRiskDetails(t *testing.T) {
	out := fixedFormatter(config.Default().Comment).Comment(fullResult(), 3)

	assert.Contains(t, out, "  - File: `src/auth.py`:3")
	assert.Contains(t, out, "  - Suggestion: Move to environment variables")
}

func TestCommentNoRisks(t *testing.T) {
	result := &model.Result{Summary: "Docs only."}
	out := fixedFormatter(config.Default().Comment).Comment(result, 1)

	assert.Contains(t, out, "✅ No significant risks detected.")
	assert.Contains(t, out, "Pattern-based analysis")
}

func TestCommentPartialWithErrors(t *testing.T) {
	result := fullResult()
	result.Partial = true
	result.Errors = []string{"AI summary failed: timeout"}

	out := fixedFormatter(config.Default().Comment).Comment(result, 3)

	assert.Contains(t, out, "⚠️ **Partial Analysis**")
	assert.Contains(t, out, "### Errors")
	assert.Contains(t, out, "- AI summary failed: timeout")
}

func TestCommentCollapsesLongFileList(t *testing.T) {
	result := &model.Result{}
	for i := 0; i < 12; i++ {
		result.KeyFiles = append(result.KeyFiles, model.FileChange{
			Path: fmt.Sprintf("pkg/f%02d.go", i), Status: "modified", Changes: 5,
		})
	}

	cfg := config.Default().Comment
	out := fixedFormatter(cfg).Comment(result, 40)

	assert.Contains(t, out, "<details>")
	assert.Contains(t, out, "<summary>📁 40 files modified</summary>")
	assert.Contains(t, out, "</details>")

	// table rows capped at max_key_files
	assert.Equal(t, cfg.MaxKeyFiles, strings.Count(out, "| 📝 `pkg/"))
}

func TestCommentSectionsToggledOff(t *testing.T) {
	cfg := config.Default().Comment
	cfg.IncludeSummary = false
	cfg.IncludeKeyFiles = false
	cfg.IncludeRisks = false

	out := fixedFormatter(cfg).Comment(fullResult(), 3)

	assert.NotContains(t, out, "### Summary")
	assert.NotContains(t, out, "### Key Files Changed")
	assert.NotContains(t, out, "### Risk Analysis")
	assert.Contains(t, out, "### Review Focus Areas")
}

func TestErrorComment(t *testing.T) {
	out := fixedFormatter(config.Default().Comment).ErrorComment("rate limited")

	assert.Contains(t, out, "❌ Analysis failed: rate limited")
	assert.Contains(t, out, "*Analysis attempted on 2025-06-01 10:30:00 UTC*")
}
