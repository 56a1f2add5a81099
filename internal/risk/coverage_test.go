package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprite-ai/prsift/internal/model"
)

func TestTestGapSignificantChangeWithoutTests(t *testing.T) {
	files := []model.FileChange{
		{Path: "src/billing/invoice.py", Status: "modified", Changes: 60, Patch: "+x"},
	}

	findings := detectAllOn().TestGaps(files)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, model.CategoryTestCoverage, f.Category)
	assert.Equal(t, model.SeverityMedium, f.Severity)
	assert.Equal(t, "src/billing/invoice.py", f.FilePath)
	assert.Zero(t, f.Line)
}

func TestTestGapCoveredByMatchingTestFile(t *testing.T) {
	files := []model.FileChange{
		{Path: "src/billing/invoice.py", Status: "modified", Changes: 60},
		{Path: "tests/test_invoice.py", Status: "modified", Changes: 12},
	}

	findings := detectAllOn().TestGaps(files)
	assert.Empty(t, findings)
}

func TestTestGapSmallChangeIgnored(t *testing.T) {
	files := []model.FileChange{
		{Path: "src/billing/invoice.py", Status: "modified", Changes: 9},
	}

	findings := detectAllOn().TestGaps(files)
	assert.Empty(t, findings)
}

func TestTestGapNonCodeFilesIgnored(t *testing.T) {
	files := []model.FileChange{
		{Path: "docs/guide.md", Status: "modified", Changes: 200},
		{Path: "deploy/values.yaml", Status: "modified", Changes: 40},
		{Path: "package.json", Status: "modified", Changes: 40},
	}

	findings := detectAllOn().TestGaps(files)
	assert.Empty(t, findings)
}

func TestTestGapUnrelatedTestFileDoesNotCover(t *testing.T) {
	files := []model.FileChange{
		{Path: "src/parser.go", Status: "modified", Changes: 50},
		{Path: "tests/test_render.py", Status: "modified", Changes: 5},
	}

	findings := detectAllOn().TestGaps(files)
	assert.Len(t, findings, 1)
}

func TestBaseIdentifier(t *testing.T) {
	assert.Equal(t, "invoice", baseIdentifier("src/billing/invoice.py"))
	assert.Equal(t, "parser", baseIdentifier("internal/parse/parser.go"))
	assert.Equal(t, "widget", baseIdentifier("web/widget.ts"))
	assert.Equal(t, "Makefile", baseIdentifier("Makefile"))
}
