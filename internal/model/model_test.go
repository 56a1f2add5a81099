package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityHigh > SeverityMedium && SeverityMedium > SeverityLow && SeverityLow > SeverityInfo) {
		t.Fatal("severity values must order high > medium > low > info")
	}
}

func TestSeverityRoundTrip(t *testing.T) {
	for _, sev := range []Severity{SeverityInfo, SeverityLow, SeverityMedium, SeverityHigh} {
		parsed, ok := ParseSeverity(sev.String())
		require.True(t, ok, "parse %s", sev)
		assert.Equal(t, sev, parsed)
	}

	_, ok := ParseSeverity("catastrophic")
	assert.False(t, ok)
}

func TestFindingJSON(t *testing.T) {
	f := Finding{
		Category:    CategorySecurity,
		Severity:    SeverityHigh,
		Title:       "Hardcoded API key detected",
		Description: "Found pattern: api_key = \"abc\"",
		FilePath:    "src/config.py",
		Line:        12,
		Suggestion:  "Store API keys in environment variables",
		Snippet:     "api_key = \"abc\"",
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"security"`)
	assert.Contains(t, string(data), `"severity":"high"`)

	var back Finding
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, f, back)
}

func TestFindingJSONOmitsEmptyFields(t *testing.T) {
	f := Finding{Category: CategoryTestCoverage, Severity: SeverityMedium, Title: "No test updates for changed file"}

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "line_number")
	assert.NotContains(t, string(data), "file_path")
	assert.NotContains(t, string(data), "snippet")
}

func TestResultMaxSeverity(t *testing.T) {
	r := &Result{Findings: []Finding{
		{Category: CategoryPerformance, Severity: SeverityLow},
		{Category: CategorySecurity, Severity: SeverityHigh},
		{Category: CategoryOther, Severity: SeverityMedium},
	}}
	assert.Equal(t, SeverityHigh, r.MaxSeverity())

	empty := &Result{}
	assert.Equal(t, SeverityInfo, empty.MaxSeverity())
}

func TestResultSummaryLine(t *testing.T) {
	r := &Result{Findings: []Finding{
		{Severity: SeverityHigh},
		{Severity: SeverityHigh},
		{Severity: SeverityLow},
	}}
	assert.Equal(t, "2 high, 1 low", r.SummaryLine())

	assert.Equal(t, "No issues found", (&Result{}).SummaryLine())
}
