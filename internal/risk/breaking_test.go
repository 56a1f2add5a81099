package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprite-ai/prsift/internal/model"
)

func TestBreakingRemovedFunction(t *testing.T) {
	patch := "@@ -10,3 +10,1 @@\n-def handle_request(req):\n-    return req\n context"

	findings := detectAllOn().BreakingChanges(fileWithPatch("src/handlers.py", patch))

	require.NotEmpty(t, findings)
	f := findings[0]
	assert.Equal(t, model.CategoryBreakingChange, f.Category)
	assert.Equal(t, "Public method removed", f.Title)
	assert.Equal(t, model.SeverityMedium, f.Severity)
	assert.Equal(t, "src/handlers.py", f.FilePath)
}

func TestBreakingRemovedClass(t *testing.T) {
	patch := "@@ -1,2 +1,0 @@\n-class PaymentProcessor:\n-    pass"

	findings := findingsTitled(detectAllOn().BreakingChanges(fileWithPatch("src/payments.py", patch)), "Class removed")

	require.Len(t, findings, 1)
	assert.Equal(t, model.SeverityHigh, findings[0].Severity)
}

func TestBreakingRemovedExport(t *testing.T) {
	patch := "@@ -1,1 +1,0 @@\n-export function formatDate(d) {"

	findings := findingsTitled(detectAllOn().BreakingChanges(fileWithPatch("src/util.js", patch)), "Export removed")
	assert.Len(t, findings, 1)
}

func TestBreakingSignatureChange(t *testing.T) {
	patch := "@@ -5,1 +5,1 @@\n-def charge(amount):\n+def charge(amount, currency):"

	findings := findingsTitled(detectAllOn().BreakingChanges(fileWithPatch("src/billing.py", patch)), "Function signature changed")

	require.Len(t, findings, 1)
	assert.Equal(t, "Verify all callers are updated", findings[0].Suggestion)
}

func TestBreakingDifferentNamesNotSignatureChange(t *testing.T) {
	patch := "@@ -5,1 +5,1 @@\n-def charge(amount):\n+def refund(amount):"

	findings := findingsTitled(detectAllOn().BreakingChanges(fileWithPatch("src/billing.py", patch)), "Function signature changed")
	assert.Empty(t, findings)
}

func TestBreakingAddedCodeNotFlagged(t *testing.T) {
	patch := "@@ -1,0 +1,2 @@\n+def shiny_new(x):\n+    return x"

	findings := detectAllOn().BreakingChanges(fileWithPatch("src/new.py", patch))
	assert.Empty(t, findings)
}
