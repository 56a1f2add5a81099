package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprite-ai/prsift/internal/model"
)

func detectAllOn() *Detector {
	return New(DefaultOptions())
}

func fileWithPatch(path, patch string) []model.FileChange {
	return []model.FileChange{{Path: path, Status: "modified", Patch: patch, Changes: 1}}
}

func TestSecurityConcatenatedSQL(t *testing.T) {
	patch := "@@ -1,1 +1,2 @@\n context\n+query = \"SELECT * FROM users WHERE id = \" + user_id"

	findings := detectAllOn().Security(fileWithPatch("src/db.py", patch))

	require.NotEmpty(t, findings)
	for _, f := range findings {
		assert.Equal(t, model.CategorySecurity, f.Category)
		assert.Equal(t, "src/db.py", f.FilePath)
	}
}

func TestSecurityCleanDiffNoFindings(t *testing.T) {
	patch := "@@ -1,1 +1,3 @@\n+def add(a, b):\n+    return a + b"

	findings := detectAllOn().Security(fileWithPatch("src/math.py", patch))
	assert.Empty(t, findings)
}

func TestSecurityHardcodedAPIKeySeverity(t *testing.T) {
	patch := "@@ -1,1 +1,2 @@\n+API_KEY = \"sk_live_1234567890abcdef\""

	findings := detectAllOn().Security(fileWithPatch("src/config.py", patch))

	require.NotEmpty(t, findings)
	found := false
	for _, f := range findings {
		if f.Title == "Hardcoded API key detected" {
			found = true
			assert.Equal(t, model.SeverityHigh, f.Severity)
			assert.NotEmpty(t, f.Snippet)
		}
	}
	assert.True(t, found, "expected hardcoded API key finding, got %v", findings)
}

func TestSecurityHardcodedTokenRequiresLongValue(t *testing.T) {
	short := "@@ -1 +1 @@\n+token = \"abc123\""
	long := "@@ -1 +1 @@\n+token = \"abcdefghij0123456789xyz\""

	d := detectAllOn()
	assert.Empty(t, findingsTitled(d.Security(fileWithPatch("a.py", short)), "Hardcoded token detected"))
	assert.NotEmpty(t, findingsTitled(d.Security(fileWithPatch("a.py", long)), "Hardcoded token detected"))
}

func TestSecurityYAMLLoadRespectsLoaderArgument(t *testing.T) {
	unsafe := "@@ -1 +1 @@\n+data = yaml.load(f)"
	safe := "@@ -1 +1 @@\n+data = yaml.load(f, Loader=yaml.SafeLoader)"

	d := detectAllOn()
	assert.NotEmpty(t, findingsTitled(d.Security(fileWithPatch("a.py", unsafe)), "Unsafe YAML loading"))
	assert.Empty(t, findingsTitled(d.Security(fileWithPatch("a.py", safe)), "Unsafe YAML loading"))
}

func TestSecurityIgnoresRemovedLines(t *testing.T) {
	patch := "@@ -1,2 +1,1 @@\n-password = \"hunter2\"\n context"

	findings := detectAllOn().Security(fileWithPatch("a.py", patch))
	assert.Empty(t, findings)
}

func TestSecurityIgnoresFileHeaderLines(t *testing.T) {
	// "+++ b/secret= ..." style header pseudolines are not additions
	patch := "+++ b/password_reset.py\n@@ -1 +1 @@\n context"

	findings := detectAllOn().Security(fileWithPatch("password_reset.py", patch))
	assert.Empty(t, findings)
}

func TestSecurityWeakHash(t *testing.T) {
	patch := "@@ -1 +1,2 @@\n+digest = hashlib.md5(data).hexdigest()\n+sig = hashlib.sha1(data)"

	findings := detectAllOn().Security(fileWithPatch("a.py", patch))

	assert.NotEmpty(t, findingsTitled(findings, "MD5 is cryptographically weak"))
	assert.NotEmpty(t, findingsTitled(findings, "SHA-1 is deprecated"))
}

func TestSecuritySkipsFilesWithoutPatch(t *testing.T) {
	findings := detectAllOn().Security([]model.FileChange{{Path: "bin/blob", Status: "added"}})
	assert.Empty(t, findings)
}

func TestSecuritySnippetCapped(t *testing.T) {
	long := "+password = \"" + stringOfLen(300) + "\""
	patch := "@@ -1 +1 @@\n" + long

	findings := detectAllOn().Security(fileWithPatch("a.py", patch))
	require.NotEmpty(t, findings)
	assert.LessOrEqual(t, len(findings[0].Snippet), snippetMax)
}

func findingsTitled(findings []model.Finding, title string) []model.Finding {
	var out []model.Finding
	for _, f := range findings {
		if f.Title == title {
			out = append(out, f)
		}
	}
	return out
}

func stringOfLen(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
