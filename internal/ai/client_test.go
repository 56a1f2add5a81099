package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprite-ai/prsift/internal/config"
	"github.com/sprite-ai/prsift/internal/model"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `[]`, `[]`},
		{"fenced", "```json\n[1, 2]\n```", "[1, 2]"},
		{"fenced no lang", "```\n{}\n```", "{}"},
		{"leading whitespace", "  \n```json\n[]\n```", "[]"},
		{"degenerate fence", "```", "```"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripCodeFence(tc.in))
		})
	}
}

func TestParseRiskItems(t *testing.T) {
	response := "```json\n" + `[
  {
    "category": "Security",
    "severity": "HIGH",
    "title": "Token never expires",
    "description": "JWT issued without exp claim",
    "file_path": "src/auth.py",
    "suggestion": "Set an expiration"
  },
  {
    "category": "Logic",
    "severity": "LOW",
    "title": "Off-by-one in pagination"
  }
]` + "\n```"

	findings, err := parseRiskItems(response)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	assert.Equal(t, model.CategorySecurity, findings[0].Category)
	assert.Equal(t, model.SeverityHigh, findings[0].Severity)
	assert.Equal(t, "src/auth.py", findings[0].FilePath)

	// unrecognized categories collapse to Other
	assert.Equal(t, model.CategoryOther, findings[1].Category)
	assert.Equal(t, model.SeverityLow, findings[1].Severity)
}

func TestParseRiskItemsDefaults(t *testing.T) {
	findings, err := parseRiskItems(`[{"category": "Data", "severity": "bogus"}]`)
	require.NoError(t, err)
	require.Len(t, findings, 1)

	assert.Equal(t, "AI-identified risk", findings[0].Title)
	assert.Equal(t, model.SeverityMedium, findings[0].Severity)
}

func TestParseRiskItemsBadJSON(t *testing.T) {
	_, err := parseRiskItems("I could not produce JSON, sorry.")
	assert.Error(t, err)
}

func TestParseFocusAreasJSON(t *testing.T) {
	areas := parseFocusAreas(`["Verify input validation", "Check migration rollback", "a", "b", "c", "d", "e", "f", "g"]`)
	assert.Len(t, areas, 7)
	assert.Equal(t, "Verify input validation", areas[0])
}

func TestParseFocusAreasNewlineFallback(t *testing.T) {
	response := "- Verify JWT token validation\n- ok\n- Check database migration ordering\n"

	areas := parseFocusAreas(response)

	// short lines are dropped by the fallback
	assert.Equal(t, []string{
		"Verify JWT token validation",
		"Check database migration ordering",
	}, areas)
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.AnthropicAPIKey = "test-key"
	c := New(cfg)
	c.http.SetBaseURL(srv.URL)
	return c
}

func TestSummarize(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Add caching layer")

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "  Adds a Redis cache.  "}},
		})
	})

	pr := &model.PRData{Metadata: model.PRMetadata{Title: "Add caching layer"}}
	summary, err := c.Summarize(context.Background(), pr, []model.FileChange{
		{Path: "cache.py", Additions: 30, Patch: "@@ -0,0 +1,1 @@\n+import redis"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Adds a Redis cache.", summary)
}

func TestCompleteAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "invalid_request_error", "message": "bad model"},
		})
	})

	_, err := c.complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad model")
}

func TestSupplementFindingsUnparseableIsSoft(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "not json"}},
		})
	})

	pr := &model.PRData{Metadata: model.PRMetadata{Title: "x"}}
	findings, err := c.SupplementFindings(context.Background(), pr, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, findings)
}
