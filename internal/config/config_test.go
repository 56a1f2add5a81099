package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Default()

	assert.Equal(t, 50, s.Analysis.MaxFilesFullAnalysis)
	assert.Equal(t, 1000, s.Analysis.MaxDiffLinesPerFile)
	assert.True(t, s.Analysis.EnableSecurityCheck)
	assert.True(t, s.Analysis.EnableTestCoverageCheck)
	assert.Equal(t, 10, s.Comment.MaxKeyFiles)
	require.NoError(t, s.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Analysis, s.Analysis)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".prsift.yml")
	content := []byte(`
analysis:
  max_files_full_analysis: 25
  max_diff_lines_per_file: 500
  enable_security_check: true
  enable_performance_check: false
  enable_breaking_change_check: true
  enable_test_coverage_check: true
comment:
  include_summary: true
  include_key_files: true
  include_risks: true
  collapse_file_list: false
  max_key_files: 5
ai:
  model: claude-sonnet-4-5
  max_tokens: 2048
  temperature: 0.1
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, s.Analysis.MaxFilesFullAnalysis)
	assert.Equal(t, 500, s.Analysis.MaxDiffLinesPerFile)
	assert.False(t, s.Analysis.EnablePerformanceCheck)
	assert.Equal(t, 5, s.Comment.MaxKeyFiles)
	assert.Equal(t, 2048, s.AI.MaxTokens)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_testtoken")
	t.Setenv("GITHUB_REPOSITORY", "acme/widgets")
	t.Setenv("GITHUB_EVENT_NUMBER", "42")
	t.Setenv("PRSIFT_MAX_FILES", "7")
	t.Setenv("PRSIFT_ENABLE_SECURITY", "false")

	s, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "ghp_testtoken", s.GithubToken)
	assert.Equal(t, "acme/widgets", s.Repository)
	assert.Equal(t, 42, s.PRNumber)
	assert.Equal(t, 7, s.Analysis.MaxFilesFullAnalysis)
	assert.False(t, s.Analysis.EnableSecurityCheck)
	require.NoError(t, s.RequireGitHub())
}

func TestValidateBounds(t *testing.T) {
	s := Default()
	s.Analysis.MaxDiffLinesPerFile = 50
	assert.Error(t, s.Validate())

	s = Default()
	s.Analysis.MaxFilesFullAnalysis = 0
	assert.Error(t, s.Validate())

	s = Default()
	s.Comment.MaxKeyFiles = 0
	assert.Error(t, s.Validate())
}

func TestRequireGitHubMissingToken(t *testing.T) {
	s := Default()
	assert.Error(t, s.RequireGitHub())
}
