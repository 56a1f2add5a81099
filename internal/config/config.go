// Package config loads prsift settings from an optional YAML file with
// environment-variable overrides. Secrets come only from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// AnalysisConfig bounds the core pipeline and toggles its detectors.
type AnalysisConfig struct {
	MaxFilesFullAnalysis      int  `yaml:"max_files_full_analysis"`
	MaxDiffLinesPerFile       int  `yaml:"max_diff_lines_per_file"`
	EnableSecurityCheck       bool `yaml:"enable_security_check"`
	EnablePerformanceCheck    bool `yaml:"enable_performance_check"`
	EnableBreakingChangeCheck bool `yaml:"enable_breaking_change_check"`
	EnableTestCoverageCheck   bool `yaml:"enable_test_coverage_check"`
}

// CommentConfig controls which sections the rendered comment includes.
type CommentConfig struct {
	IncludeSummary   bool `yaml:"include_summary"`
	IncludeKeyFiles  bool `yaml:"include_key_files"`
	IncludeRisks     bool `yaml:"include_risks"`
	CollapseFileList bool `yaml:"collapse_file_list"`
	MaxKeyFiles      int  `yaml:"max_key_files"`
}

// AIConfig selects the enrichment model and its sampling parameters.
type AIConfig struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Settings is the complete configuration for one run.
type Settings struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Comment  CommentConfig  `yaml:"comment"`
	AI       AIConfig       `yaml:"ai"`

	// Secrets and host context, environment-only.
	GithubToken     string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
	Repository      string `yaml:"-"`
	PRNumber        int    `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Settings {
	return &Settings{
		Analysis: AnalysisConfig{
			MaxFilesFullAnalysis:      50,
			MaxDiffLinesPerFile:       1000,
			EnableSecurityCheck:       true,
			EnablePerformanceCheck:    true,
			EnableBreakingChangeCheck: true,
			EnableTestCoverageCheck:   true,
		},
		Comment: CommentConfig{
			IncludeSummary:   true,
			IncludeKeyFiles:  true,
			IncludeRisks:     true,
			CollapseFileList: true,
			MaxKeyFiles:      10,
		},
		AI: AIConfig{
			Model:       "claude-sonnet-4-5",
			MaxTokens:   4096,
			Temperature: 0.3,
		},
	}
}

// Load reads settings from the YAML file at path (missing file means
// defaults), then applies environment overrides and validates.
func Load(path string) (*Settings, error) {
	s := Default()

	if path == "" {
		path = ".prsift.yml"
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Infof("config file not found: %s, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		log.Infof("loaded configuration from %s", path)
	}

	s.applyEnv()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// applyEnv layers environment variables over the file configuration.
func (s *Settings) applyEnv() {
	s.GithubToken = os.Getenv("GITHUB_TOKEN")
	s.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	s.Repository = os.Getenv("GITHUB_REPOSITORY")

	if v := os.Getenv("GITHUB_EVENT_NUMBER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.PRNumber = n
		}
	}

	if v := os.Getenv("PRSIFT_MAX_FILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Analysis.MaxFilesFullAnalysis = n
		}
	}
	if v := os.Getenv("PRSIFT_MAX_DIFF_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Analysis.MaxDiffLinesPerFile = n
		}
	}

	applyBoolEnv("PRSIFT_ENABLE_SECURITY", &s.Analysis.EnableSecurityCheck)
	applyBoolEnv("PRSIFT_ENABLE_PERFORMANCE", &s.Analysis.EnablePerformanceCheck)
	applyBoolEnv("PRSIFT_ENABLE_BREAKING", &s.Analysis.EnableBreakingChangeCheck)
	applyBoolEnv("PRSIFT_ENABLE_TEST_COVERAGE", &s.Analysis.EnableTestCoverageCheck)
}

func applyBoolEnv(name string, target *bool) {
	if v, ok := os.LookupEnv(name); ok {
		*target = strings.EqualFold(v, "true")
	}
}

// Validate enforces the documented bounds on the analysis settings.
func (s *Settings) Validate() error {
	if s.Analysis.MaxFilesFullAnalysis < 1 {
		return fmt.Errorf("max_files_full_analysis must be >= 1, got %d", s.Analysis.MaxFilesFullAnalysis)
	}
	if s.Analysis.MaxDiffLinesPerFile < 100 {
		return fmt.Errorf("max_diff_lines_per_file must be >= 100, got %d", s.Analysis.MaxDiffLinesPerFile)
	}
	if s.Comment.MaxKeyFiles < 1 {
		return fmt.Errorf("max_key_files must be >= 1, got %d", s.Comment.MaxKeyFiles)
	}
	return nil
}

// RequireGitHub verifies the host credentials needed to analyze a live PR.
func (s *Settings) RequireGitHub() error {
	if s.GithubToken == "" {
		return fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}
	if s.Repository == "" {
		return fmt.Errorf("GITHUB_REPOSITORY environment variable is required")
	}
	return nil
}
