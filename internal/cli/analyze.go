package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/prsift/internal/ai"
	"github.com/sprite-ai/prsift/internal/analysis"
	"github.com/sprite-ai/prsift/internal/format"
	"github.com/sprite-ai/prsift/internal/github"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a pull request and post the results as a comment",
	Long: `Fetch a pull request from GitHub, run risk analysis, and post (or
update) the analysis comment. Designed to run inside GitHub Actions where
GITHUB_TOKEN, GITHUB_REPOSITORY and GITHUB_EVENT_NUMBER are set.

With ANTHROPIC_API_KEY present, pattern findings are enriched with an
AI-generated summary, supplemental risks and a review checklist. Without
it, analysis is pattern-based only.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Int("pr", 0, "pull request number (default GITHUB_EVENT_NUMBER)")
	analyzeCmd.Flags().Bool("dry-run", false, "print the comment instead of posting it")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.RequireGitHub(); err != nil {
		return err
	}

	number, _ := cmd.Flags().GetInt("pr")
	if number == 0 {
		number = cfg.PRNumber
	}
	if number == 0 {
		return fmt.Errorf("no pull request number: use --pr or set GITHUB_EVENT_NUMBER")
	}

	ctx := cmd.Context()

	gh, err := github.New(ctx, cfg.GithubToken, cfg.Repository)
	if err != nil {
		return err
	}

	formatter := format.New(cfg.Comment)
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	pr, err := gh.PRData(ctx, number)
	if err != nil {
		if !dryRun {
			if postErr := gh.PostOrUpdateComment(ctx, number, formatter.ErrorComment(err.Error())); postErr != nil {
				return fmt.Errorf("%w (error comment also failed: %v)", err, postErr)
			}
		}
		return err
	}

	var enricher analysis.Enricher
	if cfg.AnthropicAPIKey != "" {
		enricher = ai.New(cfg)
	}

	result := analysis.New(cfg, enricher).Analyze(ctx, pr)
	comment := formatter.Comment(result, len(pr.Files))

	if dryRun {
		fmt.Println(comment)
		return nil
	}
	return gh.PostOrUpdateComment(ctx, number, comment)
}
