package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/prsift/internal/analysis"
	"github.com/sprite-ai/prsift/internal/diff"
	"github.com/sprite-ai/prsift/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review [commit-range]",
	Short: "Browse analysis findings interactively",
	Long: `Open an interactive TUI for browsing a diff's files and risk
findings. By default, reviews HEAD against its parent. Optionally specify
a commit range.

Examples:
  prsift review                     # HEAD vs parent
  prsift review main...HEAD         # branch vs main
  git diff | prsift review -        # pipe any diff`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	contextLines, _ := cmd.Flags().GetInt("context")
	raw, err := getDiff(args, contextLines)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		fmt.Println("No changes to review.")
		return nil
	}

	files, err := diff.ParseUnified(raw)
	if err != nil {
		return fmt.Errorf("parsing diff: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No changes to review.")
		return nil
	}

	result := analysis.New(cfg, nil).Analyze(cmd.Context(), localChangeSet(files))

	return tui.Run(result)
}
