package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/prsift/internal/analysis"
	"github.com/sprite-ai/prsift/internal/diff"
	"github.com/sprite-ai/prsift/internal/format"
	"github.com/sprite-ai/prsift/internal/model"
)

var checkCmd = &cobra.Command{
	Use:   "check [commit-range]",
	Short: "Run risk analysis on a local diff (non-interactive)",
	Long: `Run pattern-based risk analysis on a local diff and output a report.
Useful for CI, pre-commit hooks, and piping into other tools.

Examples:
  prsift check                   # HEAD vs parent
  prsift check main...HEAD       # branch vs main
  git diff | prsift check -      # pipe any diff

Exit codes:
  0 — clean, no findings
  1 — findings below high severity
  2 — high severity findings`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("format", "f", "text", "output format: text, json, markdown")
	checkCmd.Flags().IntP("context", "C", 3, "lines of context around changes")
}

func runCheck(cmd *cobra.Command, args []string) error {
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
		fmt.Println("No changes to check.")
		return nil
	}

	files, err := diff.ParseUnified(raw)
	if err != nil {
		return fmt.Errorf("parsing diff: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No changes to check.")
		return nil
	}

	pr := localChangeSet(files)
	result := analysis.New(cfg, nil).Analyze(cmd.Context(), pr)

	outFormat, _ := cmd.Flags().GetString("format")
	switch outFormat {
	case "json":
		if err := outputJSON(result); err != nil {
			return err
		}
	case "markdown":
		fmt.Println(format.New(cfg.Comment).Comment(result, len(files)))
	default:
		outputText(files, result)
	}

	switch {
	case result.MaxSeverity() >= model.SeverityHigh:
		os.Exit(2)
	case len(result.Findings) > 0:
		os.Exit(1)
	}
	return nil
}

// localChangeSet wraps parsed diff files in change-set metadata so local
// diffs flow through the same pipeline as pull requests.
func localChangeSet(files []model.FileChange) *model.PRData {
	pr := &model.PRData{Files: files}
	for _, f := range files {
		pr.Metadata.Additions += f.Additions
		pr.Metadata.Deletions += f.Deletions
	}
	pr.Metadata.ChangedFiles = len(files)
	return pr
}

func outputText(files []model.FileChange, result *model.Result) {
	var added, deleted int
	for _, f := range files {
		added += f.Additions
		deleted += f.Deletions
	}
	fmt.Printf("%d file(s) changed, +%d -%d\n", len(files), added, deleted)
	fmt.Printf("Analysis: %s\n\n", result.SummaryLine())

	if len(result.Findings) == 0 {
		fmt.Println("No issues found.")
		return
	}

	byFile := make(map[string][]model.Finding)
	var order []string
	for _, f := range result.Findings {
		if _, seen := byFile[f.FilePath]; !seen {
			order = append(order, f.FilePath)
		}
		byFile[f.FilePath] = append(byFile[f.FilePath], f)
	}

	for _, file := range order {
		label := file
		if label == "" {
			label = "(change-set)"
		}
		fmt.Printf("  %s\n", label)
		for _, f := range byFile[file] {
			loc := ""
			if f.Line > 0 {
				loc = fmt.Sprintf(":%d", f.Line)
			}
			fmt.Printf("    %s [%s] %s%s: %s\n", severityIcon(f.Severity), f.Category, f.FilePath, loc, f.Title)
		}
		fmt.Println()
	}
}

func severityIcon(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return "✗"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "~"
	default:
		return "·"
	}
}

func outputJSON(result *model.Result) error {
	type jsonOutput struct {
		Summary     string          `json:"summary"`
		MaxSeverity string          `json:"max_severity"`
		Total       int             `json:"total"`
		Findings    []model.Finding `json:"findings"`
		FocusAreas  []string        `json:"review_focus_areas,omitempty"`
	}

	out := jsonOutput{
		Summary:     result.SummaryLine(),
		MaxSeverity: result.MaxSeverity().String(),
		Total:       len(result.Findings),
		Findings:    result.Findings,
		FocusAreas:  result.FocusAreas,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func getDiff(args []string, contextLines int) (string, error) {
	// Read from stdin if "-" is passed
	if len(args) == 1 && args[0] == "-" {
		data, err := os.ReadFile("/dev/stdin")
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	repoDir, err := gitRepoRoot()
	if err != nil {
		return "", fmt.Errorf("not in a git repository (or git not installed): %w", err)
	}

	if len(args) == 1 {
		return diff.GitDiffRange(repoDir, args[0], contextLines)
	}

	return diff.GitDiffHead(repoDir, contextLines)
}

func gitRepoRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
