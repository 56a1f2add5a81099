// Package model defines the core data types shared across prsift.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Severity categorizes how serious a finding is. Higher values sort first
// for display.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity as its string name so serialized
// findings are stable fixture material.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the string names produced by MarshalJSON.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, ok := ParseSeverity(name)
	if !ok {
		return fmt.Errorf("unknown severity %q", name)
	}
	*s = sev
	return nil
}

// ParseSeverity maps a case-insensitive severity name to its value.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToLower(name) {
	case "info":
		return SeverityInfo, true
	case "low":
		return SeverityLow, true
	case "medium":
		return SeverityMedium, true
	case "high":
		return SeverityHigh, true
	default:
		return SeverityInfo, false
	}
}

// Category identifies which kind of risk a finding describes.
type Category int

const (
	CategorySecurity Category = iota
	CategoryBreakingChange
	CategoryPerformance
	CategoryTestCoverage
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategorySecurity:
		return "security"
	case CategoryBreakingChange:
		return "breaking_change"
	case CategoryPerformance:
		return "performance"
	case CategoryTestCoverage:
		return "test_coverage"
	default:
		return "other"
	}
}

// Title returns a human-readable heading for the category.
func (c Category) Title() string {
	switch c {
	case CategorySecurity:
		return "Security"
	case CategoryBreakingChange:
		return "Breaking Change"
	case CategoryPerformance:
		return "Performance"
	case CategoryTestCoverage:
		return "Test Coverage"
	default:
		return "Other"
	}
}

// MarshalJSON encodes the category as its string name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts the string names produced by MarshalJSON.
func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch strings.ToLower(name) {
	case "security":
		*c = CategorySecurity
	case "breaking_change":
		*c = CategoryBreakingChange
	case "performance":
		*c = CategoryPerformance
	case "test_coverage":
		*c = CategoryTestCoverage
	case "other":
		*c = CategoryOther
	default:
		return fmt.Errorf("unknown category %q", name)
	}
	return nil
}

// Categories lists all categories in display order.
var Categories = []Category{
	CategorySecurity,
	CategoryBreakingChange,
	CategoryPerformance,
	CategoryTestCoverage,
	CategoryOther,
}

// Finding is one detected risk. Category and Severity are always set;
// every other field may be absent. Findings are immutable once created.
type Finding struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	FilePath    string   `json:"file_path,omitempty"`
	Line        int      `json:"line_number,omitempty"` // best-effort, 1-based, new file
	Suggestion  string   `json:"suggestion,omitempty"`
	Snippet     string   `json:"snippet,omitempty"`
}

func (f Finding) String() string {
	loc := f.FilePath
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.FilePath, f.Line)
	}
	if loc == "" {
		return fmt.Sprintf("[%s/%s] %s", f.Category, f.Severity, f.Title)
	}
	return fmt.Sprintf("[%s/%s] %s: %s", f.Category, f.Severity, loc, f.Title)
}

// FileChange is one file's diff within a change-set, as reported by the
// host. Path is unique within a change-set. Patch may be empty for binary
// or oversized files.
type FileChange struct {
	Path         string `json:"path"`
	Status       string `json:"status"` // added, removed, modified, renamed
	Additions    int    `json:"additions"`
	Deletions    int    `json:"deletions"`
	Changes      int    `json:"changes"`
	Patch        string `json:"patch,omitempty"`
	PreviousPath string `json:"previous_path,omitempty"` // set only for renames
}

// PRMetadata is the change-set header as reported by the host.
type PRMetadata struct {
	Number       int       `json:"number"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Author       string    `json:"author"`
	Labels       []string  `json:"labels,omitempty"`
	BaseBranch   string    `json:"base_branch"`
	HeadBranch   string    `json:"head_branch"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	ChangedFiles int       `json:"changed_files"`
}

// PRData bundles a change-set's metadata with its file diffs.
type PRData struct {
	Metadata PRMetadata   `json:"metadata"`
	Files    []FileChange `json:"files"`
}

// Result is the complete output of one analysis run.
type Result struct {
	Summary    string       `json:"summary,omitempty"`
	KeyFiles   []FileChange `json:"key_files,omitempty"`
	Findings   []Finding    `json:"findings,omitempty"`
	FocusAreas []string     `json:"review_focus_areas,omitempty"`
	Errors     []string     `json:"errors,omitempty"`
	Partial    bool         `json:"partial,omitempty"`
	AIEnabled  bool         `json:"ai_enabled,omitempty"`
}

// MaxSeverity returns the highest severity among the result's findings.
func (r *Result) MaxSeverity() Severity {
	max := SeverityInfo
	for _, f := range r.Findings {
		if f.Severity > max {
			max = f.Severity
		}
	}
	return max
}

// CountBySeverity returns the number of findings at each severity.
func (r *Result) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}

// SummaryLine returns a one-line digest of the findings, highest severity
// first.
func (r *Result) SummaryLine() string {
	if len(r.Findings) == 0 {
		return "No issues found"
	}
	counts := r.CountBySeverity()
	var parts []string
	for _, sev := range []Severity{SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo} {
		if c := counts[sev]; c > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c, sev))
		}
	}
	return strings.Join(parts, ", ")
}

// DiffStats summarizes one patch body.
type DiffStats struct {
	TotalLines      int     `json:"total_lines"`
	AddedLines      int     `json:"added_lines"`
	DeletedLines    int     `json:"deleted_lines"`
	ComplexityScore float64 `json:"complexity_score"` // 0-10, keyword-density heuristic
}
