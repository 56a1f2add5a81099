package api

import (
	"net/http"

	"github.com/sprite-ai/prsift/internal/analysis"
	"github.com/sprite-ai/prsift/internal/diff"
	"github.com/sprite-ai/prsift/internal/model"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Analyze ---

type analyzeRequest struct {
	Diff string `json:"diff"`
}

type analyzeResponse struct {
	Summary     string          `json:"summary"`
	MaxSeverity string          `json:"max_severity"`
	Total       int             `json:"total"`
	Findings    []model.Finding `json:"findings"`
	FocusAreas  []string        `json:"review_focus_areas,omitempty"`
	Stats       diffStatsJSON   `json:"stats"`
}

type diffStatsJSON struct {
	Files   int `json:"files"`
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	files, err := diff.ParseUnified(req.Diff)
	if err != nil {
		writeError(w, http.StatusBadRequest, "parsing diff: "+err.Error())
		return
	}

	result := s.analyze(r, files)
	writeJSON(w, http.StatusOK, analyzeResult(files, result))
}

// analyze runs the pattern-based pipeline over parsed diff files.
func (s *Server) analyze(r *http.Request, files []model.FileChange) *model.Result {
	pr := &model.PRData{Files: files}
	for _, f := range files {
		pr.Metadata.Additions += f.Additions
		pr.Metadata.Deletions += f.Deletions
	}
	pr.Metadata.ChangedFiles = len(files)

	return analysis.New(s.cfg, nil).Analyze(r.Context(), pr)
}

func analyzeResult(files []model.FileChange, result *model.Result) analyzeResponse {
	resp := analyzeResponse{
		Summary:     result.SummaryLine(),
		MaxSeverity: result.MaxSeverity().String(),
		Total:       len(result.Findings),
		Findings:    result.Findings,
		FocusAreas:  result.FocusAreas,
	}
	resp.Stats.Files = len(files)
	for _, f := range files {
		resp.Stats.Added += f.Additions
		resp.Stats.Deleted += f.Deletions
	}
	return resp
}

// --- Parse ---

type parseRequest struct {
	Diff string `json:"diff"`
}

type parseResponse struct {
	Files []fileJSON    `json:"files"`
	Stats diffStatsJSON `json:"stats"`
}

type fileJSON struct {
	Path         string  `json:"path"`
	Status       string  `json:"status"`
	PreviousPath string  `json:"previous_path,omitempty"`
	AddedLines   int     `json:"added_lines"`
	DeletedLines int     `json:"deleted_lines"`
	Skipped      bool    `json:"skipped,omitempty"`
	Complexity   float64 `json:"complexity_score"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	files, err := diff.ParseUnified(req.Diff)
	if err != nil {
		writeError(w, http.StatusBadRequest, "parsing diff: "+err.Error())
		return
	}

	resp := parseResponse{}
	for _, f := range files {
		stats := diff.Stats(f.Patch)
		resp.Files = append(resp.Files, fileJSON{
			Path:         f.Path,
			Status:       f.Status,
			PreviousPath: f.PreviousPath,
			AddedLines:   f.Additions,
			DeletedLines: f.Deletions,
			Skipped:      diff.ShouldSkip(f.Path),
			Complexity:   stats.ComplexityScore,
		})
		resp.Stats.Files++
		resp.Stats.Added += f.Additions
		resp.Stats.Deleted += f.Deletions
	}

	writeJSON(w, http.StatusOK, resp)
}
