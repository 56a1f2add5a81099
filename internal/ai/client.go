// Package ai enriches pattern-based analysis with the Anthropic Messages
// API: change-set summaries, supplemental risk findings, and review focus
// checklists. All failures are soft; callers fall back to pattern-only
// output.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"github.com/sprite-ai/prsift/internal/config"
	"github.com/sprite-ai/prsift/internal/model"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
)

// Client talks to the Anthropic Messages API.
type Client struct {
	http        *resty.Client
	model       string
	maxTokens   int
	temperature float64
}

// New builds a Client from settings. The API key must already be present
// in the settings.
func New(cfg *config.Settings) *Client {
	httpClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("x-api-key", cfg.AnthropicAPIKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(120 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err == nil && r.StatusCode() == http.StatusTooManyRequests
		})

	return &Client{
		http:        httpClient,
		model:       cfg.AI.Model,
		maxTokens:   cfg.AI.MaxTokens,
		temperature: cfg.AI.Temperature,
	}
}

type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// complete sends one user prompt and returns the first text block of the
// response.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	log.Debugf("calling model %s", c.model)

	var out messagesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(messagesRequest{
			Model:       c.model,
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&out).
		SetError(&out).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("messages request: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("api error %d: %s", resp.StatusCode(), out.Error.Message)
		}
		return "", fmt.Errorf("api error %d", resp.StatusCode())
	}
	if len(out.Content) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	text := out.Content[0].Text
	log.Debugf("model response received (%d chars)", len(text))
	return text, nil
}

// Summarize generates a short technical summary of the change-set.
func (c *Client) Summarize(ctx context.Context, pr *model.PRData, files []model.FileChange) (string, error) {
	var fileList []string
	for _, f := range capFiles(files, 20) {
		fileList = append(fileList, fmt.Sprintf("- %s (+%d/-%d)", f.Path, f.Additions, f.Deletions))
	}

	var keyChanges []string
	for _, f := range capFiles(files, 5) {
		if f.Patch == "" {
			continue
		}
		keyChanges = append(keyChanges, fmt.Sprintf("\n%s:\n%s", f.Path, headLines(f.Patch, 20)))
	}
	keyChangesStr := "See file list above"
	if len(keyChanges) > 0 {
		keyChangesStr = strings.Join(keyChanges, "\n")
	}

	prompt := fmt.Sprintf(summaryPrompt,
		pr.Metadata.Title,
		orDefault(pr.Metadata.Description, "No description provided"),
		pr.Metadata.BaseBranch,
		pr.Metadata.HeadBranch,
		len(files),
		strings.Join(fileList, "\n"),
		keyChangesStr)

	log.Info("generating AI summary")
	summary, err := c.complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

// SupplementFindings asks the model for risks beyond pattern matching.
// Unparseable items are skipped, never fatal.
func (c *Client) SupplementFindings(ctx context.Context, pr *model.PRData, files []model.FileChange, existing []model.Finding) ([]model.Finding, error) {
	var changes []string
	for _, f := range capFiles(files, 10) {
		if f.Patch == "" {
			continue
		}
		changes = append(changes, fmt.Sprintf(
			"\nFile: %s\nChanges: +%d/-%d\nPreview:\n%s\n",
			f.Path, f.Additions, f.Deletions, headLines(f.Patch, 30)))
	}

	existingStr := "None detected by patterns"
	if len(existing) > 0 {
		var lines []string
		for i, r := range existing {
			if i >= 10 {
				break
			}
			lines = append(lines, fmt.Sprintf("- %s: %s (%s)", r.Category, r.Title, r.Severity))
		}
		existingStr = strings.Join(lines, "\n")
	}

	prompt := fmt.Sprintf(riskAnalysisPrompt,
		pr.Metadata.Title,
		orDefault(pr.Metadata.Description, "No description"),
		strings.Join(changes, "\n---\n"),
		existingStr)

	log.Info("analyzing risks with AI")
	response, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	findings, err := parseRiskItems(response)
	if err != nil {
		log.Warnf("failed to parse AI risk response: %v", err)
		return nil, nil
	}
	log.Infof("AI identified %d additional risks", len(findings))
	return findings, nil
}

// FocusAreas generates a prioritized review checklist, at most seven items.
func (c *Client) FocusAreas(ctx context.Context, pr *model.PRData, files []model.FileChange, findings []model.Finding) ([]string, error) {
	var keyFiles []string
	for _, f := range capFiles(files, 15) {
		keyFiles = append(keyFiles, fmt.Sprintf("- %s (+%d/-%d)", f.Path, f.Additions, f.Deletions))
	}

	risksStr := "No significant risks detected"
	if len(findings) > 0 {
		var lines []string
		for i, r := range findings {
			if i >= 10 {
				break
			}
			lines = append(lines, fmt.Sprintf("- %s (%s): %s", r.Category, r.Severity, r.Title))
		}
		risksStr = strings.Join(lines, "\n")
	}

	prompt := fmt.Sprintf(reviewFocusPrompt,
		pr.Metadata.Title,
		orDefault(pr.Metadata.Description, "No description"),
		len(files),
		pr.Metadata.Additions,
		pr.Metadata.Deletions,
		strings.Join(keyFiles, "\n"),
		risksStr)

	log.Info("generating review focus areas with AI")
	response, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseFocusAreas(response), nil
}

func capFiles(files []model.FileChange, n int) []model.FileChange {
	if len(files) > n {
		return files[:n]
	}
	return files
}

func headLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
