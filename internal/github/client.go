// Package github wraps the GitHub API operations prsift needs: fetching a
// pull request's metadata and file diffs, and posting or updating the
// analysis comment.
package github

import (
	"context"
	"fmt"
	"strings"

	gogithub "github.com/google/go-github/v47/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/sprite-ai/prsift/internal/model"
)

// commentMarker identifies the bot's own comment so reruns update it in
// place instead of stacking new comments.
const commentMarker = "<!-- prsift-comment -->"

// Client talks to one repository.
type Client struct {
	gh    *gogithub.Client
	owner string
	repo  string
}

// New builds a Client for the given token and "owner/repo" slug.
func New(ctx context.Context, token, repository string) (*Client, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("repository must be in owner/repo format, got %q", repository)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := gogithub.NewClient(oauth2.NewClient(ctx, ts))

	log.Infof("connected to repository: %s", repository)
	return &Client{gh: client, owner: owner, repo: repo}, nil
}

// PRMetadata fetches the pull request header.
func (c *Client) PRMetadata(ctx context.Context, number int) (model.PRMetadata, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return model.PRMetadata{}, fmt.Errorf("fetching PR #%d: %w", number, err)
	}

	meta := convertPR(pr)
	log.Infof("fetched metadata for PR #%d: %s", number, meta.Title)
	return meta, nil
}

// ChangedFiles fetches every changed file in the pull request, following
// pagination.
func (c *Client) ChangedFiles(ctx context.Context, number int) ([]model.FileChange, error) {
	opts := &gogithub.ListOptions{PerPage: 100}
	var files []model.FileChange

	for {
		page, resp, err := c.gh.PullRequests.ListFiles(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("fetching files for PR #%d: %w", number, err)
		}
		for _, f := range page {
			files = append(files, convertFile(f))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Infof("fetched %d changed files for PR #%d", len(files), number)
	return files, nil
}

// PRData fetches metadata and files together.
func (c *Client) PRData(ctx context.Context, number int) (*model.PRData, error) {
	meta, err := c.PRMetadata(ctx, number)
	if err != nil {
		return nil, err
	}
	files, err := c.ChangedFiles(ctx, number)
	if err != nil {
		return nil, err
	}
	return &model.PRData{Metadata: meta, Files: files}, nil
}

// findBotComment returns the ID of an existing marker comment, or 0.
// Lookup failures are soft; the caller posts a fresh comment instead.
func (c *Client) findBotComment(ctx context.Context, number int) int64 {
	opts := &gogithub.IssueListCommentsOptions{
		ListOptions: gogithub.ListOptions{PerPage: 100},
	}

	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			log.Warnf("failed to search for existing comments: %v", err)
			return 0
		}
		for _, comment := range comments {
			if strings.Contains(comment.GetBody(), commentMarker) {
				log.Infof("found existing bot comment #%d", comment.GetID())
				return comment.GetID()
			}
		}
		if resp.NextPage == 0 {
			return 0
		}
		opts.Page = resp.NextPage
	}
}

// PostOrUpdateComment writes the analysis comment, editing the previous
// one when present. The marker is prepended automatically.
func (c *Client) PostOrUpdateComment(ctx context.Context, number int, body string) error {
	withMarker := commentMarker + "\n" + body

	if id := c.findBotComment(ctx, number); id != 0 {
		log.Infof("updating existing comment on PR #%d", number)
		_, _, err := c.gh.Issues.EditComment(ctx, c.owner, c.repo, id, &gogithub.IssueComment{
			Body: gogithub.String(withMarker),
		})
		if err != nil {
			return fmt.Errorf("updating comment #%d: %w", id, err)
		}
		return nil
	}

	log.Infof("creating new comment on PR #%d", number)
	_, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, number, &gogithub.IssueComment{
		Body: gogithub.String(withMarker),
	})
	if err != nil {
		return fmt.Errorf("posting comment on PR #%d: %w", number, err)
	}
	return nil
}

func convertPR(pr *gogithub.PullRequest) model.PRMetadata {
	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}

	return model.PRMetadata{
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		Description:  pr.GetBody(),
		Author:       pr.GetUser().GetLogin(),
		Labels:       labels,
		BaseBranch:   pr.GetBase().GetRef(),
		HeadBranch:   pr.GetHead().GetRef(),
		CreatedAt:    pr.GetCreatedAt(),
		UpdatedAt:    pr.GetUpdatedAt(),
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
		ChangedFiles: pr.GetChangedFiles(),
	}
}

func convertFile(f *gogithub.CommitFile) model.FileChange {
	return model.FileChange{
		Path:         f.GetFilename(),
		Status:       f.GetStatus(),
		Additions:    f.GetAdditions(),
		Deletions:    f.GetDeletions(),
		Changes:      f.GetChanges(),
		Patch:        f.GetPatch(),
		PreviousPath: f.GetPreviousFilename(),
	}
}
