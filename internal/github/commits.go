package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
)

// Commit represents a single commit authored in the reporting window
type Commit struct {
	SHA        string
	Message    string // first line of the commit message
	URL        string
	Repo       string
	AuthoredAt time.Time
}

// ShortSHA returns the abbreviated commit hash
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// ListAuthorCommits scans the default branch of every repository in the
// organization for commits by author within [since, until]. Merge commits
// are skipped. Repositories that cannot be listed (empty, archived, access
// denied) are logged and skipped, matching the fact that an org scan always
// hits a few repos the token cannot read.
func ListAuthorCommits(ctx context.Context, client *github.Client, org, author string, since, until time.Time, logger *slog.Logger) ([]Commit, error) {
	repos, err := listOrgRepos(ctx, client, org)
	if err != nil {
		return nil, err
	}

	logger.Info("Scanning org repositories for commits",
		"org", org,
		"repos", len(repos),
		"author", author,
		"since", since.Format("2006-01-02"),
		"until", until.Format("2006-01-02"))

	var all []Commit
	for _, repo := range repos {
		commits, err := listRepoCommits(ctx, client, org, repo.GetName(), author, since, until)
		if err != nil {
			logger.Debug("Skipping repository", "repo", repo.GetName(), "error", err)
			continue
		}
		all = append(all, commits...)
	}

	return all, nil
}

// listOrgRepos returns all repositories in the organization
func listOrgRepos(ctx context.Context, client *github.Client, org string) ([]*github.Repository, error) {
	opts := &github.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var repos []*github.Repository
	for {
		page, resp, err := client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, enhanceOrgError(err, org)
		}
		repos = append(repos, page...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return repos, nil
}

// listRepoCommits returns non-merge default-branch commits by author within
// the window for a single repository
func listRepoCommits(ctx context.Context, client *github.Client, org, repo, author string, since, until time.Time) ([]Commit, error) {
	opts := &github.CommitsListOptions{
		Author:      author,
		Since:       since,
		Until:       until,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var commits []Commit
	for {
		page, resp, err := client.Repositories.ListCommits(ctx, org, repo, opts)
		if err != nil {
			return nil, err
		}

		for _, rc := range page {
			message := firstLine(rc.GetCommit().GetMessage())
			if strings.HasPrefix(message, "Merge ") {
				continue
			}
			commits = append(commits, Commit{
				SHA:        rc.GetSHA(),
				Message:    message,
				URL:        rc.GetHTMLURL(),
				Repo:       repo,
				AuthoredAt: rc.GetCommit().GetAuthor().GetDate().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

// firstLine returns the first line of a commit message
func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}
	return message
}

// enhanceOrgError maps common GitHub API error conditions on the org listing
// to helpful error messages
func enhanceOrgError(err error, org string) error {
	if ghErr, ok := err.(*github.ErrorResponse); ok {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("GitHub API authentication failed. Please check your GITHUB_TOKEN is valid and has the repo and read:org scopes")

		case http.StatusForbidden:
			if strings.Contains(strings.ToLower(ghErr.Message), "sso") ||
				strings.Contains(strings.ToLower(ghErr.Message), "organization") {
				return fmt.Errorf("GitHub API access to org %s denied. Your token may require SSO authorization. Visit: https://github.com/settings/tokens and authorize your token for SSO", org)
			}
			return fmt.Errorf("GitHub API access to org %s denied. Your token may not have sufficient permissions", org)

		case http.StatusNotFound:
			return fmt.Errorf("GitHub organization %s not found. This could mean the org name is wrong or your token lacks read:org", org)
		}
	}

	if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "deadline exceeded") {
		return fmt.Errorf("GitHub API request timed out listing repos for %s. Please check your network connection and try again", org)
	}

	return fmt.Errorf("failed to list repositories for %s: %w", org, err)
}
