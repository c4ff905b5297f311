package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/dmironov/standup-cli/internal/classify"
	"github.com/dmironov/standup-cli/internal/config"
	"github.com/dmironov/standup-cli/internal/derive"
	"github.com/dmironov/standup-cli/internal/format"
	"github.com/dmironov/standup-cli/internal/github"
	"github.com/dmironov/standup-cli/internal/plane"
	"github.com/dmironov/standup-cli/internal/report"
	"github.com/dmironov/standup-cli/internal/slack"
)

var (
	dateArg      string
	addLinks     bool
	sendSlack    bool
	commitGroups []string
	noClipboard  bool
	verbose      bool
	quiet        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the daily standup report",
	Long: `Generate fetches your assigned Plane issues, buckets them by state, scans
the organization's GitHub repositories for your commits on the reporting day,
and merges commits with issues by ticket references in commit messages.

The plain-text report is printed to stdout and copied to the clipboard
(without the header line). With --slack, an mrkdwn version is sent as a DM
via the configured bot.

The reporting day defaults to the previous working day: yesterday, or last
Friday on Mondays (the range then covers the whole weekend).`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&dateArg, "date", "", "Working day to report on (YYYY-MM-DD, default: previous working day)")
	generateCmd.Flags().BoolVar(&addLinks, "add-links", false, "Include URLs to Plane issues and GitHub commits in the output")
	generateCmd.Flags().BoolVar(&sendSlack, "slack", false, "Send the report as a Slack DM (requires SLACK_BOT_TOKEN and SLACK_USER_ID)")
	generateCmd.Flags().StringSliceVar(&commitGroups, "commits", nil, "Show commits for groups: done, in_progress, orphan, all (combinable)")
	generateCmd.Flags().BoolVar(&noClipboard, "no-clipboard", false, "Skip copying the report to the clipboard")
	generateCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable verbose progress output")
	generateCmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress all progress output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	filter, err := report.ParseCommitGroups(commitGroups)
	if err != nil {
		return err
	}

	cfg, err := config.FromEnvAndFlags(addLinks, sendSlack, noClipboard, verbose, quiet)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if cfg.GitHubToken != "" && (cfg.GitHubOrg == "" || cfg.GitHubUsername == "") {
		return errors.New("configuration error: GITHUB_ORG and GITHUB_USERNAME are required when GITHUB_TOKEN is set")
	}

	logger := setupLogger(cfg)

	// Resolve the reporting window. With an explicit --date the range is
	// anchored on that day; otherwise the previous working day relative to
	// today, widening to the whole weekend on Mondays.
	today := derive.Day(time.Now())
	var workday time.Time
	rangeRef := today
	if dateArg != "" {
		workday, err = derive.ParseDateArg(dateArg)
		if err != nil {
			return err
		}
		rangeRef = workday
	} else {
		workday = derive.PrevWorkday(today)
	}
	from, to := derive.WorkdayRange(workday, rangeRef)
	logger.Info("Reporting period", "period", derive.FormatPeriod(from, to))

	planeClient := plane.NewClient(cfg.PlaneBaseURL, cfg.PlaneAPIKey, cfg.PlaneWorkspaceSlug)

	me, err := planeClient.Me(ctx)
	if err != nil {
		return fmt.Errorf("Plane API error: %w", err)
	}
	logger.Info("Authenticated", "user", me.Name(), "id", me.ID)

	var projects []plane.Project
	if cfg.PlaneProjectID != "" {
		project, err := planeClient.Project(ctx, cfg.PlaneProjectID)
		if err != nil {
			return fmt.Errorf("Plane API error: %w", err)
		}
		projects = []plane.Project{project}
	} else {
		projects, err = planeClient.Projects(ctx)
		if err != nil {
			return fmt.Errorf("Plane API error: %w", err)
		}
	}

	// Classify assigned issues across projects. A failing project is
	// skipped rather than failing the whole report.
	var buckets classify.Buckets
	lookup := make(map[string]classify.Entry)
	for _, project := range projects {
		logger.Info("Project", "name", project.Name)

		states, err := planeClient.States(ctx, project.ID)
		if err != nil {
			logger.Warn("Skipping project", "project", project.ID, "error", err)
			continue
		}
		issues, err := planeClient.AssignedIssues(ctx, project.ID, me.ID)
		if err != nil {
			logger.Warn("Skipping project", "project", project.ID, "error", err)
			continue
		}

		for _, issue := range issues {
			entry := classify.Entry{
				Ticket: plane.Identifier(project, issue),
				Title:  issue.Title(),
				URL:    planeClient.IssueURL(project.ID, issue.ID),
			}
			lookup[entry.Ticket] = entry

			bucket := classify.Classify(issue, states[issue.StateID], from, to)
			buckets.Add(bucket, entry)
			logger.Debug("Classified issue", "ticket", entry.Ticket, "bucket", bucket.String())
		}
	}

	// Scan GitHub commits, grouped by ticket reference
	pattern := report.NewTicketPattern(cfg.TicketPrefix)
	var byTicket map[string][]github.Commit
	var orphans []github.Commit
	if cfg.GitHubToken != "" {
		logger.Info("Fetching GitHub commits...")
		ghClient := github.New(cfg.GitHubToken)
		since, until := derive.DateWindow(from, to)
		commits, err := github.ListAuthorCommits(ctx, ghClient, cfg.GitHubOrg, cfg.GitHubUsername, since, until, logger)
		if err != nil {
			return fmt.Errorf("GitHub API error: %w", err)
		}
		byTicket, orphans = report.GroupByTicket(pattern, commits)
		logger.Info("Commits grouped", "tickets", len(byTicket), "orphans", len(orphans))
	} else {
		logger.Info("GITHUB_TOKEN not set, skipping commit scan")
	}

	rep := report.Build(pattern, buckets, byTicket, orphans, lookup, planeClient.BrowseURL)

	rendered := format.RenderPlain(rep, today, cfg.AddLinks, filter)
	fmt.Println()
	fmt.Println(rendered)

	// Clipboard is best-effort: headless hosts have none
	if !cfg.NoClipboard {
		if err := clipboard.WriteAll(format.ClipboardBody(rendered)); err != nil {
			logger.Warn("Failed to copy report to clipboard", "error", err)
		} else {
			logger.Info("Copied to clipboard")
		}
	}

	if cfg.Slack {
		text := format.RenderSlack(rep, today, filter)
		if err := slack.New(cfg.SlackBotToken, cfg.SlackUserID).SendDM(ctx, text); err != nil {
			return fmt.Errorf("failed to send to Slack: %w", err)
		}
		logger.Info("Sent to Slack")
	}

	// Backlog goes to the terminal only, after the main report
	if backlog := format.RenderBacklog(rep.Backlog, cfg.AddLinks); backlog != "" {
		fmt.Println()
		fmt.Println(backlog)
	}

	return nil
}
