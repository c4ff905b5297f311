package format

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dmironov/standup-cli/internal/classify"
	"github.com/dmironov/standup-cli/internal/derive"
	"github.com/dmironov/standup-cli/internal/github"
	"github.com/dmironov/standup-cli/internal/report"
)

// boldHeader wraps the section header text after the emoji shortcode in
// Slack bold markers
func boldHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 {
		return fmt.Sprintf("%s *%s*", parts[0], parts[1])
	}
	return fmt.Sprintf("*%s*", header)
}

// slackIssueLine renders a single issue bullet with an mrkdwn link
func slackIssueLine(ticket, title, url, suffix string) string {
	linked := ticket
	if url != "" {
		linked = fmt.Sprintf("<%s|%s>", url, ticket)
	}
	line := "• " + linked
	if title != "" {
		line += " — " + title
	}
	return line + suffix
}

// renderCommitsSlack renders commits as indented mrkdwn sub-lines with
// linked SHAs
func renderCommitsSlack(pattern *regexp.Regexp, commits []github.Commit) []string {
	var lines []string
	for _, group := range groupByMessage(pattern, commits) {
		refs := make([]string, 0, len(group.Commits))
		for _, c := range group.Commits {
			refs = append(refs, fmt.Sprintf("<%s|%s>", c.URL, c.ShortSHA()))
		}
		lines = append(lines, fmt.Sprintf("  ↳ %s (%s)", group.Message, strings.Join(refs, ", ")))
	}
	return lines
}

// RenderSlack builds the Slack mrkdwn report: the same sections as the plain
// report plus the backlog after a divider and, when in-progress commits are
// shown, a section for commits whose ticket has no Plane issue.
func RenderSlack(r report.Report, today time.Time, filter report.CommitFilter) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("*Daily standup — %s*", derive.FormatDate(today)), "")

	lines = append(lines, boldHeader(SectionDone))
	if len(r.Done) > 0 {
		for _, e := range r.Done {
			lines = append(lines, slackIssueLine(e.Ticket, e.Title, e.URL, ""))
			if filter.Done {
				lines = append(lines, renderCommitsSlack(r.Pattern, r.DoneCommits[e.Ticket])...)
			}
		}
	} else {
		lines = append(lines, "• —")
	}

	if len(r.Review) > 0 {
		lines = append(lines, "", boldHeader(SectionReview))
		for _, e := range r.Review {
			lines = append(lines, slackIssueLine(e.Ticket, e.Title, e.URL, ""))
			if filter.Done {
				lines = append(lines, renderCommitsSlack(r.Pattern, r.DoneCommits[e.Ticket])...)
			}
		}
	}

	lines = append(lines, "", boldHeader(SectionInProgress))
	known := 0
	for _, item := range r.WorkedOn {
		// Tickets without a Plane issue get their own section below when
		// in-progress commits are shown
		if !item.Known && filter.InProgress {
			continue
		}
		known++
		lines = append(lines, slackIssueLine(item.Ticket, item.Title, item.URL, ""))
		if filter.InProgress {
			lines = append(lines, renderCommitsSlack(r.Pattern, item.Commits)...)
		}
	}
	if known == 0 {
		lines = append(lines, "• —")
	}

	if filter.InProgress {
		if unknown := r.UnknownWorked(); len(unknown) > 0 {
			lines = append(lines, "", boldHeader(SectionUnknownTickets))
			for _, item := range unknown {
				for _, commitLine := range renderCommitsSlack(r.Pattern, item.Commits) {
					lines = append(lines, fmt.Sprintf("  %s:%s", item.Ticket, strings.TrimLeft(commitLine, " ")))
				}
			}
		}
	}

	if filter.Orphan && len(r.OrphanCommits) > 0 {
		lines = append(lines, "", boldHeader(SectionOrphanCommits))
		lines = append(lines, renderCommitsSlack(r.Pattern, r.OrphanCommits)...)
	}

	lines = append(lines, "", boldHeader(SectionBlocked))
	if len(r.Blocked) > 0 {
		for _, e := range r.Blocked {
			lines = append(lines, slackIssueLine(e.Ticket, e.Title, e.URL, " — blocked"))
		}
	} else {
		lines = append(lines, "• No")
	}

	lines = append(lines, "", boldHeader(SectionNeedTasks), "• Need tasks: no")

	if len(r.Backlog) > 0 {
		lines = append(lines, "", "---", boldHeader(SectionBacklog))
		entries := append([]classify.Entry(nil), r.Backlog...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Ticket < entries[j].Ticket })
		for _, e := range entries {
			lines = append(lines, slackIssueLine(e.Ticket, e.Title, e.URL, ""))
		}
	}

	return strings.Join(lines, "\n")
}
