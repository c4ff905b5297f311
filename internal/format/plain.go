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

// commitGroup collects the commits sharing one cleaned message, in the
// order they first appeared
type commitGroup struct {
	Message string
	Commits []github.Commit
}

// groupByMessage merges commits with identical cleaned messages so a fixup
// chain renders as one line with several SHAs
func groupByMessage(pattern *regexp.Regexp, commits []github.Commit) []commitGroup {
	var groups []commitGroup
	index := make(map[string]int)

	for _, commit := range commits {
		message := report.CleanMessage(pattern, commit.Message)
		if message == "" {
			message = commit.Message
		}
		if i, ok := index[message]; ok {
			groups[i].Commits = append(groups[i].Commits, commit)
			continue
		}
		index[message] = len(groups)
		groups = append(groups, commitGroup{Message: message, Commits: []github.Commit{commit}})
	}

	return groups
}

// renderCommitsPlain renders commits as indented sub-lines under an issue
func renderCommitsPlain(pattern *regexp.Regexp, commits []github.Commit, addLinks bool) []string {
	var lines []string
	for _, group := range groupByMessage(pattern, commits) {
		refs := make([]string, 0, len(group.Commits))
		for _, c := range group.Commits {
			if addLinks {
				refs = append(refs, fmt.Sprintf("%s %s", c.ShortSHA(), c.URL))
			} else {
				refs = append(refs, c.ShortSHA())
			}
		}
		lines = append(lines, fmt.Sprintf("  ↳ %s (%s)", group.Message, strings.Join(refs, ", ")))
	}
	return lines
}

// plainIssueLine renders a single issue bullet
func plainIssueLine(ticket, title, url, suffix string, addLinks bool) string {
	line := "• " + ticket
	if title != "" {
		line += " — " + title
	}
	line += suffix
	if addLinks && url != "" {
		line += " " + url
	}
	return line
}

// RenderPlain builds the plain-text standup report printed to the terminal
// and copied to the clipboard. The backlog is deliberately left out; it is
// rendered separately for terminal-only display.
func RenderPlain(r report.Report, today time.Time, addLinks bool, filter report.CommitFilter) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Daily standup — %s", derive.FormatDate(today)), "")

	lines = append(lines, SectionDone)
	if len(r.Done) > 0 {
		for _, e := range r.Done {
			lines = append(lines, plainIssueLine(e.Ticket, e.Title, e.URL, "", addLinks))
			if filter.Done {
				lines = append(lines, renderCommitsPlain(r.Pattern, r.DoneCommits[e.Ticket], addLinks)...)
			}
		}
	} else {
		lines = append(lines, "• —")
	}

	if len(r.Review) > 0 {
		lines = append(lines, "", SectionReview)
		for _, e := range r.Review {
			lines = append(lines, plainIssueLine(e.Ticket, e.Title, e.URL, "", addLinks))
			if filter.Done {
				lines = append(lines, renderCommitsPlain(r.Pattern, r.DoneCommits[e.Ticket], addLinks)...)
			}
		}
	}

	lines = append(lines, "", SectionInProgress)
	if len(r.WorkedOn) > 0 {
		for _, item := range r.WorkedOn {
			lines = append(lines, plainIssueLine(item.Ticket, item.Title, item.URL, "", addLinks))
			if filter.InProgress {
				lines = append(lines, renderCommitsPlain(r.Pattern, item.Commits, addLinks)...)
			}
		}
	} else {
		lines = append(lines, "• —")
	}

	if filter.Orphan && len(r.OrphanCommits) > 0 {
		lines = append(lines, "", SectionOrphanCommits)
		lines = append(lines, renderCommitsPlain(r.Pattern, r.OrphanCommits, addLinks)...)
	}

	lines = append(lines, "", SectionBlocked)
	if len(r.Blocked) > 0 {
		for _, e := range r.Blocked {
			lines = append(lines, plainIssueLine(e.Ticket, e.Title, e.URL, " blocked", addLinks))
		}
	} else {
		lines = append(lines, "• No")
	}

	lines = append(lines, "", SectionNeedTasks, "• Need tasks: no")

	return strings.Join(lines, "\n")
}

// RenderBacklog renders the backlog as a terminal-only trailer; it is never
// copied to the clipboard or sent to Slack as part of the main body
func RenderBacklog(entries []classify.Entry, addLinks bool) string {
	if len(entries) == 0 {
		return ""
	}

	sorted := append([]classify.Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Ticket < sorted[j].Ticket })

	lines := []string{"--- Backlog (assigned, not started) ---"}
	for _, e := range sorted {
		lines = append(lines, plainIssueLine(e.Ticket, e.Title, e.URL, "", addLinks))
	}
	return strings.Join(lines, "\n")
}

// ClipboardBody strips the "Daily standup — ..." header and the following
// blank line, so the clipboard holds just the report body
func ClipboardBody(rendered string) string {
	lines := strings.Split(rendered, "\n")
	if len(lines) <= 2 {
		return rendered
	}
	return strings.Join(lines[2:], "\n")
}
