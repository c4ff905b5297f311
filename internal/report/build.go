package report

import (
	"regexp"
	"sort"

	"github.com/dmironov/standup-cli/internal/classify"
	"github.com/dmironov/standup-cli/internal/github"
)

// WorkedItem is an in-progress line: a ticket with its commits for the
// reporting window. Known is false when the ticket has commits but no Plane
// issue behind it.
type WorkedItem struct {
	Ticket  string
	Title   string
	URL     string
	Known   bool
	Commits []github.Commit
}

// Report is the assembled standup: classified issues merged with the
// commits that reference them
type Report struct {
	Done    []classify.Entry
	Review  []classify.Entry
	Blocked []classify.Entry
	Backlog []classify.Entry

	// WorkedOn holds active tickets ordered by ticket ID, with commits
	// attached where the window produced any
	WorkedOn []WorkedItem

	// DoneCommits maps Done/Review tickets to their commits
	DoneCommits map[string][]github.Commit

	// OrphanCommits had no parsable ticket reference
	OrphanCommits []github.Commit

	// Pattern is the ticket matcher used to build the report; renderers
	// use it to strip references out of commit messages
	Pattern *regexp.Regexp
}

// UnknownWorked returns the worked-on items that have no Plane issue
func (r Report) UnknownWorked() []WorkedItem {
	var unknown []WorkedItem
	for _, item := range r.WorkedOn {
		if !item.Known {
			unknown = append(unknown, item)
		}
	}
	return unknown
}

// GroupByTicket splits commits into per-ticket groups and orphans.
// A commit referencing several tickets is attached to each of them.
// Groups and orphans are deduplicated by SHA and sorted by authoring time.
func GroupByTicket(pattern *regexp.Regexp, commits []github.Commit) (map[string][]github.Commit, []github.Commit) {
	byTicket := make(map[string][]github.Commit)
	seenByTicket := make(map[string]map[string]bool)
	var orphans []github.Commit
	seenOrphans := make(map[string]bool)

	for _, commit := range commits {
		tickets := ExtractTickets(pattern, commit.Message)
		if len(tickets) == 0 {
			if !seenOrphans[commit.SHA] {
				seenOrphans[commit.SHA] = true
				orphans = append(orphans, commit)
			}
			continue
		}
		for _, ticket := range tickets {
			if seenByTicket[ticket] == nil {
				seenByTicket[ticket] = make(map[string]bool)
			}
			if seenByTicket[ticket][commit.SHA] {
				continue
			}
			seenByTicket[ticket][commit.SHA] = true
			byTicket[ticket] = append(byTicket[ticket], commit)
		}
	}

	for _, group := range byTicket {
		sortCommits(group)
	}
	sortCommits(orphans)

	return byTicket, orphans
}

// Build merges classified issue buckets with commits grouped by ticket.
//
// Commits for Done/Review tickets land in DoneCommits. Every other ticket
// with commits becomes a WorkedOn line: backed by the Active issue when one
// exists, by any other known issue otherwise, or synthesized from the commit
// messages as a last resort. Active issues without commits are kept as
// WorkedOn lines too.
func Build(pattern *regexp.Regexp, buckets classify.Buckets,
	byTicket map[string][]github.Commit, orphans []github.Commit,
	lookup map[string]classify.Entry, browseURL func(string) string) Report {

	r := Report{
		Done:          buckets.Done,
		Review:        buckets.Review,
		Blocked:       buckets.Blocked,
		Backlog:       buckets.Backlog,
		DoneCommits:   make(map[string][]github.Commit),
		OrphanCommits: orphans,
		Pattern:       pattern,
	}

	doneIDs := make(map[string]bool)
	for _, e := range buckets.Done {
		doneIDs[e.Ticket] = true
	}
	for _, e := range buckets.Review {
		doneIDs[e.Ticket] = true
	}

	active := make(map[string]classify.Entry, len(buckets.Active))
	for _, e := range buckets.Active {
		active[e.Ticket] = e
	}

	for _, ticket := range sortedKeys(byTicket) {
		commits := byTicket[ticket]

		if doneIDs[ticket] {
			r.DoneCommits[ticket] = commits
			continue
		}

		item := WorkedItem{Ticket: ticket, Known: true, Commits: commits}
		if entry, ok := active[ticket]; ok {
			delete(active, ticket)
			item.Title = entry.Title
			item.URL = entry.URL
		} else if entry, ok := lookup[ticket]; ok {
			item.Title = entry.Title
			item.URL = entry.URL
		} else {
			item.Known = false
			item.Title = TitleFromCommits(ticket, commits)
			item.URL = browseURL(ticket)
		}
		r.WorkedOn = append(r.WorkedOn, item)
	}

	// Active issues without commits still count as worked on
	for _, entry := range active {
		r.WorkedOn = append(r.WorkedOn, WorkedItem{
			Ticket: entry.Ticket,
			Title:  entry.Title,
			URL:    entry.URL,
			Known:  true,
		})
	}

	sort.Slice(r.WorkedOn, func(i, j int) bool {
		return r.WorkedOn[i].Ticket < r.WorkedOn[j].Ticket
	})

	return r
}

// sortCommits orders commits by authoring time, then SHA for stability
func sortCommits(commits []github.Commit) {
	sort.Slice(commits, func(i, j int) bool {
		if !commits[i].AuthoredAt.Equal(commits[j].AuthoredAt) {
			return commits[i].AuthoredAt.Before(commits[j].AuthoredAt)
		}
		return commits[i].SHA < commits[j].SHA
	})
}

// sortedKeys returns the map keys in ascending order
func sortedKeys(m map[string][]github.Commit) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
