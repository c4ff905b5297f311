package classify

import (
	"strings"
	"time"

	"github.com/dmironov/standup-cli/internal/derive"
	"github.com/dmironov/standup-cli/internal/plane"
)

// Bucket is the standup section an issue is reported under
type Bucket int

const (
	// Skipped means the issue is excluded from the report entirely
	Skipped Bucket = iota
	// Backlog covers assigned but not started issues, regardless of update date
	Backlog
	// Done covers issues completed within the reporting window
	Done
	// Review covers issues moved to a review state within the window
	Review
	// Blocked covers issues carrying a "blocked" label
	Blocked
	// Active covers started issues updated within the window
	Active
)

// String returns the bucket name for logging
func (b Bucket) String() string {
	switch b {
	case Backlog:
		return "backlog"
	case Done:
		return "done"
	case Review:
		return "review"
	case Blocked:
		return "blocked"
	case Active:
		return "active"
	default:
		return "skipped"
	}
}

// Entry is a classified issue ready for reporting
type Entry struct {
	Ticket string // e.g. DATA-123
	Title  string
	URL    string
}

// Buckets groups classified entries by standup section.
// Each issue lands in at most one bucket.
type Buckets struct {
	Done    []Entry
	Review  []Entry
	Blocked []Entry
	Active  []Entry
	Backlog []Entry
}

// Add appends an entry to the matching bucket. Skipped entries are dropped.
func (b *Buckets) Add(bucket Bucket, entry Entry) {
	switch bucket {
	case Backlog:
		b.Backlog = append(b.Backlog, entry)
	case Done:
		b.Done = append(b.Done, entry)
	case Review:
		b.Review = append(b.Review, entry)
	case Blocked:
		b.Blocked = append(b.Blocked, entry)
	case Active:
		b.Active = append(b.Active, entry)
	}
}

// Classify buckets an issue using a fixed rule precedence:
//
//  1. backlog/unstarted state group → Backlog, regardless of update date
//  2. not updated within [from, to] → Skipped
//  3. completed state group → Done
//  4. state name containing "review" → Review
//  5. "blocked" label → Blocked
//  6. started state group → Active
//  7. everything else → Skipped
func Classify(issue plane.Issue, state plane.State, from, to time.Time) Bucket {
	if state.Group == "backlog" || state.Group == "unstarted" {
		return Backlog
	}

	if !updatedInRange(issue, from, to) {
		return Skipped
	}

	if state.Group == "completed" {
		return Done
	}
	if strings.Contains(strings.ToLower(state.Name), "review") {
		return Review
	}
	if hasBlockedLabel(issue) {
		return Blocked
	}
	if state.Group == "started" {
		return Active
	}

	return Skipped
}

// updatedInRange reports whether the issue's last update date falls within
// the [from, to] date range. Issues with missing or unparseable timestamps
// are treated as out of range.
func updatedInRange(issue plane.Issue, from, to time.Time) bool {
	updated, ok := issue.UpdatedDate()
	if !ok {
		return false
	}
	updated = derive.Day(updated)
	return !updated.Before(derive.Day(from)) && !updated.After(derive.Day(to))
}

// hasBlockedLabel reports whether the issue carries a "blocked" label
func hasBlockedLabel(issue plane.Issue) bool {
	for _, name := range issue.LabelNames() {
		if strings.EqualFold(name, "blocked") {
			return true
		}
	}
	return false
}
