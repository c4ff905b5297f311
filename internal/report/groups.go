package report

import "fmt"

// CommitFilter selects which report sections include their commits
type CommitFilter struct {
	Done       bool
	InProgress bool
	Orphan     bool
}

// Any reports whether any commit group is selected
func (f CommitFilter) Any() bool {
	return f.Done || f.InProgress || f.Orphan
}

// ParseCommitGroups parses the --commits flag values. Valid groups are
// "done", "in_progress", "orphan" and "all"; "all" expands to every group.
func ParseCommitGroups(groups []string) (CommitFilter, error) {
	var filter CommitFilter
	for _, group := range groups {
		switch group {
		case "all":
			return CommitFilter{Done: true, InProgress: true, Orphan: true}, nil
		case "done":
			filter.Done = true
		case "in_progress":
			filter.InProgress = true
		case "orphan":
			filter.Orphan = true
		default:
			return CommitFilter{}, fmt.Errorf("invalid commit group %q: must be one of done, in_progress, orphan, all", group)
		}
	}
	return filter, nil
}
