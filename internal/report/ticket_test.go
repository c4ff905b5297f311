package report

import (
	"reflect"
	"testing"

	"github.com/dmironov/standup-cli/internal/github"
)

func TestExtractTickets(t *testing.T) {
	pattern := NewTicketPattern("DATA")

	tests := []struct {
		name     string
		message  string
		expected []string
	}{
		{
			name:     "single ticket",
			message:  "DATA-123 - add retry to loader",
			expected: []string{"DATA-123"},
		},
		{
			name:     "lowercase ticket is uppercased",
			message:  "data-42: fix flaky test",
			expected: []string{"DATA-42"},
		},
		{
			name:     "multiple tickets deduplicated in order",
			message:  "DATA-1 DATA-2 data-1 follow-up",
			expected: []string{"DATA-1", "DATA-2"},
		},
		{
			name:     "no ticket reference",
			message:  "bump dependencies",
			expected: nil,
		},
		{
			name:     "prefix must match whole word",
			message:  "MYDATA-5 does not count",
			expected: nil,
		},
		{
			name:     "other project prefixes ignored",
			message:  "OPS-7 rotate credentials",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTickets(pattern, tt.message)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNewTicketPattern_EscapesPrefix(t *testing.T) {
	// A prefix containing regexp metacharacters must be treated literally
	pattern := NewTicketPattern("A.B")
	if got := ExtractTickets(pattern, "AxB-1 nope"); got != nil {
		t.Errorf("expected no match for AxB-1, got %v", got)
	}
	if got := ExtractTickets(pattern, "A.B-1 yes"); len(got) != 1 || got[0] != "A.B-1" {
		t.Errorf("expected A.B-1, got %v", got)
	}
}

func TestCleanMessage(t *testing.T) {
	pattern := NewTicketPattern("DATA")

	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{
			name:     "strips ticket and dash separator",
			message:  "DATA-123 - add retry to loader",
			expected: "add retry to loader",
		},
		{
			name:     "strips ticket and colon separator",
			message:  "DATA-123: add retry to loader",
			expected: "add retry to loader",
		},
		{
			name:     "strips en dash separator",
			message:  "DATA-9 – tidy up config",
			expected: "tidy up config",
		},
		{
			name:     "message without ticket unchanged",
			message:  "bump dependencies",
			expected: "bump dependencies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanMessage(pattern, tt.message); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTitleFromCommits(t *testing.T) {
	commits := []github.Commit{
		{Message: "DATA-77 -   "},
		{Message: "DATA-77 - implement incremental sync"},
	}

	if got := TitleFromCommits("DATA-77", commits); got != "implement incremental sync" {
		t.Errorf("expected title from second commit, got %q", got)
	}

	if got := TitleFromCommits("DATA-77", nil); got != "" {
		t.Errorf("expected empty title for no commits, got %q", got)
	}
}

func TestParseCommitGroups(t *testing.T) {
	tests := []struct {
		name      string
		groups    []string
		expected  CommitFilter
		expectErr bool
	}{
		{
			name:     "empty selection",
			groups:   nil,
			expected: CommitFilter{},
		},
		{
			name:     "single group",
			groups:   []string{"done"},
			expected: CommitFilter{Done: true},
		},
		{
			name:     "combined groups",
			groups:   []string{"in_progress", "orphan"},
			expected: CommitFilter{InProgress: true, Orphan: true},
		},
		{
			name:     "all expands to every group",
			groups:   []string{"all"},
			expected: CommitFilter{Done: true, InProgress: true, Orphan: true},
		},
		{
			name:      "invalid group",
			groups:    []string{"everything"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommitGroups(tt.groups)
			if tt.expectErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}
