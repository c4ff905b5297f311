package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmironov/standup-cli/internal/github"
)

// NewTicketPattern compiles the commit-message matcher for a ticket prefix.
// For prefix "DATA" it matches DATA-123 anywhere in a message,
// case-insensitively.
func NewTicketPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?i)\b(%s-\d+)\b`, regexp.QuoteMeta(prefix)))
}

// ExtractTickets returns the uppercased ticket IDs referenced in a commit
// message, deduplicated in order of appearance. An empty result marks the
// commit as an orphan.
func ExtractTickets(pattern *regexp.Regexp, message string) []string {
	var tickets []string
	seen := make(map[string]bool)

	for _, match := range pattern.FindAllString(message, -1) {
		ticket := strings.ToUpper(match)
		if seen[ticket] {
			continue
		}
		seen[ticket] = true
		tickets = append(tickets, ticket)
	}

	return tickets
}

// CleanMessage strips ticket references and leading separators from a commit
// message, leaving the human-readable part
func CleanMessage(pattern *regexp.Regexp, message string) string {
	cleaned := pattern.ReplaceAllString(message, "")
	cleaned = strings.TrimLeft(cleaned, " -–—:")
	return strings.TrimSpace(cleaned)
}

// TitleFromCommits recovers a human-readable title for a ticket that has
// commits but no Plane issue, by stripping the "TICKET - " prefix from the
// first commit message that yields a non-empty remainder
func TitleFromCommits(ticket string, commits []github.Commit) string {
	prefix := regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(ticket) + `\s*[-–—:]\s*`)
	for _, c := range commits {
		cleaned := strings.TrimSpace(prefix.ReplaceAllString(c.Message, ""))
		if cleaned != "" {
			return cleaned
		}
	}
	return ""
}
