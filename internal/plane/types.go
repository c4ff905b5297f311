package plane

import (
	"encoding/json"
	"fmt"
	"time"
)

// Member represents a Plane workspace member
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// Name returns the best human-readable name for the member
func (m Member) Name() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Email
}

// Project represents a Plane project
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"` // ticket prefix, e.g. "DATA"
}

// State represents a Plane workflow state
type State struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"` // backlog, unstarted, started, completed, cancelled
}

// Label represents a Plane issue label
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Assignee is an issue assignee reference. The API returns assignees either
// as plain UUID strings or as objects with an "id" field, so unmarshalling
// accepts both forms.
type Assignee struct {
	ID string
}

// UnmarshalJSON implements json.Unmarshaler for both assignee encodings
func (a *Assignee) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		a.ID = id
		return nil
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("assignee is neither a string nor an object: %w", err)
	}
	a.ID = obj.ID
	return nil
}

// Issue represents a Plane work item
type Issue struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	SequenceID int        `json:"sequence_id"`
	StateID    string     `json:"state"`
	UpdatedAt  string     `json:"updated_at"` // RFC3339-ish timestamp, kept raw
	Assignees  []Assignee `json:"assignees"`
	Labels     []Label    `json:"label_details"`
}

// Title returns the issue name, falling back to a placeholder
func (i Issue) Title() string {
	if i.Name != "" {
		return i.Name
	}
	return "Untitled"
}

// UpdatedDate returns the calendar date (UTC) the issue was last updated.
// The second return value is false when the timestamp is missing or
// unparseable.
func (i Issue) UpdatedDate() (time.Time, bool) {
	if len(i.UpdatedAt) < 10 {
		return time.Time{}, false
	}
	// Timestamps arrive with varying sub-second precision, so only the
	// date portion is parsed.
	d, err := time.Parse("2006-01-02", i.UpdatedAt[:10])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// LabelNames returns the lowercase-insensitive raw label names of the issue
func (i Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

// AssignedTo reports whether the issue is assigned to the given member
func (i Issue) AssignedTo(memberID string) bool {
	for _, a := range i.Assignees {
		if a.ID == memberID {
			return true
		}
	}
	return false
}

// Identifier builds the human-readable ticket ID, e.g. DATA-123, from the
// project identifier and the issue sequence number
func Identifier(project Project, issue Issue) string {
	prefix := project.Identifier
	if prefix == "" {
		prefix = project.Name
	}
	return fmt.Sprintf("%s-%d", prefix, issue.SequenceID)
}
