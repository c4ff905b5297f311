package plane

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient wires a Client to an httptest server
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key", "acme")
}

func TestClient_Me(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("expected X-API-Key header, got %q", r.Header.Get("X-API-Key"))
		}
		if r.URL.Path != "/users/me/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Member{ID: "member-1", DisplayName: "Dmitry", Email: "d@example.com"})
	})

	me, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if me.ID != "member-1" {
		t.Errorf("expected member-1, got %q", me.ID)
	}
	if me.Name() != "Dmitry" {
		t.Errorf("expected display name, got %q", me.Name())
	}
}

func TestClient_Me_AuthError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"Invalid token"}`)
	})

	_, err := client.Me(context.Background())
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestClient_Projects_PagedObjectResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/workspaces/acme/projects/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"results":[{"id":"p1","name":"Data Platform","identifier":"DATA"}]}`)
	})

	projects, err := client.Projects(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 || projects[0].Identifier != "DATA" {
		t.Errorf("unexpected projects: %+v", projects)
	}
}

func TestClient_Projects_BareArrayResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"p1","name":"Data Platform","identifier":"DATA"}]`)
	})

	projects, err := client.Projects(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "p1" {
		t.Errorf("unexpected projects: %+v", projects)
	}
}

func TestClient_States(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[
			{"id":"s1","name":"In Progress","group":"started"},
			{"id":"s2","name":"Done","group":"completed"}
		]}`)
	})

	states, err := client.States(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d", len(states))
	}
	if states["s2"].Group != "completed" {
		t.Errorf("expected completed group for s2, got %q", states["s2"].Group)
	}
}

func TestClient_Issues_Pagination(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{"results":[{"id":"i1","name":"First","sequence_id":1}],"next":"cursor"}`)
		case "2":
			fmt.Fprint(w, `{"results":[{"id":"i2","name":"Second","sequence_id":2}],"next":null}`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	issues, err := client.Issues(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues across pages, got %d", len(issues))
	}
	if issues[1].Name != "Second" {
		t.Errorf("expected Second, got %q", issues[1].Name)
	}
}

func TestClient_AssignedIssues_FiltersBothAssigneeForms(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Assignees arrive both as plain UUID strings and as objects
		fmt.Fprint(w, `[
			{"id":"i1","name":"String form","sequence_id":1,"assignees":["member-1"]},
			{"id":"i2","name":"Object form","sequence_id":2,"assignees":[{"id":"member-1"}]},
			{"id":"i3","name":"Someone else","sequence_id":3,"assignees":["member-2"]},
			{"id":"i4","name":"Unassigned","sequence_id":4,"assignees":[]}
		]`)
	})

	issues, err := client.AssignedIssues(context.Background(), "p1", "member-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 assigned issues, got %d", len(issues))
	}
	if issues[0].ID != "i1" || issues[1].ID != "i2" {
		t.Errorf("unexpected issues: %+v", issues)
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		project  Project
		issue    Issue
		expected string
	}{
		{
			name:     "project identifier preferred",
			project:  Project{Identifier: "DATA", Name: "Data Platform"},
			issue:    Issue{SequenceID: 123},
			expected: "DATA-123",
		},
		{
			name:     "falls back to project name",
			project:  Project{Name: "Ops"},
			issue:    Issue{SequenceID: 7},
			expected: "Ops-7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identifier(tt.project, tt.issue); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIssue_UpdatedDate(t *testing.T) {
	tests := []struct {
		name      string
		updatedAt string
		expectOK  bool
		expected  string
	}{
		{
			name:      "microsecond timestamp",
			updatedAt: "2025-06-14T10:30:00.123456Z",
			expectOK:  true,
			expected:  "2025-06-14",
		},
		{
			name:      "plain RFC3339",
			updatedAt: "2025-06-14T10:30:00Z",
			expectOK:  true,
			expected:  "2025-06-14",
		},
		{
			name:      "empty",
			updatedAt: "",
			expectOK:  false,
		},
		{
			name:      "garbage",
			updatedAt: "not-a-date-at-all",
			expectOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Issue{UpdatedAt: tt.updatedAt}.UpdatedDate()
			if ok != tt.expectOK {
				t.Fatalf("expected ok=%v, got %v", tt.expectOK, ok)
			}
			if ok && got.Format("2006-01-02") != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got.Format("2006-01-02"))
			}
		})
	}
}

func TestClient_URLs(t *testing.T) {
	client := NewClient("https://api.plane.so/api/v1", "key", "acme")

	issueURL := client.IssueURL("p1", "i1")
	if issueURL != "https://app.plane.so/acme/projects/p1/issues/i1" {
		t.Errorf("unexpected issue URL: %q", issueURL)
	}

	browseURL := client.BrowseURL("DATA-99")
	if browseURL != "https://app.plane.so/acme/browse/DATA-99/" {
		t.Errorf("unexpected browse URL: %q", browseURL)
	}
}
