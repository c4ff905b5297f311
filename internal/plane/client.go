package plane

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	userAgent         = "standup-cli/1.0"
	appBaseURL        = "https://app.plane.so"
	requestTimeoutSec = 15 // 15 second timeout per request
)

// Client is a JSON REST client for the Plane API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	workspace  string
}

// NewClient creates a new Plane API client for a workspace
func NewClient(baseURL, apiKey, workspace string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeoutSec * time.Second,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		workspace: workspace,
	}
}

// Workspace returns the workspace slug the client is bound to
func (c *Client) Workspace() string {
	return c.workspace
}

// get performs an authenticated GET request and returns the raw response body
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Plane API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Plane API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, enhancePlaneError(resp.StatusCode, path, body)
	}

	return body, nil
}

// getJSON performs a GET request and decodes the response into out
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode Plane API response for %s: %w", path, err)
	}
	return nil
}

// decodeList decodes a response that is either a bare JSON array or a
// paginated object wrapping the array in a "results" field
func decodeList[T any](body []byte, path string) ([]T, error) {
	var items []T
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var paged struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(body, &paged); err != nil {
		return nil, fmt.Errorf("failed to decode Plane API list response for %s: %w", path, err)
	}
	return paged.Results, nil
}

// Me returns the current authenticated user
func (c *Client) Me(ctx context.Context) (Member, error) {
	var me Member
	if err := c.getJSON(ctx, "/users/me/", nil, &me); err != nil {
		return Member{}, err
	}
	return me, nil
}

// Projects returns all projects in the workspace
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	path := fmt.Sprintf("/workspaces/%s/projects/", c.workspace)
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Project](body, path)
}

// Project returns a single project by ID
func (c *Client) Project(ctx context.Context, projectID string) (Project, error) {
	path := fmt.Sprintf("/workspaces/%s/projects/%s/", c.workspace, projectID)
	var project Project
	if err := c.getJSON(ctx, path, nil, &project); err != nil {
		return Project{}, err
	}
	return project, nil
}

// States returns the project's workflow states keyed by state ID
func (c *Client) States(ctx context.Context, projectID string) (map[string]State, error) {
	path := fmt.Sprintf("/workspaces/%s/projects/%s/states/", c.workspace, projectID)
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	states, err := decodeList[State](body, path)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]State, len(states))
	for _, s := range states {
		byID[s.ID] = s
	}
	return byID, nil
}

// Issues returns all work items in a project, following page-based
// pagination until the API reports no next page
func (c *Client) Issues(ctx context.Context, projectID string) ([]Issue, error) {
	path := fmt.Sprintf("/workspaces/%s/projects/%s/work-items/", c.workspace, projectID)

	var all []Issue
	page := 1
	for {
		params := url.Values{"page": {strconv.Itoa(page)}}
		body, err := c.get(ctx, path, params)
		if err != nil {
			return nil, err
		}

		// A bare array response has no pagination metadata
		var plain []Issue
		if err := json.Unmarshal(body, &plain); err == nil {
			all = append(all, plain...)
			break
		}

		var paged struct {
			Results []Issue         `json:"results"`
			Next    json.RawMessage `json:"next"`
		}
		if err := json.Unmarshal(body, &paged); err != nil {
			return nil, fmt.Errorf("failed to decode Plane API issues response for %s: %w", path, err)
		}
		all = append(all, paged.Results...)

		if len(paged.Next) == 0 || string(paged.Next) == "null" || string(paged.Next) == `""` {
			break
		}
		page++
	}

	return all, nil
}

// AssignedIssues returns the project's issues assigned to memberID.
// The API ignores the assignees filter param, so issues are paginated in
// full and filtered client-side.
func (c *Client) AssignedIssues(ctx context.Context, projectID, memberID string) ([]Issue, error) {
	issues, err := c.Issues(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return FilterByAssignee(issues, memberID), nil
}

// FilterByAssignee returns only the issues assigned to memberID
func FilterByAssignee(issues []Issue, memberID string) []Issue {
	var assigned []Issue
	for _, issue := range issues {
		if issue.AssignedTo(memberID) {
			assigned = append(assigned, issue)
		}
	}
	return assigned
}

// IssueURL builds the Plane web app URL for an issue
func (c *Client) IssueURL(projectID, issueID string) string {
	return fmt.Sprintf("%s/%s/projects/%s/issues/%s", appBaseURL, c.workspace, projectID, issueID)
}

// BrowseURL builds the Plane browse shortlink for a ticket that was not
// found among the fetched issues
func (c *Client) BrowseURL(ticket string) string {
	return fmt.Sprintf("%s/%s/browse/%s/", appBaseURL, c.workspace, ticket)
}

// enhancePlaneError maps common Plane API failures to descriptive errors
func enhancePlaneError(status int, path string, body []byte) error {
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 200 {
		snippet = snippet[:200] + "..."
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("Plane API authentication failed for %s (status %d). Please check your PLANE_API_KEY is valid", path, status)
	case http.StatusNotFound:
		return fmt.Errorf("Plane API resource %s not found. Check PLANE_WORKSPACE_SLUG and PLANE_PROJECT_ID", path)
	case http.StatusTooManyRequests:
		return fmt.Errorf("Plane API rate limit exceeded for %s", path)
	}

	return fmt.Errorf("Plane API request %s failed with status %d: %s", path, status, snippet)
}
