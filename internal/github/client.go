package github

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

const (
	userAgent         = "standup-cli/1.0"
	maxRetries        = 3
	baseBackoffMs     = 1000 // 1 second base backoff
	requestTimeoutSec = 30   // 30 second timeout per request
)

// New creates a GitHub client with OAuth2 authentication and retry logic
func New(token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	httpClient := &http.Client{
		Timeout: requestTimeoutSec * time.Second,
		Transport: &retryTransport{
			base: &oauth2.Transport{
				Source: ts,
				Base:   http.DefaultTransport,
			},
		},
	}

	client := github.NewClient(httpClient)
	client.UserAgent = userAgent

	return client
}

// retryTransport wraps http.RoundTripper with retry logic for the GitHub API:
// rate limits wait for the advertised reset, 5xx responses back off
// exponentially, authorization failures return immediately.
type retryTransport struct {
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (rt *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := rt.base.RoundTrip(req.Clone(req.Context()))
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				time.Sleep(backoff(attempt))
			}
			continue
		}

		if isAuthorizationError(resp) {
			// Not retryable; the caller surfaces a descriptive error
			return resp, nil
		}

		if isRateLimited(resp) {
			resp.Body.Close()
			if attempt < maxRetries {
				time.Sleep(rateLimitDelay(resp))
				continue
			}
			return nil, fmt.Errorf("GitHub API rate limit not cleared after %d attempts", maxRetries+1)
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt < maxRetries {
				time.Sleep(backoff(attempt))
				continue
			}
			return nil, fmt.Errorf("GitHub API returned %d after %d attempts", resp.StatusCode, maxRetries+1)
		}

		return resp, nil
	}

	return nil, fmt.Errorf("GitHub API request failed after %d attempts: %w", maxRetries+1, lastErr)
}

// isRateLimited reports whether a 403 response is a rate limit rather than
// a permission problem
func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode != http.StatusForbidden {
		return false
	}
	return resp.Header.Get("X-RateLimit-Remaining") == "0" ||
		resp.Header.Get("Retry-After") != ""
}

// rateLimitDelay returns how long to wait before retrying a rate-limited
// request, preferring Retry-After, then X-RateLimit-Reset
func rateLimitDelay(resp *http.Response) time.Duration {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if resetUnix, err := strconv.ParseInt(reset, 10, 64); err == nil {
			wait := time.Until(time.Unix(resetUnix, 0))
			if wait > 0 {
				// Small buffer to avoid racing the reset
				return wait + 5*time.Second
			}
		}
	}

	return 60 * time.Second
}

// isAuthorizationError checks for auth failures that must not be retried
func isAuthorizationError(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return true
	case http.StatusForbidden:
		// 403 without rate limit headers is an authorization issue
		return !isRateLimited(resp)
	case http.StatusNotFound:
		// 404 on private repos can indicate insufficient permissions
		return true
	}
	return false
}

// backoff calculates exponential backoff for the given attempt
func backoff(attempt int) time.Duration {
	ms := baseBackoffMs * int(math.Pow(2, float64(attempt)))
	return time.Duration(ms) * time.Millisecond
}
