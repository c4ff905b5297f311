package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

const defaultPlaneBaseURL = "https://api.plane.so/api/v1"

// defaultTicketPrefix is the project key matched in commit messages (e.g. DATA-123)
const defaultTicketPrefix = "DATA"

// Config holds all configuration for the application
type Config struct {
	PlaneAPIKey        string
	PlaneBaseURL       string
	PlaneWorkspaceSlug string
	PlaneProjectID     string // optional: restrict to a single project

	GitHubToken    string // optional: commit scan is skipped when empty
	GitHubOrg      string
	GitHubUsername string

	SlackBotToken string
	SlackUserID   string

	TicketPrefix string

	AddLinks    bool
	Slack       bool
	NoClipboard bool
	Verbose     bool
	Quiet       bool
}

// FromEnvAndFlags creates a Config from environment variables and CLI flags
func FromEnvAndFlags(addLinks, slack, noClipboard, verbose, quiet bool) (*Config, error) {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load() // Silently ignore if .env file doesn't exist

	config := &Config{
		PlaneAPIKey:        os.Getenv("PLANE_API_KEY"),
		PlaneBaseURL:       os.Getenv("PLANE_BASE_URL"),
		PlaneWorkspaceSlug: os.Getenv("PLANE_WORKSPACE_SLUG"),
		PlaneProjectID:     os.Getenv("PLANE_PROJECT_ID"),
		GitHubToken:        os.Getenv("GITHUB_TOKEN"),
		GitHubOrg:          os.Getenv("GITHUB_ORG"),
		GitHubUsername:     os.Getenv("GITHUB_USERNAME"),
		SlackBotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackUserID:        os.Getenv("SLACK_USER_ID"),
		TicketPrefix:       os.Getenv("TICKET_PREFIX"),
		AddLinks:           addLinks,
		Slack:              slack,
		NoClipboard:        noClipboard,
		Verbose:            verbose && !quiet, // verbose is disabled if quiet is set
		Quiet:              quiet,
	}

	if config.PlaneBaseURL == "" {
		config.PlaneBaseURL = defaultPlaneBaseURL
	}
	if config.TicketPrefix == "" {
		config.TicketPrefix = defaultTicketPrefix
	}

	// Validate required Plane credentials
	if config.PlaneAPIKey == "" {
		return nil, errors.New("PLANE_API_KEY environment variable is required")
	}
	if config.PlaneWorkspaceSlug == "" {
		return nil, errors.New("PLANE_WORKSPACE_SLUG environment variable is required")
	}

	// Slack delivery needs both the bot token and the target user
	if config.Slack {
		if config.SlackBotToken == "" {
			return nil, errors.New("SLACK_BOT_TOKEN environment variable is required with --slack")
		}
		if config.SlackUserID == "" {
			return nil, errors.New("SLACK_USER_ID environment variable is required with --slack")
		}
	}

	return config, nil
}
