package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Client sends standup reports as Slack DMs via a bot token
type Client struct {
	api    *slack.Client
	userID string
}

// New creates a Slack client that posts to the given user.
// Posting to a user ID opens (or reuses) the bot's DM channel with that user.
func New(botToken, userID string) *Client {
	return &Client{
		api:    slack.New(botToken),
		userID: userID,
	}
}

// SendDM posts the text as an mrkdwn message to the configured user
func (c *Client) SendDM(ctx context.Context, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, c.userID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		return fmt.Errorf("chat.postMessage failed: %w", err)
	}
	return nil
}
