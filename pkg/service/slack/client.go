package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Service is the narrow Slack API surface the bot depends on
type Service interface {
	// OpenView opens a modal view in response to a user interaction
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error

	// PostMessage posts a message to a channel
	PostMessage(ctx context.Context, channelID string, opts ...slack.MsgOption) error

	// PostEphemeral posts a message visible only to one user in a channel
	PostEphemeral(ctx context.Context, channelID, userID string, opts ...slack.MsgOption) error
}

// client implements Service on the Slack Web API
type client struct {
	api *slack.Client
}

// New creates a new Slack service with the provided bot token
func New(token string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	return &client{api: slack.New(token)}, nil
}

func (c *client) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := c.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return goerr.Wrap(err, "failed to open modal view", goerr.V("callback_id", view.CallbackID))
	}
	return nil
}

func (c *client) PostMessage(ctx context.Context, channelID string, opts ...slack.MsgOption) error {
	if _, _, err := c.api.PostMessageContext(ctx, channelID, opts...); err != nil {
		return goerr.Wrap(err, "failed to post message", goerr.V("channel_id", channelID))
	}
	return nil
}

func (c *client) PostEphemeral(ctx context.Context, channelID, userID string, opts ...slack.MsgOption) error {
	if _, err := c.api.PostEphemeralContext(ctx, channelID, userID, opts...); err != nil {
		return goerr.Wrap(err, "failed to post ephemeral message",
			goerr.V("channel_id", channelID), goerr.V("user_id", userID))
	}
	return nil
}
