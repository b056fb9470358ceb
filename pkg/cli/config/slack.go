package config

import (
	"log/slog"

	slacksvc "github.com/huddle-lab/standup/pkg/service/slack"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for the Slack app credentials
type Slack struct {
	botToken      string
	signingSecret string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (xoxb-...)",
			Category:    "Slack",
			Sources:     cli.EnvVars("STANDUP_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for request verification)",
			Category:    "Slack",
			Sources:     cli.EnvVars("STANDUP_SLACK_SIGNING_SECRET"),
			Destination: &x.signingSecret,
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
	)
}

// SigningSecret returns the configured signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}

// Configure builds the Slack API client. Both credentials are required to
// serve slash commands and modals.
func (x *Slack) Configure() (slacksvc.Service, error) {
	if x.botToken == "" {
		return nil, goerr.New("slack-bot-token is required")
	}
	if x.signingSecret == "" {
		return nil, goerr.New("slack-signing-secret is required")
	}
	return slacksvc.New(x.botToken)
}
