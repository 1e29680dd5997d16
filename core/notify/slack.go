package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// maxSlackLog bounds the log excerpt posted to Slack; the tail is kept.
const maxSlackLog = 3000

// Slack posts run outcomes to an incoming webhook.
type Slack struct {
	webhookURL string
}

// NewSlack creates a Slack notifier.
func NewSlack(webhookURL string) *Slack {
	return &Slack{webhookURL: webhookURL}
}

// Notify implements Notifier.
func (s *Slack) Notify(ctx context.Context, outcome Outcome) error {
	logs := outcome.Logs
	if len(logs) > maxSlackLog {
		logs = "..." + logs[len(logs)-maxSlackLog:]
	}

	text := fmt.Sprintf("*%s*", outcome.Subject())
	if logs != "" {
		text += "\n```" + logs + "```"
	}

	if err := slack.PostWebhookContext(ctx, s.webhookURL, &slack.WebhookMessage{Text: text}); err != nil {
		return fmt.Errorf("failed to post slack webhook: %w", err)
	}
	return nil
}
