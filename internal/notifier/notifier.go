// Package notifier forwards CloudWatch alarms to a Slack compatible webhook.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/younsl/logsweep/internal/invocation"
	"github.com/younsl/logsweep/internal/models"
	awsclient "github.com/younsl/logsweep/pkg/aws"
)

// ErrMissingWebhookURL is returned when no webhook URL is configured or stored.
var ErrMissingWebhookURL = errors.New("missing webhook URL")

// Sender delivers a payload to a webhook.
type Sender interface {
	Send(ctx context.Context, logger log.Logger, webhookURL string, payload models.SlackNotificationPayload) error
}

// Config holds the settings of an AlertNotifier.
type Config struct {
	AppName          string
	WebhookParameter string
}

// AlertNotifier posts a notification when an alarm enters the ALARM state.
type AlertNotifier struct {
	secrets awsclient.SecretStore
	sender  Sender
	cfg     Config
}

// NewAlertNotifier creates an AlertNotifier.
func NewAlertNotifier(secrets awsclient.SecretStore, sender Sender, cfg Config) *AlertNotifier {
	return &AlertNotifier{
		secrets: secrets,
		sender:  sender,
		cfg:     cfg,
	}
}

// Handle processes one alarm state change. Events for any state other than ALARM
// are skipped without touching the secret store or the webhook.
func (n *AlertNotifier) Handle(ctx context.Context, inv *invocation.Context, event models.AlarmStateChangeEvent) error {
	logger := inv.With("alarm", event.AlarmData.AlarmName, "state", event.AlarmData.State.Value)

	if !event.IsFiring() {
		level.Info(logger).Log("msg", "alarm is not firing, skipping notification")
		return nil
	}

	if n.cfg.WebhookParameter == "" {
		return fmt.Errorf("%w: no webhook parameter configured", ErrMissingWebhookURL)
	}

	payload, err := BuildPayload(event, n.cfg.AppName)
	if err != nil {
		return err
	}

	webhookURL, err := n.secrets.GetSecret(ctx, n.cfg.WebhookParameter)
	if err != nil {
		return fmt.Errorf("fetching webhook URL: %w", err)
	}
	if webhookURL == "" {
		return fmt.Errorf("%w: %s is empty", ErrMissingWebhookURL, n.cfg.WebhookParameter)
	}

	return n.sender.Send(ctx, logger, webhookURL, payload)
}
