package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/younsl/logsweep/internal/models"
)

// StatusError is returned for non-2xx webhook responses.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned HTTP %d", e.StatusCode)
}

// SenderConfig controls webhook delivery.
type SenderConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	Timeout        time.Duration
}

// SlackSender posts notification payloads to a Slack compatible webhook.
type SlackSender struct {
	client *http.Client
	cfg    SenderConfig
}

// NewSlackSender creates a SlackSender with a pooled HTTP client.
func NewSlackSender(cfg SenderConfig) *SlackSender {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = cfg.Timeout
	return &SlackSender{client: client, cfg: cfg}
}

// Send posts payload to webhookURL. Transport errors and non-2xx responses are
// retried up to MaxRetries times, waiting InitialBackoff and doubling between attempts.
func (s *SlackSender) Send(ctx context.Context, logger log.Logger, webhookURL string, payload models.SlackNotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	attempts := 0
	op := func() error {
		attempts++
		return s.post(ctx, webhookURL, body)
	}
	notify := func(err error, wait time.Duration) {
		level.Warn(logger).Log("msg", "webhook delivery failed, retrying", "attempt", attempts, "wait", wait, "err", err)
	}

	if err := backoff.RetryNotify(op, s.backoff(ctx), notify); err != nil {
		level.Error(logger).Log("msg", "webhook delivery failed", "attempts", attempts, "err", err)
		return fmt.Errorf("delivering notification after %d attempts: %w", attempts, err)
	}

	level.Info(logger).Log("msg", "notification delivered", "alarm", payload.AlarmName, "attempts", attempts)
	return nil
}

func (s *SlackSender) backoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.InitialBackoff
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = s.cfg.InitialBackoff << s.cfg.MaxRetries
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(s.cfg.MaxRetries)), ctx)
}

func (s *SlackSender) post(ctx context.Context, webhookURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("building webhook request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}
