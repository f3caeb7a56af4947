package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"
	"github.com/younsl/logsweep/internal/invocation"
	"github.com/younsl/logsweep/internal/models"
	awsclient "github.com/younsl/logsweep/pkg/aws"
)

type fakeSecrets struct {
	value string
	err   error
	calls int
}

func (f *fakeSecrets) GetSecret(context.Context, string) (string, error) {
	f.calls++
	return f.value, f.err
}

type recordingSender struct {
	calls    int
	url      string
	payloads []models.SlackNotificationPayload
}

func (r *recordingSender) Send(_ context.Context, _ log.Logger, webhookURL string, payload models.SlackNotificationPayload) error {
	r.calls++
	r.url = webhookURL
	r.payloads = append(r.payloads, payload)
	return nil
}

func loadAlarmEvent(t *testing.T) models.AlarmStateChangeEvent {
	t.Helper()
	bs, err := os.ReadFile("testdata/alarm-event.json")
	require.NoError(t, err)
	var event models.AlarmStateChangeEvent
	require.NoError(t, json.Unmarshal(bs, &event))
	return event
}

func testInvocation() *invocation.Context {
	return invocation.New(context.Background(), log.NewNopLogger())
}

var testConfig = Config{AppName: "TestApp", WebhookParameter: "/logsweep/slack-webhook"}

func TestHandleSkipsNonAlarmStates(t *testing.T) {
	for _, state := range []string{models.AlarmStateOK, models.AlarmStateInsufficientData} {
		t.Run(state, func(t *testing.T) {
			secrets := &fakeSecrets{value: "https://hooks.example.com/x"}
			sender := &recordingSender{}
			event := loadAlarmEvent(t)
			event.AlarmData.State.Value = state

			err := NewAlertNotifier(secrets, sender, testConfig).Handle(context.Background(), testInvocation(), event)
			require.NoError(t, err)
			require.Zero(t, secrets.calls)
			require.Zero(t, sender.calls)
		})
	}
}

func TestHandlePostsExactPayload(t *testing.T) {
	srv, calls, bodies := flakyServer(t, 0)
	secrets := &fakeSecrets{value: srv.URL}

	err := NewAlertNotifier(secrets, testSender(), testConfig).Handle(context.Background(), testInvocation(), loadAlarmEvent(t))
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, 1, secrets.calls)

	require.JSONEq(t, `{
		"emoji": "🚨",
		"alarmName": "TestAlarm",
		"alarmDescription": "Test alarm description",
		"cloudWatchUrl": "https://us-east-1.console.aws.amazon.com/cloudwatch/home?region=us-east-1#alarmsV2:alarm/TestAlarm",
		"region": "us-east-1",
		"alarmTime": "2025-01-02 12:34:56 UTC",
		"appName": "TestApp"
	}`, string(<-bodies))
}

func TestHandleRetriesDelivery(t *testing.T) {
	srv, calls, _ := flakyServer(t, 3)
	secrets := &fakeSecrets{value: srv.URL}

	err := NewAlertNotifier(secrets, testSender(), testConfig).Handle(context.Background(), testInvocation(), loadAlarmEvent(t))
	require.NoError(t, err)
	require.Equal(t, int32(4), calls.Load())
}

func TestHandleMissingWebhookURL(t *testing.T) {
	sender := &recordingSender{}

	err := NewAlertNotifier(&fakeSecrets{}, sender, testConfig).Handle(context.Background(), testInvocation(), loadAlarmEvent(t))
	require.ErrorIs(t, err, ErrMissingWebhookURL)

	err = NewAlertNotifier(&fakeSecrets{value: "https://hooks.example.com/x"}, sender, Config{AppName: "TestApp"}).
		Handle(context.Background(), testInvocation(), loadAlarmEvent(t))
	require.ErrorIs(t, err, ErrMissingWebhookURL)
	require.Zero(t, sender.calls)
}

func TestHandleSecretStoreError(t *testing.T) {
	errDenied := errors.New("access denied")
	sender := &recordingSender{}

	err := NewAlertNotifier(&fakeSecrets{err: errDenied}, sender, testConfig).Handle(context.Background(), testInvocation(), loadAlarmEvent(t))
	require.ErrorIs(t, err, errDenied)
	require.Zero(t, sender.calls)
}

func TestHandleInvalidAlarmARN(t *testing.T) {
	secrets := &fakeSecrets{value: "https://hooks.example.com/x"}
	sender := &recordingSender{}
	event := loadAlarmEvent(t)
	event.AlarmARN = "arn:aws:cloudwatch:TestAlarm"

	err := NewAlertNotifier(secrets, sender, testConfig).Handle(context.Background(), testInvocation(), event)
	require.ErrorIs(t, err, ErrInvalidAlarmARN)
	require.Zero(t, sender.calls)
}

func TestHandleUsesCachedWebhookURL(t *testing.T) {
	secrets := &fakeSecrets{value: "https://hooks.example.com/x"}
	sender := &recordingSender{}
	n := NewAlertNotifier(cachedStore(secrets), sender, testConfig)

	for range 3 {
		require.NoError(t, n.Handle(context.Background(), testInvocation(), loadAlarmEvent(t)))
	}
	require.Equal(t, 1, secrets.calls)
	require.Equal(t, 3, sender.calls)
	require.Equal(t, "https://hooks.example.com/x", sender.url)
}

func cachedStore(next *fakeSecrets) *awsclient.CachedSecretStore {
	return awsclient.NewCachedSecretStore(next, time.Minute)
}
