package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const createLogGroupBody = `{
  "version": "0",
  "detail-type": "AWS API Call via CloudTrail",
  "source": "aws.logs",
  "detail": {
    "eventTime": "2025-01-02T12:34:56Z",
    "awsRegion": "ap-northeast-2",
    "eventName": "CreateLogGroup",
    "requestParameters": {
      "logGroupName": "/aws/lambda/preview-pr-123",
      "tags": {"environment": "preview"}
    }
  }
}`

func TestParseLogGroupCreatedEvent(t *testing.T) {
	ev, err := ParseLogGroupCreatedEvent([]byte(createLogGroupBody))
	require.NoError(t, err)
	require.Equal(t, LogGroupCreatedEvent{
		EventTime:    time.Date(2025, 1, 2, 12, 34, 56, 0, time.UTC),
		AWSRegion:    "ap-northeast-2",
		LogGroupName: "/aws/lambda/preview-pr-123",
		Tags:         map[string]string{"environment": "preview"},
	}, ev)
}

func TestParseLogGroupCreatedEventRejectsInvalidBodies(t *testing.T) {
	tests := map[string]string{
		"not json":          `not json`,
		"missing detail":    `{}`,
		"missing name":      `{"detail": {"eventTime": "2025-01-02T12:34:56Z", "awsRegion": "us-east-1"}}`,
		"missing region":    `{"detail": {"eventTime": "2025-01-02T12:34:56Z", "requestParameters": {"logGroupName": "/a"}}}`,
		"bad time":          `{"detail": {"eventTime": "yesterday", "awsRegion": "us-east-1", "requestParameters": {"logGroupName": "/a"}}}`,
		"wrong region type": `{"detail": {"eventTime": "2025-01-02T12:34:56Z", "awsRegion": 1, "requestParameters": {"logGroupName": "/a"}}}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLogGroupCreatedEvent([]byte(body))
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, "log group created event", validationErr.Kind)
		})
	}
}

func TestParseDeletionMessage(t *testing.T) {
	msg, err := ParseDeletionMessage([]byte(`{"logGroupName": "/aws/lambda/a", "awsRegion": "us-east-1"}`))
	require.NoError(t, err)
	require.Equal(t, DeletionMessage{LogGroupName: "/aws/lambda/a", AWSRegion: "us-east-1"}, msg)

	for _, body := range []string{
		`{"logGroupName": "/aws/lambda/a"}`,
		`{"awsRegion": "us-east-1"}`,
		`{"logGroupName": "", "awsRegion": "us-east-1"}`,
		`[]`,
	} {
		_, err := ParseDeletionMessage([]byte(body))
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, body)
	}
}
