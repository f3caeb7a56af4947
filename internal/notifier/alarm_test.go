package notifier

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/younsl/logsweep/internal/models"
)

func TestParseAlarmARN(t *testing.T) {
	arn, err := ParseAlarmARN("arn:aws:cloudwatch:us-east-1:123456789012:alarm:TestAlarm")
	require.NoError(t, err)
	require.Equal(t, AlarmARN{
		Partition:    "aws",
		Service:      "cloudwatch",
		Region:       "us-east-1",
		AccountID:    "123456789012",
		ResourceType: "alarm",
		AlarmName:    "TestAlarm",
	}, arn)

	arn, err = ParseAlarmARN("arn:aws:cloudwatch:eu-west-1:123456789012:alarm:logsweep:intake errors")
	require.NoError(t, err)
	require.Equal(t, "logsweep:intake errors", arn.AlarmName)
	require.Equal(t, "https://eu-west-1.console.aws.amazon.com/cloudwatch/home?region=eu-west-1#alarmsV2:alarm/logsweep:intake%20errors", arn.ConsoleURL())
}

func TestParseAlarmARNRejectsMalformed(t *testing.T) {
	for _, arn := range []string{
		"",
		"TestAlarm",
		"arn:aws:cloudwatch:us-east-1:123456789012:TestAlarm",
		"urn:aws:cloudwatch:us-east-1:123456789012:alarm:TestAlarm",
		"arn:aws:cloudwatch::123456789012:alarm:TestAlarm",
		"arn:aws:cloudwatch:us-east-1:123456789012:alarm:",
		"arn:aws:cloudwatch:us-east-1:123456789012:dashboard:TestAlarm",
		"arn:aws:cloudwatch:us-east-1",
	} {
		_, err := ParseAlarmARN(arn)
		require.ErrorIs(t, err, ErrInvalidAlarmARN, arn)
	}
}

func TestBuildPayloadFallsBackToEventTime(t *testing.T) {
	event := models.AlarmStateChangeEvent{
		AlarmARN: "arn:aws-cn:cloudwatch:cn-north-1:123456789012:alarm:Quiet",
		Time:     "2025-01-02T12:34:57.000+0000",
		AlarmData: models.AlarmData{
			State: models.AlarmState{Value: models.AlarmStateAlarm},
		},
	}

	payload, err := BuildPayload(event, "logsweep")
	require.NoError(t, err)
	require.Equal(t, "2025-01-02 12:34:57 UTC", payload.AlarmTime)
	require.Equal(t, "Quiet", payload.AlarmName)
	require.Equal(t, "cn-north-1", payload.Region)
	require.Equal(t, "https://cn-north-1.console.amazonaws.cn/cloudwatch/home?region=cn-north-1#alarmsV2:alarm/Quiet", payload.CloudWatchURL)
}
