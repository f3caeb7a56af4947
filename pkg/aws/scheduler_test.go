package aws

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/scheduler/types"
	"github.com/stretchr/testify/require"
	"github.com/younsl/logsweep/internal/models"
)

type recordingScheduler struct {
	input *scheduler.CreateScheduleInput
	err   error
}

func (r *recordingScheduler) CreateSchedule(_ context.Context, in *scheduler.CreateScheduleInput, _ ...func(*scheduler.Options)) (*scheduler.CreateScheduleOutput, error) {
	r.input = in
	if r.err != nil {
		return nil, r.err
	}
	return &scheduler.CreateScheduleOutput{ScheduleArn: aws.String("arn:aws:scheduler:us-east-1:123456789012:schedule/default/" + aws.ToString(in.Name))}, nil
}

var scheduleNamePattern = regexp.MustCompile(`^delete-[0-9A-Za-z_.-]+-[0-9a-f-]{8}$`)

func TestScheduleTargetRequest(t *testing.T) {
	target := ScheduleTarget{
		QueueARN:      "arn:aws:sqs:us-east-1:123456789012:deletions",
		RoleARN:       "arn:aws:iam::123456789012:role/scheduler",
		GroupName:     "logsweep",
		WindowMinutes: 5,
	}
	fireAt := time.Date(2025, 2, 8, 21, 34, 56, 789000000, time.FixedZone("KST", 9*3600))

	req := target.Request("/aws/lambda/worker", "ap-northeast-2", fireAt)
	require.Regexp(t, scheduleNamePattern, req.Name)
	require.Equal(t, time.Date(2025, 2, 8, 12, 34, 56, 0, time.UTC), req.FireAt)
	require.Equal(t, "logsweep", req.GroupName)
	require.Equal(t, models.DeletionMessage{LogGroupName: "/aws/lambda/worker", AWSRegion: "ap-northeast-2"}, req.Payload)

	other := target.Request("/aws/lambda/worker", "ap-northeast-2", fireAt)
	require.NotEqual(t, req.Name, other.Name)
}

func TestScheduleBuildsOneShotSchedule(t *testing.T) {
	client := &recordingScheduler{}
	req := models.DeletionScheduleRequest{
		Name:           "delete-worker-1a2b3c4d",
		GroupName:      "logsweep",
		FireAt:         time.Date(2025, 2, 8, 12, 34, 56, 0, time.UTC),
		TargetQueueARN: "arn:aws:sqs:us-east-1:123456789012:deletions",
		RoleARN:        "arn:aws:iam::123456789012:role/scheduler",
		WindowMinutes:  5,
		Payload:        models.DeletionMessage{LogGroupName: "/aws/lambda/worker", AWSRegion: "us-east-1"},
	}

	arn, err := NewDeletionScheduler(client).Schedule(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "arn:aws:scheduler:us-east-1:123456789012:schedule/default/delete-worker-1a2b3c4d", arn)

	in := client.input
	require.Equal(t, "delete-worker-1a2b3c4d", aws.ToString(in.Name))
	require.Equal(t, "logsweep", aws.ToString(in.GroupName))
	require.Equal(t, "at(2025-02-08T12:34:56)", aws.ToString(in.ScheduleExpression))
	require.Equal(t, "UTC", aws.ToString(in.ScheduleExpressionTimezone))
	require.Equal(t, types.ActionAfterCompletionDelete, in.ActionAfterCompletion)
	require.Equal(t, types.ScheduleStateEnabled, in.State)
	require.Equal(t, types.FlexibleTimeWindowModeFlexible, in.FlexibleTimeWindow.Mode)
	require.Equal(t, int32(5), aws.ToInt32(in.FlexibleTimeWindow.MaximumWindowInMinutes))
	require.Equal(t, req.TargetQueueARN, aws.ToString(in.Target.Arn))
	require.Equal(t, req.RoleARN, aws.ToString(in.Target.RoleArn))

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(in.Target.Input)), &payload))
	require.Equal(t, map[string]string{"logGroupName": "/aws/lambda/worker", "awsRegion": "us-east-1"}, payload)
}

func TestScheduleWithoutWindow(t *testing.T) {
	client := &recordingScheduler{}
	_, err := NewDeletionScheduler(client).Schedule(context.Background(), models.DeletionScheduleRequest{
		Name:    "delete-worker-1a2b3c4d",
		FireAt:  time.Date(2025, 2, 8, 12, 34, 56, 0, time.UTC),
		Payload: models.DeletionMessage{LogGroupName: "/aws/lambda/worker", AWSRegion: "us-east-1"},
	})
	require.NoError(t, err)
	require.Equal(t, types.FlexibleTimeWindowModeOff, client.input.FlexibleTimeWindow.Mode)
	require.Nil(t, client.input.FlexibleTimeWindow.MaximumWindowInMinutes)
	require.Nil(t, client.input.GroupName)
}

func TestScheduleWrapsClientError(t *testing.T) {
	errConflict := errors.New("conflict")
	_, err := NewDeletionScheduler(&recordingScheduler{err: errConflict}).Schedule(context.Background(), models.DeletionScheduleRequest{Name: "delete-x-00000000"})
	require.ErrorIs(t, err, errConflict)
	require.ErrorContains(t, err, "delete-x-00000000")
}
