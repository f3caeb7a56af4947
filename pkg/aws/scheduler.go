package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/scheduler/types"
	"github.com/google/uuid"
	"github.com/younsl/logsweep/internal/models"
	"github.com/younsl/logsweep/pkg/utils"
)

// SchedulerAPI is the subset of the EventBridge Scheduler client used by logsweep.
type SchedulerAPI interface {
	CreateSchedule(ctx context.Context, params *scheduler.CreateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.CreateScheduleOutput, error)
}

// NewSchedulerClient creates an EventBridge Scheduler client for region.
func NewSchedulerClient(ctx context.Context, region string) (SchedulerAPI, error) {
	cfg, err := LoadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return scheduler.NewFromConfig(cfg), nil
}

// ScheduleTarget is where fired deletion schedules deliver their message.
type ScheduleTarget struct {
	QueueARN      string
	RoleARN       string
	GroupName     string
	WindowMinutes int32
}

// Request builds the schedule request for deleting logGroupName in region at fireAt.
func (t ScheduleTarget) Request(logGroupName, region string, fireAt time.Time) models.DeletionScheduleRequest {
	return models.DeletionScheduleRequest{
		Name:           utils.ScheduleName(logGroupName, uuid.NewString()),
		GroupName:      t.GroupName,
		FireAt:         fireAt.UTC().Truncate(time.Second),
		TargetQueueARN: t.QueueARN,
		RoleARN:        t.RoleARN,
		WindowMinutes:  t.WindowMinutes,
		Payload: models.DeletionMessage{
			LogGroupName: logGroupName,
			AWSRegion:    region,
		},
	}
}

// DeletionScheduler registers one-shot schedules that delete themselves after firing.
type DeletionScheduler struct {
	client SchedulerAPI
}

// NewDeletionScheduler creates a DeletionScheduler.
func NewDeletionScheduler(client SchedulerAPI) *DeletionScheduler {
	return &DeletionScheduler{client: client}
}

// Schedule creates the schedule and returns its ARN.
func (s *DeletionScheduler) Schedule(ctx context.Context, req models.DeletionScheduleRequest) (string, error) {
	payload, err := json.Marshal(req.Payload)
	if err != nil {
		return "", fmt.Errorf("encoding deletion message: %w", err)
	}

	window := &types.FlexibleTimeWindow{Mode: types.FlexibleTimeWindowModeOff}
	if req.WindowMinutes > 0 {
		window = &types.FlexibleTimeWindow{
			Mode:                   types.FlexibleTimeWindowModeFlexible,
			MaximumWindowInMinutes: aws.Int32(req.WindowMinutes),
		}
	}

	input := &scheduler.CreateScheduleInput{
		Name:                       aws.String(req.Name),
		ScheduleExpression:         aws.String(utils.AtExpression(req.FireAt)),
		ScheduleExpressionTimezone: aws.String("UTC"),
		Description:                aws.String(fmt.Sprintf("Delete log group %s in %s", req.Payload.LogGroupName, req.Payload.AWSRegion)),
		FlexibleTimeWindow:         window,
		ActionAfterCompletion:      types.ActionAfterCompletionDelete,
		State:                      types.ScheduleStateEnabled,
		Target: &types.Target{
			Arn:     aws.String(req.TargetQueueARN),
			RoleArn: aws.String(req.RoleARN),
			Input:   aws.String(string(payload)),
		},
	}
	if req.GroupName != "" {
		input.GroupName = aws.String(req.GroupName)
	}

	output, err := s.client.CreateSchedule(ctx, input)
	if err != nil {
		return "", fmt.Errorf("creating schedule %s: %w", req.Name, err)
	}
	return aws.ToString(output.ScheduleArn), nil
}
