package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/younsl/logsweep/internal/batch"
	"github.com/younsl/logsweep/internal/invocation"
	"github.com/younsl/logsweep/internal/models"
	awsclient "github.com/younsl/logsweep/pkg/aws"
	"github.com/younsl/logsweep/pkg/utils"
)

// LogGroupResolver fetches a log group's current configuration.
type LogGroupResolver interface {
	Resolve(ctx context.Context, region, name string) (models.LogGroupInfo, error)
}

// Scheduler registers a deletion schedule and returns its ARN.
type Scheduler interface {
	Schedule(ctx context.Context, req models.DeletionScheduleRequest) (string, error)
}

// IntakeConfig holds the settings of an IntakeProcessor.
type IntakeConfig struct {
	Target       awsclient.ScheduleTarget
	DelayDays    int
	Prefixes     []string
	RequiredTags map[string]string
}

// IntakeProcessor schedules the deletion of newly created log groups.
type IntakeProcessor struct {
	resolver  LogGroupResolver
	scheduler Scheduler
	cfg       IntakeConfig
}

// NewIntakeProcessor creates an IntakeProcessor.
func NewIntakeProcessor(resolver LogGroupResolver, scheduler Scheduler, cfg IntakeConfig) *IntakeProcessor {
	return &IntakeProcessor{
		resolver:  resolver,
		scheduler: scheduler,
		cfg:       cfg,
	}
}

// HandleEvent processes one SQS batch of log-group-created events.
func (p *IntakeProcessor) HandleEvent(ctx context.Context, inv *invocation.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	return batch.Process(ctx, inv.Logger, ev.Records, p.processRecord)
}

func (p *IntakeProcessor) processRecord(ctx context.Context, logger log.Logger, record events.SQSMessage) error {
	event, err := models.ParseLogGroupCreatedEvent([]byte(record.Body))
	if err != nil {
		return err
	}
	logger = log.With(logger, "log_group", event.LogGroupName, "region", event.AWSRegion)

	// The event rule already filters; this guards against a rule that drifted.
	if !utils.MatchesPrefix(event.LogGroupName, p.cfg.Prefixes) || !utils.MatchesTags(event.Tags, p.cfg.RequiredTags) {
		level.Info(logger).Log("msg", "log group does not match filter, skipping")
		return nil
	}

	info, err := p.resolver.Resolve(ctx, event.AWSRegion, event.LogGroupName)
	if err != nil {
		return fmt.Errorf("resolving log group: %w", err)
	}

	fireAt := utils.DeletionTime(event.EventTime, info.RetentionInDays, p.cfg.DelayDays)
	req := p.cfg.Target.Request(event.LogGroupName, event.AWSRegion, fireAt)

	scheduleARN, err := p.scheduler.Schedule(ctx, req)
	if err != nil {
		return fmt.Errorf("scheduling deletion: %w", err)
	}

	level.Info(logger).Log(
		"msg", "scheduled log group deletion",
		"schedule", req.Name,
		"schedule_arn", scheduleARN,
		"retention_days", info.Retention(),
		"delay_days", p.cfg.DelayDays,
		"fire_at", fireAt.Format(time.RFC3339),
	)
	return nil
}
