// Command intake-handler schedules the deletion of newly created log groups.
// It consumes CreateLogGroup events from the intake SQS queue.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-kit/log/level"
	"github.com/younsl/logsweep/internal/config"
	"github.com/younsl/logsweep/internal/invocation"
	"github.com/younsl/logsweep/internal/logging"
	"github.com/younsl/logsweep/internal/processor"
	"github.com/younsl/logsweep/internal/version"
	awsclient "github.com/younsl/logsweep/pkg/aws"
)

func main() {
	cfg, err := config.Load(os.Getenv("LOGSWEEP_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log.Level)

	if err := cfg.ValidateScheduling(); err != nil {
		level.Error(logger).Log("msg", "invalid configuration", "err", err)
		os.Exit(1)
	}

	schedulerClient, err := awsclient.NewSchedulerClient(context.Background(), "")
	if err != nil {
		level.Error(logger).Log("msg", "creating scheduler client", "err", err)
		os.Exit(1)
	}

	p := processor.NewIntakeProcessor(
		awsclient.NewLogGroupResolver(awsclient.NewLogsRegistry()),
		awsclient.NewDeletionScheduler(schedulerClient),
		processor.IntakeConfig{
			Target: awsclient.ScheduleTarget{
				QueueARN:      cfg.Scheduler.QueueARN,
				RoleARN:       cfg.Scheduler.RoleARN,
				GroupName:     cfg.Scheduler.GroupName,
				WindowMinutes: cfg.Scheduler.WindowMinutes,
			},
			DelayDays:    cfg.Deletion.DelayDays,
			Prefixes:     cfg.Filter.Prefixes,
			RequiredTags: cfg.Filter.Tags,
		},
	)

	level.Info(logger).Log(append([]interface{}{"msg", "starting intake handler", "delay_days", cfg.Deletion.DelayDays}, version.Get().KeyVals()...)...)

	lambda.Start(func(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
		return p.HandleEvent(ctx, invocation.New(ctx, logger), ev)
	})
}
