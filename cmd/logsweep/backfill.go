package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/spf13/cobra"
	"github.com/younsl/logsweep/internal/config"
	"github.com/younsl/logsweep/internal/models"
	"github.com/younsl/logsweep/internal/planner"
	awsclient "github.com/younsl/logsweep/pkg/aws"
	"github.com/younsl/logsweep/pkg/formatter"
)

func newBackfillCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Create deletion schedules for existing log groups",
		Long: `backfill creates a one-shot deletion schedule for every existing log group that
matches the filter. Log groups whose deletion is already due are scheduled one hour
from now.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateScheduling(); err != nil {
				return err
			}
			validRegions, err := validRegions()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			printAccount(ctx, validRegions[0])

			scans, _, _ := scanLogGroups(ctx, cfg, validRegions)

			p := &planner.Planner{DelayDays: cfg.Deletion.DelayDays}
			var plans []models.PlannedDeletion
			for _, scan := range scans {
				plans = append(plans, p.Plan(ctx, scan.region, scan.groups)...)
			}

			scheduler, err := newBackfillScheduler(ctx, cfg)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Println("Dry run: no schedules are created")
			}
			results := planner.Backfill(ctx, scheduler, scheduleTarget(cfg), plans, dryRun)
			formatter.PrintBackfillResults(os.Stdout, results, dryRun)

			for _, r := range results {
				if r.Err != nil {
					return fmt.Errorf("some schedules could not be created")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the schedules without creating them")
	return cmd
}

func scheduleTarget(cfg config.Config) awsclient.ScheduleTarget {
	return awsclient.ScheduleTarget{
		QueueARN:      cfg.Scheduler.QueueARN,
		RoleARN:       cfg.Scheduler.RoleARN,
		GroupName:     cfg.Scheduler.GroupName,
		WindowMinutes: cfg.Scheduler.WindowMinutes,
	}
}

// newBackfillScheduler creates schedules in the region of the deletion queue.
func newBackfillScheduler(ctx context.Context, cfg config.Config) (*awsclient.DeletionScheduler, error) {
	queue, err := arn.Parse(cfg.Scheduler.QueueARN)
	if err != nil {
		return nil, fmt.Errorf("scheduler.queue_arn: %w", err)
	}
	client, err := awsclient.NewSchedulerClient(ctx, queue.Region)
	if err != nil {
		return nil, err
	}
	return awsclient.NewDeletionScheduler(client), nil
}
