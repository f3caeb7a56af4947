package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/younsl/logsweep/internal/models"
	"github.com/younsl/logsweep/internal/planner"
	"github.com/younsl/logsweep/pkg/formatter"
	"github.com/younsl/logsweep/pkg/pricing"
)

func newPlanCmd() *cobra.Command {
	var noPricing bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show when existing log groups will be deleted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			validRegions, err := validRegions()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			printAccount(ctx, validRegions[0])

			scans, scanStartTime, scanDuration := scanLogGroups(ctx, cfg, validRegions)

			p := &planner.Planner{DelayDays: cfg.Deletion.DelayDays}
			var estimator *pricing.LogsStorageEstimator
			if !noPricing {
				estimator = pricing.NewLogsStorageEstimator(true)
				p.Estimator = estimator
			}

			var plans []models.PlannedDeletion
			for _, scan := range scans {
				plans = append(plans, p.Plan(ctx, scan.region, scan.groups)...)
			}

			if estimator != nil {
				if msg := estimator.InitMessage(); msg != "" {
					fmt.Println(msg)
				}
			}

			formatter.PrintDeletionPlanTable(os.Stdout, plans, scanStartTime, scanStartTime, scanDuration)
			formatter.PrintDeletionPlanSummary(os.Stdout, plans)
			formatter.PrintPricingAPIStats(os.Stdout)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noPricing, "no-pricing", false, "Skip the storage cost estimate")
	return cmd
}
