package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/younsl/logsweep/internal/models"
	awsclient "github.com/younsl/logsweep/pkg/aws"
	"github.com/younsl/logsweep/pkg/formatter"
)

func newAlarmsCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "alarms",
		Short: "List the CloudWatch alarms watching logsweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			validRegions, err := validRegions()
			if err != nil {
				return err
			}
			if prefix == "" {
				prefix = cfg.App.Name
			}

			ctx := cmd.Context()

			results := make([]struct {
				alarms []models.AlarmSummary
				err    error
				region string
			}, len(validRegions))

			var wg sync.WaitGroup
			for i, region := range validRegions {
				wg.Add(1)
				go func(idx int, r string) {
					defer wg.Done()
					results[idx].region = r

					awsCfg, err := awsclient.LoadConfig(ctx, r, awsclient.WithIMDS())
					if err != nil {
						results[idx].err = err
						return
					}
					results[idx].alarms, results[idx].err = awsclient.NewAlarmListerFromConfig(awsCfg).ListAlarms(ctx, prefix)
				}(i, region)
			}
			wg.Wait()

			var alarms []models.AlarmSummary
			for _, result := range results {
				if result.err != nil {
					fmt.Printf("Error in region %s: %v\n", result.region, result.err)
					continue
				}
				alarms = append(alarms, result.alarms...)
			}

			formatter.PrintAlarmsTable(os.Stdout, alarms)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Alarm name prefix (default: app.name)")
	return cmd
}
