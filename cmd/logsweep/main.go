package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/younsl/logsweep/internal/config"
	"github.com/younsl/logsweep/internal/version"
	"github.com/younsl/logsweep/pkg/utils"
)

var (
	regions    []string
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "logsweep",
		Short: "CLI tool to plan and backfill CloudWatch log group deletion",
		Long: `logsweep deletes CloudWatch log groups once their retention window has passed.

The Lambda handlers take care of log groups created from now on. This CLI shows
what is scheduled for existing log groups and creates the missing schedules.`,
		SilenceUsage: true,
	}

	defaultRegions := []string{utils.GetDefaultRegion()}
	rootCmd.PersistentFlags().StringSliceVarP(&regions, "regions", "r", nil,
		fmt.Sprintf("AWS regions to check (comma separated, default: %s)", strings.Join(defaultRegions, ", ")))
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", os.Getenv("LOGSWEEP_CONFIG_FILE"),
		"Config file (LOGSWEEP_* environment variables override it)")

	rootCmd.AddCommand(
		newPlanCmd(),
		newBackfillCmd(),
		newAlarmsCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}

// loadConfig reads the config file given with --config, if any.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// validRegions returns the requested regions, dropping unknown ones with a warning.
func validRegions() ([]string, error) {
	requested := regions
	if len(requested) == 0 {
		requested = []string{utils.GetDefaultRegion()}
	}

	var valid []string
	for _, region := range requested {
		if utils.IsValidRegion(region) {
			valid = append(valid, region)
		} else {
			fmt.Printf("Warning: Skipping invalid region '%s'\n", region)
		}
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("no valid regions specified")
	}
	return valid, nil
}
