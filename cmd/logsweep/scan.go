package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/briandowns/spinner"
	"github.com/younsl/logsweep/internal/config"
	"github.com/younsl/logsweep/internal/models"
	awsclient "github.com/younsl/logsweep/pkg/aws"
	"github.com/younsl/logsweep/pkg/utils"
)

// regionScan holds the log groups found in one region.
type regionScan struct {
	region string
	groups []models.LogGroupInfo
	errs   []error
}

// startResourceSpinner creates and starts a spinner with a message for the given service
func startResourceSpinner(service string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Analyzing %s resources ...", service)
	s.Start()
	return s
}

// printAccount prints the account the credentials belong to.
func printAccount(ctx context.Context, region string) {
	awsCfg, err := awsclient.LoadConfig(ctx, region, awsclient.WithIMDS())
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
		return
	}
	account, err := awsclient.CallerAccountID(ctx, awsCfg)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
		return
	}
	fmt.Printf("AWS account: %s\n", account)
}

// scanLogGroups scans every region in parallel for log groups matching the filter.
func scanLogGroups(ctx context.Context, cfg config.Config, regions []string) ([]regionScan, time.Time, time.Duration) {
	fmt.Println("Starting CloudWatch Logs scan ...")
	scanStartTime := time.Now()

	s := startResourceSpinner("CloudWatch Logs")

	results := make([]regionScan, len(regions))
	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(idx int, r string) {
			defer wg.Done()
			results[idx].region = r

			awsCfg, err := awsclient.LoadConfig(ctx, r, awsclient.WithIMDS())
			if err != nil {
				results[idx].errs = []error{err}
				return
			}

			scanner := awsclient.NewLogGroupScanner(cloudwatchlogs.NewFromConfig(awsCfg), r)
			results[idx].groups, results[idx].errs = scanner.ScanLogGroups(ctx, cfg.Filter.Prefixes, cfg.Filter.Tags)
		}(i, region)
	}
	wg.Wait()

	scanDuration := time.Since(scanStartTime)

	total := 0
	for _, result := range results {
		total += len(result.groups)
	}
	s.FinalMSG = fmt.Sprintf("✓ [%d log groups found] CloudWatch Logs analyzed - Completed in %.2f seconds\n",
		total, scanDuration.Seconds())
	s.Stop()

	for _, result := range results {
		for _, err := range result.errs {
			fmt.Printf("Error in region %s: %v\n", result.region, err)
		}
	}

	if len(cfg.Filter.Prefixes) > 0 || len(cfg.Filter.Tags) > 0 {
		fmt.Printf("Filter: prefixes=%v tags=%v\n", cfg.Filter.Prefixes, cfg.Filter.Tags)
	}
	fmt.Printf("Deletion delay: %d days after retention (%s)\n", cfg.Deletion.DelayDays, regionList(regions))

	return results, scanStartTime, scanDuration
}

func regionList(regions []string) string {
	out := ""
	for i, r := range regions {
		if i > 0 {
			out += ", "
		}
		name, ok := utils.GetRegionDescriptiveName(r)
		if !ok {
			name = r
		}
		out += fmt.Sprintf("%s: %s", r, name)
	}
	return out
}
