package formatter

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/logsweep/internal/models"
	"github.com/younsl/logsweep/pkg/utils"
)

// maxLogGroupNameWidth is the widest LOG GROUP column before names are truncated.
const maxLogGroupNameWidth = 60

// PrintDeletionPlanTable prints the log groups with their deletion time, soonest first.
func PrintDeletionPlanTable(out io.Writer, plans []models.PlannedDeletion, now time.Time, scanStartTime time.Time, scanDuration time.Duration) {
	if len(plans) == 0 {
		fmt.Fprintln(out, "No matching CloudWatch log groups found.")
		return
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].DeleteAt.Before(plans[j].DeleteAt)
	})

	printTimestamp(out, scanStartTime, scanDuration)

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "LOG GROUP\tREGION\tRETENTION\tSIZE\tCREATED\tDELETE AT\tIN\tMONTHLY COST\tPRICING")

	var totalBytes int64
	var totalCost float64
	for _, plan := range plans {
		created := "N/A"
		if !plan.LogGroup.CreationTime.IsZero() {
			created = plan.LogGroup.CreationTime.Format("2006-01-02")
		}

		due := humanize.RelTime(plan.DeleteAt, now, "ago", "from now")
		if plan.Clamped {
			due += " (overdue)"
		}

		cost := "N/A"
		if plan.PricingSource != "N/A" {
			cost = fmt.Sprintf("$%.2f", plan.EstimatedMonthlyCost)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			TruncateString(plan.LogGroup.LogGroupName, maxLogGroupNameWidth),
			plan.Region,
			utils.RetentionLabel(plan.LogGroup.RetentionInDays),
			humanize.IBytes(uint64(plan.LogGroup.StoredBytes)),
			created,
			plan.DeleteAt.UTC().Format("2006-01-02 15:04 UTC"),
			due,
			cost,
			GetPricingMarker(plan.PricingSource),
		)

		totalBytes += plan.LogGroup.StoredBytes
		totalCost += plan.EstimatedMonthlyCost
	}

	fmt.Fprintf(w, "Total: %s\t\t\t%s\t\t\t\t$%.2f\t\n",
		humanize.Comma(int64(len(plans))),
		humanize.IBytes(uint64(totalBytes)),
		totalCost,
	)
	w.Flush()
}

// PrintDeletionPlanSummary prints log group count, stored size and cost per region.
func PrintDeletionPlanSummary(out io.Writer, plans []models.PlannedDeletion) {
	if len(plans) == 0 {
		return
	}

	type regionTotals struct {
		count int
		bytes int64
		cost  float64
	}
	byRegion := make(map[string]*regionTotals)
	for _, plan := range plans {
		t, ok := byRegion[plan.Region]
		if !ok {
			t = &regionTotals{}
			byRegion[plan.Region] = t
		}
		t.count++
		t.bytes += plan.LogGroup.StoredBytes
		t.cost += plan.EstimatedMonthlyCost
	}

	regions := make([]string, 0, len(byRegion))
	for region := range byRegion {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	fmt.Fprintln(out, "\n## Log Group Deletion Summary")

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tLOG GROUPS\tSTORED\tMONTHLY STORAGE COST")
	for _, region := range regions {
		t := byRegion[region]
		fmt.Fprintf(w, "%s\t%d\t%s\t$%.2f\n", region, t.count, humanize.IBytes(uint64(t.bytes)), t.cost)
	}
	w.Flush()
}

// PrintBackfillResults prints one line per log group scheduled (or that would be
// scheduled in a dry run) by the backfill command.
func PrintBackfillResults(out io.Writer, results []models.BackfillResult, dryRun bool) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No log groups to schedule.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "LOG GROUP\tREGION\tFIRE AT\tSCHEDULE\tSTATUS")

	failed := 0
	for _, r := range results {
		status := "scheduled"
		switch {
		case r.Err != nil:
			status = "failed: " + r.Err.Error()
			failed++
		case dryRun:
			status = "dry-run"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			TruncateString(r.Plan.LogGroup.LogGroupName, maxLogGroupNameWidth),
			r.Plan.Region,
			utils.AtExpression(r.Plan.DeleteAt),
			r.ScheduleName,
			status,
		)
	}
	w.Flush()

	verb := "scheduled"
	if dryRun {
		verb = "would be scheduled"
	}
	fmt.Fprintf(out, "\n%d of %d log groups %s\n", len(results)-failed, len(results), verb)
}
