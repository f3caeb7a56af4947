package formatter

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/younsl/logsweep/internal/models"
)

const maxAlarmReasonWidth = 70

// PrintAlarmsTable prints alarms with those in ALARM state first.
func PrintAlarmsTable(out io.Writer, alarms []models.AlarmSummary) {
	if len(alarms) == 0 {
		fmt.Fprintln(out, "No CloudWatch alarms found.")
		return
	}

	sort.SliceStable(alarms, func(i, j int) bool {
		firingI := alarms[i].State == models.AlarmStateAlarm
		firingJ := alarms[j].State == models.AlarmStateAlarm
		if firingI != firingJ {
			return firingI
		}
		return alarms[i].Name < alarms[j].Name
	})

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREGION\tSTATE\tUPDATED (UTC)\tREASON")

	firing := 0
	for _, alarm := range alarms {
		if alarm.State == models.AlarmStateAlarm {
			firing++
		}
		reason := alarm.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			alarm.Name,
			alarm.Region,
			alarm.State,
			alarm.UpdatedAt,
			TruncateString(reason, maxAlarmReasonWidth),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d alarms, %d firing\n", len(alarms), firing)
}
