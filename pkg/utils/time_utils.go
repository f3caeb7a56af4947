package utils

import (
	"fmt"
	"time"
)

const (
	// atExpressionLayout is the second-granularity layout EventBridge Scheduler expects inside at(...).
	atExpressionLayout = "2006-01-02T15:04:05"

	// AlarmTimeLayout is the human readable layout used in notifications.
	AlarmTimeLayout = "2006-01-02 15:04:05 UTC"

	// cloudWatchTimestampLayout is the alarm state timestamp format, e.g. 2019-10-02T17:20:48.551+0000
	cloudWatchTimestampLayout = "2006-01-02T15:04:05.000-0700"
)

// DeletionTime returns the instant a log group created at createdAt should be deleted:
// createdAt (in UTC) plus retention and delay days, truncated to the second.
// A nil retention counts as 0 days.
func DeletionTime(createdAt time.Time, retentionDays *int32, delayDays int) time.Time {
	retention := 0
	if retentionDays != nil {
		retention = int(*retentionDays)
	}
	return createdAt.UTC().AddDate(0, 0, retention+delayDays).Truncate(time.Second)
}

// AtExpression formats t as a one-shot schedule expression without sub-second or zone suffix.
func AtExpression(t time.Time) string {
	return fmt.Sprintf("at(%s)", t.UTC().Format(atExpressionLayout))
}

// ParseAlarmTimestamp parses the timestamp formats CloudWatch uses in alarm events.
func ParseAlarmTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(cloudWatchTimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatAlarmTime rewrites an ISO instant as "YYYY-MM-DD HH:MM:SS UTC".
func FormatAlarmTime(s string) (string, error) {
	t, err := ParseAlarmTimestamp(s)
	if err != nil {
		return "", err
	}
	return t.Format(AlarmTimeLayout), nil
}
