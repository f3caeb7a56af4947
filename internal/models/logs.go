package models

import "time"

// LogGroupInfo holds information about a CloudWatch Log Group relevant for deletion scheduling.
type LogGroupInfo struct {
	LogGroupName    string
	RetentionInDays *int32 // nil means "Never expire"
	ARN             string
	CreationTime    time.Time
	StoredBytes     int64
	Tags            map[string]string
}

// Retention returns the retention in days, treating an unset retention as 0.
func (i LogGroupInfo) Retention() int32 {
	if i.RetentionInDays == nil {
		return 0
	}
	return *i.RetentionInDays
}

// PlannedDeletion pairs a log group with the instant its deletion schedule fires.
// Used by the CLI plan and backfill commands.
type PlannedDeletion struct {
	LogGroup             LogGroupInfo
	Region               string
	DeleteAt             time.Time
	Clamped              bool // DeleteAt was in the past and moved forward
	EstimatedMonthlyCost float64
	PricingSource        string
}

// BackfillResult is the outcome of scheduling one planned deletion.
type BackfillResult struct {
	Plan         PlannedDeletion
	ScheduleName string
	ScheduleARN  string
	Err          error
}
