package models

import "time"

// DeletionScheduleRequest describes a one-shot schedule that delivers a DeletionMessage.
type DeletionScheduleRequest struct {
	Name           string
	GroupName      string // empty selects the default schedule group
	FireAt         time.Time
	TargetQueueARN string
	RoleARN        string
	WindowMinutes  int32
	Payload        DeletionMessage
}
