// Package processor implements the two SQS-driven stages of the pipeline.
//
// IntakeProcessor consumes log-group-created events, looks up the log group's
// retention and registers a one-shot deletion schedule for it. DeletionProcessor
// consumes the messages those schedules deliver and deletes the log group.
//
// Both process their batch sequentially and report failed records individually,
// so one bad record never blocks its siblings.
package processor
