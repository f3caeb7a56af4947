package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports a message that does not match its expected schema.
type ValidationError struct {
	Kind string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Kind, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogGroupCreatedEvent is a CreateLogGroup call observed through CloudTrail.
type LogGroupCreatedEvent struct {
	EventTime    time.Time
	AWSRegion    string
	LogGroupName string
	Tags         map[string]string
}

// logGroupCreatedEnvelope mirrors the EventBridge event delivered through the intake queue.
type logGroupCreatedEnvelope struct {
	Detail struct {
		EventTime         string `json:"eventTime" validate:"required"`
		AWSRegion         string `json:"awsRegion" validate:"required"`
		RequestParameters struct {
			LogGroupName string            `json:"logGroupName" validate:"required"`
			Tags         map[string]string `json:"tags"`
		} `json:"requestParameters"`
	} `json:"detail"`
}

// ParseLogGroupCreatedEvent decodes and validates an intake queue message body.
func ParseLogGroupCreatedEvent(body []byte) (LogGroupCreatedEvent, error) {
	const kind = "log group created event"

	var env logGroupCreatedEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return LogGroupCreatedEvent{}, &ValidationError{Kind: kind, Err: err}
	}
	if err := validate.Struct(env); err != nil {
		return LogGroupCreatedEvent{}, &ValidationError{Kind: kind, Err: err}
	}

	eventTime, err := time.Parse(time.RFC3339, env.Detail.EventTime)
	if err != nil {
		return LogGroupCreatedEvent{}, &ValidationError{Kind: kind, Err: fmt.Errorf("eventTime: %w", err)}
	}

	return LogGroupCreatedEvent{
		EventTime:    eventTime.UTC(),
		AWSRegion:    env.Detail.AWSRegion,
		LogGroupName: env.Detail.RequestParameters.LogGroupName,
		Tags:         env.Detail.RequestParameters.Tags,
	}, nil
}

// DeletionMessage is delivered to the deletion queue when a schedule fires.
type DeletionMessage struct {
	LogGroupName string `json:"logGroupName" validate:"required"`
	AWSRegion    string `json:"awsRegion" validate:"required"`
}

// ParseDeletionMessage decodes and validates a deletion queue message body.
func ParseDeletionMessage(body []byte) (DeletionMessage, error) {
	const kind = "deletion message"

	var msg DeletionMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return DeletionMessage{}, &ValidationError{Kind: kind, Err: err}
	}
	if err := validate.Struct(msg); err != nil {
		return DeletionMessage{}, &ValidationError{Kind: kind, Err: err}
	}
	return msg, nil
}
