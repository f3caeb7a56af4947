package processor

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/younsl/logsweep/internal/batch"
	"github.com/younsl/logsweep/internal/invocation"
	"github.com/younsl/logsweep/internal/models"
)

// Deleter deletes a log group, reporting deleted=false if it was already gone.
type Deleter interface {
	Delete(ctx context.Context, region, name string) (bool, error)
}

// DeletionProcessor deletes log groups whose schedule has fired.
type DeletionProcessor struct {
	deleter Deleter
}

// NewDeletionProcessor creates a DeletionProcessor.
func NewDeletionProcessor(deleter Deleter) *DeletionProcessor {
	return &DeletionProcessor{deleter: deleter}
}

// HandleEvent processes one SQS batch of deletion messages.
func (p *DeletionProcessor) HandleEvent(ctx context.Context, inv *invocation.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	return batch.Process(ctx, inv.Logger, ev.Records, p.processRecord)
}

func (p *DeletionProcessor) processRecord(ctx context.Context, logger log.Logger, record events.SQSMessage) error {
	msg, err := models.ParseDeletionMessage([]byte(record.Body))
	if err != nil {
		return err
	}
	logger = log.With(logger, "log_group", msg.LogGroupName, "region", msg.AWSRegion)

	deleted, err := p.deleter.Delete(ctx, msg.AWSRegion, msg.LogGroupName)
	if err != nil {
		return err
	}
	if !deleted {
		level.Info(logger).Log("msg", "log group already deleted, nothing to do")
		return nil
	}

	level.Info(logger).Log("msg", "deleted log group")
	return nil
}
