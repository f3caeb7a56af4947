// Package batch runs a record handler over an SQS batch and reports partial failures.
package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	awsclient "github.com/younsl/logsweep/pkg/aws"
)

// ErrAllRecordsFailed is returned when every record of a non-empty batch failed.
// The whole batch is then retried by the event source mapping.
var ErrAllRecordsFailed = errors.New("all records in batch failed")

// RecordHandler processes a single SQS record. logger is already scoped to the record.
type RecordHandler func(ctx context.Context, logger log.Logger, record events.SQSMessage) error

// Process calls handler for each record in order. Records whose handler returns an
// error are reported as batch item failures so only they are redelivered.
func Process(ctx context.Context, logger log.Logger, records []events.SQSMessage, handler RecordHandler) (events.SQSEventResponse, error) {
	var response events.SQSEventResponse
	var errs []error

	for _, record := range records {
		recordLogger := log.With(logger, "message_id", record.MessageId)

		if err := handler(ctx, recordLogger, record); err != nil {
			level.Error(recordLogger).Log("msg", "failed to process record", "error_code", awsclient.APIErrorCode(err), "err", err)
			response.BatchItemFailures = append(response.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
			errs = append(errs, fmt.Errorf("record %s: %w", record.MessageId, err))
		}
	}

	if len(records) > 0 && len(errs) == len(records) {
		return response, fmt.Errorf("%w: %d records: %w", ErrAllRecordsFailed, len(records), errors.Join(errs...))
	}

	level.Info(logger).Log("msg", "processed batch", "records", len(records), "failed", len(errs))
	return response, nil
}
