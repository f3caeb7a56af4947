package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/younsl/logsweep/internal/models"
)

// AlarmLister lists CloudWatch metric alarms in one region.
type AlarmLister struct {
	client cloudwatch.DescribeAlarmsAPIClient
	region string
}

// NewAlarmLister creates an AlarmLister.
func NewAlarmLister(client cloudwatch.DescribeAlarmsAPIClient, region string) *AlarmLister {
	return &AlarmLister{client: client, region: region}
}

// NewAlarmListerFromConfig creates an AlarmLister backed by a new CloudWatch client.
func NewAlarmListerFromConfig(cfg aws.Config) *AlarmLister {
	return NewAlarmLister(cloudwatch.NewFromConfig(cfg), cfg.Region)
}

// ListAlarms returns metric alarms whose names start with prefix.
func (l *AlarmLister) ListAlarms(ctx context.Context, prefix string) ([]models.AlarmSummary, error) {
	input := &cloudwatch.DescribeAlarmsInput{}
	if prefix != "" {
		input.AlarmNamePrefix = aws.String(prefix)
	}

	var alarms []models.AlarmSummary
	paginator := cloudwatch.NewDescribeAlarmsPaginator(l.client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error describing alarms in %s: %w", l.region, err)
		}
		for _, alarm := range output.MetricAlarms {
			updated := "N/A"
			if alarm.StateUpdatedTimestamp != nil {
				updated = alarm.StateUpdatedTimestamp.UTC().Format("2006-01-02 15:04:05")
			}
			alarms = append(alarms, models.AlarmSummary{
				Name:        aws.ToString(alarm.AlarmName),
				Region:      l.region,
				State:       string(alarm.StateValue),
				Reason:      aws.ToString(alarm.StateReason),
				UpdatedAt:   updated,
				Description: aws.ToString(alarm.AlarmDescription),
			})
		}
	}
	return alarms, nil
}
