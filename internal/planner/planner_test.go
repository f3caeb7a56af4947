package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/younsl/logsweep/internal/models"
	awsclient "github.com/younsl/logsweep/pkg/aws"
	"github.com/younsl/logsweep/pkg/pricing"
)

type flatEstimator struct{}

func (flatEstimator) MonthlyCost(_ context.Context, _ string, storedBytes int64) (float64, pricing.PricingSource) {
	return float64(storedBytes) / (1 << 30), pricing.PricingSourceDefault
}

type fakeScheduler struct {
	requests []models.DeletionScheduleRequest
	failFor  string
}

func (f *fakeScheduler) Schedule(_ context.Context, req models.DeletionScheduleRequest) (string, error) {
	if req.Payload.LogGroupName == f.failFor {
		return "", errors.New("conflict")
	}
	f.requests = append(f.requests, req)
	return "arn:aws:scheduler:us-east-1:123456789012:schedule/default/" + req.Name, nil
}

func retention(days int32) *int32 { return &days }

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func testGroups() []models.LogGroupInfo {
	return []models.LogGroupInfo{
		{
			LogGroupName:    "/aws/lambda/fresh",
			RetentionInDays: retention(30),
			CreationTime:    time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC),
			StoredBytes:     2 << 30,
		},
		{
			LogGroupName: "/aws/lambda/old",
			CreationTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestPlan(t *testing.T) {
	p := &Planner{DelayDays: 7, Estimator: flatEstimator{}, Now: func() time.Time { return now }}

	plans := p.Plan(context.Background(), "us-east-1", testGroups())
	require.Len(t, plans, 2)

	require.Equal(t, time.Date(2025, 3, 29, 12, 0, 0, 0, time.UTC), plans[0].DeleteAt)
	require.False(t, plans[0].Clamped)
	require.Equal(t, "us-east-1", plans[0].Region)
	require.InDelta(t, 2.0, plans[0].EstimatedMonthlyCost, 1e-9)
	require.Equal(t, "Default", plans[0].PricingSource)

	require.Equal(t, now.Add(OverdueLead), plans[1].DeleteAt)
	require.True(t, plans[1].Clamped)
}

func TestPlanWithoutEstimator(t *testing.T) {
	p := &Planner{Now: func() time.Time { return now }}

	plans := p.Plan(context.Background(), "us-east-1", testGroups())
	require.Equal(t, "N/A", plans[0].PricingSource)
	require.Zero(t, plans[0].EstimatedMonthlyCost)
}

func TestBackfill(t *testing.T) {
	target := awsclient.ScheduleTarget{QueueARN: "arn:aws:sqs:us-east-1:123456789012:deletions", RoleARN: "arn:aws:iam::123456789012:role/scheduler", WindowMinutes: 5}
	plans := (&Planner{Now: func() time.Time { return now }}).Plan(context.Background(), "us-east-1", testGroups())

	t.Run("dry run", func(t *testing.T) {
		scheduler := &fakeScheduler{}
		results := Backfill(context.Background(), scheduler, target, plans, true)
		require.Len(t, results, 2)
		require.Empty(t, scheduler.requests)
		for _, r := range results {
			require.NotEmpty(t, r.ScheduleName)
			require.Empty(t, r.ScheduleARN)
			require.NoError(t, r.Err)
		}
	})

	t.Run("continues after failure", func(t *testing.T) {
		scheduler := &fakeScheduler{failFor: "/aws/lambda/fresh"}
		results := Backfill(context.Background(), scheduler, target, plans, false)
		require.Len(t, results, 2)
		require.Error(t, results[0].Err)
		require.NoError(t, results[1].Err)
		require.Len(t, scheduler.requests, 1)
		require.Equal(t, plans[1].DeleteAt, scheduler.requests[0].FireAt)
		require.Equal(t, models.DeletionMessage{LogGroupName: "/aws/lambda/old", AWSRegion: "us-east-1"}, scheduler.requests[0].Payload)
	})
}
