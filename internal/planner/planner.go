// Package planner computes deletion plans for log groups that already exist and
// registers them, for the plan and backfill commands.
package planner

import (
	"context"
	"time"

	"github.com/younsl/logsweep/internal/models"
	awsclient "github.com/younsl/logsweep/pkg/aws"
	"github.com/younsl/logsweep/pkg/pricing"
	"github.com/younsl/logsweep/pkg/utils"
)

// OverdueLead is how far in the future an overdue deletion is moved.
const OverdueLead = time.Hour

// CostEstimator estimates the monthly storage cost of a log group.
type CostEstimator interface {
	MonthlyCost(ctx context.Context, region string, storedBytes int64) (float64, pricing.PricingSource)
}

// Scheduler registers a deletion schedule and returns its ARN.
type Scheduler interface {
	Schedule(ctx context.Context, req models.DeletionScheduleRequest) (string, error)
}

// Planner turns scanned log groups into planned deletions.
type Planner struct {
	DelayDays int
	Estimator CostEstimator
	Now       func() time.Time
}

// Plan computes when each log group is deleted, using its creation time as the
// event time. Deletions that are already due are moved to now plus OverdueLead.
func (p *Planner) Plan(ctx context.Context, region string, groups []models.LogGroupInfo) []models.PlannedDeletion {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	current := now().UTC()

	plans := make([]models.PlannedDeletion, 0, len(groups))
	for _, lg := range groups {
		plan := models.PlannedDeletion{
			LogGroup:      lg,
			Region:        region,
			DeleteAt:      utils.DeletionTime(lg.CreationTime, lg.RetentionInDays, p.DelayDays),
			PricingSource: string(pricing.PricingSourceNA),
		}
		if plan.DeleteAt.Before(current) {
			plan.DeleteAt = current.Add(OverdueLead).Truncate(time.Second)
			plan.Clamped = true
		}
		if p.Estimator != nil {
			cost, source := p.Estimator.MonthlyCost(ctx, region, lg.StoredBytes)
			plan.EstimatedMonthlyCost = cost
			plan.PricingSource = string(source)
		}
		plans = append(plans, plan)
	}
	return plans
}

// Backfill registers a deletion schedule for every plan. A failed plan does not stop
// the others. With dryRun set only the schedule names are computed.
func Backfill(ctx context.Context, scheduler Scheduler, target awsclient.ScheduleTarget, plans []models.PlannedDeletion, dryRun bool) []models.BackfillResult {
	results := make([]models.BackfillResult, 0, len(plans))
	for _, plan := range plans {
		req := target.Request(plan.LogGroup.LogGroupName, plan.Region, plan.DeleteAt)
		result := models.BackfillResult{Plan: plan, ScheduleName: req.Name}
		if !dryRun {
			result.ScheduleARN, result.Err = scheduler.Schedule(ctx, req)
		}
		results = append(results, result)
	}
	return results
}
