package scheduler

import (
	"math"
	"time"

	"github.com/samber/lo"

	"mawsool-planner/errors"
	"mawsool-planner/metrics"
	"mawsool-planner/models"
	"mawsool-planner/staffing"
)

// Summary describes one scenario generation run.
type Summary struct {
	// PeakRequired is the busiest interval's requirement, the anchor of the
	// multiplier. Zero means the forecast was empty and nothing changed.
	PeakRequired int
	// Multiplier is budget / PeakRequired; below 1 the plan is capped,
	// above 1 it is over-provisioned.
	Multiplier float64
	// ScheduledTotal sums scheduled agents across all intervals.
	ScheduledTotal int
	// CapacityTotal sums estimated handled calls across all intervals.
	CapacityTotal int
	// Understaffed counts intervals scheduled below their own requirement.
	Understaffed int
}

// GenerateScenario rescales every interval's requirement so the single
// busiest interval lands at the concurrent-agent budget, then fills in the
// capacity estimate per interval. All intervals scale by the same ratio;
// non-peak intervals may end up under- or over-staffed relative to their own
// requirement. The interval set is augmented in one pass and no partially
// updated forecast is ever observable.
func GenerateScenario(fc *models.Forecast, maxConcurrent float64, f staffing.Factors) (Summary, error) {
	if fc == nil {
		return Summary{}, errors.ErrNoForecast
	}
	if maxConcurrent <= 0 {
		return Summary{}, errors.ErrInvalidBudget
	}

	peak := lo.Max(lo.Map(fc.Intervals, func(iv *models.ForecastInterval, _ int) int {
		return iv.RequiredAgents
	}))
	if peak == 0 {
		return Summary{}, nil
	}

	metrics.ResetPlannerGauges()
	start := time.Now()

	multiplier := maxConcurrent / float64(peak)
	s := Summary{PeakRequired: peak, Multiplier: multiplier}
	for _, iv := range fc.Intervals {
		scheduled := int(math.Ceil(float64(iv.RequiredAgents) * multiplier))
		iv.Scheduled = &models.ScheduledPlan{
			Agents:   scheduled,
			Capacity: staffing.IntervalCapacity(scheduled, iv.AvgAHT, f),
		}
		s.ScheduledTotal += scheduled
		s.CapacityTotal += iv.Scheduled.Capacity
		if scheduled < iv.RequiredAgents {
			s.Understaffed++
		}
	}

	metrics.PlannerPeakRequired.Set(float64(s.PeakRequired))
	metrics.PlannerMultiplier.Set(s.Multiplier)
	metrics.PlannerScheduledTotal.Set(float64(s.ScheduledTotal))
	metrics.PlannerCapacityTotal.Set(float64(s.CapacityTotal))
	metrics.PlannerUnderstaffed.Set(float64(s.Understaffed))
	metrics.PlannerDurationSeconds.Observe(time.Since(start).Seconds())
	return s, nil
}
