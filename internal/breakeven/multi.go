package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/shopspring/decimal"
)

// SweepRow is one goal simulation in a contribution sweep
type SweepRow struct {
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	MonthsToTarget      int             `json:"monthsToTarget"`
	Reached             bool            `json:"reached"`
	TotalInterestEarned decimal.Decimal `json:"totalInterestEarned"`
	MonthsSavedVsBase   int             `json:"monthsSavedVsBase"`
}

// SweepResult compares goal timelines across contribution levels
type SweepResult struct {
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	BaseMonthly     decimal.Decimal `json:"baseMonthly"`
	Rows            []SweepRow      `json:"rows"`
	Recommendations []string        `json:"recommendations"`
}

// DefaultSweepFactors scale the base contribution in a sweep
var DefaultSweepFactors = []decimal.Decimal{
	decimal.RequireFromString("0.5"),
	decimal.RequireFromString("0.75"),
	decimal.NewFromInt(1),
	decimal.RequireFromString("1.25"),
	decimal.RequireFromString("1.5"),
	decimal.NewFromInt(2),
}

// SweepGoal simulates a goal at each factor × base contribution, rounded to
// whole units, and compares each timeline with the base one.
func (s *Solver) SweepGoal(ctx context.Context, target, baseMonthly decimal.Decimal, factors []decimal.Decimal) (*SweepResult, error) {
	if len(factors) == 0 {
		factors = DefaultSweepFactors
	}

	base, err := calculation.SimulateGoal(target, baseMonthly)
	if err != nil {
		return nil, &BreakEvenError{Operation: "sweep_goal", Message: "invalid base simulation", Cause: err}
	}

	result := &SweepResult{
		TargetAmount: target,
		BaseMonthly:  baseMonthly,
	}

	for _, factor := range factors {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		monthly := baseMonthly.Mul(factor).Round(0)
		if !monthly.IsPositive() {
			continue
		}
		sim, err := calculation.SimulateGoal(target, monthly)
		if err != nil {
			return nil, &BreakEvenError{Operation: "sweep_goal", Message: fmt.Sprintf("simulation at %s failed", monthly), Cause: err}
		}
		result.Rows = append(result.Rows, SweepRow{
			MonthlyContribution: monthly,
			MonthsToTarget:      sim.MonthsToTarget,
			Reached:             sim.Reached,
			TotalInterestEarned: sim.TotalInterestEarned,
			MonthsSavedVsBase:   base.MonthsToTarget - sim.MonthsToTarget,
		})
	}

	if len(result.Rows) == 0 {
		return nil, &BreakEvenError{Operation: "sweep_goal", Message: "no positive contribution in sweep"}
	}

	result.Recommendations = sweepRecommendations(result)
	return result, nil
}

func sweepRecommendations(r *SweepResult) []string {
	recommendations := []string{}

	var fastest *SweepRow
	for i := range r.Rows {
		if r.Rows[i].Reached && (fastest == nil || r.Rows[i].MonthsToTarget < fastest.MonthsToTarget) {
			fastest = &r.Rows[i]
		}
	}
	if fastest != nil && fastest.MonthsSavedVsBase > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Saving %s per month reaches the goal %d months sooner", fastest.MonthlyContribution.StringFixed(0), fastest.MonthsSavedVsBase))
	}

	for _, row := range r.Rows {
		if !row.Reached {
			recommendations = append(recommendations,
				fmt.Sprintf("At %s per month the goal is not reached within %d months", row.MonthlyContribution.StringFixed(0), calculation.MaxGoalMonths))
			break
		}
	}

	return recommendations
}
