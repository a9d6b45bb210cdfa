package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// MaxGoalMonths is the hard termination cap of the goal simulation (30 years)
	MaxGoalMonths = 360

	// GoalAnnualRate is the fixed yearly return of savings-goal accounts
	GoalAnnualRate = 0.05
)

// ErrInvalidGoalInput is returned for non-positive goal simulation inputs
var ErrInvalidGoalInput = errors.New("goal simulation requires positive target and monthly contribution")

// GoalInputError names the offending field; it unwraps to ErrInvalidGoalInput
type GoalInputError struct {
	Field string
	Value decimal.Decimal
}

func (e *GoalInputError) Error() string {
	return fmt.Sprintf("%s must be positive, got %s", e.Field, e.Value.String())
}

func (e *GoalInputError) Unwrap() error {
	return ErrInvalidGoalInput
}

// SimulateGoal counts the months needed for monthly contributions, compounded
// at GoalAnnualRate, to reach targetAmount. Each month the contribution is
// added first and the balance is then grown; the loop stops at MaxGoalMonths.
func SimulateGoal(targetAmount, monthlyContribution decimal.Decimal) (*domain.GoalSimulationResult, error) {
	if !targetAmount.IsPositive() {
		return nil, &GoalInputError{Field: "targetAmount", Value: targetAmount}
	}
	if !monthlyContribution.IsPositive() {
		return nil, &GoalInputError{Field: "monthlyContribution", Value: monthlyContribution}
	}

	target := targetAmount.InexactFloat64()
	monthly := monthlyContribution.InexactFloat64()
	monthlyRate := GoalAnnualRate / 12

	months := 0
	accumulated := 0.0
	for accumulated < target && months < MaxGoalMonths {
		accumulated += monthly
		accumulated *= 1 + monthlyRate
		months++
	}
	interest := accumulated - monthly*float64(months)

	return &domain.GoalSimulationResult{
		MonthsToTarget:      months,
		TargetAmount:        targetAmount,
		MonthlyContribution: monthlyContribution,
		TotalContributed:    monthlyContribution.Mul(decimal.NewFromInt(int64(months))),
		FinalBalance:        decimal.NewFromFloat(accumulated).Round(2),
		TotalInterestEarned: decimal.NewFromFloat(interest).Round(2),
		Reached:             accumulated >= target,
	}, nil
}
