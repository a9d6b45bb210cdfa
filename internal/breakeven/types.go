package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget names the quantity the solver searches a contribution for
type SolveTarget string

const (
	// TargetGoalDeadline finds the monthly saving that reaches a goal within a deadline
	TargetGoalDeadline SolveTarget = "goal_deadline"
	// TargetNestEgg finds the monthly contribution that reaches a nest egg at retirement
	TargetNestEgg SolveTarget = "nest_egg"
	// TargetRetirementIncome finds the monthly contribution that funds a monthly retirement income
	TargetRetirementIncome SolveTarget = "retirement_income"
)

// Constraints bound a solve
type Constraints struct {
	// TargetAmount is the goal amount, nest egg or monthly retirement income
	TargetAmount decimal.Decimal `json:"targetAmount"`

	// DeadlineMonths applies to TargetGoalDeadline
	DeadlineMonths int `json:"deadlineMonths,omitempty"`

	// Contribution search bounds in whole currency units
	MinContribution *decimal.Decimal `json:"minContribution,omitempty"`
	MaxContribution *decimal.Decimal `json:"maxContribution,omitempty"`
}

// SolveRequest defines the parameters for a solver run
type SolveRequest struct {
	Target        SolveTarget
	Profile       *domain.Profile // required for retirement targets
	Constraints   Constraints
	MaxIterations int
}

// SolveResult contains the contribution found by a solver run
type SolveResult struct {
	Target          SolveTarget `json:"target"`
	Success         bool        `json:"success"`
	Iterations      int         `json:"iterations"`
	ConvergenceInfo string      `json:"convergenceInfo,omitempty"`

	TargetAmount                decimal.Decimal `json:"targetAmount"`
	RequiredMonthlyContribution decimal.Decimal `json:"requiredMonthlyContribution"`

	// Goal targets
	DeadlineMonths int                          `json:"deadlineMonths,omitempty"`
	Goal           *domain.GoalSimulationResult `json:"goal,omitempty"`

	// Retirement targets
	RetirementAge           int             `json:"retirementAge,omitempty"`
	ProjectedNestEgg        decimal.Decimal `json:"projectedNestEgg,omitempty"`
	MonthlyRetirementIncome decimal.Decimal `json:"monthlyRetirementIncome,omitempty"`
	CurrentContribution     decimal.Decimal `json:"currentContribution,omitempty"`
	ContributionGap         decimal.Decimal `json:"contributionGap,omitempty"`
	PercentOfIncome         decimal.Decimal `json:"percentOfIncome,omitempty"`
}

// SolverOptions configures the solver
type SolverOptions struct {
	MaxIterations int // binary search steps before giving up on convergence
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 64,
	}
}

// Validate checks the constraints for a target
func (c *Constraints) Validate(target SolveTarget) error {
	if !c.TargetAmount.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   fmt.Sprintf("target amount must be positive, got %s", c.TargetAmount),
		}
	}

	if target == TargetGoalDeadline {
		if c.DeadlineMonths < 1 || c.DeadlineMonths > calculation.MaxGoalMonths {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   fmt.Sprintf("deadline must be between 1 and %d months, got %d", calculation.MaxGoalMonths, c.DeadlineMonths),
			}
		}
	}

	if c.MinContribution != nil && c.MinContribution.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min contribution cannot be negative",
		}
	}
	if c.MaxContribution != nil && !c.MaxContribution.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max contribution must be positive",
		}
	}
	if c.MinContribution != nil && c.MaxContribution != nil && c.MinContribution.GreaterThan(*c.MaxContribution) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min contribution cannot be greater than max contribution",
		}
	}

	return nil
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
