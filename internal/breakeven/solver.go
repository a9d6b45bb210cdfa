package breakeven

import (
	"context"
	"fmt"
	"math"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/shopspring/decimal"
)

// Solver finds the smallest whole monthly contribution that meets a target.
// Every target is monotonic in the contribution, so a binary search over
// whole currency units is exact.
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve routes a request to the solver for its target
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Constraints.Validate(req.Target); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	switch req.Target {
	case TargetGoalDeadline:
		return s.solveGoalDeadline(ctx, req)
	case TargetNestEgg, TargetRetirementIncome:
		return s.solveRetirement(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported solve target: %s", req.Target),
		}
	}
}

// SolveGoalContribution is a shortcut for a TargetGoalDeadline request
func (s *Solver) SolveGoalContribution(ctx context.Context, target decimal.Decimal, deadlineMonths int) (*SolveResult, error) {
	return s.Solve(ctx, SolveRequest{
		Target: TargetGoalDeadline,
		Constraints: Constraints{
			TargetAmount:   target,
			DeadlineMonths: deadlineMonths,
		},
	})
}

func (s *Solver) solveGoalDeadline(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	target := req.Constraints.TargetAmount
	deadline := req.Constraints.DeadlineMonths

	meets := func(monthly int64) bool {
		if monthly <= 0 {
			return false
		}
		r, err := calculation.SimulateGoal(target, decimal.NewFromInt(monthly))
		return err == nil && r.Reached && r.MonthsToTarget <= deadline
	}

	// one deposit of the full target always arrives in month 1
	upper := target.Ceil().IntPart()

	result := &SolveResult{
		Target:         req.Target,
		TargetAmount:   target,
		DeadlineMonths: deadline,
	}

	best, err := s.search(ctx, req, upper, meets, result)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return result, nil
	}

	monthly := decimal.NewFromInt(best)
	goal, err := s.Engine.SimulateGoal(target, monthly)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_goal_deadline", Message: "failed to simulate solution", Cause: err}
	}
	result.RequiredMonthlyContribution = monthly
	result.Goal = goal

	s.Engine.Logger.Debugf("goal %s within %d months needs %s/month (%d iterations)",
		target, deadline, monthly, result.Iterations)
	return result, nil
}

func (s *Solver) solveRetirement(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if req.Profile == nil {
		return nil, &BreakEvenError{Operation: "solve_retirement", Message: "profile is required"}
	}

	plan := s.Engine.ProjectRetirement(req.Profile)
	months := plan.YearsUntilRetirement * 12
	if months == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_retirement",
			Message:   fmt.Sprintf("no saving period: age %d is at or past retirement age %d", plan.CurrentAge, plan.RetirementAge),
		}
	}
	annualRate := plan.AnnualReturnPercent.InexactFloat64() / 100
	target := req.Constraints.TargetAmount
	goal := target.InexactFloat64()

	metric := func(fv float64) float64 { return math.Round(fv) }
	upper := target.Ceil().IntPart()
	if req.Target == TargetRetirementIncome {
		metric = func(fv float64) float64 { return math.Round(fv * calculation.DrawdownRate / 12) }
		upper = target.Mul(decimal.NewFromFloat(12 / calculation.DrawdownRate)).Ceil().IntPart()
	}

	meets := func(c int64) bool {
		if c <= 0 {
			return false
		}
		return metric(calculation.FutureValueOfAnnuity(float64(c), annualRate, months)) >= goal
	}

	result := &SolveResult{
		Target:              req.Target,
		TargetAmount:        target,
		RetirementAge:       plan.RetirementAge,
		CurrentContribution: plan.MonthlyContribution,
	}

	best, err := s.search(ctx, req, upper, meets, result)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return result, nil
	}

	fv := calculation.FutureValueOfAnnuity(float64(best), annualRate, months)
	result.RequiredMonthlyContribution = decimal.NewFromInt(best)
	result.ProjectedNestEgg = decimal.NewFromFloat(math.Round(fv))
	result.MonthlyRetirementIncome = decimal.NewFromFloat(math.Round(fv * calculation.DrawdownRate / 12))
	result.ContributionGap = result.RequiredMonthlyContribution.Sub(plan.MonthlyContribution)
	if income, _ := req.Profile.ParsedMonthlyIncome(); income > 0 {
		result.PercentOfIncome = result.RequiredMonthlyContribution.
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(income))).
			Round(1)
	}

	s.Engine.Logger.Debugf("%s target %s needs %s/month, currently %s",
		req.Target, target, result.RequiredMonthlyContribution, plan.MonthlyContribution)
	return result, nil
}

// search finds the smallest whole contribution in the constraint bounds for
// which meets holds. meets must be monotonic. It fills the result metadata.
func (s *Solver) search(ctx context.Context, req SolveRequest, upper int64, meets func(int64) bool, result *SolveResult) (int64, error) {
	lo := int64(0)
	hi := upper
	if c := req.Constraints.MinContribution; c != nil {
		lo = c.Ceil().IntPart()
	}
	if c := req.Constraints.MaxContribution; c != nil {
		if capped := c.Floor().IntPart(); capped < hi {
			hi = capped
		}
	}

	if hi < lo || !meets(hi) {
		result.Success = false
		result.ConvergenceInfo = "target not reachable within contribution bounds"
		return 0, nil
	}
	if meets(lo) {
		result.Success = true
		result.ConvergenceInfo = "minimum contribution already meets the target"
		return lo, nil
	}

	// invariant: meets(hi) && !meets(lo)
	for hi-lo > 1 {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		if result.Iterations >= req.MaxIterations {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("stopped after %d iterations, result may not be minimal", result.Iterations)
			return hi, nil
		}
		result.Iterations++

		mid := lo + (hi-lo)/2
		if meets(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}

	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("converged in %d iterations", result.Iterations)
	return hi, nil
}
