package output

import (
	"context"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/finplan/internal/breakeven"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// GoalRequest asks for a savings goal simulation alongside the profile results
type GoalRequest struct {
	TargetAmount        decimal.Decimal `json:"targetAmount" yaml:"target_amount"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution" yaml:"monthly_contribution"`

	// DeadlineMonths > 0 also solves the contribution that meets the deadline
	DeadlineMonths int `json:"deadlineMonths,omitempty" yaml:"deadline_months,omitempty"`
}

// Report gathers every calculator result for one profile
type Report struct {
	Name        string                       `json:"name,omitempty"`
	Profile     *domain.Profile              `json:"profile"`
	Portfolio   *domain.PortfolioArchetype   `json:"portfolio"`
	Retirement  *domain.RetirementPlan       `json:"retirement"`
	Goal        *domain.GoalSimulationResult `json:"goal,omitempty"`
	GoalPlan    *breakeven.SolveResult       `json:"goalPlan,omitempty"`
	Notes       []string                     `json:"notes,omitempty"`
	Assumptions []string                     `json:"assumptions"`
}

// ReportGenerator builds reports with a shared engine
type ReportGenerator struct {
	Engine *calculation.Engine
	Solver *breakeven.Solver
}

// NewReportGenerator creates a generator; a nil engine logs nothing
func NewReportGenerator(engine *calculation.Engine) *ReportGenerator {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	return &ReportGenerator{
		Engine: engine,
		Solver: breakeven.NewDefaultSolver(engine),
	}
}

// Build runs the calculators for profile and the optional goal
func (rg *ReportGenerator) Build(ctx context.Context, profile *domain.Profile, goal *GoalRequest) (*Report, error) {
	if profile == nil {
		return nil, domain.ErrProfileIncomplete
	}

	report := &Report{
		Name:        profile.Name,
		Profile:     profile,
		Portfolio:   rg.Engine.ClassifyPortfolio(profile),
		Retirement:  rg.Engine.ProjectRetirement(profile),
		Assumptions: DefaultAssumptions,
	}
	report.Notes = profileNotes(profile, report.Retirement)

	if goal != nil {
		result, err := rg.Engine.SimulateGoal(goal.TargetAmount, goal.MonthlyContribution)
		if err != nil {
			return nil, fmt.Errorf("goal simulation failed: %w", err)
		}
		report.Goal = result
		if !result.Reached {
			report.Notes = append(report.Notes,
				fmt.Sprintf("The goal is not reached within %d months at this contribution", calculation.MaxGoalMonths))
		}

		if goal.DeadlineMonths > 0 {
			plan, err := rg.Solver.SolveGoalContribution(ctx, goal.TargetAmount, goal.DeadlineMonths)
			if err != nil {
				return nil, fmt.Errorf("goal contribution solve failed: %w", err)
			}
			report.GoalPlan = plan
		}
	}

	return report, nil
}

func profileNotes(profile *domain.Profile, plan *domain.RetirementPlan) []string {
	var notes []string
	if plan.UsedDefaultAge {
		notes = append(notes, fmt.Sprintf("Age %q is not a number; assumed %d", profile.Age, domain.DefaultAge))
	}
	if plan.UsedDefaultIncome {
		notes = append(notes, fmt.Sprintf("Monthly income %q is not a number; assumed %s", profile.MonthlyIncome,
			FormatCurrency(decimal.NewFromInt(domain.DefaultMonthlyIncome))))
	}
	if _, ok := domain.ParseDependents(profile.Dependents); !ok {
		notes = append(notes, fmt.Sprintf("Dependents %q not recognized; using the %s bracket", profile.Dependents, domain.DependentsFiveOrMore))
	}
	if plan.YearsUntilRetirement == 0 {
		notes = append(notes, "Already at or past the retirement age; no projection period")
	}
	return notes
}

// DisplayCurrency is the currency amounts are displayed in
const DisplayCurrency = money.MXN

// wholeUnits reuses the display currency's symbol and separators with no fraction digits
func wholeUnits() *money.Formatter {
	cur := money.GetCurrency(DisplayCurrency)
	return money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
}

// FormatCurrency formats whole currency units with thousands separators, e.g. $1,234,567
func FormatCurrency(amount decimal.Decimal) string {
	return wholeUnits().Format(amount.Round(0).IntPart())
}

// FormatCents formats an amount with two decimals and separators, e.g. $4,799.06
func FormatCents(amount decimal.Decimal) string {
	return money.New(amount.Shift(2).Round(0).IntPart(), DisplayCurrency).Display()
}

// FormatPercentage formats a percentage value, e.g. 11%
func FormatPercentage(amount decimal.Decimal) string {
	return amount.String() + "%"
}
