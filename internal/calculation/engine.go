package calculation

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine wraps the calculators with logging. It holds no mutable state
// after construction and is safe for concurrent use.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine that logs nothing
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger installs a logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// ClassifyPortfolio is ClassifyPortfolio with logging
func (e *Engine) ClassifyPortfolio(profile *domain.Profile) *domain.PortfolioArchetype {
	if profile == nil {
		e.Logger.Infof("portfolio classification skipped: profile incomplete")
		return nil
	}
	e.warnDefaults(profile)
	archetype := ClassifyPortfolio(profile)
	e.Logger.Debugf("classified profile risk=%q age=%q as %s", profile.RiskTolerance, profile.Age, archetype.Kind)
	return archetype
}

// ProjectRetirement is ProjectRetirement with logging
func (e *Engine) ProjectRetirement(profile *domain.Profile) *domain.RetirementPlan {
	if profile == nil {
		e.Logger.Infof("retirement projection skipped: profile incomplete")
		return nil
	}
	e.warnDefaults(profile)
	if _, ok := domain.ParseDependents(profile.Dependents); !ok {
		e.Logger.Warnf("dependents value %q not recognized, using %s bracket", profile.Dependents, domain.DependentsFiveOrMore)
	}
	plan := ProjectRetirement(profile)
	e.Logger.Debugf("projected retirement at %d: contribution=%s nestEgg=%s years=%d",
		plan.RetirementAge, plan.MonthlyContribution, plan.ProjectedNestEgg, plan.YearsUntilRetirement)
	return plan
}

// SimulateGoal is SimulateGoal with logging
func (e *Engine) SimulateGoal(targetAmount, monthlyContribution decimal.Decimal) (*domain.GoalSimulationResult, error) {
	result, err := SimulateGoal(targetAmount, monthlyContribution)
	if err != nil {
		e.Logger.Warnf("goal simulation rejected: %v", err)
		return nil, err
	}
	if !result.Reached {
		e.Logger.Infof("goal of %s not reached within %d months", targetAmount, MaxGoalMonths)
	}
	e.Logger.Debugf("goal simulation: target=%s monthly=%s months=%d", targetAmount, monthlyContribution, result.MonthsToTarget)
	return result, nil
}

func (e *Engine) warnDefaults(profile *domain.Profile) {
	if _, usedDefault := profile.ParsedAge(); usedDefault {
		e.Logger.Warnf("age %q is not numeric, using default %d", profile.Age, domain.DefaultAge)
	}
	if _, usedDefault := profile.ParsedMonthlyIncome(); usedDefault {
		e.Logger.Warnf("monthly income %q is not numeric, using default %d", profile.MonthlyIncome, domain.DefaultMonthlyIncome)
	}
}
