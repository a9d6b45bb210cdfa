package transform

import (
	"fmt"
	"strconv"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SetRiskTolerance replaces the profile's risk tolerance
type SetRiskTolerance struct {
	Risk domain.RiskTolerance
}

func (t *SetRiskTolerance) Name() string { return "set_risk" }

func (t *SetRiskTolerance) Description() string {
	return fmt.Sprintf("Set risk tolerance to %s", t.Risk.Resolved())
}

func (t *SetRiskTolerance) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if t.Risk == domain.RiskUnset || !t.Risk.Valid() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("invalid risk tolerance %q", t.Risk), nil)
	}
	return nil
}

func (t *SetRiskTolerance) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	modified.RiskTolerance = t.Risk
	return modified, nil
}

// SetMonthlyIncome replaces the monthly income with a whole amount
type SetMonthlyIncome struct {
	Amount int
}

func (t *SetMonthlyIncome) Name() string { return "set_income" }

func (t *SetMonthlyIncome) Description() string {
	return fmt.Sprintf("Set monthly income to %d", t.Amount)
}

func (t *SetMonthlyIncome) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if t.Amount < 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %d", t.Amount), nil)
	}
	return nil
}

func (t *SetMonthlyIncome) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	modified.MonthlyIncome = domain.FormValue(strconv.Itoa(t.Amount))
	return modified, nil
}

// ScaleMonthlyIncome changes the parsed monthly income by a percentage,
// rounding to whole units. A non-numeric income is scaled from its default.
type ScaleMonthlyIncome struct {
	Percent decimal.Decimal
}

func (t *ScaleMonthlyIncome) Name() string { return "scale_income" }

func (t *ScaleMonthlyIncome) Description() string {
	sign := ""
	if t.Percent.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("Change monthly income by %s%s%%", sign, t.Percent.String())
}

func (t *ScaleMonthlyIncome) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if t.Percent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("percent must be greater than -100, got %s", t.Percent), nil)
	}
	return nil
}

func (t *ScaleMonthlyIncome) Apply(base *domain.Profile) (*domain.Profile, error) {
	income, _ := base.ParsedMonthlyIncome()
	factor := decimal.NewFromInt(100).Add(t.Percent).Div(decimal.NewFromInt(100))
	scaled := decimal.NewFromInt(int64(income)).Mul(factor).Round(0)

	modified := base.Clone()
	modified.MonthlyIncome = domain.FormValue(scaled.String())
	return modified, nil
}

// ShiftAge moves the profile's age forward (or back) by whole years
type ShiftAge struct {
	Years int
}

func (t *ShiftAge) Name() string { return "shift_age" }

func (t *ShiftAge) Description() string {
	if t.Years < 0 {
		return fmt.Sprintf("Start %d years earlier", -t.Years)
	}
	return fmt.Sprintf("Start %d years later", t.Years)
}

func (t *ShiftAge) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	age, _ := base.ParsedAge()
	if age+t.Years < 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("shifted age %d is negative", age+t.Years), nil)
	}
	return nil
}

func (t *ShiftAge) Apply(base *domain.Profile) (*domain.Profile, error) {
	age, _ := base.ParsedAge()
	modified := base.Clone()
	modified.Age = domain.FormValue(strconv.Itoa(age + t.Years))
	return modified, nil
}

// SetDependents replaces the dependents value
type SetDependents struct {
	Value string
}

func (t *SetDependents) Name() string { return "set_dependents" }

func (t *SetDependents) Description() string {
	return fmt.Sprintf("Set dependents to %s", t.Value)
}

func (t *SetDependents) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	if _, ok := domain.ParseDependents(t.Value); !ok {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("dependents value %q not recognized", t.Value), nil)
	}
	return nil
}

func (t *SetDependents) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	modified.Dependents = t.Value
	return modified, nil
}

// SetGoalHorizon replaces the goal horizon hint
type SetGoalHorizon struct {
	Hint string
}

func (t *SetGoalHorizon) Name() string { return "set_horizon" }

func (t *SetGoalHorizon) Description() string {
	return fmt.Sprintf("Plan for a %s horizon", domain.ParseGoalHorizon(t.Hint))
}

func (t *SetGoalHorizon) Validate(base *domain.Profile) error {
	if base == nil {
		return NewTransformError(t.Name(), "validate", "base profile cannot be nil", nil)
	}
	return nil
}

func (t *SetGoalHorizon) Apply(base *domain.Profile) (*domain.Profile, error) {
	modified := base.Clone()
	modified.GoalHorizonHint = t.Hint
	return modified, nil
}
