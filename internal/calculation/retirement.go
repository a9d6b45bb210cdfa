package calculation

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultRetirementAge applies when the goal hint carries no horizon
	DefaultRetirementAge = 65

	shortHorizonYears  = 7
	mediumHorizonYears = 15

	// MaxProjectionYears caps the yearly series
	MaxProjectionYears = 30

	// DrawdownRate converts a nest egg into annual retirement income
	DrawdownRate = 0.04
)

// DependentContributionRate is the share of monthly income suggested as a
// retirement contribution for a dependents bracket.
func DependentContributionRate(b domain.DependentsBracket) float64 {
	switch b {
	case domain.DependentsNone:
		return 0.15
	case domain.DependentsOneToTwo:
		return 0.12
	case domain.DependentsThreeToFour:
		return 0.10
	case domain.DependentsFiveOrMore:
		return 0.08
	default:
		return 0.08
	}
}

// AnnualReturnPercent is the assumed yearly return for a risk tolerance
func AnnualReturnPercent(r domain.RiskTolerance) int {
	switch r.Resolved() {
	case domain.RiskConservative:
		return 7
	case domain.RiskModerate:
		return 11
	case domain.RiskAggressive:
		return 16
	default:
		return 11
	}
}

// SuggestedRetirementAge biases the retirement age by the goal horizon
func SuggestedRetirementAge(age int, h domain.GoalHorizon) int {
	switch h {
	case domain.HorizonShort:
		return age + shortHorizonYears
	case domain.HorizonMedium:
		return age + mediumHorizonYears
	default:
		return DefaultRetirementAge
	}
}

// scenarioTemplate describes one comparative plan
type scenarioTemplate struct {
	id          domain.ScenarioID
	name        string
	multiplier  decimal.Decimal
	description string
}

var scenarioTemplates = []scenarioTemplate{
	{domain.ScenarioOptimistic, "Optimistic Plan", decimal.RequireFromString("1.5"), "Increasing your contribution by 50%"},
	{domain.ScenarioBase, "Recommended Plan", decimal.NewFromInt(1), "Based on your current profile"},
	{domain.ScenarioMinimum, "Minimum Plan", decimal.RequireFromString("0.6"), "Contribution reduced to 60%"},
}

// ProjectRetirement builds the retirement plan for a profile, or nil when the
// profile is missing.
func ProjectRetirement(profile *domain.Profile) *domain.RetirementPlan {
	if profile == nil {
		return nil
	}

	age, ageDefault := profile.ParsedAge()
	income, incomeDefault := profile.ParsedMonthlyIncome()
	risk := profile.RiskTolerance.Resolved()

	retirementAge := SuggestedRetirementAge(age, profile.Horizon())
	years := retirementAge - age
	if years < 0 {
		years = 0
	}

	contribution := wholeUnits(float64(income) * DependentContributionRate(profile.DependentsBracket()))
	c := contribution.InexactFloat64()

	returnPercent := AnnualReturnPercent(risk)
	annualRate := float64(returnPercent) / 100

	futureValue := FutureValueOfAnnuity(c, annualRate, years*12)
	nestEgg := wholeUnits(futureValue)
	monthlyIncome := wholeUnits(futureValue * DrawdownRate / 12)

	plan := &domain.RetirementPlan{
		CurrentAge:              age,
		RetirementAge:           retirementAge,
		YearsUntilRetirement:    years,
		MonthlyContribution:     contribution,
		ProjectedNestEgg:        nestEgg,
		MonthlyRetirementIncome: monthlyIncome,
		AnnualReturnPercent:     decimal.NewFromInt(int64(returnPercent)),
		RiskTolerance:           risk,
		YearlyProjection:        yearlySeries(age, years, c, annualRate),
		UsedDefaultAge:          ageDefault,
		UsedDefaultIncome:       incomeDefault,
	}
	plan.Scenarios = buildScenarios(contribution, nestEgg, monthlyIncome)

	return plan
}

func yearlySeries(age, years int, contribution, annualRate float64) []domain.YearlyProjectionPoint {
	n := years
	if n > MaxProjectionYears {
		n = MaxProjectionYears
	}
	series := make([]domain.YearlyProjectionPoint, 0, n)
	for year := 1; year <= n; year++ {
		months := year * 12
		value := wholeUnits(FutureValueOfAnnuity(contribution, annualRate, months))
		contributed := decimal.NewFromFloat(contribution).Mul(decimal.NewFromInt(int64(months)))
		series = append(series, domain.YearlyProjectionPoint{
			AgeAtYear:               age + year,
			CumulativeValue:         value,
			CumulativeContributions: contributed,
			CumulativeGrowth:        value.Sub(contributed),
		})
	}
	return series
}

func buildScenarios(contribution, finalAmount, monthlyIncome decimal.Decimal) []domain.ScenarioPlan {
	plans := make([]domain.ScenarioPlan, 0, len(scenarioTemplates))
	for _, t := range scenarioTemplates {
		plans = append(plans, domain.ScenarioPlan{
			ID:                  t.id,
			Name:                t.name,
			MonthlyContribution: scaleWholeUnits(contribution, t.multiplier),
			FinalAmount:         scaleWholeUnits(finalAmount, t.multiplier),
			MonthlyIncome:       scaleWholeUnits(monthlyIncome, t.multiplier),
			Description:         t.description,
			Recommended:         t.id == domain.ScenarioBase,
		})
	}
	return plans
}
