package compare

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ResultKind tells where an alternative came from
type ResultKind string

const (
	KindBase     ResultKind = "base"
	KindScenario ResultKind = "scenario" // one of the plan's fixed comparative scenarios
	KindWhatIf   ResultKind = "what-if"  // a transformed profile
)

// ComparisonResult is one retirement outcome with its deltas from the base plan
type ComparisonResult struct {
	ScenarioName string     `json:"scenarioName"`
	Description  string     `json:"description"`
	Kind         ResultKind `json:"kind"`

	// Key metrics
	PortfolioName           string          `json:"portfolioName,omitempty"`
	RetirementAge           int             `json:"retirementAge"`
	YearsUntilRetirement    int             `json:"yearsUntilRetirement"`
	AnnualReturnPercent     decimal.Decimal `json:"annualReturnPercent"`
	MonthlyContribution     decimal.Decimal `json:"monthlyContribution"`
	ProjectedNestEgg        decimal.Decimal `json:"projectedNestEgg"`
	MonthlyRetirementIncome decimal.Decimal `json:"monthlyRetirementIncome"`

	// Comparison to base
	NestEggDiffFromBase      decimal.Decimal `json:"nestEggDiffFromBase"`
	NestEggPctFromBase       decimal.Decimal `json:"nestEggPctFromBase"`
	IncomeDiffFromBase       decimal.Decimal `json:"incomeDiffFromBase"`
	ContributionDiffFromBase decimal.Decimal `json:"contributionDiffFromBase"`
	RetirementAgeDiff        int             `json:"retirementAgeDiff"`
}

// ComparisonSet is the base plan and every alternative measured against it
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	ProfilePath        string             `json:"profilePath,omitempty"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// ResultFromPlan extracts the comparison metrics of a retirement plan
func ResultFromPlan(name string, kind ResultKind, plan *domain.RetirementPlan, portfolio *domain.PortfolioArchetype) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:            name,
		Kind:                    kind,
		RetirementAge:           plan.RetirementAge,
		YearsUntilRetirement:    plan.YearsUntilRetirement,
		AnnualReturnPercent:     plan.AnnualReturnPercent,
		MonthlyContribution:     plan.MonthlyContribution,
		ProjectedNestEgg:        plan.ProjectedNestEgg,
		MonthlyRetirementIncome: plan.MonthlyRetirementIncome,
	}
	if portfolio != nil {
		result.PortfolioName = portfolio.Name
	}
	return result
}

// ResultFromScenario turns one of the plan's comparative scenarios into a result.
// Age and return are those of the plan the scenario belongs to.
func ResultFromScenario(s domain.ScenarioPlan, plan *domain.RetirementPlan, portfolio *domain.PortfolioArchetype) ComparisonResult {
	result := ResultFromPlan(s.Name, KindScenario, plan, portfolio)
	result.Description = s.Description
	result.MonthlyContribution = s.MonthlyContribution
	result.ProjectedNestEgg = s.FinalAmount
	result.MonthlyRetirementIncome = s.MonthlyIncome
	return result
}

// CalculateComparison fills the deltas of result against base
func CalculateComparison(result, base ComparisonResult) ComparisonResult {
	result.NestEggDiffFromBase = result.ProjectedNestEgg.Sub(base.ProjectedNestEgg)
	if !base.ProjectedNestEgg.IsZero() {
		result.NestEggPctFromBase = result.NestEggDiffFromBase.
			Div(base.ProjectedNestEgg).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}
	result.IncomeDiffFromBase = result.MonthlyRetirementIncome.Sub(base.MonthlyRetirementIncome)
	result.ContributionDiffFromBase = result.MonthlyContribution.Sub(base.MonthlyContribution)
	result.RetirementAgeDiff = result.RetirementAge - base.RetirementAge
	return result
}

// GenerateRecommendations highlights the alternatives that beat the base plan
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	best := base
	for i := range compSet.AlternativeResults {
		if alt := &compSet.AlternativeResults[i]; alt.ProjectedNestEgg.GreaterThan(best.ProjectedNestEgg) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Largest Nest Egg: %s reaches $%s, $%s more than the base plan",
			best.ScenarioName, best.ProjectedNestEgg.StringFixed(0),
			best.ProjectedNestEgg.Sub(base.ProjectedNestEgg).StringFixed(0)))
	}

	// cheapest alternative that still matches the base nest egg
	cheapest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.ProjectedNestEgg.GreaterThanOrEqual(base.ProjectedNestEgg) &&
			alt.MonthlyContribution.LessThan(cheapest.MonthlyContribution) {
			cheapest = alt
		}
	}
	if cheapest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Most Efficient: %s matches the base nest egg while saving $%s less per month",
			cheapest.ScenarioName, base.MonthlyContribution.Sub(cheapest.MonthlyContribution).StringFixed(0)))
	}

	earliest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.RetirementAge < earliest.RetirementAge && alt.MonthlyRetirementIncome.IsPositive() {
			earliest = alt
		}
	}
	if earliest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Earliest Retirement: %s retires at %d with $%s per month",
			earliest.ScenarioName, earliest.RetirementAge, earliest.MonthlyRetirementIncome.StringFixed(0)))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.Kind == KindWhatIf && alt.NestEggPctFromBase.LessThanOrEqual(decimal.NewFromInt(-25)) {
			recommendations = append(recommendations, fmt.Sprintf(
				"Caution: %s shrinks the nest egg by %s%%", alt.ScenarioName, alt.NestEggPctFromBase.Neg().StringFixed(1)))
		}
	}

	return recommendations
}
