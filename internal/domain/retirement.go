package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioID tags the three comparative retirement plans
type ScenarioID string

const (
	ScenarioOptimistic ScenarioID = "optimistic"
	ScenarioBase       ScenarioID = "base"
	ScenarioMinimum    ScenarioID = "minimum"
)

// YearlyProjectionPoint is the accumulated state at the end of one contribution year
type YearlyProjectionPoint struct {
	AgeAtYear               int             `json:"ageAtYear"`
	CumulativeValue         decimal.Decimal `json:"cumulativeValue"`
	CumulativeContributions decimal.Decimal `json:"cumulativeContributions"`
	CumulativeGrowth        decimal.Decimal `json:"cumulativeGrowth"`
}

// ScenarioPlan is one fixed-multiplier variation of the base plan
type ScenarioPlan struct {
	ID                  ScenarioID      `json:"id"`
	Name                string          `json:"name"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	FinalAmount         decimal.Decimal `json:"finalAmount"`
	MonthlyIncome       decimal.Decimal `json:"monthlyIncome"`
	Description         string          `json:"description"`
	Recommended         bool            `json:"recommended"`
}

// RetirementPlan is the projector output
type RetirementPlan struct {
	CurrentAge              int                     `json:"currentAge"`
	RetirementAge           int                     `json:"retirementAge"`
	YearsUntilRetirement    int                     `json:"yearsUntilRetirement"`
	MonthlyContribution     decimal.Decimal         `json:"monthlyContribution"`
	ProjectedNestEgg        decimal.Decimal         `json:"projectedNestEgg"`
	MonthlyRetirementIncome decimal.Decimal         `json:"monthlyRetirementIncome"`
	AnnualReturnPercent     decimal.Decimal         `json:"annualReturnPercent"`
	RiskTolerance           RiskTolerance           `json:"riskTolerance"`
	YearlyProjection        []YearlyProjectionPoint `json:"yearlyProjection"`
	Scenarios               []ScenarioPlan          `json:"scenarios"`

	UsedDefaultAge    bool `json:"usedDefaultAge,omitempty"`
	UsedDefaultIncome bool `json:"usedDefaultIncome,omitempty"`
}

// Scenario returns the scenario with the given id, or nil
func (rp *RetirementPlan) Scenario(id ScenarioID) *ScenarioPlan {
	for i := range rp.Scenarios {
		if rp.Scenarios[i].ID == id {
			return &rp.Scenarios[i]
		}
	}
	return nil
}
