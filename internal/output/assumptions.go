package output

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
)

// DefaultAssumptions lists the fixed modeling assumptions rendered in reports
var DefaultAssumptions = []string{
	fmt.Sprintf("Annual returns: conservative %d%%, moderate %d%%, aggressive %d%%, compounded monthly",
		calculation.AnnualReturnPercent(domain.RiskConservative),
		calculation.AnnualReturnPercent(domain.RiskModerate),
		calculation.AnnualReturnPercent(domain.RiskAggressive)),
	fmt.Sprintf("Retirement income draws %.0f%% of the nest egg per year", calculation.DrawdownRate*100),
	fmt.Sprintf("Retirement age %d unless the goal is short- or medium-term", calculation.DefaultRetirementAge),
	fmt.Sprintf("Savings goals earn %.0f%% a year, compounded monthly, capped at %d months",
		calculation.GoalAnnualRate*100, calculation.MaxGoalMonths),
	"Rates are fixed planning constants, not market data",
}
