package calculation

import (
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceProfile() *domain.Profile {
	return &domain.Profile{
		Age:           "30",
		MonthlyIncome: "10000",
		RiskTolerance: domain.RiskModerate,
		Dependents:    "0",
	}
}

func TestProjectRetirement_NilProfile(t *testing.T) {
	assert.Nil(t, ProjectRetirement(nil))
}

func TestProjectRetirement_ReferenceProfile(t *testing.T) {
	plan := ProjectRetirement(referenceProfile())
	require.NotNil(t, plan)

	assert.Equal(t, 30, plan.CurrentAge)
	assert.Equal(t, 65, plan.RetirementAge)
	assert.Equal(t, 35, plan.YearsUntilRetirement)
	assert.True(t, plan.MonthlyContribution.Equal(decimal.NewFromInt(1500)), "contribution %s", plan.MonthlyContribution)
	assert.True(t, plan.AnnualReturnPercent.Equal(decimal.NewFromInt(11)))
	assert.True(t, plan.ProjectedNestEgg.Equal(decimal.NewFromInt(7392445)), "nest egg %s", plan.ProjectedNestEgg)
	assert.True(t, plan.MonthlyRetirementIncome.Equal(decimal.NewFromInt(24641)), "income %s", plan.MonthlyRetirementIncome)
	assert.Equal(t, domain.RiskModerate, plan.RiskTolerance)
	assert.False(t, plan.UsedDefaultAge)
	assert.False(t, plan.UsedDefaultIncome)

	require.Len(t, plan.YearlyProjection, MaxProjectionYears)
	first := plan.YearlyProjection[0]
	assert.Equal(t, 31, first.AgeAtYear)
	assert.True(t, first.CumulativeValue.Equal(decimal.NewFromInt(18936)))
	assert.True(t, first.CumulativeContributions.Equal(decimal.NewFromInt(18000)))
	assert.True(t, first.CumulativeGrowth.Equal(decimal.NewFromInt(936)))

	last := plan.YearlyProjection[len(plan.YearlyProjection)-1]
	assert.Equal(t, 60, last.AgeAtYear)
	assert.True(t, last.CumulativeValue.Equal(decimal.NewFromInt(4206780)))

	for i := 1; i < len(plan.YearlyProjection); i++ {
		prev, cur := plan.YearlyProjection[i-1], plan.YearlyProjection[i]
		assert.Greater(t, cur.AgeAtYear, prev.AgeAtYear)
		assert.True(t, cur.CumulativeValue.GreaterThan(prev.CumulativeValue), "value must grow at year %d", i+1)
		assert.True(t, cur.CumulativeGrowth.Equal(cur.CumulativeValue.Sub(cur.CumulativeContributions)))
	}
}

func TestProjectRetirement_Scenarios(t *testing.T) {
	plan := ProjectRetirement(referenceProfile())
	require.Len(t, plan.Scenarios, 3)

	assert.Equal(t, domain.ScenarioOptimistic, plan.Scenarios[0].ID)
	assert.Equal(t, domain.ScenarioBase, plan.Scenarios[1].ID)
	assert.Equal(t, domain.ScenarioMinimum, plan.Scenarios[2].ID)

	base := plan.Scenario(domain.ScenarioBase)
	optimistic := plan.Scenario(domain.ScenarioOptimistic)
	minimum := plan.Scenario(domain.ScenarioMinimum)

	assert.True(t, base.Recommended)
	assert.False(t, optimistic.Recommended)
	assert.True(t, base.FinalAmount.Equal(plan.ProjectedNestEgg))
	assert.True(t, base.MonthlyContribution.Equal(plan.MonthlyContribution))
	assert.True(t, base.MonthlyIncome.Equal(plan.MonthlyRetirementIncome))

	oneAndHalf := decimal.RequireFromString("1.5")
	sixTenths := decimal.RequireFromString("0.6")
	assert.True(t, optimistic.FinalAmount.Equal(base.FinalAmount.Mul(oneAndHalf).Round(0)))
	assert.True(t, minimum.FinalAmount.Equal(base.FinalAmount.Mul(sixTenths).Round(0)))

	assert.True(t, optimistic.MonthlyContribution.Equal(decimal.NewFromInt(2250)))
	assert.True(t, minimum.MonthlyContribution.Equal(decimal.NewFromInt(900)))
	assert.True(t, optimistic.FinalAmount.Equal(decimal.NewFromInt(11088668)))
	assert.True(t, minimum.FinalAmount.Equal(decimal.NewFromInt(4435467)))
	assert.True(t, optimistic.MonthlyIncome.Equal(decimal.NewFromInt(36962)))
	assert.True(t, minimum.MonthlyIncome.Equal(decimal.NewFromInt(14785)))
}

func TestProjectRetirement_ScenarioRoundingPropertyAcrossProfiles(t *testing.T) {
	incomes := []domain.FormValue{"4321", "8000", "12000", "33333"}
	risks := []domain.RiskTolerance{domain.RiskConservative, domain.RiskModerate, domain.RiskAggressive}
	oneAndHalf := decimal.RequireFromString("1.5")
	sixTenths := decimal.RequireFromString("0.6")

	for _, income := range incomes {
		for _, risk := range risks {
			plan := ProjectRetirement(&domain.Profile{Age: "41", MonthlyIncome: income, RiskTolerance: risk, Dependents: "2"})
			base := plan.Scenario(domain.ScenarioBase)
			assert.True(t, plan.Scenario(domain.ScenarioOptimistic).FinalAmount.Equal(base.FinalAmount.Mul(oneAndHalf).Round(0)))
			assert.True(t, plan.Scenario(domain.ScenarioMinimum).FinalAmount.Equal(base.FinalAmount.Mul(sixTenths).Round(0)))
		}
	}
}

func TestProjectRetirement_HorizonHints(t *testing.T) {
	tests := []struct {
		hint      string
		wantAge   int
		wantYears int
	}{
		{"short-term", 47, 7},
		{"medio-corto", 47, 7},
		{"medium-term", 55, 15},
		{"retirement", 65, 25},
		{"", 65, 25},
	}
	for _, tt := range tests {
		plan := ProjectRetirement(&domain.Profile{Age: "40", MonthlyIncome: "9000", GoalHorizonHint: tt.hint})
		assert.Equal(t, tt.wantAge, plan.RetirementAge, "hint %q", tt.hint)
		assert.Equal(t, tt.wantYears, plan.YearsUntilRetirement, "hint %q", tt.hint)
		assert.Len(t, plan.YearlyProjection, tt.wantYears, "hint %q", tt.hint)
	}
}

func TestProjectRetirement_PastRetirementAge(t *testing.T) {
	plan := ProjectRetirement(&domain.Profile{Age: "70", MonthlyIncome: "9000", RiskTolerance: domain.RiskConservative, Dependents: "0"})
	require.NotNil(t, plan)

	assert.Equal(t, 65, plan.RetirementAge)
	assert.Equal(t, 0, plan.YearsUntilRetirement)
	assert.Empty(t, plan.YearlyProjection)
	assert.True(t, plan.ProjectedNestEgg.IsZero())
	assert.True(t, plan.MonthlyRetirementIncome.IsZero())
	for _, s := range plan.Scenarios {
		assert.True(t, s.FinalAmount.IsZero(), string(s.ID))
	}
}

func TestProjectRetirement_DependentFactors(t *testing.T) {
	tests := []struct {
		dependents string
		want       int64
	}{
		{"0", 1500},
		{"1", 1200},
		{"2", 1200},
		{"3", 1000},
		{"4", 1000},
		{"5+", 800},
		{"", 1500},
		{"many", 800},
	}
	for _, tt := range tests {
		plan := ProjectRetirement(&domain.Profile{Age: "30", MonthlyIncome: "10000", Dependents: tt.dependents})
		assert.True(t, plan.MonthlyContribution.Equal(decimal.NewFromInt(tt.want)),
			"dependents %q: got %s", tt.dependents, plan.MonthlyContribution)
	}
}

func TestProjectRetirement_ReturnTiers(t *testing.T) {
	tests := map[domain.RiskTolerance]int64{
		domain.RiskConservative: 7,
		domain.RiskModerate:     11,
		domain.RiskAggressive:   16,
		domain.RiskUnset:        11,
	}
	for risk, want := range tests {
		plan := ProjectRetirement(&domain.Profile{Age: "30", MonthlyIncome: "10000", RiskTolerance: risk, Dependents: "0"})
		assert.True(t, plan.AnnualReturnPercent.Equal(decimal.NewFromInt(want)), "risk %q", risk)
	}
}

func TestProjectRetirement_ParseDefaults(t *testing.T) {
	plan := ProjectRetirement(&domain.Profile{Age: "thirty", MonthlyIncome: "lots", Dependents: "0"})

	assert.Equal(t, domain.DefaultAge, plan.CurrentAge)
	assert.True(t, plan.UsedDefaultAge)
	assert.True(t, plan.UsedDefaultIncome)
	assert.True(t, plan.MonthlyContribution.Equal(decimal.NewFromInt(1200)), "15%% of 8000, got %s", plan.MonthlyContribution)
}

func TestProjectRetirement_GenuineZeroIncome(t *testing.T) {
	plan := ProjectRetirement(&domain.Profile{Age: "30", MonthlyIncome: "0", Dependents: "0"})

	assert.False(t, plan.UsedDefaultIncome)
	assert.True(t, plan.MonthlyContribution.IsZero())
	assert.True(t, plan.ProjectedNestEgg.IsZero())
}

func TestProjectRetirement_Idempotent(t *testing.T) {
	assert.Equal(t, ProjectRetirement(referenceProfile()), ProjectRetirement(referenceProfile()))
}

func TestFutureValueOfAnnuity(t *testing.T) {
	assert.Equal(t, 0.0, FutureValueOfAnnuity(1500, 0.11, 0))
	assert.Equal(t, 0.0, FutureValueOfAnnuity(1500, 0.11, -12))
	assert.Equal(t, 1200.0, FutureValueOfAnnuity(100, 0, 12))
	assert.InDelta(t, 18935.8095592, FutureValueOfAnnuity(1500, 0.11, 12), 1e-6)
}

func TestSuggestedRetirementAge(t *testing.T) {
	assert.Equal(t, 37, SuggestedRetirementAge(30, domain.HorizonShort))
	assert.Equal(t, 45, SuggestedRetirementAge(30, domain.HorizonMedium))
	assert.Equal(t, DefaultRetirementAge, SuggestedRetirementAge(30, domain.HorizonNone))
}
