package domain

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseWholeNumber(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantValue   int
		wantDefault bool
	}{
		{"plain integer", "45", 45, false},
		{"surrounding spaces", "  28 ", 28, false},
		{"genuine zero", "0", 0, false},
		{"decimal truncates", "12000.75", 12000, false},
		{"trailing text", "30 years", 30, false},
		{"negative accepted", "-3", -3, false},
		{"empty falls back", "", 99, true},
		{"letters fall back", "abc", 99, true},
		{"sign only falls back", "-", 99, true},
		{"overflow falls back", "99999999999999999999999", 99, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, usedDefault := ParseWholeNumber(tt.raw, 99)
			assert.Equal(t, tt.wantValue, got)
			assert.Equal(t, tt.wantDefault, usedDefault)
		})
	}
}

func TestProfile_ParsedFieldsUseDocumentedDefaults(t *testing.T) {
	p := &Profile{Age: "unknown", MonthlyIncome: "n/a"}

	age, ageDefault := p.ParsedAge()
	income, incomeDefault := p.ParsedMonthlyIncome()

	assert.Equal(t, DefaultAge, age)
	assert.True(t, ageDefault)
	assert.Equal(t, DefaultMonthlyIncome, income)
	assert.True(t, incomeDefault)
}

func TestProfile_NumericFieldsDecodeFromNumbersOrStrings(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"age":30,"monthlyIncome":12000.5,"fixedExpenses":"4000","dependents":"0"}`), &p))
	assert.Equal(t, FormValue("30"), p.Age)
	assert.Equal(t, FormValue("12000.5"), p.MonthlyIncome)
	assert.Equal(t, FormValue("4000"), p.FixedExpenses)
	income, usedDefault := p.ParsedMonthlyIncome()
	assert.Equal(t, 12000, income)
	assert.False(t, usedDefault)

	var nulls Profile
	require.NoError(t, json.Unmarshal([]byte(`{"age":null,"monthlyIncome":"lots"}`), &nulls))
	assert.Equal(t, FormValue(""), nulls.Age)
	age, usedDefault := nulls.ParsedAge()
	assert.Equal(t, DefaultAge, age)
	assert.True(t, usedDefault)

	assert.Error(t, json.Unmarshal([]byte(`{"age":true}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"age":[30]}`), &p))

	var fromYAML Profile
	require.NoError(t, yaml.Unmarshal([]byte("age: 44\nmonthly_income: \"9000\"\nfixed_expenses: ~\n"), &fromYAML))
	assert.Equal(t, FormValue("44"), fromYAML.Age)
	assert.Equal(t, FormValue("9000"), fromYAML.MonthlyIncome)
	assert.Equal(t, FormValue(""), fromYAML.FixedExpenses)
	assert.Error(t, yaml.Unmarshal([]byte("age: [1, 2]\n"), &fromYAML))
}

func TestParseRiskTolerance(t *testing.T) {
	cases := map[string]RiskTolerance{
		"conservative": RiskConservative,
		"Conservador":  RiskConservative,
		"moderate":     RiskModerate,
		"moderado":     RiskModerate,
		" AGGRESSIVE ": RiskAggressive,
		"agresivo":     RiskAggressive,
		"":             RiskUnset,
	}
	for in, want := range cases {
		got, err := ParseRiskTolerance(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRiskTolerance("reckless")
	assert.Error(t, err)
}

func TestRiskTolerance_Resolved(t *testing.T) {
	assert.Equal(t, RiskModerate, RiskUnset.Resolved())
	assert.Equal(t, RiskAggressive, RiskAggressive.Resolved())
	assert.False(t, RiskTolerance("reckless").Valid())
	assert.True(t, RiskUnset.Valid())
}

func TestRiskTolerance_UnmarshalText(t *testing.T) {
	var r RiskTolerance
	require.NoError(t, r.UnmarshalText([]byte("agresivo")))
	assert.Equal(t, RiskAggressive, r)
	assert.Error(t, r.UnmarshalText([]byte("yolo")))
}

func TestParseDependents(t *testing.T) {
	tests := []struct {
		in     string
		want   DependentsBracket
		wantOK bool
	}{
		{"0", DependentsNone, true},
		{"1", DependentsOneToTwo, true},
		{"2", DependentsOneToTwo, true},
		{"1-2", DependentsOneToTwo, true},
		{"3", DependentsThreeToFour, true},
		{"4", DependentsThreeToFour, true},
		{"5+", DependentsFiveOrMore, true},
		{"5-or-more", DependentsFiveOrMore, true},
		{"", DependentsNone, true},
		{"  ", DependentsNone, true},
		{"many", DependentsFiveOrMore, false},
	}
	for _, tt := range tests {
		got, ok := ParseDependents(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
	}
}

func TestParseGoalHorizon(t *testing.T) {
	assert.Equal(t, HorizonShort, ParseGoalHorizon("short-term savings"))
	assert.Equal(t, HorizonShort, ParseGoalHorizon("corto"))
	assert.Equal(t, HorizonShort, ParseGoalHorizon("medio-corto"))
	assert.Equal(t, HorizonMedium, ParseGoalHorizon("medium-term"))
	assert.Equal(t, HorizonMedium, ParseGoalHorizon("medio"))
	assert.Equal(t, HorizonNone, ParseGoalHorizon("retiro"))
	assert.Equal(t, HorizonNone, ParseGoalHorizon(""))
}

func TestInstrumentRecommendation_RiskBand(t *testing.T) {
	band := func(label string) RiskBand {
		return InstrumentRecommendation{RiskLabel: label}.RiskBand()
	}
	assert.Equal(t, RiskBandLow, band("Very Low"))
	assert.Equal(t, RiskBandLow, band("Low"))
	assert.Equal(t, RiskBandMedium, band("Medium"))
	assert.Equal(t, RiskBandMedium, band("Medium-High"))
	assert.Equal(t, RiskBandHigh, band("High"))
}

func TestArchetypeKind_MarshalText(t *testing.T) {
	for _, k := range AllArchetypeKinds() {
		text, err := k.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, k.String(), string(text))
	}
	assert.Equal(t, "unknown", ArchetypeKind(42).String())
}

func TestRetirementPlan_Scenario(t *testing.T) {
	plan := &RetirementPlan{
		Scenarios: []ScenarioPlan{
			{ID: ScenarioOptimistic, FinalAmount: decimal.NewFromInt(150)},
			{ID: ScenarioBase, FinalAmount: decimal.NewFromInt(100)},
		},
	}

	base := plan.Scenario(ScenarioBase)
	require.NotNil(t, base)
	assert.True(t, base.FinalAmount.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, plan.Scenario(ScenarioMinimum))
}

func TestGoalSimulationResult_YearsAndMonths(t *testing.T) {
	g := &GoalSimulationResult{MonthsToTarget: 29}
	assert.Equal(t, 2, g.Years())
	assert.Equal(t, 5, g.RemainderMonths())
}
