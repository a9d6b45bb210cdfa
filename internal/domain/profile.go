package domain

import (
	"fmt"
	"strings"
)

// RiskTolerance is the investor's self-reported appetite for volatility
type RiskTolerance string

const (
	RiskUnset        RiskTolerance = ""
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// ParseRiskTolerance maps intake values, English or Spanish, to a RiskTolerance
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return RiskUnset, nil
	case "conservative", "conservador":
		return RiskConservative, nil
	case "moderate", "moderado":
		return RiskModerate, nil
	case "aggressive", "agresivo":
		return RiskAggressive, nil
	default:
		return RiskUnset, fmt.Errorf("unknown risk tolerance %q", s)
	}
}

// Resolved returns the tolerance used by the calculators; an unset value behaves as moderate.
func (r RiskTolerance) Resolved() RiskTolerance {
	if r == RiskUnset {
		return RiskModerate
	}
	return r
}

// Valid reports whether r is one of the known tolerances or unset
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskUnset, RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// UnmarshalText accepts the same spellings as ParseRiskTolerance
func (r *RiskTolerance) UnmarshalText(text []byte) error {
	parsed, err := ParseRiskTolerance(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// DependentsBracket groups the number of financial dependents into the
// buckets that drive the suggested contribution rate.
type DependentsBracket int

const (
	DependentsNone DependentsBracket = iota
	DependentsOneToTwo
	DependentsThreeToFour
	DependentsFiveOrMore
)

func (d DependentsBracket) String() string {
	switch d {
	case DependentsNone:
		return "none"
	case DependentsOneToTwo:
		return "1-2"
	case DependentsThreeToFour:
		return "3-4"
	case DependentsFiveOrMore:
		return "5+"
	default:
		return "unknown"
	}
}

// ParseDependents converts the intake dependents value into a bracket. An
// unanswered field counts as no dependents. ok is false for values outside
// the intake form's closed set; those fall back to DependentsFiveOrMore.
func ParseDependents(s string) (bracket DependentsBracket, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "none":
		return DependentsNone, true
	case "1", "2", "1-2":
		return DependentsOneToTwo, true
	case "3", "4", "3-4":
		return DependentsThreeToFour, true
	case "5+", "5-or-more", "5":
		return DependentsFiveOrMore, true
	default:
		return DependentsFiveOrMore, false
	}
}

// GoalHorizon is the coarse horizon derived from the free-form goal hint
type GoalHorizon int

const (
	HorizonNone GoalHorizon = iota
	HorizonShort
	HorizonMedium
)

func (h GoalHorizon) String() string {
	switch h {
	case HorizonShort:
		return "short"
	case HorizonMedium:
		return "medium"
	default:
		return "none"
	}
}

// ParseGoalHorizon inspects a goal hint tag. Short-horizon markers win over
// medium ones, so "medio-corto" is short.
func ParseGoalHorizon(hint string) GoalHorizon {
	h := strings.ToLower(hint)
	switch {
	case strings.Contains(h, "short"), strings.Contains(h, "corto"):
		return HorizonShort
	case strings.Contains(h, "medium"), strings.Contains(h, "medio"):
		return HorizonMedium
	default:
		return HorizonNone
	}
}

// Profile is the intake record produced by the profile form. Numeric fields
// are kept as entered; the calculators parse them with documented defaults.
type Profile struct {
	Name            string        `yaml:"name,omitempty" json:"name,omitempty"`
	Age             FormValue     `yaml:"age" json:"age"`
	MonthlyIncome   FormValue     `yaml:"monthly_income" json:"monthlyIncome"`
	FixedExpenses   FormValue     `yaml:"fixed_expenses,omitempty" json:"fixedExpenses,omitempty"`
	RiskTolerance   RiskTolerance `yaml:"risk_tolerance" json:"riskTolerance"`
	Dependents      string        `yaml:"dependents" json:"dependents"`
	GoalHorizonHint string        `yaml:"goal_horizon_hint,omitempty" json:"goalHorizonHint,omitempty"`

	// Intake context, not used in calculations
	Goal                  string `yaml:"goal,omitempty" json:"goal,omitempty"`
	InvestmentHorizon     string `yaml:"investment_horizon,omitempty" json:"investmentHorizon,omitempty"`
	FinancialKnowledge    string `yaml:"financial_knowledge,omitempty" json:"financialKnowledge,omitempty"`
	ContributionFrequency string `yaml:"contribution_frequency,omitempty" json:"contributionFrequency,omitempty"`
}

// DefaultAge and DefaultMonthlyIncome replace unparseable intake values
const (
	DefaultAge           = 30
	DefaultMonthlyIncome = 8000
)

// ParsedAge returns the age in whole years, or DefaultAge when the field is not numeric
func (p *Profile) ParsedAge() (age int, usedDefault bool) {
	return ParseWholeNumber(string(p.Age), DefaultAge)
}

// ParsedMonthlyIncome returns the monthly income in whole currency units,
// or DefaultMonthlyIncome when the field is not numeric.
func (p *Profile) ParsedMonthlyIncome() (income int, usedDefault bool) {
	return ParseWholeNumber(string(p.MonthlyIncome), DefaultMonthlyIncome)
}

// DependentsBracket returns the dependents bracket used for contribution sizing
func (p *Profile) DependentsBracket() DependentsBracket {
	b, _ := ParseDependents(p.Dependents)
	return b
}

// Horizon returns the horizon implied by the goal hint
func (p *Profile) Horizon() GoalHorizon {
	return ParseGoalHorizon(p.GoalHorizonHint)
}

// Clone returns an independent copy
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
