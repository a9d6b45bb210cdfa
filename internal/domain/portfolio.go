package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ArchetypeKind identifies one of the fixed portfolio templates
type ArchetypeKind int

const (
	ArchetypeConservative ArchetypeKind = iota
	ArchetypeBalanced
	ArchetypeGrowth
)

func (k ArchetypeKind) String() string {
	switch k {
	case ArchetypeConservative:
		return "conservative"
	case ArchetypeBalanced:
		return "balanced"
	case ArchetypeGrowth:
		return "growth"
	default:
		return "unknown"
	}
}

// MarshalText lets the kind travel as its name in JSON and YAML
func (k ArchetypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AllArchetypeKinds lists every archetype in classification priority order
func AllArchetypeKinds() []ArchetypeKind {
	return []ArchetypeKind{ArchetypeConservative, ArchetypeBalanced, ArchetypeGrowth}
}

// AllocationSlice is one asset class share of a portfolio
type AllocationSlice struct {
	Label          string `yaml:"label" json:"label"`
	PercentOfTotal int    `yaml:"percent_of_total" json:"percentOfTotal"`
	ColorTag       string `yaml:"color_tag" json:"colorTag"`
}

// RiskBand is the coarse grouping of an instrument's risk label
type RiskBand string

const (
	RiskBandLow    RiskBand = "low"
	RiskBandMedium RiskBand = "medium"
	RiskBandHigh   RiskBand = "high"
)

// InstrumentRecommendation is a concrete product suggested for an archetype
type InstrumentRecommendation struct {
	Name                string          `yaml:"name" json:"name"`
	Institution         string          `yaml:"institution" json:"institution"`
	AnnualReturnPercent decimal.Decimal `yaml:"annual_return_percent" json:"annualReturnPercent"`
	RiskLabel           string          `yaml:"risk_label" json:"riskLabel"`
}

// RiskBand groups the risk label: very low and low are low, medium and
// medium-high are medium, anything else is high.
func (ir InstrumentRecommendation) RiskBand() RiskBand {
	switch strings.ToLower(ir.RiskLabel) {
	case "very low", "low":
		return RiskBandLow
	case "medium", "medium-high":
		return RiskBandMedium
	default:
		return RiskBandHigh
	}
}

// PortfolioArchetype is the classifier output
type PortfolioArchetype struct {
	Kind           ArchetypeKind              `yaml:"kind" json:"kind"`
	Name           string                     `yaml:"name" json:"name"`
	Description    string                     `yaml:"description" json:"description"`
	ExpectedReturn string                     `yaml:"expected_return" json:"expectedReturn"` // band, e.g. "6-8%"
	Volatility     string                     `yaml:"volatility" json:"volatility"`
	Allocation     []AllocationSlice          `yaml:"allocation" json:"allocation"`
	Instruments    []InstrumentRecommendation `yaml:"instruments" json:"instruments"`
}

// TotalAllocationPercent sums the allocation slices; it is 100 for every archetype
func (pa *PortfolioArchetype) TotalAllocationPercent() int {
	total := 0
	for _, s := range pa.Allocation {
		total += s.PercentOfTotal
	}
	return total
}
