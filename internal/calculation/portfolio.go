package calculation

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Age bounds used by the classification rule
const (
	conservativeAboveAge = 55
	balancedMinAge       = 30
	balancedMaxAge       = 55
)

// ClassifyPortfolio picks the portfolio archetype for a profile. It returns nil
// when the profile is missing so callers can prompt for completion.
func ClassifyPortfolio(profile *domain.Profile) *domain.PortfolioArchetype {
	if profile == nil {
		return nil
	}
	age, _ := profile.ParsedAge()
	return NewArchetype(ClassifyKind(age, profile.RiskTolerance))
}

// ClassifyKind applies the classification rule; the first matching branch wins.
func ClassifyKind(age int, risk domain.RiskTolerance) domain.ArchetypeKind {
	risk = risk.Resolved()
	switch {
	case risk == domain.RiskConservative || age > conservativeAboveAge:
		return domain.ArchetypeConservative
	case risk == domain.RiskModerate || (age >= balancedMinAge && age <= balancedMaxAge):
		return domain.ArchetypeBalanced
	default:
		return domain.ArchetypeGrowth
	}
}

// NewArchetype builds a fresh copy of the fixed template for kind.
// Unknown kinds yield nil.
func NewArchetype(kind domain.ArchetypeKind) *domain.PortfolioArchetype {
	switch kind {
	case domain.ArchetypeConservative:
		return &domain.PortfolioArchetype{
			Kind:           kind,
			Name:           "Conservative Portfolio",
			Description:    "Focused on preserving your capital with minimal risk",
			ExpectedReturn: "6-8%",
			Volatility:     "Low",
			Allocation: []domain.AllocationSlice{
				{Label: "CETES and Government Bonds", PercentOfTotal: 50, ColorTag: "#4CAF50"},
				{Label: "Afore - Basic Siefore 0", PercentOfTotal: 25, ColorTag: "#2196F3"},
				{Label: "Conservative Investment Funds", PercentOfTotal: 15, ColorTag: "#FF9800"},
				{Label: "Cash/Savings Account", PercentOfTotal: 10, ColorTag: "#9E9E9E"},
			},
			Instruments: []domain.InstrumentRecommendation{
				instrument("CETES 28 days", "Government of Mexico", "10.5", "Very Low"),
				instrument("Afore XXI Banorte SB0", "Afore XXI Banorte", "6.5", "Very Low"),
				instrument("Guaranteed Fund", "Banorte", "7.8", "Low"),
				instrument("Hey Account", "Hey Banco", "8.5", "Very Low"),
			},
		}
	case domain.ArchetypeBalanced:
		return &domain.PortfolioArchetype{
			Kind:           kind,
			Name:           "Balanced Portfolio",
			Description:    "Optimal balance between growth and stability",
			ExpectedReturn: "10-14%",
			Volatility:     "Medium",
			Allocation: []domain.AllocationSlice{
				{Label: "Afore - Basic Siefore 2", PercentOfTotal: 30, ColorTag: "#FF4D00"},
				{Label: "Mixed Investment Funds", PercentOfTotal: 25, ColorTag: "#FF9800"},
				{Label: "CETES and Bonds", PercentOfTotal: 25, ColorTag: "#4CAF50"},
				{Label: "Mexico ETFs (NAFTRAC)", PercentOfTotal: 15, ColorTag: "#9C27B0"},
				{Label: "Cash", PercentOfTotal: 5, ColorTag: "#9E9E9E"},
			},
			Instruments: []domain.InstrumentRecommendation{
				instrument("Afore XXI Banorte SB2", "Afore XXI Banorte", "12.5", "Medium"),
				instrument("NAFTRAC ETF", "BBVA Mexico", "14.8", "Medium"),
				instrument("CETES 91 days", "Government of Mexico", "10.8", "Very Low"),
				instrument("Hey Investment Fund", "Hey Banco", "11.2", "Medium"),
			},
		}
	case domain.ArchetypeGrowth:
		return &domain.PortfolioArchetype{
			Kind:           kind,
			Name:           "Growth Portfolio",
			Description:    "Maximizes your long-term return potential",
			ExpectedReturn: "15-22%",
			Volatility:     "High",
			Allocation: []domain.AllocationSlice{
				{Label: "Afore - Basic Siefore 4", PercentOfTotal: 35, ColorTag: "#9C27B0"},
				{Label: "Mexico ETFs and Equities", PercentOfTotal: 30, ColorTag: "#FF4D00"},
				{Label: "Aggressive Investment Funds", PercentOfTotal: 20, ColorTag: "#FF9800"},
				{Label: "CETES", PercentOfTotal: 10, ColorTag: "#4CAF50"},
				{Label: "Cash", PercentOfTotal: 5, ColorTag: "#9E9E9E"},
			},
			Instruments: []domain.InstrumentRecommendation{
				instrument("Afore XXI Banorte SB4", "Afore XXI Banorte", "18.5", "High"),
				instrument("NAFTRAC ETF", "BBVA Mexico", "16.8", "High"),
				instrument("Fibra Uno Fund", "Santander Mexico", "19.2", "High"),
				instrument("Nu Dynamic Fund", "Nu Mexico", "15.5", "Medium-High"),
			},
		}
	default:
		return nil
	}
}

func instrument(name, institution, annualReturn, risk string) domain.InstrumentRecommendation {
	return domain.InstrumentRecommendation{
		Name:                name,
		Institution:         institution,
		AnnualReturnPercent: decimal.RequireFromString(annualReturn),
		RiskLabel:           risk,
	}
}
