package domain

import (
	"github.com/shopspring/decimal"
)

// GoalSimulationResult is the goal simulator output
type GoalSimulationResult struct {
	MonthsToTarget      int             `json:"monthsToTarget"`
	TargetAmount        decimal.Decimal `json:"targetAmount"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	TotalContributed    decimal.Decimal `json:"totalContributed"`
	FinalBalance        decimal.Decimal `json:"finalBalance"`
	TotalInterestEarned decimal.Decimal `json:"totalInterestEarned"`
	Reached             bool            `json:"reached"` // false when the month cap stopped the simulation
}

// Years is the whole-year part of MonthsToTarget
func (g *GoalSimulationResult) Years() int {
	return g.MonthsToTarget / 12
}

// RemainderMonths is the months left over after Years
func (g *GoalSimulationResult) RemainderMonths() int {
	return g.MonthsToTarget % 12
}
