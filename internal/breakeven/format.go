package breakeven

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as console text
type TableFormatter struct{}

// Format generates a report for a solve result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("CONTRIBUTION SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Target:              %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Target Amount:       $%s\n", tf.formatCurrency(result.TargetAmount)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if !result.Success {
		return sb.String()
	}

	sb.WriteString("REQUIRED CONTRIBUTION\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly:             $%s\n", tf.formatCurrency(result.RequiredMonthlyContribution)))

	if result.Goal != nil {
		sb.WriteString(fmt.Sprintf("Deadline:            %d months\n", result.DeadlineMonths))
		sb.WriteString(fmt.Sprintf("Reached In:          %d years and %d months\n", result.Goal.Years(), result.Goal.RemainderMonths()))
		sb.WriteString(fmt.Sprintf("Interest Earned:     $%s\n", result.Goal.TotalInterestEarned.StringFixed(2)))
	} else {
		sb.WriteString(fmt.Sprintf("Current:             $%s\n", tf.formatCurrency(result.CurrentContribution)))
		sb.WriteString(fmt.Sprintf("Gap:                 %s$%s\n", tf.deltaSymbol(result.ContributionGap), tf.formatCurrency(result.ContributionGap.Abs())))
		if !result.PercentOfIncome.IsZero() {
			sb.WriteString(fmt.Sprintf("Share of Income:     %s%%\n", result.PercentOfIncome.StringFixed(1)))
		}
		sb.WriteString(fmt.Sprintf("Retirement Age:      %d\n", result.RetirementAge))
		sb.WriteString(fmt.Sprintf("Projected Nest Egg:  $%s\n", tf.formatCurrency(result.ProjectedNestEgg)))
		sb.WriteString(fmt.Sprintf("Monthly Income:      $%s\n", tf.formatCurrency(result.MonthlyRetirementIncome)))
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatSweep generates a table for a contribution sweep
func (tf *TableFormatter) FormatSweep(result *SweepResult) string {
	var sb strings.Builder

	sb.WriteString("GOAL CONTRIBUTION SWEEP\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Target: $%s   Base: $%s/month\n\n", tf.formatCurrency(result.TargetAmount), tf.formatCurrency(result.BaseMonthly)))
	sb.WriteString(fmt.Sprintf("%12s %8s %14s %10s\n", "Monthly", "Months", "Interest", "vs Base"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	for _, row := range result.Rows {
		months := fmt.Sprintf("%d", row.MonthsToTarget)
		if !row.Reached {
			months += "+"
		}
		sb.WriteString(fmt.Sprintf("%12s %8s %14s %10d\n",
			"$"+tf.formatCurrency(row.MonthlyContribution),
			months,
			"$"+row.TotalInterestEarned.StringFixed(2),
			row.MonthsSavedVsBase))
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "solved"
	}
	return "not solvable"
}

// amountFormat prints whole units with thousands separators and no symbol
var amountFormat = money.NewFormatter(0, ".", ",", "", "1")

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return amountFormat.Format(d.Round(0).IntPart())
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON for a solve result or sweep
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
