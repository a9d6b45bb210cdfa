package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Plan",
		"Kind",
		"Description",
		"Retirement Age",
		"Annual Return %",
		"Monthly Contribution",
		"Projected Nest Egg",
		"Monthly Income",
		"Nest Egg Diff from Base",
		"Nest Egg % Change",
		"Income Diff from Base",
		"Contribution Diff from Base",
		"Retirement Age Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult)); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i])); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult) []string {
	return []string{
		result.ScenarioName,
		string(result.Kind),
		result.Description,
		strconv.Itoa(result.RetirementAge),
		result.AnnualReturnPercent.String(),
		result.MonthlyContribution.StringFixed(0),
		result.ProjectedNestEgg.StringFixed(0),
		result.MonthlyRetirementIncome.StringFixed(0),
		result.NestEggDiffFromBase.StringFixed(0),
		result.NestEggPctFromBase.StringFixed(1),
		result.IncomeDiffFromBase.StringFixed(0),
		result.ContributionDiffFromBase.StringFixed(0),
		strconv.Itoa(result.RetirementAgeDiff),
	}
}
