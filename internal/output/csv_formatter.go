package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVFormatter flattens the report into section,item,field,value rows
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{{"Section", "Item", "Field", "Value"}}

	if p := report.Portfolio; p != nil {
		rows = append(rows,
			[]string{"portfolio", p.Kind.String(), "name", p.Name},
			[]string{"portfolio", p.Kind.String(), "expectedReturn", p.ExpectedReturn},
			[]string{"portfolio", p.Kind.String(), "volatility", p.Volatility},
		)
		for _, a := range p.Allocation {
			rows = append(rows, []string{"allocation", a.Label, "percentOfTotal", strconv.Itoa(a.PercentOfTotal)})
		}
		for _, in := range p.Instruments {
			rows = append(rows,
				[]string{"instrument", in.Name, "annualReturnPercent", in.AnnualReturnPercent.StringFixed(1)},
				[]string{"instrument", in.Name, "riskLabel", in.RiskLabel},
			)
		}
	}

	if plan := report.Retirement; plan != nil {
		rows = append(rows,
			[]string{"retirement", "plan", "currentAge", strconv.Itoa(plan.CurrentAge)},
			[]string{"retirement", "plan", "retirementAge", strconv.Itoa(plan.RetirementAge)},
			[]string{"retirement", "plan", "yearsUntilRetirement", strconv.Itoa(plan.YearsUntilRetirement)},
			[]string{"retirement", "plan", "monthlyContribution", plan.MonthlyContribution.StringFixed(0)},
			[]string{"retirement", "plan", "annualReturnPercent", plan.AnnualReturnPercent.String()},
			[]string{"retirement", "plan", "projectedNestEgg", plan.ProjectedNestEgg.StringFixed(0)},
			[]string{"retirement", "plan", "monthlyRetirementIncome", plan.MonthlyRetirementIncome.StringFixed(0)},
		)
		for _, s := range plan.Scenarios {
			id := string(s.ID)
			rows = append(rows,
				[]string{"scenario", id, "monthlyContribution", s.MonthlyContribution.StringFixed(0)},
				[]string{"scenario", id, "finalAmount", s.FinalAmount.StringFixed(0)},
				[]string{"scenario", id, "monthlyIncome", s.MonthlyIncome.StringFixed(0)},
			)
		}
		for _, pt := range plan.YearlyProjection {
			age := strconv.Itoa(pt.AgeAtYear)
			rows = append(rows,
				[]string{"projection", age, "cumulativeValue", pt.CumulativeValue.StringFixed(0)},
				[]string{"projection", age, "cumulativeContributions", pt.CumulativeContributions.StringFixed(0)},
				[]string{"projection", age, "cumulativeGrowth", pt.CumulativeGrowth.StringFixed(0)},
			)
		}
	}

	if g := report.Goal; g != nil {
		rows = append(rows,
			[]string{"goal", "simulation", "targetAmount", g.TargetAmount.StringFixed(2)},
			[]string{"goal", "simulation", "monthlyContribution", g.MonthlyContribution.StringFixed(2)},
			[]string{"goal", "simulation", "monthsToTarget", strconv.Itoa(g.MonthsToTarget)},
			[]string{"goal", "simulation", "reached", strconv.FormatBool(g.Reached)},
			[]string{"goal", "simulation", "totalInterestEarned", g.TotalInterestEarned.StringFixed(2)},
		)
	}
	if gp := report.GoalPlan; gp != nil && gp.Success {
		rows = append(rows,
			[]string{"goal", "deadline", "deadlineMonths", strconv.Itoa(gp.DeadlineMonths)},
			[]string{"goal", "deadline", "requiredMonthlyContribution", gp.RequiredMonthlyContribution.StringFixed(0)},
		)
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
