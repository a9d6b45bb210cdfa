package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finplan/internal/domain"
)

var (
	colorPrimary = lipgloss.Color("#1D4ED8")
	colorSuccess = lipgloss.Color("#16A34A")
	colorWarning = lipgloss.Color("#D97706")
	colorDanger  = lipgloss.Color("#DC2626")
	colorMuted   = lipgloss.Color("#6B7280")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	noteStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPrimary).Padding(0, 1)
)

// riskBandStyle colours instruments the way the recommendation cards do
func riskBandStyle(b domain.RiskBand) lipgloss.Style {
	switch b {
	case domain.RiskBandLow:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case domain.RiskBandMedium:
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return lipgloss.NewStyle().Foreground(colorDanger)
	}
}

// ConsoleFormatter renders a styled terminal report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	var buf bytes.Buffer

	title := "FINANCIAL PLAN"
	if report.Name != "" {
		title += ": " + report.Name
	}
	fmt.Fprintln(&buf, titleStyle.Render(title))
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)

	if p := report.Portfolio; p != nil {
		writePortfolio(&buf, p)
	}
	if plan := report.Retirement; plan != nil {
		writeRetirement(&buf, plan)
	}
	if g := report.Goal; g != nil {
		writeGoal(&buf, g)
	}
	if gp := report.GoalPlan; gp != nil && gp.Success {
		fmt.Fprintf(&buf, "%s %s per month reaches the goal within %d months\n\n",
			labelStyle.Render("To meet the deadline:"),
			valueStyle.Render(FormatCurrency(gp.RequiredMonthlyContribution)),
			gp.DeadlineMonths)
	}

	if len(report.Notes) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("NOTES"))
		for _, n := range report.Notes {
			fmt.Fprintln(&buf, noteStyle.Render("! "+n))
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS"))
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}

	return buf.Bytes(), nil
}

func writePortfolio(buf *bytes.Buffer, p *domain.PortfolioArchetype) {
	fmt.Fprintln(buf, sectionStyle.Render("RECOMMENDED PORTFOLIO"))
	fmt.Fprintln(buf, boxStyle.Render(fmt.Sprintf("%s\n%s\nExpected return %s · Volatility %s",
		valueStyle.Render(p.Name), p.Description, p.ExpectedReturn, p.Volatility)))

	fmt.Fprintln(buf, labelStyle.Render("Allocation"))
	for _, a := range p.Allocation {
		bar := strings.Repeat("█", a.PercentOfTotal/5)
		fmt.Fprintf(buf, "  %-36s %3d%% %s\n", a.Label, a.PercentOfTotal, lipgloss.NewStyle().Foreground(lipgloss.Color(a.ColorTag)).Render(bar))
	}

	fmt.Fprintln(buf, labelStyle.Render("Instruments"))
	for _, in := range p.Instruments {
		fmt.Fprintf(buf, "  %-34s %-20s %6s%%  %s\n", in.Name, in.Institution,
			in.AnnualReturnPercent.StringFixed(1), riskBandStyle(in.RiskBand()).Render(in.RiskLabel))
	}
	fmt.Fprintln(buf)
}

func writeRetirement(buf *bytes.Buffer, plan *domain.RetirementPlan) {
	fmt.Fprintln(buf, sectionStyle.Render("RETIREMENT PROJECTION"))
	fmt.Fprintf(buf, "%s %d → %d (%d years)\n", labelStyle.Render("Age:"), plan.CurrentAge, plan.RetirementAge, plan.YearsUntilRetirement)
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Monthly Contribution:"), valueStyle.Render(FormatCurrency(plan.MonthlyContribution)))
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Annual Return:"), FormatPercentage(plan.AnnualReturnPercent))
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Projected Nest Egg:"), valueStyle.Render(FormatCurrency(plan.ProjectedNestEgg)))
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Monthly Retirement Income:"), valueStyle.Render(FormatCurrency(plan.MonthlyRetirementIncome)))
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-18s %14s %16s %14s\n", "Scenario", "Contribution", "Final Amount", "Income")
	fmt.Fprintln(buf, strings.Repeat("-", 66))
	for _, s := range plan.Scenarios {
		name := s.Name
		if s.Recommended {
			name += " *"
		}
		fmt.Fprintf(buf, "%-18s %14s %16s %14s\n", name,
			FormatCurrency(s.MonthlyContribution), FormatCurrency(s.FinalAmount), FormatCurrency(s.MonthlyIncome))
	}
	fmt.Fprintln(buf)

	if len(plan.YearlyProjection) > 0 {
		fmt.Fprintf(buf, "%-6s %16s %16s %16s\n", "Age", "Value", "Contributed", "Growth")
		fmt.Fprintln(buf, strings.Repeat("-", 58))
		for _, pt := range plan.YearlyProjection {
			fmt.Fprintf(buf, "%-6d %16s %16s %16s\n", pt.AgeAtYear,
				FormatCurrency(pt.CumulativeValue), FormatCurrency(pt.CumulativeContributions), FormatCurrency(pt.CumulativeGrowth))
		}
		fmt.Fprintln(buf)
	}
}

func writeGoal(buf *bytes.Buffer, g *domain.GoalSimulationResult) {
	fmt.Fprintln(buf, sectionStyle.Render("SAVINGS GOAL"))
	fmt.Fprintf(buf, "%s %s at %s per month\n", labelStyle.Render("Target:"), FormatCurrency(g.TargetAmount), FormatCurrency(g.MonthlyContribution))
	duration := fmt.Sprintf("%d months (%d years and %d months)", g.MonthsToTarget, g.Years(), g.RemainderMonths())
	if !g.Reached {
		duration = "not reached within " + duration
	}
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Time to Target:"), valueStyle.Render(duration))
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Contributed:"), FormatCents(g.TotalContributed))
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Interest Earned:"), FormatCents(g.TotalInterestEarned))
	fmt.Fprintln(buf)
}
