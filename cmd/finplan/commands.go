package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/finplan/internal/breakeven"
	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/rgehrsitz/finplan/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func portfolioCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio [profile-file]",
		Short: "Recommend a portfolio archetype for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}
			archetype := a.engine.ClassifyPortfolio(profile)
			return a.emit(cmd.OutOrStdout(), archetype, &output.Report{Name: profile.Name, Portfolio: archetype})
		},
	}
}

func retirementCmd(a *app) *cobra.Command {
	var series bool
	cmd := &cobra.Command{
		Use:   "retirement [profile-file]",
		Short: "Project retirement savings and income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}
			plan := a.engine.ProjectRetirement(profile)
			if !series {
				trimmed := *plan
				trimmed.YearlyProjection = nil
				plan = &trimmed
			}
			return a.emit(cmd.OutOrStdout(), plan, &output.Report{
				Name:        profile.Name,
				Retirement:  plan,
				Assumptions: output.DefaultAssumptions,
			})
		},
	}
	cmd.Flags().BoolVar(&series, "series", false, "Include the year-by-year projection")
	return cmd
}

type goalOutput struct {
	Goal  any `json:"goal"`
	Plan  any `json:"plan,omitempty"`
	Sweep any `json:"sweep,omitempty"`
}

func goalCmd(a *app) *cobra.Command {
	var target, monthly string
	var deadline int
	var sweep bool

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Simulate how long monthly savings take to reach a goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targetAmount, err := parseAmount("target", target)
			if err != nil {
				return err
			}
			monthlyAmount, err := parseAmount("monthly", monthly)
			if err != nil {
				return err
			}

			result, err := a.engine.SimulateGoal(targetAmount, monthlyAmount)
			if err != nil {
				return err
			}
			out := goalOutput{Goal: result}
			report := &output.Report{Goal: result}

			solver := breakeven.NewDefaultSolver(a.engine)
			if deadline > 0 {
				plan, err := solver.SolveGoalContribution(cmd.Context(), targetAmount, deadline)
				if err != nil {
					return err
				}
				out.Plan = plan
				report.GoalPlan = plan
			}

			var sweepResult *breakeven.SweepResult
			if sweep {
				sweepResult, err = solver.SweepGoal(cmd.Context(), targetAmount, monthlyAmount, breakeven.DefaultSweepFactors)
				if err != nil {
					return err
				}
				out.Sweep = sweepResult
			}

			if err := a.emit(cmd.OutOrStdout(), out, report); err != nil {
				return err
			}
			if sweepResult != nil && a.query == "" && a.format != "json" {
				fmt.Fprintln(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatSweep(sweepResult))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Goal amount (required)")
	cmd.Flags().StringVar(&monthly, "monthly", "", "Monthly contribution (required)")
	cmd.Flags().IntVar(&deadline, "deadline-months", 0, "Also solve the contribution that reaches the goal within this many months")
	cmd.Flags().BoolVar(&sweep, "sweep", false, "Compare months-to-goal across contribution multiples")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("monthly")
	return cmd
}

func solveCmd(a *app) *cobra.Command {
	var nestEgg, income, minContribution, maxContribution string

	cmd := &cobra.Command{
		Use:   "solve [profile-file]",
		Short: "Find the monthly contribution that reaches a nest egg or retirement income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (nestEgg == "") == (income == "") {
				return fmt.Errorf("exactly one of --nest-egg or --income is required")
			}
			profile, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}

			req := breakeven.SolveRequest{Target: breakeven.TargetNestEgg, Profile: profile}
			amount := nestEgg
			if income != "" {
				req.Target = breakeven.TargetRetirementIncome
				amount = income
			}
			if req.Constraints.TargetAmount, err = parseAmount("target", amount); err != nil {
				return err
			}
			if minContribution != "" {
				v, err := parseAmount("min-contribution", minContribution)
				if err != nil {
					return err
				}
				req.Constraints.MinContribution = &v
			}
			if maxContribution != "" {
				v, err := parseAmount("max-contribution", maxContribution)
				if err != nil {
					return err
				}
				req.Constraints.MaxContribution = &v
			}

			result, err := breakeven.NewDefaultSolver(a.engine).Solve(cmd.Context(), req)
			if err != nil {
				return err
			}
			if a.query != "" || a.format == "json" {
				return a.emit(cmd.OutOrStdout(), result, nil)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
			return err
		},
	}
	cmd.Flags().StringVar(&nestEgg, "nest-egg", "", "Nest egg to reach at retirement")
	cmd.Flags().StringVar(&income, "income", "", "Monthly retirement income to fund")
	cmd.Flags().StringVar(&minContribution, "min-contribution", "", "Lower contribution bound")
	cmd.Flags().StringVar(&maxContribution, "max-contribution", "", "Upper contribution bound")
	return cmd
}

func reportCmd(a *app) *cobra.Command {
	var target, monthly string
	var deadline int

	cmd := &cobra.Command{
		Use:   "report [profile-file]",
		Short: "Run every calculator and render one report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := goalRequest(target, monthly, deadline)
			if err != nil {
				return err
			}
			return a.renderReport(cmd, args[0], goal)
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Savings goal amount")
	cmd.Flags().StringVar(&monthly, "monthly", "", "Monthly contribution toward the goal")
	cmd.Flags().IntVar(&deadline, "deadline-months", 0, "Also solve the contribution that meets this deadline")
	return cmd
}

func (a *app) renderReport(cmd *cobra.Command, path string, goal *output.GoalRequest) error {
	profile, err := a.loadProfile(path)
	if err != nil {
		return err
	}
	report, err := output.NewReportGenerator(a.engine).Build(cmd.Context(), profile, goal)
	if err != nil {
		return err
	}
	return a.emit(cmd.OutOrStdout(), report, report)
}

func goalRequest(target, monthly string, deadline int) (*output.GoalRequest, error) {
	if target == "" && monthly == "" {
		return nil, nil
	}
	if target == "" || monthly == "" {
		return nil, fmt.Errorf("--target and --monthly must be given together")
	}
	t, err := parseAmount("target", target)
	if err != nil {
		return nil, err
	}
	m, err := parseAmount("monthly", monthly)
	if err != nil {
		return nil, err
	}
	return &output.GoalRequest{TargetAmount: t, MonthlyContribution: m, DeadlineMonths: deadline}, nil
}

func compareCmd(a *app) *cobra.Command {
	var whatIf []string
	var base string
	var listTemplates, noScenarios bool

	cmd := &cobra.Command{
		Use:   "compare [profile-file]",
		Short: "Compare the retirement plan against scenarios and what-if changes",
		Long: "Compare the base retirement plan with its optimistic and minimum scenarios and with\n" +
			"what-if profiles. A what-if is a template name or a transform spec such as\n" +
			"scale_income:percent=10; chain several with '+'.",
		Args: func(cmd *cobra.Command, args []string) error {
			if listTemplates {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listTemplates {
				templates := transform.CreateBuiltInTemplates()
				fmt.Fprintln(out, "Templates:")
				for _, name := range templates.List() {
					t, _ := templates.Get(name)
					fmt.Fprintf(out, "  %-18s %s\n", name, t.Description)
				}
				fmt.Fprintf(out, "Transforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
				return nil
			}

			profile, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}
			set, err := compare.NewCompareEngine(a.engine).Compare(cmd.Context(), profile, compare.CompareOptions{
				BaseScenarioName: base,
				WhatIf:           whatIf,
				SkipScenarios:    noScenarios,
				ProfilePath:      args[0],
			})
			if err != nil {
				return err
			}
			if a.query != "" {
				return a.emit(out, set, nil)
			}
			return writeComparison(out, a.format, set)
		},
	}
	cmd.Flags().StringArrayVar(&whatIf, "what-if", nil, "What-if template or transform spec (repeatable)")
	cmd.Flags().StringVar(&base, "base", "", "Name of the base plan (default: profile name)")
	cmd.Flags().BoolVar(&noScenarios, "no-scenarios", false, "Leave out the optimistic and minimum scenarios")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List what-if templates and transforms")
	return cmd
}

func writeComparison(w io.Writer, format string, set *compare.ComparisonSet) error {
	var text string
	var err error
	switch f := output.GetFormatterByName(format); {
	case f == nil:
		return fmt.Errorf("unknown format %q", format)
	case f.Name() == "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
		text += "\n"
	case f.Name() == "csv":
		text, err = (&compare.CSVFormatter{}).Format(set)
	case f.Name() == "console":
		text = (&compare.TableFormatter{}).Format(set)
	default:
		return fmt.Errorf("compare supports the console, json and csv formats, got %q", format)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, text)
	return err
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [profile-file]",
		Short: "Validate a profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile file %s is valid\n", args[0])
			return nil
		},
	}
}

func parseAmount(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, s)
	}
	return d, nil
}
