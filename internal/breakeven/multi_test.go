package breakeven

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepGoal(t *testing.T) {
	result, err := NewDefaultSolver(nil).SweepGoal(context.Background(), decimal.NewFromInt(50000), decimal.NewFromInt(1000), nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, len(DefaultSweepFactors))

	wantMonths := []int{84, 59, 46, 37, 32, 24}
	wantMonthly := []int64{500, 750, 1000, 1250, 1500, 2000}
	for i, row := range result.Rows {
		assert.True(t, row.MonthlyContribution.Equal(decimal.NewFromInt(wantMonthly[i])))
		assert.Equal(t, wantMonths[i], row.MonthsToTarget)
		assert.Equal(t, 46-wantMonths[i], row.MonthsSavedVsBase)
		assert.True(t, row.Reached)
	}
	assert.Equal(t, "4799.06", result.Rows[2].TotalInterestEarned.StringFixed(2))
	assert.Equal(t, []string{"Saving 2000 per month reaches the goal 22 months sooner"}, result.Recommendations)
}

func TestSweepGoal_Unreachable(t *testing.T) {
	result, err := NewDefaultSolver(nil).SweepGoal(context.Background(), decimal.NewFromInt(1_000_000), decimal.NewFromInt(100),
		[]decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(200)})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.False(t, result.Rows[0].Reached)
	assert.Contains(t, result.Recommendations[len(result.Recommendations)-1], "not reached within 360 months")
}

func TestSweepGoal_Errors(t *testing.T) {
	solver := NewDefaultSolver(nil)

	_, err := solver.SweepGoal(context.Background(), decimal.Zero, decimal.NewFromInt(100), nil)
	assert.ErrorContains(t, err, "invalid base simulation")

	_, err = solver.SweepGoal(context.Background(), decimal.NewFromInt(1000), decimal.NewFromInt(100), []decimal.Decimal{decimal.Zero})
	assert.ErrorContains(t, err, "no positive contribution")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = solver.SweepGoal(ctx, decimal.NewFromInt(1000), decimal.NewFromInt(100), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTableFormatter(t *testing.T) {
	solver := NewDefaultSolver(nil)
	tf := &TableFormatter{}

	goal, err := solver.SolveGoalContribution(context.Background(), decimal.NewFromInt(12000), 12)
	require.NoError(t, err)
	out := tf.Format(goal)
	assert.Contains(t, out, "CONTRIBUTION SOLVER RESULTS")
	assert.Contains(t, out, "Target Amount:       $12,000")
	assert.Contains(t, out, "Monthly:             $974")
	assert.Contains(t, out, "Reached In:          1 years and 0 months")

	nest, err := solver.Solve(context.Background(), SolveRequest{
		Target: TargetNestEgg, Profile: referenceProfile(),
		Constraints: Constraints{TargetAmount: decimal.NewFromInt(1_000_000)},
	})
	require.NoError(t, err)
	out = tf.Format(nest)
	assert.Contains(t, out, "Gap:                 -$1,297")
	assert.Contains(t, out, "Projected Nest Egg:  $1,000,444")

	failed := tf.Format(&SolveResult{Target: TargetGoalDeadline, TargetAmount: decimal.NewFromInt(5)})
	assert.Contains(t, failed, "not solvable")
	assert.NotContains(t, failed, "REQUIRED CONTRIBUTION")

	sweep, err := solver.SweepGoal(context.Background(), decimal.NewFromInt(50000), decimal.NewFromInt(1000), nil)
	require.NoError(t, err)
	out = tf.FormatSweep(sweep)
	assert.Contains(t, out, "GOAL CONTRIBUTION SWEEP")
	assert.Contains(t, out, "$4799.06")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestJSONFormatter(t *testing.T) {
	result := &SolveResult{Target: TargetGoalDeadline, Success: true, RequiredMonthlyContribution: decimal.NewFromInt(974)}

	out, err := (&JSONFormatter{}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, out, `"target":"goal_deadline"`)
	assert.Contains(t, out, `"requiredMonthlyContribution":"974"`)

	pretty, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n  \"success\": true")
}
