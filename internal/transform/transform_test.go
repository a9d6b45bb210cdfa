package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProfile() *domain.Profile {
	return &domain.Profile{
		Name:          "Alice",
		Age:           "30",
		MonthlyIncome: "10000",
		RiskTolerance: domain.RiskModerate,
		Dependents:    "0",
	}
}

func TestApplyTransforms_NilProfile(t *testing.T) {
	_, err := ApplyTransforms(nil, []ProfileTransform{&ShiftAge{Years: 1}})
	assert.Error(t, err)
}

func TestApplyTransforms_EmptyReturnsCopy(t *testing.T) {
	base := createTestProfile()
	result, err := ApplyTransforms(base, nil)
	require.NoError(t, err)

	assert.Equal(t, base, result)
	assert.NotSame(t, base, result)
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestProfile(), []ProfileTransform{nil})
	assert.ErrorContains(t, err, "index 0 is nil")
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestProfile()
	chain := []ProfileTransform{
		&SetRiskTolerance{Risk: domain.RiskAggressive},
		&ScaleMonthlyIncome{Percent: decimal.NewFromInt(10)},
		&ShiftAge{Years: 5},
		&SetDependents{Value: "3"},
		&SetGoalHorizon{Hint: "medium-term"},
	}

	result, err := ApplyTransforms(base, chain)
	require.NoError(t, err)

	assert.Equal(t, domain.RiskAggressive, result.RiskTolerance)
	assert.Equal(t, domain.FormValue("11000"), result.MonthlyIncome)
	assert.Equal(t, domain.FormValue("35"), result.Age)
	assert.Equal(t, "3", result.Dependents)
	assert.Equal(t, domain.HorizonMedium, result.Horizon())

	// base untouched
	assert.Equal(t, createTestProfile(), base)
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	_, err := ApplyTransforms(createTestProfile(), []ProfileTransform{&SetDependents{Value: "lots"}})
	require.Error(t, err)
	assert.ErrorContains(t, err, "set_dependents validation failed")

	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "validate", te.Operation)
}

func TestTransformValidation(t *testing.T) {
	base := createTestProfile()
	tests := []struct {
		name      string
		transform ProfileTransform
		wantErr   bool
	}{
		{"valid risk", &SetRiskTolerance{Risk: domain.RiskConservative}, false},
		{"unset risk", &SetRiskTolerance{}, true},
		{"bogus risk", &SetRiskTolerance{Risk: "yolo"}, true},
		{"valid income", &SetMonthlyIncome{Amount: 5000}, false},
		{"negative income", &SetMonthlyIncome{Amount: -1}, true},
		{"income cut", &ScaleMonthlyIncome{Percent: decimal.NewFromInt(-50)}, false},
		{"income wiped out", &ScaleMonthlyIncome{Percent: decimal.NewFromInt(-100)}, true},
		{"age forward", &ShiftAge{Years: 10}, false},
		{"age before birth", &ShiftAge{Years: -31}, true},
		{"dependents", &SetDependents{Value: "5+"}, false},
		{"bad dependents", &SetDependents{Value: "6"}, true},
		{"horizon", &SetGoalHorizon{Hint: "corto"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Error(t, tt.transform.Validate(nil), "nil base must fail")
		})
	}
}

func TestScaleMonthlyIncome_DefaultIncome(t *testing.T) {
	base := createTestProfile()
	base.MonthlyIncome = "unknown"

	result, err := (&ScaleMonthlyIncome{Percent: decimal.RequireFromString("12.5")}).Apply(base)
	require.NoError(t, err)
	assert.Equal(t, domain.FormValue("9000"), result.MonthlyIncome)
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "Set risk tolerance to aggressive", (&SetRiskTolerance{Risk: domain.RiskAggressive}).Description())
	assert.Equal(t, "Change monthly income by +10%", (&ScaleMonthlyIncome{Percent: decimal.NewFromInt(10)}).Description())
	assert.Equal(t, "Change monthly income by -20%", (&ScaleMonthlyIncome{Percent: decimal.NewFromInt(-20)}).Description())
	assert.Equal(t, "Start 3 years earlier", (&ShiftAge{Years: -3}).Description())
	assert.Equal(t, "Plan for a short horizon", (&SetGoalHorizon{Hint: "short-term"}).Description())
	assert.Equal(t, "Set dependents to 2; Start 5 years later",
		Describe([]ProfileTransform{&SetDependents{Value: "2"}, &ShiftAge{Years: 5}}))
}

func TestTransformError(t *testing.T) {
	cause := errors.New("boom")
	err := NewTransformError("shift_age", "apply", "failed", cause)
	assert.Equal(t, "transform shift_age (apply): failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "transform x (validate): bad", NewTransformError("x", "validate", "bad", nil).Error())
}
