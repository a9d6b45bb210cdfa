package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/transform"
)

// CompareEngine orchestrates retirement plan comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	TransformRegistry *transform.TransformRegistry
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a comparison engine with the built-in transforms
// and templates. A nil engine logs nothing.
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		TransformRegistry: transform.NewTransformRegistry(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // defaults to the profile name, then "base"
	WhatIf           []string // transform specs or template names, "+" chains
	SkipScenarios    bool     // leave out the plan's optimistic and minimum scenarios
	ProfilePath      string
}

// Compare projects the base profile and every alternative, then measures each
// alternative against the base plan.
func (ce *CompareEngine) Compare(ctx context.Context, profile *domain.Profile, options CompareOptions) (*ComparisonSet, error) {
	if profile == nil {
		return nil, domain.ErrProfileIncomplete
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = profile.Name
	}
	if baseName == "" {
		baseName = "base"
	}

	basePlan := ce.CalcEngine.ProjectRetirement(profile)
	basePortfolio := ce.CalcEngine.ClassifyPortfolio(profile)
	baseResult := ResultFromPlan(baseName, KindBase, basePlan, basePortfolio)
	baseResult.Description = "Current profile"

	alternatives := []ComparisonResult{}

	if !options.SkipScenarios {
		for _, s := range basePlan.Scenarios {
			if s.ID == domain.ScenarioBase {
				continue
			}
			alt := ResultFromScenario(s, basePlan, basePortfolio)
			alternatives = append(alternatives, CalculateComparison(alt, baseResult))
		}
	}

	for _, spec := range options.WhatIf {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chain, err := ce.TransformRegistry.ParseTransformSpecs(spec, ce.TemplateRegistry)
		if err != nil {
			return nil, fmt.Errorf("invalid what-if %q: %w", spec, err)
		}
		modified, err := transform.ApplyTransforms(profile, chain)
		if err != nil {
			return nil, fmt.Errorf("failed to apply what-if %q: %w", spec, err)
		}

		plan := ce.CalcEngine.ProjectRetirement(modified)
		alt := ResultFromPlan(spec, KindWhatIf, plan, ce.CalcEngine.ClassifyPortfolio(modified))
		alt.Description = transform.Describe(chain)
		alternatives = append(alternatives, CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		ProfilePath:        options.ProfilePath,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	ce.CalcEngine.Logger.Debugf("compared %s against %d alternatives", baseName, len(alternatives))
	return compSet, nil
}
