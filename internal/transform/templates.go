package transform

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry with the common what-if questions
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "conservative",
		Description: "Switch to a conservative risk profile",
		Transforms:  []ProfileTransform{&SetRiskTolerance{Risk: domain.RiskConservative}},
	})
	registry.Register(Template{
		Name:        "moderate",
		Description: "Switch to a moderate risk profile",
		Transforms:  []ProfileTransform{&SetRiskTolerance{Risk: domain.RiskModerate}},
	})
	registry.Register(Template{
		Name:        "aggressive",
		Description: "Switch to an aggressive risk profile",
		Transforms:  []ProfileTransform{&SetRiskTolerance{Risk: domain.RiskAggressive}},
	})

	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Monthly income 10% higher",
		Transforms:  []ProfileTransform{&ScaleMonthlyIncome{Percent: decimal.NewFromInt(10)}},
	})
	registry.Register(Template{
		Name:        "income_cut_20pct",
		Description: "Monthly income 20% lower",
		Transforms:  []ProfileTransform{&ScaleMonthlyIncome{Percent: decimal.NewFromInt(-20)}},
	})

	registry.Register(Template{
		Name:        "start_5yr_later",
		Description: "Start saving 5 years later",
		Transforms:  []ProfileTransform{&ShiftAge{Years: 5}},
	})
	registry.Register(Template{
		Name:        "start_10yr_later",
		Description: "Start saving 10 years later",
		Transforms:  []ProfileTransform{&ShiftAge{Years: 10}},
	})

	registry.Register(Template{
		Name:        "short_horizon",
		Description: "Plan for a short-term goal",
		Transforms:  []ProfileTransform{&SetGoalHorizon{Hint: "short-term"}},
	})
	registry.Register(Template{
		Name:        "medium_horizon",
		Description: "Plan for a medium-term goal",
		Transforms:  []ProfileTransform{&SetGoalHorizon{Hint: "medium-term"}},
	})

	registry.Register(Template{
		Name:        "no_dependents",
		Description: "No financial dependents",
		Transforms:  []ProfileTransform{&SetDependents{Value: "0"}},
	})

	return registry
}
