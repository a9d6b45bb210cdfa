package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters for the CLI
// and the HTTP API.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_risk", createSetRiskTolerance)
	registry.Register("set_income", createSetMonthlyIncome)
	registry.Register("scale_income", createScaleMonthlyIncome)
	registry.Register("shift_age", createShiftAge)
	registry.Register("set_dependents", createSetDependents)
	registry.Register("set_horizon", createSetGoalHorizon)

	return registry
}

// Register adds a transform factory to the registry
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the registered transform names, sorted
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "scale_income:percent=10"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses several specs, each either a "name:params"
// spec or a built-in template name. Specs separated by "+" form one chain.
func (r *TransformRegistry) ParseTransformSpecs(spec string, templates *TemplateRegistry) ([]ProfileTransform, error) {
	var chain []ProfileTransform
	for _, part := range strings.Split(spec, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if templates != nil && !strings.Contains(part, ":") {
			tmpl, ok := templates.Get(part)
			if !ok {
				return nil, fmt.Errorf("unknown template: %s", part)
			}
			chain = append(chain, tmpl.Transforms...)
			continue
		}
		t, err := r.ParseTransformSpec(part)
		if err != nil {
			return nil, err
		}
		chain = append(chain, t)
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("empty what-if spec")
	}
	return chain, nil
}

// Factory functions for each transform

func createSetRiskTolerance(params map[string]string) (ProfileTransform, error) {
	value, ok := params["risk"]
	if !ok {
		return nil, fmt.Errorf("set_risk requires 'risk' parameter")
	}
	risk, err := domain.ParseRiskTolerance(value)
	if err != nil {
		return nil, fmt.Errorf("invalid risk value: %w", err)
	}
	return &SetRiskTolerance{Risk: risk}, nil
}

func createSetMonthlyIncome(params map[string]string) (ProfileTransform, error) {
	value, ok := params["amount"]
	if !ok {
		return nil, fmt.Errorf("set_income requires 'amount' parameter")
	}
	amount, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}
	return &SetMonthlyIncome{Amount: amount}, nil
}

func createScaleMonthlyIncome(params map[string]string) (ProfileTransform, error) {
	value, ok := params["percent"]
	if !ok {
		return nil, fmt.Errorf("scale_income requires 'percent' parameter")
	}
	percent, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid percent value: %w", err)
	}
	return &ScaleMonthlyIncome{Percent: percent}, nil
}

func createShiftAge(params map[string]string) (ProfileTransform, error) {
	value, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("shift_age requires 'years' parameter")
	}
	years, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}
	return &ShiftAge{Years: years}, nil
}

func createSetDependents(params map[string]string) (ProfileTransform, error) {
	value, ok := params["value"]
	if !ok {
		return nil, fmt.Errorf("set_dependents requires 'value' parameter")
	}
	return &SetDependents{Value: value}, nil
}

func createSetGoalHorizon(params map[string]string) (ProfileTransform, error) {
	hint, ok := params["hint"]
	if !ok {
		return nil, fmt.Errorf("set_horizon requires 'hint' parameter")
	}
	return &SetGoalHorizon{Hint: hint}, nil
}
