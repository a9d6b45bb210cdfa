package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/finplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// Intake form bounds
const (
	MinAge           = 18
	MaxAge           = 100
	MinMonthlyIncome = 100
)

// ErrEmptyProfile is returned when an input file decodes to nothing
var ErrEmptyProfile = errors.New("profile file is empty")

// InputParser handles parsing of profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a profile from a YAML or JSON file. JSON files use the
// camelCase field names of the HTTP API, YAML files use snake_case.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile *domain.Profile
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		profile, err = ip.ParseJSON(data)
	} else {
		profile, err = ip.ParseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return profile, nil
}

// ParseYAML decodes a profile without validating it
func (ip *InputParser) ParseYAML(data []byte) (*domain.Profile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyProfile
	}
	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &profile, nil
}

// ParseJSON decodes a profile without validating it
func (ip *InputParser) ParseJSON(data []byte) (*domain.Profile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyProfile
	}
	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &profile, nil
}

// ValidateProfile applies the intake form rules. Non-numeric age and income
// are accepted; the calculators replace them with defaults.
func (ip *InputParser) ValidateProfile(profile *domain.Profile) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}

	if !profile.RiskTolerance.Valid() {
		return fmt.Errorf("unknown risk tolerance %q", profile.RiskTolerance)
	}

	if _, ok := domain.ParseDependents(profile.Dependents); !ok {
		return fmt.Errorf("dependents must be one of 0, 1, 2, 3, 4, 5+, got %q", profile.Dependents)
	}

	if age, usedDefault := profile.ParsedAge(); !usedDefault {
		if age < MinAge || age > MaxAge {
			return fmt.Errorf("age must be between %d and %d, got %d", MinAge, MaxAge, age)
		}
	}

	if income, usedDefault := profile.ParsedMonthlyIncome(); !usedDefault {
		if income < MinMonthlyIncome {
			return fmt.Errorf("monthly income must be at least %d, got %d", MinMonthlyIncome, income)
		}
	}

	if expenses, usedDefault := domain.ParseWholeNumber(string(profile.FixedExpenses), 0); !usedDefault && expenses < 0 {
		return fmt.Errorf("fixed expenses cannot be negative, got %d", expenses)
	}

	return nil
}
