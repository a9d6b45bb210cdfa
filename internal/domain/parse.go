package domain

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseWholeNumber reads the leading integer of a form value ("30", "12000.50",
// "45 years"). When no leading integer is present it returns def and
// usedDefault=true, so a genuine "0" is distinguishable from a fallback.
func ParseWholeNumber(raw string, def int) (value int, usedDefault bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return def, true
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return def, true
	}
	return n, false
}

// FormValue is a numeric intake field kept as entered. JSON and YAML inputs
// may carry it as a string or as a number; either way the raw text is kept
// for ParseWholeNumber.
type FormValue string

// UnmarshalJSON accepts a JSON string, number or null
func (v *FormValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("form value must be a string or a number, got %s", data)
	}
	*v = FormValue(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar and keeps its text
func (v *FormValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("form value must be a scalar, line %d", node.Line)
	}
	if node.ShortTag() == "!!null" {
		*v = ""
		return nil
	}
	*v = FormValue(node.Value)
	return nil
}
