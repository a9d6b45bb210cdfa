package output

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	json "github.com/goccy/go-json"
)

// Query evaluates a JSONPath expression (e.g. "$.retirement.projectedNestEgg")
// against the JSON form of v and returns the match as indented JSON. A
// single-element match list is unwrapped.
func Query(v any, path string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("query: failed to encode value: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("query: failed to decode value: %w", err)
	}

	match, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", path, err)
	}
	if list, ok := match.([]any); ok && len(list) == 1 {
		match = list[0]
	}

	out, err := json.MarshalIndent(match, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("query: failed to encode result: %w", err)
	}
	return append(out, '\n'), nil
}
