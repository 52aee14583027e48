package feasibility

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON locates a JSON object inside free-form model output. The span
// runs from the first '{' to the last '}', which tolerates prose before and
// after the object but deliberately does not repair malformed JSON inside
// the span. With several objects in one response the span covers all of them
// and parsing fails; that is accepted behavior.
func ExtractJSON(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON object found in response", ErrExtraction)
	}

	span := raw[start : end+1]

	var parsed map[string]any
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return parsed, nil
}
