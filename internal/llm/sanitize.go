package llm

import (
	"encoding/json"
	"strings"

	apperrors "github.com/repotour/repotour/internal/errors"
)

// ParsedResult is a JSON object recovered from free-form LLM output,
// together with the raw text it came from.
type ParsedResult struct {
	Object map[string]any
	Raw    string
}

// Indented re-serializes the recovered object with two-space indentation.
func (p ParsedResult) Indented() string {
	data, err := json.MarshalIndent(p.Object, "", "  ")
	if err != nil {
		return p.Raw
	}
	return string(data)
}

// ExtractJSON recovers a single JSON object from raw LLM output, which may
// legitimately wrap the object in prose or a fenced code block. Three steps,
// first success wins:
//
//  1. parse the whole text as a JSON object
//  2. parse the substring between the first '{' and the last '}'
//  3. fail, preserving the raw text for diagnostic display
//
// A failure is always distinguishable from a degenerate empty object.
func ExtractJSON(raw string) (ParsedResult, error) {
	trimmed := strings.TrimSpace(raw)

	if obj, ok := parseObject(trimmed); ok {
		return ParsedResult{Object: obj, Raw: raw}, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		if obj, ok := parseObject(raw[start : end+1]); ok {
			return ParsedResult{Object: obj, Raw: raw}, nil
		}
	}

	return ParsedResult{Raw: raw}, apperrors.New(apperrors.KindLLMResponse,
		"no valid JSON object found in LLM response").WithRaw(raw)
}

func parseObject(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, false
	}
	// json.Unmarshal accepts a bare "null" without error.
	if obj == nil {
		return nil, false
	}
	return obj, true
}
