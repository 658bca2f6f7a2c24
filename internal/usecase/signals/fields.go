package signals

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

// object returns v as a JSON object; any other shape reads as an empty object
func object(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// sequence returns the array stored under key. ok is false when the key is
// missing or holds anything other than an array.
func sequence(m map[string]any, key string) ([]any, bool) {
	items, ok := m[key].([]any)
	return items, ok
}

// text renders a scalar as the extraction schema reads it: strings verbatim,
// non-zero numbers and true as their literal, everything else as empty.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == 0 || math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return ""
		}
		return t.String()
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case int64:
		if t == 0 {
			return ""
		}
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

// optionalText is text with the empty result mapped to absent
func optionalText(v any) *string {
	s := text(v)
	if s == "" {
		return nil
	}
	return &s
}

// stringItems keeps the string elements of a raw array
func stringItems(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func priorityOf(v any) entities.Priority {
	s, ok := v.(string)
	if !ok {
		return entities.PriorityMedium
	}
	switch p := entities.Priority(s); p {
	case entities.PriorityHigh, entities.PriorityMedium, entities.PriorityLow:
		return p
	default:
		return entities.PriorityMedium
	}
}

func taskClarityOf(v any) entities.TaskClarity {
	s, ok := v.(string)
	if !ok {
		return entities.TaskClarityClear
	}
	switch c := entities.TaskClarity(s); c {
	case entities.TaskClarityClear, entities.TaskClarityLow:
		return c
	default:
		return entities.TaskClarityClear
	}
}

func decisionClarityOf(v any) entities.DecisionClarity {
	if s, ok := v.(string); ok && entities.DecisionClarity(s) == entities.DecisionClarityUnclear {
		return entities.DecisionClarityUnclear
	}
	return entities.DecisionClarityClear
}

func severityOf(v any) entities.Severity {
	s, ok := v.(string)
	if !ok {
		return entities.SeverityMedium
	}
	switch sev := entities.Severity(s); sev {
	case entities.SeverityHigh, entities.SeverityMedium, entities.SeverityLow:
		return sev
	default:
		return entities.SeverityMedium
	}
}

// clone deep-copies a decoded JSON value so results never share nested
// objects or arrays with the input
func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, item := range t {
			m[k] = clone(item)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, item := range t {
			s[i] = clone(item)
		}
		return s
	default:
		return v
	}
}
