package pulse

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/johnquangdev/signal-pulse/errors"
)

var (
	leadingJSONFence = regexp.MustCompile("(?i)^```json\\s*")
	leadingFence     = regexp.MustCompile("^```\\s*")
	trailingFence    = regexp.MustCompile("```\\s*$")
)

// StripCodeFences removes one Markdown code fence wrapped around model output
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = leadingJSONFence.ReplaceAllString(s, "")
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseExtraction decodes the extraction answer of the model into a generic
// JSON value. Fenced output is accepted. The raw answer is carried on failure.
func ParseExtraction(text string) (any, error) {
	var raw any
	if err := json.Unmarshal([]byte(StripCodeFences(text)), &raw); err != nil {
		return nil, errors.ErrExtractionParseFailed(text, err)
	}
	return raw, nil
}

// prettyJSON renders v with two-space indentation and without HTML escaping
func prettyJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
