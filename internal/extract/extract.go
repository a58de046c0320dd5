// Package extract coerces free-text model replies into JSON values.
//
// JSON never fails: a reply that cannot be decoded comes back as the
// fallback object {"raw_text": <cleaned candidate>} so callers always have
// something to return to their own clients.
package extract

import (
	"encoding/json"
	"strings"
)

// RawTextKey is the single key of the fallback object
const RawTextKey = "raw_text"

const fence = "```"

// JSON extracts the JSON value embedded in text.
func JSON(text string) any {
	cleaned := Clean(text)

	// The whole remainder goes first so double-encoded payloads, whose
	// braces sit inside a string literal, decode before the brace search.
	if v, ok := decode(cleaned); ok && structured(v) {
		return v
	}

	candidate := cleaned
	if start := strings.Index(cleaned, "{"); start >= 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			candidate = cleaned[start : end+1]
		}
	}
	if v, ok := decode(candidate); ok && structured(v) {
		return v
	}
	return Fallback(candidate)
}

// Clean trims the text, unwraps a leading code fence and drops a json tag.
func Clean(text string) string {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, fence) {
		s = s[len(fence):]
		if end := strings.Index(s, fence); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	if hasJSONTag(s) {
		s = strings.TrimSpace(s[len("json"):])
	}
	return s
}

// hasJSONTag matches a leading "json" marker but not words like "jsonify"
func hasJSONTag(s string) bool {
	if len(s) < 4 || !strings.EqualFold(s[:4], "json") {
		return false
	}
	if len(s) == 4 {
		return true
	}
	switch s[4] {
	case ' ', '\t', '\r', '\n', '{', '[', ':':
		return true
	}
	return false
}

// Fallback wraps text that could not be decoded
func Fallback(text string) map[string]any {
	return map[string]any{RawTextKey: text}
}

// IsFallback reports whether v is the fallback object produced by JSON
func IsFallback(v any) bool {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return false
	}
	_, ok = m[RawTextKey].(string)
	return ok
}

func decode(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	if inner, isString := v.(string); isString {
		var again any
		if err := json.Unmarshal([]byte(inner), &again); err != nil {
			return nil, false
		}
		return again, true
	}
	return v, true
}

// structured reports whether v is an object or array
func structured(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}
