package recommendation

import "encoding/json"

// ExtractJSONObject recovers a JSON object from free-form model text.
//
// Layered strategy: a strict parse of the whole text first, then a scan
// for brace-balanced substrings (string- and escape-aware, so nested
// braces and braces inside string values are handled correctly), trying
// each until one parses. Total failure yields an empty map, never an
// error.
func ExtractJSONObject(raw string) map[string]json.RawMessage {
	var direct map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &direct); err == nil && direct != nil {
		return direct
	}

	for _, candidate := range balancedObjects(raw) {
		var parsed map[string]json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil && parsed != nil {
			return parsed
		}
	}

	return map[string]json.RawMessage{}
}

// balancedObjects returns every top-level brace-balanced substring of s,
// in order of appearance.
func balancedObjects(s string) []string {
	var (
		objects  []string
		depth    int
		start    int
		inString bool
		escaped  bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				objects = append(objects, s[start:i+1])
			}
		}
	}

	return objects
}
