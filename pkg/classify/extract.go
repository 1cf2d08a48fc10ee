package classify

import (
	"regexp"
	"strings"
)

// Models frequently wrap the requested JSON in a fenced code block even when
// told not to. Extraction is two-stage: strip the fence if one exists, then
// scan for the first balanced {...} span.
var fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// extractJSON pulls the JSON object text out of a raw model payload.
// Returns false when no object-shaped substring can be found at all.
func extractJSON(payload string) (string, bool) {
	if m := fencedBlockPattern.FindStringSubmatch(payload); m != nil {
		if obj, ok := firstJSONObject(m[1]); ok {
			return obj, true
		}
	}
	return firstJSONObject(payload)
}

// firstJSONObject finds the first balanced top-level {...} span in s.
// Braces inside JSON strings are not counted toward nesting depth.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
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
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
