package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded value. A nil return means valid.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object or array in raw model output
// into T. Code fences, surrounding prose, comments and ".5"-style numbers
// are tolerated. A non-nil validator runs on the decoded value.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	jsonStr := extractJSONBlock(stripCodeFences(raw))
	if jsonStr == "" {
		return zero, fmt.Errorf("%w: no JSON value found in response", ErrInvalidOutput)
	}
	jsonStr = sanitizeJSON(jsonStr)

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// stripCodeFences drops ``` fence lines and keeps everything else.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// extractJSONBlock returns the first balanced {...} or [...] span,
// whichever opens earlier.
func extractJSONBlock(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}
	open := s[start]
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == closer:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// sanitizeJSON drops // and /* */ comments and rewrites bare leading
// decimals (".8", "-.3") as "0.8" and "-0.3". String contents are copied
// untouched.
func sanitizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
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

		switch {
		case c == '"':
			inString = true
		case strings.HasPrefix(s[i:], "//"):
			if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
				i += nl - 1
			} else {
				i = len(s)
			}
			continue
		case strings.HasPrefix(s[i:], "/*"):
			if end := strings.Index(s[i+2:], "*/"); end >= 0 {
				i += end + 3
			} else {
				i = len(s)
			}
			continue
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(s[:i]):
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// startsNumber reports whether the last non-space byte of prefix is one
// that may precede a numeric literal.
func startsNumber(prefix string) bool {
	trimmed := strings.TrimRight(prefix, " \t\r\n")
	if trimmed == "" {
		return true
	}
	return strings.IndexByte(":,[{-", trimmed[len(trimmed)-1]) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
