package instruction

import (
	"regexp"
	"strings"
	"unicode"
)

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// Repair fixes the defects completion models commonly leave in JSON:
// trailing commas before a closing bracket and typographic quotes.
func Repair(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	s = normalizeQuotes(s)
	return strings.TrimSpace(s)
}

func isCurlyDouble(r rune) bool {
	return r == '“' || r == '”' || r == '„'
}

// normalizeQuotes rewrites typographic quotes. A curly double quote outside
// a string opens one. Inside a string it is escaped, unless a curly quote
// opened that string and this one is followed by a separator or the end.
// Single curly quotes become apostrophes.
func normalizeQuotes(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	inString, curlyOpen, escaped := false, false, false
	for i, r := range runes {
		switch {
		case escaped:
			escaped = false
			if isCurlyDouble(r) {
				r = '"'
			}
			b.WriteRune(r)
		case inString && r == '\\':
			escaped = true
			b.WriteRune(r)
		case r == '"':
			inString, curlyOpen = !inString, false
			b.WriteRune(r)
		case isCurlyDouble(r):
			switch {
			case !inString:
				inString, curlyOpen = true, true
				b.WriteByte('"')
			case curlyOpen && closesString(runes[i+1:]):
				inString, curlyOpen = false, false
				b.WriteByte('"')
			default:
				b.WriteString(`\"`)
			}
		case r == '‘' || r == '’':
			b.WriteByte('\'')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func closesString(rest []rune) bool {
	for _, r := range rest {
		if unicode.IsSpace(r) {
			continue
		}
		return strings.ContainsRune(":,}]", r)
	}
	return true
}

// firstObject returns the first top-level {...} span with balanced braces.
// Braces inside string literals are not counted.
func firstObject(input string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
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
			if depth == 0 && start >= 0 {
				return input[start : i+1], true
			}
		}
	}
	return "", false
}
