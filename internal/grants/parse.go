package grants

import (
	"regexp"
	"strings"
)

// SplitObjectName splits a dotted object name into its identifier segments.
//
// A segment may be a double-quoted identifier holding literal dots. A dot is
// a separator only outside of a quoted segment. Quotes are stripped from the
// returned parts.
func SplitObjectName(name string) (parts []string) {
	var b strings.Builder
	inQuote := false
	for _, c := range name {
		switch c {
		case '"':
			inQuote = !inQuote
		case '.':
			if inQuote {
				b.WriteRune(c)
			} else {
				parts = append(parts, b.String())
				b.Reset()
			}
		default:
			b.WriteRune(c)
		}
	}
	parts = append(parts, b.String())
	return
}

// JoinObjectName serializes non-empty parts back to a fully qualified name,
// quoting parts holding literal dots so that SplitObjectName is the inverse.
func JoinObjectName(parts ...string) string {
	b := strings.Builder{}
	for _, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		if strings.ContainsRune(part, '.') {
			b.WriteByte('"')
			b.WriteString(part)
			b.WriteByte('"')
		} else {
			b.WriteString(part)
		}
	}
	return b.String()
}

var plainIdentifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// HasSpecialCharacters tells whether an identifier needs quoting in SQL.
func HasSpecialCharacters(identifier string) bool {
	return !plainIdentifierRe.MatchString(identifier)
}
