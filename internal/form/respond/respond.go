// Package respond renders stored answer tokens into the human-readable form
// used by review and submission documents.
package respond

import (
	"strings"
	"unicode"
)

// Humanize converts a stored token into sentence case: "yes" -> "Yes",
// "publicProtection" -> "Public protection", "risk_management" -> "Risk
// management". Review documents must never expose raw stored tokens.
func Humanize(token string) string {
	if token == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(token) + 4)
	for i, r := range token {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && i > 0:
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}

	s := strings.Join(strings.Fields(b.String()), " ")
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// JoinList renders a multi-select answer as a comma-joined list preserving
// selection order.
func JoinList(values []string) string {
	humanized := make([]string, len(values))
	for i, v := range values {
		humanized[i] = Humanize(v)
	}
	return strings.Join(humanized, ", ")
}

// YesNo renders a yes/no token, passing other tokens through Humanize.
func YesNo(token string) string {
	switch token {
	case "yes":
		return "Yes"
	case "no":
		return "No"
	default:
		return Humanize(token)
	}
}
