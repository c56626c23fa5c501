// Package render implements literal placeholder substitution for the static
// page templates. Templates are plain text with {{KEY}} markers; there are no
// conditionals, loops, or escaping.
package render

import "strings"

// Render substitutes every {{KEY}} token in tmpl with its value from repl.
// Tokens without a mapping are replaced with the empty string, not left in
// place. The scan is a single left-to-right pass: replacement values are
// emitted verbatim and never re-scanned, so a value containing another token's
// literal text is not expanded. Malformed markers (an unclosed "{{", or "{{}}"
// with no key) pass through unchanged.
func Render(tmpl string, repl map[string]string) string {
	var b strings.Builder
	b.Grow(len(tmpl))

	for {
		start := strings.Index(tmpl, "{{")
		if start < 0 {
			b.WriteString(tmpl)
			return b.String()
		}
		end := strings.Index(tmpl[start+2:], "}}")
		if end < 0 {
			b.WriteString(tmpl)
			return b.String()
		}
		key := tmpl[start+2 : start+2+end]
		if !validKey(key) {
			// Not a placeholder; keep "{{" literally and rescan after it.
			b.WriteString(tmpl[:start+2])
			tmpl = tmpl[start+2:]
			continue
		}
		b.WriteString(tmpl[:start])
		b.WriteString(repl[key])
		tmpl = tmpl[start+2+end+2:]
	}
}

// validKey reports whether s looks like a placeholder key. Keys are
// non-empty sequences of uppercase letters, digits and underscores.
func validKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
