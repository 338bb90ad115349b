// Package sanitize normalizes text destined for the mail envelope. Values
// pasted into environment secrets routinely pick up non-breaking spaces,
// zero-width characters or smart formatting that the SMTP dialog rejects.
package sanitize

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// Clean converts special space characters to plain spaces, strips control
// and format runes, and NFC-normalizes the result. Stripping happens before
// normalization: removing a zero-width rune can expose a base letter +
// combining mark pair, and only a normalization pass after the fact keeps
// Clean idempotent.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\u00A0', '\u2007', '\u2009', '\u202F': // no-break, figure, thin, narrow no-break space
			b.WriteRune(' ')
			continue
		case '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF', '\u00AD': // zero-width runes, BOM, soft hyphen
			continue
		}
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			continue
		}
		b.WriteRune(r)
	}

	return norm.NFC.String(b.String())
}

// Address cleans s and encodes a non-ASCII domain part with IDNA, so the
// result is a valid envelope address whenever the local part is ASCII.
func Address(s string) (string, error) {
	s = strings.TrimSpace(Clean(s))

	at := strings.LastIndex(s, "@")
	if at < 0 {
		return s, nil
	}
	local, domain := s[:at], s[at+1:]
	if IsASCII(domain) {
		return s, nil
	}

	encoded, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return "", fmt.Errorf("encoding domain %q: %w", domain, err)
	}
	return local + "@" + encoded, nil
}

// IsASCII reports whether s contains only ASCII bytes.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// Describe lists the unusual runes in s: anything non-ASCII, control or
// format characters, with byte offset and code point. A clean ASCII value
// yields nil. Used for the diagnostic dumps on send failures; safe for
// credentials because it never echoes the surrounding value.
func Describe(s string) []string {
	var out []string
	for i, r := range s {
		switch {
		case r > unicode.MaxASCII:
			out = append(out, fmt.Sprintf("non-ASCII rune %U (%q) at byte %d", r, r, i))
		case unicode.IsControl(r):
			out = append(out, fmt.Sprintf("control rune %U at byte %d", r, i))
		}
	}
	return out
}
