// Package normalize canonicalizes free-text tokens (skills, locations) so both
// sides of a comparison agree on casing and whitespace.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// String returns the canonical form of s: invisible characters removed,
// whitespace collapsed and trimmed, every whitespace-delimited token lowercased
// with its first letter uppercased.
//
// String is total and idempotent. It does no stemming: "Js" and "Javascript"
// stay distinct.
func String(s string) string {
	if s == "" {
		return ""
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	// Invisible characters go before composition so a base letter and a
	// combining mark they separated still compose.
	s = norm.NFC.String(strings.Map(func(r rune) rune {
		if isInvisible(r) {
			return -1
		}
		return r
	}, s))

	b := strings.Builder{}
	b.Grow(len(s))
	startOfToken := true
	pendingSpace := false

	for _, r := range s {
		if unicode.IsSpace(r) {
			if b.Len() > 0 {
				pendingSpace = true
			}
			startOfToken = true
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		r = unicode.ToLower(r)
		if startOfToken {
			r = unicode.ToUpper(r)
			startOfToken = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if !norm.NFC.IsNormalString(out) {
		out = norm.NFC.String(out)
	}
	return out
}

// Strings normalizes every element, dropping values that normalize to "".
func Strings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = String(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func isInvisible(r rune) bool {
	switch r {
	case 0x0000, 0x200B, 0x200C, 0x200D, 0xFEFF:
		return true
	}
	return false
}
