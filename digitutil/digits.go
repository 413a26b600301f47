// Package digitutil extracts ASCII digits from free-form user input.
package digitutil

import "strings"

// Extract returns only the ASCII digits '0'..'9' of s, preserving order.
// Other Unicode digits are dropped.
//
// Examples:
//
//	"123.456.789-09"  -> "12345678909"
//	"(11) 98765-4321" -> "11987654321"
//	"abc"             -> ""
func Extract(s string) string {
	n := Count(s)
	if n == 0 {
		return ""
	}
	if n == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(n)
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Count returns the number of ASCII digits in s.
func Count(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			n++
		}
	}
	return n
}

// AllSame reports whether digits is non-empty and made of a single repeated byte.
func AllSame(digits string) bool {
	if digits == "" {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
