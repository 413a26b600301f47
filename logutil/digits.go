package logutil

import "strings"

const (
	cpfVisibleDigits   = 2
	phoneVisibleDigits = 4
	shortDigitCount    = 4
)

// RedactCPF hides every digit of a CPF except the two check digits,
// keeping separators: "420.905.118-77" -> "***.***.***-77".
func RedactCPF(s string) string {
	return redactDigitsKeepLast(strings.TrimSpace(s), cpfVisibleDigits)
}

// RedactPhone hides every digit except the last four, or the last one when
// the value has four digits or fewer: "(11) 98765-4321" -> "(**) *****-4321".
func RedactPhone(s string) string {
	return redactDigitsKeepLast(strings.TrimSpace(s), phoneVisibleDigits)
}

// redactDigitsKeepLast masks ASCII digits right to left, keeping keep of them
// (1 when the value is short). Non-digits are copied. Values without digits
// are fully replaced.
func redactDigitsKeepLast(s string, keep int) string {
	if s == "" {
		return ""
	}

	b := []byte(s)
	total := 0
	for _, c := range b {
		if isDigit(c) {
			total++
		}
	}
	if total == 0 {
		return redacted
	}
	if total <= shortDigitCount && keep > 1 {
		keep = 1
	}

	seen := 0
	for i := len(b) - 1; i >= 0; i-- {
		if isDigit(b[i]) {
			seen++
			if seen > keep {
				b[i] = '*'
			}
		}
	}
	return string(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
