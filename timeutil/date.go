// Package timeutil converts form dates to API tokens and provides a swappable clock.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidDateFormat is returned when a masked date is not exactly DD-MM-YYYY.
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvalidTimestamp is returned when a server timestamp cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// MidnightSuffix is appended to every converted date. No zone is attached.
const MidnightSuffix = "T00:00:00"

// layouts accepted by ParseTimestamp, in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ConvertDateToISO turns "DD-MM-YYYY" into "YYYY-MM-DDT00:00:00".
//
// The input must match the shape exactly: two digits, '-', two digits, '-',
// four digits. Calendar validity is not checked, so "31-02-2024" converts to
// "2024-02-31T00:00:00".
func ConvertDateToISO(s string) (string, error) {
	if !isMaskedDate(s) {
		return "", fmt.Errorf("%w: %q, want DD-MM-YYYY", ErrInvalidDateFormat, s)
	}

	day, month, year := s[0:2], s[3:5], s[6:10]
	return year + "-" + month + "-" + day + MidnightSuffix, nil
}

// ISOToMasked is the inverse of ConvertDateToISO. It takes the leading
// "YYYY-MM-DD" of token and ignores any time component.
func ISOToMasked(token string) (string, error) {
	if len(token) < 10 || !allDigits(token[0:4]) || token[4] != '-' ||
		!allDigits(token[5:7]) || token[7] != '-' || !allDigits(token[8:10]) {
		return "", fmt.Errorf("%w: %q, want YYYY-MM-DD prefix", ErrInvalidDateFormat, token)
	}
	if len(token) > 10 && token[10] != 'T' && token[10] != ' ' {
		return "", fmt.Errorf("%w: %q, unexpected character after date", ErrInvalidDateFormat, token)
	}

	year, month, day := token[0:4], token[5:7], token[8:10]
	return day + "-" + month + "-" + year, nil
}

// ParseTimestamp parses RFC3339 timestamps and the zone-less
// "2006-01-02T15:04:05[.fraction]" form. Zone-less values are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

func isMaskedDate(s string) bool {
	return len(s) == 10 &&
		allDigits(s[0:2]) && s[2] == '-' &&
		allDigits(s[3:5]) && s[5] == '-' &&
		allDigits(s[6:10])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
