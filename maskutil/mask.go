// Package maskutil formats raw keystrokes into display masks for form fields.
//
// Every mask is rebuilt from the digits of its input, so the functions hold no
// state and re-masking an already masked value returns it unchanged.
package maskutil

import (
	"strings"

	"github.com/media-gs/pretriage/digitutil"
)

const (
	cpfDigits   = 11
	phoneDigits = 11
	dateDigits  = 8
)

// Kind identifies a masked form field.
type Kind int

const (
	KindCPF Kind = iota + 1
	KindPhone
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindCPF:
		return "cpf"
	case KindPhone:
		return "phone"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Mask applies the mask for kind. Unknown kinds return the bare digits.
func Mask(kind Kind, s string) string {
	switch kind {
	case KindCPF:
		return MaskCPF(s)
	case KindPhone:
		return MaskPhone(s)
	case KindDate:
		return MaskDate(s)
	default:
		return digitutil.Extract(s)
	}
}

// MaskCPF formats a national ID as NNN.NNN.NNN-NN.
//
//	"123"          -> "123"
//	"1234"         -> "123.4"
//	"1234567"      -> "123.456.7"
//	"12345678901"  -> "123.456.789-01"
func MaskCPF(s string) string {
	d := capDigits(s, cpfDigits)

	switch n := len(d); {
	case n <= 3:
		return d
	case n <= 6:
		return join(d[:3], ".", d[3:])
	case n <= 9:
		return join(d[:3], ".", d[3:6], ".", d[6:])
	default:
		return join(d[:3], ".", d[3:6], ".", d[6:9], "-", d[9:])
	}
}

// MaskPhone formats a phone number as (AA) NNNN-NNNN for up to ten digits
// and (AA) NNNNN-NNNN for eleven.
//
//	""            -> ""
//	"11"          -> "(11"
//	"119"         -> "(11) 9"
//	"1123456789"  -> "(11) 2345-6789"
//	"11987654321" -> "(11) 98765-4321"
func MaskPhone(s string) string {
	d := capDigits(s, phoneDigits)

	switch n := len(d); {
	case n == 0:
		return ""
	case n <= 2:
		return "(" + d
	case n <= 6:
		return join("(", d[:2], ") ", d[2:])
	case n <= 10:
		return join("(", d[:2], ") ", d[2:6], "-", d[6:])
	default:
		return join("(", d[:2], ") ", d[2:7], "-", d[7:])
	}
}

// MaskDate formats a date as DD-MM-YYYY.
//
//	"06"       -> "06"
//	"0607"     -> "06-07"
//	"06071996" -> "06-07-1996"
func MaskDate(s string) string {
	d := capDigits(s, dateDigits)

	switch n := len(d); {
	case n <= 2:
		return d
	case n <= 4:
		return join(d[:2], "-", d[2:])
	default:
		return join(d[:2], "-", d[2:4], "-", d[4:])
	}
}

// capDigits extracts digits and drops everything past limit.
func capDigits(s string, limit int) string {
	d := digitutil.Extract(s)
	if len(d) > limit {
		return d[:limit]
	}
	return d
}

func join(parts ...string) string {
	size := 0
	for _, p := range parts {
		size += len(p)
	}

	var b strings.Builder
	b.Grow(size)
	for _, p := range parts {
		b.WriteString(p)
	}
	return b.String()
}
