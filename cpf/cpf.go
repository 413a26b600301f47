// Package cpf validates Brazilian taxpayer numbers (CPF).
//
// A CPF has 9 base digits followed by two modulo-11 check digits. Inputs may
// carry any punctuation; only ASCII digits are considered.
package cpf

import (
	"errors"

	"github.com/media-gs/pretriage/digitutil"
	"github.com/media-gs/pretriage/maskutil"
)

// Length is the number of digits of a complete CPF.
const Length = 11

const baseLength = 9

var (
	ErrInvalidLength   = errors.New("cpf: must have 11 digits")
	ErrRepeatedDigits  = errors.New("cpf: repeated digits")
	ErrInvalidChecksum = errors.New("cpf: check digits do not match")
	ErrInvalidBase     = errors.New("cpf: base must have 9 digits")
)

// Valid reports whether s holds a CPF with correct check digits.
// It never panics and treats numbers made of one repeated digit as invalid.
func Valid(s string) bool {
	_, err := Normalize(s)
	return err == nil
}

// Normalize returns the 11 bare digits of s, or the reason it is not a CPF.
func Normalize(s string) (string, error) {
	d := digitutil.Extract(s)
	if len(d) != Length {
		return "", ErrInvalidLength
	}
	// Repeated digits satisfy the arithmetic but are never issued.
	if digitutil.AllSame(d) {
		return "", ErrRepeatedDigits
	}

	first := checkDigit(d[:baseLength])
	if first != int(d[9]-'0') {
		return "", ErrInvalidChecksum
	}
	second := checkDigit(d[:baseLength+1])
	if second != int(d[10]-'0') {
		return "", ErrInvalidChecksum
	}
	return d, nil
}

// CheckDigits computes both check digits for a 9-digit base.
func CheckDigits(base string) (d1, d2 int, err error) {
	d := digitutil.Extract(base)
	if len(d) != baseLength {
		return 0, 0, ErrInvalidBase
	}

	d1 = checkDigit(d)
	d2 = checkDigit(d + string(rune('0'+d1)))
	return d1, d2, nil
}

// Format returns the canonical NNN.NNN.NNN-NN form of a valid CPF.
func Format(s string) (string, error) {
	d, err := Normalize(s)
	if err != nil {
		return "", err
	}
	return maskutil.MaskCPF(d), nil
}

// checkDigit weights digits from len(digits)+1 down to 2, then maps
// (sum*10) mod 11 onto 0..9 with 10 folded to 0.
func checkDigit(digits string) int {
	weight := len(digits) + 1
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}

	r := (sum * 10) % 11
	if r >= 10 {
		return 0
	}
	return r
}
