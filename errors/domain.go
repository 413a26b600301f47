package errors

import (
	"errors"
	"fmt"
)

// InvariantKind is the kind of a violated domain rule.
type InvariantKind string

const (
	KindDomain InvariantKind = "domain"
	KindState  InvariantKind = "state"
)

// InvariantError carries a field-level or state-level rule violation.
// Base keeps the sentinel (for example cpf.ErrInvalidChecksum) for errors.Is.
type InvariantError struct {
	Kind   InvariantKind
	Base   error
	Field  string
	Reason string
}

func (e InvariantError) Error() string {
	switch e.Kind {
	case KindState:
		switch {
		case e.Base == nil && e.Reason == "":
			return "state: invalid"
		case e.Reason == "":
			return fmt.Sprintf("state: %v", e.Base)
		case e.Base == nil:
			return fmt.Sprintf("state: %s", e.Reason)
		default:
			return fmt.Sprintf("state: %v: %s", e.Base, e.Reason)
		}
	default:
		if e.Field == "" {
			return e.Reason
		}
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
}

func (e InvariantError) Unwrap() error { return e.Base }

// DomainInvariant reports a field rule, e.g. "documento: invalid_cpf".
func DomainInvariant(field, reason string) error {
	return InvariantError{Kind: KindDomain, Field: field, Reason: reason}
}

// FieldInvariant is DomainInvariant keeping the underlying cause.
func FieldInvariant(base error, field, reason string) error {
	return InvariantError{Kind: KindDomain, Base: base, Field: field, Reason: reason}
}

// StateInvariant reports an operation not allowed in the current state,
// e.g. cancelling a triage that is no longer open.
func StateInvariant(base error, field, reason string) error {
	return InvariantError{Kind: KindState, Base: base, Field: field, Reason: reason}
}

func IsInvariant(err error) bool {
	var ie InvariantError
	return errors.As(err, &ie)
}
