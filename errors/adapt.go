package errors

import (
	"context"
	"errors"
)

// ToErrorResponse converts any error into ErrorResponse.
// Supported inputs:
//   - ErrorResponse / *ErrorResponse (passthrough)
//   - context.Canceled / context.DeadlineExceeded
//   - InvariantError (DomainInvariant, FieldInvariant, StateInvariant)
func ToErrorResponse(err error) ErrorResponse {
	if err == nil {
		return Internal().WithReason("unexpected_error")
	}

	if errors.Is(err, context.Canceled) {
		return Canceled()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return DeadlineExceeded()
	}

	var e ErrorResponse
	if errors.As(err, &e) {
		return e
	}
	var ep *ErrorResponse
	if errors.As(err, &ep) && ep != nil {
		return *ep
	}

	var ie InvariantError
	if !errors.As(err, &ie) {
		return Internal().WithReason("unexpected_error")
	}

	switch ie.Kind {
	case KindState:
		return FailedPrecondition().
			WithReason("invariant_violation").
			WithDetail("invariant_kind", string(ie.Kind)).
			WithDetail("field", ie.Field).
			WithDetail("reason", ie.Reason)
	case KindDomain:
		if ie.Field == "" {
			return InvalidArgument().WithReason(ie.Reason)
		}
		return ToValidation(ie.Field, ie.Reason)
	default:
		return InvalidArgument().WithReason("unknown_invariant")
	}
}
