package errors

import (
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
)

const violationReasonMetadataPrefix = "_errors.violation_reason."

// ToGRPC encodes e as a status error with ErrorInfo and, for
// InvalidArgument, BadRequest field violations.
func (e ErrorResponse) ToGRPC() error {
	st := status.New(e.Code, e.Message)

	metadata := cloneDetails(e.Details)
	for _, v := range e.Violations {
		if v.Field == "" || v.Reason == "" {
			continue
		}
		if metadata == nil {
			metadata = map[string]string{}
		}
		metadata[violationReasonMetadataPrefix+v.Field] = v.Reason
	}

	if e.Reason != "" || len(metadata) > 0 || e.Domain != "" {
		ei := &errdetails.ErrorInfo{
			Reason:   string(e.Reason),
			Domain:   e.Domain,
			Metadata: metadata,
		}
		if st2, err := st.WithDetails(ei); err == nil {
			st = st2
		}
	}

	if len(e.Violations) > 0 && e.Code == codes.InvalidArgument {
		br := &errdetails.BadRequest{
			FieldViolations: make([]*errdetails.BadRequest_FieldViolation, 0, len(e.Violations)),
		}
		for _, v := range e.Violations {
			desc := v.Description
			if desc == "" {
				desc = v.Reason
			}
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       v.Field,
				Description: desc,
			})
		}
		if st2, err := st.WithDetails(br); err == nil {
			st = st2
		}
	}

	return st.Err()
}

// FromGRPC is the inverse of ToGRPC. Non-status errors become Unknown.
func FromGRPC(err error) ErrorResponse {
	st, ok := status.FromError(err)
	if !ok {
		return Unknown()
	}

	out := New(st.Message(), st.Code(), nil)
	var violationReasons map[string]string
	var violations []FieldViolation

	for _, d := range st.Details() {
		switch x := d.(type) {
		case *errdetails.ErrorInfo:
			if x.GetReason() != "" {
				out.Reason = Reason(x.GetReason())
			}
			if dom := x.GetDomain(); dom != "" {
				out.Domain = dom
			}
			details := make(map[string]string, len(x.GetMetadata()))
			for k, v := range x.GetMetadata() {
				if field, found := strings.CutPrefix(k, violationReasonMetadataPrefix); found {
					if field == "" {
						continue
					}
					if violationReasons == nil {
						violationReasons = map[string]string{}
					}
					violationReasons[field] = v
					continue
				}
				details[k] = v
			}
			out = out.WithDetails(details)
		case *errdetails.BadRequest:
			for _, fv := range x.GetFieldViolations() {
				violations = append(violations, FieldViolation{Field: fv.GetField(), Description: fv.GetDescription()})
			}
		}
	}

	for i := range violations {
		violations[i].Reason = violationReasons[violations[i].Field]
	}
	out.Violations = violations
	return out
}
