package patient

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/media-gs/pretriage/config"
	"github.com/media-gs/pretriage/cpf"
	"github.com/media-gs/pretriage/digitutil"
	vxerrors "github.com/media-gs/pretriage/errors"
	"github.com/media-gs/pretriage/logger"
	"github.com/media-gs/pretriage/logutil"
	"github.com/media-gs/pretriage/maskutil"
	"github.com/media-gs/pretriage/metrics"
	"github.com/media-gs/pretriage/timeutil"
	"github.com/media-gs/pretriage/validator"
)

const (
	formRegistration = "registration"
	formLogin        = "login"
	formProfile      = "profile"
)

// Forms turns form input into API payloads. It is safe for concurrent use.
//
// Errors returned by its methods convert with errors.ToErrorResponse into an
// InvalidArgument response whose violations name the offending fields.
type Forms struct {
	reg config.RegistrationConfig
	log logger.LoggerInterface
	rec *metrics.Recorder
}

// NewForms builds Forms. A nil log discards output; a nil rec records nothing.
func NewForms(cfg config.Config, log logger.LoggerInterface, rec *metrics.Recorder) *Forms {
	if log == nil {
		log = logger.Nop()
	}
	return &Forms{
		reg: cfg.Registration,
		log: log.With("component", "patient_forms"),
		rec: rec,
	}
}

// PrepareRegistration validates the sign-up form and builds the payload.
//
// Rules run in order and the first failure is returned: every field present,
// CPF has 11 digits, CPF check digits, birth date is DD-MM-YYYY, phone has
// the configured minimum of digits.
func (f *Forms) PrepareRegistration(ctx context.Context, in RegistrationInput) (Patient, error) {
	ctx = withRequestID(ctx)

	if missing := validator.Validate(in); missing != nil {
		return Patient{}, f.reject(ctx, formRegistration, vxerrors.ValidationFields(missing), "fields", len(missing))
	}

	rules := []fieldRule{
		{FieldDocument, in.Document, "cpf_len", vxerrors.ReasonInvalidLength, cpf.ErrInvalidLength},
		{FieldDocument, in.Document, "cpf", vxerrors.ReasonInvalidCPF, nil},
		{FieldBirthDate, in.BirthDate, "date_dmy", vxerrors.ReasonInvalidDate, timeutil.ErrInvalidDateFormat},
		{FieldPhone, in.Phone, f.phoneTag(), vxerrors.ReasonInvalidPhone, nil},
	}
	for _, r := range rules {
		if !validator.Check(r.value, r.tag) {
			return Patient{}, f.rejectField(ctx, formRegistration, r.cause(), r.field, r.reason, r.value)
		}
	}

	birth, err := timeutil.ConvertDateToISO(in.BirthDate)
	if err != nil {
		return Patient{}, err
	}
	doc := digitutil.Extract(in.Document)
	phone := digitutil.Extract(in.Phone)

	p := Patient{
		FullName:  in.FullName,
		Document:  doc,
		BirthDate: birth,
		Phone:     phone,
		Address:   in.Address,
		Latitude:  f.reg.DefaultLatitude,
		Longitude: f.reg.DefaultLongitude,
	}

	f.rec.Submission(formRegistration, metrics.OutcomeAccepted)
	f.log.InfowCtx(ctx, "registration prepared", FieldDocument, doc, FieldPhone, phone)
	return p, nil
}

// CheckDocument is called on every keystroke of the CPF field. It re-masks
// the input and flags wrong check digits once 11 digits are present.
func (f *Forms) CheckDocument(raw string) DocumentFeedback {
	masked := maskutil.MaskCPF(raw)
	fb := DocumentFeedback{Masked: masked}
	if digitutil.Count(masked) != cpf.Length {
		return fb
	}

	fb.Complete = true
	valid := cpf.Valid(masked)
	if !valid {
		fb.Reason = vxerrors.ReasonInvalidCPF
	}
	f.rec.FieldCheck(FieldDocument, valid)
	return fb
}

// PrepareLogin returns the bare CPF digits used to look up the patient.
// Only the digit count is checked, not the check digits.
func (f *Forms) PrepareLogin(ctx context.Context, in LoginInput) (string, error) {
	ctx = withRequestID(ctx)

	if missing := validator.Validate(in); missing != nil {
		return "", f.reject(ctx, formLogin, vxerrors.ValidationFields(missing), "fields", len(missing))
	}

	if !validator.Check(in.Document, "cpf_len") {
		return "", f.rejectField(ctx, formLogin, cpf.ErrInvalidLength, FieldDocument, vxerrors.ReasonInvalidLength, in.Document)
	}
	doc := digitutil.Extract(in.Document)

	f.rec.Submission(formLogin, metrics.OutcomeAccepted)
	return doc, nil
}

// FindByDocument returns the patient whose document has the same digits as doc.
func FindByDocument(patients []Patient, doc string) (Patient, error) {
	want := digitutil.Extract(doc)
	if want != "" {
		for _, p := range patients {
			if digitutil.Extract(p.Document) == want {
				return p, nil
			}
		}
	}
	return Patient{}, vxerrors.NotFound().
		WithReason("patient_not_found").
		WithDetail(FieldDocument, logutil.RedactCPF(want))
}

func (f *Forms) reject(ctx context.Context, form string, err error, kv ...any) error {
	f.rec.Submission(form, metrics.OutcomeRejected)
	f.log.WarnwCtx(ctx, form+" rejected", append(kv, "error", err.Error())...)
	return err
}

func (f *Forms) rejectField(ctx context.Context, form string, cause error, field, reason, value string) error {
	f.rec.Submission(form, metrics.OutcomeRejected)
	f.log.WarnwCtx(ctx, form+" rejected", "field", field, "reason", reason, field, value)
	return vxerrors.FieldInvariant(cause, field, reason)
}

// fieldRule is one ordered registration check run through a validator tag.
type fieldRule struct {
	field  string
	value  string
	tag    string
	reason string
	base   error // cpf rules take theirs from cpf.Normalize
}

func (r fieldRule) cause() error {
	if r.tag == "cpf" {
		_, err := cpf.Normalize(r.value)
		return err
	}
	return r.base
}

func (f *Forms) phoneTag() string {
	return "phone_br=" + strconv.Itoa(f.reg.MinPhoneDigits)
}

func withRequestID(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger.RequestID(ctx) != "" {
		return ctx
	}
	id, err := uuid.NewV7()
	if err != nil {
		return logger.ContextWithRequestID(ctx, uuid.NewString())
	}
	return logger.ContextWithRequestID(ctx, id.String())
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
