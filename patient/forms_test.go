package patient_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/media-gs/pretriage/config"
	"github.com/media-gs/pretriage/cpf"
	vxerrors "github.com/media-gs/pretriage/errors"
	"github.com/media-gs/pretriage/logger"
	"github.com/media-gs/pretriage/metrics"
	"github.com/media-gs/pretriage/patient"
	"github.com/media-gs/pretriage/timeutil"
)

func validInput() patient.RegistrationInput {
	return patient.RegistrationInput{
		FullName:  "Maria da Silva",
		Document:  "420.905.118-77",
		BirthDate: "31-12-1990",
		Phone:     "(11) 98765-4321",
		Address:   "Rua A, 100",
	}
}

func newForms(t *testing.T) (*patient.Forms, *prometheus.Registry, *observer.ObservedLogs) {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg, "")
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	return patient.NewForms(config.Default(), logger.FromZap(zap.New(core)), rec), reg, logs
}

func counter(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestPrepareRegistration_Valid(t *testing.T) {
	f, reg, logs := newForms(t)

	p, err := f.PrepareRegistration(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "Maria da Silva", p.FullName)
	assert.Equal(t, "42090511877", p.Document)
	assert.Equal(t, "1990-12-31"+timeutil.MidnightSuffix, p.BirthDate)
	assert.Equal(t, "11987654321", p.Phone)
	assert.Equal(t, "Rua A, 100", p.Address)
	assert.Equal(t, -23.5505, p.Latitude)
	assert.Equal(t, -46.6333, p.Longitude)
	assert.NoError(t, p.Validate())

	assert.Equal(t, 1.0, counter(t, reg, "pretriage_form_submissions_total",
		map[string]string{"form": "registration", "outcome": metrics.OutcomeAccepted}))

	entries := logs.FilterMessage("registration prepared").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "*********77", ctx["documento"])
	assert.Equal(t, "*******4321", ctx["telefone"])
	assert.NotEmpty(t, ctx["request_id"])
}

func TestPrepareRegistration_KeepsRequestID(t *testing.T) {
	f, _, logs := newForms(t)
	ctx := logger.ContextWithRequestID(context.Background(), "req-1")

	_, err := f.PrepareRegistration(ctx, validInput())
	require.NoError(t, err)

	entries := logs.FilterMessage("registration prepared").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
}

func TestPrepareRegistration_Missing(t *testing.T) {
	f, reg, _ := newForms(t)
	in := validInput()
	in.FullName = "   "
	in.Phone = ""

	_, err := f.PrepareRegistration(context.Background(), in)
	require.Error(t, err)

	resp := vxerrors.ToErrorResponse(err)
	assert.Equal(t, "validation_failed", string(resp.Reason))
	require.Len(t, resp.Violations, 2)
	v, ok := resp.Violation(patient.FieldFullName)
	require.True(t, ok)
	assert.Equal(t, "required", v.Reason)
	_, ok = resp.Violation(patient.FieldPhone)
	assert.True(t, ok)

	assert.Equal(t, 1.0, counter(t, reg, "pretriage_form_submissions_total",
		map[string]string{"form": "registration", "outcome": metrics.OutcomeRejected}))
}

func TestPrepareRegistration_RuleOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*patient.RegistrationInput)
		field  string
		reason string
		is     error
	}{
		{
			name:   "short cpf",
			mutate: func(in *patient.RegistrationInput) { in.Document = "420.905.118" },
			field:  patient.FieldDocument,
			reason: vxerrors.ReasonInvalidLength,
			is:     cpf.ErrInvalidLength,
		},
		{
			name:   "bad check digits",
			mutate: func(in *patient.RegistrationInput) { in.Document = "420.905.118-78" },
			field:  patient.FieldDocument,
			reason: vxerrors.ReasonInvalidCPF,
			is:     cpf.ErrInvalidChecksum,
		},
		{
			name:   "repeated digits",
			mutate: func(in *patient.RegistrationInput) { in.Document = "111.111.111-11" },
			field:  patient.FieldDocument,
			reason: vxerrors.ReasonInvalidCPF,
			is:     cpf.ErrRepeatedDigits,
		},
		{
			name: "cpf checked before date",
			mutate: func(in *patient.RegistrationInput) {
				in.Document = "420.905.118-78"
				in.BirthDate = "1990-12-31"
			},
			field:  patient.FieldDocument,
			reason: vxerrors.ReasonInvalidCPF,
			is:     cpf.ErrInvalidChecksum,
		},
		{
			name:   "iso date",
			mutate: func(in *patient.RegistrationInput) { in.BirthDate = "1990-12-31" },
			field:  patient.FieldBirthDate,
			reason: vxerrors.ReasonInvalidDate,
			is:     timeutil.ErrInvalidDateFormat,
		},
		{
			name: "date checked before phone",
			mutate: func(in *patient.RegistrationInput) {
				in.BirthDate = "31/12/1990"
				in.Phone = "123"
			},
			field:  patient.FieldBirthDate,
			reason: vxerrors.ReasonInvalidDate,
			is:     timeutil.ErrInvalidDateFormat,
		},
		{
			name:   "short phone",
			mutate: func(in *patient.RegistrationInput) { in.Phone = "(11) 9876-543" },
			field:  patient.FieldPhone,
			reason: vxerrors.ReasonInvalidPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, _ := newForms(t)
			in := validInput()
			tt.mutate(&in)

			_, err := f.PrepareRegistration(context.Background(), in)
			require.Error(t, err)
			assert.True(t, vxerrors.IsInvariant(err))
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "want %v in %v", tt.is, err)
			}

			resp := vxerrors.ToErrorResponse(err)
			v, ok := resp.Violation(tt.field)
			require.True(t, ok, "violations: %+v", resp.Violations)
			assert.Equal(t, tt.reason, v.Reason)
		})
	}
}

func TestPrepareRegistration_TenDigitPhone(t *testing.T) {
	f, _, _ := newForms(t)
	in := validInput()
	in.Phone = "(11) 3456-7890"

	p, err := f.PrepareRegistration(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "1134567890", p.Phone)
}

func TestPrepareRegistration_RejectLogIsRedacted(t *testing.T) {
	f, _, logs := newForms(t)
	in := validInput()
	in.Document = "420.905.118-78"

	_, err := f.PrepareRegistration(context.Background(), in)
	require.Error(t, err)

	entries := logs.FilterMessage("registration rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "***.***.***-78", entries[0].ContextMap()["documento"])
}

func TestPrepareRegistration_RejectedBirthDateNotLogged(t *testing.T) {
	f, _, logs := newForms(t)
	in := validInput()
	in.BirthDate = "31/12/1990"

	_, err := f.PrepareRegistration(context.Background(), in)
	require.Error(t, err)

	entries := logs.FilterMessage("registration rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "[REDACTED]", entries[0].ContextMap()["dataNascimento"])
}

func TestPrepareRegistration_ConfiguredPhoneDigits(t *testing.T) {
	cfg := config.Default()
	cfg.Registration.MinPhoneDigits = 11
	f := patient.NewForms(cfg, nil, nil)

	in := validInput()
	in.Phone = "(11) 3456-7890"
	_, err := f.PrepareRegistration(context.Background(), in)
	require.Error(t, err)
	v, ok := vxerrors.ToErrorResponse(err).Violation(patient.FieldPhone)
	require.True(t, ok)
	assert.Equal(t, vxerrors.ReasonInvalidPhone, v.Reason)

	in.Phone = "(11) 93456-7890"
	_, err = f.PrepareRegistration(context.Background(), in)
	assert.NoError(t, err)
}

func TestCheckDocument(t *testing.T) {
	f, reg, _ := newForms(t)

	tests := []struct {
		raw      string
		masked   string
		complete bool
		reason   string
	}{
		{"", "", false, ""},
		{"4209", "420.9", false, ""},
		{"420905118", "420.905.118", false, ""},
		{"42090511877", "420.905.118-77", true, ""},
		{"42090511878", "420.905.118-78", true, vxerrors.ReasonInvalidCPF},
		{"420905118779", "420.905.118-77", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := f.CheckDocument(tt.raw)
			assert.Equal(t, tt.masked, got.Masked)
			assert.Equal(t, tt.complete, got.Complete)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}

	assert.Equal(t, 2.0, counter(t, reg, "pretriage_field_checks_total",
		map[string]string{"field": "documento", "result": metrics.ResultValid}))
	assert.Equal(t, 1.0, counter(t, reg, "pretriage_field_checks_total",
		map[string]string{"field": "documento", "result": metrics.ResultInvalid}))
}

func TestPrepareLogin(t *testing.T) {
	f, _, _ := newForms(t)

	doc, err := f.PrepareLogin(context.Background(), patient.LoginInput{Document: "420.905.118-77", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "42090511877", doc)

	// Login does not verify check digits.
	doc, err = f.PrepareLogin(context.Background(), patient.LoginInput{Document: "420.905.118-78", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "42090511878", doc)

	_, err = f.PrepareLogin(context.Background(), patient.LoginInput{Document: "420.905", Password: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cpf.ErrInvalidLength))

	_, err = f.PrepareLogin(context.Background(), patient.LoginInput{Document: "420.905.118-77"})
	require.Error(t, err)
	v, ok := vxerrors.ToErrorResponse(err).Violation(patient.FieldPassword)
	require.True(t, ok)
	assert.Equal(t, "required", v.Reason)
}

func TestFindByDocument(t *testing.T) {
	list := []patient.Patient{
		{ID: 1, Document: "111.444.777-35"},
		{ID: 2, Document: "42090511877"},
	}

	p, err := patient.FindByDocument(list, "420.905.118-77")
	require.NoError(t, err)
	assert.EqualValues(t, 2, p.ID)

	_, err = patient.FindByDocument(list, "52998224725")
	require.Error(t, err)
	resp := vxerrors.ToErrorResponse(err)
	assert.Equal(t, "patient_not_found", string(resp.Reason))
	assert.Equal(t, "*********25", resp.Details["documento"])

	_, err = patient.FindByDocument(list, "")
	assert.Error(t, err)
}

func TestNewForms_NilDependencies(t *testing.T) {
	f := patient.NewForms(config.Default(), nil, nil)

	_, err := f.PrepareRegistration(context.Background(), validInput())
	assert.NoError(t, err)
	assert.Equal(t, "420.905.118-77", f.CheckDocument("42090511877").Masked)
}
