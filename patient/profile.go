package patient

import (
	"context"
	"strings"

	"github.com/media-gs/pretriage/digitutil"
	vxerrors "github.com/media-gs/pretriage/errors"
	"github.com/media-gs/pretriage/maskutil"
	"github.com/media-gs/pretriage/metrics"
	"github.com/media-gs/pretriage/timeutil"
	"github.com/media-gs/pretriage/validator"
)

// PrepareProfileUpdate applies the edited fields to current and returns the
// full record to send. Name and address are trimmed, the phone is sent as
// digits, and missing coordinates fall back to the configured defaults.
// Document and birth date are never edited here.
func (f *Forms) PrepareProfileUpdate(ctx context.Context, current Patient, in ProfileInput) (Patient, error) {
	ctx = withRequestID(ctx)

	if missing := validator.Validate(in); missing != nil {
		return Patient{}, f.reject(ctx, formProfile, vxerrors.ValidationFields(missing), "fields", len(missing))
	}

	if !validator.Check(in.Phone, "phone_br=1") {
		return Patient{}, f.rejectField(ctx, formProfile, nil, FieldPhone, vxerrors.ReasonInvalidPhone, in.Phone)
	}
	phone := digitutil.Extract(in.Phone)

	out := current
	out.FullName = strings.TrimSpace(in.FullName)
	out.Phone = phone
	out.Address = strings.TrimSpace(in.Address)
	if out.Latitude == 0 {
		out.Latitude = f.reg.DefaultLatitude
	}
	if out.Longitude == 0 {
		out.Longitude = f.reg.DefaultLongitude
	}

	f.rec.Submission(formProfile, metrics.OutcomeAccepted)
	f.log.InfowCtx(ctx, "profile update prepared", "patient_id", out.ID)
	return out, nil
}

// ProfileInputFrom pre-fills the edit form, masking the stored phone.
func ProfileInputFrom(p Patient) ProfileInput {
	return ProfileInput{
		FullName: p.FullName,
		Phone:    maskPhoneOrEmpty(p.Phone),
		Address:  p.Address,
	}
}

// View formats a stored record for display. A birth date that is not an
// ISO token is shown as stored.
func View(p Patient) ProfileView {
	birth, err := timeutil.ISOToMasked(p.BirthDate)
	if err != nil {
		birth = p.BirthDate
	}
	return ProfileView{
		FullName:  p.FullName,
		Document:  maskutil.MaskCPF(p.Document),
		BirthDate: birth,
		Phone:     maskPhoneOrEmpty(p.Phone),
		Address:   p.Address,
	}
}

func maskPhoneOrEmpty(s string) string {
	if isBlank(s) {
		return ""
	}
	return maskutil.MaskPhone(s)
}
