// Package validator wraps go-playground/validator with the form tags used by
// patient and triage payloads.
//
// Custom tags:
//
//	cpf       valid CPF check digits (punctuation allowed)
//	cpf_len   exactly 11 digits, no checksum
//	phone_br  at least N digits, N from the tag param (default 10)
//	date_dmy  exact DD-MM-YYYY shape
//	notblank  not empty after trimming
package validator

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/media-gs/pretriage/cpf"
	"github.com/media-gs/pretriage/digitutil"
	vxerrors "github.com/media-gs/pretriage/errors"
	"github.com/media-gs/pretriage/timeutil"
)

// DefaultMinPhoneDigits is the phone_br threshold when the tag has no param.
const DefaultMinPhoneDigits = 10

var v *validator.Validate

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	mustRegister("cpf", func(fl validator.FieldLevel) bool {
		return cpf.Valid(fl.Field().String())
	})
	mustRegister("cpf_len", func(fl validator.FieldLevel) bool {
		return digitutil.Count(fl.Field().String()) == cpf.Length
	})
	mustRegister("phone_br", validatePhone)
	mustRegister("date_dmy", func(fl validator.FieldLevel) bool {
		_, err := timeutil.ConvertDateToISO(fl.Field().String())
		return err == nil
	})
	mustRegister("notblank", validators.NotBlank)
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validator: register " + tag + ": " + err.Error())
	}
}

func Instance() *validator.Validate {
	return v
}

// Validate returns field -> reason for every failed rule, or nil.
func Validate(i any) map[string]string {
	if err := v.Struct(i); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			out := make(map[string]string, len(errs))
			for _, e := range errs {
				out[fieldPath(e)] = mapTagToCode(e.Tag())
			}
			return out
		}
		return map[string]string{"_error": "validation_failed"}
	}
	return nil
}

// Check runs tag against a single value, e.g. Check(phone, "phone_br=11").
func Check(value any, tag string) bool {
	return v.Var(value, tag) == nil
}

// ValidateErr is Validate returning an errors.ErrorResponse with violations.
func ValidateErr(i any) error {
	err := v.Struct(i)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		return vxerrors.FromPlayground(errs, tagMap)
	}
	return vxerrors.InvalidArgument().WithReason("validation_failed")
}

func validatePhone(fl validator.FieldLevel) bool {
	minDigits := DefaultMinPhoneDigits
	if p := strings.TrimSpace(fl.Param()); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return false
		}
		minDigits = n
	}
	return digitutil.Count(fl.Field().String()) >= minDigits
}

// fieldPath drops the root struct name: "Registration.documento" -> "documento".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 && i+1 < len(ns) {
		return ns[i+1:]
	}
	return e.Field()
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}
