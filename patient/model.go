// Package patient prepares patient registration, login and profile payloads
// from masked form input.
package patient

import (
	"github.com/media-gs/pretriage/validator"
)

// Field names as sent to the patient API. Violations use the same names.
const (
	FieldFullName  = "nomeCompleto"
	FieldDocument  = "documento"
	FieldBirthDate = "dataNascimento"
	FieldPhone     = "telefone"
	FieldAddress   = "endereco"
	FieldPassword  = "senha"
)

// Patient is the patient record exchanged with the API.
type Patient struct {
	ID        int64   `json:"id,omitempty"`
	FullName  string  `json:"nomeCompleto" validate:"notblank"`
	Document  string  `json:"documento" validate:"cpf"`
	BirthDate string  `json:"dataNascimento" validate:"required"`
	Phone     string  `json:"telefone" validate:"required,numeric"`
	Address   string  `json:"endereco" validate:"notblank"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// Validate checks a prepared or received record.
func (p Patient) Validate() error {
	return validator.ValidateErr(p)
}

// RegistrationInput is the sign-up form as typed, masks included.
type RegistrationInput struct {
	FullName  string `json:"nomeCompleto" validate:"notblank"`
	Document  string `json:"documento" validate:"notblank"`
	BirthDate string `json:"dataNascimento" validate:"notblank"`
	Phone     string `json:"telefone" validate:"notblank"`
	Address   string `json:"endereco" validate:"notblank"`
}

// LoginInput is the login form. The password is checked for presence only.
type LoginInput struct {
	Document string `json:"documento" validate:"notblank"`
	Password string `json:"senha" validate:"notblank"`
}

// ProfileInput holds the editable profile fields.
type ProfileInput struct {
	FullName string `json:"nomeCompleto" validate:"notblank"`
	Phone    string `json:"telefone" validate:"notblank"`
	Address  string `json:"endereco" validate:"notblank"`
}

// DocumentFeedback is the per-keystroke state of the CPF field.
type DocumentFeedback struct {
	Masked   string
	Complete bool
	// Reason is set only for a complete CPF with wrong check digits.
	Reason string
}

// ProfileView is a patient record formatted for display.
type ProfileView struct {
	FullName  string
	Document  string
	BirthDate string
	Phone     string
	Address   string
}
