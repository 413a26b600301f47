// Package triage builds symptom analysis requests and reads triage results
// and history returned by the API.
package triage

import (
	"errors"
	"fmt"
	"strings"

	vxerrors "github.com/media-gs/pretriage/errors"
	"github.com/media-gs/pretriage/validator"
)

// ErrNotOpen is returned when cancelling a triage that is no longer open.
var ErrNotOpen = errors.New("triage is not open")

// Request is the body of a symptom analysis call. Symptoms are sent as typed.
type Request struct {
	PatientID int64  `json:"pacienteId" validate:"gt=0"`
	Symptoms  string `json:"sintomasDescricao" validate:"notblank"`
}

// NewRequest checks that a patient is set and symptoms are not blank.
func NewRequest(patientID int64, symptoms string) (Request, error) {
	r := Request{PatientID: patientID, Symptoms: symptoms}
	if bad := validator.Validate(r); bad != nil {
		return Request{}, vxerrors.ValidationFields(bad)
	}
	return r, nil
}

// Urgency is the level assigned by the analysis, higher is more urgent.
type Urgency int

// Band groups urgency levels for display.
type Band string

const (
	BandLow      Band = "baixa"
	BandModerate Band = "moderada"
	BandHigh     Band = "alta"
)

// Band maps 4 and above to high, 3 to moderate and the rest to low.
func (u Urgency) Band() Band {
	switch {
	case u >= 4:
		return BandHigh
	case u == 3:
		return BandModerate
	default:
		return BandLow
	}
}

// Status of a triage. Values other than open and cancelled are finished.
type Status int

const (
	StatusCancelled Status = 0
	StatusOpen      Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "ABERTA"
	case StatusCancelled:
		return "CANCELADA"
	default:
		return "FINALIZADA"
	}
}

// Cancellable reports whether a cancel request makes sense.
func (s Status) Cancellable() bool { return s == StatusOpen }

// Links are the hypermedia links of a triage.
type Links struct {
	Self   string `json:"self"`
	Cancel string `json:"cancelar"`
}

// Response is a triage as returned by analysis and history search.
type Response struct {
	ID           int64   `json:"id"`
	PatientID    int64   `json:"pacienteId"`
	HealthUnitID int64   `json:"unidadeSaudeId"`
	Symptoms     string  `json:"sintomasDescricao"`
	Urgency      Urgency `json:"nivelUrgencia"`
	Status       Status  `json:"status"`
	CreatedAt    string  `json:"dataCriacao"`
	QRCodeBase64 string  `json:"qrCodeBase64"`
	Links        Links   `json:"links"`
}

// CancelPath returns the path to PATCH to cancel r. It fails with a state
// invariant when r is not open.
func (r Response) CancelPath() (string, error) {
	if !r.Status.Cancellable() {
		return "", vxerrors.StateInvariant(ErrNotOpen, "status", strings.ToLower(r.Status.String()))
	}
	if r.Links.Cancel != "" {
		return r.Links.Cancel, nil
	}
	return fmt.Sprintf("/api/Triagens/%d/cancelar", r.ID), nil
}
