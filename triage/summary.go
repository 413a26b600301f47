package triage

import (
	"encoding/json"
	"strings"

	"github.com/media-gs/pretriage/timeutil"
)

const (
	summaryApp      = "MEDIA_GS"
	noSymptoms      = "Não informado"
	summaryDateTime = "2006-01-02T15:04:05.000Z"
)

// Summary is the payload encoded in the result QR code.
type Summary struct {
	App      string  `json:"app"`
	ID       int64   `json:"id"`
	Patient  string  `json:"paciente"`
	Urgency  Urgency `json:"urgencia"`
	Symptoms string  `json:"sintomas"`
	Date     string  `json:"data"`
}

// NewSummary stamps the summary with clock's current time in UTC. A nil
// clock uses timeutil.DefaultClock.
func NewSummary(r Response, patientName string, clock timeutil.Clock) Summary {
	if clock == nil {
		clock = timeutil.DefaultClock()
	}
	symptoms := r.Symptoms
	if strings.TrimSpace(symptoms) == "" {
		symptoms = noSymptoms
	}
	return Summary{
		App:      summaryApp,
		ID:       r.ID,
		Patient:  patientName,
		Urgency:  r.Urgency,
		Symptoms: symptoms,
		Date:     clock.Now().UTC().Format(summaryDateTime),
	}
}

// JSON returns the encoded summary handed to the QR renderer.
func (s Summary) JSON() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
