// Package healthunit lists health units by city zone.
package healthunit

import (
	"slices"
	"strings"

	vxerrors "github.com/media-gs/pretriage/errors"
	"github.com/media-gs/pretriage/maskutil"
)

// Zone is a city zone. ZoneAll disables zone filtering.
type Zone string

const (
	ZoneAll    Zone = "Todas"
	ZoneCentro Zone = "Centro"
	ZoneNorte  Zone = "Norte"
	ZoneSul    Zone = "Sul"
	ZoneLeste  Zone = "Leste"
	ZoneOeste  Zone = "Oeste"
)

// Zones lists the filter choices in display order.
var Zones = []Zone{ZoneAll, ZoneCentro, ZoneNorte, ZoneSul, ZoneLeste, ZoneOeste}

// ParseZone matches s against Zones ignoring case and surrounding space.
// Unknown zones fail with an invalid_choice violation on "zona".
func ParseZone(s string) (Zone, error) {
	s = strings.TrimSpace(s)
	for _, z := range Zones {
		if strings.EqualFold(s, string(z)) {
			return z, nil
		}
	}
	return "", vxerrors.ToValidation("zona", "invalid_choice")
}

// Unit is a health unit as listed by the API.
type Unit struct {
	ID      int64  `json:"id"`
	Name    string `json:"nome"`
	Address string `json:"endereco"`
	City    string `json:"cidade"`
	Zone    string `json:"zona"`
	Phone   string `json:"telefone,omitempty"`
	// Occupancy carries the zone on older API versions.
	Occupancy string `json:"ocupacao,omitempty"`
}

// ZoneOf returns the unit zone, or "" when it is missing or unknown.
func ZoneOf(u Unit) Zone {
	raw := u.Zone
	if strings.TrimSpace(raw) == "" {
		raw = u.Occupancy
	}
	z, err := ParseZone(raw)
	if err != nil || z == ZoneAll {
		return ""
	}
	return z
}

// Filter returns the units in zone, keeping their order. ZoneAll returns a
// copy of units; a zone not listed in Zones matches nothing.
func Filter(units []Unit, zone Zone) []Unit {
	out := make([]Unit, 0, len(units))
	if !slices.Contains(Zones, zone) {
		return out
	}
	for _, u := range units {
		if zone == ZoneAll || ZoneOf(u) == zone {
			out = append(out, u)
		}
	}
	return out
}

// DisplayPhone masks the unit phone, or returns "" when it has none.
func DisplayPhone(u Unit) string {
	if strings.TrimSpace(u.Phone) == "" {
		return ""
	}
	return maskutil.MaskPhone(u.Phone)
}
