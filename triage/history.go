package triage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/media-gs/pretriage/config"
	vxerrors "github.com/media-gs/pretriage/errors"
	"github.com/media-gs/pretriage/timeutil"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
)

// SearchParams are the history search query parameters. Zero values are
// filled by Normalize.
type SearchParams struct {
	Page      int
	Size      int
	PatientID int64
	Status    string
	Sort      string
}

// Normalize fills defaults from cfg and rejects unknown sort orders.
func (p SearchParams) Normalize(cfg config.HistoryConfig) (SearchParams, error) {
	if p.Page <= 0 {
		p.Page = defaultPage
	}
	if p.Size <= 0 {
		p.Size = cfg.PageSize
		if p.Size <= 0 {
			p.Size = defaultPageSize
		}
	}
	if p.Sort == "" {
		p.Sort = cfg.Sort
		if p.Sort == "" {
			p.Sort = config.SortDateDesc
		}
	}
	switch p.Sort {
	case config.SortDateAsc, config.SortDateDesc:
	default:
		return SearchParams{}, vxerrors.ToValidation("sort", "invalid_choice")
	}
	p.Status = strings.TrimSpace(p.Status)
	return p, nil
}

// Values encodes p as a query. pacienteId and status are omitted when unset.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("size", strconv.Itoa(p.Size))
	v.Set("sort", p.Sort)
	if p.PatientID > 0 {
		v.Set("pacienteId", strconv.FormatInt(p.PatientID, 10))
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	return v
}

// DecodeHistory reads a search response. The body may be a bare array or an
// object wrapping the array in "data" or "items". Any other well-formed shape
// yields an empty slice.
func DecodeHistory(body []byte) ([]Response, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []Response{}, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("triage: decode history: malformed json")
	}

	switch body[0] {
	case '[':
		return decodeList(body)
	case '{':
		var env struct {
			Data  json.RawMessage `json:"data"`
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("triage: decode history: %w", err)
		}
		if isArray(env.Data) {
			return decodeList(env.Data)
		}
		if isArray(env.Items) {
			return decodeList(env.Items)
		}
	}
	return []Response{}, nil
}

func decodeList(raw []byte) ([]Response, error) {
	out := []Response{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("triage: decode history: %w", err)
	}
	return out, nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// SortHistory orders items in place by creation time. Items whose timestamp
// does not parse keep their relative order after all others.
func SortHistory(items []Response, sort string) {
	type keyed struct {
		r  Response
		t  time.Time
		ok bool
	}

	ks := make([]keyed, len(items))
	for i, r := range items {
		t, err := timeutil.ParseTimestamp(r.CreatedAt)
		ks[i] = keyed{r: r, t: t, ok: err == nil}
	}

	asc := sort == config.SortDateAsc
	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return 1
		case !b.ok:
			return -1
		}
		c := a.t.Compare(b.t)
		if !asc {
			c = -c
		}
		return c
	})

	for i := range ks {
		items[i] = ks[i].r
	}
}
