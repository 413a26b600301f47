package triage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/media-gs/pretriage/config"
	"github.com/media-gs/pretriage/triage"
)

func TestSearchParams_Normalize(t *testing.T) {
	cfg := config.Default().History

	p, err := triage.SearchParams{}.Normalize(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.Size)
	assert.Equal(t, config.SortDateDesc, p.Sort)
	assert.Equal(t, "page=1&size=50&sort=dataDesc", p.Values().Encode())

	p, err = triage.SearchParams{Page: 2, Size: 10, PatientID: 7, Status: " 1 ", Sort: config.SortDateAsc}.Normalize(cfg)
	require.NoError(t, err)
	assert.Equal(t, "pacienteId=7&page=2&size=10&sort=dataAsc&status=1", p.Values().Encode())

	p, err = triage.SearchParams{}.Normalize(config.HistoryConfig{})
	require.NoError(t, err)
	assert.Equal(t, 50, p.Size)
	assert.Equal(t, config.SortDateDesc, p.Sort)

	_, err = triage.SearchParams{Sort: "nome"}.Normalize(cfg)
	assert.Error(t, err)
}

func TestDecodeHistory(t *testing.T) {
	tests := []struct {
		name string
		body string
		ids  []int64
	}{
		{"array", `[{"id":1},{"id":2}]`, []int64{1, 2}},
		{"data", `{"data":[{"id":3}],"total":1}`, []int64{3}},
		{"items", `{"items":[{"id":4},{"id":5}]}`, []int64{4, 5}},
		{"data wins", `{"data":[{"id":6}],"items":[{"id":7}]}`, []int64{6}},
		{"data not array", `{"data":{"id":8},"items":[{"id":9}]}`, []int64{9}},
		{"other object", `{"content":[{"id":1}]}`, nil},
		{"string", `"oops"`, nil},
		{"null", `null`, nil},
		{"empty", ``, nil},
		{"empty array", `[]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := triage.DecodeHistory([]byte(tt.body))
			require.NoError(t, err)
			require.NotNil(t, got)
			ids := make([]int64, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			if tt.ids == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestDecodeHistory_Fields(t *testing.T) {
	body := `[{"id":1,"pacienteId":2,"unidadeSaudeId":3,"sintomasDescricao":"febre",
		"nivelUrgencia":4,"status":1,"dataCriacao":"2025-05-01T10:00:00",
		"qrCodeBase64":"aGk=","links":{"self":"/api/Triagens/1","cancelar":"/api/Triagens/1/cancelar"}}]`

	got, err := triage.DecodeHistory([]byte(body))
	require.NoError(t, err)
	require.Len(t, got, 1)
	r := got[0]
	assert.EqualValues(t, 3, r.HealthUnitID)
	assert.Equal(t, triage.BandHigh, r.Urgency.Band())
	assert.Equal(t, triage.StatusOpen, r.Status)
	assert.Equal(t, "/api/Triagens/1/cancelar", r.Links.Cancel)
}

func TestDecodeHistory_Malformed(t *testing.T) {
	_, err := triage.DecodeHistory([]byte(`[{"id":1}`))
	assert.Error(t, err)

	_, err = triage.DecodeHistory([]byte(`{"data":[{"id":"x"}]}`))
	assert.Error(t, err)
}

func TestSortHistory(t *testing.T) {
	items := func() []triage.Response {
		return []triage.Response{
			{ID: 1, CreatedAt: "2025-05-02T08:00:00"},
			{ID: 2, CreatedAt: "bad"},
			{ID: 3, CreatedAt: "2025-05-01T08:00:00Z"},
			{ID: 4, CreatedAt: "2025-05-03T08:00:00.123-03:00"},
			{ID: 5, CreatedAt: ""},
		}
	}
	ids := func(rs []triage.Response) []int64 {
		out := make([]int64, len(rs))
		for i, r := range rs {
			out[i] = r.ID
		}
		return out
	}

	desc := items()
	triage.SortHistory(desc, config.SortDateDesc)
	assert.Equal(t, []int64{4, 1, 3, 2, 5}, ids(desc))

	asc := items()
	triage.SortHistory(asc, config.SortDateAsc)
	assert.Equal(t, []int64{3, 1, 4, 2, 5}, ids(asc))
}
