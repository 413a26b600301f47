package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/media-gs/pretriage/metrics"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg, "")
	require.NoError(t, err)

	rec.FieldCheck("documento", true)
	rec.FieldCheck("documento", false)
	rec.FieldCheck("documento", false)
	rec.Submission("registration", metrics.OutcomeAccepted)

	n, err := testutil.GatherAndCount(reg, "pretriage_field_checks_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var invalid float64
	for _, mf := range mfs {
		if mf.GetName() != "pretriage_field_checks_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "result" && lp.GetValue() == metrics.ResultInvalid {
					invalid = m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, float64(2), invalid)
}

func TestRecorder_ReusesRegisteredCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := metrics.NewRecorder(reg, "app")
	require.NoError(t, err)
	b, err := metrics.NewRecorder(reg, "app")
	require.NoError(t, err)

	a.Submission("login", metrics.OutcomeRejected)
	b.Submission("login", metrics.OutcomeRejected)

	n, err := testutil.GatherAndCount(reg, "app_form_submissions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var rec *metrics.Recorder
	rec.FieldCheck("documento", true)
	rec.Submission("registration", metrics.OutcomeAccepted)
}

func TestHandler_MetricsAndHealth(t *testing.T) {
	var rec *metrics.Recorder
	h, _, err := metrics.New(metrics.Options{Register: metrics.Register("pretriage", &rec)})
	require.NoError(t, err)
	require.NotNil(t, rec)
	rec.Submission("registration", metrics.OutcomeAccepted)

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "pretriage_form_submissions_total")

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_UnhealthyAndTimeout(t *testing.T) {
	h, _, err := metrics.New(metrics.Options{
		Health: func(context.Context, *http.Request) error { return errors.New("down") },
	})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	h, _, err = metrics.New(metrics.Options{
		HealthTimeout: 10 * time.Millisecond,
		Health: func(ctx context.Context, _ *http.Request) error {
			<-ctx.Done()
			time.Sleep(5 * time.Millisecond)
			return nil
		},
	})
	require.NoError(t, err)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "health timeout")
}
