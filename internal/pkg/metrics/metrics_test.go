package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveQuery(t *testing.T) {
	r := NewRecorder()

	r.ObserveQuery("club_daily", time.Now(), 12, nil)
	r.ObserveQuery("club_daily", time.Now(), 3, nil)
	r.ObserveQuery("club_daily", time.Now(), 0, errors.New("connection refused"))

	assert.Equal(t, float64(15), testutil.ToFloat64(r.queryRows.WithLabelValues("club_daily")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.queryErrors.WithLabelValues("club_daily")))
}

func TestRecorder_ObserveReport(t *testing.T) {
	r := NewRecorder()
	r.ObserveReport("club", true)
	r.ObserveReport("club", false)
	r.ObserveReport("club", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.reports.WithLabelValues("club", "true")))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.reports.WithLabelValues("club", "false")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveQuery("x", time.Now(), 1, nil)
		r.ObserveReport("x", false)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.ObserveQuery("item_sales", time.Now(), 4, nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sales_dashboard_query_rows_total{query="item_sales"} 4`)
}
