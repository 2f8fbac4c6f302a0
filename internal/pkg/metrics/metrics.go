package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sales_dashboard"

// Recorder holds the collectors for report queries. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	queryDuration *prometheus.HistogramVec
	queryRows     *prometheus.CounterVec
	queryErrors   *prometheus.CounterVec
	reports       *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of report queries against the point-of-sale database.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"query"}),
		queryRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_rows_total",
			Help:      "Rows returned by report queries.",
		}, []string{"query"}),
		queryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_errors_total",
			Help:      "Report queries that failed.",
		}, []string{"query"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Reports generated, by report name and whether any rows were found.",
		}, []string{"report", "empty"}),
	}

	reg.MustRegister(
		r.queryDuration,
		r.queryRows,
		r.queryErrors,
		r.reports,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveQuery records one finished query started at start.
func (r *Recorder) ObserveQuery(query string, start time.Time, rows int, err error) {
	if r == nil {
		return
	}
	r.queryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	if err != nil {
		r.queryErrors.WithLabelValues(query).Inc()
		return
	}
	r.queryRows.WithLabelValues(query).Add(float64(rows))
}

func (r *Recorder) ObserveReport(report string, empty bool) {
	if r == nil {
		return
	}
	label := "false"
	if empty {
		label = "true"
	}
	r.reports.WithLabelValues(report, label).Inc()
}

// Handler exposes the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
