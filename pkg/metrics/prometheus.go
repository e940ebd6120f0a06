package metrics

import (
	"net/http"

	"ChainHealth/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	registry *prometheus.Registry

	score        *prometheus.GaugeVec
	reorgCount   prometheus.Gauge
	reorgDeepest prometheus.Gauge
	marketRatio  *prometheus.GaugeVec
	cycles       *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	dateWarnings prometheus.Counter
	latency      *prometheus.HistogramVec
}

// NewRegistry returns a registry carrying the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates a new Prometheus metrics recorder on reg.
func New(reg *prometheus.Registry) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		score: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chainhealth_score",
				Help: "Latest health score by component",
			},
			[]string{"component"},
		),
		reorgCount: f.NewGauge(prometheus.GaugeOpts{
			Name: "chainhealth_reorg_count",
			Help: "Reorg events in the latest two-day window",
		}),
		reorgDeepest: f.NewGauge(prometheus.GaugeOpts{
			Name: "chainhealth_reorg_deepest",
			Help: "Deepest reorg in the latest two-day window",
		}),
		marketRatio: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chainhealth_market_ratio",
				Help: "Latest hashrate marketplace ratios",
			},
			[]string{"ratio"},
		),
		cycles: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainhealth_cycles_total",
				Help: "Scoring cycles by result",
			},
			[]string{"result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainhealth_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"kind"},
		),
		dateWarnings: f.NewCounter(prometheus.CounterOpts{
			Name: "chainhealth_date_warnings_total",
			Help: "Log lines skipped for an unparseable date tag",
		}),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chainhealth_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordSnapshot publishes the scores and inputs of a new snapshot.
func (r *Recorder) RecordSnapshot(s *models.HealthScore) {
	r.score.WithLabelValues("overall").Set(float64(s.OverallScore))
	r.score.WithLabelValues("market").Set(float64(s.MarketScore))
	r.score.WithLabelValues("reorg").Set(float64(s.ReorgScore))

	r.reorgCount.Set(float64(s.Data.Reorg.Summary.Count))
	r.reorgDeepest.Set(float64(s.Data.Reorg.Summary.Deepest))

	ratios := s.Data.Market.Ratios
	r.marketRatio.WithLabelValues("profitability").Set(ratios.Profitability)
	r.marketRatio.WithLabelValues("price").Set(ratios.Price)
	r.marketRatio.WithLabelValues("speed").Set(ratios.Speed)
	r.marketRatio.WithLabelValues("network").Set(ratios.Network)
}

// RecordCycle counts a finished cycle; result is "ok" or "error".
func (r *Recorder) RecordCycle(result string) {
	r.cycles.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordDateWarnings adds n skipped log lines.
func (r *Recorder) RecordDateWarnings(n int) {
	r.dateWarnings.Add(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
