// Package metrics exposes the tracker's prometheus collectors.
package metrics

import (
	"net/http"

	"brawl-tracker/internal/battlelog"
	"brawl-tracker/internal/domain/battle"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type Metrics struct {
	registry *prometheus.Registry

	BattlesClassified *prometheus.CounterVec
	AssembleRejected  prometheus.Counter
	MatchesMerged     prometheus.Counter
	UpstreamRequests  *prometheus.CounterVec
	CacheLookups      *prometheus.CounterVec
	RateLimitLeft     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		BattlesClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brawl_tracker",
			Name:      "battles_classified_total",
			Help:      "Battles classified, by leaf kind and outcome.",
		}, []string{"kind", "outcome"}),
		AssembleRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "brawl_tracker",
			Name:      "battles_rejected_total",
			Help:      "Battle-log records that could not be assembled.",
		}),
		MatchesMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "brawl_tracker",
			Name:      "ranked_rounds_merged_total",
			Help:      "Earlier ranked rounds folded into their final round.",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brawl_tracker",
			Name:      "upstream_requests_total",
			Help:      "Calls to the game API, by endpoint and status.",
		}, []string{"endpoint", "status"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brawl_tracker",
			Name:      "cache_lookups_total",
			Help:      "Battle-log cache lookups, by result.",
		}, []string{"result"}),
		RateLimitLeft: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "brawl_tracker",
			Name:      "upstream_ratelimit_remaining",
			Help:      "Requests left in the game API rate-limit window.",
		}),
	}

	m.registry.MustRegister(
		m.BattlesClassified,
		m.AssembleRejected,
		m.MatchesMerged,
		m.UpstreamRequests,
		m.CacheLookups,
		m.RateLimitLeft,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObservePage counts the battles and rejections of one processed page.
func (m *Metrics) ObservePage(page battlelog.Page, policy battle.Policy) {
	for _, b := range page.Battles {
		m.BattlesClassified.WithLabelValues(b.Kind().String(), policy.Classify(b).String()).Inc()
		if mr, ok := b.(battle.MultiRound); ok {
			if n := len(mr.MatchRounds()); n > 1 {
				m.MatchesMerged.Add(float64(n - 1))
			}
		}
	}
	m.AssembleRejected.Add(float64(len(page.Rejected)))
}

func (m *Metrics) ObserveCache(hit bool) {
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveUpstream(endpoint, status string) {
	m.UpstreamRequests.WithLabelValues(endpoint, status).Inc()
}

func (m *Metrics) ObserveRateLimit(remaining int) {
	m.RateLimitLeft.Set(float64(remaining))
}

var Module = fx.Provide(New)
