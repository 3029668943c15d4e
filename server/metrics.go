package server

import (
	"erc20indexer/indexer"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	queries *prometheus.CounterVec
	busy    prometheus.Gauge
	tokens  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "erc20_indexer",
			Name:      "queries_total",
			Help:      "Balance queries by outcome.",
		}, []string{"outcome"}),
		busy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "erc20_indexer",
			Name:      "busy",
			Help:      "1 while a balance query is in flight.",
		}),
		tokens: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "erc20_indexer",
			Name:      "published_tokens",
			Help:      "Entries in the published result set.",
		}),
	}
	reg.MustRegister(m.queries, m.busy, m.tokens)
	return m
}

// Observe is an indexer.Observer.
func (m *Metrics) Observe(prev, next indexer.State) {
	if next.Busy {
		m.busy.Set(1)
	} else {
		m.busy.Set(0)
	}
	if !prev.Busy || next.Busy {
		return
	}

	m.tokens.Set(float64(len(next.Results)))
	if next.Phase == indexer.PhasePublished {
		m.queries.WithLabelValues("published").Inc()
		return
	}
	m.queries.WithLabelValues(outcome(next.Err)).Inc()
}

func outcome(err error) string {
	switch {
	case errors.Is(err, indexer.ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, indexer.ErrNoBalances):
		return "no_balances"
	default:
		return "upstream_error"
	}
}
