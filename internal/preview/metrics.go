package preview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	reg     *prometheus.Registry
	renders prometheus.Counter
	viewers prometheus.Gauge
	api     *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jsbin",
			Name:      "renders_total",
			Help:      "Documents pushed to the preview surface.",
		}),
		viewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jsbin",
			Name:      "preview_viewers",
			Help:      "Open preview pages.",
		}),
		api: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsbin",
			Name:      "console_requests_total",
			Help:      "Console API calls by operation and outcome.",
		}, []string{"op", "code"}),
	}
	m.reg.MustRegister(m.renders, m.viewers, m.api, collectors.NewGoCollector())
	return m
}
