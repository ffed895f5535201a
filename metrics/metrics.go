// Package metrics exposes Prometheus instruments for the simulated broker:
//
//	simbroker_orders_total{kind}       – orders accepted for execution
//	simbroker_fills_total              – executions produced
//	simbroker_rejections_total{reason} – orders rejected
//	simbroker_equity                   – account equity after the last step
//
// Serve them with promhttp from the embedding process.
package metrics

import "github.com/prometheus/client_golang/prometheus"

type Collector struct {
	orders     *prometheus.CounterVec
	fills      prometheus.Counter
	rejections *prometheus.CounterVec
	equity     prometheus.Gauge
}

// NewCollector builds and registers the instruments. A nil registerer uses
// the default Prometheus registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		orders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simbroker_orders_total",
				Help: "Orders accepted for execution",
			},
			[]string{"kind"},
		),
		fills: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "simbroker_fills_total",
				Help: "Executions produced",
			},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simbroker_rejections_total",
				Help: "Orders rejected",
			},
			[]string{"reason"},
		),
		equity: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "simbroker_equity",
				Help: "Account equity in the base currency",
			},
		),
	}

	reg.MustRegister(c.orders, c.fills, c.rejections, c.equity)
	return c
}

func (c *Collector) OrderPlaced(kind string) { c.orders.WithLabelValues(kind).Inc() }
func (c *Collector) Fill()                   { c.fills.Inc() }
func (c *Collector) Rejected(reason string)  { c.rejections.WithLabelValues(reason).Inc() }
func (c *Collector) SetEquity(v float64)     { c.equity.Set(v) }
