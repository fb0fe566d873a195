package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns its own registry so tests and multiple instances never
// fight over the global one.
type Collector struct {
	reg *prometheus.Registry

	ingestAccepted prometheus.Counter
	ingestRejected prometheus.Counter

	etaRequests *prometheus.CounterVec // outcome label

	providerAttempts *prometheus.CounterVec // provider, result labels

	arrivalsPublished prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		ingestAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sbms_positions_ingested_total",
			Help: "Total position records accepted and stored.",
		}),
		ingestRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sbms_positions_rejected_total",
			Help: "Total position reports rejected by validation.",
		}),
		etaRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sbms_eta_requests_total",
			Help: "ETA resolutions by terminal outcome.",
		}, []string{"outcome"}),
		providerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sbms_eta_provider_attempts_total",
			Help: "Routing provider attempts by provider and result.",
		}, []string{"provider", "result"}),
		arrivalsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sbms_stop_arrivals_published_total",
			Help: "Stop-arrival events published to the broker.",
		}),
	}

	reg.MustRegister(
		c.ingestAccepted, c.ingestRejected,
		c.etaRequests, c.providerAttempts,
		c.arrivalsPublished,
	)

	return c
}

func (c *Collector) IngestAccepted() { c.ingestAccepted.Inc() }
func (c *Collector) IngestRejected() { c.ingestRejected.Inc() }

func (c *Collector) EtaResolved(outcome string) {
	c.etaRequests.WithLabelValues(outcome).Inc()
}

func (c *Collector) ProviderAttempt(provider, result string) {
	c.providerAttempts.WithLabelValues(provider, result).Inc()
}

func (c *Collector) ArrivalPublished() { c.arrivalsPublished.Inc() }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
