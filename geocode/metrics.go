// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wneessen/geokit/geo"
)

const metricsNamespace = "geokit"

// Outcome label values of the request counter.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the Prometheus collectors for geocoding lookups. The service
// instruments providers below the cache, so cache hits are never counted.
type Metrics struct {
	Requests *prometheus.CounterVec   // labels: provider, outcome={success,failure}
	Duration *prometheus.HistogramVec // labels: provider
}

// NewMetrics creates the geocoding collectors and registers them with reg. A nil
// registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups by provider and outcome.",
		}, []string{"provider", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "geocode_duration_seconds",
			Help:      "Geocoding lookup duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, collector := range []prometheus.Collector{m.Requests, m.Duration} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Instrumented is a Geocoder decorator that records every lookup in Metrics.
type Instrumented struct {
	coder   Geocoder
	metrics *Metrics
}

// Instrument wraps coder so that each lookup is counted and timed.
func Instrument(coder Geocoder, metrics *Metrics) *Instrumented {
	return &Instrumented{coder: coder, metrics: metrics}
}

// Name implements Geocoder. The decorator is transparent and reports the wrapped name.
func (i *Instrumented) Name() string {
	return i.coder.Name()
}

// Geocode implements Geocoder.
func (i *Instrumented) Geocode(ctx context.Context, query string) geo.Location {
	start := time.Now()
	location := i.coder.Geocode(ctx, query)
	i.metrics.Duration.WithLabelValues(i.coder.Name()).Observe(time.Since(start).Seconds())

	outcome := OutcomeFailure
	if location.Success {
		outcome = OutcomeSuccess
	}
	i.metrics.Requests.WithLabelValues(i.coder.Name(), outcome).Inc()
	return location
}
