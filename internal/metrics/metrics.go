package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFault   = "fault"
)

var (
	calculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "impeller",
		Name:      "calculations_total",
		Help:      "Calculator invocations by tool and outcome.",
	}, []string{"tool", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "impeller",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

func ObserveCalculation(tool, outcome string) {
	calculations.WithLabelValues(tool, outcome).Inc()
}

func ObserveRequest(route, method, status string, seconds float64) {
	requestDuration.WithLabelValues(route, method, status).Observe(seconds)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
