package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	completionCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soup_completion_requests_total",
		Help: "Chat-completion round-trips by outcome.",
	}, []string{"outcome"})

	extractionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soup_extraction_failures_total",
		Help: "Completion payloads that failed shape extraction.",
	}, []string{"shape"})
)
