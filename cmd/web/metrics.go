package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	assessmentsScored *prometheus.CounterVec
	reportsSaved      prometheus.Counter
	chatReplies       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		assessmentsScored: factory.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct // optional fields
			Namespace: "biosecure",
			Name:      "assessments_scored_total",
			Help:      "Completed risk assessments by source and tier.",
		}, []string{"source", "tier"}),
		reportsSaved: factory.NewCounter(prometheus.CounterOpts{ //nolint:exhaustruct // optional fields
			Namespace: "biosecure",
			Name:      "reports_saved_total",
			Help:      "Assessment reports saved to a session.",
		}),
		chatReplies: factory.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct // optional fields
			Namespace: "biosecure",
			Name:      "mira_replies_total",
			Help:      "Assistant replies by matched topic.",
		}, []string{"topic"}),
	}
}
