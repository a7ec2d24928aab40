package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhookRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_webhook_requests_total",
			Help: "Total webhook calls by route and business status",
		},
		[]string{"route", "status"},
	)

	BookingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fulfillment_bookings_created_total",
			Help: "Total booking records appended to the ledger",
		},
	)

	MatchScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fulfillment_match_score",
			Help:    "Similarity score of resolved event matches",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fulfillment_rate_limit_exceeded_total",
			Help: "Total requests rejected by the rate limiter",
		},
	)
)
