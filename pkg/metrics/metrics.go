package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of calls to the remote commerce API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "query_cache_lookups_total",
		Help:      "Query cache lookups by result.",
	}, []string{"result"})

	CacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "query_cache_invalidations_total",
		Help:      "Invalidations by mutation name.",
	}, []string{"mutation"})

	WizardTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "wizard_transitions_total",
		Help:      "Step transitions by flow, direction and outcome.",
	}, []string{"flow", "direction", "outcome"})

	CheckoutSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "checkout_submissions_total",
		Help:      "Order submissions by result.",
	}, []string{"result"})

	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "image_uploads_total",
		Help:      "Product image uploads by final status.",
	}, []string{"status"})
)
