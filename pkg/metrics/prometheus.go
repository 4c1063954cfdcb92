package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	LocationCaptures     prometheus.Counter
	CaptureFailures      *prometheus.CounterVec
	PathAggregations     prometheus.Counter
	AggregationTime      prometheus.Histogram
	CasesCreated         prometheus.Counter
	NotificationsSent    *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		LocationCaptures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_captures_total",
			Help:      "The total number of location records appended to history",
		}),
		CaptureFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capture_failures_total",
			Help:      "The total number of failed location captures",
		}, []string{"reason"}),
		PathAggregations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_aggregations_total",
			Help:      "The total number of map snapshot rebuilds",
		}),
		AggregationTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Time taken to aggregate location history into paths",
			Buckets:   prometheus.DefBuckets,
		}),
		CasesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_created_total",
			Help:      "The total number of emergency cases created",
		}),
		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of notifications dispatched",
		}, []string{"kind"}),
		NotificationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "The total number of failed notification dispatches",
		}, []string{"kind"}),
	}
}
