package metrics

import "github.com/prometheus/client_golang/prometheus"

// Classifier Prometheus metrics.
var (
	ClassifierRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagsmith",
			Name:      "classifier_requests_total",
			Help:      "Total number of image classification requests",
		},
		[]string{"provider", "status"},
	)

	ClassifierRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tagsmith",
			Name:      "classifier_request_duration_seconds",
			Help:      "Image classification request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	ClassifierErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagsmith",
			Name:      "classifier_errors_total",
			Help:      "Total classification failures degraded to empty label lists",
		},
		[]string{"provider", "error_type"},
	)

	ClassifierLabelsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagsmith",
			Name:      "classifier_labels_total",
			Help:      "Total candidate labels produced by classification",
		},
		[]string{"provider"},
	)

	LabelCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagsmith",
			Name:      "label_cache_total",
			Help:      "Label cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var classifierMetricsRegistered bool

// RegisterClassifierMetrics registers classifier metrics. Must be called
// once from main.
func RegisterClassifierMetrics() {
	if classifierMetricsRegistered {
		return
	}
	prometheus.MustRegister(ClassifierRequestsTotal)
	prometheus.MustRegister(ClassifierRequestDuration)
	prometheus.MustRegister(ClassifierErrorsTotal)
	prometheus.MustRegister(ClassifierLabelsTotal)
	prometheus.MustRegister(LabelCacheTotal)
	classifierMetricsRegistered = true
}
