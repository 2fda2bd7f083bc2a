package metrics

import (
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"

	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// PrometheusObserver exports scoring metrics to Prometheus.
type PrometheusObserver struct {
	duration  *promclient.HistogramVec
	scores    *promclient.HistogramVec
	fallbacks *promclient.CounterVec
}

// NewPrometheusObserver registers scoring duration, score distribution and
// fallback metrics. Collectors already registered under the same names are reused.
func NewPrometheusObserver(namespace string, reg promclient.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "text_similarity"
	}
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}

	duration, err := registerHistogram(reg, promclient.NewHistogramVec(promclient.HistogramOpts{
		Namespace: namespace,
		Name:      "score_duration_seconds",
		Help:      "Latency of similarity scoring calls.",
		Buckets:   promclient.DefBuckets,
	}, []string{"metric", "path"}))
	if err != nil {
		return nil, fmt.Errorf("register duration histogram: %w", err)
	}

	scores, err := registerHistogram(reg, promclient.NewHistogramVec(promclient.HistogramOpts{
		Namespace: namespace,
		Name:      "score_value",
		Help:      "Distribution of returned similarity scores.",
		Buckets:   promclient.LinearBuckets(0.1, 0.1, 10),
	}, []string{"metric", "path"}))
	if err != nil {
		return nil, fmt.Errorf("register score histogram: %w", err)
	}

	fallbacks := promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "vector_fallbacks_total",
		Help:      "Count of TF-IDF failures recovered with ngram jaccard.",
	}, []string{"reason"})
	if err := reg.Register(fallbacks); err != nil {
		are, ok := err.(promclient.AlreadyRegisteredError)
		if !ok {
			return nil, fmt.Errorf("register fallback counter: %w", err)
		}
		existing, ok := are.ExistingCollector.(*promclient.CounterVec)
		if !ok {
			return nil, fmt.Errorf("register fallback counter: %w", err)
		}
		fallbacks = existing
	}

	return &PrometheusObserver{
		duration:  duration,
		scores:    scores,
		fallbacks: fallbacks,
	}, nil
}

func registerHistogram(reg promclient.Registerer, h *promclient.HistogramVec) (*promclient.HistogramVec, error) {
	if err := reg.Register(h); err != nil {
		are, ok := err.(promclient.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*promclient.HistogramVec)
		if !ok {
			return nil, err
		}
		return existing, nil
	}
	return h, nil
}

// ObserveScore records latency and score for one call.
func (o *PrometheusObserver) ObserveScore(metric string, path string, score float64, elapsed time.Duration) {
	o.duration.WithLabelValues(metric, path).Observe(elapsed.Seconds())
	o.scores.WithLabelValues(metric, path).Observe(score)
}

// ObserveFallback counts a recovered vector-construction failure.
func (o *PrometheusObserver) ObserveFallback(reason string) {
	o.fallbacks.WithLabelValues(reason).Inc()
}

var _ ports.Observer = (*PrometheusObserver)(nil)
