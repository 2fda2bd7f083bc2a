package ports

import "time"

// Observer receives one event per scoring call.
type Observer interface {
	// ObserveScore records which path produced a score and how long it took.
	ObserveScore(metric string, path string, score float64, elapsed time.Duration)
	// ObserveFallback records a recovered vector-construction failure.
	ObserveFallback(reason string)
}
