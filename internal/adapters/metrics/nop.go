package metrics

import (
	"time"

	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// NopObserver discards all observations.
type NopObserver struct{}

// NewNopObserver creates an observer that records nothing.
func NewNopObserver() ports.Observer {
	return NopObserver{}
}

func (NopObserver) ObserveScore(string, string, float64, time.Duration) {}
func (NopObserver) ObserveFallback(string)                              {}
