package storyteller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess   = "success"
	statusMalformed = "malformed"
	statusError     = "error"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blackstories_story_generations_total",
			Help: "Total number of riddle generation attempts by outcome.",
		},
		[]string{"status"},
	)
	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "blackstories_story_generation_duration_seconds",
			Help:    "Duration of AI provider calls for riddle generation.",
			Buckets: prometheus.DefBuckets,
		},
	)
)
