// Package metrics exposes prometheus counters for reconstruction and parsing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Reconstruction metrics
	TokensTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transcript_tokens_total",
			Help: "Tokens fed to the word reconstructor",
		},
	)
	WordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transcript_words_total",
			Help: "Words and punctuation marks produced by the word reconstructor",
		},
	)
	IgnoredTokensTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transcript_ignored_tokens_total",
			Help: "Tokens the word reconstructor could not classify",
		},
	)
	SegmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transcript_segments_total",
			Help: "Token segments reconstructed",
		},
	)

	// Parse metrics
	ParseFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcript_parse_failures_total",
			Help: "Inputs that could not be parsed, by kind",
		},
		[]string{"kind"},
	)
)

// Parse failure kinds.
const (
	KindRecord = "record"
	KindReal   = "real"
	KindDecode = "decode"
)

// ObserveSegment records one reconstructed segment.
func ObserveSegment(tokens, words, ignored int) {
	SegmentsTotal.Inc()
	TokensTotal.Add(float64(tokens))
	WordsTotal.Add(float64(words))
	IgnoredTokensTotal.Add(float64(ignored))
}

// ObserveParseFailure records a failed parse of the given kind.
func ObserveParseFailure(kind string) {
	ParseFailuresTotal.WithLabelValues(kind).Inc()
}
