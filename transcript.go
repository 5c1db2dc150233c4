// Package transcript turns the token output of a streaming speech decoder
// into words with timing.
package transcript

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ieee0824/transcript-text/internal/metrics"
	"github.com/ieee0824/transcript-text/lexicon"
	"github.com/ieee0824/transcript-text/textutil"
)

// ErrNoSymbolTable is returned by ReconstructIDs when no table was configured.
var ErrNoSymbolTable = errors.New("no symbol table configured")

// Reconstructor turns decoder tokens into words with timing.
// It holds no per-call state and is safe for concurrent use.
type Reconstructor struct {
	Symbols    *lexicon.SymbolTable
	FrameShift float32 // seconds per decoder frame, used for the last word
	TimeOffset float32 // added to every timestamp
	Metrics    bool    // record prometheus counters
	log        *zap.SugaredLogger
}

// Option configures a Reconstructor.
type Option func(*Reconstructor)

// WithSymbolTable sets the table used by ReconstructIDs.
func WithSymbolTable(st *lexicon.SymbolTable) Option {
	return func(r *Reconstructor) {
		r.Symbols = st
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Reconstructor) {
		r.log = l
	}
}

// WithFrameShift sets the duration of one decoder frame in seconds.
func WithFrameShift(seconds float32) Option {
	return func(r *Reconstructor) {
		r.FrameShift = seconds
	}
}

// WithTimeOffset shifts all timestamps by seconds, e.g. the start of the
// segment within a longer stream.
func WithTimeOffset(seconds float32) Option {
	return func(r *Reconstructor) {
		r.TimeOffset = seconds
	}
}

// WithMetrics enables or disables prometheus counters.
func WithMetrics(enabled bool) Option {
	return func(r *Reconstructor) {
		r.Metrics = enabled
	}
}

// NewReconstructor creates a Reconstructor.
func NewReconstructor(opts ...Option) *Reconstructor {
	r := &Reconstructor{
		FrameShift: 0.04,
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = zap.NewNop().Sugar()
	}
	return r
}

// Reconstruct merges tokens into words. timestamps, if given, holds the start
// time of each token in seconds and must have one entry per token; otherwise
// it is dropped with a warning and words carry no timing.
func (r *Reconstructor) Reconstruct(tokens []string, timestamps []float32) *Result {
	if len(timestamps) != 0 && len(timestamps) != len(tokens) {
		r.log.Warnw("timestamp count does not match tokens, dropping timestamps",
			"tokens", len(tokens), "timestamps", len(timestamps))
		timestamps = nil
	}

	ignored := 0
	m := &textutil.Merger{
		Log:      r.log,
		OnIgnore: func(int, string) { ignored++ },
	}

	res := &Result{Tokens: tokens}
	if len(timestamps) > 0 {
		res.Timestamps = make([]float32, len(timestamps))
		for i, ts := range timestamps {
			res.Timestamps[i] = ts + r.TimeOffset
		}
	}

	var text strings.Builder
	for _, span := range m.MergeSpans(tokens) {
		w := Word{
			Text:       strings.TrimSpace(span.Text),
			TokenStart: span.Start,
			TokenEnd:   span.End,
		}
		if w.Text == "" {
			continue
		}
		if len(res.Timestamps) > 0 {
			w.Start = res.Timestamps[span.Start]
			if span.End < len(res.Timestamps) {
				w.End = res.Timestamps[span.End]
			} else {
				w.End = res.Timestamps[len(res.Timestamps)-1] + r.FrameShift
			}
		}
		if text.Len() > 0 && !isPunctuation(w.Text) {
			text.WriteByte(' ')
		}
		text.WriteString(w.Text)
		res.Words = append(res.Words, w)
	}
	res.Text = text.String()

	if r.Metrics {
		metrics.ObserveSegment(len(tokens), len(res.Words), ignored)
	}
	return res
}

// ReconstructIDs decodes ids with the symbol table and reconstructs them.
func (r *Reconstructor) ReconstructIDs(ids []int32, timestamps []float32) (*Result, error) {
	if r.Symbols == nil {
		return nil, ErrNoSymbolTable
	}
	tokens, err := r.Symbols.Decode(ids)
	if err != nil {
		if r.Metrics {
			metrics.ObserveParseFailure(metrics.KindDecode)
		}
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	return r.Reconstruct(tokens, timestamps), nil
}

// isPunctuation reports whether w is a single standalone punctuation mark.
func isPunctuation(w string) bool {
	return len(w) == 1 && textutil.IsPunct(w[0])
}
