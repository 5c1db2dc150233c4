package textutil

import (
	"iter"
	"slices"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// Span is one reconstructed entry and the half-open range of token indices
// it was built from.
type Span struct {
	Text  string
	Start int
	End   int
}

type tokenKind int

const (
	kindIgnored  tokenKind = iota
	kindBoundary           // whitespace, punctuation, or a complete unit
	kindMember             // single byte letter or accented fragment
)

func classifyToken(tok string) tokenKind {
	switch n := len(tok); {
	case n >= 3:
		return kindBoundary
	case n == 2:
		if IsSpecial(tok) {
			return kindMember
		}
		return kindBoundary
	case n == 1:
		if IsPunct(tok[0]) || IsSpace(rune(tok[0])) {
			return kindBoundary
		}
		return kindMember
	}
	return kindIgnored
}

// IsPunct is ispunct in the C locale, minus the apostrophe, which belongs to
// words such as don't.
func IsPunct(c byte) bool {
	if c == '\'' {
		return false
	}
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

// Merger joins runs of single-byte tokens and accented fragments into words.
// The zero value is ready to use.
type Merger struct {
	// Log receives a warning for every token that cannot be classified.
	// When nil the package default logger is used.
	Log *zap.SugaredLogger
	// OnIgnore, if set, is called for every token that cannot be classified.
	OnIgnore func(index int, token string)
}

var defaultLog atomic.Pointer[zap.SugaredLogger]

// SetLogger replaces the logger used by the package level functions and by
// Mergers without their own Log. A nil l discards the diagnostics.
func SetLogger(l *zap.SugaredLogger) {
	defaultLog.Store(l)
}

func (m *Merger) ignore(i int, tok string) {
	log := m.Log
	if log == nil {
		log = defaultLog.Load()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log.Warnw("ignore token", "index", i, "token", tok)
	if m.OnIgnore != nil {
		m.OnIgnore(i, tok)
	}
}

// Spans returns a sequence of reconstructed spans over tokens. Each call to
// the returned sequence starts over from the beginning of tokens.
//
// Single-byte letters (anything that is not whitespace or punctuation) and
// accented two-byte fragments are collected into a run. A run ends at any
// other token, and at the end of input, and is emitted as one word.
// Punctuation and complete multi-byte units are emitted on their own;
// whitespace is dropped.
func (m *Merger) Spans(tokens iter.Seq[string]) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		var run strings.Builder
		start, i := -1, 0
		flush := func(end int) bool {
			s := Span{Text: run.String(), Start: start, End: end}
			run.Reset()
			start = -1
			return yield(s)
		}
		for tok := range tokens {
			switch classifyToken(tok) {
			case kindBoundary:
				if start != -1 && !flush(i) {
					return
				}
				if !IsSpace(rune(tok[0])) && !yield(Span{Text: tok, Start: i, End: i + 1}) {
					return
				}
			case kindMember:
				if start == -1 {
					start = i
				}
				run.WriteString(tok)
			default:
				m.ignore(i, tok)
			}
			i++
		}
		if start != -1 {
			flush(i)
		}
	}
}

// Words is Spans without the token ranges.
func (m *Merger) Words(tokens iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for s := range m.Spans(tokens) {
			if !yield(s.Text) {
				return
			}
		}
	}
}

// MergeSpans reconstructs tokens eagerly.
func (m *Merger) MergeSpans(tokens []string) []Span {
	out := make([]Span, 0, len(tokens))
	for s := range m.Spans(slices.Values(tokens)) {
		out = append(out, s)
	}
	return out
}

// MergeWords reconstructs tokens eagerly and returns only the text.
func (m *Merger) MergeWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for w := range m.Words(slices.Values(tokens)) {
		out = append(out, w)
	}
	return out
}

// Spans is Merger.Spans with the default Merger.
func Spans(tokens iter.Seq[string]) iter.Seq[Span] { return new(Merger).Spans(tokens) }

// Words is Merger.Words with the default Merger.
func Words(tokens iter.Seq[string]) iter.Seq[string] { return new(Merger).Words(tokens) }

// MergeSpans is Merger.MergeSpans with the default Merger.
func MergeSpans(tokens []string) []Span { return new(Merger).MergeSpans(tokens) }

// MergeWords merges single-letter tokens and accented fragments into words,
// for example ["ö" "f" "f" "n" "e" "n"] into ["öffnen"], keeping punctuation
// and complete units as separate entries and dropping whitespace.
func MergeWords(tokens []string) []string { return new(Merger).MergeWords(tokens) }
