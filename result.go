package transcript

// Result holds the reconstruction output for one segment.
type Result struct {
	Text       string    `json:"text"`                 // words joined for display
	Tokens     []string  `json:"tokens"`               // decoded tokens, as given
	Timestamps []float32 `json:"timestamps,omitempty"` // per token, seconds
	Words      []Word    `json:"words"`                // reconstructed words
}

// Word holds one reconstructed word or punctuation mark.
type Word struct {
	Text       string  `json:"text"`
	Start      float32 `json:"start"` // seconds, 0 without timestamps
	End        float32 `json:"end"`
	TokenStart int     `json:"token_start"` // first token index
	TokenEnd   int     `json:"token_end"`   // one past the last token index
}

// WordTexts returns the text of every word.
func (r *Result) WordTexts() []string {
	out := make([]string, len(r.Words))
	for i, w := range r.Words {
		out[i] = w.Text
	}
	return out
}
