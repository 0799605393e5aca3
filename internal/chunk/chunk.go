package chunk

import "strings"

// Options carries the chunking and summary-length policy. The fractions and
// caps bound summary length proportionally to source length while capping
// worst-case verbosity; they are behavioral constants, not tuning hints.
type Options struct {
	// Size is the chunk window in runes.
	Size int
	// MaxSummaryLen / MinSummaryLen cap the per-chunk budgets.
	MaxSummaryLen int
	MinSummaryLen int
	// MaxFraction / MinFraction scale budgets by chunk word count.
	MaxFraction float64
	MinFraction float64
}

// DefaultOptions returns the stock policy: 500-rune windows,
// max = min(120, words*0.6), min = min(30, words*0.3).
func DefaultOptions() Options {
	return Options{
		Size:          500,
		MaxSummaryLen: 120,
		MinSummaryLen: 30,
		MaxFraction:   0.6,
		MinFraction:   0.3,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Size <= 0 {
		o.Size = d.Size
	}
	if o.MaxSummaryLen <= 0 {
		o.MaxSummaryLen = d.MaxSummaryLen
	}
	if o.MinSummaryLen <= 0 {
		o.MinSummaryLen = d.MinSummaryLen
	}
	if o.MaxFraction <= 0 {
		o.MaxFraction = d.MaxFraction
	}
	if o.MinFraction <= 0 {
		o.MinFraction = d.MinFraction
	}
	return o
}

// Chunk is one contiguous window of body text plus its summary budgets.
type Chunk struct {
	Text      string
	WordCount int
	// MinLen/MaxLen are the length bounds handed to the summarizer.
	// Both are zero for a chunk with no words.
	MinLen int
	MaxLen int
}

// Plan splits text into fixed-size, non-overlapping rune windows in order
// (last window possibly shorter) and derives each window's budgets.
// Concatenating the chunk texts reconstructs the input exactly.
func Plan(text string, opts Options) []Chunk {
	opts = opts.withDefaults()
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	chunks := make([]Chunk, 0, (len(runes)+opts.Size-1)/opts.Size)
	for i := 0; i < len(runes); i += opts.Size {
		end := i + opts.Size
		if end > len(runes) {
			end = len(runes)
		}
		piece := string(runes[i:end])
		words := len(strings.Fields(piece))
		chunks = append(chunks, Chunk{
			Text:      piece,
			WordCount: words,
			MinLen:    budget(words, opts.MinFraction, opts.MinSummaryLen),
			MaxLen:    budget(words, opts.MaxFraction, opts.MaxSummaryLen),
		})
	}
	return chunks
}

// budget truncates words*fraction (no rounding) and clamps to the cap.
func budget(words int, fraction float64, limit int) int {
	v := int(float64(words) * fraction)
	if v > limit {
		return limit
	}
	return v
}
