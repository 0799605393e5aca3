package app

import "time"

// Summary modes select which summarization entry point the pipeline uses.
const (
	ModeChunked = "chunked"
	ModePrompt  = "prompt"
)

// Config holds runtime configuration for one report run.
type Config struct {
	URL        string
	OutputPath string
	// NoPDF skips rendering; the summary is still produced and logged.
	NoPDF bool

	// LLM backend (OpenAI-compatible)
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Summarization policy
	SummaryMode         string
	ChunkSize           int
	MaxSummaryLen       int
	MinSummaryLen       int
	MaxLenFraction      float64
	MinLenFraction      float64
	MaxConcurrentChunks int

	// Fetch
	UserAgent string
	Timeout   time.Duration

	Verbose bool
}
