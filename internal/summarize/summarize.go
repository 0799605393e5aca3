package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/prospect/internal/chunk"
	"github.com/hyperifyio/prospect/internal/llm"
)

// UnavailableText is emitted in place of a summary when the backend failed
// its startup preflight. The pipeline keeps running and the report carries
// this text verbatim.
const UnavailableText = "Summarizer model is not available."

// promptMaxWords caps prompt-style summaries.
const promptMaxWords = 200

// ErrUnavailable indicates no backend was configured or the preflight
// failed. Callers branch on it rather than on exceptions bubbling up.
var ErrUnavailable = errors.New("summarizer backend unavailable")

// Service is the summarization adapter. A nil Client means the backend is
// unavailable and every entry point degrades gracefully.
type Service struct {
	Client llm.Client
	Model  string
	// MaxConcurrent bounds the chunk fan-out. Zero means 4.
	MaxConcurrent int
}

// Available reports whether summarization calls can be attempted.
func (s *Service) Available() bool {
	return s != nil && s.Client != nil && strings.TrimSpace(s.Model) != ""
}

// Summarize condenses one text into between minLen and maxLen words.
// A zero maxLen budget skips the call and yields an empty summary.
func (s *Service) Summarize(ctx context.Context, text string, minLen, maxLen int) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	if maxLen <= 0 || strings.TrimSpace(text) == "" {
		return "", nil
	}
	bounds := fmt.Sprintf("at most %d words", maxLen)
	if minLen > 0 {
		bounds = fmt.Sprintf("between %d and %d words", minLen, maxLen)
	}
	req := openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You condense text. Reply with only the condensed text, no preamble and no commentary."},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Summarize the following text in %s.\n\n%s", bounds, text)},
		},
		Temperature: 0.1,
		N:           1,
	}
	resp, err := s.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("summarization call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("summarization call: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// SummarizeChunks condenses each planned chunk independently and
// concatenates the results in chunk order, one trailing space per chunk,
// trimmed at the end. When the backend is unavailable the fixed sentinel is
// returned once for the whole body. A failed chunk contributes nothing; the
// run never aborts on a per-chunk error.
func (s *Service) SummarizeChunks(ctx context.Context, chunks []chunk.Chunk) string {
	if !s.Available() {
		return UnavailableText
	}
	if len(chunks) == 0 {
		return ""
	}
	limit := s.MaxConcurrent
	if limit <= 0 {
		limit = 4
	}

	// Fan out, but reassemble in original chunk order.
	results := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			out, err := s.Summarize(gctx, c.Text, c.MinLen, c.MaxLen)
			if err != nil {
				log.Warn().Err(err).Int("chunk", i+1).Int("chunks", len(chunks)).Msg("chunk summarization failed; skipping")
				return nil
			}
			log.Debug().Int("chunk", i+1).Int("chunks", len(chunks)).Msg("summarized chunk")
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(r)
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String())
}

// SummarizePrompt condenses one assembled prompt as a single unit with a
// fixed word cap and no minimum. Any failure, including backend
// unavailability, falls back to the raw prompt text unmodified.
func (s *Service) SummarizePrompt(ctx context.Context, prompt string) string {
	out, err := s.Summarize(ctx, prompt, 0, promptMaxWords)
	if err != nil {
		log.Warn().Err(err).Msg("prompt summarization failed; using raw prompt")
		return prompt
	}
	return out
}
