package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/prospect/internal/chunk"
)

// fakeClient adapts a function to llm.Client for tests.
type fakeClient struct {
	fn func(req openai.ChatCompletionRequest) (string, error)
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	out, err := f.fn(req)
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: out}},
		},
	}, nil
}

// echoClient returns the text portion of the summarize prompt unchanged.
func echoClient() *fakeClient {
	return &fakeClient{fn: func(req openai.ChatCompletionRequest) (string, error) {
		user := req.Messages[len(req.Messages)-1].Content
		if i := strings.Index(user, "\n\n"); i >= 0 {
			return user[i+2:], nil
		}
		return user, nil
	}}
}

func TestSummarize_UnavailableReturnsSentinelError(t *testing.T) {
	s := &Service{}
	_, err := s.Summarize(context.Background(), "text", 1, 10)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestSummarize_ZeroBudgetSkipsCall(t *testing.T) {
	called := false
	s := &Service{Model: "m", Client: &fakeClient{fn: func(openai.ChatCompletionRequest) (string, error) {
		called = true
		return "x", nil
	}}}
	out, err := s.Summarize(context.Background(), "   ", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "", out)
	require.False(t, called)
}

func TestSummarizeChunks_UnavailableReturnsSentinelOnce(t *testing.T) {
	s := &Service{}
	chunks := chunk.Plan("some body text to chunk", chunk.Options{Size: 5})
	require.Equal(t, UnavailableText, s.SummarizeChunks(context.Background(), chunks))
}

func TestSummarizeChunks_PreservesChunkOrder(t *testing.T) {
	s := &Service{Model: "m", Client: echoClient(), MaxConcurrent: 8}
	chunks := []chunk.Chunk{
		{Text: "alpha", WordCount: 1, MinLen: 1, MaxLen: 1},
		{Text: "bravo", WordCount: 1, MinLen: 1, MaxLen: 1},
		{Text: "charlie", WordCount: 1, MinLen: 1, MaxLen: 1},
		{Text: "delta", WordCount: 1, MinLen: 1, MaxLen: 1},
	}
	// Concurrent fan-out must still concatenate in original chunk order.
	got := s.SummarizeChunks(context.Background(), chunks)
	require.Equal(t, "alpha bravo charlie delta", got)
}

func TestSummarizeChunks_FailedChunkIsSkipped(t *testing.T) {
	s := &Service{Model: "m", Client: &fakeClient{fn: func(req openai.ChatCompletionRequest) (string, error) {
		user := req.Messages[len(req.Messages)-1].Content
		if strings.Contains(user, "bravo") {
			return "", errors.New("backend hiccup")
		}
		if i := strings.Index(user, "\n\n"); i >= 0 {
			return user[i+2:], nil
		}
		return user, nil
	}}}
	chunks := []chunk.Chunk{
		{Text: "alpha", WordCount: 1, MinLen: 1, MaxLen: 1},
		{Text: "bravo", WordCount: 1, MinLen: 1, MaxLen: 1},
		{Text: "charlie", WordCount: 1, MinLen: 1, MaxLen: 1},
	}
	got := s.SummarizeChunks(context.Background(), chunks)
	require.Equal(t, "alpha  charlie", got)
}

func TestSummarizeChunks_Empty(t *testing.T) {
	s := &Service{Model: "m", Client: echoClient()}
	require.Equal(t, "", s.SummarizeChunks(context.Background(), nil))
}

func TestSummarizePrompt_Echo(t *testing.T) {
	s := &Service{Model: "m", Client: echoClient()}
	require.Equal(t, "Company Overview: x", s.SummarizePrompt(context.Background(), "Company Overview: x"))
}

func TestSummarizePrompt_FallsBackToRawPromptOnError(t *testing.T) {
	s := &Service{Model: "m", Client: &fakeClient{fn: func(openai.ChatCompletionRequest) (string, error) {
		return "", errors.New("boom")
	}}}
	prompt := "Company Overview: widgets\nYear Founded: 2001"
	require.Equal(t, prompt, s.SummarizePrompt(context.Background(), prompt))
}

func TestSummarizePrompt_UnavailableFallsBackToRawPrompt(t *testing.T) {
	s := &Service{}
	prompt := "Company Overview: widgets"
	require.Equal(t, prompt, s.SummarizePrompt(context.Background(), prompt))
}
