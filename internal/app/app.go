package app

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/prospect/internal/chunk"
	"github.com/hyperifyio/prospect/internal/extract"
	"github.com/hyperifyio/prospect/internal/fetch"
	"github.com/hyperifyio/prospect/internal/llm"
	"github.com/hyperifyio/prospect/internal/render"
	"github.com/hyperifyio/prospect/internal/report"
	"github.com/hyperifyio/prospect/internal/summarize"
)

// Flag defaults shared with the config-file overlay.
const (
	DefaultOutputPath     = "Prospect_Report.pdf"
	DefaultUserAgent      = "prospect/1.0 (+https://github.com/hyperifyio/prospect)"
	DefaultChunkSize      = 500
	DefaultMaxSummaryLen  = 120
	DefaultMinSummaryLen  = 30
	DefaultMaxLenFraction = 0.6
	DefaultMinLenFraction = 0.3
)

// App wires the pipeline: fetch, parse, extract, summarize, assemble, render.
type App struct {
	cfg        Config
	fetcher    *fetch.Client
	summarizer *summarize.Service
}

// New builds the app and runs a best-effort backend preflight. An
// unreachable backend is not fatal: summarization degrades to its fixed
// placeholder and the report is still produced.
func New(ctx context.Context, cfg Config) (*App, error) {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	a := &App{
		cfg: cfg,
		fetcher: &fetch.Client{
			UserAgent:         ua,
			PerRequestTimeout: timeout,
		},
		summarizer: &summarize.Service{Model: cfg.LLMModel, MaxConcurrent: cfg.MaxConcurrentChunks},
	}

	if cfg.LLMModel == "" {
		log.Warn().Msg("no summarizer model configured; reports will carry a placeholder")
		return a, nil
	}

	transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		transportCfg.BaseURL = cfg.LLMBaseURL
	}
	provider := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}

	// Quick connectivity check by listing models. Failure degrades rather
	// than aborting so the report still goes out with the placeholder.
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := provider.ListModels(pctx)
	if err != nil {
		log.Warn().Err(err).Msg("summarizer backend unreachable; continuing without summarization")
		return a, nil
	}
	if len(models.Models) == 0 {
		log.Warn().Msg("summarizer backend returned zero models")
	} else {
		log.Info().Int("count", len(models.Models)).Msg("summarizer models available")
	}
	a.summarizer.Client = provider
	return a, nil
}

func (a *App) Close() {
	// nothing yet
}

// Run executes one report run end to end. A fetch or parse failure is
// terminal and produces no output document.
func (a *App) Run(ctx context.Context) error {
	log.Info().Str("url", a.cfg.URL).Msg("fetching page")
	body, err := a.fetcher.Get(ctx, a.cfg.URL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", a.cfg.URL, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}

	rec := a.BuildReport(ctx, doc)
	log.Info().Str("company", rec.CompanyName).Msg("assembled report")
	log.Info().Str("summary", rec.Summary).Msg("summarized content")

	if a.cfg.NoPDF {
		return nil
	}
	if err := render.WritePDF(rec, a.cfg.OutputPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	log.Info().Str("out", a.cfg.OutputPath).Msg("wrote report")
	return nil
}

// BuildReport extracts every field from the parsed page, produces the
// summary through the configured entry point, and assembles the record.
func (a *App) BuildReport(ctx context.Context, doc *goquery.Document) report.Record {
	page := extract.Page(doc)
	info := extract.Additional(doc)

	var summary string
	switch a.cfg.SummaryMode {
	case ModePrompt:
		summary = a.summarizer.SummarizePrompt(ctx, report.BuildPrompt(page, info))
	default:
		chunks := chunk.Plan(page.BodyText, a.chunkOptions())
		log.Debug().Int("chunks", len(chunks)).Msg("planned body chunks")
		summary = a.summarizer.SummarizeChunks(ctx, chunks)
	}
	return report.Assemble(page, info, summary)
}

func (a *App) chunkOptions() chunk.Options {
	return chunk.Options{
		Size:          a.cfg.ChunkSize,
		MaxSummaryLen: a.cfg.MaxSummaryLen,
		MinSummaryLen: a.cfg.MinSummaryLen,
		MaxFraction:   a.cfg.MaxLenFraction,
		MinFraction:   a.cfg.MinLenFraction,
	}
}
