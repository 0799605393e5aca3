package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/prospect/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	var (
		pageURL     string
		outputPath  string
		noPDF       bool
		configPath  string
		llmBaseURL  string
		llmModel    string
		llmKey      string
		summaryMode string
		maxParallel int
		chunkSize   int
		maxLen      int
		minLen      int
		maxFraction float64
		minFraction float64
		userAgent   string
		timeout     time.Duration
		verbose     bool
	)

	flag.StringVar(&pageURL, "url", "", "Company website URL to research")
	flag.StringVar(&outputPath, "output", app.DefaultOutputPath, "Path to write the PDF report")
	flag.BoolVar(&noPDF, "no-pdf", false, "Skip PDF rendering; only log the summarized content")
	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Summarizer model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.StringVar(&summaryMode, "summary.mode", app.ModeChunked, "Summarization mode: chunked or prompt")
	flag.IntVar(&maxParallel, "summary.maxConcurrent", 0, "Max concurrent chunk summarization calls (0 = default)")
	flag.IntVar(&chunkSize, "chunk.size", app.DefaultChunkSize, "Chunk window size in characters")
	flag.IntVar(&maxLen, "chunk.maxLen", app.DefaultMaxSummaryLen, "Per-chunk summary max length cap")
	flag.IntVar(&minLen, "chunk.minLen", app.DefaultMinSummaryLen, "Per-chunk summary min length cap")
	flag.Float64Var(&maxFraction, "chunk.maxFraction", app.DefaultMaxLenFraction, "Max summary length as fraction of chunk words")
	flag.Float64Var(&minFraction, "chunk.minFraction", app.DefaultMinLenFraction, "Min summary length as fraction of chunk words")
	flag.StringVar(&userAgent, "fetch.ua", app.DefaultUserAgent, "User-Agent for the page fetch")
	flag.DurationVar(&timeout, "fetch.timeout", 0, "Per-request fetch timeout (0 = default 15s)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		URL:                 pageURL,
		OutputPath:          outputPath,
		NoPDF:               noPDF,
		LLMBaseURL:          llmBaseURL,
		LLMModel:            llmModel,
		LLMAPIKey:           llmKey,
		SummaryMode:         summaryMode,
		MaxConcurrentChunks: maxParallel,
		ChunkSize:           chunkSize,
		MaxSummaryLen:       maxLen,
		MinSummaryLen:       minLen,
		MaxLenFraction:      maxFraction,
		MinLenFraction:      minFraction,
		UserAgent:           userAgent,
		Timeout:             timeout,
		Verbose:             verbose,
	}

	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config file failed")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
