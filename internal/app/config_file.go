package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to the flags.
type FileConfig struct {
	URL    string `yaml:"url" json:"url"`
	Output string `yaml:"output" json:"output"`
	NoPDF  bool   `yaml:"noPDF" json:"noPDF"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Summary struct {
		Mode          string `yaml:"mode" json:"mode"`
		MaxConcurrent int    `yaml:"maxConcurrent" json:"maxConcurrent"`
	} `yaml:"summary" json:"summary"`

	Chunk struct {
		Size        int     `yaml:"size" json:"size"`
		MaxLen      int     `yaml:"maxLen" json:"maxLen"`
		MinLen      int     `yaml:"minLen" json:"minLen"`
		MaxFraction float64 `yaml:"maxFraction" json:"maxFraction"`
		MinFraction float64 `yaml:"minFraction" json:"minFraction"`
	} `yaml:"chunk" json:"chunk"`

	Fetch struct {
		UserAgent string        `yaml:"ua" json:"ua"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"fetch" json:"fetch"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// still at their flag defaults, so an explicit flag always wins.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.URL == "" && fc.URL != "" {
		cfg.URL = fc.URL
	}
	if (cfg.OutputPath == "" || cfg.OutputPath == DefaultOutputPath) && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if !cfg.NoPDF && fc.NoPDF {
		cfg.NoPDF = true
	}

	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}

	if (cfg.SummaryMode == "" || cfg.SummaryMode == ModeChunked) && fc.Summary.Mode != "" {
		cfg.SummaryMode = fc.Summary.Mode
	}
	if cfg.MaxConcurrentChunks == 0 && fc.Summary.MaxConcurrent > 0 {
		cfg.MaxConcurrentChunks = fc.Summary.MaxConcurrent
	}

	if (cfg.ChunkSize == 0 || cfg.ChunkSize == DefaultChunkSize) && fc.Chunk.Size > 0 {
		cfg.ChunkSize = fc.Chunk.Size
	}
	if (cfg.MaxSummaryLen == 0 || cfg.MaxSummaryLen == DefaultMaxSummaryLen) && fc.Chunk.MaxLen > 0 {
		cfg.MaxSummaryLen = fc.Chunk.MaxLen
	}
	if (cfg.MinSummaryLen == 0 || cfg.MinSummaryLen == DefaultMinSummaryLen) && fc.Chunk.MinLen > 0 {
		cfg.MinSummaryLen = fc.Chunk.MinLen
	}
	if (cfg.MaxLenFraction == 0 || cfg.MaxLenFraction == DefaultMaxLenFraction) && fc.Chunk.MaxFraction > 0 {
		cfg.MaxLenFraction = fc.Chunk.MaxFraction
	}
	if (cfg.MinLenFraction == 0 || cfg.MinLenFraction == DefaultMinLenFraction) && fc.Chunk.MinFraction > 0 {
		cfg.MinLenFraction = fc.Chunk.MinFraction
	}

	if (cfg.UserAgent == "" || cfg.UserAgent == DefaultUserAgent) && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.Timeout == 0 && fc.Fetch.Timeout > 0 {
		cfg.Timeout = fc.Fetch.Timeout
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.URL) == "" {
		return errors.New("config: url is required")
	}
	if !cfg.NoPDF && strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	switch cfg.SummaryMode {
	case "", ModeChunked, ModePrompt:
	default:
		return fmt.Errorf("config: unknown summary mode %q", cfg.SummaryMode)
	}
	if cfg.ChunkSize < 0 || cfg.MaxSummaryLen < 0 || cfg.MinSummaryLen < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.MaxLenFraction < 0 || cfg.MinLenFraction < 0 {
		return errors.New("config: negative fractions are not allowed")
	}
	return nil
}
