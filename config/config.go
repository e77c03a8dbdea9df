// Package config loads the JSON service configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	ServerAddr string            `json:"server_addr,omitempty"`
	LogMode    string            `json:"log_mode,omitempty"`
	StorePath  string            `json:"store_path,omitempty"`
	LLM        *LLMConfig        `json:"llm,omitempty"`
	Eraser     *EraserConfig     `json:"eraser,omitempty"`
	Generation *GenerationConfig `json:"generation,omitempty"`
}

type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
	// MaxAttempts caps retries on transport/provider failures. Schema
	// violations are never retried. Default 1 (no retry).
	MaxAttempts int `json:"max_attempts,omitempty"`
}

type EraserConfig struct {
	APIToken string `json:"api_token,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

type GenerationConfig struct {
	SkipDiagram           bool `json:"skip_diagram,omitempty"`
	TimeoutSeconds        int  `json:"timeout_seconds,omitempty"`
	DiagramTimeoutSeconds int  `json:"diagram_timeout_seconds,omitempty"`
}

// Load reads JSON config from disk and applies environment fallbacks for the
// provider credentials (OPENAI_API_KEY, ERASER_API_TOKEN).
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, err
		}
		// Absent config file is fine; env vars can carry the credentials.
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if cfg.LLM == nil {
			cfg.LLM = &LLMConfig{Provider: "openai"}
		}
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = key
		}
	}
	if token := os.Getenv("ERASER_API_TOKEN"); token != "" {
		if cfg.Eraser == nil {
			cfg.Eraser = &EraserConfig{}
		}
		if cfg.Eraser.APIToken == "" {
			cfg.Eraser.APIToken = token
		}
	}
	return cfg, nil
}

// EraserToken returns the configured diagram credential, empty when unset.
func (c Config) EraserToken() string {
	if c.Eraser == nil {
		return ""
	}
	return c.Eraser.APIToken
}

// EraserBaseURL returns the configured diagram endpoint override, empty when
// unset.
func (c Config) EraserBaseURL() string {
	if c.Eraser == nil {
		return ""
	}
	return c.Eraser.BaseURL
}
