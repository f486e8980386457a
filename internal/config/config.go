package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	GitHubToken   string
	GitHubBaseURL string

	LLMProvider string
	LLMBaseURL  string
	LLMAPIKey   string
	LLMModel    string

	Addr  string
	Debug bool
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		GitHubBaseURL: os.Getenv("GITHUB_BASE_URL"),

		LLMProvider: os.Getenv("LLM_PROVIDER"),
		LLMBaseURL:  os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:   os.Getenv("LLM_API_KEY"),
		LLMModel:    os.Getenv("LLM_MODEL"),

		Addr:  os.Getenv("ADDR"),
		Debug: os.Getenv("DEBUG") == "true",
	}

	if cfg.GitHubBaseURL == "" {
		cfg.GitHubBaseURL = "https://api.github.com"
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "openai"
	}

	// Provider-specific key and model defaults.
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.LLMAPIKey == "" {
			cfg.LLMAPIKey = os.Getenv("GEMINI_API_KEY")
		}
		if cfg.LLMModel == "" {
			cfg.LLMModel = "gemini-2.5-flash"
		}
	default:
		if cfg.LLMAPIKey == "" {
			cfg.LLMAPIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLMBaseURL == "" {
			cfg.LLMBaseURL = "https://api.openai.com/v1"
		}
		if cfg.LLMModel == "" {
			cfg.LLMModel = "gpt-4o-mini"
		}
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	return cfg
}
