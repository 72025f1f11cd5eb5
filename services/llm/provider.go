// Package llmsvc provides the LLM completion providers behind core.LLMProvider.
// Both talk to their REST API over net/http.
package llmsvc

import (
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core"
)

const (
	googleDefaultModel   = "gemini-2.5-flash"
	googleDefaultURL     = "https://generativelanguage.googleapis.com/v1beta"
	openrouterDefaultMod = "openai/gpt-4o-mini"
	openrouterDefaultURL = "https://openrouter.ai/api/v1"
)

// NewProvider creates an LLM provider from the given config.
// Empty API keys are read from the provider's usual environment variables.
func NewProvider(conf core.LLMConfig) (core.LLMProvider, error) {
	client := &http.Client{Timeout: conf.Timeout}

	switch strings.ToLower(core.CleanString(conf.Provider)) {
	case "google", "":
		key := firstEnv(conf.APIKey, "GEMINI_API_KEY", "GOOGLE_API_KEY")
		if key == "" {
			return nil, errors.New("google provider requires an API key (GEMINI_API_KEY or GOOGLE_API_KEY)")
		}
		return &googleProvider{
			apiKey:  key,
			model:   core.FirstNonEmpty(conf.Model, googleDefaultModel),
			baseURL: strings.TrimSuffix(core.FirstNonEmpty(conf.BaseURL, googleDefaultURL), "/"),
			client:  client,
		}, nil

	case "openrouter":
		key := firstEnv(conf.APIKey, "OPENROUTER_API_KEY")
		if key == "" {
			return nil, errors.New("openrouter provider requires an API key (OPENROUTER_API_KEY)")
		}
		return &openrouterProvider{
			apiKey:  key,
			model:   core.FirstNonEmpty(conf.Model, openrouterDefaultMod),
			baseURL: strings.TrimSuffix(core.FirstNonEmpty(conf.BaseURL, openrouterDefaultURL), "/"),
			client:  client,
		}, nil

	default:
		return nil, errors.Errorf("unknown LLM provider: %q (supported: google, openrouter)", conf.Provider)
	}
}

func firstEnv(value string, envs ...string) string {
	if value = core.CleanString(value); value != "" {
		return value
	}
	for _, env := range envs {
		if v := core.CleanString(os.Getenv(env)); v != "" {
			return v
		}
	}
	return ""
}
