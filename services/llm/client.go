// Package llm abstracts the generative backends used for judgment calls:
// risk narratives, alternative-license suggestions, and conflict
// explanations. Deterministic license reasoning never routes through here.
package llm

import (
	"context"
	"fmt"
	"os"
)

type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopK        *int     `json:"top_k"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// Client defines the standard interface for any LLM backend.
type Client interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// NewFromEnv selects a backend from OSLI_LLM_BACKEND ("ollama" or "openai").
// Defaults to ollama to keep the stack local-first.
func NewFromEnv() (Client, error) {
	backend := os.Getenv("OSLI_LLM_BACKEND")
	if backend == "" {
		backend = "ollama"
	}
	switch backend {
	case "ollama":
		return NewOllamaClient()
	case "openai":
		return NewOpenAIClient()
	default:
		return nil, fmt.Errorf("unknown LLM backend %q", backend)
	}
}
