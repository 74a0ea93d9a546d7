package provider

import (
	"context"
	"log"

	"github.com/alpinesboltltd/boltz-rag/internal/config"
)

// NewEmbeddingProvider and NewGenerationProvider are resolved independently
// from EMBEDDING_BACKEND/GENERATION_BACKEND, matching the original's
// decoupled embedding_client/generation_client wiring: a deployment may use
// Cohere for embeddings and Anthropic for generation.

func NewEmbeddingProvider(cfg *config.Config) Provider {
	switch cfg.EmbeddingBackend {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return NewUnavailableProvider(config.ProviderOpenAI)
		}
		return NewOpenAILike(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL, cfg.GenerationModelID, cfg.EmbeddingModelID)
	case config.ProviderCohere:
		if cfg.CohereAPIKey == "" {
			return NewUnavailableProvider(config.ProviderCohere)
		}
		return NewCohereLike(cfg.CohereAPIKey, cfg.EmbeddingModelID)
	default:
		log.Printf("provider: unsupported embedding backend %q, falling back to unavailable", cfg.EmbeddingBackend)
		return NewUnavailableProvider(cfg.EmbeddingBackend)
	}
}

func NewGenerationProvider(cfg *config.Config) Provider {
	switch cfg.GenerationBackend {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return NewUnavailableProvider(config.ProviderOpenAI)
		}
		return NewOpenAILike(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL, cfg.GenerationModelID, cfg.EmbeddingModelID)
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return NewUnavailableProvider(config.ProviderAnthropic)
		}
		return NewAnthropicLike(cfg.AnthropicAPIKey, cfg.GenerationModelID)
	case config.ProviderGoogle:
		if cfg.GoogleAPIKey == "" {
			return NewUnavailableProvider(config.ProviderGoogle)
		}
		p, err := NewGoogleLike(context.Background(), cfg.GoogleAPIKey, cfg.GenerationModelID)
		if err != nil {
			log.Printf("provider: google client init failed: %v", err)
			return NewUnavailableProvider(config.ProviderGoogle)
		}
		return p
	default:
		log.Printf("provider: unsupported generation backend %q, falling back to unavailable", cfg.GenerationBackend)
		return NewUnavailableProvider(cfg.GenerationBackend)
	}
}
