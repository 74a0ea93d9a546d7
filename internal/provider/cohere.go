package provider

import (
	"context"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	cohere "github.com/cohere-ai/cohere-go/v2"
	client "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereLike serves EMBEDDING_BACKEND=cohere via embed-multilingual-v3.0.
// Cohere has no chat completions endpoint wired here, so Generate always
// surfaces NLP_SERVICE_UNAVAILABLE; a deployment pairs it with another
// backend for GENERATION_BACKEND.
type CohereLike struct {
	client         *client.Client
	embeddingModel string
}

func NewCohereLike(apiKey, embeddingModel string) *CohereLike {
	c := client.NewClient(client.WithToken(apiKey))
	if embeddingModel == "" {
		embeddingModel = "embed-multilingual-v3.0"
	}
	return &CohereLike{client: c, embeddingModel: embeddingModel}
}

func (p *CohereLike) Embed(ctx context.Context, texts []string, kind EmbedKind) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, apperrors.NewValidationError("embed requires at least one text")
	}

	inputType := cohere.EmbedInputTypeSearchDocument
	if kind == EmbedKindQuery {
		inputType = cohere.EmbedInputTypeSearchQuery
	}

	resp, err := p.client.Embed(ctx, &cohere.EmbedRequest{
		Texts:     texts,
		Model:     cohere.String(p.embeddingModel),
		InputType: &inputType,
	})
	if err != nil {
		return nil, apperrors.WrapExternalAPIError(err, "cohere embed")
	}
	if resp.EmbeddingsFloats == nil {
		return nil, apperrors.New(apperrors.NLPServiceUnavailable, "cohere embed: no floats response")
	}

	vectors := make([][]float32, len(resp.EmbeddingsFloats.Embeddings))
	for i, embedding := range resp.EmbeddingsFloats.Embeddings {
		vec := make([]float32, len(embedding))
		for j, val := range embedding {
			vec[j] = float32(val)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (p *CohereLike) Generate(ctx context.Context, prompt string, history []Message) (string, error) {
	return "", apperrors.New(apperrors.NLPServiceUnavailable, "cohere backend does not implement generation")
}

func (p *CohereLike) NormalizeText(text string) string { return baseNormalize(text) }

func (p *CohereLike) SystemRole() Role { return RoleSystem }

func (p *CohereLike) Name() string { return "cohere" }
