package provider

import (
	"context"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"google.golang.org/genai"
)

// GoogleLike serves GENERATION_BACKEND=google via Gemini. The genai SDK
// exposes no embeddings call wired here, so Embed surfaces
// NLP_SERVICE_UNAVAILABLE; pair it with another backend for
// EMBEDDING_BACKEND.
type GoogleLike struct {
	client *genai.Client
	model  string
}

func NewGoogleLike(ctx context.Context, apiKey, model string) (*GoogleLike, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, apperrors.WrapExternalAPIError(err, "genai client init")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GoogleLike{client: client, model: model}, nil
}

func (p *GoogleLike) Embed(ctx context.Context, texts []string, kind EmbedKind) ([][]float32, error) {
	return nil, apperrors.New(apperrors.NLPServiceUnavailable, "google backend does not implement embeddings")
}

func (p *GoogleLike) Generate(ctx context.Context, prompt string, history []Message) (string, error) {
	genConfig := &genai.GenerateContentConfig{}

	var contents []*genai.Content
	for _, m := range history {
		switch m.Role {
		case RoleSystem:
			genConfig.SystemInstruction = &genai.Content{
				Role:  string(RoleSystem),
				Parts: []*genai.Part{{Text: m.Content}},
			}
		case RoleAssistant:
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: string(RoleUser), Parts: []*genai.Part{{Text: m.Content}}})
		}
	}
	contents = append(contents, &genai.Content{Role: string(RoleUser), Parts: []*genai.Part{{Text: prompt}}})

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, genConfig)
	if err != nil {
		return "", apperrors.WrapExternalAPIError(err, "genai generate content")
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return result.Text(), nil
}

func (p *GoogleLike) NormalizeText(text string) string { return baseNormalize(text) }

func (p *GoogleLike) SystemRole() Role { return RoleSystem }

func (p *GoogleLike) Name() string { return "google" }
