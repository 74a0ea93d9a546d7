package provider

import (
	"context"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAILike wraps the OpenAI chat completions and embeddings APIs. It
// serves both GENERATION_BACKEND=openai and EMBEDDING_BACKEND=openai; a
// deployment can mix it with another backend on the other axis.
type OpenAILike struct {
	client          *openai.Client
	generationModel string
	embeddingModel  string
}

func NewOpenAILike(apiKey, baseURL, generationModel, embeddingModel string) *OpenAILike {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAILike{client: &client, generationModel: generationModel, embeddingModel: embeddingModel}
}

func (p *OpenAILike) Embed(ctx context.Context, texts []string, kind EmbedKind) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, apperrors.NewValidationError("embed requires at least one text")
	}

	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: p.embeddingModel,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})
	if err != nil {
		return nil, apperrors.WrapExternalAPIError(err, "openai embeddings")
	}

	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}

func (p *OpenAILike) Generate(ctx context.Context, prompt string, history []Message) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, m := range history {
		switch m.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(prompt))

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    p.generationModel,
		Messages: messages,
	})
	if err != nil {
		return "", apperrors.WrapExternalAPIError(err, "openai chat completions")
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

func (p *OpenAILike) NormalizeText(text string) string { return baseNormalize(text) }

func (p *OpenAILike) SystemRole() Role { return RoleSystem }

func (p *OpenAILike) Name() string { return "openai" }
