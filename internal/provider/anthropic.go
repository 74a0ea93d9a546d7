package provider

import (
	"context"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
)

// AnthropicLike serves GENERATION_BACKEND=anthropic via the Messages API.
// Anthropic exposes no embeddings endpoint, so Embed always surfaces
// NLP_SERVICE_UNAVAILABLE; pair it with another backend for
// EMBEDDING_BACKEND.
type AnthropicLike struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicLike(apiKey, model string) *AnthropicLike {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = "claude-3-5-haiku-20241022"
	}
	return &AnthropicLike{client: &client, model: model}
}

func (p *AnthropicLike) Embed(ctx context.Context, texts []string, kind EmbedKind) ([][]float32, error) {
	return nil, apperrors.New(apperrors.NLPServiceUnavailable, "anthropic backend does not implement embeddings")
}

func (p *AnthropicLike) Generate(ctx context.Context, prompt string, history []Message) (string, error) {
	var systemMsg string
	var chatMessages []anthropic.MessageParam

	for _, m := range history {
		switch m.Role {
		case RoleSystem:
			systemMsg = m.Content
		case RoleAssistant:
			chatMessages = append(chatMessages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			chatMessages = append(chatMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	chatMessages = append(chatMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		Messages:  chatMessages,
		MaxTokens: 1024,
	}
	if systemMsg != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemMsg, Type: constant.Text("text")}}
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", apperrors.WrapExternalAPIError(err, "anthropic messages")
	}
	if len(message.Content) == 0 {
		return "", nil
	}
	return message.Content[0].Text, nil
}

func (p *AnthropicLike) NormalizeText(text string) string { return baseNormalize(text) }

func (p *AnthropicLike) SystemRole() Role { return RoleSystem }

func (p *AnthropicLike) Name() string { return "anthropic" }
