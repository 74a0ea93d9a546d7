package provider

import (
	"context"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
)

// UnavailableProvider is returned by the factory when the configured
// backend's credential is absent. Every call surfaces NLP_SERVICE_UNAVAILABLE
// instead of crashing, per the embedding/generation client's contract.
type UnavailableProvider struct {
	backend string
}

func NewUnavailableProvider(backend string) *UnavailableProvider {
	return &UnavailableProvider{backend: backend}
}

func (p *UnavailableProvider) Embed(ctx context.Context, texts []string, kind EmbedKind) ([][]float32, error) {
	return nil, apperrors.New(apperrors.NLPServiceUnavailable, p.backend+" is not configured")
}

func (p *UnavailableProvider) Generate(ctx context.Context, prompt string, history []Message) (string, error) {
	return "", apperrors.New(apperrors.NLPServiceUnavailable, p.backend+" is not configured")
}

func (p *UnavailableProvider) NormalizeText(text string) string { return baseNormalize(text) }

func (p *UnavailableProvider) SystemRole() Role { return RoleSystem }

func (p *UnavailableProvider) Name() string { return "unavailable:" + p.backend }
