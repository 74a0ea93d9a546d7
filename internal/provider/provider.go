// Package provider wraps remote embedding/generation backends behind one
// interface so the rest of the service never imports an SDK directly.
package provider

import "context"

// EmbedKind tags whether text is being embedded as a stored document or an
// incoming query; some backends (Cohere) use a different model input type
// for each.
type EmbedKind string

const (
	EmbedKindDocument EmbedKind = "document"
	EmbedKindQuery    EmbedKind = "query"
)

// Role mirrors the chat-message roles a provider accepts in Generate's
// history. SystemRole is exposed per-provider since Anthropic treats the
// system message as a separate field rather than a history entry.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Provider is the uniform interface over a remote embedding/generation
// backend. Embed returns a same-length sequence of fixed-size vectors, or an
// empty slice on provider failure (callers treat that as a retryable
// transient fault, never a panic). Generate returns an empty string on
// failure.
type Provider interface {
	Embed(ctx context.Context, texts []string, kind EmbedKind) ([][]float32, error)
	Generate(ctx context.Context, prompt string, history []Message) (string, error)
	NormalizeText(text string) string
	SystemRole() Role
	Name() string
}

// baseNormalize is the default NormalizeText behavior shared by backends
// that need no special preprocessing of chunk text before it is spliced
// into a prompt.
func baseNormalize(text string) string {
	return text
}
