// Package chunker splits extracted page text into chunks suitable for
// embedding, using one of three strategies selected by the processing
// request.
package chunker

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/alpinesboltltd/boltz-rag/internal/provider"
)

type Method string

const (
	MethodSemantic Method = "semantic"
	MethodSentence Method = "sentence_based"
	MethodSimple   Method = "simple"
)

type Chunk struct {
	Text     string
	Metadata map[string]any
}

// Options carries every knob any strategy might need; unused fields are
// ignored by strategies that don't need them (only chunkSimple honors
// OverlapSize, preserving the original's intentional asymmetry).
type Options struct {
	ChunkSize           int
	OverlapSize         int
	MaxChunkSize        int
	Delimiter           string
	PercentileThreshold float64
}

func DefaultOptions() Options {
	return Options{
		ChunkSize:           1000,
		OverlapSize:         200,
		MaxChunkSize:        1000,
		Delimiter:           "\n",
		PercentileThreshold: 95,
	}
}

var sentenceSplitRE = regexp.MustCompile(`[.!?]+`)

func splitSentences(text string) []string {
	raw := sentenceSplitRE.Split(text, -1)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func baseMetadataCopy(base map[string]any) map[string]any {
	m := make(map[string]any, len(base)+3)
	for k, v := range base {
		m[k] = v
	}
	return m
}

// Chunk dispatches to the requested strategy, falling back to Simple on any
// provider failure from Semantic (logging a warning, never raising for a
// recoverable fault).
func Chunk(ctx context.Context, method Method, texts []string, baseMetadata map[string]any, opts Options, embedder provider.Provider) []Chunk {
	switch method {
	case MethodSemantic:
		chunks, err := chunkSemantic(ctx, texts, baseMetadata, opts, embedder)
		if err != nil {
			log.Printf("chunker: semantic strategy failed (%v), falling back to simple", err)
			return chunkSimple(texts, baseMetadata, opts)
		}
		return chunks
	case MethodSentence:
		return chunkSentence(texts, baseMetadata, opts)
	default:
		return chunkSimple(texts, baseMetadata, opts)
	}
}
