package chunker

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/alpinesboltltd/boltz-rag/internal/provider"
)

// chunkSemantic concatenates the inputs, splits at sentence boundaries, and
// merges adjacent sentences into a chunk as long as the cosine distance
// between consecutive sentence embeddings stays under the configured
// percentile threshold of all observed distances. A breakpoint is inserted
// wherever the distance exceeds it, mirroring a percentile-based semantic
// splitter. Requires an embedding provider; errors bubble up so the caller
// can fall back to Simple.
func chunkSemantic(ctx context.Context, texts []string, baseMetadata map[string]any, opts Options, embedder provider.Provider) ([]Chunk, error) {
	if embedder == nil {
		return nil, errors.New("semantic chunking requires an embedding provider")
	}

	combined := strings.Join(texts, "\n\n")
	sentences := splitSentences(combined)
	if len(sentences) == 0 {
		return nil, nil
	}
	if len(sentences) == 1 {
		return simpleWrap(sentences, baseMetadata), nil
	}

	vectors, err := embedder.Embed(ctx, sentences, provider.EmbedKindDocument)
	if err != nil || len(vectors) != len(sentences) {
		if err == nil {
			err = errors.New("embedding provider returned a mismatched vector count")
		}
		return nil, err
	}

	distances := make([]float64, len(sentences)-1)
	for i := 0; i < len(sentences)-1; i++ {
		distances[i] = cosineDistance(vectors[i], vectors[i+1])
	}

	threshold := opts.PercentileThreshold
	if threshold <= 0 {
		threshold = 95
	}
	cutoff := percentile(distances, threshold)

	var chunks []Chunk
	var current strings.Builder
	current.WriteString(sentences[0])

	flush := func() {
		text := strings.TrimSpace(current.String())
		if text == "" {
			return
		}
		meta := baseMetadataCopy(baseMetadata)
		meta["chunk_index"] = len(chunks)
		meta["chunk_size"] = len(text)
		meta["chunking_method"] = string(MethodSemantic)
		chunks = append(chunks, Chunk{Text: text, Metadata: meta})
		current.Reset()
	}

	for i := 1; i < len(sentences); i++ {
		if distances[i-1] > cutoff {
			flush()
		} else {
			current.WriteString(". ")
		}
		current.WriteString(sentences[i])
	}
	flush()

	return chunks, nil
}

func simpleWrap(sentences []string, baseMetadata map[string]any) []Chunk {
	text := strings.TrimSpace(strings.Join(sentences, ". "))
	if text == "" {
		return nil
	}
	meta := baseMetadataCopy(baseMetadata)
	meta["chunk_index"] = 0
	meta["chunk_size"] = len(text)
	meta["chunking_method"] = string(MethodSemantic)
	return []Chunk{{Text: text, Metadata: meta}}
}

func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return 1 - similarity
}

// percentile returns the value below which `pct` percent of values fall,
// using linear interpolation between closest ranks.
func percentile(values []float64, pct float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := (pct / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
