package chunker

import "strings"

// chunkSentence greedily accumulates sentences into a chunk bounded by
// opts.MaxChunkSize characters; it never respects OverlapSize.
func chunkSentence(texts []string, baseMetadata map[string]any, opts Options) []Chunk {
	combined := strings.Join(texts, " ")
	sentences := splitSentences(combined)

	maxSize := opts.MaxChunkSize
	if maxSize <= 0 {
		maxSize = 1000
	}

	var chunks []Chunk
	var current strings.Builder

	flush := func() {
		text := strings.TrimSpace(current.String())
		if text == "" {
			return
		}
		meta := baseMetadataCopy(baseMetadata)
		meta["chunk_index"] = len(chunks)
		meta["chunk_size"] = len(text)
		meta["chunking_method"] = string(MethodSentence)
		chunks = append(chunks, Chunk{Text: text, Metadata: meta})
		current.Reset()
	}

	for _, sentence := range sentences {
		if current.Len()+len(sentence) > maxSize && current.Len() > 0 {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}
	flush()

	return chunks
}
