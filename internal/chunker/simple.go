package chunker

import "strings"

// chunkSimple splits on a delimiter token, accumulates lines until the
// running size reaches opts.ChunkSize, and — unlike the other two
// strategies — respects opts.OverlapSize by backing the next chunk's start
// up by that many characters.
func chunkSimple(texts []string, baseMetadata map[string]any, opts Options) []Chunk {
	delim := opts.Delimiter
	if delim == "" {
		delim = "\n"
	}
	combined := strings.Join(texts, delim)

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	overlap := opts.OverlapSize
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}

	var chunks []Chunk
	start := 0
	for start < len(combined) {
		end := start + chunkSize
		if end > len(combined) {
			end = len(combined)
		} else {
			// back off to the nearest delimiter within the last 100 bytes
			// so a chunk doesn't split mid-line.
			lookback := end - 100
			if lookback < start {
				lookback = start
			}
			if idx := strings.LastIndex(combined[lookback:end], delim); idx >= 0 {
				end = lookback + idx
			}
		}

		text := strings.TrimSpace(combined[start:end])
		if text != "" {
			meta := baseMetadataCopy(baseMetadata)
			meta["chunk_index"] = len(chunks)
			meta["chunk_size"] = len(text)
			meta["chunking_method"] = string(MethodSimple)
			chunks = append(chunks, Chunk{Text: text, Metadata: meta})
		}

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
		if end >= len(combined) {
			break
		}
	}

	return chunks
}
