package chunker

import (
	"context"
	"strings"
	"testing"
)

func TestChunkSimpleRespectsOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij\n", 50)
	opts := Options{ChunkSize: 100, OverlapSize: 20, Delimiter: "\n"}

	chunks := Chunk(context.Background(), MethodSimple, []string{text}, nil, opts, nil)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if c.Metadata["chunking_method"] != string(MethodSimple) {
			t.Fatalf("expected chunking_method=simple, got %v", c.Metadata["chunking_method"])
		}
	}
}

func TestChunkSentenceIgnoresOverlap(t *testing.T) {
	text := "First sentence is short. Second sentence is also short. Third one too."
	opts := Options{MaxChunkSize: 40, OverlapSize: 200}

	chunks := Chunk(context.Background(), MethodSentence, []string{text}, map[string]any{"source": "doc.txt"}, opts, nil)
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	for _, c := range chunks {
		if len(c.Text) > 80 {
			t.Errorf("chunk exceeds bound: %q", c.Text)
		}
		if c.Metadata["source"] != "doc.txt" {
			t.Errorf("expected base metadata to propagate, got %v", c.Metadata)
		}
	}
}

func TestChunkSemanticFallsBackToSimpleWithoutEmbedder(t *testing.T) {
	text := "One. Two. Three. Four."
	opts := DefaultOptions()

	chunks := Chunk(context.Background(), MethodSemantic, []string{text}, nil, opts, nil)
	if len(chunks) == 0 {
		t.Fatal("expected fallback chunks")
	}
	if chunks[0].Metadata["chunking_method"] != string(MethodSimple) {
		t.Fatalf("expected fallback to simple method, got %v", chunks[0].Metadata["chunking_method"])
	}
}

func TestChunkDefaultMethodFallsBackToSimple(t *testing.T) {
	chunks := Chunk(context.Background(), Method("unknown"), []string{"hello world"}, nil, DefaultOptions(), nil)
	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}
}
