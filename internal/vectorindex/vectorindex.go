// Package vectorindex provides a uniform interface over a vector backend:
// collection lifecycle, batch upsert, top-k search, and filtered deletion.
package vectorindex

import (
	"context"
	"fmt"
)

type CollectionInfo struct {
	VectorsCount  int64
	PointsCount   int64
	SegmentsCount int64
	Status        string
}

type SearchResult struct {
	Text  string
	Score float32
}

// VectorIndex is implemented by PgVectorIndex and PineconeIndex. Filter keys
// passed to DeleteByFilter select records whose payload metadata matches the
// given key/value pairs; at minimum asset_id, project_id, and chunk_id must
// be supported.
type VectorIndex interface {
	CreateCollection(ctx context.Context, name string, embeddingSize int, reset bool) (bool, error)
	CollectionExists(ctx context.Context, name string) (bool, error)
	CollectionInfo(ctx context.Context, name string) (CollectionInfo, error)
	DeleteCollection(ctx context.Context, name string) error
	InsertMany(ctx context.Context, name string, texts []string, vectors [][]float32, metadata []map[string]any, recordIDs []string, batchSize int) error
	SearchByVector(ctx context.Context, name string, vector []float32, limit int) ([]SearchResult, error)
	DeleteByIDs(ctx context.Context, name string, ids []string) error
	DeleteByFilter(ctx context.Context, name string, filter map[string]string) error
}

// CollectionName reproduces the original's NLPController.create_collection_name
// format exactly: collection_<embeddingSize>_<projectInternalId>.
func CollectionName(embeddingSize int, projectInternalID uint) string {
	return fmt.Sprintf("collection_%d_%d", embeddingSize, projectInternalID)
}
