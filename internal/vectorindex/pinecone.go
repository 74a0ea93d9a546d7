package vectorindex

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/pinecone-io/go-pinecone/v4/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// PineconeIndex implements VectorIndex against a single Pinecone index,
// using the collection name as the namespace — grounded on the teacher's
// PineconeDB (UpsertVectors/QueryByVectorValues/DeleteVectorsByFilter) but
// generalized from one fixed namespace to namespace-per-collection.
type PineconeIndex struct {
	client    *pinecone.Client
	indexHost string
}

func NewPineconeIndex(apiKey, indexHost string) (*PineconeIndex, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: apiKey})
	if err != nil {
		return nil, apperrors.WrapExternalAPIError(err, "pinecone client init")
	}
	return &PineconeIndex{client: client, indexHost: indexHost}, nil
}

func (p *PineconeIndex) connection(name string) (*pinecone.IndexConnection, error) {
	conn, err := p.client.Index(pinecone.NewIndexConnParams{Host: p.indexHost, Namespace: name})
	if err != nil {
		return nil, apperrors.WrapExternalAPIError(err, "pinecone index connection")
	}
	return conn, nil
}

// CreateCollection is a no-op beyond an optional reset: Pinecone namespaces
// come into existence on first upsert.
func (p *PineconeIndex) CreateCollection(ctx context.Context, name string, embeddingSize int, reset bool) (bool, error) {
	if reset {
		if err := p.DeleteCollection(ctx, name); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (p *PineconeIndex) CollectionExists(ctx context.Context, name string) (bool, error) {
	conn, err := p.connection(name)
	if err != nil {
		return false, err
	}
	stats, err := conn.DescribeIndexStats(ctx)
	if err != nil {
		return false, apperrors.WrapExternalAPIError(err, "pinecone describe index stats")
	}
	summary, ok := stats.Namespaces[name]
	return ok && summary.VectorCount > 0, nil
}

func (p *PineconeIndex) CollectionInfo(ctx context.Context, name string) (CollectionInfo, error) {
	conn, err := p.connection(name)
	if err != nil {
		return CollectionInfo{}, err
	}
	stats, err := conn.DescribeIndexStats(ctx)
	if err != nil {
		return CollectionInfo{}, apperrors.WrapExternalAPIError(err, "pinecone describe index stats")
	}

	summary, ok := stats.Namespaces[name]
	if !ok {
		return CollectionInfo{}, apperrors.New(apperrors.VectorDBCollectionNotFound, name)
	}

	return CollectionInfo{
		VectorsCount:  int64(summary.VectorCount),
		PointsCount:   int64(summary.VectorCount),
		SegmentsCount: 1,
		Status:        "active",
	}, nil
}

func (p *PineconeIndex) DeleteCollection(ctx context.Context, name string) error {
	conn, err := p.connection(name)
	if err != nil {
		return err
	}
	if err := conn.DeleteAllVectorsInNamespace(ctx); err != nil {
		return apperrors.WrapDatabaseError(err, "delete pinecone namespace "+name)
	}
	return nil
}

func (p *PineconeIndex) InsertMany(ctx context.Context, name string, texts []string, vectors [][]float32, metadata []map[string]any, recordIDs []string, batchSize int) error {
	n := len(texts)
	if n != len(vectors) || n != len(metadata) || n != len(recordIDs) {
		panic("vectorindex: InsertMany received mismatched slice lengths")
	}
	if n == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = n
	}

	conn, err := p.connection(name)
	if err != nil {
		return err
	}

	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}

		vecs := make([]*pinecone.Vector, 0, end-start)
		for i := start; i < end; i++ {
			payload := map[string]any{"text": texts[i]}
			for k, v := range metadata[i] {
				payload[k] = v
			}

			meta, err := structpb.NewStruct(payload)
			if err != nil {
				return apperrors.New(apperrors.VectorDBInsertFailed, err.Error())
			}

			vec := vectors[i]
			vecs = append(vecs, &pinecone.Vector{
				Id:       recordIDs[i],
				Values:   &vec,
				Metadata: meta,
			})
		}

		if _, err := conn.UpsertVectors(ctx, vecs); err != nil {
			return apperrors.New(apperrors.VectorDBInsertFailed, err.Error())
		}
	}

	return nil
}

func (p *PineconeIndex) SearchByVector(ctx context.Context, name string, vector []float32, limit int) ([]SearchResult, error) {
	conn, err := p.connection(name)
	if err != nil {
		return nil, err
	}

	resp, err := conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(limit),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, apperrors.New(apperrors.VectorDBSearchFailed, err.Error())
	}

	results := make([]SearchResult, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		text := ""
		if match.Vector != nil && match.Vector.Metadata != nil {
			text = match.Vector.Metadata.Fields["text"].GetStringValue()
		}
		results = append(results, SearchResult{Text: text, Score: match.Score})
	}
	return results, nil
}

func (p *PineconeIndex) DeleteByIDs(ctx context.Context, name string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	conn, err := p.connection(name)
	if err != nil {
		return err
	}
	if err := conn.DeleteVectorsById(ctx, ids); err != nil {
		return apperrors.WrapDatabaseError(err, "delete pinecone vectors by id")
	}
	return nil
}

// DeleteByFilter builds a metadata filter over the payload's top-level keys
// (asset_id, project_id, chunk_id). InsertMany stores those keys flat beside
// "text", not under a nested metadata object, and stores ids as numbers, so
// integer filter values are matched as numbers.
func (p *PineconeIndex) DeleteByFilter(ctx context.Context, name string, filter map[string]string) error {
	if len(filter) == 0 {
		return nil
	}

	conn, err := p.connection(name)
	if err != nil {
		return err
	}

	fields := make(map[string]any, len(filter))
	for k, v := range filter {
		if n, convErr := strconv.ParseInt(v, 10, 64); convErr == nil {
			fields[k] = n
		} else {
			fields[k] = v
		}
	}

	structFilter, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("build pinecone filter: %w", err)
	}

	if err := conn.DeleteVectorsByFilter(ctx, structFilter); err != nil {
		return apperrors.WrapDatabaseError(err, "delete pinecone vectors by filter")
	}
	return nil
}
