package vectorindex

import (
	"context"
	"fmt"
	"strings"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"gorm.io/gorm"
)

// PgVectorIndex implements VectorIndex as one table per collection, over
// Postgres's pgvector extension, grounded on the teacher's raw-SQL
// PgVectorDB pattern but generalized from a single fixed table to
// per-collection tables keyed by CollectionName.
type PgVectorIndex struct {
	db             *gorm.DB
	distanceMethod string // "cosine" or "dot"
	indexThreshold int
}

func NewPgVectorIndex(db *gorm.DB, distanceMethod string, indexThreshold int) *PgVectorIndex {
	if distanceMethod == "" {
		distanceMethod = "cosine"
	}
	return &PgVectorIndex{db: db, distanceMethod: distanceMethod, indexThreshold: indexThreshold}
}

// distanceOperator returns the pgvector operator used both for ORDER BY and
// for the HNSW index's operator class.
func (p *PgVectorIndex) distanceOperator() string {
	if p.distanceMethod == "dot" {
		return "<#>"
	}
	return "<=>"
}

func (p *PgVectorIndex) opClass() string {
	if p.distanceMethod == "dot" {
		return "vector_ip_ops"
	}
	return "vector_cosine_ops"
}

func (p *PgVectorIndex) CreateCollection(ctx context.Context, name string, embeddingSize int, reset bool) (bool, error) {
	if reset {
		if err := p.DeleteCollection(ctx, name); err != nil {
			return false, err
		}
	}

	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id BIGSERIAL PRIMARY KEY,
		record_id TEXT UNIQUE NOT NULL,
		text TEXT NOT NULL,
		vector vector(%d) NOT NULL,
		metadata JSONB,
		asset_id BIGINT,
		project_id BIGINT,
		chunk_id BIGINT
	)`, name, embeddingSize)

	if err := p.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return false, apperrors.WrapDatabaseError(err, "create collection table "+name)
	}
	return true, nil
}

func (p *PgVectorIndex) CollectionExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).Raw(
		`SELECT count(*) FROM information_schema.tables WHERE table_name = ?`, name,
	).Scan(&count).Error
	if err != nil {
		return false, apperrors.WrapDatabaseError(err, "check collection exists")
	}
	return count > 0, nil
}

func (p *PgVectorIndex) CollectionInfo(ctx context.Context, name string) (CollectionInfo, error) {
	exists, err := p.CollectionExists(ctx, name)
	if err != nil {
		return CollectionInfo{}, err
	}
	if !exists {
		return CollectionInfo{}, apperrors.New(apperrors.VectorDBCollectionNotFound, name)
	}

	var count int64
	stmt := fmt.Sprintf(`SELECT count(*) FROM %s`, name)
	if err := p.db.WithContext(ctx).Raw(stmt).Scan(&count).Error; err != nil {
		return CollectionInfo{}, apperrors.WrapDatabaseError(err, "collection info "+name)
	}

	return CollectionInfo{
		VectorsCount:  count,
		PointsCount:   count,
		SegmentsCount: 1,
		Status:        "active",
	}, nil
}

func (p *PgVectorIndex) DeleteCollection(ctx context.Context, name string) error {
	stmt := fmt.Sprintf(`DROP TABLE IF EXISTS %s`, name)
	if err := p.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "drop collection "+name)
	}
	return nil
}

// InsertMany upserts in batches of batchSize; inconsistent slice lengths are
// a programmer error and fail fast. After each batch, if the table's row
// count crosses indexThreshold, an HNSW index is created using the
// configured distance operator class.
func (p *PgVectorIndex) InsertMany(ctx context.Context, name string, texts []string, vectors [][]float32, metadata []map[string]any, recordIDs []string, batchSize int) error {
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

	exists, err := p.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.New(apperrors.VectorDBCollectionNotFound, name)
	}

	insertStmt := fmt.Sprintf(`
		INSERT INTO %s (record_id, text, vector, metadata, asset_id, project_id, chunk_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (record_id) DO UPDATE SET
			text = EXCLUDED.text, vector = EXCLUDED.vector, metadata = EXCLUDED.metadata,
			asset_id = EXCLUDED.asset_id, project_id = EXCLUDED.project_id, chunk_id = EXCLUDED.chunk_id
	`, name)

	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}

		err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for i := start; i < end; i++ {
				assetID, _ := metadata[i]["asset_id"]
				projectID, _ := metadata[i]["project_id"]
				chunkID, _ := metadata[i]["chunk_id"]
				if err := tx.Exec(insertStmt, recordIDs[i], texts[i], pgVector(vectors[i]), metadataJSON(metadata[i]), assetID, projectID, chunkID).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return apperrors.New(apperrors.VectorDBInsertFailed, err.Error())
		}

		if err := p.maybeCreateIndex(ctx, name); err != nil {
			apperrors.LogError(err, "pgvector index creation")
		}
	}

	return nil
}

func (p *PgVectorIndex) maybeCreateIndex(ctx context.Context, name string) error {
	var count int64
	stmt := fmt.Sprintf(`SELECT count(*) FROM %s`, name)
	if err := p.db.WithContext(ctx).Raw(stmt).Scan(&count).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "count rows for index threshold")
	}
	if count < int64(p.indexThreshold) {
		return nil
	}

	indexName := name + "_hnsw_idx"
	createIdx := fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS %s ON %s USING hnsw (vector %s)`,
		indexName, name, p.opClass(),
	)
	if err := p.db.WithContext(ctx).Exec(createIdx).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "create hnsw index on "+name)
	}
	return nil
}

func (p *PgVectorIndex) SearchByVector(ctx context.Context, name string, vector []float32, limit int) ([]SearchResult, error) {
	op := p.distanceOperator()
	stmt := fmt.Sprintf(
		`SELECT text, 1 - (vector %s ?) AS score FROM %s ORDER BY vector %s ? LIMIT ?`,
		op, name, op,
	)

	rows, err := p.db.WithContext(ctx).Raw(stmt, pgVector(vector), pgVector(vector), limit).Rows()
	if err != nil {
		return nil, apperrors.New(apperrors.VectorDBSearchFailed, err.Error())
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Text, &r.Score); err != nil {
			return nil, apperrors.New(apperrors.VectorDBSearchFailed, err.Error())
		}
		results = append(results, r)
	}
	return results, nil
}

func (p *PgVectorIndex) DeleteByIDs(ctx context.Context, name string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE record_id IN ?`, name)
	if err := p.db.WithContext(ctx).Exec(stmt, ids).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "delete by ids from "+name)
	}
	return nil
}

// DeleteByFilter supports the asset_id/project_id/chunk_id payload keys the
// retrieval service relies on for per-asset vector cleanup.
func (p *PgVectorIndex) DeleteByFilter(ctx context.Context, name string, filter map[string]string) error {
	if len(filter) == 0 {
		return nil
	}

	clauses := make([]string, 0, len(filter))
	args := make([]any, 0, len(filter))
	for _, col := range []string{"asset_id", "project_id", "chunk_id"} {
		if v, ok := filter[col]; ok {
			clauses = append(clauses, col+" = ?")
			args = append(args, v)
		}
	}
	if len(clauses) == 0 {
		return nil
	}

	stmt := fmt.Sprintf(`DELETE FROM %s WHERE %s`, name, strings.Join(clauses, " AND "))
	if err := p.db.WithContext(ctx).Exec(stmt, args...).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "delete by filter from "+name)
	}
	return nil
}
