package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/config"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"github.com/alpinesboltltd/boltz-rag/internal/provider"
	"github.com/alpinesboltltd/boltz-rag/internal/repository"
	"github.com/alpinesboltltd/boltz-rag/internal/templates"
	"github.com/alpinesboltltd/boltz-rag/internal/vectorindex"
)

const indexPushPageSize = 50

type IndexPushResult struct {
	InsertedVectors int
}

type AnswerResult struct {
	Answer         string
	FullPrompt     string
	ChatHistory    []provider.Message
	ResponseTimeMS int64
}

// RetrievalUsecase is the vector-indexing and RAG-answering half of spec.md
// §4.9: IndexPush, Search, Answer, plus the vector deletion hooks
// (DeleteAssetVectors is the one wired to IngestionUsecase.DeleteAsset).
type RetrievalUsecase struct {
	projectRepo  repository.ProjectRepositoryInterface
	chunkRepo    repository.ChunkRepositoryInterface
	queryLogRepo repository.QueryLogRepositoryInterface
	index        vectorindex.VectorIndex
	embedder     provider.Provider
	generator    provider.Provider
	templates    *templates.Registry
	cfg          *config.Config
}

func NewRetrievalUsecase(
	projectRepo repository.ProjectRepositoryInterface,
	chunkRepo repository.ChunkRepositoryInterface,
	queryLogRepo repository.QueryLogRepositoryInterface,
	index vectorindex.VectorIndex,
	embedder provider.Provider,
	generator provider.Provider,
	templateRegistry *templates.Registry,
	cfg *config.Config,
) *RetrievalUsecase {
	return &RetrievalUsecase{
		projectRepo:  projectRepo,
		chunkRepo:    chunkRepo,
		queryLogRepo: queryLogRepo,
		index:        index,
		embedder:     embedder,
		generator:    generator,
		templates:    templateRegistry,
		cfg:          cfg,
	}
}

func (u *RetrievalUsecase) collectionName(projectID uint) string {
	return vectorindex.CollectionName(u.cfg.EmbeddingModelSize, projectID)
}

// IndexPush ensures the collection exists, then pages through the
// project's chunks, embeds each page as document text, and upserts. It
// stops at the first page with zero rows and aborts on any batch failure,
// leaving the partially populated collection in place — idempotent retry
// with doReset is the recovery path.
func (u *RetrievalUsecase) IndexPush(ctx context.Context, userID uint, projectCode int, doReset bool) (*IndexPushResult, error) {
	proj, err := u.projectRepo.GetByCode(userID, projectCode)
	if err != nil {
		return nil, err
	}

	collection := u.collectionName(proj.ID)
	if _, err := u.index.CreateCollection(ctx, collection, u.cfg.EmbeddingModelSize, doReset); err != nil {
		return nil, err
	}

	result := &IndexPushResult{}
	offset := 0
	for {
		chunks, err := u.chunkRepo.ListPageByProject(proj.ID, offset, indexPushPageSize)
		if err != nil {
			return nil, err
		}
		if len(chunks) == 0 {
			break
		}

		texts := make([]string, len(chunks))
		recordIDs := make([]string, len(chunks))
		metadata := make([]map[string]any, len(chunks))
		for i, c := range chunks {
			texts[i] = c.ChunkText
			recordIDs[i] = strconv.FormatUint(uint64(c.ID), 10)
			metadata[i] = map[string]any{
				"asset_id":   c.AssetID,
				"project_id": c.ProjectID,
				"chunk_id":   c.ID,
			}
		}

		vectors, err := u.embedder.Embed(ctx, texts, provider.EmbedKindDocument)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(texts) {
			return nil, apperrors.New(apperrors.VectorDBInsertFailed, "embedding returned fewer vectors than input texts")
		}

		if err := u.index.InsertMany(ctx, collection, texts, vectors, metadata, recordIDs, indexPushPageSize); err != nil {
			return nil, apperrors.New(apperrors.VectorDBInsertFailed, err.Error())
		}

		result.InsertedVectors += len(chunks)
		offset += len(chunks)
	}

	return result, nil
}

// Search embeds text as a query and returns the top-limit matches.
func (u *RetrievalUsecase) Search(ctx context.Context, userID uint, projectCode int, text string, limit int) ([]vectorindex.SearchResult, error) {
	proj, err := u.projectRepo.GetByCode(userID, projectCode)
	if err != nil {
		return nil, err
	}

	vectors, err := u.embedder.Embed(ctx, []string{text}, provider.EmbedKindQuery)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, apperrors.New(apperrors.VectorDBSearchFailed, "embedding returned no vectors for query")
	}

	results, err := u.index.SearchByVector(ctx, u.collectionName(proj.ID), vectors[0], limit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.New(apperrors.NLPNoRelevantContent, "")
	}
	return results, nil
}

// Answer performs a search, assembles a RAG prompt from the template
// registry, calls the generation provider, logs the query, and returns the
// full exchange.
func (u *RetrievalUsecase) Answer(ctx context.Context, userID uint, projectCode int, question string, limit int) (*AnswerResult, error) {
	start := time.Now()

	results, err := u.Search(ctx, userID, projectCode, question, limit)
	if err != nil {
		return nil, err
	}

	systemPrompt := u.templates.Get("rag", "system_prompt", nil)

	var documentBlocks string
	for i, r := range results {
		text := r.Text
		if u.generator != nil {
			text = u.generator.NormalizeText(text)
		}
		documentBlocks += u.templates.Get("rag", "document_prompt", map[string]string{
			"doc_num":    strconv.Itoa(i + 1),
			"chunk_text": text,
		}) + "\n"
	}

	footer := u.templates.Get("rag", "footer_prompt", map[string]string{"query": question})
	fullPrompt := systemPrompt + "\n" + documentBlocks + footer

	history := []provider.Message{{Role: provider.RoleSystem, Content: systemPrompt}}

	answer, err := u.generator.Generate(ctx, fullPrompt, history)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.NLPServiceUnavailable {
		return nil, appErr
	}
	if err != nil || answer == "" {
		return nil, apperrors.New(apperrors.NLPGenerationFailed, "")
	}

	elapsed := time.Since(start).Milliseconds()

	logRow := &entity.QueryLog{
		UserID:         userID,
		Question:       question,
		LLMResponse:    answer,
		ResponseTimeMS: elapsed,
	}
	if err := u.queryLogRepo.Create(logRow); err != nil {
		apperrors.LogError(err, "answer: persist query log")
	}

	return &AnswerResult{
		Answer:         answer,
		FullPrompt:     fullPrompt,
		ChatHistory:    history,
		ResponseTimeMS: elapsed,
	}, nil
}

// IndexInfo reports the vector collection's size and status.
func (u *RetrievalUsecase) IndexInfo(ctx context.Context, userID uint, projectCode int) (*vectorindex.CollectionInfo, error) {
	proj, err := u.projectRepo.GetByCode(userID, projectCode)
	if err != nil {
		return nil, err
	}

	collection := u.collectionName(proj.ID)
	exists, err := u.index.CollectionExists(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.New(apperrors.VectorDBCollectionNotFound, "")
	}

	info, err := u.index.CollectionInfo(ctx, collection)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteAssetVectors deletes by filter on asset_id; this is the hook wired
// to IngestionUsecase.DeleteAsset.
func (u *RetrievalUsecase) DeleteAssetVectors(ctx context.Context, projectID, assetID uint) error {
	collection := u.collectionName(projectID)
	return u.index.DeleteByFilter(ctx, collection, map[string]string{
		"asset_id": strconv.FormatUint(uint64(assetID), 10),
	})
}

// DeleteChunkVectors deletes vectors by explicit chunk ids. DeleteAsset does
// not call it; asset cleanup deletes by the asset_id filter only.
func (u *RetrievalUsecase) DeleteChunkVectors(ctx context.Context, projectID uint, chunkIDs []uint) error {
	collection := u.collectionName(projectID)
	ids := make([]string, len(chunkIDs))
	for i, id := range chunkIDs {
		ids[i] = strconv.FormatUint(uint64(id), 10)
	}
	return u.index.DeleteByIDs(ctx, collection, ids)
}
