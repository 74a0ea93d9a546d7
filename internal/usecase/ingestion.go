package usecase

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/chunker"
	"github.com/alpinesboltltd/boltz-rag/internal/config"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"github.com/alpinesboltltd/boltz-rag/internal/fileparser"
	"github.com/alpinesboltltd/boltz-rag/internal/provider"
	"github.com/alpinesboltltd/boltz-rag/internal/repository"
	"github.com/alpinesboltltd/boltz-rag/internal/storage"
	"github.com/alpinesboltltd/boltz-rag/internal/vectorindex"
)

type UploadResult struct {
	FileID string
}

type ProcessRequest struct {
	ChunkSize      int
	OverlapSize    int
	DoReset        bool
	FileID         string
	ChunkingMethod chunker.Method
}

type FailedFile struct {
	FileID string
	Reason string
}

type ProcessResult struct {
	InsertedChunks int
	ProcessedFiles int
	TotalFiles     int
	FailedFiles    []FailedFile
}

// IngestionUsecase is the write pipeline: spec.md §4.8's Upload and Process,
// plus the supplemented DeleteAsset operation.
type IngestionUsecase struct {
	projectRepo repository.ProjectRepositoryInterface
	assetRepo   repository.AssetRepositoryInterface
	chunkRepo   repository.ChunkRepositoryInterface
	storage     *storage.Manager
	embedder    provider.Provider
	index       vectorindex.VectorIndex
	cfg         *config.Config
}

func NewIngestionUsecase(
	projectRepo repository.ProjectRepositoryInterface,
	assetRepo repository.AssetRepositoryInterface,
	chunkRepo repository.ChunkRepositoryInterface,
	storageManager *storage.Manager,
	embedder provider.Provider,
	index vectorindex.VectorIndex,
	cfg *config.Config,
) *IngestionUsecase {
	return &IngestionUsecase{
		projectRepo: projectRepo,
		assetRepo:   assetRepo,
		chunkRepo:   chunkRepo,
		storage:     storageManager,
		embedder:    embedder,
		index:       index,
		cfg:         cfg,
	}
}

func (u *IngestionUsecase) allowedExtension(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(nameExt(name)), ".")
	for _, allowed := range u.cfg.AllowedFileTypes() {
		if allowed == ext {
			return true
		}
	}
	return false
}

func nameExt(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx:]
	}
	return ""
}

// Upload validates and streams an uploaded file to disk, auto-creating the
// project when called with a fresh project code.
func (u *IngestionUsecase) Upload(userID uint, projectCode int, originalName string, declaredSize int64, r io.Reader) (*UploadResult, error) {
	proj, _, err := u.projectRepo.GetOrCreate(userID, projectCode)
	if err != nil {
		return nil, err
	}

	if !u.allowedExtension(originalName) {
		return nil, apperrors.New(apperrors.FileTypeNotSupported, originalName)
	}
	if declaredSize > 0 && declaredSize > u.cfg.FileMaxSize {
		return nil, apperrors.New(apperrors.FileSizeExceeded, "")
	}

	storedName, size, err := u.storage.SaveFile(proj.ID, originalName, r, u.cfg.FileDefaultChunkSize)
	if err != nil {
		return nil, apperrors.New(apperrors.FileUploadFailed, err.Error())
	}

	asset := &entity.Asset{
		ProjectID: proj.ID,
		AssetType: entity.AssetTypeFile,
		AssetName: storedName,
		AssetSize: size,
	}
	if err := u.assetRepo.Create(asset); err != nil {
		u.storage.DeleteFile(proj.ID, storedName)
		return nil, err
	}

	return &UploadResult{FileID: strconv.FormatUint(uint64(asset.ID), 10)}, nil
}

// resolveTargets returns the assets Process should run over: a single
// looked-up asset when FileID is given (by name, then by id), or every FILE
// asset in the project otherwise.
func (u *IngestionUsecase) resolveTargets(proj *entity.Project, fileID string) ([]entity.Asset, error) {
	if fileID == "" {
		assets, err := u.assetRepo.ListByProject(proj.ID)
		if err != nil {
			return nil, err
		}
		if len(assets) == 0 {
			return nil, apperrors.New(apperrors.ProcessingNoFiles, "")
		}
		return assets, nil
	}

	if asset, err := u.assetRepo.GetByName(proj.ID, fileID); err == nil {
		return []entity.Asset{*asset}, nil
	}

	if id, convErr := strconv.ParseUint(fileID, 10, 64); convErr == nil {
		if asset, err := u.assetRepo.GetByID(proj.ID, uint(id)); err == nil {
			return []entity.Asset{*asset}, nil
		}
	}

	return nil, apperrors.New(apperrors.FileNotFound, fileID)
}

// Process parses and chunks the target asset set, persisting Chunk rows.
// Indexing new chunks is a separate operation on the retrieval side, but a
// do_reset request drops the project's existing vector collection here
// since the stale vectors would otherwise outlive the chunks they came from.
func (u *IngestionUsecase) Process(ctx context.Context, userID uint, projectCode int, req ProcessRequest) (*ProcessResult, error) {
	proj, err := u.projectRepo.GetByCode(userID, projectCode)
	if err != nil {
		return nil, err
	}

	targets, err := u.resolveTargets(proj, req.FileID)
	if err != nil {
		return nil, err
	}

	if req.DoReset {
		collection := vectorindex.CollectionName(u.cfg.EmbeddingModelSize, proj.ID)
		if err := u.index.DeleteCollection(ctx, collection); err != nil {
			return nil, err
		}
		if err := u.chunkRepo.DeleteByProject(proj.ID); err != nil {
			return nil, err
		}
	}

	method := req.ChunkingMethod
	if method == "" {
		method = chunker.MethodSemantic
	}

	opts := chunker.DefaultOptions()
	if req.ChunkSize > 0 {
		opts.ChunkSize = req.ChunkSize
		opts.MaxChunkSize = req.ChunkSize
	}
	if req.OverlapSize > 0 {
		opts.OverlapSize = req.OverlapSize
	}

	result := &ProcessResult{TotalFiles: len(targets)}

	for _, asset := range targets {
		path := u.storage.Path(proj.ID, asset.AssetName)
		pages := fileparser.New(path).Parse(path)
		if len(pages) == 0 {
			result.FailedFiles = append(result.FailedFiles, FailedFile{
				FileID: strconv.FormatUint(uint64(asset.ID), 10),
				Reason: "empty parse result",
			})
			continue
		}

		texts := make([]string, len(pages))
		for i, p := range pages {
			texts[i] = p.Text
		}

		chunks := chunker.Chunk(ctx, method, texts, pages[0].Metadata, opts, u.embedder)
		if len(chunks) == 0 {
			result.FailedFiles = append(result.FailedFiles, FailedFile{
				FileID: strconv.FormatUint(uint64(asset.ID), 10),
				Reason: "no chunks produced",
			})
			continue
		}

		rows := make([]entity.Chunk, len(chunks))
		for i, c := range chunks {
			rows[i] = entity.Chunk{
				ProjectID:     proj.ID,
				AssetID:       asset.ID,
				ChunkText:     c.Text,
				ChunkMetadata: metadataJSON(c.Metadata),
				ChunkOrder:    i + 1,
			}
		}

		if err := u.chunkRepo.CreateBatch(rows); err != nil {
			result.FailedFiles = append(result.FailedFiles, FailedFile{
				FileID: strconv.FormatUint(uint64(asset.ID), 10),
				Reason: err.Error(),
			})
			continue
		}

		result.InsertedChunks += len(rows)
		result.ProcessedFiles++
	}

	return result, nil
}

// AssetPath resolves the on-disk path for an asset, for handlers that need
// to re-read the raw file (e.g. FileContent).
func (u *IngestionUsecase) AssetPath(userID uint, projectCode int, assetID uint) (string, *entity.Asset, error) {
	proj, err := u.projectRepo.GetByCode(userID, projectCode)
	if err != nil {
		return "", nil, err
	}

	asset, err := u.assetRepo.GetByID(proj.ID, assetID)
	if err != nil {
		return "", nil, err
	}

	return u.storage.Path(proj.ID, asset.AssetName), asset, nil
}

// DeleteAsset removes the DB row, the filesystem blob, and (via the
// retrieval service hook) the asset's vectors by filter.
func (u *IngestionUsecase) DeleteAsset(ctx context.Context, userID uint, projectCode int, assetID uint, deleteVectors func(ctx context.Context, projectID, assetID uint) error) error {
	proj, err := u.projectRepo.GetByCode(userID, projectCode)
	if err != nil {
		return err
	}

	asset, err := u.assetRepo.GetByID(proj.ID, assetID)
	if err != nil {
		return err
	}

	if deleteVectors != nil {
		if err := deleteVectors(ctx, proj.ID, asset.ID); err != nil {
			apperrors.LogError(err, "delete asset: vector cleanup")
		}
	}

	if err := u.chunkRepo.DeleteByAsset(asset.ID); err != nil {
		return err
	}

	if err := u.storage.DeleteFile(proj.ID, asset.AssetName); err != nil {
		apperrors.LogError(err, "delete asset: blob cleanup")
	}

	return u.assetRepo.Delete(asset.ID)
}
