package usecase

import (
	"context"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/config"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"github.com/alpinesboltltd/boltz-rag/internal/repository"
	"github.com/alpinesboltltd/boltz-rag/internal/storage"
	"github.com/alpinesboltltd/boltz-rag/internal/vectorindex"
)

type ProjectSummary struct {
	Project    entity.Project
	AssetCount int64
	ChunkCount int64
	Status     string
}

type ProjectDetails struct {
	ProjectSummary
	VectorCount int64
	PointsCount int64
	IsIndexed   bool
	Assets      []entity.Asset
}

// ProjectUsecase implements the project service exactly per spec.md §4.7:
// create/get/list/details/delete over a tenant's projects, enriched with
// vector-index state.
type ProjectUsecase struct {
	projectRepo repository.ProjectRepositoryInterface
	assetRepo   repository.AssetRepositoryInterface
	chunkRepo   repository.ChunkRepositoryInterface
	index       vectorindex.VectorIndex
	storage     *storage.Manager
	cfg         *config.Config
}

func NewProjectUsecase(
	projectRepo repository.ProjectRepositoryInterface,
	assetRepo repository.AssetRepositoryInterface,
	chunkRepo repository.ChunkRepositoryInterface,
	index vectorindex.VectorIndex,
	storageManager *storage.Manager,
	cfg *config.Config,
) *ProjectUsecase {
	return &ProjectUsecase{
		projectRepo: projectRepo,
		assetRepo:   assetRepo,
		chunkRepo:   chunkRepo,
		index:       index,
		storage:     storageManager,
		cfg:         cfg,
	}
}

func (u *ProjectUsecase) collectionName(projectID uint) string {
	return vectorindex.CollectionName(u.cfg.EmbeddingModelSize, projectID)
}

// Create creates a project for (userID, projectCode), or returns
// ALREADY_EXISTS with the existing project embedded when the pair is
// already taken — including the race the repository's GetOrCreate absorbs.
func (u *ProjectUsecase) Create(userID uint, projectCode int) (*entity.Project, error) {
	proj, created, err := u.projectRepo.GetOrCreate(userID, projectCode)
	if err != nil {
		return nil, err
	}
	if !created {
		err := apperrors.New(apperrors.ProjectAlreadyExists, "").WithData(map[string]any{"project": proj.ID})
		return proj, err
	}
	return proj, nil
}

// Get returns a project, collapsing not-found and cross-tenant access into
// a single PROJECT_NOT_FOUND to avoid leaking existence across tenants.
func (u *ProjectUsecase) Get(userID uint, projectCode int) (*entity.Project, error) {
	return u.projectRepo.GetByCode(userID, projectCode)
}

func (u *ProjectUsecase) List(ctx context.Context, userID uint, page, pageSize int) ([]ProjectSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > 100 {
		pageSize = 100
	}

	projects, total, err := u.projectRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summary, err := u.summarize(ctx, p)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, total, nil
}

func (u *ProjectUsecase) summarize(ctx context.Context, p entity.Project) (ProjectSummary, error) {
	assetCount, err := u.assetRepo.CountByProject(p.ID)
	if err != nil {
		return ProjectSummary{}, err
	}
	chunkCount, err := u.chunkRepo.CountByProject(p.ID)
	if err != nil {
		return ProjectSummary{}, err
	}

	status := "pending_indexing"
	if exists, err := u.index.CollectionExists(ctx, u.collectionName(p.ID)); err == nil && exists {
		status = "active"
	}

	return ProjectSummary{Project: p, AssetCount: assetCount, ChunkCount: chunkCount, Status: status}, nil
}

func (u *ProjectUsecase) Details(ctx context.Context, userID uint, projectCode int) (*ProjectDetails, error) {
	proj, err := u.Get(userID, projectCode)
	if err != nil {
		return nil, err
	}

	summary, err := u.summarize(ctx, *proj)
	if err != nil {
		return nil, err
	}

	assets, err := u.assetRepo.ListByProject(proj.ID)
	if err != nil {
		return nil, err
	}

	details := &ProjectDetails{ProjectSummary: summary, Assets: assets}

	collection := u.collectionName(proj.ID)
	if info, err := u.index.CollectionInfo(ctx, collection); err == nil {
		details.VectorCount = info.VectorsCount
		details.PointsCount = info.PointsCount
		details.IsIndexed = info.VectorsCount > 0
	}

	return details, nil
}

// Delete drops the vector collection (best-effort) and the uploaded blobs,
// then cascades the database delete.
func (u *ProjectUsecase) Delete(ctx context.Context, userID uint, projectCode int) error {
	proj, err := u.Get(userID, projectCode)
	if err != nil {
		return err
	}

	if err := u.index.DeleteCollection(ctx, u.collectionName(proj.ID)); err != nil {
		apperrors.LogError(err, "project delete: drop vector collection")
	}
	if err := u.storage.DeleteProject(proj.ID); err != nil {
		apperrors.LogError(err, "project delete: remove blob directory")
	}

	return u.projectRepo.Delete(proj.ID)
}
