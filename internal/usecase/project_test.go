package usecase_test

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/config"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"github.com/alpinesboltltd/boltz-rag/internal/repository"
	"github.com/alpinesboltltd/boltz-rag/internal/storage"
	"github.com/alpinesboltltd/boltz-rag/internal/usecase"
	"github.com/alpinesboltltd/boltz-rag/internal/vectorindex"
)

func setupProjectTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.Project{}, &entity.Asset{}, &entity.Chunk{}); err != nil {
		t.Fatalf("failed migrate: %v", err)
	}
	return db
}

// fakeIndex is a no-op VectorIndex stand-in; project usecase tests only
// exercise existence/info bookkeeping, never the real backend wiring.
type fakeIndex struct{ exists bool }

func (f *fakeIndex) CreateCollection(ctx context.Context, name string, embeddingSize int, reset bool) (bool, error) {
	f.exists = true
	return true, nil
}
func (f *fakeIndex) CollectionExists(ctx context.Context, name string) (bool, error) {
	return f.exists, nil
}
func (f *fakeIndex) CollectionInfo(ctx context.Context, name string) (vectorindex.CollectionInfo, error) {
	return vectorindex.CollectionInfo{Status: "ready"}, nil
}
func (f *fakeIndex) DeleteCollection(ctx context.Context, name string) error {
	f.exists = false
	return nil
}
func (f *fakeIndex) InsertMany(ctx context.Context, name string, texts []string, vectors [][]float32, metadata []map[string]any, recordIDs []string, batchSize int) error {
	return nil
}
func (f *fakeIndex) SearchByVector(ctx context.Context, name string, vector []float32, limit int) ([]vectorindex.SearchResult, error) {
	return nil, nil
}
func (f *fakeIndex) DeleteByIDs(ctx context.Context, name string, ids []string) error { return nil }
func (f *fakeIndex) DeleteByFilter(ctx context.Context, name string, filter map[string]string) error {
	return nil
}

func newTestProjectUsecase(t *testing.T) *usecase.ProjectUsecase {
	db := setupProjectTestDB(t)
	storageManager, err := storage.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("storage manager: %v", err)
	}
	cfg := &config.Config{EmbeddingModelSize: 1536}
	return usecase.NewProjectUsecase(
		repository.NewProjectRepository(db),
		repository.NewAssetRepository(db),
		repository.NewChunkRepository(db),
		&fakeIndex{},
		storageManager,
		cfg,
	)
}

// fakeProjectRepo simulates the race GetOrCreate absorbs: the real
// implementation only distinguishes "already exists" via a Postgres-specific
// unique-violation error code, which sqlite doesn't reproduce, so the
// already-exists branch of ProjectUsecase.Create is tested against a fake
// repository instead of a real sqlite-backed one.
type fakeProjectRepo struct {
	existing *entity.Project
}

func (f *fakeProjectRepo) GetOrCreate(userID uint, projectCode int) (*entity.Project, bool, error) {
	return f.existing, false, nil
}
func (f *fakeProjectRepo) GetByCode(userID uint, projectCode int) (*entity.Project, error) {
	return f.existing, nil
}
func (f *fakeProjectRepo) ListByUser(userID uint, page, pageSize int) ([]entity.Project, int64, error) {
	return []entity.Project{*f.existing}, 1, nil
}
func (f *fakeProjectRepo) Delete(projectID uint) error { return nil }

func TestProjectCreateAlreadyExists(t *testing.T) {
	db := setupProjectTestDB(t)
	storageManager, err := storage.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("storage manager: %v", err)
	}
	cfg := &config.Config{EmbeddingModelSize: 1536}

	pu := usecase.NewProjectUsecase(
		&fakeProjectRepo{existing: &entity.Project{ID: 1, UserID: 1, ProjectCode: 42}},
		repository.NewAssetRepository(db),
		repository.NewChunkRepository(db),
		&fakeIndex{},
		storageManager,
		cfg,
	)

	_, err = pu.Create(1, 42)
	if err == nil {
		t.Fatal("expected PROJECT_ALREADY_EXISTS error when GetOrCreate reports created=false")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.ProjectAlreadyExists {
		t.Fatalf("expected ProjectAlreadyExists, got %v", err)
	}
	data, ok := appErr.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected structured Data on ProjectAlreadyExists, got %v", appErr.Data)
	}
	if data["project"] != uint(1) {
		t.Fatalf("expected error.details.project to be the existing project's id, got %v", data["project"])
	}
}

func TestProjectCrossTenantNotFound(t *testing.T) {
	pu := newTestProjectUsecase(t)

	if _, err := pu.Create(1, 7); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := pu.Get(2, 7)
	if err == nil {
		t.Fatal("expected PROJECT_NOT_FOUND for cross-tenant access")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.ProjectNotFound {
		t.Fatalf("expected ProjectNotFound, got %v", err)
	}
}

func TestProjectListPagination(t *testing.T) {
	pu := newTestProjectUsecase(t)

	for i := 1; i <= 3; i++ {
		if _, err := pu.Create(9, i); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	summaries, total, err := pu.List(context.Background(), 9, 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total=3, got %d", total)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected page size 2, got %d", len(summaries))
	}
}

func TestProjectDeleteCascades(t *testing.T) {
	pu := newTestProjectUsecase(t)

	proj, err := pu.Create(3, 11)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := pu.Delete(context.Background(), 3, 11); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := pu.Get(3, 11); err == nil {
		t.Fatalf("expected project %d to be gone after delete", proj.ID)
	}
}
