package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alpinesboltltd/boltz-rag/internal/config"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"github.com/alpinesboltltd/boltz-rag/internal/handler"
	"github.com/alpinesboltltd/boltz-rag/internal/repository"
	"github.com/alpinesboltltd/boltz-rag/internal/storage"
	"github.com/alpinesboltltd/boltz-rag/internal/usecase"
	"github.com/alpinesboltltd/boltz-rag/internal/vectorindex"
	"github.com/gin-gonic/gin"
)

type noopIndex struct{}

func (noopIndex) CreateCollection(ctx context.Context, name string, embeddingSize int, reset bool) (bool, error) {
	return true, nil
}
func (noopIndex) CollectionExists(ctx context.Context, name string) (bool, error) { return false, nil }
func (noopIndex) CollectionInfo(ctx context.Context, name string) (vectorindex.CollectionInfo, error) {
	return vectorindex.CollectionInfo{}, nil
}
func (noopIndex) DeleteCollection(ctx context.Context, name string) error { return nil }
func (noopIndex) InsertMany(ctx context.Context, name string, texts []string, vectors [][]float32, metadata []map[string]any, recordIDs []string, batchSize int) error {
	return nil
}
func (noopIndex) SearchByVector(ctx context.Context, name string, vector []float32, limit int) ([]vectorindex.SearchResult, error) {
	return nil, nil
}
func (noopIndex) DeleteByIDs(ctx context.Context, name string, ids []string) error { return nil }
func (noopIndex) DeleteByFilter(ctx context.Context, name string, filter map[string]string) error {
	return nil
}

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.Project{}, &entity.Asset{}, &entity.Chunk{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	storageManager, err := storage.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("storage manager: %v", err)
	}

	cfg := &config.Config{EmbeddingModelSize: 1536}
	projectUsecase := usecase.NewProjectUsecase(
		repository.NewProjectRepository(db),
		repository.NewAssetRepository(db),
		repository.NewChunkRepository(db),
		noopIndex{},
		storageManager,
		cfg,
	)
	projectHandler := handler.NewProjectHandler(projectUsecase)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Next()
	})
	r.POST("/api/v1/data/projects/create/:project_code", projectHandler.Create)
	r.GET("/api/v1/data/projects/:project_code", projectHandler.Get)
	r.GET("/api/v1/data/projects", projectHandler.List)
	return r
}

func TestCreateProjectHandler(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/data/projects/create/100", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
}

func TestCreateProjectHandlerDuplicateConflicts(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/data/projects/create/200", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected first create to succeed, got %d", w.Code)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/data/projects/create/200", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	if w2.Code == http.StatusCreated {
		t.Fatalf("expected duplicate create to fail, got 201 again")
	}
}

func TestGetProjectHandlerNotFound(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/data/projects/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code == http.StatusOK {
		t.Fatalf("expected a non-200 status for missing project, got %d", w.Code)
	}
}
