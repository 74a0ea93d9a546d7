package usecase_test

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/config"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"github.com/alpinesboltltd/boltz-rag/internal/provider"
	"github.com/alpinesboltltd/boltz-rag/internal/repository"
	"github.com/alpinesboltltd/boltz-rag/internal/templates"
	"github.com/alpinesboltltd/boltz-rag/internal/usecase"
)

func setupRetrievalTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.Project{}, &entity.Chunk{}, &entity.QueryLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestRetrievalUsecase(db *gorm.DB, embedder, generator provider.Provider, index *fakeIndex) *usecase.RetrievalUsecase {
	cfg := &config.Config{EmbeddingModelSize: 1536, PrimaryLang: "en", DefaultLang: "en"}
	return usecase.NewRetrievalUsecase(
		repository.NewProjectRepository(db),
		repository.NewChunkRepository(db),
		repository.NewQueryLogRepository(db),
		index,
		embedder,
		generator,
		templates.NewRegistry(cfg.PrimaryLang, cfg.DefaultLang),
		cfg,
	)
}

// TestIndexPushSurfacesProviderUnavailable is the scenario spec.md's
// testable-scenarios section names directly: with no embedding credential
// configured, a push must surface 503 NLP_SERVICE_UNAVAILABLE rather than a
// generic vector-db failure.
func TestIndexPushSurfacesProviderUnavailable(t *testing.T) {
	db := setupRetrievalTestDB(t)
	projectRepo := repository.NewProjectRepository(db)
	proj, _, err := projectRepo.GetOrCreate(1, 1)
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	chunkRepo := repository.NewChunkRepository(db)
	if err := chunkRepo.CreateBatch([]entity.Chunk{{ProjectID: proj.ID, AssetID: 1, ChunkText: "hello", ChunkOrder: 1}}); err != nil {
		t.Fatalf("seed chunk: %v", err)
	}

	ru := usecase.NewRetrievalUsecase(
		projectRepo,
		chunkRepo,
		repository.NewQueryLogRepository(db),
		&fakeIndex{},
		provider.NewUnavailableProvider("openai"),
		provider.NewUnavailableProvider("openai"),
		templates.NewRegistry("en", "en"),
		&config.Config{EmbeddingModelSize: 1536},
	)

	_, err = ru.IndexPush(context.Background(), 1, 1, false)
	if err == nil {
		t.Fatal("expected an error when the embedding provider is unavailable")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.NLPServiceUnavailable {
		t.Fatalf("expected NLP_SERVICE_UNAVAILABLE, got %v", err)
	}
	if appErr.Status != 503 {
		t.Fatalf("expected status 503, got %d", appErr.Status)
	}
}

func TestSearchSurfacesProviderUnavailable(t *testing.T) {
	db := setupRetrievalTestDB(t)
	ru := newTestRetrievalUsecase(db, provider.NewUnavailableProvider("openai"), provider.NewUnavailableProvider("openai"), &fakeIndex{})

	_, _, err := repository.NewProjectRepository(db).GetOrCreate(1, 1)
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}

	_, err = ru.Search(context.Background(), 1, 1, "a question", 5)
	if err == nil {
		t.Fatal("expected an error when the embedding provider is unavailable")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.NLPServiceUnavailable {
		t.Fatalf("expected NLP_SERVICE_UNAVAILABLE, got %v", err)
	}
}

func TestAnswerPropagatesSearchError(t *testing.T) {
	db := setupRetrievalTestDB(t)
	ru := newTestRetrievalUsecase(db, provider.NewUnavailableProvider("openai"), provider.NewUnavailableProvider("anthropic"), &fakeIndex{})

	_, _, err := repository.NewProjectRepository(db).GetOrCreate(1, 1)
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}

	_, err = ru.Answer(context.Background(), 1, 1, "a question", 5)
	if err == nil {
		t.Fatal("expected Answer to propagate the search failure")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.NLPServiceUnavailable {
		t.Fatalf("expected Answer to surface NLP_SERVICE_UNAVAILABLE from Search, got %v", err)
	}
}
