package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alpinesboltltd/boltz-rag/internal/config"
	"github.com/alpinesboltltd/boltz-rag/internal/handler"
	"github.com/alpinesboltltd/boltz-rag/internal/middleware"
	"github.com/alpinesboltltd/boltz-rag/internal/provider"
	"github.com/alpinesboltltd/boltz-rag/internal/repository"
	"github.com/alpinesboltltd/boltz-rag/internal/storage"
	"github.com/alpinesboltltd/boltz-rag/internal/templates"
	"github.com/alpinesboltltd/boltz-rag/internal/usecase"
	"github.com/alpinesboltltd/boltz-rag/internal/vectorindex"
	"github.com/gin-gonic/gin"
)

func Run(cfg *config.Config) {
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database handle:", err)
	}
	defer sqlDB.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	chunkRepo := repository.NewChunkRepository(db)
	queryLogRepo := repository.NewQueryLogRepository(db)

	// Ambient stack: blob storage, vector index, prompt templates. Embedding
	// and generation backends resolve independently per cfg.EmbeddingBackend
	// / cfg.GenerationBackend — a deployment can mix providers freely.
	storageManager, err := storage.NewManager(cfg.FileStorageRoot)
	if err != nil {
		log.Fatal("Failed to initialize storage manager:", err)
	}
	index := vectorindex.New(cfg, db)
	embedder := provider.NewEmbeddingProvider(cfg)
	generator := provider.NewGenerationProvider(cfg)
	templateRegistry := templates.NewRegistry(cfg.PrimaryLang, cfg.DefaultLang)

	// Usecases
	userUsecase := usecase.NewUserUsecase(userRepo)
	projectUsecase := usecase.NewProjectUsecase(projectRepo, assetRepo, chunkRepo, index, storageManager, cfg)
	ingestionUsecase := usecase.NewIngestionUsecase(projectRepo, assetRepo, chunkRepo, storageManager, embedder, index, cfg)
	retrievalUsecase := usecase.NewRetrievalUsecase(projectRepo, chunkRepo, queryLogRepo, index, embedder, generator, templateRegistry, cfg)

	// Handlers
	authHandler := handler.NewAuthHandler(userUsecase, []byte(cfg.SecretKey), cfg.AccessTokenExpireMinutes)
	projectHandler := handler.NewProjectHandler(projectUsecase)
	dataHandler := handler.NewDataHandler(ingestionUsecase, retrievalUsecase)
	nlpHandler := handler.NewNLPHandler(retrievalUsecase)

	r := gin.Default()

	shuttingDown := false
	r.Use(func(c *gin.Context) {
		if shuttingDown {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Service Unavailable",
				"message": "The server is currently shutting down. Please try again later.",
				"code":    503,
			})
			c.Abort()
			return
		}
		c.Next()
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("/")
		protected.Use(middleware.AuthMiddleware([]byte(cfg.SecretKey)))
		protected.GET("/me", authHandler.Me)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware([]byte(cfg.SecretKey)))
	{
		data := api.Group("/data")
		{
			data.GET("/projects", projectHandler.List)
			data.POST("/projects/create/:project_code", projectHandler.Create)
			data.GET("/projects/:project_code", projectHandler.Get)
			data.DELETE("/projects/:project_code", projectHandler.Delete)

			data.POST("/upload/:project_code", dataHandler.Upload)
			data.POST("/process/:project_code", dataHandler.Process)
			data.GET("/file/content/:project_code/:asset_id", dataHandler.FileContent)
			data.DELETE("/asset/:project_code/:asset_id", dataHandler.DeleteAsset)
		}

		nlp := api.Group("/nlp")
		{
			nlp.POST("/index/push/:project_code", nlpHandler.IndexPush)
			nlp.GET("/index/info/:project_code", nlpHandler.IndexInfo)
			nlp.POST("/index/search/:project_code", nlpHandler.Search)
			nlp.POST("/index/answer/:project_code", nlpHandler.Answer)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	shuttingDown = true

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
