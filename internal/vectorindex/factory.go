package vectorindex

import (
	"log"

	"github.com/alpinesboltltd/boltz-rag/internal/config"
	"gorm.io/gorm"
)

// New resolves VECTOR_DB_BACKEND into a concrete VectorIndex. Pinecone
// falls back to pgvector if the index host is not configured, logging a
// warning rather than leaving the service without a vector backend.
func New(cfg *config.Config, db *gorm.DB) VectorIndex {
	switch cfg.VectorDBBackend {
	case config.VectorDBPinecone:
		if cfg.PineconeAPIKey == "" || cfg.PineconeIndexHost == "" {
			log.Printf("vectorindex: pinecone backend requested but unconfigured, falling back to pgvector")
			return NewPgVectorIndex(db, cfg.VectorDBDistanceMethod, cfg.VectorDBPgvecIndexThreshold)
		}
		idx, err := NewPineconeIndex(cfg.PineconeAPIKey, cfg.PineconeIndexHost)
		if err != nil {
			log.Printf("vectorindex: pinecone client init failed (%v), falling back to pgvector", err)
			return NewPgVectorIndex(db, cfg.VectorDBDistanceMethod, cfg.VectorDBPgvecIndexThreshold)
		}
		return idx
	default:
		return NewPgVectorIndex(db, cfg.VectorDBDistanceMethod, cfg.VectorDBPgvecIndexThreshold)
	}
}
