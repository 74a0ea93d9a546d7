package repository

import (
	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"gorm.io/gorm"
)

type QueryLogRepository struct {
	db *gorm.DB
}

func NewQueryLogRepository(db *gorm.DB) QueryLogRepositoryInterface {
	return &QueryLogRepository{db: db}
}

func (r *QueryLogRepository) Create(log *entity.QueryLog) error {
	if err := r.db.Create(log).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "create query log")
	}
	return nil
}
