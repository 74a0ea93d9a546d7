package repository

import (
	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"gorm.io/gorm"
)

type ChunkRepository struct {
	db *gorm.DB
}

func NewChunkRepository(db *gorm.DB) ChunkRepositoryInterface {
	return &ChunkRepository{db: db}
}

func (r *ChunkRepository) CreateBatch(chunks []entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := r.db.Create(&chunks).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "create chunks")
	}
	return nil
}

// ListPageByProject returns one page of chunks ordered by id, the paged
// read the retrieval service's index-push walks in order.
func (r *ChunkRepository) ListPageByProject(projectID uint, offset, limit int) ([]entity.Chunk, error) {
	var chunks []entity.Chunk
	if err := r.db.Where("project_id = ?", projectID).Order("id asc").Offset(offset).Limit(limit).Find(&chunks).Error; err != nil {
		return nil, apperrors.WrapDatabaseError(err, "list chunks page")
	}
	return chunks, nil
}

func (r *ChunkRepository) CountByProject(projectID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&entity.Chunk{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return 0, apperrors.WrapDatabaseError(err, "count chunks")
	}
	return count, nil
}

func (r *ChunkRepository) DeleteByProject(projectID uint) error {
	if err := r.db.Where("project_id = ?", projectID).Delete(&entity.Chunk{}).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "delete chunks by project")
	}
	return nil
}

func (r *ChunkRepository) DeleteByAsset(assetID uint) error {
	if err := r.db.Where("asset_id = ?", assetID).Delete(&entity.Chunk{}).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "delete chunks by asset")
	}
	return nil
}
