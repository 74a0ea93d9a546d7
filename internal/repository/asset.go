package repository

import (
	"errors"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepositoryInterface {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(asset *entity.Asset) error {
	if err := r.db.Create(asset).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "create asset")
	}
	return nil
}

func (r *AssetRepository) GetByID(projectID, assetID uint) (*entity.Asset, error) {
	var asset entity.Asset
	err := r.db.Where("project_id = ? AND id = ?", projectID, assetID).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.FileNotFound, "")
		}
		return nil, apperrors.WrapDatabaseError(err, "get asset by id")
	}
	return &asset, nil
}

func (r *AssetRepository) GetByName(projectID uint, assetName string) (*entity.Asset, error) {
	var asset entity.Asset
	err := r.db.Where("project_id = ? AND asset_name = ?", projectID, assetName).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.FileNotFound, "")
		}
		return nil, apperrors.WrapDatabaseError(err, "get asset by name")
	}
	return &asset, nil
}

func (r *AssetRepository) ListByProject(projectID uint) ([]entity.Asset, error) {
	var assets []entity.Asset
	if err := r.db.Where("project_id = ?", projectID).Order("created_at asc").Find(&assets).Error; err != nil {
		return nil, apperrors.WrapDatabaseError(err, "list assets")
	}
	return assets, nil
}

func (r *AssetRepository) CountByProject(projectID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&entity.Asset{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return 0, apperrors.WrapDatabaseError(err, "count assets")
	}
	return count, nil
}

func (r *AssetRepository) Delete(assetID uint) error {
	if err := r.db.Delete(&entity.Asset{}, assetID).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "delete asset")
	}
	return nil
}
