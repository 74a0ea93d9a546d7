package repository

import "github.com/alpinesboltltd/boltz-rag/internal/entity"

type UserRepositoryInterface interface {
	CreateUser(email, passwordHash string) (*entity.Users, error)
	GetUserByEmail(email string) (*entity.Users, error)
	GetUserByID(id uint) (*entity.Users, error)
}

type ProjectRepositoryInterface interface {
	GetOrCreate(userID uint, projectCode int) (proj *entity.Project, created bool, err error)
	GetByCode(userID uint, projectCode int) (*entity.Project, error)
	ListByUser(userID uint, page, pageSize int) ([]entity.Project, int64, error)
	Delete(projectID uint) error
}

type AssetRepositoryInterface interface {
	Create(asset *entity.Asset) error
	GetByID(projectID, assetID uint) (*entity.Asset, error)
	GetByName(projectID uint, assetName string) (*entity.Asset, error)
	ListByProject(projectID uint) ([]entity.Asset, error)
	CountByProject(projectID uint) (int64, error)
	Delete(assetID uint) error
}

type ChunkRepositoryInterface interface {
	CreateBatch(chunks []entity.Chunk) error
	ListPageByProject(projectID uint, offset, limit int) ([]entity.Chunk, error)
	CountByProject(projectID uint) (int64, error)
	DeleteByProject(projectID uint) error
	DeleteByAsset(assetID uint) error
}

type QueryLogRepositoryInterface interface {
	Create(log *entity.QueryLog) error
}
