package repository

import (
	"errors"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pqUniqueViolation = "23505"

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepositoryInterface {
	return &ProjectRepository{db: db}
}

// GetOrCreate creates a project for (userID, projectCode). If a concurrent
// writer wins the race on the (user_id, project_code) unique index, the
// insert fails with a pq unique-violation; the loser re-reads the row
// instead of failing, matching the race-condition handling required by the
// data model's uniqueness invariant.
func (r *ProjectRepository) GetOrCreate(userID uint, projectCode int) (*entity.Project, bool, error) {
	proj := &entity.Project{UserID: userID, ProjectCode: projectCode}

	err := r.db.Create(proj).Error
	if err == nil {
		return proj, true, nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		existing, getErr := r.GetByCode(userID, projectCode)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}

	return nil, false, apperrors.WrapDatabaseError(err, "create project")
}

func (r *ProjectRepository) GetByCode(userID uint, projectCode int) (*entity.Project, error) {
	var proj entity.Project
	err := r.db.Where("user_id = ? AND project_code = ?", userID, projectCode).First(&proj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ProjectNotFound, "")
		}
		return nil, apperrors.WrapDatabaseError(err, "get project by code")
	}
	return &proj, nil
}

func (r *ProjectRepository) ListByUser(userID uint, page, pageSize int) ([]entity.Project, int64, error) {
	var projects []entity.Project
	var total int64

	if err := r.db.Model(&entity.Project{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapDatabaseError(err, "count projects")
	}

	offset := (page - 1) * pageSize
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Offset(offset).Limit(pageSize).Find(&projects).Error; err != nil {
		return nil, 0, apperrors.WrapDatabaseError(err, "list projects")
	}

	return projects, total, nil
}

// Delete removes the project row and, via the ON DELETE CASCADE foreign
// keys on assets/chunks, every row that belongs to it.
func (r *ProjectRepository) Delete(projectID uint) error {
	if err := r.db.Delete(&entity.Project{}, projectID).Error; err != nil {
		return apperrors.WrapDatabaseError(err, "delete project")
	}
	return nil
}
