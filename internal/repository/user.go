package repository

import (
	"errors"
	"strings"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepositoryInterface {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(email, passwordHash string) (*entity.Users, error) {
	user := &entity.Users{
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, apperrors.WrapDatabaseError(err, "create user")
	}

	return user, nil
}

func (r *UserRepository) GetUserByEmail(email string) (*entity.Users, error) {
	var user entity.Users
	if err := r.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.AuthUserNotFound, "")
		}
		return nil, apperrors.WrapDatabaseError(err, "get user by email")
	}
	return &user, nil
}

func (r *UserRepository) GetUserByID(id uint) (*entity.Users, error) {
	var user entity.Users
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.AuthUserNotFound, "")
		}
		return nil, apperrors.WrapDatabaseError(err, "get user by id")
	}
	return &user, nil
}
