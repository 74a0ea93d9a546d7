package usecase

import (
	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"github.com/alpinesboltltd/boltz-rag/internal/repository"
	"github.com/alpinesboltltd/boltz-rag/internal/utils"
)

type UserUsecase struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserUsecase(userRepo repository.UserRepositoryInterface) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

func (u *UserUsecase) SignupWithEmail(req entity.SignupRequest) (*entity.Users, error) {
	if err := utils.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	if _, err := u.userRepo.GetUserByEmail(req.Email); err == nil {
		return nil, apperrors.New(apperrors.AuthUserAlreadyExists, "")
	}

	hash, err := utils.CreateHash([]byte(req.Password))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password")
	}

	return u.userRepo.CreateUser(req.Email, hash)
}

func (u *UserUsecase) LoginWithEmail(req entity.LoginRequest) (*entity.Users, error) {
	if err := utils.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.Password, "Password"); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.New(apperrors.AuthInactiveUser, "")
	}

	if err := utils.ValidateHash([]byte(req.Password), user.PasswordHash); err != nil {
		return nil, apperrors.New(apperrors.AuthInvalidCredentials, "")
	}

	return user, nil
}

func (u *UserUsecase) GetByID(id uint) (*entity.Users, error) {
	return u.userRepo.GetUserByID(id)
}
