package handler

import (
	"net/http"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/entity"
	"github.com/alpinesboltltd/boltz-rag/internal/middleware"
	"github.com/alpinesboltltd/boltz-rag/internal/usecase"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userUsecase              *usecase.UserUsecase
	jwtSecret                []byte
	accessTokenExpireMinutes int
}

func NewAuthHandler(userUsecase *usecase.UserUsecase, jwtSecret []byte, accessTokenExpireMinutes int) *AuthHandler {
	return &AuthHandler{
		userUsecase:              userUsecase,
		jwtSecret:                jwtSecret,
		accessTokenExpireMinutes: accessTokenExpireMinutes,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("invalid request body"), "register - bind json")
		return
	}

	user, err := h.userUsecase.SignupWithEmail(req)
	if err != nil {
		apperrors.HandleError(c, err, "register")
		return
	}

	apperrors.Success(c, http.StatusCreated, "account created", gin.H{
		"user_id":   user.ID,
		"email":     user.Email,
		"is_active": user.IsActive,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	req := entity.LoginRequest{
		Email:    c.PostForm("username"),
		Password: c.PostForm("password"),
	}
	if req.Email == "" || req.Password == "" {
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.NewValidationError("invalid request body"), "login - bind")
			return
		}
	}

	user, err := h.userUsecase.LoginWithEmail(req)
	if err != nil {
		apperrors.HandleError(c, err, "login")
		return
	}

	token, err := middleware.GenerateToken(*user, h.jwtSecret, h.accessTokenExpireMinutes)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewInternalError("failed to issue token"), "login - generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"email":        user.Email,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint("userID")

	user, err := h.userUsecase.GetByID(userID)
	if err != nil {
		apperrors.HandleError(c, err, "me")
		return
	}

	apperrors.Success(c, http.StatusOK, "ok", gin.H{
		"user_id":   user.ID,
		"email":     user.Email,
		"is_active": user.IsActive,
	})
}
