package handler

import (
	"net/http"
	"strconv"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/usecase"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectUsecase *usecase.ProjectUsecase
}

func NewProjectHandler(projectUsecase *usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase}
}

func (h *ProjectHandler) List(c *gin.Context) {
	userID := c.GetUint("userID")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	summaries, total, err := h.projectUsecase.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err, "list projects")
		return
	}

	items := make([]gin.H, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, gin.H{
			"project_id":   s.Project.ID,
			"project_uuid": s.Project.UUID,
			"project_code": s.Project.ProjectCode,
			"created_at":   s.Project.CreatedAt,
			"updated_at":   s.Project.UpdatedAt,
			"asset_count":  s.AssetCount,
			"chunk_count":  s.ChunkCount,
			"status":       s.Status,
		})
	}

	apperrors.Success(c, http.StatusOK, "ok", gin.H{"items": items, "total": total, "page": page, "page_size": pageSize})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "create project")
		return
	}

	proj, err := h.projectUsecase.Create(userID, projectCode)
	if err != nil {
		apperrors.HandleError(c, err, "create project")
		return
	}

	apperrors.Success(c, http.StatusCreated, "project created", gin.H{
		"project_id":   proj.ID,
		"project_uuid": proj.UUID,
		"project_code": proj.ProjectCode,
	})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "get project")
		return
	}

	details, err := h.projectUsecase.Details(c.Request.Context(), userID, projectCode)
	if err != nil {
		apperrors.HandleError(c, err, "get project")
		return
	}

	apperrors.Success(c, http.StatusOK, "ok", gin.H{
		"project_id":    details.Project.ID,
		"project_uuid":  details.Project.UUID,
		"project_code":  details.Project.ProjectCode,
		"created_at":    details.Project.CreatedAt,
		"updated_at":    details.Project.UpdatedAt,
		"asset_count":   details.AssetCount,
		"chunk_count":   details.ChunkCount,
		"status":        details.Status,
		"vector_count":  details.VectorCount,
		"points_count":  details.PointsCount,
		"is_indexed":    details.IsIndexed,
		"assets":        details.Assets,
	})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "delete project")
		return
	}

	if err := h.projectUsecase.Delete(c.Request.Context(), userID, projectCode); err != nil {
		apperrors.HandleError(c, err, "delete project")
		return
	}

	apperrors.Success(c, http.StatusOK, "project deleted", nil)
}
