package handler

import (
	"net/http"
	"strconv"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/usecase"
	"github.com/gin-gonic/gin"
)

type NLPHandler struct {
	retrievalUsecase *usecase.RetrievalUsecase
}

func NewNLPHandler(retrievalUsecase *usecase.RetrievalUsecase) *NLPHandler {
	return &NLPHandler{retrievalUsecase: retrievalUsecase}
}

type indexPushBody struct {
	DoReset int `json:"do_reset"`
}

func (h *NLPHandler) IndexPush(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "index push")
		return
	}

	var body indexPushBody
	if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
		apperrors.HandleError(c, apperrors.NewValidationError("invalid request body"), "index push")
		return
	}

	result, err := h.retrievalUsecase.IndexPush(c.Request.Context(), userID, projectCode, body.DoReset == 1)
	if err != nil {
		apperrors.HandleError(c, err, "index push")
		return
	}

	apperrors.Success(c, http.StatusOK, "INDEX_PUSH_SUCCESS", gin.H{"inserted_vectors": result.InsertedVectors})
}

func (h *NLPHandler) IndexInfo(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "index info")
		return
	}

	info, err := h.retrievalUsecase.IndexInfo(c.Request.Context(), userID, projectCode)
	if err != nil {
		apperrors.HandleError(c, err, "index info")
		return
	}

	apperrors.Success(c, http.StatusOK, "ok", gin.H{
		"vectors_count":  info.VectorsCount,
		"points_count":   info.PointsCount,
		"segments_count": info.SegmentsCount,
		"status":         info.Status,
	})
}

type searchBody struct {
	Text  string `json:"text" binding:"required"`
	Limit int    `json:"limit"`
}

func (h *NLPHandler) Search(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "search")
		return
	}

	var body searchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("text is required"), "search")
		return
	}
	if body.Limit <= 0 {
		body.Limit = 5
	}

	results, err := h.retrievalUsecase.Search(c.Request.Context(), userID, projectCode, body.Text, body.Limit)
	if err != nil {
		apperrors.HandleError(c, err, "search")
		return
	}

	apperrors.Success(c, http.StatusOK, "ok", gin.H{"results": results})
}

func (h *NLPHandler) Answer(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "answer")
		return
	}

	var body searchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("text is required"), "answer")
		return
	}
	if body.Limit <= 0 {
		body.Limit = 5
	}

	result, err := h.retrievalUsecase.Answer(c.Request.Context(), userID, projectCode, body.Text, body.Limit)
	if err != nil {
		apperrors.HandleError(c, err, "answer")
		return
	}

	apperrors.Success(c, http.StatusOK, "ok", gin.H{
		"answer":            result.Answer,
		"full_prompt":       result.FullPrompt,
		"chat_history":      result.ChatHistory,
		"response_time_ms":  result.ResponseTimeMS,
	})
}
