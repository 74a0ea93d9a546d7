package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/alpinesboltltd/boltz-rag/internal/apperrors"
	"github.com/alpinesboltltd/boltz-rag/internal/chunker"
	"github.com/alpinesboltltd/boltz-rag/internal/fileparser"
	"github.com/alpinesboltltd/boltz-rag/internal/usecase"
	"github.com/gin-gonic/gin"
)

type DataHandler struct {
	ingestionUsecase *usecase.IngestionUsecase
	retrievalUsecase *usecase.RetrievalUsecase
}

func NewDataHandler(ingestionUsecase *usecase.IngestionUsecase, retrievalUsecase *usecase.RetrievalUsecase) *DataHandler {
	return &DataHandler{ingestionUsecase: ingestionUsecase, retrievalUsecase: retrievalUsecase}
}

func (h *DataHandler) Upload(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "upload")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("missing multipart field 'file'"), "upload")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.New(apperrors.FileUploadFailed, err.Error()), "upload")
		return
	}
	defer src.Close()

	result, err := h.ingestionUsecase.Upload(userID, projectCode, fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		apperrors.HandleError(c, err, "upload")
		return
	}

	apperrors.Success(c, http.StatusOK, "FILE_UPLOAD_SUCCESS", gin.H{"file_id": result.FileID})
}

type processRequestBody struct {
	FileID         string `json:"file_id"`
	ChunkSize      int    `json:"chunk_size"`
	OverlapSize    int    `json:"overlap_size"`
	DoReset        int    `json:"do_reset"`
	ChunkingMethod string `json:"chunking_method"`
}

func (h *DataHandler) Process(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "process")
		return
	}

	body := processRequestBody{ChunkSize: 100, OverlapSize: 20, ChunkingMethod: "semantic"}
	if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
		apperrors.HandleError(c, apperrors.NewValidationError("invalid request body"), "process")
		return
	}

	result, err := h.ingestionUsecase.Process(c.Request.Context(), userID, projectCode, usecase.ProcessRequest{
		ChunkSize:      body.ChunkSize,
		OverlapSize:    body.OverlapSize,
		DoReset:        body.DoReset == 1,
		FileID:         body.FileID,
		ChunkingMethod: chunker.Method(body.ChunkingMethod),
	})
	if err != nil {
		apperrors.HandleError(c, err, "process")
		return
	}

	resp := gin.H{
		"signal":          "PROCESSING_SUCCESS",
		"inserted_chunks": result.InsertedChunks,
		"processed_files": result.ProcessedFiles,
		"total_files":     result.TotalFiles,
		"failed_files":    result.FailedFiles,
	}
	if len(result.FailedFiles) > 0 {
		resp["warning"] = "some files failed to process"
	}

	apperrors.Success(c, http.StatusOK, "processed", resp)
}

// FileContent re-runs the file parser over the stored blob and joins page
// texts with newlines.
func (h *DataHandler) FileContent(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "file content")
		return
	}
	assetID, err := strconv.ParseUint(c.Param("asset_id"), 10, 64)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("asset_id must be an integer"), "file content")
		return
	}

	path, asset, err := h.ingestionUsecase.AssetPath(userID, projectCode, uint(assetID))
	if err != nil {
		apperrors.HandleError(c, err, "file content")
		return
	}

	pages := fileparser.New(path).Parse(path)
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}

	apperrors.Success(c, http.StatusOK, "ok", gin.H{
		"asset_id": asset.ID,
		"content":  strings.Join(texts, "\n"),
	})
}

func (h *DataHandler) DeleteAsset(c *gin.Context) {
	userID := c.GetUint("userID")

	projectCode, err := strconv.Atoi(c.Param("project_code"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("project_code must be an integer"), "delete asset")
		return
	}
	assetID, err := strconv.ParseUint(c.Param("asset_id"), 10, 64)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewValidationError("asset_id must be an integer"), "delete asset")
		return
	}

	err = h.ingestionUsecase.DeleteAsset(c.Request.Context(), userID, projectCode, uint(assetID), h.retrievalUsecase.DeleteAssetVectors)
	if err != nil {
		apperrors.HandleError(c, err, "delete asset")
		return
	}

	apperrors.Success(c, http.StatusOK, "asset deleted", nil)
}
