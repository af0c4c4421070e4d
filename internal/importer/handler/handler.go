package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/internal/auth"
	"github.com/inventorypulse/inventory-service/internal/importer"
	"github.com/inventorypulse/inventory-service/internal/importer/dto"
	"github.com/inventorypulse/inventory-service/pkg/logger"
	"github.com/inventorypulse/inventory-service/pkg/response"
)

type ImportHandler struct {
	uc          importer.UseCase
	maxFileSize int64
	logger      logger.Logger
}

func NewImportHandler(uc importer.UseCase, maxFileSize int64, log logger.Logger) *ImportHandler {
	return &ImportHandler{uc: uc, maxFileSize: maxFileSize, logger: log}
}

func (h *ImportHandler) Register(r chi.Router) {
	r.Post("/imports/preview", h.Preview)
	r.Post("/imports/commit", h.Commit)
	r.Delete("/imports/{batchID}", h.Discard)
}

func (h *ImportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		response.Error(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	batch, err := h.uc.Preview(r.Context(), header.Filename, raw, auth.ActorName(r.Context()))
	if err != nil {
		var schemaErr *importer.SchemaError
		if errors.As(err, &schemaErr) {
			response.Error(w, http.StatusBadRequest, schemaErr.Error())
			return
		}
		h.logger.Error("preview failed", zap.String("file", header.Filename), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "preview failed")
		return
	}

	response.JSON(w, http.StatusOK, dto.PreviewFromBatch(batch))
}

func (h *ImportHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req dto.CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BatchID == "" || req.FileHash == "" {
		response.Error(w, http.StatusBadRequest, "batchId and fileHash are required")
		return
	}

	result, err := h.uc.Commit(r.Context(), req.BatchID, req.FileHash, auth.ActorName(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrBatchNotFound):
			response.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, importer.ErrStaleBatch):
			response.Error(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("commit failed", zap.String("batch_id", req.BatchID), zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "commit failed; no changes were applied")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *ImportHandler) Discard(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	if err := h.uc.Discard(r.Context(), batchID); err != nil {
		h.logger.Error("discard failed", zap.String("batch_id", batchID), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "discard failed")
		return
	}
	response.NoContent(w)
}
