package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/internal/auth"
	"github.com/inventorypulse/inventory-service/internal/inventory"
	"github.com/inventorypulse/inventory-service/internal/inventory/dto"
	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/pkg/logger"
	"github.com/inventorypulse/inventory-service/pkg/response"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.Logger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: log}
}

func (h *InventoryHandler) Register(r chi.Router) {
	r.Route("/products/{id}/transactions", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Adjust)
	})
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.TransactionFilters{
		Reason: r.URL.Query().Get("reason"),
	}
	if v := r.URL.Query().Get("page"); v != "" {
		filters.Page, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("pageSize"); v != "" {
		filters.PageSize, _ = strconv.Atoi(v)
	}

	txns, _, err := h.uc.ListTransactions(r.Context(), chi.URLParam(r, "id"), filters)
	if err != nil {
		h.logger.Error("failed to list transactions", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if txns == nil {
		txns = []model.InventoryTransaction{}
	}
	response.JSON(w, http.StatusOK, txns)
}

func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var input dto.AdjustStockInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.ProductID = chi.URLParam(r, "id")
	input.Actor = auth.ActorName(r.Context())

	if input.Delta == 0 {
		response.Error(w, http.StatusBadRequest, "delta must be non-zero")
		return
	}

	txn, err := h.uc.AdjustStock(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrProductNotFound):
			response.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, inventory.ErrInsufficientStock):
			response.Error(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("stock adjustment failed",
				zap.String("productId", input.ProductID), zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "stock adjustment failed")
		}
		return
	}
	response.JSON(w, http.StatusCreated, txn)
}
