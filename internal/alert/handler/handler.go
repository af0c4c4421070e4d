package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/internal/alert"
	"github.com/inventorypulse/inventory-service/internal/alert/dto"
	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/pkg/logger"
	"github.com/inventorypulse/inventory-service/pkg/response"
)

type AlertHandler struct {
	uc     alert.UseCase
	logger logger.Logger
}

func NewAlertHandler(uc alert.UseCase, log logger.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, logger: log}
}

func (h *AlertHandler) Register(r chi.Router) {
	r.Route("/alerts", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/{id}/seen", h.MarkSeen)
	})
}

func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.AlertFilters{
		Type:   r.URL.Query().Get("type"),
		Unseen: r.URL.Query().Get("unseen") == "true",
	}

	alerts, _, err := h.uc.ListAlerts(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list alerts", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to list alerts")
		return
	}
	if alerts == nil {
		alerts = []model.Alert{}
	}
	response.JSON(w, http.StatusOK, alerts)
}

func (h *AlertHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.uc.MarkSeen(r.Context(), id); err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			response.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("failed to mark alert seen", zap.String("id", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to mark alert seen")
		return
	}
	response.NoContent(w)
}
