package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/internal/product"
	"github.com/inventorypulse/inventory-service/internal/product/dto"
	"github.com/inventorypulse/inventory-service/pkg/logger"
	"github.com/inventorypulse/inventory-service/pkg/response"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.Logger
}

func NewProductHandler(uc product.UseCase, log logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

func (h *ProductHandler) Register(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/search", h.Search)
		r.Get("/low-stock", h.LowStock)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.ProductFilters{}
	if v := r.URL.Query().Get("page"); v != "" {
		filters.Page, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("pageSize"); v != "" {
		filters.PageSize, _ = strconv.Atoi(v)
	}

	products, _, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, _, err := h.uc.ListProducts(r.Context(), &dto.ProductFilters{
		SearchQuery: r.URL.Query().Get("q"),
	})
	if err != nil {
		h.logger.Error("product search failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "search failed")
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.ListLowStock(r.Context())
	if err != nil {
		h.logger.Error("failed to list low-stock products", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to list low-stock products")
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			response.Error(w, http.StatusNotFound, err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.SKU == "" || input.Title == "" {
		response.Error(w, http.StatusBadRequest, "sku and title are required")
		return
	}
	if input.Stock < 0 || input.ReorderThreshold < 0 {
		response.Error(w, http.StatusBadRequest, "stock and reorderThreshold must not be negative")
		return
	}

	p, err := h.uc.CreateProduct(r.Context(), &input)
	if err != nil {
		if errors.Is(err, product.ErrSKUExists) {
			response.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("failed to create product", zap.String("sku", input.SKU), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	response.JSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.ID = chi.URLParam(r, "id")
	if input.ReorderThreshold < 0 {
		response.Error(w, http.StatusBadRequest, "reorderThreshold must not be negative")
		return
	}

	p, err := h.uc.UpdateProduct(r.Context(), &input)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			response.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("failed to update product", zap.String("id", input.ID), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.uc.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			response.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("failed to delete product", zap.String("id", id), zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	response.NoContent(w)
}
