package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	alertH "github.com/inventorypulse/inventory-service/internal/alert/handler"
	"github.com/inventorypulse/inventory-service/internal/auth"
	importH "github.com/inventorypulse/inventory-service/internal/importer/handler"
	invH "github.com/inventorypulse/inventory-service/internal/inventory/handler"
	prodH "github.com/inventorypulse/inventory-service/internal/product/handler"
	userH "github.com/inventorypulse/inventory-service/internal/user/handler"
	"github.com/inventorypulse/inventory-service/pkg/logger"
	"github.com/inventorypulse/inventory-service/pkg/metrics"
	"github.com/inventorypulse/inventory-service/pkg/response"
)

type Handlers struct {
	Products     *prodH.ProductHandler
	Inventory    *invH.InventoryHandler
	Imports      *importH.ImportHandler
	Alerts       *alertH.AlertHandler
	Users        *userH.UserHandler
	TokenManager *auth.TokenManager
}

type Server struct {
	http   *http.Server
	logger logger.Logger
}

func New(addr string, h *Handlers, log logger.Logger) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		h.Users.RegisterPublic(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.TokenManager))

			h.Users.RegisterProtected(r)
			h.Products.Register(r)
			h.Inventory.Register(r)
			h.Imports.Register(r)
			h.Alerts.Register(r)
		})
	})

	return &Server{
		http: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: log,
	}
}

func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
