package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/canteen/internal/middleware"
	"github.com/Lixing-Zhang/canteen/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies wires the services the router serves
type Dependencies struct {
	Menu   *service.MenuService
	Orders *service.OrderService
	Auth   *service.StaffAuthenticator
	Store  sessions.Store
	Logger *slog.Logger

	// Registry receives request metrics and backs /metrics. Nil disables both.
	Registry *prometheus.Registry

	// ProtectMutations requires a staff session on menu and status updates
	ProtectMutations bool
}

// NewRouter builds the canteen HTTP API
func NewRouter(deps Dependencies) (http.Handler, error) {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	healthHandler := NewHealthHandler(deps.Menu, deps.Orders, log)
	menuHandler := NewMenuHandler(deps.Menu, log)
	orderHandler := NewOrderHandler(deps.Orders, log)
	authHandler := NewAuthHandler(deps.Auth, deps.Store, log)
	requireStaff := middleware.RequireStaff(deps.Store, log)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	if deps.Registry != nil {
		metrics, err := middleware.NewMetrics(deps.Registry)
		if err != nil {
			return nil, err
		}
		r.Use(metrics.Handler)
	}

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"service": "canteen"}, log)
	})
	r.Post("/staff_login", authHandler.StaffLogin)
	r.Get("/logout", authHandler.Logout)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.ServeHTTP)
		r.Get("/menu", menuHandler.ListMenu)
		r.Post("/orders/place", orderHandler.PlaceOrder)

		r.With(requireStaff).Get("/orders", orderHandler.ListOrders)

		// Staff mutations
		r.Group(func(r chi.Router) {
			if deps.ProtectMutations {
				r.Use(requireStaff)
			}
			r.Post("/orders/update_status", orderHandler.UpdateStatus)
			r.Post("/menu/update", menuHandler.UpdateMenuItem)
		})
	})

	return r, nil
}
