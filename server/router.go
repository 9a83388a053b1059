// Package server assembles the HTTP surface: middleware, public and protected
// route groups under /accounts, Swagger UI, health check and metrics.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/auth"
	"github.com/user/pagamentos-go/bills"
	"github.com/user/pagamentos-go/config"
	"github.com/user/pagamentos-go/csvimport"
	"github.com/user/pagamentos-go/httputil"
	"github.com/user/pagamentos-go/logging"
	"github.com/user/pagamentos-go/metrics"
	"github.com/user/pagamentos-go/settlement"
	"github.com/user/pagamentos-go/store"
	"github.com/user/pagamentos-go/users"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Config  *config.AppConfig
	Store   store.Store
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Clock decides payment dates. Defaults to time.Now.
	Clock func() time.Time
}

// NewRouter wires services and handlers onto a chi router.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	pager := httputil.Pager{DefaultSize: cfg.Pagination.DefaultSize, MaxSize: cfg.Pagination.MaxSize}

	tokens := auth.NewTokenService(*cfg.Auth)
	authHandlers := auth.NewHandlers(auth.NewAuthService(deps.Store, tokens, deps.Logger))
	userHandlers := users.NewUserHandlers(users.NewUserService(deps.Store, deps.Logger), pager)
	engine := settlement.NewEngine(deps.Store, deps.Logger, settlement.WithClock(clock))
	billHandlers := bills.NewHandlers(bills.NewService(deps.Store, deps.Logger), engine, pager, deps.Metrics)
	importHandlers := csvimport.NewHandlers(
		csvimport.NewImporter(deps.Store, deps.Logger), cfg.Import.MaxUploadBytes, deps.Metrics)

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(deps.Logger))
	r.Use(httputil.Recoverer)
	r.Use(deps.Metrics.Middleware)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, r, apperror.NewNotFoundError("route not found", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, apperror.ErrorResponse{Error: "method not allowed"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Get("/healthz", handleHealth(deps.Store))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/accounts", func(r chi.Router) {
		// Registration and the token endpoints stay public.
		r.Post("/users", userHandlers.HandleCreateUser())
		r.Post("/users/login", authHandlers.HandleLogin())
		r.Post("/users/refresh", authHandlers.HandleRefreshToken())

		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware(tokens))

			r.Get("/users", userHandlers.HandleListUsers())
			r.Get("/users/{id}", userHandlers.HandleGetUser())
			r.Put("/users/{id}", userHandlers.HandleUpdateUser())
			r.Delete("/users/{id}", userHandlers.HandleDeleteUser())

			r.Post("/bills", billHandlers.HandleCreateBill())
			r.Get("/bills", billHandlers.HandleListBills())
			r.Get("/bills/pending", billHandlers.HandlePending())
			r.Get("/bills/filtered", billHandlers.HandleFilter())
			r.Post("/bills/upload-csv", importHandlers.HandleUpload())
			r.Get("/bills/user/{userId}", billHandlers.HandleListByUser())
			r.Get("/bills/user/{userId}/total-paid", billHandlers.HandleTotalPaid())
			r.Get("/bills/user/{userId}/pending", billHandlers.HandlePendingForUser())
			r.Get("/bills/{id}", billHandlers.HandleGetBill())
			r.Put("/bills/{id}", billHandlers.HandleUpdateBill())
			r.Delete("/bills/{id}", billHandlers.HandleDeleteBill())
			r.Get("/bills/{id}/pay/user/{userId}", billHandlers.HandlePayBill())
		})
	})

	return r
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// handleHealth godoc
// @Summary Health check
// @Description Reports whether the Account Store is reachable.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /healthz [get]
func handleHealth(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			httputil.WriteError(w, r, apperror.NewDatabaseError("database unreachable", err))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
