package wire

import (
	"net/http"

	"yamdb/internal/adaptor"
	"yamdb/internal/data/repository"
	"yamdb/internal/usecase"
	"yamdb/pkg/cache"
	"yamdb/pkg/database"
	"yamdb/pkg/middleware"
	"yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the services background jobs need.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// guards are the per-route middleware chains.
type guards struct {
	session func(http.Handler) http.Handler
	admin   func(http.Handler) http.Handler
	limit   func(http.Handler) http.Handler
}

// Wiring builds services, handlers and the router.
func Wiring(db database.PgxIface, ratings cache.RatingCache, config *utils.Config, logger *zap.Logger) *App {
	repo := repository.NewRepository(db, logger)
	service := usecase.NewService(repo, ratings, config, logger)
	handler := adaptor.NewHandler(service, db, logger)

	return &App{
		Router:  setupRouter(handler, repo, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))
	r.Use(middleware.Metrics(config.App.Name))

	g := guards{
		session: middleware.AuthSession(repo.Session, logger),
		admin:   middleware.Admin(logger),
		limit:   middleware.RateLimit(config.RateLimit.PerMinute, logger),
	}

	r.Route("/api/v1", func(r chi.Router) {
		wireAuth(r, handler.Auth, g)
		wireUser(r, handler.User, g)
		wireCatalog(r, "/categories", handler.Category, g)
		wireCatalog(r, "/genres", handler.Genre, g)
		wireTitle(r, handler, g)
	})

	r.Get("/health", handler.Health.Check)
	r.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}
