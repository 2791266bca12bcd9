package wire

import (
	"net/http"

	"face-onboarding/internal/adaptor"
	"face-onboarding/internal/data/repository"
	"face-onboarding/internal/mailer"
	"face-onboarding/internal/storage"
	"face-onboarding/internal/token"
	"face-onboarding/internal/usecase"
	"face-onboarding/internal/vision"
	"face-onboarding/pkg/middleware"
	"face-onboarding/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(
	repo *repository.Repository,
	analyzer vision.Analyzer,
	store storage.Gateway,
	issuer *token.Issuer,
	sender mailer.Sender,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, analyzer, store, issuer, sender, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, issuer, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, issuer *token.Issuer, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireRegistration(r, handler.Registration)
	wireCustomer(r, handler.Customer, issuer, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
