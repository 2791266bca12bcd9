package wire

import (
	"face-onboarding/internal/adaptor"
	"face-onboarding/internal/token"
	"face-onboarding/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCustomer configures the authenticated customer routes
func wireCustomer(
	r chi.Router,
	customerHandler *adaptor.CustomerHandler,
	issuer *token.Issuer,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthJWT(issuer, log)).Get("/api/customer/profile", customerHandler.GetProfile)

	r.With(middleware.AuthJWT(issuer, log)).Route("/api/admin/customers", func(r chi.Router) {
		r.Get("/", customerHandler.GetAllCustomers) // GET /api/admin/customers?page=1&per_page=10
	})
}
