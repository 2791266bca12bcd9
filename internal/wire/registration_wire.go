package wire

import (
	"face-onboarding/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRegistration(r chi.Router, registrationHandler *adaptor.RegistrationHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register/facial", registrationHandler.Register)
}
