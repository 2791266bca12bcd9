package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"face-onboarding/internal/dto/request"
	"face-onboarding/internal/usecase"
	"face-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type RegistrationHandler struct {
	service usecase.RegistrationService
	log     *zap.Logger
}

func NewRegistrationHandler(service usecase.RegistrationService, log *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
		log:     log,
	}
}

// Register handles POST /api/register/facial
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.FacialRegistrationRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// Call service
	customer, token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	// Auth token travels in the response header, customer in the body
	w.Header().Set("Authorization", "Bearer "+token)
	utils.ResponseCreated(w, "Registration successful", customer)
}

// handleServiceError maps workflow errors to HTTP responses
func (h *RegistrationHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest),
		errors.Is(err, usecase.ErrAlreadyExists),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrInvalidImage),
		errors.Is(err, usecase.ErrAnalysisFailed),
		errors.Is(err, usecase.ErrLowConfidence),
		errors.Is(err, usecase.ErrStorageError):
		h.log.Warn("Registration rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrServiceUnavailable):
		h.log.Warn("Registration dependency timed out", zap.Error(err))
		utils.ResponseServiceUnavailable(w, err.Error())

	default:
		h.log.Error("Registration failed", zap.Error(err))
		utils.ResponseInternalError(w, "unexpected error during processing")
	}
}
