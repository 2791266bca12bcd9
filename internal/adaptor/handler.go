package adaptor

import (
	"face-onboarding/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Registration *RegistrationHandler
	Customer     *CustomerHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Registration: NewRegistrationHandler(service.Registration, log),
		Customer:     NewCustomerHandler(service.Customer, log),
	}
}
