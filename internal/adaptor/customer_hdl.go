package adaptor

import (
	"errors"
	"net/http"

	"face-onboarding/internal/usecase"
	"face-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type CustomerHandler struct {
	service usecase.CustomerService
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log,
	}
}

// GetProfile handles GET /api/customer/profile
func (h *CustomerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, usecase.ErrCustomerNotFound) {
			utils.ResponseNotFound(w, err.Error())
			return
		}
		h.log.Error("Failed to get profile", zap.Error(err), zap.String("username", username))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", profile)
}

// GetAllCustomers handles GET /api/admin/customers?page=1&per_page=10
func (h *CustomerHandler) GetAllCustomers(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	perPage := utils.ParseInt(r.URL.Query().Get("per_page"), 10)

	list, err := h.service.GetAllCustomers(r.Context(), page, perPage)
	if err != nil {
		h.log.Error("Failed to list customers", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Customers retrieved", list)
}
