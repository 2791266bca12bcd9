package response

import (
	"time"

	"face-onboarding/internal/data/entity"
)

type CustomerResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Country     string  `json:"country"`
	Region      string  `json:"region"`
	MobileNo    string  `json:"mobile_no"`
	Consent     bool    `json:"consent"`
	Confidence  float64 `json:"confidence"`
	Gender      string  `json:"gender"`
	AgeRange    string  `json:"age_range"`
	AnalysisURL string  `json:"analysis_url"`
	PhotoURL    string  `json:"photo_url"`
	Status      string  `json:"status"`
	OptOut      bool    `json:"opt_out"`
	Active      int     `json:"active"`

	CreatedAt time.Time `json:"created_at"`
}

func NewCustomerResponse(customer *entity.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          customer.ID.String(),
		Username:    customer.Username,
		Email:       customer.Email,
		Country:     customer.Country,
		Region:      customer.Region,
		MobileNo:    customer.MobileNo,
		Consent:     customer.Consent,
		Confidence:  customer.Confidence,
		Gender:      customer.Gender,
		AgeRange:    customer.AgeRange,
		AnalysisURL: customer.AnalysisURL,
		PhotoURL:    customer.PhotoURL,
		Status:      string(customer.Status),
		OptOut:      customer.OptOut,
		Active:      customer.Active,
		CreatedAt:   customer.CreatedAt,
	}
}

type CustomerListResponse struct {
	Customers  []*CustomerResponse `json:"customers"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
	Total      int64               `json:"total"`
	TotalPages int                 `json:"total_pages"`
}
