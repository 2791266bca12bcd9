package usecase

import (
	"context"

	"face-onboarding/internal/data/repository"
	"face-onboarding/internal/dto/response"
	"face-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type CustomerService interface {
	GetProfile(ctx context.Context, username string) (*response.CustomerResponse, error)
	GetAllCustomers(ctx context.Context, page, perPage int) (*response.CustomerListResponse, error)
}

type customerService struct {
	repo repository.CustomerRepository
	log  *zap.Logger
}

func NewCustomerService(repo repository.CustomerRepository, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log,
	}
}

func (s *customerService) GetProfile(ctx context.Context, username string) (*response.CustomerResponse, error) {
	customer, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to get customer profile",
			zap.Error(err),
			zap.String("username", username))
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	return response.NewCustomerResponse(customer), nil
}

func (s *customerService) GetAllCustomers(ctx context.Context, page, perPage int) (*response.CustomerListResponse, error) {
	offset := utils.CalculateOffset(page, perPage)

	customers, err := s.repo.FindAll(ctx, perPage, offset)
	if err != nil {
		s.log.Error("Failed to list customers", zap.Error(err))
		return nil, err
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count customers", zap.Error(err))
		return nil, err
	}

	items := make([]*response.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		items = append(items, response.NewCustomerResponse(customer))
	}

	return &response.CustomerListResponse{
		Customers:  items,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: utils.CalculateTotalPages(total, perPage),
	}, nil
}
