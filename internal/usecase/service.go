package usecase

import (
	"face-onboarding/internal/data/repository"
	"face-onboarding/internal/mailer"
	"face-onboarding/internal/storage"
	"face-onboarding/internal/vision"
	"face-onboarding/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Registration RegistrationService
	Customer     CustomerService
}

func NewService(
	repo *repository.Repository,
	analyzer vision.Analyzer,
	store storage.Gateway,
	issuer TokenIssuer,
	sender mailer.Sender,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Registration: NewRegistrationService(repo, analyzer, store, issuer, sender, config.App.DependencyTimeout, log),
		Customer:     NewCustomerService(repo.Customer, log),
	}
}
