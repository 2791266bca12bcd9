package repository

import (
	"face-onboarding/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	StandardUser StandardUserRepository
	Customer     CustomerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		StandardUser: NewStandardUserRepository(db, log),
		Customer:     NewCustomerRepository(db, log),
	}
}
