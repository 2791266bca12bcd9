package repository

import (
	"context"
	"fmt"

	"face-onboarding/internal/data/entity"
	"face-onboarding/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type StandardUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.StandardUser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type standardUserRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStandardUserRepository(db database.PgxIface, log *zap.Logger) StandardUserRepository {
	return &standardUserRepository{
		db:  db,
		log: log,
	}
}

func (sr *standardUserRepository) FindByUsername(ctx context.Context, username string) (*entity.StandardUser, error) {
	query := `
		SELECT id, username, password, email, country, region, mobile_no,
		       consent, created_at, updated_at, deleted_at
		FROM standard_users
		WHERE username = $1 AND deleted_at IS NULL
	`

	var user entity.StandardUser
	// QueryRow returns at most one row
	err := sr.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Email,
		&user.Country,
		&user.Region,
		&user.MobileNo,
		&user.Consent,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		sr.log.Error("Failed to find standard user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find standard user by username %s: %w", username, err)
	}

	return &user, nil
}

func (sr *standardUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE standard_users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := sr.db.Exec(ctx, query, id)
	if err != nil {
		sr.log.Error("Failed to delete standard user",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete standard user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("standard user %s not found", id.String())
	}

	sr.log.Info("Standard user deleted", zap.String("id", id.String()))
	return nil
}
