package repository

import (
	"context"
	"fmt"

	"face-onboarding/internal/data/entity"
	"face-onboarding/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByUsername(ctx context.Context, username string) (*entity.Customer, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	CountAll(ctx context.Context) (int64, error)
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log,
	}
}

// Create inserts a new customer record into the database
func (cr *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, username, password, email, country, region,
		                      mobile_no, consent, confidence, gender, age_range,
		                      analysis_url, photo_url, status, opt_out, active,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := cr.db.Exec(ctx, query,
		customer.ID,
		customer.Username,
		customer.PasswordHash,
		customer.Email,
		customer.Country,
		customer.Region,
		customer.MobileNo,
		customer.Consent,
		customer.Confidence,
		customer.Gender,
		customer.AgeRange,
		customer.AnalysisURL,
		customer.PhotoURL,
		customer.Status,
		customer.OptOut,
		customer.Active,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		cr.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("username", customer.Username),
		)
		return fmt.Errorf("create customer %s: %w", customer.Username, err)
	}

	return nil
}

func (cr *customerRepository) FindByUsername(ctx context.Context, username string) (*entity.Customer, error) {
	query := `
		SELECT id, username, password, email, country, region, mobile_no,
		       consent, confidence, gender, age_range, analysis_url, photo_url,
		       status, opt_out, active, created_at, updated_at, deleted_at
		FROM customers
		WHERE username = $1 AND deleted_at IS NULL
	`

	var customer entity.Customer
	// QueryRow returns at most one row
	err := cr.db.QueryRow(ctx, query, username).Scan(
		&customer.ID,
		&customer.Username,
		&customer.PasswordHash,
		&customer.Email,
		&customer.Country,
		&customer.Region,
		&customer.MobileNo,
		&customer.Consent,
		&customer.Confidence,
		&customer.Gender,
		&customer.AgeRange,
		&customer.AnalysisURL,
		&customer.PhotoURL,
		&customer.Status,
		&customer.OptOut,
		&customer.Active,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&customer.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		cr.log.Error("Failed to find customer by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find customer by username %s: %w", username, err)
	}

	return &customer, nil
}

// FindAll retrieves paginated list of customers
func (cr *customerRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT id, username, password, email, country, region, mobile_no,
		       consent, confidence, gender, age_range, analysis_url, photo_url,
		       status, opt_out, active, created_at, updated_at
		FROM customers
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := cr.db.Query(ctx, query, limit, offset)
	if err != nil {
		cr.log.Error("Failed to get all customers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all customers limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		var customer entity.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.Username,
			&customer.PasswordHash,
			&customer.Email,
			&customer.Country,
			&customer.Region,
			&customer.MobileNo,
			&customer.Consent,
			&customer.Confidence,
			&customer.Gender,
			&customer.AgeRange,
			&customer.AnalysisURL,
			&customer.PhotoURL,
			&customer.Status,
			&customer.OptOut,
			&customer.Active,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		if err != nil {
			cr.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, &customer)
	}

	if err := rows.Err(); err != nil {
		cr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate customers rows: %w", err)
	}

	return customers, nil
}

func (cr *customerRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL`

	var count int64
	err := cr.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		cr.log.Error("Database error counting customers",
			zap.Error(err),
		)
		return 0, fmt.Errorf("count all customers: %w", err)
	}

	return count, nil
}
