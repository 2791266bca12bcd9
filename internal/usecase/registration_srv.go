package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"face-onboarding/internal/data/entity"
	"face-onboarding/internal/data/repository"
	"face-onboarding/internal/dto/request"
	"face-onboarding/internal/dto/response"
	"face-onboarding/internal/mailer"
	"face-onboarding/internal/storage"
	"face-onboarding/internal/vision"
	"face-onboarding/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinConfidence is the acceptance gate for the top detected face. Scores
// below it reject the registration.
const MinConfidence = 79.0

// TokenIssuer mints an auth token for a username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

type RegistrationService interface {
	// Register runs the full promotion workflow and returns the persisted
	// customer plus the auth token to attach to the response.
	Register(ctx context.Context, req *request.FacialRegistrationRequest) (*response.CustomerResponse, string, error)
}

type registrationService struct {
	repo     *repository.Repository
	analyzer vision.Analyzer
	store    storage.Gateway
	issuer   TokenIssuer
	sender   mailer.Sender
	timeout  time.Duration
	log      *zap.Logger
}

func NewRegistrationService(
	repo *repository.Repository,
	analyzer vision.Analyzer,
	store storage.Gateway,
	issuer TokenIssuer,
	sender mailer.Sender,
	timeout time.Duration,
	log *zap.Logger,
) RegistrationService {
	return &registrationService{
		repo:     repo,
		analyzer: analyzer,
		store:    store,
		issuer:   issuer,
		sender:   sender,
		timeout:  timeout,
		log:      log,
	}
}

func (s *registrationService) Register(ctx context.Context, req *request.FacialRegistrationRequest) (*response.CustomerResponse, string, error) {
	// 1. Validate request fields
	username := strings.TrimSpace(req.Username)
	if username == "" || req.BaseImage == "" || req.ImageName == "" {
		s.log.Warn("Registration request rejected at validation",
			zap.String("username", username))
		return nil, "", ErrInvalidRequest
	}

	// 2. Reject if the customer already exists
	existing, err := s.findCustomer(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		s.log.Warn("Registration for existing customer", zap.String("username", username))
		return nil, "", ErrAlreadyExists
	}

	// 3. Look up the standard user pending promotion
	standardUser, err := s.findStandardUser(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if standardUser == nil {
		s.log.Warn("No standard user for registration", zap.String("username", username))
		return nil, "", ErrUserNotFound
	}

	// 4. Decode the image payload
	imageBytes, err := base64.StdEncoding.DecodeString(req.BaseImage)
	if err != nil || len(imageBytes) == 0 {
		s.log.Warn("Invalid base64 image payload",
			zap.String("username", username),
			zap.Error(err))
		return nil, "", ErrInvalidImage
	}

	// 5. Run facial analysis
	analysis, err := s.analyze(ctx, username, imageBytes)
	if err != nil {
		return nil, "", err
	}

	// 6. Confidence gate
	if analysis.Confidence < MinConfidence {
		s.log.Warn("Confidence below acceptance gate",
			zap.String("username", username),
			zap.Float64("confidence", analysis.Confidence))
		return nil, "", ErrLowConfidence
	}

	// 7. Archive photo and analysis report
	photoURL, err := s.upload(ctx, username, func(tctx context.Context) (string, error) {
		return s.store.UploadUserPhoto(tctx, utils.GeneratePhotoName(username, req.ImageName), imageBytes)
	})
	if err != nil {
		return nil, "", err
	}

	reportURL, err := s.upload(ctx, username, func(tctx context.Context) (string, error) {
		return s.store.UploadAnalysisReport(tctx, utils.GenerateReportName(username), analysis.Report)
	})
	if err != nil {
		return nil, "", err
	}

	// 8. Assemble and persist the customer record
	hashedPassword, err := utils.HashPassword(standardUser.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err), zap.String("username", username))
		return nil, "", err
	}

	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		PasswordHash: hashedPassword,
		Email:        standardUser.Email,
		Country:      standardUser.Country,
		Region:       standardUser.Region,
		MobileNo:     standardUser.MobileNo,
		Consent:      standardUser.Consent,
		Confidence:   analysis.Confidence,
		Gender:       analysis.Gender,
		AgeRange:     analysis.AgeRange,
		AnalysisURL:  reportURL,
		PhotoURL:     photoURL,
		Status:       entity.StatusPending,
		OptOut:       false,
		Active:       1,
	}

	if err := s.createCustomer(ctx, customer); err != nil {
		return nil, "", err
	}

	// 9. Issue the auth token
	token, err := s.issuer.Issue(username)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("username", username))
		return nil, "", err
	}

	// 10. Welcome email, best effort
	go s.sendWelcome(customer.Email, username)

	// 11. Re-read the persisted record, then retire the standard user
	saved, err := s.findCustomer(ctx, username)
	if err != nil || saved == nil {
		// The write already succeeded; answer from the assembled record.
		s.log.Warn("Failed to re-read saved customer",
			zap.Error(err),
			zap.String("username", username))
		saved = customer
	}

	if err := s.deleteStandardUser(ctx, standardUser.ID); err != nil {
		// Not rolled back: the customer row is durable, the stale standard
		// user needs manual cleanup.
		s.log.Error("Data inconsistency: customer saved but standard user not deleted",
			zap.Error(err),
			zap.String("username", username),
			zap.String("standard_user_id", standardUser.ID.String()))
	}

	s.log.Info("Customer registered",
		zap.String("username", username),
		zap.Float64("confidence", analysis.Confidence),
		zap.String("status", string(saved.Status)))

	return response.NewCustomerResponse(saved), token, nil
}

// ==================== HELPER METHODS ====================

func (s *registrationService) findCustomer(ctx context.Context, username string) (*entity.Customer, error) {
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	customer, err := s.repo.Customer.FindByUsername(tctx, username)
	if err != nil {
		return nil, s.remoteErr(tctx, err)
	}
	return customer, nil
}

func (s *registrationService) findStandardUser(ctx context.Context, username string) (*entity.StandardUser, error) {
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.repo.StandardUser.FindByUsername(tctx, username)
	if err != nil {
		return nil, s.remoteErr(tctx, err)
	}
	return user, nil
}

func (s *registrationService) analyze(ctx context.Context, username string, image []byte) (*vision.FaceAnalysis, error) {
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	analysis, err := s.analyzer.Analyze(tctx, username, image)
	if err != nil {
		if timedOut(tctx, err) {
			return nil, ErrServiceUnavailable
		}
		s.log.Warn("Facial analysis failed",
			zap.Error(err),
			zap.String("username", username))
		return nil, ErrAnalysisFailed
	}
	return analysis, nil
}

func (s *registrationService) upload(ctx context.Context, username string, put func(context.Context) (string, error)) (string, error) {
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	url, err := put(tctx)
	if err != nil {
		if timedOut(tctx, err) {
			return "", ErrServiceUnavailable
		}
		s.log.Error("Storage upload failed",
			zap.Error(err),
			zap.String("username", username))
		return "", ErrStorageError
	}
	return url, nil
}

func (s *registrationService) createCustomer(ctx context.Context, customer *entity.Customer) error {
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Customer.Create(tctx, customer); err != nil {
		return s.remoteErr(tctx, err)
	}
	return nil
}

func (s *registrationService) deleteStandardUser(ctx context.Context, id uuid.UUID) error {
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.repo.StandardUser.Delete(tctx, id)
}

// sendWelcome runs outside the request goroutine, so the recover middleware
// does not cover it.
func (s *registrationService) sendWelcome(email, username string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("PANIC recovered in welcome email send",
				zap.Any("error", r),
				zap.String("username", username))
		}
	}()

	if err := s.sender.SendWelcome(email, username); err != nil {
		s.log.Error("Failed to send welcome email",
			zap.Error(err),
			zap.String("username", username))
	}
}

// remoteErr maps a downstream timeout to the unavailable sentinel and passes
// everything else through for the handler's internal-error fallback.
func (s *registrationService) remoteErr(ctx context.Context, err error) error {
	if timedOut(ctx, err) {
		return ErrServiceUnavailable
	}
	return err
}

// timedOut reports whether a downstream call failed because its deadline
// expired. The AWS SDK reports this as a RequestCanceled error that does not
// unwrap to context.DeadlineExceeded, so the call context is checked too.
func timedOut(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded)
}
