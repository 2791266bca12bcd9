package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"face-onboarding/internal/data/entity"
	"face-onboarding/internal/data/repository"
	"face-onboarding/internal/dto/request"
	"face-onboarding/internal/vision"
	"face-onboarding/pkg/utils"

	"github.com/aws/aws-sdk-go/aws/awserr"
	awsrequest "github.com/aws/aws-sdk-go/aws/request"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== FAKES ====================

type fakeStandardUserRepo struct {
	mu      sync.Mutex
	users   map[string]*entity.StandardUser
	deleted []uuid.UUID
	findErr error
	delErr  error
}

func newFakeStandardUserRepo(users ...*entity.StandardUser) *fakeStandardUserRepo {
	repo := &fakeStandardUserRepo{users: make(map[string]*entity.StandardUser)}
	for _, u := range users {
		repo.users[u.Username] = u
	}
	return repo
}

func (f *fakeStandardUserRepo) FindByUsername(ctx context.Context, username string) (*entity.StandardUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[username], nil
}

func (f *fakeStandardUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	for username, u := range f.users {
		if u.ID == id {
			delete(f.users, username)
		}
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
	createErr error
	findErr   error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.customers[customer.Username] = customer
	return nil
}

func (f *fakeCustomerRepo) FindByUsername(ctx context.Context, username string) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.customers[username], nil
}

func (f *fakeCustomerRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Customer
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.customers)), nil
}

func (f *fakeCustomerRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.customers)
}

type fakeAnalyzer struct {
	analysis *vision.FaceAnalysis
	err      error
	calls    int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, username string, image []byte) (*vision.FaceAnalysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

type fakeGateway struct {
	mu        sync.Mutex
	photos    map[string][]byte
	reports   map[string]string
	photoErr  error
	reportErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		photos:  make(map[string][]byte),
		reports: make(map[string]string),
	}
}

func (f *fakeGateway) UploadUserPhoto(ctx context.Context, name string, image []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.photoErr != nil {
		return "", f.photoErr
	}
	f.photos[name] = image
	return "https://bucket.s3.eu-west-1.amazonaws.com/" + name, nil
}

func (f *fakeGateway) UploadAnalysisReport(ctx context.Context, name string, report string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reportErr != nil {
		return "", f.reportErr
	}
	f.reports[name] = report
	return "https://bucket.s3.eu-west-1.amazonaws.com/" + name, nil
}

type fakeIssuer struct {
	err error
}

func (f *fakeIssuer) Issue(username string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + username, nil
}

// awsTimeoutAnalyzer reproduces how aws-sdk-go reports an expired context: a
// RequestCanceled awserr that does not unwrap to context.DeadlineExceeded.
type awsTimeoutAnalyzer struct{}

func (a *awsTimeoutAnalyzer) Analyze(ctx context.Context, username string, image []byte) (*vision.FaceAnalysis, error) {
	<-ctx.Done()
	return nil, awserr.New(awsrequest.CanceledErrorCode, "request context canceled", ctx.Err())
}

type awsTimeoutGateway struct{}

func (g *awsTimeoutGateway) UploadUserPhoto(ctx context.Context, name string, image []byte) (string, error) {
	<-ctx.Done()
	return "", awserr.New(awsrequest.CanceledErrorCode, "request context canceled", ctx.Err())
}

func (g *awsTimeoutGateway) UploadAnalysisReport(ctx context.Context, name string, report string) (string, error) {
	<-ctx.Done()
	return "", awserr.New(awsrequest.CanceledErrorCode, "request context canceled", ctx.Err())
}

type fakeSender struct {
	sent chan string
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(chan string, 1)}
}

func (f *fakeSender) SendWelcome(to, username string) error {
	select {
	case f.sent <- to:
	default:
	}
	return nil
}

type panickingSender struct {
	called chan struct{}
}

func newPanickingSender() *panickingSender {
	return &panickingSender{called: make(chan struct{})}
}

func (p *panickingSender) SendWelcome(to, username string) error {
	close(p.called)
	panic("smtp dial failed hard")
}

// ==================== FIXTURES ====================

type fixture struct {
	service      RegistrationService
	standardRepo *fakeStandardUserRepo
	customerRepo *fakeCustomerRepo
	analyzer     *fakeAnalyzer
	gateway      *fakeGateway
	sender       *fakeSender
}

func newFixture(t *testing.T, analysis *vision.FaceAnalysis) *fixture {
	t.Helper()

	standardRepo := newFakeStandardUserRepo(testStandardUser())
	customerRepo := newFakeCustomerRepo()
	analyzer := &fakeAnalyzer{analysis: analysis}
	gateway := newFakeGateway()
	sender := newFakeSender()

	repo := &repository.Repository{
		StandardUser: standardRepo,
		Customer:     customerRepo,
	}

	service := NewRegistrationService(
		repo, analyzer, gateway, &fakeIssuer{}, sender, 2*time.Second, zap.NewNop(),
	)

	return &fixture{
		service:      service,
		standardRepo: standardRepo,
		customerRepo: customerRepo,
		analyzer:     analyzer,
		gateway:      gateway,
		sender:       sender,
	}
}

func testStandardUser() *entity.StandardUser {
	return &entity.StandardUser{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username: "jdoe",
		Password: "secret-pass",
		Email:    "jdoe@example.com",
		Country:  "FR",
		Region:   "IDF",
		MobileNo: "+33600000000",
		Consent:  true,
	}
}

func validRequest() *request.FacialRegistrationRequest {
	return &request.FacialRegistrationRequest{
		Username:  "jdoe",
		BaseImage: base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")),
		ImageName: "selfie.jpg",
	}
}

func passingAnalysis() *vision.FaceAnalysis {
	return &vision.FaceAnalysis{
		Confidence: 95,
		Gender:     "Male",
		AgeRange:   "20-30",
		Report:     "Confidence: 95\nGender: Male\n",
	}
}

// ==================== TESTS ====================

func TestRegister_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		req  *request.FacialRegistrationRequest
	}{
		{"empty username", &request.FacialRegistrationRequest{Username: "", BaseImage: "aGk=", ImageName: "a.jpg"}},
		{"whitespace username", &request.FacialRegistrationRequest{Username: "   ", BaseImage: "aGk=", ImageName: "a.jpg"}},
		{"empty image", &request.FacialRegistrationRequest{Username: "jdoe", BaseImage: "", ImageName: "a.jpg"}},
		{"empty image name", &request.FacialRegistrationRequest{Username: "jdoe", BaseImage: "aGk=", ImageName: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, passingAnalysis())

			customer, token, err := f.service.Register(context.Background(), tc.req)

			require.ErrorIs(t, err, ErrInvalidRequest)
			assert.Nil(t, customer)
			assert.Empty(t, token)

			// No side effects at all
			assert.Zero(t, f.analyzer.calls)
			assert.Empty(t, f.gateway.photos)
			assert.Zero(t, f.customerRepo.count())
			assert.Empty(t, f.standardRepo.deleted)
		})
	}
}

func TestRegister_CustomerAlreadyExists(t *testing.T) {
	f := newFixture(t, passingAnalysis())
	require.NoError(t, f.customerRepo.Create(context.Background(), &entity.Customer{
		Base:     entity.Base{ID: uuid.New()},
		Username: "jdoe",
	}))

	customer, _, err := f.service.Register(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrAlreadyExists)
	assert.Nil(t, customer)
	assert.Zero(t, f.analyzer.calls)
	assert.Equal(t, 1, f.customerRepo.count())
	assert.Empty(t, f.standardRepo.deleted)
}

func TestRegister_StandardUserNotFound(t *testing.T) {
	f := newFixture(t, passingAnalysis())

	req := validRequest()
	req.Username = "nobody"

	customer, _, err := f.service.Register(context.Background(), req)

	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, customer)
	assert.Zero(t, f.analyzer.calls)
	assert.Zero(t, f.customerRepo.count())
}

func TestRegister_InvalidImage(t *testing.T) {
	f := newFixture(t, passingAnalysis())

	req := validRequest()
	req.BaseImage = "not-valid-base64!!!"

	customer, _, err := f.service.Register(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidImage)
	assert.Nil(t, customer)
	assert.Zero(t, f.analyzer.calls)
	assert.Zero(t, f.customerRepo.count())
}

func TestRegister_NoFaceDetected(t *testing.T) {
	f := newFixture(t, nil)
	f.analyzer.err = vision.ErrNoFaceDetected

	customer, _, err := f.service.Register(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrAnalysisFailed)
	assert.Nil(t, customer)
	assert.Empty(t, f.gateway.photos)
	assert.Zero(t, f.customerRepo.count())
	assert.Empty(t, f.standardRepo.deleted)
}

func TestRegister_ConfidenceBelowGate(t *testing.T) {
	analysis := passingAnalysis()
	analysis.Confidence = 78
	f := newFixture(t, analysis)

	customer, _, err := f.service.Register(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrLowConfidence)
	assert.Nil(t, customer)

	// Nothing uploaded, nothing written, nothing deleted
	assert.Empty(t, f.gateway.photos)
	assert.Empty(t, f.gateway.reports)
	assert.Zero(t, f.customerRepo.count())
	assert.Empty(t, f.standardRepo.deleted)
}

func TestRegister_ConfidenceAtGate(t *testing.T) {
	analysis := passingAnalysis()
	analysis.Confidence = 79
	f := newFixture(t, analysis)

	customer, token, err := f.service.Register(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, f.customerRepo.count())
}

func TestRegister_StorageFailure(t *testing.T) {
	f := newFixture(t, passingAnalysis())
	f.gateway.photoErr = errors.New("bucket gone")

	customer, _, err := f.service.Register(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrStorageError)
	assert.Nil(t, customer)
	assert.Zero(t, f.customerRepo.count())
	assert.Empty(t, f.standardRepo.deleted)
}

func TestRegister_ReportUploadFailure(t *testing.T) {
	f := newFixture(t, passingAnalysis())
	f.gateway.reportErr = errors.New("bucket gone")

	_, _, err := f.service.Register(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrStorageError)
	assert.Zero(t, f.customerRepo.count())
}

func TestRegister_AnalysisTimeout(t *testing.T) {
	f := newFixture(t, nil)
	f.analyzer.err = context.DeadlineExceeded

	_, _, err := f.service.Register(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Zero(t, f.customerRepo.count())
}

func TestRegister_AnalysisTimeoutSDKError(t *testing.T) {
	// The SDK surfaces an expired deadline as a RequestCanceled awserr, not
	// as context.DeadlineExceeded. It must still map to unavailable.
	standardRepo := newFakeStandardUserRepo(testStandardUser())
	customerRepo := newFakeCustomerRepo()
	repo := &repository.Repository{StandardUser: standardRepo, Customer: customerRepo}

	service := NewRegistrationService(
		repo, &awsTimeoutAnalyzer{}, newFakeGateway(), &fakeIssuer{}, newFakeSender(),
		50*time.Millisecond, zap.NewNop(),
	)

	_, _, err := service.Register(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Zero(t, customerRepo.count())
	assert.Empty(t, standardRepo.deleted)
}

func TestRegister_UploadTimeoutSDKError(t *testing.T) {
	standardRepo := newFakeStandardUserRepo(testStandardUser())
	customerRepo := newFakeCustomerRepo()
	repo := &repository.Repository{StandardUser: standardRepo, Customer: customerRepo}

	service := NewRegistrationService(
		repo, &fakeAnalyzer{analysis: passingAnalysis()}, &awsTimeoutGateway{},
		&fakeIssuer{}, newFakeSender(), 50*time.Millisecond, zap.NewNop(),
	)

	_, _, err := service.Register(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Zero(t, customerRepo.count())
	assert.Empty(t, standardRepo.deleted)
}

func TestRegister_EmailPanicDoesNotCrash(t *testing.T) {
	standardRepo := newFakeStandardUserRepo(testStandardUser())
	customerRepo := newFakeCustomerRepo()
	repo := &repository.Repository{StandardUser: standardRepo, Customer: customerRepo}
	sender := newPanickingSender()

	service := NewRegistrationService(
		repo, &fakeAnalyzer{analysis: passingAnalysis()}, newFakeGateway(),
		&fakeIssuer{}, sender, 2*time.Second, zap.NewNop(),
	)

	customer, token, err := service.Register(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.NotEmpty(t, token)

	// Wait for the send goroutine to run and give its recover time to fire;
	// without it the panic would take down the whole process.
	select {
	case <-sender.called:
	case <-time.After(time.Second):
		t.Fatal("welcome email send was never attempted")
	}
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, customerRepo.count())
}

func TestRegister_Success(t *testing.T) {
	f := newFixture(t, passingAnalysis())

	customer, token, err := f.service.Register(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, customer)

	assert.Equal(t, "token-for-jdoe", token)
	assert.Equal(t, "jdoe", customer.Username)
	assert.Equal(t, "pending", customer.Status)
	assert.False(t, customer.OptOut)
	assert.Equal(t, 1, customer.Active)
	assert.Equal(t, 95.0, customer.Confidence)
	assert.Equal(t, "Male", customer.Gender)
	assert.Equal(t, "20-30", customer.AgeRange)
	assert.NotEmpty(t, customer.PhotoURL)
	assert.NotEmpty(t, customer.AnalysisURL)

	// Demographics copied from the standard user
	assert.Equal(t, "jdoe@example.com", customer.Email)
	assert.Equal(t, "FR", customer.Country)
	assert.Equal(t, "IDF", customer.Region)
	assert.Equal(t, "+33600000000", customer.MobileNo)
	assert.True(t, customer.Consent)

	// Exactly one customer, password re-hashed with bcrypt
	require.Equal(t, 1, f.customerRepo.count())
	saved, err := f.customerRepo.FindByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotEqual(t, "secret-pass", saved.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret-pass", saved.PasswordHash))

	// Standard user retired
	assert.Len(t, f.standardRepo.deleted, 1)

	// Welcome email fired to the customer's address
	select {
	case to := <-f.sender.sent:
		assert.Equal(t, "jdoe@example.com", to)
	case <-time.After(time.Second):
		t.Fatal("welcome email was not sent")
	}
}

func TestRegister_ReplayHitsAlreadyExists(t *testing.T) {
	f := newFixture(t, passingAnalysis())

	_, _, err := f.service.Register(context.Background(), validRequest())
	require.NoError(t, err)

	// Same request again must hit the uniqueness guard
	_, _, err = f.service.Register(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrAlreadyExists)

	assert.Equal(t, 1, f.customerRepo.count())
}

func TestRegister_DeleteFailureStillReturnsCustomer(t *testing.T) {
	f := newFixture(t, passingAnalysis())
	f.standardRepo.delErr = errors.New("db down")

	customer, token, err := f.service.Register(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, f.customerRepo.count())
}

func TestRegister_UsernameTrimmed(t *testing.T) {
	f := newFixture(t, passingAnalysis())

	req := validRequest()
	req.Username = "  jdoe  "

	customer, _, err := f.service.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "jdoe", customer.Username)
}
