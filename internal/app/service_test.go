package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/RizeFinance/onboarding-service/internal/domain"
	"github.com/RizeFinance/onboarding-service/internal/store"
	"github.com/RizeFinance/onboarding-service/pkg/rizeclient"
)

// stubVendor embeds the Vendor interface so each test overrides only the
// calls it exercises; anything else panics with a nil pointer, which is the
// test failing loudly.
type stubVendor struct {
	Vendor

	authenticateFn         func(ctx context.Context, email, password string) (*rizeclient.AuthResponse, error)
	getCustomerFn          func(ctx context.Context, accessToken string) (*domain.Customer, error)
	latestWorkflowFn       func(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error)
	renewWorkflowFn        func(ctx context.Context, accessToken, externalUID, customerUID, email string) (*domain.ComplianceWorkflow, error)
	acknowledgeDocsFn      func(ctx context.Context, accessToken string, docs []rizeclient.DocumentAcknowledgement) (*domain.ComplianceWorkflow, error)
	listAccountsFn         func(ctx context.Context, accessToken string) ([]domain.SyntheticAccount, error)
	updateCustomerFn       func(ctx context.Context, accessToken string, params rizeclient.UpdateCustomerParams) (*domain.Customer, error)
	getDebitCardFn         func(ctx context.Context, accessToken, uid string) (*domain.DebitCard, error)
}

func (s *stubVendor) Authenticate(ctx context.Context, email, password string) (*rizeclient.AuthResponse, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubVendor) GetCustomer(ctx context.Context, accessToken string) (*domain.Customer, error) {
	return s.getCustomerFn(ctx, accessToken)
}

func (s *stubVendor) LatestWorkflow(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error) {
	return s.latestWorkflowFn(ctx, accessToken)
}

func (s *stubVendor) RenewWorkflow(ctx context.Context, accessToken, externalUID, customerUID, email string) (*domain.ComplianceWorkflow, error) {
	return s.renewWorkflowFn(ctx, accessToken, externalUID, customerUID, email)
}

func (s *stubVendor) AcknowledgeDocuments(ctx context.Context, accessToken string, docs []rizeclient.DocumentAcknowledgement) (*domain.ComplianceWorkflow, error) {
	return s.acknowledgeDocsFn(ctx, accessToken, docs)
}

func (s *stubVendor) ListSyntheticAccounts(ctx context.Context, accessToken string) ([]domain.SyntheticAccount, error) {
	return s.listAccountsFn(ctx, accessToken)
}

func (s *stubVendor) UpdateCustomer(ctx context.Context, accessToken string, params rizeclient.UpdateCustomerParams) (*domain.Customer, error) {
	return s.updateCustomerFn(ctx, accessToken, params)
}

func (s *stubVendor) GetDebitCard(ctx context.Context, accessToken, uid string) (*domain.DebitCard, error) {
	return s.getDebitCardFn(ctx, accessToken, uid)
}

// stubRepo is an in-memory Repository.
type stubRepo struct {
	store.Repository

	sessions map[uuid.UUID]*domain.Session
	records  []domain.AcknowledgementRecord
}

func newStubRepo() *stubRepo {
	return &stubRepo{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (r *stubRepo) CreateSession(ctx context.Context, session *domain.Session) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *stubRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	session, ok := r.sessions[id]
	if !ok || session.RevokedAt != nil {
		return nil, store.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *stubRepo) RevokeSession(ctx context.Context, id uuid.UUID) error {
	session, ok := r.sessions[id]
	if !ok {
		return store.ErrSessionNotFound
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (r *stubRepo) UpdateSessionCustomerStatus(ctx context.Context, id uuid.UUID, status string) error {
	if session, ok := r.sessions[id]; ok {
		session.CustomerStatus = status
	}
	return nil
}

func (r *stubRepo) RecordAcknowledgements(ctx context.Context, records []domain.AcknowledgementRecord) error {
	r.records = append(r.records, records...)
	return nil
}

// stubPublisher records published events.
type stubPublisher struct {
	routingKeys []string
}

func (p *stubPublisher) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	p.routingKeys = append(p.routingKeys, routingKey)
	return nil
}

func (p *stubPublisher) Close() {}

// stubLimiter returns a fixed attempt count.
type stubLimiter struct {
	count  int
	called int
}

func (l *stubLimiter) ConsumeLoginAttempt(ctx context.Context, subject string, limit int, window time.Duration) (int, int, error) {
	l.called++
	l.count++
	return l.count, 30, nil
}

func newTestService(vendor Vendor, repo store.Repository, limiter LoginRateLimiter, publisher *stubPublisher) *Service {
	if publisher == nil {
		publisher = &stubPublisher{}
	}
	return NewService(repo, vendor, publisher, limiter, NewTokenIssuer("test-signing-key"), ServiceConfig{
		EventExchange:    "rize.onboarding",
		SessionTTL:       time.Hour,
		LoginLimit:       3,
		LoginWindow:      time.Minute,
		WatchInterval:    time.Millisecond,
		WatchMaxAttempts: 3,
	})
}

func activeCustomer() *domain.Customer {
	return &domain.Customer{
		UID:         "cust-1",
		ExternalUID: "ext-1",
		Email:       "jane@example.com",
		Status:      domain.CustomerStatusInitiated,
		Details:     &domain.CustomerDetails{FirstName: "Jane", LastName: "Doe", DOB: "1990-06-15"},
	}
}

func testSession() *domain.Session {
	return &domain.Session{
		ID:          uuid.New(),
		CustomerUID: "cust-1",
		ExternalUID: "ext-1",
		Email:       "jane@example.com",
		AccessToken: "vendor-token",
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func TestLoginSuccessStartsSession(t *testing.T) {
	repo := newStubRepo()
	vendor := &stubVendor{
		authenticateFn: func(ctx context.Context, email, password string) (*rizeclient.AuthResponse, error) {
			return &rizeclient.AuthResponse{
				AccessToken:  "vendor-token",
				RefreshToken: "vendor-refresh",
				Customer:     activeCustomer(),
			}, nil
		},
	}
	service := newTestService(vendor, repo, nil, nil)

	result, err := service.Login(context.Background(), "jane@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "cust-1", result.Session.CustomerUID)

	// The bearer token round-trips to the persisted session.
	sessionID, err := service.Tokens().Parse(result.Token)
	require.NoError(t, err)
	found, err := repo.FindSessionByID(context.Background(), sessionID)
	require.NoError(t, err)
	require.Equal(t, "vendor-token", found.AccessToken)
}

func TestLoginWrongCredentials(t *testing.T) {
	vendor := &stubVendor{
		authenticateFn: func(ctx context.Context, email, password string) (*rizeclient.AuthResponse, error) {
			return nil, &rizeclient.APIError{StatusCode: http.StatusUnauthorized}
		},
	}
	service := newTestService(vendor, newStubRepo(), nil, nil)

	_, err := service.Login(context.Background(), "jane@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRateLimited(t *testing.T) {
	limiter := &stubLimiter{count: 3} // next attempt is the fourth
	vendorCalled := false
	vendor := &stubVendor{
		authenticateFn: func(ctx context.Context, email, password string) (*rizeclient.AuthResponse, error) {
			vendorCalled = true
			return nil, nil
		},
	}
	service := newTestService(vendor, newStubRepo(), limiter, nil)

	_, err := service.Login(context.Background(), "jane@example.com", "hunter22")
	require.ErrorIs(t, err, ErrTooManyLoginAttempts)
	require.False(t, vendorCalled, "vendor must not be called once the limit is hit")
}

func TestCurrentStepRenewsExpiredWorkflowExactlyOnce(t *testing.T) {
	renewCalls := 0
	vendor := &stubVendor{
		latestWorkflowFn: func(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error) {
			return workflowWith(domain.WorkflowStatusExpired, 2), nil
		},
		getCustomerFn: func(ctx context.Context, accessToken string) (*domain.Customer, error) {
			return activeCustomer(), nil
		},
		renewWorkflowFn: func(ctx context.Context, accessToken, externalUID, customerUID, email string) (*domain.ComplianceWorkflow, error) {
			renewCalls++
			return workflowWith(domain.WorkflowStatusInProgress, 1), nil
		},
	}
	service := newTestService(vendor, newStubRepo(), nil, nil)

	state, err := service.CurrentStep(context.Background(), testSession())
	require.NoError(t, err)
	require.Equal(t, domain.StepDisclosures, state.Step)
	require.Equal(t, 1, renewCalls)
}

func TestCurrentStepStillExpiredAfterRenewal(t *testing.T) {
	renewCalls := 0
	vendor := &stubVendor{
		latestWorkflowFn: func(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error) {
			return workflowWith(domain.WorkflowStatusExpired, 2), nil
		},
		getCustomerFn: func(ctx context.Context, accessToken string) (*domain.Customer, error) {
			return activeCustomer(), nil
		},
		renewWorkflowFn: func(ctx context.Context, accessToken, externalUID, customerUID, email string) (*domain.ComplianceWorkflow, error) {
			renewCalls++
			return workflowWith(domain.WorkflowStatusExpired, 1), nil
		},
	}
	service := newTestService(vendor, newStubRepo(), nil, nil)

	_, err := service.CurrentStep(context.Background(), testSession())
	require.ErrorIs(t, err, ErrWorkflowStillExpired)
	require.Equal(t, 1, renewCalls, "renewal must never loop")
}

func TestCurrentStepLandsHomeWhenProvisioned(t *testing.T) {
	customer := activeCustomer()
	customer.Status = domain.CustomerStatusActive
	vendor := &stubVendor{
		latestWorkflowFn: func(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error) {
			return workflowWith(domain.WorkflowStatusAccepted, 3), nil
		},
		getCustomerFn: func(ctx context.Context, accessToken string) (*domain.Customer, error) {
			return customer, nil
		},
		listAccountsFn: func(ctx context.Context, accessToken string) ([]domain.SyntheticAccount, error) {
			return []domain.SyntheticAccount{{
				UID:                      "acct-1",
				Liability:                true,
				SyntheticAccountCategory: domain.AccountCategoryTargetYield,
			}}, nil
		},
	}
	repo := newStubRepo()
	session := testSession()
	require.NoError(t, repo.CreateSession(context.Background(), session))
	publisher := &stubPublisher{}
	service := newTestService(vendor, repo, nil, publisher)

	state, err := service.CurrentStep(context.Background(), session)
	require.NoError(t, err)
	require.Equal(t, domain.StepHome, state.Step)
	// The status change from initiated to active is published.
	require.Contains(t, publisher.routingKeys, "customer.status.changed")
}

func TestCurrentStepRevokesSessionOnVendor401(t *testing.T) {
	vendor := &stubVendor{
		latestWorkflowFn: func(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error) {
			return nil, &rizeclient.APIError{StatusCode: http.StatusUnauthorized}
		},
	}
	repo := newStubRepo()
	session := testSession()
	require.NoError(t, repo.CreateSession(context.Background(), session))
	service := newTestService(vendor, repo, nil, nil)

	_, err := service.CurrentStep(context.Background(), session)
	require.ErrorIs(t, err, ErrSessionExpired)

	_, err = repo.FindSessionByID(context.Background(), session.ID)
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestAcknowledgeDocumentsRecordsAuditTrail(t *testing.T) {
	replacement := workflowWith(domain.WorkflowStatusInProgress, 2, domain.PatriotActStorageName)
	var sentDocs []rizeclient.DocumentAcknowledgement
	vendor := &stubVendor{
		getCustomerFn: func(ctx context.Context, accessToken string) (*domain.Customer, error) {
			return activeCustomer(), nil
		},
		acknowledgeDocsFn: func(ctx context.Context, accessToken string, docs []rizeclient.DocumentAcknowledgement) (*domain.ComplianceWorkflow, error) {
			sentDocs = docs
			return replacement, nil
		},
	}
	repo := newStubRepo()
	publisher := &stubPublisher{}
	service := newTestService(vendor, repo, nil, publisher)
	session := testSession()

	workflow, err := service.AcknowledgeDocuments(context.Background(), session, []string{"doc-1", "doc-2"}, "203.0.113.7")
	require.NoError(t, err)
	require.Same(t, replacement, workflow)

	require.Len(t, sentDocs, 2)
	for _, doc := range sentDocs {
		require.Equal(t, "yes", doc.Accept)
		require.Equal(t, "203.0.113.7", doc.IPAddress)
		require.Equal(t, "Jane Doe", doc.UserName)
	}

	require.Len(t, repo.records, 2)
	require.Equal(t, session.ID, repo.records[0].SessionID)
	require.Equal(t, "203.0.113.7", repo.records[0].IPAddress)
	require.Contains(t, publisher.routingKeys, "onboarding.documents.acknowledged")
}

func TestSubmitProfileOmitsSSNWhenDOBOnFile(t *testing.T) {
	var sent rizeclient.UpdateCustomerParams
	vendor := &stubVendor{
		getCustomerFn: func(ctx context.Context, accessToken string) (*domain.Customer, error) {
			return activeCustomer(), nil // DOB already on file
		},
		updateCustomerFn: func(ctx context.Context, accessToken string, params rizeclient.UpdateCustomerParams) (*domain.Customer, error) {
			sent = params
			return activeCustomer(), nil
		},
	}
	service := newTestService(vendor, newStubRepo(), nil, nil)

	params := ProfileParams{
		FirstName:  "Jane",
		LastName:   "Doe",
		Phone:      "5551234567",
		DOB:        "1990-06-15",
		Street1:    "123 Main St",
		City:       "Austin",
		State:      "tx",
		PostalCode: "78701",
	}
	_, err := service.SubmitProfile(context.Background(), testSession(), params)
	require.NoError(t, err)
	require.Empty(t, sent.Details.SSN)
	require.Equal(t, "(555) 123-4567", sent.Details.Phone)
	require.Equal(t, "TX", sent.Details.Address.State)
}

func TestSubmitProfileRequiresSSNForNewIdentity(t *testing.T) {
	customer := activeCustomer()
	customer.Details = nil // no DOB on file
	vendor := &stubVendor{
		getCustomerFn: func(ctx context.Context, accessToken string) (*domain.Customer, error) {
			return customer, nil
		},
	}
	service := newTestService(vendor, newStubRepo(), nil, nil)

	params := ProfileParams{
		FirstName:  "Jane",
		LastName:   "Doe",
		Phone:      "5551234567",
		DOB:        "1990-06-15",
		Street1:    "123 Main St",
		City:       "Austin",
		State:      "TX",
		PostalCode: "78701",
	}
	_, err := service.SubmitProfile(context.Background(), testSession(), params)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "ssn")
}
