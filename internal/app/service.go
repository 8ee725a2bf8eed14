/**
 * @description
 * The application service for the onboarding backend. It orchestrates the
 * Rize vendor client, session persistence, the step resolver, and event
 * publication. Handlers stay thin: every business rule lives here.
 *
 * Key responsibilities:
 * - Session lifecycle: signup, login (rate limited), logout, destruction on
 *   vendor token rejection.
 * - Step resolution with at-most-one workflow renewal per request.
 * - Batch document acknowledgement with an audit trail.
 * - Profile (PII) submission with whole-form validation.
 * - Pass-through account, card, and activity operations.
 *
 * @dependencies
 * - internal/store: Session and audit persistence.
 * - pkg/rizeclient: The vendor HTTP client (behind the Vendor interface).
 * - pkg/rabbitmq: Event publication to the rize.onboarding exchange.
 */

package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RizeFinance/onboarding-service/internal/domain"
	"github.com/RizeFinance/onboarding-service/internal/store"
	"github.com/RizeFinance/onboarding-service/pkg/rabbitmq"
	"github.com/RizeFinance/onboarding-service/pkg/rizeclient"
)

// Routing keys on the onboarding topic exchange.
const (
	routingKeyStepAdvanced   = "onboarding.step.advanced"
	routingKeyDocsAccepted   = "onboarding.documents.acknowledged"
	routingKeyProfileSubmit  = "onboarding.profile.submitted"
	routingKeyCustomerStatus = "customer.status.changed"
	routingKeyCardReissued   = "card.reissued"
)

// Service provides the methods for the onboarding business logic.
type Service struct {
	repo     store.Repository
	rize     Vendor
	producer rabbitmq.Publisher
	limiter  LoginRateLimiter
	tokens   *TokenIssuer

	eventExchange string
	sessionTTL    time.Duration
	loginLimit    int
	loginWindow   time.Duration

	watchInterval    time.Duration
	watchMaxAttempts int
}

// ServiceConfig carries the tunables the service needs beyond its
// collaborators.
type ServiceConfig struct {
	EventExchange    string
	SessionTTL       time.Duration
	LoginLimit       int
	LoginWindow      time.Duration
	WatchInterval    time.Duration
	WatchMaxAttempts int
}

// NewService creates a new application service.
func NewService(
	repo store.Repository,
	rize Vendor,
	producer rabbitmq.Publisher,
	limiter LoginRateLimiter,
	tokens *TokenIssuer,
	cfg ServiceConfig,
) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.WatchInterval <= 0 {
		cfg.WatchInterval = 5 * time.Second
	}
	if cfg.WatchMaxAttempts <= 0 {
		cfg.WatchMaxAttempts = 60
	}
	return &Service{
		repo:             repo,
		rize:             rize,
		producer:         producer,
		limiter:          limiter,
		tokens:           tokens,
		eventExchange:    cfg.EventExchange,
		sessionTTL:       cfg.SessionTTL,
		loginLimit:       cfg.LoginLimit,
		loginWindow:      cfg.LoginWindow,
		watchInterval:    cfg.WatchInterval,
		watchMaxAttempts: cfg.WatchMaxAttempts,
	}
}

// Tokens exposes the session token issuer for the auth middleware.
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// AuthResult is what the auth endpoints hand back: the session row plus the
// signed bearer token for the client.
type AuthResult struct {
	Session  *domain.Session  `json:"session"`
	Token    string           `json:"token"`
	Customer *domain.Customer `json:"customer"`
}

// StepState is the resolved onboarding position for a session, together with
// the snapshots resolution was computed from.
type StepState struct {
	Step             domain.OnboardingStep      `json:"step"`
	Workflow         *domain.ComplianceWorkflow `json:"workflow,omitempty"`
	Customer         *domain.Customer           `json:"customer,omitempty"`
	PendingDocuments []domain.Document          `json:"pending_documents,omitempty"`
}

// Register creates a vendor customer, opens the first compliance workflow,
// and starts a session.
func (s *Service) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	auth, err := s.rize.Register(ctx, email, password)
	if err != nil {
		return nil, s.mapAuthError(err)
	}

	// The first workflow is created eagerly so the disclosures screen has
	// documents on the very first resolution. Failure is tolerated: the next
	// current_step call creates the workflow instead.
	if _, err := s.rize.CreateWorkflow(ctx, auth.AccessToken); err != nil {
		log.Printf("level=warn component=onboarding_service msg=\"initial workflow creation failed\" email=%s error=%v", email, err)
	}

	return s.startSession(ctx, auth)
}

// Login authenticates against the vendor after consuming a local rate-limit
// slot for the email address.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if s.limiter != nil {
		count, _, err := s.limiter.ConsumeLoginAttempt(ctx, email, s.loginLimit, s.loginWindow)
		if err != nil {
			// Redis being down must not lock everyone out.
			log.Printf("level=warn component=onboarding_service msg=\"login rate limiter unavailable\" error=%v", err)
		} else if s.loginLimit > 0 && count > s.loginLimit {
			return nil, ErrTooManyLoginAttempts
		}
	}

	auth, err := s.rize.Authenticate(ctx, email, password)
	if err != nil {
		return nil, s.mapAuthError(err)
	}
	return s.startSession(ctx, auth)
}

// Logout revokes the session. The vendor tokens it held are abandoned.
func (s *Service) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.repo.RevokeSession(ctx, sessionID)
}

// ForgotPassword asks the vendor to send a reset code. Vendor errors are not
// surfaced so the endpoint does not leak which addresses exist.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if err := s.rize.ForgotPassword(ctx, email); err != nil {
		log.Printf("level=warn component=onboarding_service msg=\"forgot password request failed\" error=%v", err)
	}
	return nil
}

// ConfirmPassword completes a reset with the emailed code and starts a fresh
// session.
func (s *Service) ConfirmPassword(ctx context.Context, email, code, newPassword string) (*AuthResult, error) {
	auth, err := s.rize.ConfirmPassword(ctx, email, code, newPassword)
	if err != nil {
		return nil, s.mapAuthError(err)
	}
	return s.startSession(ctx, auth)
}

// SetPassword changes the password for an authenticated session.
func (s *Service) SetPassword(ctx context.Context, session *domain.Session, currentPassword, newPassword string) error {
	if err := s.rize.SetPassword(ctx, session.AccessToken, currentPassword, newPassword); err != nil {
		return s.wrapVendorErr(ctx, session, err)
	}
	return nil
}

// FindSession loads an active session by id. Expired or revoked sessions
// resolve to store.ErrSessionNotFound.
func (s *Service) FindSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	session, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.Active(time.Now()) {
		return nil, store.ErrSessionNotFound
	}
	return session, nil
}

// CurrentStep fetches fresh workflow and customer snapshots and resolves the
// onboarding step. An expired workflow is renewed exactly once; if the
// renewed workflow is expired too, ErrWorkflowStillExpired is returned rather
// than renewing again.
func (s *Service) CurrentStep(ctx context.Context, session *domain.Session) (*StepState, error) {
	workflow, err := s.loadWorkflow(ctx, session)
	if err != nil {
		return nil, err
	}
	customer, err := s.rize.GetCustomer(ctx, session.AccessToken)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	s.noteCustomerStatus(ctx, session, customer)

	step := ResolveStep(workflow, customer)
	if step == domain.StepRenewalRequired {
		workflow, err = s.rize.RenewWorkflow(ctx, session.AccessToken, customer.ExternalUID, customer.UID, customer.Email)
		if err != nil {
			return nil, s.wrapVendorErr(ctx, session, err)
		}
		step = ResolveStep(workflow, customer)
		if step == domain.StepRenewalRequired {
			return nil, ErrWorkflowStillExpired
		}
	}

	if step == domain.StepProcessing {
		accounts, err := s.rize.ListSyntheticAccounts(ctx, session.AccessToken)
		if err != nil {
			return nil, s.wrapVendorErr(ctx, session, err)
		}
		step = ResolveLanding(customer, accounts)
	}

	s.publish(ctx, routingKeyStepAdvanced, domain.StepAdvancedEvent{
		EventID:     uuid.New(),
		CustomerUID: customer.UID,
		WorkflowUID: workflow.UID,
		Step:        step,
		Timestamp:   time.Now().UTC(),
	})

	return &StepState{
		Step:             step,
		Workflow:         workflow,
		Customer:         customer,
		PendingDocuments: workflow.CurrentStepDocumentsPending,
	}, nil
}

// Disclosures returns the documents still pending acknowledgement on the
// current workflow step.
func (s *Service) Disclosures(ctx context.Context, session *domain.Session) ([]domain.Document, error) {
	workflow, err := s.loadWorkflow(ctx, session)
	if err != nil {
		return nil, err
	}
	return workflow.CurrentStepDocumentsPending, nil
}

// AcknowledgeDocuments accepts the given documents in one vendor batch call,
// captures the submitter's address at submission time, writes the audit
// trail, and returns the replacement workflow the vendor hands back.
func (s *Service) AcknowledgeDocuments(ctx context.Context, session *domain.Session, documentUIDs []string, ipAddress string) (*domain.ComplianceWorkflow, error) {
	if len(documentUIDs) == 0 {
		return s.loadWorkflow(ctx, session)
	}

	customer, err := s.rize.GetCustomer(ctx, session.AccessToken)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	userName := acknowledgerName(customer)

	acks := make([]rizeclient.DocumentAcknowledgement, 0, len(documentUIDs))
	for _, uid := range documentUIDs {
		acks = append(acks, rizeclient.DocumentAcknowledgement{
			DocumentUID: uid,
			Accept:      "yes",
			IPAddress:   ipAddress,
			UserName:    userName,
		})
	}

	workflow, err := s.rize.AcknowledgeDocuments(ctx, session.AccessToken, acks)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}

	now := time.Now().UTC()
	records := make([]domain.AcknowledgementRecord, 0, len(documentUIDs))
	for _, uid := range documentUIDs {
		records = append(records, domain.AcknowledgementRecord{
			ID:                  uuid.New(),
			SessionID:           session.ID,
			WorkflowUID:         workflow.UID,
			DocumentUID:         uid,
			ExternalStorageName: storageNameFor(workflow, uid),
			IPAddress:           ipAddress,
			UserName:            userName,
			AcknowledgedAt:      now,
		})
	}
	if err := s.repo.RecordAcknowledgements(ctx, records); err != nil {
		// The vendor acceptance already happened; losing the local audit row
		// must not fail the user's action.
		log.Printf("level=error component=onboarding_service msg=\"failed to record acknowledgement audit\" workflow_uid=%s error=%v", workflow.UID, err)
	}

	s.publish(ctx, routingKeyDocsAccepted, domain.DocumentsAcknowledgedEvent{
		EventID:      uuid.New(),
		CustomerUID:  customer.UID,
		WorkflowUID:  workflow.UID,
		DocumentUIDs: documentUIDs,
		IPAddress:    ipAddress,
		Timestamp:    now,
	})

	return workflow, nil
}

// SubmitProfile validates and submits the customer's PII. The SSN is only
// required when the vendor does not already hold a date of birth for the
// customer.
func (s *Service) SubmitProfile(ctx context.Context, session *domain.Session, params ProfileParams) (*domain.Customer, error) {
	customer, err := s.rize.GetCustomer(ctx, session.AccessToken)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}

	ssnRequired := !customer.HasDOB()
	if err := ValidateProfile(params, ssnRequired, time.Now()); err != nil {
		return nil, err
	}

	details := &domain.CustomerDetails{
		FirstName:  strings.TrimSpace(params.FirstName),
		MiddleName: strings.TrimSpace(params.MiddleName),
		LastName:   strings.TrimSpace(params.LastName),
		Suffix:     strings.TrimSpace(params.Suffix),
		Phone:      FormatPhone(params.Phone),
		DOB:        params.DOB,
		Address: &domain.CustomerAddress{
			Street1:    strings.TrimSpace(params.Street1),
			Street2:    strings.TrimSpace(params.Street2),
			City:       strings.TrimSpace(params.City),
			State:      strings.ToUpper(strings.TrimSpace(params.State)),
			PostalCode: strings.TrimSpace(params.PostalCode),
		},
	}
	if ssnRequired {
		details.SSN = params.SSN
	}

	updated, err := s.rize.UpdateCustomer(ctx, session.AccessToken, rizeclient.UpdateCustomerParams{
		Email:   customer.Email,
		Details: details,
	})
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}

	s.publish(ctx, routingKeyProfileSubmit, domain.ProfileSubmittedEvent{
		EventID:     uuid.New(),
		CustomerUID: updated.UID,
		Timestamp:   time.Now().UTC(),
	})
	return updated, nil
}

// VerifyCustomer submits the application for identity verification once all
// disclosures and PII are in.
func (s *Service) VerifyCustomer(ctx context.Context, session *domain.Session) (*domain.Customer, error) {
	customer, err := s.rize.VerifyCustomer(ctx, session.AccessToken)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	s.noteCustomerStatus(ctx, session, customer)
	return customer, nil
}

// ListProducts returns the customer's product enrollments.
func (s *Service) ListProducts(ctx context.Context, session *domain.Session) ([]domain.CustomerProduct, error) {
	products, err := s.rize.ListCustomerProducts(ctx, session.AccessToken)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return products, nil
}

// EnrollProduct enrolls the customer in a program product. The vendor kicks
// off identity verification as a side effect of the first enrollment.
func (s *Service) EnrollProduct(ctx context.Context, session *domain.Session, productUID string) (*domain.CustomerProduct, error) {
	product, err := s.rize.CreateCustomerProduct(ctx, session.AccessToken, productUID)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return product, nil
}

// SubmitProfileAnswers batches the customer's responses to the program's
// profile requirements.
func (s *Service) SubmitProfileAnswers(ctx context.Context, session *domain.Session, answers []domain.ProfileAnswer) error {
	if err := s.rize.SubmitProfileAnswers(ctx, session.AccessToken, answers); err != nil {
		return s.wrapVendorErr(ctx, session, err)
	}
	return nil
}

// ---- Accounts ----

func (s *Service) ListAccounts(ctx context.Context, session *domain.Session) ([]domain.SyntheticAccount, error) {
	accounts, err := s.rize.ListSyntheticAccounts(ctx, session.AccessToken)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return accounts, nil
}

func (s *Service) GetAccount(ctx context.Context, session *domain.Session, uid string) (*domain.SyntheticAccount, error) {
	account, err := s.rize.GetSyntheticAccount(ctx, session.AccessToken, uid)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return account, nil
}

func (s *Service) CreateAccount(ctx context.Context, session *domain.Session, params rizeclient.CreateSyntheticAccountParams) (*domain.SyntheticAccount, error) {
	account, err := s.rize.CreateSyntheticAccount(ctx, session.AccessToken, params)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return account, nil
}

func (s *Service) ArchiveAccount(ctx context.Context, session *domain.Session, uid string) error {
	if err := s.rize.ArchiveSyntheticAccount(ctx, session.AccessToken, uid); err != nil {
		return s.wrapVendorErr(ctx, session, err)
	}
	return nil
}

func (s *Service) ListAccountTypes(ctx context.Context, session *domain.Session) ([]domain.SyntheticAccountType, error) {
	types, err := s.rize.ListSyntheticAccountTypes(ctx, session.AccessToken)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return types, nil
}

func (s *Service) PlaidLinkToken(ctx context.Context, session *domain.Session) (string, error) {
	token, err := s.rize.GetPlaidLinkToken(ctx, session.AccessToken)
	if err != nil {
		return "", s.wrapVendorErr(ctx, session, err)
	}
	return token, nil
}

// ---- Cards ----

func (s *Service) ListCards(ctx context.Context, session *domain.Session) ([]domain.DebitCard, error) {
	cards, err := s.rize.ListDebitCards(ctx, session.AccessToken)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return cards, nil
}

func (s *Service) GetCard(ctx context.Context, session *domain.Session, uid string) (*domain.DebitCard, error) {
	card, err := s.rize.GetDebitCard(ctx, session.AccessToken, uid)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return card, nil
}

func (s *Service) CreateCard(ctx context.Context, session *domain.Session, syntheticAccountUID, poolUID string) (*domain.DebitCard, error) {
	card, err := s.rize.CreateDebitCard(ctx, session.AccessToken, syntheticAccountUID, poolUID)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return card, nil
}

func (s *Service) LockCard(ctx context.Context, session *domain.Session, uid, reason string) (*domain.DebitCard, error) {
	card, err := s.rize.LockDebitCard(ctx, session.AccessToken, uid, reason)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return card, nil
}

func (s *Service) UnlockCard(ctx context.Context, session *domain.Session, uid string) (*domain.DebitCard, error) {
	card, err := s.rize.UnlockDebitCard(ctx, session.AccessToken, uid)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return card, nil
}

func (s *Service) ReissueCard(ctx context.Context, session *domain.Session, uid, reason string) (*domain.DebitCard, error) {
	card, err := s.rize.ReissueDebitCard(ctx, session.AccessToken, uid, reason)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	s.publish(ctx, routingKeyCardReissued, domain.CardReissuedEvent{
		EventID:     uuid.New(),
		CustomerUID: session.CustomerUID,
		CardUID:     uid,
		Reason:      reason,
		Timestamp:   time.Now().UTC(),
	})
	return card, nil
}

func (s *Service) ActivateCard(ctx context.Context, session *domain.Session, uid, cardLastFour, cvv, expiryDate string) (*domain.DebitCard, error) {
	card, err := s.rize.ActivateDebitCard(ctx, session.AccessToken, uid, cardLastFour, cvv, expiryDate)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return card, nil
}

func (s *Service) PinSetToken(ctx context.Context, session *domain.Session, uid string) (string, error) {
	token, err := s.rize.GetPinSetToken(ctx, session.AccessToken, uid)
	if err != nil {
		return "", s.wrapVendorErr(ctx, session, err)
	}
	return token, nil
}

func (s *Service) CardAccessToken(ctx context.Context, session *domain.Session, uid string) (*rizeclient.CardAccessToken, error) {
	token, err := s.rize.GetCardAccessToken(ctx, session.AccessToken, uid)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return token, nil
}

func (s *Service) MigrateCard(ctx context.Context, session *domain.Session, uid string) (*domain.DebitCard, error) {
	card, err := s.rize.MigrateVirtualCard(ctx, session.AccessToken, uid)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return card, nil
}

// ---- Activity ----

func (s *Service) ListTransactions(ctx context.Context, session *domain.Session, params rizeclient.ListTransactionsParams) ([]domain.Transaction, error) {
	transactions, err := s.rize.ListTransactions(ctx, session.AccessToken, params)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return transactions, nil
}

func (s *Service) ListStatements(ctx context.Context, session *domain.Session) ([]domain.Statement, error) {
	statements, err := s.rize.ListStatements(ctx, session.AccessToken)
	if err != nil {
		return nil, s.wrapVendorErr(ctx, session, err)
	}
	return statements, nil
}

func (s *Service) ViewStatement(ctx context.Context, session *domain.Session, uid string) ([]byte, string, error) {
	body, contentType, err := s.rize.ViewStatement(ctx, session.AccessToken, uid)
	if err != nil {
		return nil, "", s.wrapVendorErr(ctx, session, err)
	}
	return body, contentType, nil
}

// ---- internals ----

// loadWorkflow fetches the latest compliance workflow, creating one when the
// customer has none yet.
func (s *Service) loadWorkflow(ctx context.Context, session *domain.Session) (*domain.ComplianceWorkflow, error) {
	workflow, err := s.rize.LatestWorkflow(ctx, session.AccessToken)
	if err == nil {
		return workflow, nil
	}
	if isVendorStatus(err, http.StatusNotFound) {
		workflow, err = s.rize.CreateWorkflow(ctx, session.AccessToken)
		if err != nil {
			return nil, s.wrapVendorErr(ctx, session, err)
		}
		if workflow == nil {
			return nil, ErrNoWorkflow
		}
		return workflow, nil
	}
	return nil, s.wrapVendorErr(ctx, session, err)
}

// startSession persists a session for the authenticated customer and mints
// its bearer token.
func (s *Service) startSession(ctx context.Context, auth *rizeclient.AuthResponse) (*AuthResult, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		ID:           uuid.New(),
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.sessionTTL),
	}
	if auth.Customer != nil {
		session.CustomerUID = auth.Customer.UID
		session.ExternalUID = auth.Customer.ExternalUID
		session.Email = auth.Customer.Email
		session.CustomerStatus = auth.Customer.Status
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(session.ID, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Session: session, Token: token, Customer: auth.Customer}, nil
}

// noteCustomerStatus records a fresh vendor status on the session and emits a
// status-change event when it moved.
func (s *Service) noteCustomerStatus(ctx context.Context, session *domain.Session, customer *domain.Customer) {
	if customer == nil || customer.Status == session.CustomerStatus {
		return
	}
	previous := session.CustomerStatus
	if err := s.repo.UpdateSessionCustomerStatus(ctx, session.ID, customer.Status); err != nil {
		log.Printf("level=warn component=onboarding_service msg=\"failed to update session customer status\" session_id=%s error=%v", session.ID, err)
	}
	session.CustomerStatus = customer.Status
	s.publish(ctx, routingKeyCustomerStatus, domain.CustomerStatusChangedEvent{
		EventID:        uuid.New(),
		CustomerUID:    customer.UID,
		PreviousStatus: previous,
		Status:         customer.Status,
		Timestamp:      time.Now().UTC(),
	})
}

// wrapVendorErr folds vendor HTTP failures into the service error taxonomy.
// A 401 means the vendor access token is dead, so the session is revoked.
func (s *Service) wrapVendorErr(ctx context.Context, session *domain.Session, err error) error {
	var apiErr *rizeclient.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		if session != nil {
			if revokeErr := s.repo.RevokeSession(ctx, session.ID); revokeErr != nil {
				log.Printf("level=warn component=onboarding_service msg=\"failed to revoke session after vendor 401\" session_id=%s error=%v", session.ID, revokeErr)
			}
		}
		return ErrSessionExpired
	case http.StatusForbidden:
		return ErrForbidden
	default:
		return err
	}
}

// mapAuthError converts vendor failures on the credential endpoints.
func (s *Service) mapAuthError(err error) error {
	var apiErr *rizeclient.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidCredentials
	case http.StatusTooManyRequests:
		return ErrTooManyLoginAttempts
	default:
		return err
	}
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, s.eventExchange, routingKey, event); err != nil {
		log.Printf("level=warn component=onboarding_service msg=\"event publish failed\" routing_key=%s error=%v", routingKey, err)
	}
}

func isVendorStatus(err error, status int) bool {
	var apiErr *rizeclient.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func acknowledgerName(customer *domain.Customer) string {
	if customer == nil || customer.Details == nil {
		return ""
	}
	return strings.TrimSpace(customer.Details.FirstName + " " + customer.Details.LastName)
}

func storageNameFor(workflow *domain.ComplianceWorkflow, documentUID string) string {
	if workflow == nil {
		return ""
	}
	for _, doc := range workflow.AllDocuments {
		if doc.UID == documentUID {
			return doc.ExternalStorageName
		}
	}
	for _, doc := range workflow.AcceptedDocuments {
		if doc.UID == documentUID {
			return doc.ExternalStorageName
		}
	}
	return ""
}
