package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/RizeFinance/onboarding-service/internal/app"
	"github.com/RizeFinance/onboarding-service/internal/domain"
	"github.com/RizeFinance/onboarding-service/internal/store"
	"github.com/RizeFinance/onboarding-service/pkg/rizeclient"
)

type fakeVendor struct {
	app.Vendor

	authErr  error
	customer *domain.Customer
	workflow *domain.ComplianceWorkflow
}

func (f *fakeVendor) Authenticate(ctx context.Context, email, password string) (*rizeclient.AuthResponse, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return &rizeclient.AuthResponse{
		AccessToken:  "vendor-token",
		RefreshToken: "vendor-refresh",
		Customer:     f.customer,
	}, nil
}

func (f *fakeVendor) GetCustomer(ctx context.Context, accessToken string) (*domain.Customer, error) {
	return f.customer, nil
}

func (f *fakeVendor) LatestWorkflow(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error) {
	return f.workflow, nil
}

func (f *fakeVendor) ListSyntheticAccounts(ctx context.Context, accessToken string) ([]domain.SyntheticAccount, error) {
	return nil, nil
}

type fakeRepo struct {
	store.Repository

	sessions map[uuid.UUID]*domain.Session
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (r *fakeRepo) CreateSession(ctx context.Context, session *domain.Session) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	session, ok := r.sessions[id]
	if !ok || session.RevokedAt != nil {
		return nil, store.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeRepo) RevokeSession(ctx context.Context, id uuid.UUID) error {
	if session, ok := r.sessions[id]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (r *fakeRepo) UpdateSessionCustomerStatus(ctx context.Context, id uuid.UUID, status string) error {
	if session, ok := r.sessions[id]; ok {
		session.CustomerStatus = status
	}
	return nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	return nil
}

func (nopPublisher) Close() {}

func newTestRouter(vendor app.Vendor, repo store.Repository) http.Handler {
	service := app.NewService(repo, vendor, nopPublisher{}, nil, app.NewTokenIssuer("test-key"), app.ServiceConfig{
		EventExchange: "rize.onboarding",
		SessionTTL:    time.Hour,
	})
	return NewRouter(NewHandlers(service), service)
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestLoginHandlerWrongCredentials(t *testing.T) {
	router := newTestRouter(&fakeVendor{
		authErr: &rizeclient.APIError{StatusCode: http.StatusUnauthorized},
	}, newFakeRepo())

	recorder := postJSON(t, router, "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "wrong",
	}, "")

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "Wrong Email and/or Password", body["error"])
}

func TestLoginHandlerVendorRateLimit(t *testing.T) {
	router := newTestRouter(&fakeVendor{
		authErr: &rizeclient.APIError{StatusCode: http.StatusTooManyRequests},
	}, newFakeRepo())

	recorder := postJSON(t, router, "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "hunter22",
	}, "")

	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "Too Many Login Attempts", body["error"])
}

func TestLoginHandlerRejectsMissingFields(t *testing.T) {
	router := newTestRouter(&fakeVendor{}, newFakeRepo())
	recorder := postJSON(t, router, "/auth/login", map[string]string{"email": "jane@example.com"}, "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestProtectedRouteRequiresBearer(t *testing.T) {
	router := newTestRouter(&fakeVendor{}, newFakeRepo())

	req := httptest.NewRequest("GET", "/onboarding/current-step", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "Unauthorized", body["error"])
}

func TestProtectedRouteRejectsGarbageToken(t *testing.T) {
	router := newTestRouter(&fakeVendor{}, newFakeRepo())

	req := httptest.NewRequest("GET", "/onboarding/current-step", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestLoginThenCurrentStep(t *testing.T) {
	customer := &domain.Customer{
		UID:         "cust-1",
		ExternalUID: "ext-1",
		Email:       "jane@example.com",
		Status:      domain.CustomerStatusInitiated,
	}
	workflow := &domain.ComplianceWorkflow{
		UID:     "wf-1",
		Summary: domain.WorkflowSummary{Status: domain.WorkflowStatusInProgress, CurrentStep: 1},
	}
	router := newTestRouter(&fakeVendor{customer: customer, workflow: workflow}, newFakeRepo())

	login := postJSON(t, router, "/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, login.Code)

	var authResult struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &authResult))
	require.NotEmpty(t, authResult.Token)

	req := httptest.NewRequest("GET", "/onboarding/current-step", nil)
	req.Header.Set("Authorization", "Bearer "+authResult.Token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var state struct {
		Step string `json:"step"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &state))
	require.Equal(t, string(domain.StepDisclosures), state.Step)
}

func TestClientIPPrefersForwardedHeader(t *testing.T) {
	req := httptest.NewRequest("POST", "/onboarding/acknowledgements", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	require.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	require.Equal(t, "203.0.113.7", clientIP(req))
}
