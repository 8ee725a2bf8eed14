package rizeclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/RizeFinance/onboarding-service/internal/domain"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "program-1", "hmac-secret")
	return client, server
}

func TestAuthenticateSendsProgramToken(t *testing.T) {
	var gotAuth string
	var gotBody credentialsRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/auth/authenticate", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			Customer:     &domain.Customer{UID: "cust-1", Email: "jane@example.com"},
		})
	})
	defer server.Close()

	resp, err := client.Authenticate(context.Background(), "jane@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "access-1", resp.AccessToken)
	require.Equal(t, "cust-1", resp.Customer.UID)
	require.Equal(t, "program-1", gotBody.ProgramUID)

	// The bearer is an HMAC-signed JWT whose subject is the program UID.
	tokenString := strings.TrimPrefix(gotAuth, "Bearer ")
	require.NotEqual(t, gotAuth, tokenString)
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		require.IsType(t, &jwt.SigningMethodHMAC{}, token.Method)
		return []byte("hmac-secret"), nil
	})
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, "program-1", sub)
}

func TestAPIErrorParsing(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"title":"Invalid credentials","detail":"Email or password is wrong","occurred_at":"2022-03-01T00:00:00Z"}]}`))
	})
	defer server.Close()

	_, err := client.Authenticate(context.Background(), "jane@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid credentials", apiErr.Errors[0].Title)
	require.Contains(t, apiErr.Error(), "Invalid credentials")
}

func TestAPIErrorUnparsableBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})
	defer server.Close()

	_, err := client.GetCustomer(context.Background(), "access-1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Empty(t, apiErr.Errors)
}

func TestGetCustomerUsesAccessToken(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		require.Equal(t, "/customer", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Customer{UID: "cust-1", Status: domain.CustomerStatusActive})
	})
	defer server.Close()

	customer, err := client.GetCustomer(context.Background(), "access-1")
	require.NoError(t, err)
	require.Equal(t, domain.CustomerStatusActive, customer.Status)
}

func TestAcknowledgeDocumentsBatchPayload(t *testing.T) {
	var payload struct {
		Documents []DocumentAcknowledgement `json:"documents"`
	}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/compliance_workflows/batch_acknowledge_documents", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(domain.ComplianceWorkflow{
			UID:     "wf-2",
			Summary: domain.WorkflowSummary{Status: domain.WorkflowStatusInProgress, CurrentStep: 2},
		})
	})
	defer server.Close()

	docs := []DocumentAcknowledgement{
		{DocumentUID: "doc-1", Accept: "yes", IPAddress: "203.0.113.7", UserName: "Jane Doe"},
		{DocumentUID: "doc-2", Accept: "yes", IPAddress: "203.0.113.7", UserName: "Jane Doe"},
	}
	workflow, err := client.AcknowledgeDocuments(context.Background(), "access-1", docs)
	require.NoError(t, err)
	require.Equal(t, "wf-2", workflow.UID)
	require.Len(t, payload.Documents, 2)
	require.Equal(t, "yes", payload.Documents[0].Accept)
}

func TestListSyntheticAccountsUnwrapsEnvelope(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/synthetic_accounts", r.URL.Path)
		w.Write([]byte(`{
			"total_count": 1,
			"count": 1,
			"limit": 100,
			"offset": 0,
			"data": [{
				"uid": "acct-1",
				"name": "Spending",
				"synthetic_account_category": "target_yield_account",
				"liability": true,
				"net_usd_balance": "125.50"
			}]
		}`))
	})
	defer server.Close()

	accounts, err := client.ListSyntheticAccounts(context.Background(), "access-1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.True(t, accounts[0].IsTargetYieldLiability())
	require.Equal(t, "125.5", accounts[0].NetUSDBalance.String())
}

func TestListTransactionsQueryParams(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "25", query.Get("limit"))
		require.Equal(t, "50", query.Get("offset"))
		require.Equal(t, "acct-1", query.Get("synthetic_account_uid"))
		w.Write([]byte(`{"total_count":0,"count":0,"limit":25,"offset":50,"data":[]}`))
	})
	defer server.Close()

	transactions, err := client.ListTransactions(context.Background(), "access-1", ListTransactionsParams{
		Limit:               25,
		Offset:              50,
		SyntheticAccountUID: "acct-1",
	})
	require.NoError(t, err)
	require.Empty(t, transactions)
}

func TestViewStatementReturnsRawBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents/stmt-1/view", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	})
	defer server.Close()

	body, contentType, err := client.ViewStatement(context.Background(), "access-1", "stmt-1")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", contentType)
	require.Equal(t, "%PDF-1.4 fake", string(body))
}
