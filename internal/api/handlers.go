/**
 * @description
 * This file contains the HTTP handlers for the onboarding service's API
 * endpoints. Handlers parse incoming requests, call the application service,
 * and translate service errors into the display strings the frontend shows.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/app, internal/store: For service logic and custom errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RizeFinance/onboarding-service/internal/app"
	"github.com/RizeFinance/onboarding-service/internal/domain"
	"github.com/RizeFinance/onboarding-service/internal/store"
	"github.com/RizeFinance/onboarding-service/pkg/rizeclient"
)

// Display strings shown verbatim by the frontend.
const (
	msgWrongCredentials = "Wrong Email and/or Password"
	msgTooManyAttempts  = "Too Many Login Attempts"
	msgUnauthorized     = "Unauthorized"
	msgGenericFailure   = "Something went wrong"
)

// Handlers holds the application service that handlers will use.
type Handlers struct {
	service *app.Service
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(service *app.Service) *Handlers {
	return &Handlers{service: service}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates a new customer and starts a session.
func (h *Handlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// LoginHandler authenticates a customer and starts a session.
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// LogoutHandler revokes the current session.
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	if err := h.service.Logout(r.Context(), session.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// ForgotPasswordHandler requests a password reset code. It always answers
// 200 so the endpoint cannot be used to probe for registered addresses.
func (h *Handlers) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	_ = h.service.ForgotPassword(r.Context(), req.Email)
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// ConfirmPasswordHandler completes a password reset with the emailed code.
func (h *Handlers) ConfirmPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Email, code, and new password are required")
		return
	}

	result, err := h.service.ConfirmPassword(r.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SetPasswordHandler changes the password for an authenticated session.
func (h *Handlers) SetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Current and new password are required")
		return
	}
	if err := h.service.SetPassword(r.Context(), session, req.CurrentPassword, req.NewPassword); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// CurrentStepHandler resolves and returns the session's onboarding position.
func (h *Handlers) CurrentStepHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	state, err := h.service.CurrentStep(r.Context(), session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// DisclosuresHandler returns the documents pending on the current step.
func (h *Handlers) DisclosuresHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	documents, err := h.service.Disclosures(r.Context(), session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": documents})
}

// AcknowledgeDocumentsHandler accepts a batch of disclosure documents.
func (h *Handlers) AcknowledgeDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var req struct {
		DocumentUIDs []string `json:"document_uids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.DocumentUIDs) == 0 {
		writeError(w, http.StatusBadRequest, "document_uids is required")
		return
	}

	workflow, err := h.service.AcknowledgeDocuments(r.Context(), session, req.DocumentUIDs, clientIP(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workflow)
}

// SubmitProfileHandler validates and submits the customer's PII.
func (h *Handlers) SubmitProfileHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var params app.ProfileParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.service.SubmitProfile(r.Context(), session, params)
	if err != nil {
		var fieldErrs app.FieldErrors
		if errors.As(err, &fieldErrs) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": fieldErrs})
			return
		}
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// VerifyCustomerHandler submits the application for identity verification.
func (h *Handlers) VerifyCustomerHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	customer, err := h.service.VerifyCustomer(r.Context(), session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// ListProductsHandler returns the customer's product enrollments.
func (h *Handlers) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	products, err := h.service.ListProducts(r.Context(), session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": products})
}

// EnrollProductHandler enrolls the customer in a program product.
func (h *Handlers) EnrollProductHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var body struct {
		ProductUID string `json:"product_uid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductUID == "" {
		writeError(w, http.StatusBadRequest, "product_uid is required")
		return
	}
	product, err := h.service.EnrollProduct(r.Context(), session, body.ProductUID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// SubmitProfileAnswersHandler batches profile requirement responses.
func (h *Handlers) SubmitProfileAnswersHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var body struct {
		Answers []domain.ProfileAnswer `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers are required")
		return
	}
	if err := h.service.SubmitProfileAnswers(r.Context(), session, body.Answers); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Accounts ----

func (h *Handlers) ListAccountsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	accounts, err := h.service.ListAccounts(r.Context(), session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": accounts})
}

func (h *Handlers) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	account, err := h.service.GetAccount(r.Context(), session, chi.URLParam(r, "uid"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handlers) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var params rizeclient.CreateSyntheticAccountParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.Name == "" || params.SyntheticAccountTypeUID == "" {
		writeError(w, http.StatusBadRequest, "name and synthetic_account_type_uid are required")
		return
	}
	account, err := h.service.CreateAccount(r.Context(), session, params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *Handlers) ArchiveAccountHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	if err := h.service.ArchiveAccount(r.Context(), session, chi.URLParam(r, "uid")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

func (h *Handlers) ListAccountTypesHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	types, err := h.service.ListAccountTypes(r.Context(), session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": types})
}

func (h *Handlers) PlaidLinkTokenHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	token, err := h.service.PlaidLinkToken(r.Context(), session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ---- Debit cards ----

func (h *Handlers) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	cards, err := h.service.ListCards(r.Context(), session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": cards})
}

func (h *Handlers) GetCardHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	card, err := h.service.GetCard(r.Context(), session, chi.URLParam(r, "uid"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *Handlers) CreateCardHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var req struct {
		SyntheticAccountUID string `json:"synthetic_account_uid"`
		PoolUID             string `json:"pool_uid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SyntheticAccountUID == "" {
		writeError(w, http.StatusBadRequest, "synthetic_account_uid is required")
		return
	}
	card, err := h.service.CreateCard(r.Context(), session, req.SyntheticAccountUID, req.PoolUID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (h *Handlers) LockCardHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reason == "" {
		writeError(w, http.StatusBadRequest, "reason is required")
		return
	}
	card, err := h.service.LockCard(r.Context(), session, chi.URLParam(r, "uid"), req.Reason)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *Handlers) UnlockCardHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	card, err := h.service.UnlockCard(r.Context(), session, chi.URLParam(r, "uid"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *Handlers) ReissueCardHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reason == "" {
		writeError(w, http.StatusBadRequest, "reason is required")
		return
	}
	card, err := h.service.ReissueCard(r.Context(), session, chi.URLParam(r, "uid"), req.Reason)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *Handlers) ActivateCardHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var req struct {
		CardLastFour string `json:"card_last_four_digits"`
		CVV          string `json:"cvv"`
		ExpiryDate   string `json:"expiry_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CardLastFour == "" || req.CVV == "" || req.ExpiryDate == "" {
		writeError(w, http.StatusBadRequest, "card_last_four_digits, cvv, and expiry_date are required")
		return
	}
	card, err := h.service.ActivateCard(r.Context(), session, chi.URLParam(r, "uid"), req.CardLastFour, req.CVV, req.ExpiryDate)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *Handlers) PinSetTokenHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	token, err := h.service.PinSetToken(r.Context(), session, chi.URLParam(r, "uid"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"pin_change_token": token})
}

func (h *Handlers) CardAccessTokenHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	token, err := h.service.CardAccessToken(r.Context(), session, chi.URLParam(r, "uid"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (h *Handlers) MigrateCardHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	card, err := h.service.MigrateCard(r.Context(), session, chi.URLParam(r, "uid"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// ---- Activity ----

func (h *Handlers) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	params := rizeclient.ListTransactionsParams{
		SyntheticAccountUID: r.URL.Query().Get("synthetic_account_uid"),
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid limit")
		return
	}
	params.Limit = limit
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid offset")
		return
	}
	params.Offset = offset

	transactions, err := h.service.ListTransactions(r.Context(), session, params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": transactions})
}

func (h *Handlers) ListStatementsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	statements, err := h.service.ListStatements(r.Context(), session)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": statements})
}

func (h *Handlers) ViewStatementHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	body, contentType, err := h.service.ViewStatement(r.Context(), session, chi.URLParam(r, "uid"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// ---- helpers ----

// writeAuthError maps credential-endpoint failures to the frontend's display
// strings.
func (h *Handlers) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, msgWrongCredentials)
	case errors.Is(err, app.ErrTooManyLoginAttempts):
		writeError(w, http.StatusTooManyRequests, msgTooManyAttempts)
	default:
		log.Printf("level=error component=api msg=\"auth request failed\" err=%v", err)
		writeError(w, http.StatusInternalServerError, msgGenericFailure)
	}
}

// writeServiceError maps in-flow failures from the application service.
func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *rizeclient.APIError
	switch {
	case errors.Is(err, app.ErrSessionExpired), errors.Is(err, store.ErrSessionNotFound):
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, app.ErrForbidden):
		writeError(w, http.StatusForbidden, msgUnauthorized)
	case errors.Is(err, app.ErrWorkflowStillExpired):
		writeError(w, http.StatusConflict, "Your application expired. Please contact support.")
	case errors.As(err, &apiErr):
		log.Printf("level=warn component=api msg=\"vendor request failed\" status=%d err=%v", apiErr.StatusCode, err)
		writeError(w, http.StatusBadGateway, msgGenericFailure)
	default:
		log.Printf("level=error component=api msg=\"request failed\" err=%v", err)
		writeError(w, http.StatusInternalServerError, msgGenericFailure)
	}
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errors.New("invalid " + name)
	}
	return value, nil
}

// writeJSON is a helper for writing JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for writing JSON error responses.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
