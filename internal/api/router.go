/**
 * @description
 * This file sets up the HTTP router for the onboarding service using the
 * go-chi/chi router. It defines the API routes, applies middleware for
 * logging, CORS, and session authentication, and maps the routes to their
 * corresponding handler functions.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 * - github.com/go-chi/cors: CORS middleware for the mobile/web clients.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/RizeFinance/onboarding-service/internal/app"
)

// NewRouter creates a new Chi router and registers the onboarding routes.
func NewRouter(h *Handlers, service *app.Service) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	// Public auth endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.RegisterHandler)
		r.Post("/login", h.LoginHandler)
		r.Post("/forgot-password", h.ForgotPasswordHandler)
		r.Post("/confirm-password", h.ConfirmPasswordHandler)
	})

	// Everything below requires an authenticated session.
	r.Group(func(r chi.Router) {
		r.Use(SessionAuthMiddleware(service))

		r.Post("/auth/logout", h.LogoutHandler)
		r.Put("/auth/password", h.SetPasswordHandler)

		// Onboarding flow
		r.Get("/onboarding/current-step", h.CurrentStepHandler)
		r.Get("/onboarding/disclosures", h.DisclosuresHandler)
		r.Post("/onboarding/acknowledgements", h.AcknowledgeDocumentsHandler)
		r.Put("/onboarding/profile", h.SubmitProfileHandler)
		r.Post("/onboarding/verify", h.VerifyCustomerHandler)
		r.Get("/onboarding/products", h.ListProductsHandler)
		r.Post("/onboarding/products", h.EnrollProductHandler)
		r.Post("/onboarding/profile-answers", h.SubmitProfileAnswersHandler)

		// Accounts
		r.Get("/accounts", h.ListAccountsHandler)
		r.Post("/accounts", h.CreateAccountHandler)
		r.Get("/accounts/types", h.ListAccountTypesHandler)
		r.Post("/accounts/plaid-link-token", h.PlaidLinkTokenHandler)
		r.Get("/accounts/{uid}", h.GetAccountHandler)
		r.Delete("/accounts/{uid}", h.ArchiveAccountHandler)

		// Debit cards
		r.Get("/cards", h.ListCardsHandler)
		r.Post("/cards", h.CreateCardHandler)
		r.Get("/cards/{uid}", h.GetCardHandler)
		r.Put("/cards/{uid}/lock", h.LockCardHandler)
		r.Put("/cards/{uid}/unlock", h.UnlockCardHandler)
		r.Put("/cards/{uid}/reissue", h.ReissueCardHandler)
		r.Put("/cards/{uid}/activate", h.ActivateCardHandler)
		r.Post("/cards/{uid}/pin-set-token", h.PinSetTokenHandler)
		r.Post("/cards/{uid}/access-token", h.CardAccessTokenHandler)
		r.Post("/cards/{uid}/migrate", h.MigrateCardHandler)

		// Activity
		r.Get("/transactions", h.ListTransactionsHandler)
		r.Get("/statements", h.ListStatementsHandler)
		r.Get("/statements/{uid}/view", h.ViewStatementHandler)
	})

	return r
}
