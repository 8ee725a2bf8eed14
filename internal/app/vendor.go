/**
 * @description
 * The Vendor interface lists every Rize API call the application layer makes.
 * *rizeclient.Client satisfies it; tests substitute stubs.
 */

package app

import (
	"context"

	"github.com/RizeFinance/onboarding-service/internal/domain"
	"github.com/RizeFinance/onboarding-service/pkg/rizeclient"
)

// Vendor is the subset of the Rize client the service depends on.
type Vendor interface {
	// Identity / session
	Register(ctx context.Context, email, password string) (*rizeclient.AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*rizeclient.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ConfirmPassword(ctx context.Context, email, code, newPassword string) (*rizeclient.AuthResponse, error)
	SetPassword(ctx context.Context, accessToken, currentPassword, newPassword string) error

	// Customer
	GetCustomer(ctx context.Context, accessToken string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, accessToken string, params rizeclient.UpdateCustomerParams) (*domain.Customer, error)
	VerifyCustomer(ctx context.Context, accessToken string) (*domain.Customer, error)
	ListCustomerProducts(ctx context.Context, accessToken string) ([]domain.CustomerProduct, error)
	CreateCustomerProduct(ctx context.Context, accessToken, productUID string) (*domain.CustomerProduct, error)
	SubmitProfileAnswers(ctx context.Context, accessToken string, answers []domain.ProfileAnswer) error

	// Compliance workflows
	LatestWorkflow(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error)
	CreateWorkflow(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error)
	RenewWorkflow(ctx context.Context, accessToken, externalUID, customerUID, email string) (*domain.ComplianceWorkflow, error)
	AcknowledgeDocuments(ctx context.Context, accessToken string, docs []rizeclient.DocumentAcknowledgement) (*domain.ComplianceWorkflow, error)

	// Accounts
	ListSyntheticAccounts(ctx context.Context, accessToken string) ([]domain.SyntheticAccount, error)
	GetSyntheticAccount(ctx context.Context, accessToken, uid string) (*domain.SyntheticAccount, error)
	CreateSyntheticAccount(ctx context.Context, accessToken string, params rizeclient.CreateSyntheticAccountParams) (*domain.SyntheticAccount, error)
	ArchiveSyntheticAccount(ctx context.Context, accessToken, uid string) error
	ListSyntheticAccountTypes(ctx context.Context, accessToken string) ([]domain.SyntheticAccountType, error)
	GetPlaidLinkToken(ctx context.Context, accessToken string) (string, error)

	// Cards
	ListDebitCards(ctx context.Context, accessToken string) ([]domain.DebitCard, error)
	GetDebitCard(ctx context.Context, accessToken, uid string) (*domain.DebitCard, error)
	CreateDebitCard(ctx context.Context, accessToken, syntheticAccountUID, poolUID string) (*domain.DebitCard, error)
	LockDebitCard(ctx context.Context, accessToken, uid, reason string) (*domain.DebitCard, error)
	UnlockDebitCard(ctx context.Context, accessToken, uid string) (*domain.DebitCard, error)
	ReissueDebitCard(ctx context.Context, accessToken, uid, reason string) (*domain.DebitCard, error)
	ActivateDebitCard(ctx context.Context, accessToken, uid, cardLastFour, cvv, expiryDate string) (*domain.DebitCard, error)
	GetPinSetToken(ctx context.Context, accessToken, uid string) (string, error)
	GetCardAccessToken(ctx context.Context, accessToken, uid string) (*rizeclient.CardAccessToken, error)
	MigrateVirtualCard(ctx context.Context, accessToken, uid string) (*domain.DebitCard, error)

	// Activity
	ListTransactions(ctx context.Context, accessToken string, params rizeclient.ListTransactionsParams) ([]domain.Transaction, error)
	ListStatements(ctx context.Context, accessToken string) ([]domain.Statement, error)
	ViewStatement(ctx context.Context, accessToken, uid string) ([]byte, string, error)
}
