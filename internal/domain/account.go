/**
 * @description
 * Synthetic account and transaction models. A synthetic account is the
 * vendor's representation of a customer-facing bank account or a linked
 * external account. Dollar amounts arrive from the vendor as decimal strings,
 * so they are carried as shopspring decimals rather than floats.
 */

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Synthetic account categories the onboarding flow cares about.
const (
	AccountCategoryGeneral       = "general"
	AccountCategoryExternal      = "external"
	AccountCategoryPlaidExternal = "plaid_external"
	AccountCategoryTargetYield   = "target_yield_account"
)

// SyntheticAccount is a vendor account record.
type SyntheticAccount struct {
	UID                      string          `json:"uid"`
	ExternalUID              string          `json:"external_uid,omitempty"`
	Name                     string          `json:"name"`
	SyntheticAccountTypeUID  string          `json:"synthetic_account_type_uid"`
	SyntheticAccountCategory string          `json:"synthetic_account_category"`
	Status                   string          `json:"status"`
	Liability                bool            `json:"liability"`
	MasterAccount            bool            `json:"master_account"`
	NetUSDBalance            decimal.Decimal `json:"net_usd_balance"`
	NetUSDPendingBalance     decimal.Decimal `json:"net_usd_pending_balance"`
	NetUSDAvailableBalance   decimal.Decimal `json:"net_usd_available_balance"`
	AccountNumberLastFour    string          `json:"account_number_last_four,omitempty"`
	RoutingNumber            string          `json:"routing_number,omitempty"`
	OpenedAt                 *time.Time      `json:"opened_at,omitempty"`
	ClosedAt                 *time.Time      `json:"closed_at,omitempty"`
}

// IsTargetYieldLiability reports whether the account is the liability account
// whose appearance marks the end of application processing.
func (a SyntheticAccount) IsTargetYieldLiability() bool {
	return a.Liability && a.SyntheticAccountCategory == AccountCategoryTargetYield
}

// SyntheticAccountType describes an account type offered by the program.
type SyntheticAccountType struct {
	UID                      string `json:"uid"`
	Name                     string `json:"name"`
	SyntheticAccountCategory string `json:"synthetic_account_category"`
	Description              string `json:"description,omitempty"`
	ProgramUID               string `json:"program_uid"`
}

// Transaction is a ledger entry on a synthetic account.
type Transaction struct {
	UID                            string          `json:"uid"`
	SourceSyntheticAccountUID      string          `json:"source_synthetic_account_uid,omitempty"`
	DestinationSyntheticAccountUID string          `json:"destination_synthetic_account_uid,omitempty"`
	Status                         string          `json:"status"`
	TransactionType                string          `json:"type"`
	NetAsset                       string          `json:"net_asset"` // "positive" or "negative"
	USDollarAmount                 decimal.Decimal `json:"us_dollar_amount"`
	Description                    string          `json:"description"`
	CreatedAt                      time.Time       `json:"created_at"`
	SettledAt                      *time.Time      `json:"settled_at,omitempty"`
}

// Statement is a periodic account document (e.g. monthly statement) that can
// be fetched as a PDF from the vendor.
type Statement struct {
	UID             string     `json:"uid"`
	DocumentType    string     `json:"scope_type"`
	Name            string     `json:"name"`
	PeriodStartedAt *time.Time `json:"period_started_at,omitempty"`
	PeriodEndedAt   *time.Time `json:"period_ended_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
