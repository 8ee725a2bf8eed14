/**
 * @description
 * Debit card lifecycle endpoints: issuance, lock/unlock, reissue, physical
 * activation, PIN set token, virtual card access token, and migration of a
 * virtual card to physical.
 */
package rizeclient

import (
	"context"
	"net/url"

	"github.com/RizeFinance/onboarding-service/internal/domain"
)

// ListDebitCards returns all of the customer's debit cards.
func (c *Client) ListDebitCards(ctx context.Context, accessToken string) ([]domain.DebitCard, error) {
	var envelope listEnvelope[domain.DebitCard]
	if err := c.do(ctx, "GET", "/debit_cards", accessToken, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetDebitCard fetches one card by UID.
func (c *Client) GetDebitCard(ctx context.Context, accessToken, uid string) (*domain.DebitCard, error) {
	var card domain.DebitCard
	if err := c.do(ctx, "GET", "/debit_cards/"+url.PathEscape(uid), accessToken, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateDebitCard requests issuance of a new card against an account.
func (c *Client) CreateDebitCard(ctx context.Context, accessToken, syntheticAccountUID, poolUID string) (*domain.DebitCard, error) {
	var card domain.DebitCard
	payload := map[string]string{"synthetic_account_uid": syntheticAccountUID}
	if poolUID != "" {
		payload["pool_uid"] = poolUID
	}
	if err := c.do(ctx, "POST", "/debit_cards", accessToken, payload, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// LockDebitCard locks a card with a reason.
func (c *Client) LockDebitCard(ctx context.Context, accessToken, uid, reason string) (*domain.DebitCard, error) {
	var card domain.DebitCard
	payload := map[string]string{"lock_reason": reason}
	if err := c.do(ctx, "PUT", "/debit_cards/"+url.PathEscape(uid)+"/lock", accessToken, payload, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// UnlockDebitCard releases a customer-initiated lock. Vendor-initiated locks
// cannot be released here and surface as an APIError.
func (c *Client) UnlockDebitCard(ctx context.Context, accessToken, uid string) (*domain.DebitCard, error) {
	var card domain.DebitCard
	if err := c.do(ctx, "PUT", "/debit_cards/"+url.PathEscape(uid)+"/unlock", accessToken, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// ReissueDebitCard requests a replacement card (lost, stolen, damaged).
func (c *Client) ReissueDebitCard(ctx context.Context, accessToken, uid, reason string) (*domain.DebitCard, error) {
	var card domain.DebitCard
	payload := map[string]string{"reissue_reason": reason}
	if err := c.do(ctx, "PUT", "/debit_cards/"+url.PathEscape(uid)+"/reissue", accessToken, payload, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// ActivateDebitCard activates a received physical card.
func (c *Client) ActivateDebitCard(ctx context.Context, accessToken, uid, cardLastFour, cvv, expiryDate string) (*domain.DebitCard, error) {
	var card domain.DebitCard
	payload := map[string]string{
		"card_last_four_digits": cardLastFour,
		"cvv":                   cvv,
		"expiry_date":           expiryDate,
	}
	if err := c.do(ctx, "PUT", "/debit_cards/"+url.PathEscape(uid)+"/activate", accessToken, payload, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// GetPinSetToken returns a short-lived token for the card processor's PIN set
// widget.
func (c *Client) GetPinSetToken(ctx context.Context, accessToken, uid string) (string, error) {
	var resp struct {
		PinChangeToken string `json:"pin_change_token"`
	}
	if err := c.do(ctx, "GET", "/debit_cards/"+url.PathEscape(uid)+"/pin_set_token", accessToken, nil, &resp); err != nil {
		return "", err
	}
	return resp.PinChangeToken, nil
}

// CardAccessToken is the credential pair for rendering virtual card details.
type CardAccessToken struct {
	Token    string `json:"token"`
	ConfigID string `json:"config_id"`
}

// GetCardAccessToken returns the virtual card image access credentials.
func (c *Client) GetCardAccessToken(ctx context.Context, accessToken, uid string) (*CardAccessToken, error) {
	var resp CardAccessToken
	if err := c.do(ctx, "GET", "/debit_cards/"+url.PathEscape(uid)+"/access_token", accessToken, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MigrateVirtualCard converts a virtual card into a physical one shipped to
// the customer's address on file.
func (c *Client) MigrateVirtualCard(ctx context.Context, accessToken, uid string) (*domain.DebitCard, error) {
	var card domain.DebitCard
	if err := c.do(ctx, "POST", "/debit_cards/"+url.PathEscape(uid)+"/migrate", accessToken, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}
