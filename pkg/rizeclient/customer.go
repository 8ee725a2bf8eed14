/**
 * @description
 * Customer profile endpoints: fetch, PII update, identity verification
 * kickoff, product enrollment, and batch profile answers.
 */
package rizeclient

import (
	"context"

	"github.com/RizeFinance/onboarding-service/internal/domain"
)

// UpdateCustomerParams is the payload for a customer PII update. Nil fields
// are omitted and left untouched vendor-side.
type UpdateCustomerParams struct {
	Email   string                  `json:"email,omitempty"`
	Details *domain.CustomerDetails `json:"details,omitempty"`
}

// GetCustomer fetches the customer record bound to the access token.
func (c *Client) GetCustomer(ctx context.Context, accessToken string) (*domain.Customer, error) {
	var customer domain.Customer
	if err := c.do(ctx, "GET", "/customer", accessToken, nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomer submits identity details and returns the updated record.
func (c *Client) UpdateCustomer(ctx context.Context, accessToken string, params UpdateCustomerParams) (*domain.Customer, error) {
	var customer domain.Customer
	if err := c.do(ctx, "PUT", "/customer", accessToken, params, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// VerifyCustomer asks the vendor to begin identity verification.
func (c *Client) VerifyCustomer(ctx context.Context, accessToken string) (*domain.Customer, error) {
	var customer domain.Customer
	if err := c.do(ctx, "PUT", "/customer/verify", accessToken, nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListCustomerProducts returns the customer's product enrollments.
func (c *Client) ListCustomerProducts(ctx context.Context, accessToken string) ([]domain.CustomerProduct, error) {
	var envelope listEnvelope[domain.CustomerProduct]
	if err := c.do(ctx, "GET", "/customer/customer_products", accessToken, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// CreateCustomerProduct enrolls the customer in a program product. The vendor
// runs its own eligibility checks; failures surface as an APIError.
func (c *Client) CreateCustomerProduct(ctx context.Context, accessToken, productUID string) (*domain.CustomerProduct, error) {
	var product domain.CustomerProduct
	payload := map[string]string{"product_uid": productUID}
	if err := c.do(ctx, "POST", "/customer/customer_products", accessToken, payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SubmitProfileAnswers submits the onboarding questionnaire in one batch.
func (c *Client) SubmitProfileAnswers(ctx context.Context, accessToken string, answers []domain.ProfileAnswer) error {
	payload := map[string]interface{}{"answers": answers}
	return c.do(ctx, "POST", "/customer/batch_profile_answers", accessToken, payload, nil)
}
