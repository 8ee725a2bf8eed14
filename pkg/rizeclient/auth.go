/**
 * @description
 * Identity and session endpoints of the Rize API: registration,
 * authentication, and the forgot/confirm/set password flows.
 */
package rizeclient

import (
	"context"
	"fmt"

	"github.com/RizeFinance/onboarding-service/internal/domain"
)

// AuthResponse is the vendor's response to a successful auth call.
type AuthResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Customer     *domain.Customer `json:"customer,omitempty"`
}

type credentialsRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	ProgramUID string `json:"program_uid"`
}

// Register creates a new customer and returns the initial token pair.
func (c *Client) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	bearer, err := c.programToken()
	if err != nil {
		return nil, err
	}
	var resp AuthResponse
	payload := credentialsRequest{Email: email, Password: password, ProgramUID: c.ProgramUID}
	if err := c.do(ctx, "POST", "/auth/register", bearer, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Authenticate exchanges credentials for a token pair.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	bearer, err := c.programToken()
	if err != nil {
		return nil, err
	}
	var resp AuthResponse
	payload := credentialsRequest{Email: email, Password: password, ProgramUID: c.ProgramUID}
	if err := c.do(ctx, "POST", "/auth/authenticate", bearer, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword starts the password reset flow; the vendor emails a
// confirmation code to the customer.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	bearer, err := c.programToken()
	if err != nil {
		return err
	}
	payload := map[string]string{"email": email, "program_uid": c.ProgramUID}
	return c.do(ctx, "POST", "/auth/forgot_password", bearer, payload, nil)
}

// ConfirmPassword completes the reset flow with the emailed code. A new token
// pair is returned on success.
func (c *Client) ConfirmPassword(ctx context.Context, email, code, newPassword string) (*AuthResponse, error) {
	bearer, err := c.programToken()
	if err != nil {
		return nil, err
	}
	var resp AuthResponse
	payload := map[string]string{
		"email":       email,
		"code":        code,
		"password":    newPassword,
		"program_uid": c.ProgramUID,
	}
	if err := c.do(ctx, "POST", "/auth/confirm_password", bearer, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetPassword changes the password for an authenticated session.
func (c *Client) SetPassword(ctx context.Context, accessToken, currentPassword, newPassword string) error {
	if accessToken == "" {
		return fmt.Errorf("set password requires an access token")
	}
	payload := map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	}
	return c.do(ctx, "POST", "/auth/set_password", accessToken, payload, nil)
}
