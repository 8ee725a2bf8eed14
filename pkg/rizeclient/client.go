/**
 * @description
 * This package provides a client for the Rize BaaS REST API. It encapsulates
 * authenticated HTTP requests to the vendor's endpoints, request body
 * construction, and response parsing. Customer-scoped calls carry the
 * session's access token; program-scoped auth calls carry a short-lived JWT
 * signed with the program's HMAC key.
 *
 * @dependencies
 * - bytes, context, encoding/json, fmt, io, net/http, time: Standard Go libraries.
 * - github.com/golang-jwt/jwt/v5: For the HMAC-signed program auth token.
 */
package rizeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Client is a client for the Rize API.
type Client struct {
	BaseURL    string
	ProgramUID string
	HMACKey    []byte
	HTTPClient *http.Client
}

// NewClient creates a new Rize API client for one program.
func NewClient(baseURL, programUID, hmacKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		ProgramUID: programUID,
		HMACKey:    []byte(hmacKey),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents a non-2xx response from the Rize API.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail `json:"errors"`
}

// ErrorDetail is one vendor-reported error.
type ErrorDetail struct {
	Title      string `json:"title"`
	Detail     string `json:"detail"`
	OccurredAt string `json:"occurred_at,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("rize api error (status %d): %s - %s", e.StatusCode, e.Errors[0].Title, e.Errors[0].Detail)
	}
	return fmt.Sprintf("rize api error (status %d)", e.StatusCode)
}

// listEnvelope is the vendor's standard list response shape.
type listEnvelope[T any] struct {
	TotalCount int `json:"total_count"`
	Count      int `json:"count"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	Data       []T `json:"data"`
}

// programToken mints the short-lived HMAC-signed JWT used on program-scoped
// auth endpoints (register, authenticate).
func (c *Client) programToken() (string, error) {
	claims := jwt.MapClaims{
		"sub": c.ProgramUID,
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(c.HMACKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign program token: %w", err)
	}
	return signed, nil
}

// do executes one request against the vendor. A non-empty bearer token is set
// as the Authorization header; payload and out may each be nil.
func (c *Client) do(ctx context.Context, method, path, bearer string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(bodyBytes, apiErr); err != nil {
			log.Printf("level=warn component=rize_client method=%s path=%s status=%d msg=\"non-2xx response (unparsable error body)\"", method, path, resp.StatusCode)
			return apiErr
		}
		log.Printf("level=warn component=rize_client method=%s path=%s status=%d title=%q detail=%q", method, path, resp.StatusCode, firstErrorTitle(apiErr), firstErrorDetail(apiErr))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode success response: %w", err)
	}
	return nil
}

// doRaw executes one request and returns the raw body and content type. Used
// for binary document views.
func (c *Client) doRaw(ctx context.Context, method, path, bearer string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(bodyBytes, apiErr); jsonErr != nil {
			log.Printf("level=warn component=rize_client method=%s path=%s status=%d msg=\"non-2xx response (unparsable error body)\"", method, path, resp.StatusCode)
		}
		return nil, "", apiErr
	}

	return bodyBytes, resp.Header.Get("Content-Type"), nil
}

func firstErrorTitle(e *APIError) string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Title
}

func firstErrorDetail(e *APIError) string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Detail
}
