/**
 * @description
 * Compliance workflow endpoints. Every mutating call returns the full
 * replacement workflow; callers must swap their copy wholesale rather than
 * merging, since the vendor never patches workflows.
 */
package rizeclient

import (
	"context"

	"github.com/RizeFinance/onboarding-service/internal/domain"
)

// DocumentAcknowledgement is one entry in a batch acknowledgement call.
// Accept is always the literal "yes"; declining a required disclosure is not
// part of the vendor contract.
type DocumentAcknowledgement struct {
	DocumentUID string `json:"document_uid"`
	Accept      string `json:"accept"`
	IPAddress   string `json:"ip_address"`
	UserName    string `json:"user_name"`
}

// LatestWorkflow fetches the customer's most recent compliance workflow.
func (c *Client) LatestWorkflow(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error) {
	var wf domain.ComplianceWorkflow
	if err := c.do(ctx, "GET", "/compliance_workflows/latest", accessToken, nil, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// ListWorkflows returns all workflows for the customer, newest first.
func (c *Client) ListWorkflows(ctx context.Context, accessToken string) ([]domain.ComplianceWorkflow, error) {
	var envelope listEnvelope[domain.ComplianceWorkflow]
	if err := c.do(ctx, "GET", "/compliance_workflows", accessToken, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// CreateWorkflow starts a new compliance workflow for the customer.
func (c *Client) CreateWorkflow(ctx context.Context, accessToken string) (*domain.ComplianceWorkflow, error) {
	var wf domain.ComplianceWorkflow
	if err := c.do(ctx, "POST", "/compliance_workflows", accessToken, nil, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// RenewWorkflow replaces an expired workflow. Previously accepted documents
// must be re-acknowledged under the renewed workflow's new document UIDs.
func (c *Client) RenewWorkflow(ctx context.Context, accessToken, externalUID, customerUID, email string) (*domain.ComplianceWorkflow, error) {
	var wf domain.ComplianceWorkflow
	payload := map[string]string{
		"external_uid": externalUID,
		"customer_uid": customerUID,
		"email":        email,
	}
	if err := c.do(ctx, "POST", "/compliance_workflows/renew", accessToken, payload, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// AcknowledgeDocuments submits consent for one or more documents as a single
// atomic batch and returns the replacement workflow. Resubmitting an already
// accepted document is a vendor-side no-op.
func (c *Client) AcknowledgeDocuments(ctx context.Context, accessToken string, docs []DocumentAcknowledgement) (*domain.ComplianceWorkflow, error) {
	var wf domain.ComplianceWorkflow
	payload := map[string]interface{}{"documents": docs}
	if err := c.do(ctx, "POST", "/compliance_workflows/batch_acknowledge_documents", accessToken, payload, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}
