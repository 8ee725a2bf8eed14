/**
 * @description
 * This file defines the compliance workflow models returned by the Rize API.
 * A compliance workflow is the server-tracked record of which legal and
 * disclosure documents a customer must accept, grouped into ordered steps.
 * The workflow is owned by the vendor and replaced wholesale on every
 * acknowledgement call; this service never patches or merges it.
 */

package domain

// Compliance workflow summary statuses as reported by the vendor.
const (
	WorkflowStatusInProgress = "in_progress"
	WorkflowStatusAccepted   = "accepted"
	WorkflowStatusExpired    = "expired"
)

// PatriotActStorageName is the stable identifier of the USA PATRIOT Act
// disclosure within a workflow. Document UIDs are workflow-scoped and change
// on renewal; external_storage_name does not.
const PatriotActStorageName = "usa_ptrt_0"

// Document is a single legal/disclosure document inside a compliance workflow.
type Document struct {
	UID                   string `json:"uid"`
	Name                  string `json:"name"`
	Step                  int    `json:"step"`
	ExternalStorageName   string `json:"external_storage_name"`
	ComplianceDocumentURL string `json:"compliance_document_url"`
}

// WorkflowSummary carries the vendor's view of where the customer is in the
// onboarding document flow. CurrentStep is monotonically non-decreasing while
// Status is in_progress.
type WorkflowSummary struct {
	Status      string `json:"status"`
	CurrentStep int    `json:"current_step"`
}

// WorkflowCustomer is the customer stub embedded in a workflow payload.
type WorkflowCustomer struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	ExternalUID string `json:"external_uid"`
}

// ComplianceWorkflow is the full workflow record. Invariant (vendor-side):
// accepted_documents and current_step_documents_pending are both subsets of
// all_documents.
type ComplianceWorkflow struct {
	UID                         string           `json:"uid"`
	Summary                     WorkflowSummary  `json:"summary"`
	AllDocuments                []Document       `json:"all_documents"`
	AcceptedDocuments           []Document       `json:"accepted_documents"`
	CurrentStepDocumentsPending []Document       `json:"current_step_documents_pending"`
	Customer                    WorkflowCustomer `json:"customer"`
}

// HasAcceptedDocument reports whether a document with the given stable
// external storage name is among the accepted documents.
func (w *ComplianceWorkflow) HasAcceptedDocument(externalStorageName string) bool {
	if w == nil {
		return false
	}
	for _, doc := range w.AcceptedDocuments {
		if doc.ExternalStorageName == externalStorageName {
			return true
		}
	}
	return false
}

// PendingDocumentUIDs returns the UIDs of all documents awaiting
// acknowledgement in the current step, in vendor order.
func (w *ComplianceWorkflow) PendingDocumentUIDs() []string {
	if w == nil {
		return nil
	}
	uids := make([]string, 0, len(w.CurrentStepDocumentsPending))
	for _, doc := range w.CurrentStepDocumentsPending {
		uids = append(uids, doc.UID)
	}
	return uids
}
