/**
 * @description
 * The onboarding step resolver. This is the single decision table that maps a
 * compliance workflow and customer snapshot to the next screen, replacing the
 * per-screen conditionals the mobile clients used to duplicate.
 *
 * The resolver is pure: it never fetches, never navigates, and never renews.
 * Callers re-run it after every mutating action with fresh snapshots.
 */

package app

import (
	"github.com/RizeFinance/onboarding-service/internal/domain"
)

// ResolveStep computes the next onboarding step from the two snapshots.
//
// Decision table:
//
//	status       step  condition                             result
//	(unloaded)   -     workflow or customer nil              loading
//	expired      any   -                                     renewal_required
//	in_progress  1     -                                     disclosures
//	in_progress  2     Patriot Act not yet accepted          patriot_act
//	in_progress  2     accepted, no PII on file              pii
//	in_progress  2     accepted, PII on file                 banking_disclosures
//	in_progress  3+    -                                     banking_disclosures
//	accepted     -     -                                     processing_application
//
// The accepted→home transition additionally depends on the account list; see
// ResolveLanding.
func ResolveStep(workflow *domain.ComplianceWorkflow, customer *domain.Customer) domain.OnboardingStep {
	if workflow == nil || customer == nil {
		return domain.StepLoading
	}

	switch workflow.Summary.Status {
	case domain.WorkflowStatusExpired:
		return domain.StepRenewalRequired
	case domain.WorkflowStatusAccepted:
		return domain.StepProcessing
	case domain.WorkflowStatusInProgress:
		// fall through to step dispatch below
	default:
		return domain.StepLoading
	}

	switch {
	case workflow.Summary.CurrentStep <= 1:
		return domain.StepDisclosures
	case workflow.Summary.CurrentStep == 2:
		if !workflow.HasAcceptedDocument(domain.PatriotActStorageName) {
			return domain.StepPatriotAct
		}
		if !customer.HasSubmittedPII() {
			return domain.StepPII
		}
		return domain.StepBankingDisclosures
	default:
		return domain.StepBankingDisclosures
	}
}

// ResolveLanding refines the post-acceptance state: the application stays in
// processing until the customer is active and the target yield liability
// account has been provisioned, then lands home.
func ResolveLanding(customer *domain.Customer, accounts []domain.SyntheticAccount) domain.OnboardingStep {
	if customer == nil {
		return domain.StepLoading
	}
	if customer.Status != domain.CustomerStatusActive {
		return domain.StepProcessing
	}
	for _, account := range accounts {
		if account.IsTargetYieldLiability() {
			return domain.StepHome
		}
	}
	return domain.StepProcessing
}
