/**
 * @description
 * The tagged onboarding step value. The step resolver maps a workflow and
 * customer snapshot to exactly one of these; callers branch on the value
 * instead of on parallel boolean flags.
 */

package domain

// OnboardingStep is the single screen/state the frontend should present next.
type OnboardingStep string

const (
	// StepLoading is the sentinel returned while either snapshot (workflow or
	// customer) has not been loaded yet. It is never a screen.
	StepLoading OnboardingStep = "loading"

	// StepRenewalRequired means the workflow has expired and must be renewed
	// before a screen can be chosen. The orchestrator performs exactly one
	// renewal and re-resolves; it never recurses.
	StepRenewalRequired OnboardingStep = "renewal_required"

	StepDisclosures        OnboardingStep = "disclosures"
	StepPatriotAct         OnboardingStep = "patriot_act"
	StepPII                OnboardingStep = "pii"
	StepBankingDisclosures OnboardingStep = "banking_disclosures"
	StepProcessing         OnboardingStep = "processing_application"
	StepHome               OnboardingStep = "home"
)
