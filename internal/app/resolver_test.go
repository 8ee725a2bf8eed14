package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RizeFinance/onboarding-service/internal/domain"
)

func workflowWith(status string, step int, accepted ...string) *domain.ComplianceWorkflow {
	wf := &domain.ComplianceWorkflow{
		UID: "wf-1",
		Summary: domain.WorkflowSummary{
			Status:      status,
			CurrentStep: step,
		},
	}
	for i, name := range accepted {
		wf.AcceptedDocuments = append(wf.AcceptedDocuments, domain.Document{
			UID:                 "doc-" + name,
			Step:                i + 1,
			ExternalStorageName: name,
		})
	}
	return wf
}

func customerWith(status, firstName string) *domain.Customer {
	c := &domain.Customer{UID: "cust-1", Status: status}
	if firstName != "" {
		c.Details = &domain.CustomerDetails{FirstName: firstName, LastName: "Doe"}
	}
	return c
}

func TestResolveStep(t *testing.T) {
	tests := []struct {
		name     string
		workflow *domain.ComplianceWorkflow
		customer *domain.Customer
		want     domain.OnboardingStep
	}{
		{
			name:     "nil workflow resolves to loading",
			workflow: nil,
			customer: customerWith(domain.CustomerStatusInitiated, ""),
			want:     domain.StepLoading,
		},
		{
			name:     "nil customer resolves to loading",
			workflow: workflowWith(domain.WorkflowStatusInProgress, 1),
			customer: nil,
			want:     domain.StepLoading,
		},
		{
			name:     "expired workflow requires renewal regardless of step",
			workflow: workflowWith(domain.WorkflowStatusExpired, 2, domain.PatriotActStorageName),
			customer: customerWith(domain.CustomerStatusInitiated, "Jane"),
			want:     domain.StepRenewalRequired,
		},
		{
			name:     "step one shows initial disclosures",
			workflow: workflowWith(domain.WorkflowStatusInProgress, 1),
			customer: customerWith(domain.CustomerStatusInitiated, ""),
			want:     domain.StepDisclosures,
		},
		{
			name:     "step two without patriot act acceptance shows patriot act",
			workflow: workflowWith(domain.WorkflowStatusInProgress, 2, "eftd_agreement_0"),
			customer: customerWith(domain.CustomerStatusInitiated, ""),
			want:     domain.StepPatriotAct,
		},
		{
			name:     "patriot act gates pii even when pii already on file",
			workflow: workflowWith(domain.WorkflowStatusInProgress, 2),
			customer: customerWith(domain.CustomerStatusInitiated, "Jane"),
			want:     domain.StepPatriotAct,
		},
		{
			name:     "step two with patriot act accepted and no pii shows pii form",
			workflow: workflowWith(domain.WorkflowStatusInProgress, 2, domain.PatriotActStorageName),
			customer: customerWith(domain.CustomerStatusInitiated, ""),
			want:     domain.StepPII,
		},
		{
			name:     "step two with patriot act accepted and pii on file shows banking disclosures",
			workflow: workflowWith(domain.WorkflowStatusInProgress, 2, domain.PatriotActStorageName),
			customer: customerWith(domain.CustomerStatusInitiated, "Jane"),
			want:     domain.StepBankingDisclosures,
		},
		{
			name:     "later steps show banking disclosures",
			workflow: workflowWith(domain.WorkflowStatusInProgress, 3),
			customer: customerWith(domain.CustomerStatusInitiated, "Jane"),
			want:     domain.StepBankingDisclosures,
		},
		{
			name:     "accepted workflow moves to processing",
			workflow: workflowWith(domain.WorkflowStatusAccepted, 3),
			customer: customerWith(domain.CustomerStatusQueued, "Jane"),
			want:     domain.StepProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveStep(tt.workflow, tt.customer))
		})
	}
}

func TestResolveLanding(t *testing.T) {
	targetYield := domain.SyntheticAccount{
		UID:                      "acct-1",
		Liability:                true,
		SyntheticAccountCategory: domain.AccountCategoryTargetYield,
	}
	external := domain.SyntheticAccount{
		UID:                      "acct-2",
		SyntheticAccountCategory: domain.AccountCategoryPlaidExternal,
	}

	t.Run("stays processing until customer is active", func(t *testing.T) {
		got := ResolveLanding(customerWith(domain.CustomerStatusQueued, "Jane"), []domain.SyntheticAccount{targetYield})
		require.Equal(t, domain.StepProcessing, got)
	})

	t.Run("stays processing until the liability account exists", func(t *testing.T) {
		got := ResolveLanding(customerWith(domain.CustomerStatusActive, "Jane"), []domain.SyntheticAccount{external})
		require.Equal(t, domain.StepProcessing, got)
	})

	t.Run("lands home when active with a target yield liability account", func(t *testing.T) {
		got := ResolveLanding(customerWith(domain.CustomerStatusActive, "Jane"), []domain.SyntheticAccount{external, targetYield})
		require.Equal(t, domain.StepHome, got)
	})

	t.Run("non liability target yield account does not count", func(t *testing.T) {
		asset := targetYield
		asset.Liability = false
		got := ResolveLanding(customerWith(domain.CustomerStatusActive, "Jane"), []domain.SyntheticAccount{asset})
		require.Equal(t, domain.StepProcessing, got)
	})
}
