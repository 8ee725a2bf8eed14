/**
 * @description
 * rizectl is an operator CLI for exercising the Rize API directly: sign in as
 * a customer, inspect the compliance workflow and resolved onboarding step,
 * acknowledge pending documents, and list accounts and cards. It talks to the
 * vendor with the same client the service uses, so behavior matches the
 * backend exactly.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RizeFinance/onboarding-service/internal/app"
	"github.com/RizeFinance/onboarding-service/pkg/rizeclient"
)

var (
	baseURL    string
	programUID string
	hmacKey    string
	email      string
	password   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "rizectl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rizectl",
		Short: "Operator CLI for the Rize onboarding API",
		Long: `rizectl authenticates against the Rize API as a customer and inspects
onboarding state: the latest compliance workflow, the resolved step, pending
disclosures, synthetic accounts, and debit cards.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", envOr("RIZE_API_BASE_URL", "https://sandbox.rizefs.com/api/v1"), "Rize API base URL")
	cmd.PersistentFlags().StringVar(&programUID, "program-uid", os.Getenv("RIZE_PROGRAM_UID"), "Rize program UID")
	cmd.PersistentFlags().StringVar(&hmacKey, "hmac-key", os.Getenv("RIZE_HMAC_KEY"), "Rize program HMAC key")
	cmd.PersistentFlags().StringVarP(&email, "email", "e", os.Getenv("RIZE_EMAIL"), "Customer email")
	cmd.PersistentFlags().StringVarP(&password, "password", "p", os.Getenv("RIZE_PASSWORD"), "Customer password")
	cmd.AddCommand(
		newCurrentStepCmd(),
		newWorkflowCmd(),
		newAcknowledgeCmd(),
		newAccountsCmd(),
		newCardsCmd(),
	)
	return cmd
}

func newCurrentStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current-step",
		Short: "Resolve and print the customer's onboarding step",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, auth, err := authenticate(ctx)
			if err != nil {
				return err
			}
			workflow, err := client.LatestWorkflow(ctx, auth.AccessToken)
			if err != nil {
				return err
			}
			customer, err := client.GetCustomer(ctx, auth.AccessToken)
			if err != nil {
				return err
			}
			step := app.ResolveStep(workflow, customer)
			fmt.Printf("status=%s current_step=%d resolved=%s\n", workflow.Summary.Status, workflow.Summary.CurrentStep, step)
			return nil
		},
	}
}

func newWorkflowCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Print the latest compliance workflow as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, auth, err := authenticate(ctx)
			if err != nil {
				return err
			}
			if all {
				workflows, err := client.ListWorkflows(ctx, auth.AccessToken)
				if err != nil {
					return err
				}
				return printJSON(workflows)
			}
			workflow, err := client.LatestWorkflow(ctx, auth.AccessToken)
			if err != nil {
				return err
			}
			return printJSON(workflow)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print every workflow, not just the latest")
	return cmd
}

func newAcknowledgeCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "acknowledge [document-uid...]",
		Short: "Accept disclosure documents on the current workflow step",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, auth, err := authenticate(ctx)
			if err != nil {
				return err
			}
			uids := args
			if all {
				workflow, err := client.LatestWorkflow(ctx, auth.AccessToken)
				if err != nil {
					return err
				}
				uids = workflow.PendingDocumentUIDs()
			}
			if len(uids) == 0 {
				return fmt.Errorf("no documents to acknowledge")
			}
			acks := make([]rizeclient.DocumentAcknowledgement, 0, len(uids))
			for _, uid := range uids {
				acks = append(acks, rizeclient.DocumentAcknowledgement{
					DocumentUID: uid,
					Accept:      "yes",
					UserName:    email,
				})
			}
			workflow, err := client.AcknowledgeDocuments(ctx, auth.AccessToken, acks)
			if err != nil {
				return err
			}
			fmt.Printf("acknowledged=%d status=%s current_step=%d\n", len(uids), workflow.Summary.Status, workflow.Summary.CurrentStep)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Acknowledge every pending document on the current step")
	return cmd
}

func newAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the customer's synthetic accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, auth, err := authenticate(ctx)
			if err != nil {
				return err
			}
			accounts, err := client.ListSyntheticAccounts(ctx, auth.AccessToken)
			if err != nil {
				return err
			}
			for _, account := range accounts {
				fmt.Printf("uid=%s name=%q category=%s liability=%t balance=%s\n",
					account.UID, account.Name, account.SyntheticAccountCategory, account.Liability, account.NetUSDBalance)
			}
			return nil
		},
	}
}

func newCardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List the customer's debit cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, auth, err := authenticate(ctx)
			if err != nil {
				return err
			}
			cards, err := client.ListDebitCards(ctx, auth.AccessToken)
			if err != nil {
				return err
			}
			for _, card := range cards {
				fmt.Printf("uid=%s status=%s last_four=%s usable=%t\n", card.UID, card.Status, card.CardLastFourDigits, card.Usable())
			}
			return nil
		},
	}
}

func authenticate(ctx context.Context) (*rizeclient.Client, *rizeclient.AuthResponse, error) {
	if programUID == "" || hmacKey == "" {
		return nil, nil, fmt.Errorf("program credentials required (--program-uid, --hmac-key)")
	}
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("customer credentials required (--email, --password)")
	}
	client := rizeclient.NewClient(baseURL, programUID, hmacKey)
	auth, err := client.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	return client, auth, nil
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
