/**
 * @description
 * Bounded status watchers. Each watcher polls the vendor on a fixed interval
 * until a condition holds, the context is cancelled, or the attempt cap is
 * reached. The cap exists so a stuck vendor record surfaces as an error
 * instead of an endless poll loop.
 */

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/RizeFinance/onboarding-service/internal/domain"
)

// AwaitActiveCustomer polls the customer record until its status becomes
// active, e.g. while the processing_application screen is shown.
func (s *Service) AwaitActiveCustomer(ctx context.Context, session *domain.Session) (*domain.Customer, error) {
	var customer *domain.Customer
	err := s.poll(ctx, "customer_active", func(ctx context.Context) (bool, error) {
		fetched, err := s.rize.GetCustomer(ctx, session.AccessToken)
		if err != nil {
			return false, s.wrapVendorErr(ctx, session, err)
		}
		s.noteCustomerStatus(ctx, session, fetched)
		customer = fetched
		switch fetched.Status {
		case domain.CustomerStatusActive:
			return true, nil
		case domain.CustomerStatusRejected, domain.CustomerStatusArchived:
			return false, fmt.Errorf("customer entered terminal status %q", fetched.Status)
		default:
			return false, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// AwaitTargetYieldAccount polls the synthetic account list until the target
// yield liability account exists, which is the last provisioning step before
// the customer can land home.
func (s *Service) AwaitTargetYieldAccount(ctx context.Context, session *domain.Session) (*domain.SyntheticAccount, error) {
	var account *domain.SyntheticAccount
	err := s.poll(ctx, "target_yield_account", func(ctx context.Context) (bool, error) {
		accounts, err := s.rize.ListSyntheticAccounts(ctx, session.AccessToken)
		if err != nil {
			return false, s.wrapVendorErr(ctx, session, err)
		}
		for i := range accounts {
			if accounts[i].IsTargetYieldLiability() {
				account = &accounts[i]
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// AwaitReissuedCard polls a reissued card until it leaves the queued state.
func (s *Service) AwaitReissuedCard(ctx context.Context, session *domain.Session, cardUID string) (*domain.DebitCard, error) {
	var card *domain.DebitCard
	err := s.poll(ctx, "card_reissued", func(ctx context.Context) (bool, error) {
		fetched, err := s.rize.GetDebitCard(ctx, session.AccessToken, cardUID)
		if err != nil {
			return false, s.wrapVendorErr(ctx, session, err)
		}
		card = fetched
		return fetched.Status != domain.CardStatusQueued, nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// poll runs check immediately and then once per interval until it reports
// done, fails, the context ends, or maxAttempts checks have run.
func (s *Service) poll(ctx context.Context, name string, check func(ctx context.Context) (bool, error)) error {
	ticker := time.NewTicker(s.watchInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if attempt >= s.watchMaxAttempts {
			return fmt.Errorf("watch %s: %w", name, ErrWatchExhausted)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
