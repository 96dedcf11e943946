// Package balance implements the balance reconciler: the component that
// keeps an account's stored balance equal to its initial balance plus the
// net effect of the transactions currently attributed to it.
//
// The reconciler never reads and rewrites a balance. Reversal of a previous
// effect and application of a new one collapse into one signed delta that is
// applied with a single server-side conditional update, so two concurrent
// mutations against the same account cannot lose each other's write.
package balance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/domain/transaction"
	accountrepo "github.com/granafacil/financeiro/pkg/repository/account"
)

// ErrNothingToApply is returned when Apply is called with neither a new
// effect nor a previous effect to reverse.
var ErrNothingToApply = errors.New("nothing to apply")

// Reconciler applies transaction effects to account balances.
type Reconciler struct {
	logger *slog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(logger *slog.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Apply adjusts the balance of the account identified by accountID.
//
// apply is the effect of the transaction being recorded (nil when a
// transaction is deleted). previous is the effect of a prior version of the
// transaction (nil when a transaction is created); it is reversed before
// apply takes effect, but only when it targets the same account — undoing a
// prior effect on a different account is a separate Apply call against that
// account.
//
// Errors: account.ErrAccountNotFound when the account no longer exists,
// transaction.ErrAmountMustBePositive / ErrInvalidKind when an effect fails
// validation, domain.ErrWriteConflict when the persistence layer rejects the
// write. Failures are never swallowed.
func (r *Reconciler) Apply(
	ctx context.Context,
	accounts accountrepo.Repository,
	accountID uuid.UUID,
	apply *transaction.Effect,
	previous *transaction.Effect,
) error {
	if apply == nil && previous == nil {
		return ErrNothingToApply
	}
	if accountID == uuid.Nil {
		return transaction.ErrAccountRequired
	}

	delta := decimal.Zero
	if previous != nil {
		if err := previous.Validate(); err != nil {
			return err
		}
		if previous.AccountID == accountID {
			delta = delta.Sub(previous.Signed())
		}
	}
	if apply != nil {
		if err := apply.Validate(); err != nil {
			return err
		}
		if apply.AccountID != accountID {
			return fmt.Errorf("effect targets account %s, not %s", apply.AccountID, accountID)
		}
		delta = delta.Add(apply.Signed())
	}

	if err := accounts.ApplyBalanceDelta(ctx, accountID, delta); err != nil {
		r.logger.Error("balance reconciliation failed",
			"account_id", accountID,
			"delta", delta.String(),
			"error", err,
		)
		return err
	}
	r.logger.Debug("balance reconciled",
		"account_id", accountID,
		"delta", delta.String(),
	)
	return nil
}

// Recompute resets the account's balance from ground truth
// (initial_balance + net transaction effect). It is the consistency backstop
// for drift introduced outside the delta path.
func (r *Reconciler) Recompute(
	ctx context.Context,
	accounts accountrepo.Repository,
	accountID uuid.UUID,
) error {
	if err := accounts.RecomputeBalance(ctx, accountID); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return err
		}
		return fmt.Errorf("recompute balance: %w", err)
	}
	r.logger.Info("account balance recomputed", "account_id", accountID)
	return nil
}

// RecomputeAll resets every account's balance from ground truth. Scheduled
// via cron as a periodic backstop.
func (r *Reconciler) RecomputeAll(
	ctx context.Context,
	accounts accountrepo.Repository,
) error {
	if err := accounts.RecomputeAllBalances(ctx); err != nil {
		return fmt.Errorf("recompute all balances: %w", err)
	}
	r.logger.Info("all account balances recomputed")
	return nil
}
