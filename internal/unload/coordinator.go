package unload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/inventory"
	"github.com/MrJamesThe3rd/tankops/internal/journal"
	"github.com/MrJamesThe3rd/tankops/internal/ledger"
)

const journalReference = "unload"

// Approve settles a PENDING unload: it draws purchase order volume, posts
// the journal entry and marks the unload APPROVED, all in one transaction.
// Attempts that hit the approval timeout are retried with backoff; every
// other failure is returned as is and leaves nothing behind.
func (s *Service) Approve(ctx context.Context, id, approverID uuid.UUID) (*Unload, error) {
	u, err := s.repo.GetUnload(ctx, id)
	if err != nil {
		return nil, err
	}

	if !u.Pending() {
		return nil, alreadyProcessed(u)
	}

	var approved *Unload

	attempt := func() error {
		var err error

		approved, err = s.approveOnce(ctx, id, approverID)
		if err != nil && !apperr.Retryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}

	notify := func(err error, wait time.Duration) {
		s.log.Warn("approval attempt failed, retrying",
			zap.Stringer("unload_id", id), zap.Duration("wait", wait), zap.Error(err))
	}

	if err := backoff.RetryNotify(attempt, s.retryPolicy(ctx), notify); err != nil {
		if apperr.KindOf(err) == "" {
			s.log.Error("approval failed", zap.Stringer("unload_id", id), zap.Error(err))
		}

		return nil, err
	}

	s.log.Info("unload approved",
		zap.Stringer("unload_id", id),
		zap.Stringer("approver_id", approverID),
		zap.String("kind", string(approved.Kind)))

	return approved, nil
}

func (s *Service) retryPolicy(ctx context.Context) backoff.BackOffContext {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.retryInterval
	eb.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(max(s.maxRetries, 0))), ctx)
}

func (s *Service) approveOnce(ctx context.Context, id, approverID uuid.UUID) (*Unload, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	u, err := s.runApproval(ctx, id, approverID)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, apperr.Wrap(apperr.KindTransactionTimeout, err,
			"approval of unload %s did not finish within %s", id, s.timeout)
	}

	return u, err
}

func (s *Service) runApproval(ctx context.Context, id, approverID uuid.UUID) (*Unload, error) {
	atx, err := s.repo.BeginApproval(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("begin approval: %w", err)
	}
	defer atx.Rollback()

	u, err := atx.LockUnload(ctx, id)
	if err != nil {
		return nil, err
	}

	// Another approval may have won between the first check and the lock.
	if !u.Pending() {
		return nil, alreadyProcessed(u)
	}

	tank, err := atx.LockTank(ctx, u.TankID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if err := s.verifyCapacity(ctx, atx, tank, u, now); err != nil {
		return nil, err
	}

	posting, err := s.settle(ctx, atx, tank, u, now)
	if err != nil {
		return nil, err
	}

	u.Status = StatusApproved
	u.ProcessedBy = new(approverID)
	u.ProcessedAt = new(now)
	u.UpdatedAt = now

	updated, err := atx.MarkApproved(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("mark approved: %w", err)
	}

	switch updated {
	case id:
	case uuid.Nil:
		return nil, apperr.New(apperr.KindAlreadyProcessed, "unload %s was processed concurrently", id)
	default:
		return nil, apperr.New(apperr.KindInconsistentState, "approving unload %s updated unload %s", id, updated)
	}

	// The journal may live outside the database, so it is written last.
	if err := s.post(ctx, atx, posting); err != nil {
		return nil, err
	}

	if err := atx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approval: %w", err)
	}

	return u, nil
}

// post books the approval. A posting worth nothing at the booked prices,
// such as fuel from a zero-priced order, has no lines and is not sent.
func (s *Service) post(ctx context.Context, atx ApprovalTx, posting journal.Posting) error {
	if len(posting.Lines) == 0 {
		s.log.Info("approval has no journal value, skipping posting",
			zap.Stringer("unload_id", posting.ReferenceID))

		return nil
	}

	if err := posting.Validate(); err != nil {
		return err
	}

	if err := atx.PostJournal(ctx, posting); err != nil {
		return fmt.Errorf("post journal: %w", err)
	}

	s.log.Debug("journal posted",
		zap.Stringer("unload_id", posting.ReferenceID),
		zap.Stringer("total", posting.Total()))

	return nil
}

// verifyCapacity recomputes stock from the transaction's snapshot; the
// figure seen at creation may be stale by now.
func (s *Service) verifyCapacity(ctx context.Context, atx ApprovalTx, tank *inventory.Tank, u *Unload, now time.Time) error {
	w := inventory.DayWindow(now, s.stock.Location())

	h, err := atx.LoadHistory(ctx, tank.ID, w)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	stock := inventory.Reconcile(*tank, *h, w)

	return checkCapacity(tank, stock.Liters, u.LiterAmount)
}

// settle applies the unload to the purchase ledger and returns the journal
// posting that books it.
func (s *Service) settle(ctx context.Context, atx ApprovalTx, tank *inventory.Tank, u *Unload, now time.Time) (journal.Posting, error) {
	ref := journal.Reference{
		Type:        journalReference,
		ID:          u.ID,
		Description: fmt.Sprintf("Unload of %s L into tank %s", u.LiterAmount, tank.Name),
		At:          now,
	}

	if u.Kind == KindDepositInKind {
		price, err := atx.LatestUnitPrice(ctx, tank.ProductID)
		if err != nil {
			return journal.Posting{}, err
		}

		value := u.LiterAmount.Mul(price).Round(2)

		return journal.DepositPosting(s.accounts, ref, u.DepositorName, value), nil
	}

	switch mode := u.DeliveryMode().(type) {
	case ByRemainingVolume:
		orders, err := atx.LockOpenOrders(ctx, tank.StationID, tank.ProductID)
		if err != nil {
			return journal.Posting{}, err
		}

		allocs, err := ledger.Allocate(mode.Volume, orders)
		if err != nil {
			return journal.Posting{}, err
		}

		if err := atx.ApplyAllocations(ctx, u.ID, allocs); err != nil {
			return journal.Posting{}, fmt.Errorf("apply allocations: %w", err)
		}

		u.PurchaseOrderID = new(allocs[0].OrderID)

		return journal.DeliveryPosting(s.accounts, ref, ledger.Cost(allocs), mode.Volume, u.LiterAmount), nil

	case LegacyByInitialOrder:
		price, err := atx.LatestUnitPrice(ctx, tank.ProductID)
		if err != nil {
			return journal.Posting{}, err
		}

		cost := mode.Volume.Mul(price).Round(2)

		return journal.DeliveryPosting(s.accounts, ref, cost, mode.Volume, u.LiterAmount), nil

	case MissingDeliveredVolume:
		err := apperr.New(apperr.KindDeliveredVolumeRequired,
			"unload %s needs a delivered volume or an initial order volume before approval", u.ID)
		err.Fields = map[string][]string{"delivered_volume": {"is required"}}

		return journal.Posting{}, err

	default:
		return journal.Posting{}, apperr.New(apperr.KindInconsistentState, "unknown delivery mode %T", mode)
	}
}
