package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	inventorystore "github.com/MrJamesThe3rd/tankops/internal/inventory/store"
	"github.com/MrJamesThe3rd/tankops/internal/journal"
	"github.com/MrJamesThe3rd/tankops/internal/ledger"
	ledgerstore "github.com/MrJamesThe3rd/tankops/internal/ledger/store"
	"github.com/MrJamesThe3rd/tankops/internal/unload"
)

type Store struct {
	db     *sqlx.DB
	poster journal.Poster
}

// New returns a store that books approvals through poster, inside the
// approval transaction.
func New(db *sqlx.DB, poster journal.Poster) *Store {
	return &Store{db: db, poster: poster}
}

const selectUnloadColumns = `
	id, tank_id, unloader_id, kind, depositor_name, liter_amount, delivered_volume,
	initial_order_volume, purchase_order_id, status, notes, processed_by, processed_at,
	created_at, updated_at`

func (s *Store) CreateUnload(ctx context.Context, u *unload.Unload) error {
	query := `
		INSERT INTO unloads (id, tank_id, unloader_id, kind, depositor_name, liter_amount,
			delivered_volume, initial_order_volume, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`

	id := uuid.New()

	err := s.db.QueryRowxContext(ctx, query,
		id,
		u.TankID,
		u.UnloaderID,
		u.Kind,
		u.DepositorName,
		u.LiterAmount,
		u.DeliveredVolume,
		u.InitialOrderVolume,
		u.Status,
		u.Notes,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating unload: %w", err)
	}

	u.ID = id

	return nil
}

func (s *Store) GetUnload(ctx context.Context, id uuid.UUID) (*unload.Unload, error) {
	return getUnload(ctx, s.db, `SELECT `+selectUnloadColumns+` FROM unloads WHERE id = $1`, id)
}

func getUnload(ctx context.Context, q sqlx.QueryerContext, query string, id uuid.UUID) (*unload.Unload, error) {
	var u unload.Unload
	if err := sqlx.GetContext(ctx, q, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("unload", id)
		}

		return nil, fmt.Errorf("getting unload: %w", err)
	}

	return &u, nil
}

func (s *Store) ListUnloads(ctx context.Context, filter unload.ListFilter) ([]*unload.Unload, error) {
	query := `SELECT ` + selectUnloadColumns + ` FROM unloads WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.TankID != nil {
		query += fmt.Sprintf(" AND tank_id = $%d", argIdx)

		args = append(args, *filter.TankID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	var unloads []*unload.Unload
	if err := sqlx.SelectContext(ctx, s.db, &unloads, query, args...); err != nil {
		return nil, fmt.Errorf("listing unloads: %w", err)
	}

	return unloads, nil
}

func (s *Store) UpdateUnload(ctx context.Context, u *unload.Unload) (bool, error) {
	query := `
		UPDATE unloads
		SET depositor_name = $1, liter_amount = $2, delivered_volume = $3,
			initial_order_volume = $4, notes = $5, updated_at = NOW()
		WHERE id = $6 AND status = 'PENDING'
		RETURNING updated_at`

	err := s.db.QueryRowxContext(ctx, query,
		u.DepositorName,
		u.LiterAmount,
		u.DeliveredVolume,
		u.InitialOrderVolume,
		u.Notes,
		u.ID,
	).Scan(&u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("updating unload: %w", err)
	}

	return true, nil
}

func (s *Store) RejectUnload(ctx context.Context, id, approverID uuid.UUID, at time.Time) (bool, error) {
	query := `
		UPDATE unloads
		SET status = 'REJECTED', processed_by = $1, processed_at = $2, updated_at = $2
		WHERE id = $3 AND status = 'PENDING'`

	res, err := s.db.ExecContext(ctx, query, approverID, at, id)
	if err != nil {
		return false, fmt.Errorf("rejecting unload: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rejecting unload: %w", err)
	}

	return n == 1, nil
}

// approvalLockKey serializes approvals of one unload ahead of the row locks.
func approvalLockKey(id uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte("unload-approval"))
	h.Write([]byte{0})
	h.Write(id[:])

	return int64(h.Sum64())
}

func (s *Store) BeginApproval(ctx context.Context, id uuid.UUID) (unload.ApprovalTx, error) {
	dbTx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning approval tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", approvalLockKey(id)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring approval lock: %w", err)
	}

	return &approvalTx{
		Store:  inventorystore.New(dbTx),
		ledger: ledgerstore.New(dbTx),
		tx:     dbTx,
		poster: s.poster,
	}, nil
}

// approvalTx locks tanks and reads stock history through the inventory store and
// the purchase ledger through the ledger store, all on one transaction.
type approvalTx struct {
	*inventorystore.Store

	ledger *ledgerstore.Store
	tx     *sqlx.Tx
	poster journal.Poster
}

func (atx *approvalTx) Commit() error   { return atx.tx.Commit() }
func (atx *approvalTx) Rollback() error { return atx.tx.Rollback() }

func (atx *approvalTx) LockUnload(ctx context.Context, id uuid.UUID) (*unload.Unload, error) {
	return getUnload(ctx, atx.tx, `SELECT `+selectUnloadColumns+` FROM unloads WHERE id = $1 FOR UPDATE`, id)
}

func (atx *approvalTx) LockOpenOrders(ctx context.Context, stationID, productID uuid.UUID) ([]ledger.PurchaseOrder, error) {
	return atx.ledger.LockOpenOrders(ctx, stationID, productID)
}

func (atx *approvalTx) ApplyAllocations(ctx context.Context, unloadID uuid.UUID, allocs []ledger.Allocation) error {
	return atx.ledger.ApplyAllocations(ctx, unloadID, allocs)
}

func (atx *approvalTx) LatestUnitPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	return atx.ledger.LatestUnitPrice(ctx, productID)
}

func (atx *approvalTx) PostJournal(ctx context.Context, p journal.Posting) error {
	return atx.poster.Post(ctx, atx.tx, p)
}

func (atx *approvalTx) MarkApproved(ctx context.Context, u *unload.Unload) (uuid.UUID, error) {
	query := `
		UPDATE unloads
		SET status = 'APPROVED', purchase_order_id = $1, processed_by = $2, processed_at = $3, updated_at = $4
		WHERE id = $5 AND status = 'PENDING'
		RETURNING id`

	var updated uuid.UUID

	err := atx.tx.QueryRowxContext(ctx, query, u.PurchaseOrderID, u.ProcessedBy, u.ProcessedAt, u.UpdatedAt, u.ID).
		Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, nil
	}

	if err != nil {
		return uuid.Nil, fmt.Errorf("marking unload approved: %w", err)
	}

	return updated, nil
}
