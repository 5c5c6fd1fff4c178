package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/ledger"
)

type Store struct {
	q sqlx.ExtContext
}

func New(q sqlx.ExtContext) *Store {
	return &Store{q: q}
}

const selectOpenOrders = `
	SELECT id, station_id, product_id, purchase_volume, delivered_volume, unit_price, order_date, status, created_at
	FROM purchase_orders
	WHERE station_id = $1 AND product_id = $2 AND status = 'APPROVED'
	  AND delivered_volume < purchase_volume
	ORDER BY order_date ASC, created_at ASC, id ASC`

func (s *Store) ListOpenOrders(ctx context.Context, stationID, productID uuid.UUID) ([]ledger.PurchaseOrder, error) {
	var orders []ledger.PurchaseOrder
	if err := sqlx.SelectContext(ctx, s.q, &orders, selectOpenOrders, stationID, productID); err != nil {
		return nil, fmt.Errorf("listing open orders: %w", err)
	}

	return orders, nil
}

// LockOpenOrders is ListOpenOrders with the rows locked until the surrounding
// transaction ends. Locks are taken oldest order first, so concurrent
// approvals for one product acquire them in the same order.
func (s *Store) LockOpenOrders(ctx context.Context, stationID, productID uuid.UUID) ([]ledger.PurchaseOrder, error) {
	var orders []ledger.PurchaseOrder
	if err := sqlx.SelectContext(ctx, s.q, &orders, selectOpenOrders+` FOR UPDATE`, stationID, productID); err != nil {
		return nil, fmt.Errorf("locking open orders: %w", err)
	}

	return orders, nil
}

// ApplyAllocations adds each allocated volume to its order's delivered volume
// and records the allocation against the unload.
func (s *Store) ApplyAllocations(ctx context.Context, unloadID uuid.UUID, allocs []ledger.Allocation) error {
	update := `
		UPDATE purchase_orders
		SET delivered_volume = delivered_volume + $1
		WHERE id = $2 AND purchase_volume - delivered_volume >= $1`

	insert := `
		INSERT INTO unload_allocations (unload_id, purchase_order_id, volume, unit_price)
		VALUES ($1, $2, $3, $4)`

	for _, a := range allocs {
		res, err := s.q.ExecContext(ctx, update, a.Volume, a.OrderID)
		if err != nil {
			return fmt.Errorf("updating delivered volume: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reading affected rows: %w", err)
		}

		if n != 1 {
			return apperr.New(apperr.KindInconsistentState,
				"purchase order %s cannot absorb %s L", a.OrderID, a.Volume)
		}

		if _, err := s.q.ExecContext(ctx, insert, unloadID, a.OrderID, a.Volume, a.UnitPrice); err != nil {
			return fmt.Errorf("recording allocation: %w", err)
		}
	}

	return nil
}

func (s *Store) ListAllocations(ctx context.Context, unloadID uuid.UUID) ([]ledger.Allocation, error) {
	query := `
		SELECT a.purchase_order_id, a.volume, a.unit_price
		FROM unload_allocations a
		JOIN purchase_orders o ON o.id = a.purchase_order_id
		WHERE a.unload_id = $1
		ORDER BY o.order_date ASC, o.created_at ASC, o.id ASC`

	var allocs []ledger.Allocation
	if err := sqlx.SelectContext(ctx, s.q, &allocs, query, unloadID); err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}

	return allocs, nil
}

// LatestUnitPrice is the unit price of the product's most recent approved
// purchase order.
func (s *Store) LatestUnitPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT unit_price
		FROM purchase_orders
		WHERE product_id = $1 AND status = 'APPROVED'
		ORDER BY order_date DESC, created_at DESC
		LIMIT 1`

	var price decimal.Decimal
	if err := sqlx.GetContext(ctx, s.q, &price, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, apperr.New(apperr.KindNotFound,
				"no approved purchase order prices product %s", productID)
		}

		return decimal.Zero, fmt.Errorf("getting latest unit price: %w", err)
	}

	return price, nil
}
