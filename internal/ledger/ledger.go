// Package ledger tracks outstanding purchase-order volume and allocates
// deliveries against it oldest order first.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
)

type OrderStatus string

// OrderApproved is the only status whose volume deliveries may draw from.
const OrderApproved OrderStatus = "APPROVED"

// PurchaseOrder is an approved fuel purchase whose volume is consumed by
// deliveries. DeliveredVolume only grows and never exceeds PurchaseVolume.
type PurchaseOrder struct {
	ID              uuid.UUID       `db:"id"               json:"id"`
	StationID       uuid.UUID       `db:"station_id"       json:"station_id"`
	ProductID       uuid.UUID       `db:"product_id"       json:"product_id"`
	PurchaseVolume  decimal.Decimal `db:"purchase_volume"  json:"purchase_volume"`
	DeliveredVolume decimal.Decimal `db:"delivered_volume" json:"delivered_volume"`
	UnitPrice       decimal.Decimal `db:"unit_price"       json:"unit_price"`
	OrderDate       time.Time       `db:"order_date"       json:"order_date"`
	Status          OrderStatus     `db:"status"           json:"status"`
	CreatedAt       time.Time       `db:"created_at"       json:"created_at"`
}

func (o PurchaseOrder) Remaining() decimal.Decimal {
	return o.PurchaseVolume.Sub(o.DeliveredVolume)
}

// Remaining is the open volume for a station and product.
type Remaining struct {
	Total  decimal.Decimal `json:"total"`
	Orders []PurchaseOrder `json:"orders"`
}

// NewRemaining keeps the orders that still have volume, preserving order.
func NewRemaining(orders []PurchaseOrder) Remaining {
	r := Remaining{Total: decimal.Zero, Orders: []PurchaseOrder{}}

	for _, o := range orders {
		left := o.Remaining()
		if !left.IsPositive() {
			continue
		}

		r.Orders = append(r.Orders, o)
		r.Total = r.Total.Add(left)
	}

	return r
}

// Allocation is the share of a delivery taken from one order.
type Allocation struct {
	OrderID   uuid.UUID       `db:"purchase_order_id" json:"purchase_order_id"`
	Volume    decimal.Decimal `db:"volume"            json:"volume"`
	UnitPrice decimal.Decimal `db:"unit_price"        json:"unit_price"`
}

// Allocate consumes volume from orders in the given order, which must be
// oldest first. It fails without allocating anything when the orders cannot
// cover the full volume.
func Allocate(volume decimal.Decimal, orders []PurchaseOrder) ([]Allocation, error) {
	if !volume.IsPositive() {
		return nil, apperr.Validation("allocation volume must be positive",
			map[string][]string{"delivered_volume": {"must be greater than 0"}})
	}

	rem := NewRemaining(orders)
	if rem.Total.LessThan(volume) {
		return nil, InsufficientVolume(volume, rem.Total)
	}

	allocs := make([]Allocation, 0, len(rem.Orders))
	left := volume

	for _, o := range rem.Orders {
		if !left.IsPositive() {
			break
		}

		take := decimal.Min(left, o.Remaining())
		allocs = append(allocs, Allocation{OrderID: o.ID, Volume: take, UnitPrice: o.UnitPrice})
		left = left.Sub(take)
	}

	return allocs, nil
}

// InsufficientVolume reports the shortfall between what was requested and
// what the open orders hold.
func InsufficientVolume(requested, available decimal.Decimal) error {
	shortfall := requested.Sub(available)

	err := apperr.New(apperr.KindInsufficientRemainingVolume,
		"delivered volume %s L exceeds remaining purchase volume %s L by %s L", requested, available, shortfall)
	err.Fields = map[string][]string{
		"delivered_volume": {fmt.Sprintf("shortfall of %s L", shortfall)},
	}

	return err
}

// Cost is the purchase value of the allocated volume.
func Cost(allocs []Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.Volume.Mul(a.UnitPrice))
	}

	return total.Round(2)
}

// Volume sums the allocated liters.
func Volume(allocs []Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.Volume)
	}

	return total
}
