package unload

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is fixed when the unload is created.
type Kind string

const (
	KindStandard      Kind = "STANDARD"
	KindDepositInKind Kind = "DEPOSIT_IN_KIND"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Unload is a fuel delivery into a tank. LiterAmount is what was physically
// poured; DeliveredVolume is what is drawn from purchase orders on approval.
type Unload struct {
	ID                 uuid.UUID           `db:"id"                   json:"id"`
	TankID             uuid.UUID           `db:"tank_id"              json:"tank_id"`
	UnloaderID         uuid.UUID           `db:"unloader_id"          json:"unloader_id"`
	Kind               Kind                `db:"kind"                 json:"kind"`
	DepositorName      string              `db:"depositor_name"       json:"depositor_name,omitempty"`
	LiterAmount        decimal.Decimal     `db:"liter_amount"         json:"liter_amount"`
	DeliveredVolume    decimal.NullDecimal `db:"delivered_volume"     json:"delivered_volume"`
	InitialOrderVolume decimal.NullDecimal `db:"initial_order_volume" json:"initial_order_volume"`
	PurchaseOrderID    *uuid.UUID          `db:"purchase_order_id"    json:"purchase_order_id,omitempty"`
	Status             Status              `db:"status"               json:"status"`
	Notes              string              `db:"notes"                json:"notes"`
	ProcessedBy        *uuid.UUID          `db:"processed_by"         json:"processed_by,omitempty"`
	ProcessedAt        *time.Time          `db:"processed_at"         json:"processed_at,omitempty"`
	CreatedAt          time.Time           `db:"created_at"           json:"created_at"`
	UpdatedAt          time.Time           `db:"updated_at"           json:"updated_at"`
}

// DeliveryMode says how a standard unload settles against purchase orders.
// It is one of ByRemainingVolume, LegacyByInitialOrder or
// MissingDeliveredVolume.
type DeliveryMode interface {
	deliveryMode()
}

// ByRemainingVolume draws Volume from open purchase orders, oldest first.
type ByRemainingVolume struct {
	Volume decimal.Decimal
}

// LegacyByInitialOrder books the ordered Volume as delivered without touching
// purchase orders; only the shrinkage against it is posted.
type LegacyByInitialOrder struct {
	Volume decimal.Decimal
}

// MissingDeliveredVolume cannot be approved.
type MissingDeliveredVolume struct{}

func (ByRemainingVolume) deliveryMode()      {}
func (LegacyByInitialOrder) deliveryMode()   {}
func (MissingDeliveredVolume) deliveryMode() {}

func (u *Unload) DeliveryMode() DeliveryMode {
	if u.DeliveredVolume.Valid && u.DeliveredVolume.Decimal.IsPositive() {
		return ByRemainingVolume{Volume: u.DeliveredVolume.Decimal}
	}

	if u.InitialOrderVolume.Valid && u.InitialOrderVolume.Decimal.IsPositive() {
		return LegacyByInitialOrder{Volume: u.InitialOrderVolume.Decimal}
	}

	return MissingDeliveredVolume{}
}

func (u *Unload) Pending() bool { return u.Status == StatusPending }

// depositMarker is the notes convention older clients use to flag a
// deposit-in-kind delivery, e.g. "deposit-in-kind: Posto Vizinho Ltda".
var depositMarker = regexp.MustCompile(`(?i)\bdeposit[- ]in[- ]kind\s*:\s*([^\n;]+)`)

// InferKind reads the kind from notes for callers that do not send one.
func InferKind(notes string) (Kind, string) {
	m := depositMarker.FindStringSubmatch(notes)
	if m == nil {
		return KindStandard, ""
	}

	return KindDepositInKind, strings.TrimSpace(m[1])
}

type CreateParams struct {
	TankID             uuid.UUID           `json:"tank_id"              validate:"required"`
	UnloaderID         uuid.UUID           `json:"-"                    validate:"required"`
	Kind               Kind                `json:"kind"                 validate:"omitempty,oneof=STANDARD DEPOSIT_IN_KIND"`
	DepositorName      string              `json:"depositor_name"       validate:"required_if=Kind DEPOSIT_IN_KIND,max=200"`
	LiterAmount        decimal.Decimal     `json:"liter_amount"         validate:"gt=0"`
	DeliveredVolume    decimal.NullDecimal `json:"delivered_volume"     validate:"omitempty,gte=0"`
	InitialOrderVolume decimal.NullDecimal `json:"initial_order_volume" validate:"omitempty,gte=0"`
	Notes              string              `json:"notes"                validate:"max=2000"`
}

// UpdateParams changes a pending unload. Nil and null fields are left as
// they are. The kind cannot change.
type UpdateParams struct {
	LiterAmount        *decimal.Decimal    `json:"liter_amount"         validate:"omitempty,gt=0"`
	DeliveredVolume    decimal.NullDecimal `json:"delivered_volume"     validate:"omitempty,gte=0"`
	InitialOrderVolume decimal.NullDecimal `json:"initial_order_volume" validate:"omitempty,gte=0"`
	DepositorName      *string             `json:"depositor_name"       validate:"omitempty,max=200"`
	Notes              *string             `json:"notes"                validate:"omitempty,max=2000"`
}

type ListFilter struct {
	TankID *uuid.UUID
	Status *Status
	Limit  int
}
