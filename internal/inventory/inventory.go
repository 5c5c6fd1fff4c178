package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReadingStatus is the review state of a gauge reading.
type ReadingStatus string

const (
	ReadingPending  ReadingStatus = "PENDING"
	ReadingApproved ReadingStatus = "APPROVED"
	ReadingRejected ReadingStatus = "REJECTED"
)

// Tank is a fuel tank at a station. Volumes are liters.
type Tank struct {
	ID           uuid.UUID       `db:"id"`
	StationID    uuid.UUID       `db:"station_id"`
	ProductID    uuid.UUID       `db:"product_id"`
	Name         string          `db:"name"`
	Capacity     decimal.Decimal `db:"capacity"`
	InitialStock decimal.Decimal `db:"initial_stock"`
}

// Reading is an absolute gauge value taken at CreatedAt.
type Reading struct {
	ID         uuid.UUID       `db:"id"`
	TankID     uuid.UUID       `db:"tank_id"`
	LiterValue decimal.Decimal `db:"liter_value"`
	Status     ReadingStatus   `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
}

// Delivery is the stock-relevant projection of an approved unload.
type Delivery struct {
	UnloadID    uuid.UUID       `db:"id"`
	LiterAmount decimal.Decimal `db:"liter_amount"`
	CreatedAt   time.Time       `db:"created_at"`
}

// NozzleReading holds the totalizer values of one nozzle over one shift.
type NozzleReading struct {
	NozzleID       uuid.UUID
	OpenTotalizer  decimal.Decimal
	CloseTotalizer decimal.Decimal
	PumpTestVolume decimal.Decimal
}

// Sold is the volume dispensed to customers: pump tests go back to the tank.
func (n NozzleReading) Sold() decimal.Decimal {
	return n.CloseTotalizer.Sub(n.OpenTotalizer).Sub(n.PumpTestVolume)
}

// ShiftSales is a completed operator shift restricted to the nozzles drawing
// from one tank.
type ShiftSales struct {
	ShiftID  uuid.UUID
	Date     time.Time // business date, midnight UTC
	ClosedAt time.Time
	Nozzles  []NozzleReading
}

// Volume sums the customer sales over the shift's nozzles.
func (s ShiftSales) Volume() decimal.Decimal {
	total := decimal.Zero
	for _, n := range s.Nozzles {
		total = total.Add(n.Sold())
	}

	return total
}

// History is everything the reconciler needs about a tank. Readings must be
// approved, deliveries approved, shifts completed; the store guarantees this.
type History struct {
	Readings   []Reading
	Deliveries []Delivery
	Shifts     []ShiftSales
}

// Window is the business day containing AsOf.
type Window struct {
	Start time.Time
	AsOf  time.Time
}

// DayWindow returns the business day window for asOf in loc.
func DayWindow(asOf time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}

	local := asOf.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	return Window{Start: start, AsOf: asOf}
}

// Today reports whether a business date falls on the window's day.
func (w Window) Today(date time.Time) bool {
	y, m, d := w.Start.Date()
	dy, dm, dd := date.Date()

	return y == dy && m == dm && d == dd
}

// Source names the cascade tier that produced a stock figure.
type Source string

const (
	SourceLatestReading     Source = "LATEST_READING_TODAY"
	SourceOpeningReading    Source = "OPENING_READING_TODAY"
	SourceHistoricalReading Source = "HISTORICAL_READING"
	SourceInitialStock      Source = "INITIAL_STOCK"
)

// Stock is a computed stock level with the figures that produced it.
type Stock struct {
	TankID     uuid.UUID
	Liters     decimal.Decimal
	Source     Source
	Baseline   decimal.Decimal
	BaselineAt *time.Time
	ReadingID  *uuid.UUID
	Delivered  decimal.Decimal
	Sold       decimal.Decimal
	Clamped    bool
	AsOf       time.Time
}

// ReadingParams describes one gauge reading to record.
type ReadingParams struct {
	LiterValue decimal.Decimal
	TakenAt    time.Time
}
