package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// strategy computes stock from one data source, or reports that the source
// does not apply so the next one is tried.
type strategy func(tank Tank, h History, w Window) (Stock, bool)

// cascade is ordered from most to least authoritative.
var cascade = []strategy{
	latestReadingToday,
	openingReadingToday,
	historicalReading,
	initialStock,
}

// Reconcile derives the stock of tank at w.AsOf from its history.
// Events after w.AsOf are ignored. A negative figure is floored at zero.
func Reconcile(tank Tank, h History, w Window) Stock {
	h = h.until(w.AsOf)

	for _, try := range cascade {
		stock, ok := try(tank, h, w)
		if !ok {
			continue
		}

		stock.TankID = tank.ID
		stock.AsOf = w.AsOf

		if stock.Liters.IsNegative() {
			stock.Liters = decimal.Zero
			stock.Clamped = true
		}

		return stock
	}

	// initialStock always applies.
	panic("inventory: empty reconcile cascade")
}

func latestReadingToday(_ Tank, h History, w Window) (Stock, bool) {
	today := h.readingsSince(w.Start)
	if len(today) < 2 {
		return Stock{}, false
	}

	latest := today[len(today)-1]

	return fromReading(SourceLatestReading, latest, decimal.Zero, decimal.Zero), true
}

func openingReadingToday(_ Tank, h History, w Window) (Stock, bool) {
	today := h.readingsSince(w.Start)
	if len(today) != 1 {
		return Stock{}, false
	}

	opening := today[0]
	delivered := h.deliveredSince(opening.CreatedAt)
	sold := h.sold(func(s ShiftSales) bool { return w.Today(s.Date) })

	return fromReading(SourceOpeningReading, opening, delivered, sold), true
}

func historicalReading(_ Tank, h History, w Window) (Stock, bool) {
	var (
		latest Reading
		found  bool
	)

	for _, r := range h.Readings {
		if !r.CreatedAt.Before(w.Start) {
			continue
		}

		if !found || r.CreatedAt.After(latest.CreatedAt) {
			latest, found = r, true
		}
	}

	if !found {
		return Stock{}, false
	}

	delivered := h.deliveredSince(latest.CreatedAt)
	sold := h.sold(func(s ShiftSales) bool { return s.ClosedAt.After(latest.CreatedAt) })

	return fromReading(SourceHistoricalReading, latest, delivered, sold), true
}

func initialStock(tank Tank, h History, _ Window) (Stock, bool) {
	delivered := h.deliveredSince(time.Time{})
	sold := h.sold(func(ShiftSales) bool { return true })

	return Stock{
		Liters:    tank.InitialStock.Add(delivered).Sub(sold),
		Source:    SourceInitialStock,
		Baseline:  tank.InitialStock,
		Delivered: delivered,
		Sold:      sold,
	}, true
}

func fromReading(src Source, r Reading, delivered, sold decimal.Decimal) Stock {
	at := r.CreatedAt
	id := r.ID

	return Stock{
		Liters:     r.LiterValue.Add(delivered).Sub(sold),
		Source:     src,
		Baseline:   r.LiterValue,
		BaselineAt: &at,
		ReadingID:  &id,
		Delivered:  delivered,
		Sold:       sold,
	}
}

// until drops every event recorded after asOf.
func (h History) until(asOf time.Time) History {
	var out History

	for _, r := range h.Readings {
		if r.Status == ReadingApproved && !r.CreatedAt.After(asOf) {
			out.Readings = append(out.Readings, r)
		}
	}

	for _, d := range h.Deliveries {
		if !d.CreatedAt.After(asOf) {
			out.Deliveries = append(out.Deliveries, d)
		}
	}

	for _, s := range h.Shifts {
		if !s.ClosedAt.After(asOf) {
			out.Shifts = append(out.Shifts, s)
		}
	}

	return out
}

// readingsSince returns the readings at or after t, oldest first.
func (h History) readingsSince(t time.Time) []Reading {
	var out []Reading

	for _, r := range h.Readings {
		if !r.CreatedAt.Before(t) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out
}

func (h History) deliveredSince(t time.Time) decimal.Decimal {
	total := decimal.Zero

	for _, d := range h.Deliveries {
		if !d.CreatedAt.Before(t) {
			total = total.Add(d.LiterAmount)
		}
	}

	return total
}

func (h History) sold(include func(ShiftSales) bool) decimal.Decimal {
	total := decimal.Zero

	for _, s := range h.Shifts {
		if include(s) {
			total = total.Add(s.Volume())
		}
	}

	return total
}
