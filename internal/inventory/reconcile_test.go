package inventory_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tankops/internal/inventory"
)

func liters(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(day, hour int) time.Time {
	return time.Date(2024, 5, day, hour, 0, 0, 0, time.UTC)
}

func businessDate(day int) time.Time {
	return time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC)
}

func reading(value string, when time.Time) inventory.Reading {
	return inventory.Reading{
		ID:         uuid.New(),
		LiterValue: liters(value),
		Status:     inventory.ReadingApproved,
		CreatedAt:  when,
	}
}

func delivery(amount string, when time.Time) inventory.Delivery {
	return inventory.Delivery{UnloadID: uuid.New(), LiterAmount: liters(amount), CreatedAt: when}
}

func shift(date, closedAt time.Time, nozzles ...inventory.NozzleReading) inventory.ShiftSales {
	return inventory.ShiftSales{ShiftID: uuid.New(), Date: date, ClosedAt: closedAt, Nozzles: nozzles}
}

func nozzle(open, close, pumpTest string) inventory.NozzleReading {
	return inventory.NozzleReading{
		NozzleID:       uuid.New(),
		OpenTotalizer:  liters(open),
		CloseTotalizer: liters(close),
		PumpTestVolume: liters(pumpTest),
	}
}

func testTank() inventory.Tank {
	return inventory.Tank{
		ID:           uuid.New(),
		Capacity:     liters("10000"),
		InitialStock: liters("1200"),
	}
}

func TestReconcile_Cascade(t *testing.T) {
	type testCase struct {
		name       string
		history    inventory.History
		asOf       time.Time
		wantLiters string
		wantSource inventory.Source
	}

	tests := []testCase{
		{
			name:       "UntouchedTankReturnsInitialStock",
			history:    inventory.History{},
			asOf:       at(10, 12),
			wantLiters: "1200",
			wantSource: inventory.SourceInitialStock,
		},
		{
			name: "InitialStockPlusWholeHistory",
			history: inventory.History{
				Deliveries: []inventory.Delivery{delivery("3000", at(2, 9)), delivery("1000", at(6, 9))},
				Shifts: []inventory.ShiftSales{
					shift(businessDate(3), at(3, 16), nozzle("0", "700", "0"), nozzle("50", "350", "0")),
				},
			},
			asOf:       at(10, 12),
			wantLiters: "4200",
			wantSource: inventory.SourceInitialStock,
		},
		{
			name: "HistoricalReadingAppliesDeltasSinceReading",
			history: inventory.History{
				Readings: []inventory.Reading{reading("4800", at(8, 20)), reading("5000", at(9, 20))},
				Deliveries: []inventory.Delivery{
					delivery("700", at(9, 19)),
					delivery("500", at(10, 9)),
				},
				Shifts: []inventory.ShiftSales{
					shift(businessDate(9), at(9, 18), nozzle("0", "900", "0")),
					shift(businessDate(9), at(9, 22), nozzle("900", "1200", "0")),
				},
			},
			asOf:       at(10, 12),
			wantLiters: "5200",
			wantSource: inventory.SourceHistoricalReading,
		},
		{
			name: "OpeningReadingTodayScenario",
			history: inventory.History{
				Readings:   []inventory.Reading{reading("3000", at(10, 8))},
				Deliveries: []inventory.Delivery{delivery("400", at(10, 10))},
				Shifts: []inventory.ShiftSales{
					shift(businessDate(10), at(10, 16), nozzle("10000", "10500", "0")),
				},
			},
			asOf:       at(10, 18),
			wantLiters: "2900",
			wantSource: inventory.SourceOpeningReading,
		},
		{
			name: "OpeningReadingExcludesPumpTestsAndOtherDays",
			history: inventory.History{
				Readings: []inventory.Reading{reading("3000", at(10, 8))},
				Shifts: []inventory.ShiftSales{
					shift(businessDate(9), at(10, 6), nozzle("0", "999", "0")),
					shift(businessDate(10), at(10, 16), nozzle("100", "400", "20"), nozzle("0", "100", "0")),
				},
			},
			asOf:       at(10, 18),
			wantLiters: "2620",
			wantSource: inventory.SourceOpeningReading,
		},
		{
			name: "LatestReadingTodayIsGroundTruth",
			history: inventory.History{
				Readings: []inventory.Reading{
					reading("2600", at(10, 16)),
					reading("3000", at(10, 8)),
					reading("9000", at(9, 8)),
				},
				Deliveries: []inventory.Delivery{delivery("800", at(10, 17))},
				Shifts: []inventory.ShiftSales{
					shift(businessDate(10), at(10, 17), nozzle("0", "250", "0")),
				},
			},
			asOf:       at(10, 18),
			wantLiters: "2600",
			wantSource: inventory.SourceLatestReading,
		},
		{
			name: "PendingAndRejectedReadingsAreIgnored",
			history: inventory.History{
				Readings: []inventory.Reading{
					{ID: uuid.New(), LiterValue: liters("9000"), Status: inventory.ReadingPending, CreatedAt: at(10, 8)},
					{ID: uuid.New(), LiterValue: liters("8000"), Status: inventory.ReadingRejected, CreatedAt: at(10, 9)},
				},
			},
			asOf:       at(10, 18),
			wantLiters: "1200",
			wantSource: inventory.SourceInitialStock,
		},
		{
			name: "EventsAfterAsOfAreIgnored",
			history: inventory.History{
				Readings:   []inventory.Reading{reading("3000", at(10, 8)), reading("100", at(10, 20))},
				Deliveries: []inventory.Delivery{delivery("400", at(10, 10)), delivery("900", at(10, 19))},
				Shifts: []inventory.ShiftSales{
					shift(businessDate(10), at(10, 19), nozzle("0", "500", "0")),
				},
			},
			asOf:       at(10, 12),
			wantLiters: "3400",
			wantSource: inventory.SourceOpeningReading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tank := testTank()

			got := inventory.Reconcile(tank, tt.history, inventory.DayWindow(tt.asOf, time.UTC))

			assert.Equal(t, tt.wantSource, got.Source)
			assert.True(t, liters(tt.wantLiters).Equal(got.Liters), "want %s L, got %s L", tt.wantLiters, got.Liters)
			assert.Equal(t, tank.ID, got.TankID)
			assert.Equal(t, tt.asOf, got.AsOf)
			assert.False(t, got.Clamped)
		})
	}
}

func TestReconcile_ScenarioBreakdown(t *testing.T) {
	opening := reading("3000", at(10, 8))
	h := inventory.History{
		Readings:   []inventory.Reading{opening},
		Deliveries: []inventory.Delivery{delivery("400", at(10, 10))},
		Shifts:     []inventory.ShiftSales{shift(businessDate(10), at(10, 16), nozzle("0", "500", "0"))},
	}

	got := inventory.Reconcile(testTank(), h, inventory.DayWindow(at(10, 18), time.UTC))

	require.NotNil(t, got.ReadingID)
	assert.Equal(t, opening.ID, *got.ReadingID)
	require.NotNil(t, got.BaselineAt)
	assert.Equal(t, opening.CreatedAt, *got.BaselineAt)
	assert.True(t, liters("3000").Equal(got.Baseline))
	assert.True(t, liters("400").Equal(got.Delivered))
	assert.True(t, liters("500").Equal(got.Sold))
}

func TestReconcile_NegativeStockIsClamped(t *testing.T) {
	h := inventory.History{
		Readings: []inventory.Reading{reading("100", at(9, 8))},
		Shifts:   []inventory.ShiftSales{shift(businessDate(9), at(9, 16), nozzle("0", "400", "0"))},
	}

	got := inventory.Reconcile(testTank(), h, inventory.DayWindow(at(10, 12), time.UTC))

	assert.True(t, got.Liters.IsZero())
	assert.True(t, got.Clamped)
	assert.Equal(t, inventory.SourceHistoricalReading, got.Source)
}

func TestReconcile_BusinessDayUsesLocation(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)

	// 01:00 UTC on the 10th is still the 9th in BRT.
	asOf := time.Date(2024, 5, 10, 2, 0, 0, 0, time.UTC)
	h := inventory.History{
		Readings:   []inventory.Reading{reading("4000", time.Date(2024, 5, 10, 1, 0, 0, 0, time.UTC))},
		Deliveries: []inventory.Delivery{delivery("250", time.Date(2024, 5, 10, 1, 30, 0, 0, time.UTC))},
	}

	w := inventory.DayWindow(asOf, brt)
	assert.Equal(t, time.Date(2024, 5, 9, 0, 0, 0, 0, brt), w.Start)

	got := inventory.Reconcile(testTank(), h, w)
	assert.Equal(t, inventory.SourceOpeningReading, got.Source)
	assert.True(t, liters("4250").Equal(got.Liters))
}

func TestReconcile_StockNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	for i := range 200 {
		var h inventory.History

		for range rng.IntN(4) {
			h.Readings = append(h.Readings, reading(decimal.NewFromInt(rng.Int64N(10000)).String(), at(1+rng.IntN(10), rng.IntN(24))))
		}

		for range rng.IntN(6) {
			h.Deliveries = append(h.Deliveries, delivery(decimal.NewFromInt(rng.Int64N(5000)).String(), at(1+rng.IntN(10), rng.IntN(24))))
		}

		for range rng.IntN(6) {
			day := 1 + rng.IntN(10)
			sold := decimal.NewFromInt(rng.Int64N(6000)).String()
			h.Shifts = append(h.Shifts, shift(businessDate(day), at(day, rng.IntN(24)), nozzle("0", sold, "0")))
		}

		got := inventory.Reconcile(testTank(), h, inventory.DayWindow(at(10, 23), time.UTC))
		assert.False(t, got.Liters.IsNegative(), "iteration %d produced %s L", i, got.Liters)
	}
}

func TestShiftSales_Volume(t *testing.T) {
	s := shift(businessDate(1), at(1, 16),
		nozzle("1000.5", "1600.5", "5"),
		nozzle("20", "20", "0"),
		nozzle("300", "450.25", "0.25"),
	)

	assert.True(t, liters("745").Equal(s.Volume()), "got %s", s.Volume())
}
