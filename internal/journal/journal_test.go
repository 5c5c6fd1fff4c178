package journal_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/journal"
)

var accounts = journal.Accounts{
	Inventory:        "1310",
	InTransit:        "1320",
	ShrinkageLoss:    "6110",
	TransitGain:      "4910",
	DepositLiability: "2150",
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ref() journal.Reference {
	return journal.Reference{Type: "unload", ID: uuid.New(), Description: "test", At: time.Now()}
}

type wantLine struct {
	account string
	debit   string
	credit  string
}

func assertLines(t *testing.T, want []wantLine, got []journal.Line) {
	t.Helper()

	require.Len(t, got, len(want))

	for i, w := range want {
		assert.Equal(t, w.account, got[i].Account, "line %d", i)
		assert.True(t, dec(w.debit).Equal(got[i].Debit), "line %d debit: want %s, got %s", i, w.debit, got[i].Debit)
		assert.True(t, dec(w.credit).Equal(got[i].Credit), "line %d credit: want %s, got %s", i, w.credit, got[i].Credit)
	}
}

func TestDeliveryPosting(t *testing.T) {
	type testCase struct {
		name      string
		cost      string
		delivered string
		real      string
		want      []wantLine
	}

	tests := []testCase{
		{
			name:      "NoDifference",
			cost:      "600.00",
			delivered: "120",
			real:      "120",
			want: []wantLine{
				{"1310", "600.00", "0"},
				{"1320", "0", "600.00"},
			},
		},
		{
			name:      "ShrinkageLoss",
			cost:      "600.00",
			delivered: "120",
			real:      "118",
			want: []wantLine{
				{"1310", "590.00", "0"},
				{"1320", "0", "600.00"},
				{"6110", "10.00", "0"},
			},
		},
		{
			name:      "TransitGain",
			cost:      "600.00",
			delivered: "120",
			real:      "121",
			want: []wantLine{
				{"1310", "605.00", "0"},
				{"1320", "0", "600.00"},
				{"4910", "0", "5.00"},
			},
		},
		{
			name:      "InventoryRoundsToZero",
			cost:      "0.01",
			delivered: "1",
			real:      "0.4",
			want: []wantLine{
				{"1320", "0", "0.01"},
				{"6110", "0.01", "0"},
			},
		},
		{
			name:      "RoundedToCents",
			cost:      "100.00",
			delivered: "3",
			real:      "2",
			want: []wantLine{
				{"1310", "66.67", "0"},
				{"1320", "0", "100.00"},
				{"6110", "33.33", "0"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := journal.DeliveryPosting(accounts, ref(), dec(tt.cost), dec(tt.delivered), dec(tt.real))

			assertLines(t, tt.want, p.Lines)
			assert.NoError(t, p.Validate())
		})
	}
}

func TestDepositPosting(t *testing.T) {
	r := ref()
	p := journal.DepositPosting(accounts, r, "Posto Vizinho Ltda", dec("2450.50"))

	assertLines(t, []wantLine{
		{"1310", "2450.50", "0"},
		{"2150", "0", "2450.50"},
	}, p.Lines)

	for _, l := range p.Lines {
		assert.Equal(t, "Posto Vizinho Ltda", l.Party)
	}

	assert.Equal(t, r.ID, p.ReferenceID)
	assert.True(t, dec("2450.50").Equal(p.Total()))
	assert.NoError(t, p.Validate())
}

func TestPostings_WorthNothingHaveNoLines(t *testing.T) {
	delivery := journal.DeliveryPosting(accounts, ref(), dec("0"), dec("500"), dec("480"))
	assert.Empty(t, delivery.Lines)
	assert.True(t, delivery.Total().IsZero())

	deposit := journal.DepositPosting(accounts, ref(), "Posto Vizinho Ltda", dec("0.00"))
	assert.Empty(t, deposit.Lines)
}

func TestPosting_Validate(t *testing.T) {
	line := func(account, debit, credit string) journal.Line {
		return journal.Line{Account: account, Debit: dec(debit), Credit: dec(credit)}
	}

	type testCase struct {
		name  string
		lines []journal.Line
		valid bool
	}

	tests := []testCase{
		{name: "Balanced", lines: []journal.Line{line("a", "10", "0"), line("b", "0", "10")}, valid: true},
		{name: "SingleLine", lines: []journal.Line{line("a", "10", "0")}},
		{name: "Unbalanced", lines: []journal.Line{line("a", "10", "0"), line("b", "0", "9.99")}},
		{name: "BothSides", lines: []journal.Line{line("a", "10", "10"), line("b", "0", "0")}},
		{name: "ZeroLine", lines: []journal.Line{line("a", "0", "0"), line("b", "0", "0")}},
		{name: "Negative", lines: []journal.Line{line("a", "-10", "0"), line("b", "0", "-10")}},
		{name: "MissingAccount", lines: []journal.Line{line("", "10", "0"), line("b", "0", "10")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := journal.Posting{ReferenceID: uuid.New(), Lines: tt.lines}.Validate()

			if tt.valid {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, apperr.ErrInconsistentState)
		})
	}
}
