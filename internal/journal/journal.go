// Package journal builds balanced ledger postings for approved deliveries and
// hands them to a Poster.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
)

// Line is one side of a posting. Exactly one of Debit and Credit is positive.
type Line struct {
	Account string          `json:"account"`
	Party   string          `json:"party,omitempty"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

type Posting struct {
	ReferenceType string    `json:"reference_type"`
	ReferenceID   uuid.UUID `json:"reference_id"`
	Description   string    `json:"description"`
	PostedAt      time.Time `json:"posted_at"`
	Lines         []Line    `json:"lines"`
}

// Poster records a posting. q is the transaction the posting belongs to;
// posters that write elsewhere may ignore it, but a returned error must abort
// that transaction.
type Poster interface {
	Post(ctx context.Context, q sqlx.ExtContext, p Posting) error
}

// Accounts are the ledger account codes postings are made against.
type Accounts struct {
	Inventory        string
	InTransit        string
	ShrinkageLoss    string
	TransitGain      string
	DepositLiability string
}

// Reference identifies the business event behind a posting.
type Reference struct {
	Type        string
	ID          uuid.UUID
	Description string
	At          time.Time
}

// posting drops zero lines; a posting of nothing has no lines at all.
func (r Reference) posting(lines ...Line) Posting {
	kept := make([]Line, 0, len(lines))
	for _, l := range lines {
		if !l.Debit.IsZero() || !l.Credit.IsZero() {
			kept = append(kept, l)
		}
	}

	return Posting{
		ReferenceType: r.Type,
		ReferenceID:   r.ID,
		Description:   r.Description,
		PostedAt:      r.At,
		Lines:         kept,
	}
}

func debit(account, party string, amount decimal.Decimal) Line {
	return Line{Account: account, Party: party, Debit: amount, Credit: decimal.Zero}
}

func credit(account, party string, amount decimal.Decimal) Line {
	return Line{Account: account, Party: party, Debit: decimal.Zero, Credit: amount}
}

// DeliveryPosting moves the cost of delivered liters out of transit. Only the
// real liters reach inventory; the difference is booked as shrinkage loss, or
// as transit gain when more arrived than was delivered on paper.
func DeliveryPosting(acc Accounts, ref Reference, cost, delivered, real decimal.Decimal) Posting {
	inventoryValue := cost
	if !delivered.IsZero() && !real.Equal(delivered) {
		inventoryValue = cost.Mul(real).Div(delivered).Round(2)
	}

	lines := []Line{
		debit(acc.Inventory, "", inventoryValue),
		credit(acc.InTransit, "", cost),
	}

	switch diff := cost.Sub(inventoryValue); {
	case diff.IsPositive():
		lines = append(lines, debit(acc.ShrinkageLoss, "", diff))
	case diff.IsNegative():
		lines = append(lines, credit(acc.TransitGain, "", diff.Neg()))
	}

	return ref.posting(lines...)
}

// DepositPosting books fuel received in kind as inventory owed back to the
// depositor.
func DepositPosting(acc Accounts, ref Reference, depositor string, value decimal.Decimal) Posting {
	return ref.posting(
		debit(acc.Inventory, depositor, value),
		credit(acc.DepositLiability, depositor, value),
	)
}

// Total is the sum of the debit side.
func (p Posting) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Lines {
		total = total.Add(l.Debit)
	}

	return total
}

// Validate checks that the posting is balanced and well formed.
func (p Posting) Validate() error {
	if len(p.Lines) < 2 {
		return apperr.New(apperr.KindInconsistentState, "posting %s needs at least two lines", p.ReferenceID)
	}

	debits, credits := decimal.Zero, decimal.Zero

	for i, l := range p.Lines {
		if l.Account == "" {
			return apperr.New(apperr.KindInconsistentState, "posting line %d has no account", i)
		}

		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return apperr.New(apperr.KindInconsistentState, "posting line %d has a negative amount", i)
		}

		if l.Debit.IsPositive() == l.Credit.IsPositive() {
			return apperr.New(apperr.KindInconsistentState, "posting line %d must be either a debit or a credit", i)
		}

		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}

	if !debits.Equal(credits) {
		return apperr.New(apperr.KindInconsistentState,
			"posting %s is unbalanced: debits %s, credits %s", p.ReferenceID, debits, credits)
	}

	return nil
}
