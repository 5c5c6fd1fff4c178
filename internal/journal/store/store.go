// Package store posts journal entries into the application database, inside
// the caller's transaction.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/journal"
)

const uniqueViolation = "23505"

type Poster struct{}

func NewPoster() *Poster {
	return &Poster{}
}

func (p *Poster) Post(ctx context.Context, q sqlx.ExtContext, posting journal.Posting) error {
	entryQuery := `
		INSERT INTO journal_entries (id, reference_type, reference_id, description, posted_at)
		VALUES ($1, $2, $3, $4, $5)`

	entryID := uuid.New()

	_, err := q.ExecContext(ctx, entryQuery,
		entryID,
		posting.ReferenceType,
		posting.ReferenceID,
		posting.Description,
		posting.PostedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.New(apperr.KindAlreadyProcessed,
				"%s %s is already posted", posting.ReferenceType, posting.ReferenceID)
		}

		return fmt.Errorf("creating journal entry: %w", err)
	}

	lineQuery := `
		INSERT INTO journal_lines (entry_id, line_no, account, party, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for i, l := range posting.Lines {
		if _, err := q.ExecContext(ctx, lineQuery, entryID, i+1, l.Account, l.Party, l.Debit, l.Credit); err != nil {
			return fmt.Errorf("creating journal line: %w", err)
		}
	}

	return nil
}
