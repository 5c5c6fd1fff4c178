// Package remote posts journal entries to an external accounting service.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jmoiron/sqlx"

	"github.com/MrJamesThe3rd/tankops/internal/journal"
)

const entriesPath = "/api/v1/journal-entries"

type Poster struct {
	client *resty.Client
}

// New returns a Poster for the accounting service at baseURL. The posting's
// reference id is sent as the idempotency key, so a retried approval never
// books the same delivery twice.
func New(baseURL, token string, timeout time.Duration) *Poster {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if token != "" {
		client.SetAuthToken(token)
	}

	return &Poster{client: client}
}

type errorBody struct {
	Message string `json:"message"`
}

// Post ignores q: the remote ledger cannot join the local transaction.
func (p *Poster) Post(ctx context.Context, _ sqlx.ExtContext, posting journal.Posting) error {
	var failure errorBody

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", posting.ReferenceType+":"+posting.ReferenceID.String()).
		SetBody(posting).
		SetError(&failure).
		Post(entriesPath)
	if err != nil {
		return fmt.Errorf("posting journal entry: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		if failure.Message != "" {
			return fmt.Errorf("journal service status %d: %s", resp.StatusCode(), failure.Message)
		}

		return fmt.Errorf("journal service status %d", resp.StatusCode())
	}
}
