package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/inventory"
)

// Store reads and writes tank data. It works over a *sqlx.DB or, inside the
// approval transaction, over a *sqlx.Tx.
type Store struct {
	q sqlx.ExtContext
}

func New(q sqlx.ExtContext) *Store {
	return &Store{q: q}
}

const selectReadingColumns = `id, tank_id, liter_value, status, created_at`

const selectTank = `
	SELECT id, station_id, product_id, name, capacity, initial_stock
	FROM tanks
	WHERE id = $1`

func (s *Store) GetTank(ctx context.Context, id uuid.UUID) (*inventory.Tank, error) {
	return s.getTank(ctx, selectTank, id)
}

// LockTank reads the tank and locks its row until the surrounding
// transaction ends. Only meaningful when the store runs over a *sqlx.Tx.
func (s *Store) LockTank(ctx context.Context, id uuid.UUID) (*inventory.Tank, error) {
	return s.getTank(ctx, selectTank+` FOR UPDATE`, id)
}

func (s *Store) getTank(ctx context.Context, query string, id uuid.UUID) (*inventory.Tank, error) {
	var tank inventory.Tank
	if err := sqlx.GetContext(ctx, s.q, &tank, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("tank", id)
		}

		return nil, fmt.Errorf("getting tank: %w", err)
	}

	return &tank, nil
}

// LoadHistory returns a superset of what Reconcile needs for w: the approved
// readings of the day plus the latest approved one before it, and the
// deliveries and completed shifts from that baseline on.
func (s *Store) LoadHistory(ctx context.Context, tankID uuid.UUID, w inventory.Window) (*inventory.History, error) {
	readings, err := s.loadReadings(ctx, tankID, w)
	if err != nil {
		return nil, err
	}

	var since time.Time
	if len(readings) > 0 {
		since = readings[0].CreatedAt
	}

	deliveries, err := s.loadDeliveries(ctx, tankID, since, w.AsOf)
	if err != nil {
		return nil, err
	}

	shifts, err := s.loadShifts(ctx, tankID, since, w)
	if err != nil {
		return nil, err
	}

	return &inventory.History{Readings: readings, Deliveries: deliveries, Shifts: shifts}, nil
}

func (s *Store) loadReadings(ctx context.Context, tankID uuid.UUID, w inventory.Window) ([]inventory.Reading, error) {
	query := `SELECT ` + selectReadingColumns + `
		FROM tank_readings
		WHERE tank_id = $1 AND status = 'APPROVED' AND created_at <= $3
		  AND (created_at >= $2 OR id = (
			SELECT id FROM tank_readings
			WHERE tank_id = $1 AND status = 'APPROVED' AND created_at < $2
			ORDER BY created_at DESC
			LIMIT 1
		  ))
		ORDER BY created_at ASC`

	var readings []inventory.Reading
	if err := sqlx.SelectContext(ctx, s.q, &readings, query, tankID, w.Start, w.AsOf); err != nil {
		return nil, fmt.Errorf("loading readings: %w", err)
	}

	return readings, nil
}

func (s *Store) loadDeliveries(ctx context.Context, tankID uuid.UUID, since, asOf time.Time) ([]inventory.Delivery, error) {
	query := `
		SELECT id, liter_amount, created_at
		FROM unloads
		WHERE tank_id = $1 AND status = 'APPROVED' AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC`

	var deliveries []inventory.Delivery
	if err := sqlx.SelectContext(ctx, s.q, &deliveries, query, tankID, since, asOf); err != nil {
		return nil, fmt.Errorf("loading deliveries: %w", err)
	}

	return deliveries, nil
}

type shiftRow struct {
	ShiftID        uuid.UUID       `db:"shift_id"`
	Date           time.Time       `db:"date"`
	ClosedAt       time.Time       `db:"closed_at"`
	NozzleID       uuid.UUID       `db:"nozzle_id"`
	OpenTotalizer  decimal.Decimal `db:"open_totalizer"`
	CloseTotalizer decimal.Decimal `db:"close_totalizer"`
	PumpTestVolume decimal.Decimal `db:"pump_test_volume"`
}

func (s *Store) loadShifts(ctx context.Context, tankID uuid.UUID, since time.Time, w inventory.Window) ([]inventory.ShiftSales, error) {
	query := `
		SELECT s.id AS shift_id, s.date, s.closed_at,
		       r.nozzle_id, r.open_totalizer, r.close_totalizer, r.pump_test_volume
		FROM shifts s
		JOIN shift_nozzle_readings r ON r.shift_id = s.id
		JOIN nozzles n ON n.id = r.nozzle_id
		WHERE n.tank_id = $1 AND s.status = 'COMPLETED' AND s.closed_at <= $3
		  AND (s.closed_at >= $2 OR s.date >= $4)
		ORDER BY s.closed_at ASC, s.id, r.nozzle_id`

	y, m, d := w.Start.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var rows []shiftRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, tankID, since, w.AsOf, today); err != nil {
		return nil, fmt.Errorf("loading shifts: %w", err)
	}

	var shifts []inventory.ShiftSales

	for _, r := range rows {
		if len(shifts) == 0 || shifts[len(shifts)-1].ShiftID != r.ShiftID {
			shifts = append(shifts, inventory.ShiftSales{
				ShiftID:  r.ShiftID,
				Date:     r.Date,
				ClosedAt: r.ClosedAt,
			})
		}

		last := &shifts[len(shifts)-1]
		last.Nozzles = append(last.Nozzles, inventory.NozzleReading{
			NozzleID:       r.NozzleID,
			OpenTotalizer:  r.OpenTotalizer,
			CloseTotalizer: r.CloseTotalizer,
			PumpTestVolume: r.PumpTestVolume,
		})
	}

	return shifts, nil
}

func (s *Store) CreateReadings(ctx context.Context, readings []*inventory.Reading) error {
	if len(readings) == 0 {
		return nil
	}

	var (
		values []string
		args   []any
	)

	for i, r := range readings {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}

		base := i * 5
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5))
		args = append(args, r.ID, r.TankID, r.LiterValue, r.Status, r.CreatedAt)
	}

	query := `INSERT INTO tank_readings (id, tank_id, liter_value, status, created_at) VALUES ` +
		strings.Join(values, ", ")

	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("creating readings: %w", err)
	}

	return nil
}

// ReviewReading moves a PENDING reading to status. Reviewed readings are
// immutable.
func (s *Store) ReviewReading(ctx context.Context, id uuid.UUID, status inventory.ReadingStatus) (*inventory.Reading, error) {
	query := `
		UPDATE tank_readings
		SET status = $1, reviewed_at = NOW()
		WHERE id = $2 AND status = 'PENDING'
		RETURNING ` + selectReadingColumns

	var r inventory.Reading

	err := sqlx.GetContext(ctx, s.q, &r, query, status, id)
	if err == nil {
		return &r, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reviewing reading: %w", err)
	}

	var current inventory.ReadingStatus
	if err := sqlx.GetContext(ctx, s.q, &current, `SELECT status FROM tank_readings WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("reading", id)
		}

		return nil, fmt.Errorf("getting reading status: %w", err)
	}

	return nil, apperr.New(apperr.KindAlreadyProcessed, "reading %s is already %s", id, strings.ToLower(string(current)))
}
