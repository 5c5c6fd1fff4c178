package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	GetTank(ctx context.Context, id uuid.UUID) (*Tank, error)
	LoadHistory(ctx context.Context, tankID uuid.UUID, w Window) (*History, error)

	CreateReadings(ctx context.Context, readings []*Reading) error
	ReviewReading(ctx context.Context, id uuid.UUID, status ReadingStatus) (*Reading, error)
}

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, for tests and as-of replays.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, loc *time.Location, opts ...Option) *Service {
	if loc == nil {
		loc = time.UTC
	}

	s := &Service{repo: repo, loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Location is the business time zone used for day boundaries.
func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) Tank(ctx context.Context, id uuid.UUID) (*Tank, error) {
	return s.repo.GetTank(ctx, id)
}

// CurrentStock reconciles the tank's stock as of now.
func (s *Service) CurrentStock(ctx context.Context, tankID uuid.UUID) (*Stock, error) {
	return s.StockAt(ctx, tankID, s.now())
}

// StockAt reconciles the tank's stock as of the given instant.
func (s *Service) StockAt(ctx context.Context, tankID uuid.UUID, asOf time.Time) (*Stock, error) {
	tank, err := s.repo.GetTank(ctx, tankID)
	if err != nil {
		return nil, err
	}

	w := DayWindow(asOf, s.loc)

	h, err := s.repo.LoadHistory(ctx, tankID, w)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	stock := Reconcile(*tank, *h, w)

	return &stock, nil
}

// ImportReadings records gauge readings for a tank as PENDING.
func (s *Service) ImportReadings(ctx context.Context, tankID uuid.UUID, params []ReadingParams) ([]*Reading, error) {
	if len(params) == 0 {
		return nil, apperr.Validation("no readings to import", map[string][]string{"file": {"contains no readings"}})
	}

	tank, err := s.repo.GetTank(ctx, tankID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fields := map[string][]string{}
	readings := make([]*Reading, 0, len(params))

	for i, p := range params {
		row := fmt.Sprintf("rows[%d]", i)

		if p.LiterValue.IsNegative() {
			fields[row] = append(fields[row], "liter value must not be negative")
		}

		if p.LiterValue.GreaterThan(tank.Capacity) {
			fields[row] = append(fields[row], fmt.Sprintf("liter value exceeds tank capacity of %s L", tank.Capacity))
		}

		if p.TakenAt.After(now) {
			fields[row] = append(fields[row], "reading is in the future")
		}

		readings = append(readings, &Reading{
			TankID:     tankID,
			LiterValue: p.LiterValue,
			Status:     ReadingPending,
			CreatedAt:  p.TakenAt,
		})
	}

	if len(fields) > 0 {
		return nil, apperr.Validation("invalid readings", fields)
	}

	if err := s.repo.CreateReadings(ctx, readings); err != nil {
		return nil, err
	}

	return readings, nil
}

func (s *Service) ApproveReading(ctx context.Context, id uuid.UUID) (*Reading, error) {
	return s.repo.ReviewReading(ctx, id, ReadingApproved)
}

func (s *Service) RejectReading(ctx context.Context, id uuid.UUID) (*Reading, error) {
	return s.repo.ReviewReading(ctx, id, ReadingRejected)
}
