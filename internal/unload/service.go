package unload

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/inventory"
	"github.com/MrJamesThe3rd/tankops/internal/journal"
	"github.com/MrJamesThe3rd/tankops/internal/ledger"
	"github.com/MrJamesThe3rd/tankops/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=unload
type Repository interface {
	CreateUnload(ctx context.Context, u *Unload) error
	GetUnload(ctx context.Context, id uuid.UUID) (*Unload, error)
	ListUnloads(ctx context.Context, filter ListFilter) ([]*Unload, error)

	// UpdateUnload and RejectUnload only touch a PENDING unload and report
	// false when it was no longer pending.
	UpdateUnload(ctx context.Context, u *Unload) (bool, error)
	RejectUnload(ctx context.Context, id, approverID uuid.UUID, at time.Time) (bool, error)

	BeginApproval(ctx context.Context, id uuid.UUID) (ApprovalTx, error)
}

// ApprovalTx is the transaction an approval runs in. Every read and write of
// the approval goes through it; nothing is visible to others until Commit.
type ApprovalTx interface {
	LockUnload(ctx context.Context, id uuid.UUID) (*Unload, error)

	// LockTank holds the tank until the transaction ends, so approvals into
	// the same tank check capacity one after another.
	LockTank(ctx context.Context, id uuid.UUID) (*inventory.Tank, error)
	LoadHistory(ctx context.Context, tankID uuid.UUID, w inventory.Window) (*inventory.History, error)

	LockOpenOrders(ctx context.Context, stationID, productID uuid.UUID) ([]ledger.PurchaseOrder, error)
	ApplyAllocations(ctx context.Context, unloadID uuid.UUID, allocs []ledger.Allocation) error
	LatestUnitPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)

	PostJournal(ctx context.Context, p journal.Posting) error

	// MarkApproved moves a PENDING unload to APPROVED and returns the id of
	// the row it updated, or uuid.Nil when none was pending.
	MarkApproved(ctx context.Context, u *Unload) (uuid.UUID, error)

	Commit() error
	Rollback() error
}

type StockReader interface {
	Tank(ctx context.Context, id uuid.UUID) (*inventory.Tank, error)
	CurrentStock(ctx context.Context, tankID uuid.UUID) (*inventory.Stock, error)
	Location() *time.Location
}

type LedgerReader interface {
	Remaining(ctx context.Context, stationID, productID uuid.UUID) (ledger.Remaining, error)
}

const (
	defaultApprovalTimeout = 15 * time.Second
	defaultMaxRetries      = 2
	defaultRetryInterval   = 200 * time.Millisecond
)

type Service struct {
	repo     Repository
	stock    StockReader
	ledger   LedgerReader
	accounts journal.Accounts
	log      *zap.Logger
	now      func() time.Time

	timeout       time.Duration
	maxRetries    int
	retryInterval time.Duration
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithApprovalTimeout bounds each approval attempt.
func WithApprovalTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithRetry sets how many times a timed out approval is retried and the
// first backoff interval.
func WithRetry(maxRetries int, interval time.Duration) Option {
	return func(s *Service) {
		s.maxRetries = maxRetries
		s.retryInterval = interval
	}
}

func NewService(repo Repository, stock StockReader, ledger LedgerReader, accounts journal.Accounts, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		stock:         stock,
		ledger:        ledger,
		accounts:      accounts,
		log:           zap.NewNop(),
		now:           time.Now,
		timeout:       defaultApprovalTimeout,
		maxRetries:    defaultMaxRetries,
		retryInterval: defaultRetryInterval,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Unload, error) {
	return s.repo.GetUnload(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Unload, error) {
	return s.repo.ListUnloads(ctx, filter)
}

// Create records a PENDING unload. The capacity and purchase volume checks
// are repeated at approval; here they only stop obviously bad requests.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Unload, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	kind, depositor := params.Kind, strings.TrimSpace(params.DepositorName)
	if kind == "" {
		var inferred string

		kind, inferred = InferKind(params.Notes)
		if depositor == "" {
			depositor = inferred
		}
	}

	if kind == KindDepositInKind && depositor == "" {
		return nil, apperr.Validation("invalid input", map[string][]string{"depositor_name": {"is required"}})
	}

	u := &Unload{
		TankID:             params.TankID,
		UnloaderID:         params.UnloaderID,
		Kind:               kind,
		DepositorName:      depositor,
		LiterAmount:        params.LiterAmount,
		DeliveredVolume:    params.DeliveredVolume,
		InitialOrderVolume: params.InitialOrderVolume,
		Status:             StatusPending,
		Notes:              params.Notes,
	}

	if err := s.precheck(ctx, u); err != nil {
		return nil, err
	}

	if err := s.repo.CreateUnload(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Update edits a PENDING unload and repeats the creation checks.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Unload, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	u, err := s.repo.GetUnload(ctx, id)
	if err != nil {
		return nil, err
	}

	if !u.Pending() {
		return nil, alreadyProcessed(u)
	}

	if params.LiterAmount != nil {
		u.LiterAmount = *params.LiterAmount
	}

	if params.DeliveredVolume.Valid {
		u.DeliveredVolume = params.DeliveredVolume
	}

	if params.InitialOrderVolume.Valid {
		u.InitialOrderVolume = params.InitialOrderVolume
	}

	if params.DepositorName != nil {
		u.DepositorName = strings.TrimSpace(*params.DepositorName)
	}

	if params.Notes != nil {
		u.Notes = *params.Notes
	}

	if u.Kind == KindDepositInKind && u.DepositorName == "" {
		return nil, apperr.Validation("invalid input", map[string][]string{"depositor_name": {"is required"}})
	}

	// Pending unloads never count towards stock, so the current stock
	// already excludes this unload's previous amount.
	if err := s.precheck(ctx, u); err != nil {
		return nil, err
	}

	ok, err := s.repo.UpdateUnload(ctx, u)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, apperr.New(apperr.KindAlreadyProcessed, "unload %s was processed concurrently", id)
	}

	return u, nil
}

func (s *Service) precheck(ctx context.Context, u *Unload) error {
	tank, err := s.stock.Tank(ctx, u.TankID)
	if err != nil {
		return err
	}

	stock, err := s.stock.CurrentStock(ctx, tank.ID)
	if err != nil {
		return fmt.Errorf("computing stock: %w", err)
	}

	if err := checkCapacity(tank, stock.Liters, u.LiterAmount); err != nil {
		return err
	}

	if u.Kind == KindDepositInKind {
		return nil
	}

	mode, ok := u.DeliveryMode().(ByRemainingVolume)
	if !ok {
		return nil
	}

	rem, err := s.ledger.Remaining(ctx, tank.StationID, tank.ProductID)
	if err != nil {
		return err
	}

	if rem.Total.LessThan(mode.Volume) {
		return ledger.InsufficientVolume(mode.Volume, rem.Total)
	}

	return nil
}

// Reject moves a PENDING unload to REJECTED. Stock, purchase orders and the
// journal are not touched.
func (s *Service) Reject(ctx context.Context, id, approverID uuid.UUID) (*Unload, error) {
	u, err := s.repo.GetUnload(ctx, id)
	if err != nil {
		return nil, err
	}

	if !u.Pending() {
		return nil, alreadyProcessed(u)
	}

	now := s.now()

	ok, err := s.repo.RejectUnload(ctx, id, approverID, now)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, apperr.New(apperr.KindAlreadyProcessed, "unload %s was processed concurrently", id)
	}

	u.Status = StatusRejected
	u.ProcessedBy = new(approverID)
	u.ProcessedAt = new(now)
	u.UpdatedAt = now

	s.log.Info("unload rejected", zap.Stringer("unload_id", id), zap.Stringer("approver_id", approverID))

	return u, nil
}

func checkCapacity(tank *inventory.Tank, stock, amount decimal.Decimal) error {
	after := stock.Add(amount)
	if after.LessThanOrEqual(tank.Capacity) {
		return nil
	}

	err := apperr.New(apperr.KindCapacityExceeded,
		"tank %s holds %s L of %s L; %s L more would exceed capacity by %s L",
		tank.Name, stock, tank.Capacity, amount, after.Sub(tank.Capacity))
	err.Fields = map[string][]string{
		"liter_amount": {fmt.Sprintf("at most %s L fits", decimal.Max(tank.Capacity.Sub(stock), decimal.Zero))},
	}

	return err
}

func alreadyProcessed(u *Unload) error {
	return apperr.New(apperr.KindAlreadyProcessed, "unload %s is already %s", u.ID, strings.ToLower(string(u.Status)))
}
