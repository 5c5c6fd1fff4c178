package unload_test

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/inventory"
	"github.com/MrJamesThe3rd/tankops/internal/journal"
	"github.com/MrJamesThe3rd/tankops/internal/ledger"
	"github.com/MrJamesThe3rd/tankops/internal/unload"
)

// fakeState is everything an approval may change.
type fakeState struct {
	unloads     map[uuid.UUID]unload.Unload
	orders      []ledger.PurchaseOrder
	allocations map[uuid.UUID][]ledger.Allocation
	postings    []journal.Posting
}

func (s fakeState) clone() fakeState {
	return fakeState{
		unloads:     maps.Clone(s.unloads),
		orders:      slices.Clone(s.orders),
		allocations: maps.Clone(s.allocations),
		postings:    slices.Clone(s.postings),
	}
}

// fakeDB is an in-memory database that locks the way the Postgres store
// does: an approval holds its unload from BeginApproval, its tank from
// LockTank and the product's open orders from LockOpenOrders until it ends.
// Reads see committed state; writes become visible on Commit.
type fakeDB struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
	now   time.Time

	tanks   map[uuid.UUID]inventory.Tank
	history map[uuid.UUID]inventory.History
	state   fakeState

	postHook  func(ctx context.Context, attempt int) error
	postCalls int

	// tankLocked, when set, runs after an approval locks a tank.
	tankLocked func(tankID uuid.UUID)
}

func newFakeDB(now time.Time) *fakeDB {
	return &fakeDB{
		locks:   map[string]chan struct{}{},
		now:     now,
		tanks:   map[uuid.UUID]inventory.Tank{},
		history: map[uuid.UUID]inventory.History{},
		state: fakeState{
			unloads:     map[uuid.UUID]unload.Unload{},
			allocations: map[uuid.UUID][]ledger.Allocation{},
		},
	}
}

func (db *fakeDB) acquire(ctx context.Context, key string) (chan struct{}, error) {
	db.mu.Lock()
	ch, ok := db.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		db.locks[key] = ch
	}
	db.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return ch, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (db *fakeDB) addTank(t inventory.Tank) {
	db.tanks[t.ID] = t
}

func (db *fakeDB) addOrder(o ledger.PurchaseOrder) {
	db.state.orders = append(db.state.orders, o)
}

func (db *fakeDB) seedUnload(u unload.Unload) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.state.unloads[u.ID] = u
}

func (db *fakeDB) snapshot() fakeState {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.state.clone()
}

func (db *fakeDB) unload(id uuid.UUID) unload.Unload {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.state.unloads[id]
}

// unload.Repository

func (db *fakeDB) CreateUnload(_ context.Context, u *unload.Unload) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	u.ID = uuid.New()
	u.CreatedAt = db.now
	u.UpdatedAt = db.now
	db.state.unloads[u.ID] = *u

	return nil
}

func (db *fakeDB) GetUnload(_ context.Context, id uuid.UUID) (*unload.Unload, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.state.unloads[id]
	if !ok {
		return nil, apperr.NotFound("unload", id)
	}

	return &u, nil
}

func (db *fakeDB) ListUnloads(_ context.Context, filter unload.ListFilter) ([]*unload.Unload, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []*unload.Unload

	for _, u := range db.state.unloads {
		if filter.TankID != nil && u.TankID != *filter.TankID {
			continue
		}

		if filter.Status != nil && u.Status != *filter.Status {
			continue
		}

		out = append(out, &u)
	}

	return out, nil
}

func (db *fakeDB) UpdateUnload(_ context.Context, u *unload.Unload) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if cur, ok := db.state.unloads[u.ID]; !ok || cur.Status != unload.StatusPending {
		return false, nil
	}

	db.state.unloads[u.ID] = *u

	return true, nil
}

func (db *fakeDB) RejectUnload(_ context.Context, id, approverID uuid.UUID, at time.Time) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.state.unloads[id]
	if !ok || u.Status != unload.StatusPending {
		return false, nil
	}

	u.Status = unload.StatusRejected
	u.ProcessedBy = &approverID
	u.ProcessedAt = &at
	db.state.unloads[id] = u

	return true, nil
}

func (db *fakeDB) BeginApproval(ctx context.Context, id uuid.UUID) (unload.ApprovalTx, error) {
	lock, err := db.acquire(ctx, "unload:"+id.String())
	if err != nil {
		return nil, err
	}

	return &fakeTx{
		db:          db,
		held:        []chan struct{}{lock},
		unloads:     map[uuid.UUID]unload.Unload{},
		orders:      map[uuid.UUID]ledger.PurchaseOrder{},
		allocations: map[uuid.UUID][]ledger.Allocation{},
	}, nil
}

// inventory.Repository

func (db *fakeDB) GetTank(_ context.Context, id uuid.UUID) (*inventory.Tank, error) {
	t, ok := db.tanks[id]
	if !ok {
		return nil, apperr.NotFound("tank", id)
	}

	return &t, nil
}

func (db *fakeDB) LoadHistory(_ context.Context, tankID uuid.UUID, _ inventory.Window) (*inventory.History, error) {
	return db.historyOf(tankID, db.snapshot()), nil
}

func (db *fakeDB) CreateReadings(context.Context, []*inventory.Reading) error { return nil }

func (db *fakeDB) ReviewReading(context.Context, uuid.UUID, inventory.ReadingStatus) (*inventory.Reading, error) {
	return nil, nil
}

func (db *fakeDB) historyOf(tankID uuid.UUID, st fakeState) *inventory.History {
	h := db.history[tankID]

	out := inventory.History{
		Readings: slices.Clone(h.Readings),
		Shifts:   slices.Clone(h.Shifts),
	}

	for _, u := range st.unloads {
		if u.TankID == tankID && u.Status == unload.StatusApproved {
			out.Deliveries = append(out.Deliveries, inventory.Delivery{
				UnloadID:    u.ID,
				LiterAmount: u.LiterAmount,
				CreatedAt:   u.CreatedAt,
			})
		}
	}

	return &out
}

// ledger.Repository

func (db *fakeDB) ListOpenOrders(_ context.Context, stationID, productID uuid.UUID) ([]ledger.PurchaseOrder, error) {
	return openOrders(db.snapshot().orders, stationID, productID), nil
}

func openOrders(orders []ledger.PurchaseOrder, stationID, productID uuid.UUID) []ledger.PurchaseOrder {
	var out []ledger.PurchaseOrder

	for _, o := range orders {
		if o.StationID == stationID && o.ProductID == productID && o.Status == ledger.OrderApproved &&
			o.Remaining().IsPositive() {
			out = append(out, o)
		}
	}

	slices.SortStableFunc(out, func(a, b ledger.PurchaseOrder) int {
		return cmp.Or(a.OrderDate.Compare(b.OrderDate), a.CreatedAt.Compare(b.CreatedAt))
	})

	return out
}

// fakeTx buffers its writes and applies them on Commit.
type fakeTx struct {
	db   *fakeDB
	held []chan struct{}
	done bool

	unloads     map[uuid.UUID]unload.Unload
	orders      map[uuid.UUID]ledger.PurchaseOrder
	allocations map[uuid.UUID][]ledger.Allocation
	postings    []journal.Posting
}

func (tx *fakeTx) hold(ctx context.Context, key string) error {
	lock, err := tx.db.acquire(ctx, key)
	if err != nil {
		return err
	}

	tx.held = append(tx.held, lock)

	return nil
}

func (tx *fakeTx) LockUnload(_ context.Context, id uuid.UUID) (*unload.Unload, error) {
	u, ok := tx.db.snapshot().unloads[id]
	if !ok {
		return nil, apperr.NotFound("unload", id)
	}

	return &u, nil
}

func (tx *fakeTx) LockTank(ctx context.Context, id uuid.UUID) (*inventory.Tank, error) {
	if err := tx.hold(ctx, "tank:"+id.String()); err != nil {
		return nil, err
	}

	if tx.db.tankLocked != nil {
		tx.db.tankLocked(id)
	}

	return tx.db.GetTank(ctx, id)
}

func (tx *fakeTx) LoadHistory(_ context.Context, tankID uuid.UUID, _ inventory.Window) (*inventory.History, error) {
	return tx.db.historyOf(tankID, tx.db.snapshot()), nil
}

func (tx *fakeTx) LockOpenOrders(ctx context.Context, stationID, productID uuid.UUID) ([]ledger.PurchaseOrder, error) {
	if err := tx.hold(ctx, "orders:"+stationID.String()+":"+productID.String()); err != nil {
		return nil, err
	}

	open := openOrders(tx.db.snapshot().orders, stationID, productID)
	for _, o := range open {
		tx.orders[o.ID] = o
	}

	return open, nil
}

func (tx *fakeTx) ApplyAllocations(_ context.Context, unloadID uuid.UUID, allocs []ledger.Allocation) error {
	for _, a := range allocs {
		o, ok := tx.orders[a.OrderID]
		if !ok || o.Remaining().LessThan(a.Volume) {
			return apperr.New(apperr.KindInconsistentState, "order %s cannot absorb %s", a.OrderID, a.Volume)
		}

		o.DeliveredVolume = o.DeliveredVolume.Add(a.Volume)
		tx.orders[a.OrderID] = o
	}

	tx.allocations[unloadID] = slices.Clone(allocs)

	return nil
}

func (tx *fakeTx) LatestUnitPrice(_ context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var (
		latest ledger.PurchaseOrder
		found  bool
	)

	for _, o := range tx.db.snapshot().orders {
		if o.ProductID == productID && o.Status == ledger.OrderApproved && (!found || o.OrderDate.After(latest.OrderDate)) {
			latest, found = o, true
		}
	}

	if !found {
		return decimal.Zero, apperr.New(apperr.KindNotFound, "no price for product %s", productID)
	}

	return latest.UnitPrice, nil
}

func (tx *fakeTx) PostJournal(ctx context.Context, p journal.Posting) error {
	tx.db.mu.Lock()
	tx.db.postCalls++
	attempt := tx.db.postCalls
	hook := tx.db.postHook
	tx.db.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, attempt); err != nil {
			return err
		}
	}

	tx.postings = append(tx.postings, p)

	return nil
}

func (tx *fakeTx) MarkApproved(_ context.Context, u *unload.Unload) (uuid.UUID, error) {
	cur, ok := tx.db.snapshot().unloads[u.ID]
	if !ok || cur.Status != unload.StatusPending {
		return uuid.Nil, nil
	}

	tx.unloads[u.ID] = *u

	return u.ID, nil
}

func (tx *fakeTx) Commit() error {
	tx.db.mu.Lock()

	maps.Copy(tx.db.state.unloads, tx.unloads)
	maps.Copy(tx.db.state.allocations, tx.allocations)
	tx.db.state.postings = append(tx.db.state.postings, tx.postings...)

	for i, o := range tx.db.state.orders {
		if updated, ok := tx.orders[o.ID]; ok {
			tx.db.state.orders[i] = updated
		}
	}

	tx.db.mu.Unlock()

	tx.release()

	return nil
}

func (tx *fakeTx) Rollback() error {
	tx.release()
	return nil
}

func (tx *fakeTx) release() {
	if tx.done {
		return
	}

	tx.done = true

	for _, lock := range slices.Backward(tx.held) {
		<-lock
	}
}
