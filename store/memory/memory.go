// Package memory is an in-process implementation of store.Store.
// It backs the test suites and the STORAGE_BACKEND=memory development mode.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

// Store keeps users and bills in maps guarded by a RWMutex.
// Transactions work on a copy of the maps which replaces the live state on commit.
type Store struct {
	mu    sync.RWMutex
	state *state
	now   func() time.Time
	inTx  bool
}

var _ store.Store = (*Store)(nil)

type state struct {
	users      map[int64]models.User
	bills      map[int64]models.Bill
	nextUserID int64
	nextBillID int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		state: &state{
			users: make(map[int64]models.User),
			bills: make(map[int64]models.Bill),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (st *state) clone() *state {
	c := &state{
		users:      make(map[int64]models.User, len(st.users)),
		bills:      make(map[int64]models.Bill, len(st.bills)),
		nextUserID: st.nextUserID,
		nextBillID: st.nextBillID,
	}
	for id, u := range st.users {
		c.users[id] = u
	}
	for id, b := range st.bills {
		c.bills[id] = cloneBill(b)
	}
	return c
}

// cloneBill copies the pointer fields so callers cannot reach stored state.
func cloneBill(b models.Bill) models.Bill {
	if b.Note != nil {
		note := *b.Note
		b.Note = &note
	}
	if b.PaymentDate != nil {
		d := *b.PaymentDate
		b.PaymentDate = &d
	}
	return b
}

// WithinTx runs fn against a snapshot and publishes it only when fn succeeds.
// Writers outside the transaction wait until it finishes.
func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{state: s.state.clone(), now: s.now, inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *Store) Close() {}
