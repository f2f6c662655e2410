// Package memory implements the repository interfaces against in-process
// maps guarded by one mutex. Every multi-step mutation holds the lock for
// its whole unit of work, giving the same all-or-nothing visibility as the
// postgres implementation. Used by tests and by local runs without a
// database.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type Store struct {
	mu sync.Mutex

	clients     map[uuid.UUID]domain.Client
	tariffs     map[uuid.UUID]domain.Tariff
	accounts    map[uuid.UUID]domain.Account
	transacts   map[uuid.UUID]domain.Transact
	credits     map[uuid.UUID]domain.Credit
	histories   map[uuid.UUID]domain.CreditPaymentHistory
	investments map[uuid.UUID]domain.Investment
	payments    map[uuid.UUID]domain.Payment

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		clients:     make(map[uuid.UUID]domain.Client),
		tariffs:     make(map[uuid.UUID]domain.Tariff),
		accounts:    make(map[uuid.UUID]domain.Account),
		transacts:   make(map[uuid.UUID]domain.Transact),
		credits:     make(map[uuid.UUID]domain.Credit),
		histories:   make(map[uuid.UUID]domain.CreditPaymentHistory),
		investments: make(map[uuid.UUID]domain.Investment),
		payments:    make(map[uuid.UUID]domain.Payment),
		now:         time.Now,
	}
}

// SetClock overrides the store's notion of now. Test hook.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Clients() *ClientRepository         { return &ClientRepository{store: s} }
func (s *Store) Tariffs() *TariffRepository         { return &TariffRepository{store: s} }
func (s *Store) Accounts() *AccountRepository       { return &AccountRepository{store: s} }
func (s *Store) Transacts() *TransactRepository     { return &TransactRepository{store: s} }
func (s *Store) Credits() *CreditRepository         { return &CreditRepository{store: s} }
func (s *Store) Investments() *InvestmentRepository { return &InvestmentRepository{store: s} }
func (s *Store) Payments() *PaymentRepository       { return &PaymentRepository{store: s} }

// bankAccountIDs returns ids of accounts owned by Bank-type clients.
// Callers must hold the lock.
func (s *Store) bankAccountIDs() []uuid.UUID {
	var ids []uuid.UUID
	for id, account := range s.accounts {
		client, ok := s.clients[account.ClientID]
		if ok && client.Type == domain.ClientTypeBank {
			ids = append(ids, id)
		}
	}
	return ids
}

// bankAccountByBalance picks the bank account with the highest or lowest
// balance, breaking ties by creation time. Callers must hold the lock.
func (s *Store) bankAccountByBalance(highest bool) (domain.Account, bool) {
	ids := s.bankAccountIDs()
	if len(ids) == 0 {
		return domain.Account{}, false
	}

	best := s.accounts[ids[0]]
	for _, id := range ids[1:] {
		candidate := s.accounts[id]
		cmp := candidate.Funds.Cmp(best.Funds)
		better := cmp > 0
		if !highest {
			better = cmp < 0
		}
		if better || (cmp == 0 && candidate.Created.Before(best.Created)) {
			best = candidate
		}
	}
	return best, true
}

func sortByCreatedAsc[T any](items []T, created func(T) time.Time) {
	sort.Slice(items, func(i, j int) bool {
		return created(items[i]).Before(created(items[j]))
	})
}

func sortByCreatedDesc[T any](items []T, created func(T) time.Time) {
	sort.Slice(items, func(i, j int) bool {
		return created(items[j]).Before(created(items[i]))
	})
}
