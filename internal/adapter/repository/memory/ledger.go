package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

type ClientRepository struct {
	store *Store
}

func (r *ClientRepository) Create(_ context.Context, client domain.Client) (domain.Client, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	client.Created = now
	client.Modified = now
	s.clients[client.ID] = client
	return client, nil
}

func (r *ClientRepository) GetByID(_ context.Context, id uuid.UUID) (domain.Client, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[id]
	if !ok {
		return domain.Client{}, commons.ErrRecordNotFound
	}
	return client, nil
}

func (r *ClientRepository) GetBankClient(_ context.Context) (domain.Client, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, client := range s.clients {
		if client.Type == domain.ClientTypeBank {
			return client, nil
		}
	}
	return domain.Client{}, commons.ErrRecordNotFound
}

type TariffRepository struct {
	store *Store
}

func (r *TariffRepository) Create(_ context.Context, tariff domain.Tariff) (domain.Tariff, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	tariff.Created = now
	tariff.Modified = now
	s.tariffs[tariff.ID] = tariff
	return tariff, nil
}

func (r *TariffRepository) GetByID(_ context.Context, id uuid.UUID) (domain.Tariff, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	tariff, ok := s.tariffs[id]
	if !ok {
		return domain.Tariff{}, commons.ErrRecordNotFound
	}
	return tariff, nil
}

func (r *TariffRepository) ListByKind(_ context.Context, kind domain.TariffKind) ([]domain.Tariff, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var tariffs []domain.Tariff
	for _, tariff := range s.tariffs {
		if tariff.Kind == kind {
			tariffs = append(tariffs, tariff)
		}
	}
	sortByCreatedAsc(tariffs, func(t domain.Tariff) time.Time { return t.Created })
	return tariffs, nil
}

func (r *TariffRepository) AnyOfKind(_ context.Context, kind domain.TariffKind) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tariff := range s.tariffs {
		if tariff.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	account.Created = now
	account.Modified = now
	s.accounts[account.ID] = account
	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (r *AccountRepository) ListByClient(_ context.Context, clientID uuid.UUID) ([]domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var accounts []domain.Account
	for _, account := range s.accounts {
		if account.ClientID == clientID {
			accounts = append(accounts, account)
		}
	}
	sortByCreatedAsc(accounts, func(a domain.Account) time.Time { return a.Created })
	return accounts, nil
}

func (r *AccountRepository) HasAccountForClientAndTariff(_ context.Context, clientID, tariffID uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.ClientID == clientID && account.TariffID == tariffID {
			return true, nil
		}
	}
	return false, nil
}

func (r *AccountRepository) HasBankAccountCovering(_ context.Context, amount decimal.Decimal) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.bankAccountIDs() {
		if s.accounts[id].Funds.GreaterThanOrEqual(amount) {
			return true, nil
		}
	}
	return false, nil
}

func (r *AccountRepository) BankAccountWithHighestBalance(_ context.Context) (domain.Account, error) {
	return r.bankAccountByBalance(true)
}

func (r *AccountRepository) BankAccountWithLowestBalance(_ context.Context) (domain.Account, error) {
	return r.bankAccountByBalance(false)
}

func (r *AccountRepository) bankAccountByBalance(highest bool) (domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.bankAccountByBalance(highest)
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

type TransactRepository struct {
	store *Store
}

func (r *TransactRepository) CreateWithPosting(_ context.Context, transact domain.Transact) (domain.Transact, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	transact.Created = s.now()
	if err := s.post(transact); err != nil {
		return domain.Transact{}, err
	}
	return transact, nil
}

func (r *TransactRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]domain.Transact, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var transacts []domain.Transact
	for _, transact := range s.transacts {
		if transact.SenderID == accountID || transact.RecipientID == accountID {
			transacts = append(transacts, transact)
		}
	}
	sortByCreatedDesc(transacts, func(t domain.Transact) time.Time { return t.Created })
	return transacts, nil
}

// post records the transact and applies both balance mutations, refusing a
// debit that would drive the sender negative. Callers must hold the lock.
func (s *Store) post(transact domain.Transact) error {
	sender, ok := s.accounts[transact.SenderID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	recipient, ok := s.accounts[transact.RecipientID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	if sender.Funds.LessThan(transact.Amount) {
		return commons.ErrInsufficientBalance
	}

	now := s.now()
	sender.Funds = sender.Funds.Sub(transact.Amount)
	sender.Modified = now
	recipient.Funds = recipient.Funds.Add(transact.Amount)
	recipient.Modified = now

	s.accounts[sender.ID] = sender
	s.accounts[recipient.ID] = recipient
	s.transacts[transact.ID] = transact
	return nil
}
