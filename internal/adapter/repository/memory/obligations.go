package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

type CreditRepository struct {
	store *Store
}

func (r *CreditRepository) OpenWithFunding(_ context.Context, credit domain.Credit) (domain.Credit, domain.CreditPaymentHistory, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	bankAccount, ok := s.bankAccountByBalance(true)
	if !ok {
		return domain.Credit{}, domain.CreditPaymentHistory{}, commons.ErrRecordNotFound
	}
	if bankAccount.Funds.LessThan(credit.Amount) {
		return domain.Credit{}, domain.CreditPaymentHistory{}, commons.ErrBankInsolvency
	}

	now := s.now()
	credit.Created = now
	credit.Modified = now
	s.credits[credit.ID] = credit

	if err := s.post(domain.Transact{
		ID:          uuid.New(),
		SenderID:    bankAccount.ID,
		RecipientID: credit.RecipientAccountID,
		Amount:      credit.Amount,
		Type:        domain.TransactTypeCredit,
		Created:     now,
	}); err != nil {
		delete(s.credits, credit.ID)
		return domain.Credit{}, domain.CreditPaymentHistory{}, err
	}

	history := domain.CreditPaymentHistory{
		ID:          uuid.New(),
		CreditID:    credit.ID,
		LastPayment: now,
		Created:     now,
		Modified:    now,
	}
	s.histories[history.ID] = history

	return credit, history, nil
}

func (r *CreditRepository) GetByID(_ context.Context, id uuid.UUID) (domain.Credit, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	credit, ok := s.credits[id]
	if !ok {
		return domain.Credit{}, commons.ErrRecordNotFound
	}
	return credit, nil
}

func (r *CreditRepository) ListByClient(_ context.Context, clientID uuid.UUID) ([]domain.Credit, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var credits []domain.Credit
	for _, credit := range s.credits {
		if credit.ClientID == clientID {
			credits = append(credits, credit)
		}
	}
	sortByCreatedDesc(credits, func(c domain.Credit) time.Time { return c.Created })
	return credits, nil
}

func (r *CreditRepository) CountActiveByClient(_ context.Context, clientID uuid.UUID) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, credit := range s.credits {
		if credit.ClientID == clientID && credit.Status == domain.ObligationStatusActive {
			count++
		}
	}
	return count, nil
}

func (r *CreditRepository) ListWithHistory(_ context.Context) ([]domain.CreditWithHistory, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.CreditWithHistory
	for _, history := range s.histories {
		credit, ok := s.credits[history.CreditID]
		if !ok {
			continue
		}
		result = append(result, domain.CreditWithHistory{Credit: credit, History: history})
	}
	sortByCreatedAsc(result, func(item domain.CreditWithHistory) time.Time { return item.Credit.Created })
	return result, nil
}

type InvestmentRepository struct {
	store *Store
}

func (r *InvestmentRepository) OpenWithFunding(_ context.Context, investment domain.Investment) (domain.Investment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	bankAccount, ok := s.bankAccountByBalance(false)
	if !ok {
		return domain.Investment{}, commons.ErrRecordNotFound
	}

	now := s.now()
	investment.Created = now
	investment.Modified = now
	s.investments[investment.ID] = investment

	if err := s.post(domain.Transact{
		ID:          uuid.New(),
		SenderID:    investment.PaymentAccountID,
		RecipientID: bankAccount.ID,
		Amount:      investment.Amount,
		Type:        domain.TransactTypeInvestment,
		Created:     now,
	}); err != nil {
		delete(s.investments, investment.ID)
		return domain.Investment{}, err
	}

	return investment, nil
}

func (r *InvestmentRepository) GetByID(_ context.Context, id uuid.UUID) (domain.Investment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	investment, ok := s.investments[id]
	if !ok {
		return domain.Investment{}, commons.ErrRecordNotFound
	}
	return investment, nil
}

func (r *InvestmentRepository) ListByClient(_ context.Context, clientID uuid.UUID) ([]domain.Investment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var investments []domain.Investment
	for _, investment := range s.investments {
		if investment.ClientID == clientID {
			investments = append(investments, investment)
		}
	}
	sortByCreatedDesc(investments, func(i domain.Investment) time.Time { return i.Created })
	return investments, nil
}

func (r *InvestmentRepository) ListActive(_ context.Context) ([]domain.Investment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var investments []domain.Investment
	for _, investment := range s.investments {
		if investment.Status == domain.ObligationStatusActive {
			investments = append(investments, investment)
		}
	}
	sortByCreatedAsc(investments, func(i domain.Investment) time.Time { return i.Created })
	return investments, nil
}

func (r *InvestmentRepository) HasActiveForClientAndTariff(_ context.Context, clientID, tariffID uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, investment := range s.investments {
		if investment.ClientID == clientID &&
			investment.TariffID == tariffID &&
			investment.Status == domain.ObligationStatusActive {
			return true, nil
		}
	}
	return false, nil
}
