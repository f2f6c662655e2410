package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

type PaymentRepository struct {
	store *Store
}

func (r *PaymentRepository) Create(_ context.Context, payment domain.Payment) (domain.Payment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	payment.Created = s.now()
	s.payments[payment.ID] = payment
	return payment, nil
}

func (r *PaymentRepository) CreateInstallment(_ context.Context, payment domain.Payment, historyID uuid.UUID, now time.Time) (domain.Payment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.histories[historyID]
	if !ok {
		return domain.Payment{}, commons.ErrRecordNotFound
	}

	payment.Created = s.now()
	s.payments[payment.ID] = payment

	history.Modified = now
	s.histories[historyID] = history
	return payment, nil
}

func (r *PaymentRepository) GetByID(_ context.Context, id uuid.UUID) (domain.Payment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[id]
	if !ok {
		return domain.Payment{}, commons.ErrRecordNotFound
	}
	return payment, nil
}

func (r *PaymentRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]domain.Payment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []domain.Payment
	for _, payment := range s.payments {
		if payment.RecipientID == accountID || (payment.SenderID != nil && *payment.SenderID == accountID) {
			payments = append(payments, payment)
		}
	}
	sortByCreatedDesc(payments, func(p domain.Payment) time.Time { return p.Created })
	return payments, nil
}

func (r *PaymentRepository) SumWaitingByClientAndType(_ context.Context, clientID uuid.UUID, transactType domain.TransactType) (decimal.Decimal, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := decimal.Zero
	for _, payment := range s.payments {
		if payment.Status != domain.PaymentStatusWaiting || payment.Type != transactType || payment.SenderID == nil {
			continue
		}
		sender, ok := s.accounts[*payment.SenderID]
		if ok && sender.ClientID == clientID {
			sum = sum.Add(payment.Amount)
		}
	}
	return sum, nil
}

func (r *PaymentRepository) AssignSender(_ context.Context, paymentID, senderAccountID uuid.UUID) (domain.Payment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[paymentID]
	if !ok {
		return domain.Payment{}, commons.ErrRecordNotFound
	}
	if payment.Status.Terminal() {
		return domain.Payment{}, commons.ErrPaymentLocked
	}
	if payment.RecipientID == senderAccountID {
		return domain.Payment{}, commons.ErrSameAccount
	}

	sender := senderAccountID
	payment.SenderID = &sender
	s.payments[paymentID] = payment
	return payment, nil
}

func (r *PaymentRepository) ConfirmWithPosting(_ context.Context, paymentID uuid.UUID) (domain.Payment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[paymentID]
	if !ok {
		return domain.Payment{}, commons.ErrRecordNotFound
	}
	if payment.Status.Terminal() {
		return domain.Payment{}, commons.ErrPaymentLocked
	}
	if payment.SenderID == nil {
		return domain.Payment{}, commons.ErrSenderNotAssigned
	}

	if err := s.post(domain.Transact{
		ID:          uuid.New(),
		SenderID:    *payment.SenderID,
		RecipientID: payment.RecipientID,
		Amount:      payment.Amount,
		Type:        payment.Type,
		Created:     s.now(),
	}); err != nil {
		return domain.Payment{}, err
	}

	payment.Status = domain.PaymentStatusConfirmed
	s.payments[paymentID] = payment

	if payment.Callback != nil {
		if err := s.settleObligations(*payment.Callback); err != nil {
			return domain.Payment{}, err
		}
	}

	return payment, nil
}

// settleObligations mirrors the postgres settlement: one installment off the
// referenced credit, or marking the referenced investment paid. Callers must
// hold the lock.
func (s *Store) settleObligations(callback domain.PaymentCallback) error {
	now := s.now()

	if callback.CreditID != nil {
		credit, ok := s.credits[*callback.CreditID]
		if !ok {
			return commons.ErrRecordNotFound
		}

		credit.RemainingAmount = credit.RemainingAmount.Sub(credit.MonthlyPayment)
		credit.Modified = now
		if credit.RemainingAmount.IsPositive() {
			if callback.CreditPaymentHistoryID != nil {
				history, ok := s.histories[*callback.CreditPaymentHistoryID]
				if !ok {
					return commons.ErrRecordNotFound
				}
				history.LastPayment = now
				s.histories[history.ID] = history
			}
		} else {
			credit.Status = domain.ObligationStatusPaid
			for id, history := range s.histories {
				if history.CreditID == credit.ID {
					delete(s.histories, id)
				}
			}
		}
		s.credits[credit.ID] = credit
	}

	if callback.InvestmentID != nil {
		investment, ok := s.investments[*callback.InvestmentID]
		if !ok {
			return commons.ErrRecordNotFound
		}
		investment.Status = domain.ObligationStatusPaid
		investment.Modified = now
		s.investments[investment.ID] = investment
	}

	return nil
}

func (r *PaymentRepository) HasWaitingForCredit(_ context.Context, creditID uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, payment := range s.payments {
		if payment.Status != domain.PaymentStatusWaiting || payment.Callback == nil {
			continue
		}
		if payment.Callback.CreditID != nil && *payment.Callback.CreditID == creditID {
			return true, nil
		}
	}
	return false, nil
}

func (r *PaymentRepository) HasWaitingForInvestment(_ context.Context, investmentID uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, payment := range s.payments {
		if payment.Status != domain.PaymentStatusWaiting || payment.Callback == nil {
			continue
		}
		if payment.Callback.InvestmentID != nil && *payment.Callback.InvestmentID == investmentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *PaymentRepository) CancelExpired(_ context.Context, now time.Time) ([]domain.Payment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var cancelled []domain.Payment
	for id, payment := range s.payments {
		if payment.Status == domain.PaymentStatusWaiting && !now.Before(payment.PayDate) {
			payment.Status = domain.PaymentStatusCancelled
			s.payments[id] = payment
			cancelled = append(cancelled, payment)
		}
	}
	sortByCreatedAsc(cancelled, func(p domain.Payment) time.Time { return p.Created })
	return cancelled, nil
}
