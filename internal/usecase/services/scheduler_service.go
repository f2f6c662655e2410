package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/api-sage/retail-bank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
	"github.com/api-sage/retail-bank-core/internal/usecase/service_interfaces"
)

// SchedulerService owns the three periodic sweeps: emitting credit
// installments on their due day, emitting repayments for matured investments,
// and cancelling payments past their deadline. Every sweep is safe to re-run;
// a crashed run picks up where it left off on the next tick.
type SchedulerService struct {
	creditRepo     repo_interfaces.CreditRepository
	investmentRepo repo_interfaces.InvestmentRepository
	paymentRepo    repo_interfaces.PaymentRepository
	accountRepo    repo_interfaces.AccountRepository
	notifier       service_interfaces.Notifier

	payDeadline       time.Duration
	creditSweepEvery  time.Duration
	investSweepEvery  time.Duration
	paymentSweepEvery time.Duration
}

func NewSchedulerService(
	creditRepo repo_interfaces.CreditRepository,
	investmentRepo repo_interfaces.InvestmentRepository,
	paymentRepo repo_interfaces.PaymentRepository,
	accountRepo repo_interfaces.AccountRepository,
	notifier service_interfaces.Notifier,
	payDeadline time.Duration,
	creditSweepEvery time.Duration,
	investSweepEvery time.Duration,
	paymentSweepEvery time.Duration,
) *SchedulerService {
	return &SchedulerService{
		creditRepo:        creditRepo,
		investmentRepo:    investmentRepo,
		paymentRepo:       paymentRepo,
		accountRepo:       accountRepo,
		notifier:          notifier,
		payDeadline:       payDeadline,
		creditSweepEvery:  creditSweepEvery,
		investSweepEvery:  investSweepEvery,
		paymentSweepEvery: paymentSweepEvery,
	}
}

// CheckCredits emits an installment payment for every active credit whose
// billing anchor falls due today and that has no waiting installment yet.
func (s *SchedulerService) CheckCredits(ctx context.Context, now time.Time) error {
	pairs, err := s.creditRepo.ListWithHistory(ctx)
	if err != nil {
		return fmt.Errorf("list credits with history: %w", err)
	}

	for _, pair := range pairs {
		if pair.Credit.Status != domain.ObligationStatusActive {
			continue
		}
		if !pair.History.DueOn(now) {
			continue
		}

		pending, err := s.paymentRepo.HasWaitingForCredit(ctx, pair.Credit.ID)
		if err != nil {
			logger.Error("credit sweep pending check failed", err, logger.Fields{"creditId": pair.Credit.ID})
			continue
		}
		if pending {
			continue
		}

		// Installments flow toward the bank's emptiest account.
		bankAccount, err := s.accountRepo.BankAccountWithLowestBalance(ctx)
		if err != nil {
			logger.Error("credit sweep bank account lookup failed", err, nil)
			continue
		}

		sender := pair.Credit.PaymentAccountID
		creditID := pair.Credit.ID
		historyID := pair.History.ID
		payment := domain.Payment{
			ID:          uuid.New(),
			SenderID:    &sender,
			RecipientID: bankAccount.ID,
			Amount:      pair.Credit.MonthlyPayment,
			Status:      domain.PaymentStatusWaiting,
			PayDate:     now.Add(s.payDeadline),
			Type:        domain.TransactTypeCredit,
			Callback: &domain.PaymentCallback{
				CreditID:               &creditID,
				CreditPaymentHistoryID: &historyID,
			},
		}

		created, err := s.paymentRepo.CreateInstallment(ctx, payment, historyID, now)
		if err != nil {
			logger.Error("credit sweep installment failed", err, logger.Fields{"creditId": creditID})
			continue
		}

		logger.Info("credit sweep installment emitted", logger.Fields{
			"creditId":  creditID,
			"paymentId": created.ID,
			"amount":    created.Amount,
		})
	}
	return nil
}

// CheckInvestments emits one repayment for every matured investment that has
// no waiting repayment yet. The payout leaves the bank's fullest account.
func (s *SchedulerService) CheckInvestments(ctx context.Context, now time.Time) error {
	investments, err := s.investmentRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active investments: %w", err)
	}

	for _, investment := range investments {
		if !investment.NeedsRepayment(now) {
			continue
		}

		pending, err := s.paymentRepo.HasWaitingForInvestment(ctx, investment.ID)
		if err != nil {
			logger.Error("investment sweep pending check failed", err, logger.Fields{"investmentId": investment.ID})
			continue
		}
		if pending {
			continue
		}

		bankAccount, err := s.accountRepo.BankAccountWithHighestBalance(ctx)
		if err != nil {
			logger.Error("investment sweep bank account lookup failed", err, nil)
			continue
		}

		sender := bankAccount.ID
		investmentID := investment.ID
		payment := domain.Payment{
			ID:          uuid.New(),
			SenderID:    &sender,
			RecipientID: investment.RecipientAccountID,
			Amount:      investment.RemainingAmount,
			Status:      domain.PaymentStatusWaiting,
			PayDate:     now.Add(s.payDeadline),
			Type:        domain.TransactTypeInvestment,
			Callback: &domain.PaymentCallback{
				InvestmentID: &investmentID,
			},
		}

		created, err := s.paymentRepo.Create(ctx, payment)
		if err != nil {
			logger.Error("investment sweep repayment failed", err, logger.Fields{"investmentId": investmentID})
			continue
		}

		logger.Info("investment sweep repayment emitted", logger.Fields{
			"investmentId": investmentID,
			"paymentId":    created.ID,
			"amount":       created.Amount,
		})
	}
	return nil
}

// CheckPayments sweeps waiting payments past their deadline to Cancelled and
// notifies their callback listeners.
func (s *SchedulerService) CheckPayments(ctx context.Context, now time.Time) error {
	cancelled, err := s.paymentRepo.CancelExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("cancel expired payments: %w", err)
	}

	for _, payment := range cancelled {
		logger.Info("payment sweep cancelled payment", logger.Fields{
			"paymentId": payment.ID,
			"payDate":   payment.PayDate,
		})
		s.notifier.Dispatch(payment)
	}
	return nil
}

// Run drives the three sweeps on their own tickers until the context ends.
func (s *SchedulerService) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.loop(ctx, s.creditSweepEvery, s.CheckCredits) })
	g.Go(func() error { return s.loop(ctx, s.investSweepEvery, s.CheckInvestments) })
	g.Go(func() error { return s.loop(ctx, s.paymentSweepEvery, s.CheckPayments) })

	return g.Wait()
}

// loop sweeps once up front, then on every tick; a restarted process catches
// up immediately instead of waiting out a full interval.
func (s *SchedulerService) loop(ctx context.Context, every time.Duration, sweep func(context.Context, time.Time) error) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if err := sweep(ctx, time.Now().UTC()); err != nil {
			logger.Error("scheduler sweep failed", err, nil)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
