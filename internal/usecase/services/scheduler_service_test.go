package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

func newScheduler(f *fixture, notifier *recordingNotifier) *SchedulerService {
	return NewSchedulerService(
		f.store.Credits(),
		f.store.Investments(),
		f.store.Payments(),
		f.store.Accounts(),
		notifier,
		72*time.Hour,
		time.Hour, time.Hour, time.Hour,
	)
}

func waitingPayments(t *testing.T, f *fixture, accountID uuid.UUID, transactType domain.TransactType) []domain.Payment {
	t.Helper()
	payments, err := f.store.Payments().ListByAccount(context.Background(), accountID)
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	var waiting []domain.Payment
	for _, payment := range payments {
		if payment.Status == domain.PaymentStatusWaiting && payment.Type == transactType {
			waiting = append(waiting, payment)
		}
	}
	return waiting
}

func TestCheckCreditsEmitsOneInstallment(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	base := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	f.store.SetClock(func() time.Time { return base })

	creditService := NewCreditService(f.store.Credits(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs(), 3)
	opened, err := creditService.OpenCredit(context.Background(), openCreditRequest(f, 10000, 12))
	if err != nil {
		t.Fatalf("open credit: %v", err)
	}

	scheduler := newScheduler(f, &recordingNotifier{})
	ctx := context.Background()

	// Not due yet: nothing on the anchor's opening month.
	if err := scheduler.CheckCredits(ctx, base); err != nil {
		t.Fatalf("credit sweep: %v", err)
	}
	if got := waitingPayments(t, f, f.checking.ID, domain.TransactTypeCredit); len(got) != 0 {
		t.Fatalf("expected no installments before the due day, got %d", len(got))
	}

	dueDay := time.Date(2024, time.April, 15, 9, 30, 0, 0, time.UTC)
	if err := scheduler.CheckCredits(ctx, dueDay); err != nil {
		t.Fatalf("credit sweep: %v", err)
	}

	installments := waitingPayments(t, f, f.checking.ID, domain.TransactTypeCredit)
	if len(installments) != 1 {
		t.Fatalf("expected one installment, got %d", len(installments))
	}
	installment := installments[0]
	if !installment.Amount.Equal(opened.Data.MonthlyPayment) {
		t.Errorf("installment amount = %s, want %s", installment.Amount, opened.Data.MonthlyPayment)
	}
	if installment.SenderID == nil || *installment.SenderID != f.checking.ID {
		t.Error("installment must charge the credit's payment account")
	}
	if installment.RecipientID != f.bankAccount.ID {
		t.Error("installment must flow to the bank account")
	}
	if installment.Callback == nil || installment.Callback.CreditID == nil {
		t.Fatal("installment must reference its credit")
	}

	// Re-running the sweep on the same day must not double-bill.
	if err := scheduler.CheckCredits(ctx, dueDay); err != nil {
		t.Fatalf("credit sweep: %v", err)
	}
	if got := waitingPayments(t, f, f.checking.ID, domain.TransactTypeCredit); len(got) != 1 {
		t.Fatalf("expected the sweep to stay at one installment, got %d", len(got))
	}
}

func TestCheckInvestmentsEmitsOneRepayment(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	base := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	f.store.SetClock(func() time.Time { return base })

	investService := NewInvestmentService(f.store.Investments(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs())
	opened, err := investService.OpenInvestment(context.Background(), openInvestmentRequest(f, 1000, 1))
	if err != nil {
		t.Fatalf("open investment: %v", err)
	}

	scheduler := newScheduler(f, &recordingNotifier{})
	ctx := context.Background()

	// The term has not elapsed yet.
	if err := scheduler.CheckInvestments(ctx, base.AddDate(0, 0, 200)); err != nil {
		t.Fatalf("investment sweep: %v", err)
	}
	if got := waitingPayments(t, f, f.savings.ID, domain.TransactTypeInvestment); len(got) != 0 {
		t.Fatalf("expected no repayment before maturity, got %d", len(got))
	}

	matured := base.AddDate(0, 0, 366)
	if err := scheduler.CheckInvestments(ctx, matured); err != nil {
		t.Fatalf("investment sweep: %v", err)
	}

	repayments := waitingPayments(t, f, f.savings.ID, domain.TransactTypeInvestment)
	if len(repayments) != 1 {
		t.Fatalf("expected one repayment, got %d", len(repayments))
	}
	repayment := repayments[0]
	if !repayment.Amount.Equal(opened.Data.RemainingAmount) {
		t.Errorf("repayment amount = %s, want %s", repayment.Amount, opened.Data.RemainingAmount)
	}
	if repayment.SenderID == nil || *repayment.SenderID != f.bankAccount.ID {
		t.Error("repayment must leave the bank account")
	}
	if repayment.Callback == nil || repayment.Callback.InvestmentID == nil {
		t.Fatal("repayment must reference its investment")
	}

	if err := scheduler.CheckInvestments(ctx, matured); err != nil {
		t.Fatalf("investment sweep: %v", err)
	}
	if got := waitingPayments(t, f, f.savings.ID, domain.TransactTypeInvestment); len(got) != 1 {
		t.Fatalf("expected the sweep to stay at one repayment, got %d", len(got))
	}
}

func TestCheckPaymentsCancelsExpired(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	notifier := &recordingNotifier{}
	scheduler := newScheduler(f, notifier)
	ctx := context.Background()

	deadline := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	sender := f.checking.ID
	expired, err := f.store.Payments().Create(ctx, domain.Payment{
		ID:          uuid.New(),
		SenderID:    &sender,
		RecipientID: f.savings.ID,
		Amount:      decimal.NewFromInt(100),
		Status:      domain.PaymentStatusWaiting,
		PayDate:     deadline,
		Type:        domain.TransactTypePurchase,
		Callback:    &domain.PaymentCallback{URL: "https://merchant.example/hook"},
	})
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	if err := scheduler.CheckPayments(ctx, deadline.Add(time.Minute)); err != nil {
		t.Fatalf("payment sweep: %v", err)
	}

	cancelled, err := f.store.Payments().GetByID(ctx, expired.ID)
	if err != nil {
		t.Fatalf("fetch payment: %v", err)
	}
	if cancelled.Status != domain.PaymentStatusCancelled {
		t.Fatalf("status = %s, want Cancelled", cancelled.Status)
	}
	if notifier.count() != 1 {
		t.Fatalf("expected one callback dispatch, got %d", notifier.count())
	}

	// A cancelled payment stays cancelled; no second notification.
	if err := scheduler.CheckPayments(ctx, deadline.Add(time.Hour)); err != nil {
		t.Fatalf("payment sweep: %v", err)
	}
	if notifier.count() != 1 {
		t.Fatalf("expected no further dispatches, got %d", notifier.count())
	}
}
