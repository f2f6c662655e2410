package repo_interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	// CreateInstallment inserts a scheduler-emitted installment payment and
	// advances the credit's billing anchor in the same storage transaction,
	// so a sweep re-run cannot emit the installment twice.
	CreateInstallment(ctx context.Context, payment domain.Payment, historyID uuid.UUID, now time.Time) (domain.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Payment, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Payment, error)
	SumWaitingByClientAndType(ctx context.Context, clientID uuid.UUID, transactType domain.TransactType) (decimal.Decimal, error)
	// AssignSender sets the payer while the payment is still Waiting; a
	// terminal payment fails with commons.ErrPaymentLocked.
	AssignSender(ctx context.Context, paymentID, senderAccountID uuid.UUID) (domain.Payment, error)
	// ConfirmWithPosting flips Waiting -> Confirmed, records the transact,
	// applies the debit/credit postings and settles any obligation the
	// callback references, all in one storage transaction.
	ConfirmWithPosting(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error)
	HasWaitingForCredit(ctx context.Context, creditID uuid.UUID) (bool, error)
	HasWaitingForInvestment(ctx context.Context, investmentID uuid.UUID) (bool, error)
	// CancelExpired sweeps every Waiting payment past its deadline to
	// Cancelled and returns the cancelled payments.
	CancelExpired(ctx context.Context, now time.Time) ([]domain.Payment, error)
}
