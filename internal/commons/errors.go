package commons

import "errors"

// Business-rule errors. Callers translate these into user-facing messages;
// anything not in this list is an infrastructure failure and is wrapped with
// %w instead.
var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrTariffNotFound      = errors.New("no such tariff")
	ErrSameAccount         = errors.New("accounts cannot be the same")
	ErrAccountOwnership    = errors.New("you must be the account owner")
	ErrBankSelfDealing     = errors.New("the bank cannot deal with itself")
	ErrBankInsolvency      = errors.New("the bank is unable to pay this amount")
	ErrInsufficientBalance = errors.New("insufficient funds")
	ErrCreditLimitReached  = errors.New("maximum number of credits reached")
	ErrDuplicateTariff     = errors.New("tariff already in use")
	ErrPaymentLocked       = errors.New("cannot modify this payment")
	ErrSenderNotAssigned   = errors.New("payment has no sender assigned")
	ErrInvalidPIN          = errors.New("invalid transaction pin")
)

// IsBusinessError reports whether err belongs to the recoverable taxonomy
// above, as opposed to a storage or transport failure.
func IsBusinessError(err error) bool {
	for _, known := range []error{
		ErrRecordNotFound,
		ErrTariffNotFound,
		ErrSameAccount,
		ErrAccountOwnership,
		ErrBankSelfDealing,
		ErrBankInsolvency,
		ErrInsufficientBalance,
		ErrCreditLimitReached,
		ErrDuplicateTariff,
		ErrPaymentLocked,
		ErrSenderNotAssigned,
		ErrInvalidPIN,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
