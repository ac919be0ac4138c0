package expense

import (
	"context"
	"time"
)

// Repository defines the interface for expense and installment data access.
// Lookup methods return (nil, nil) when the record does not exist.
type Repository interface {
	Create(ctx context.Context, params CreateRecordParams) (*Expense, error)
	// GetByID returns the expense with its installments attached.
	GetByID(ctx context.Context, id int64) (*Expense, error)
	// ListForPeriod returns the user's expenses relevant to [start, end]:
	// purchased in the period, or owning an installment due in the period,
	// or owning an early-paid installment paid in the period. Installments
	// are attached.
	ListForPeriod(ctx context.Context, userID int64, start, end time.Time) ([]*Expense, error)
	// ListYears returns the distinct calendar years of the user's expenses.
	ListYears(ctx context.Context, userID int64) ([]int, error)

	CreateInstallments(ctx context.Context, expenseID int64, params []CreateInstallmentParams) ([]*Installment, error)
	GetInstallment(ctx context.Context, id int64) (*Installment, error)
	// MarkInstallmentPaid transitions a parcela out of PENDENTE. The update
	// is conditional on the current status still being PENDENTE so that of
	// two concurrent payment attempts exactly one succeeds; the loser gets
	// ErrAlreadyPaid.
	MarkInstallmentPaid(ctx context.Context, id int64, status string, paymentDate time.Time) (*Installment, error)
	// ListOverdue returns pending installments past asOf for one user, or
	// for all users when userID is zero.
	ListOverdue(ctx context.Context, userID int64, asOf time.Time) ([]*OverdueInstallment, error)
}
