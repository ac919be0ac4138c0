package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"financeiro/internal/domain/category"
)

// Service contains the business logic for expense recording, installment
// generation and installment payment.
type Service struct {
	repo       Repository
	categories category.Repository

	// now is swapped in tests to pin the payment date.
	now func() time.Time
}

func NewService(repo Repository, categories category.Repository) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}
}

// AddExpense records a despesa. Credit purchases get their installment
// schedule generated eagerly: installment i falls due i calendar months
// after the purchase date, so the first charge lands in the month after
// the purchase, never in the purchase month itself.
func (s *Service) AddExpense(ctx context.Context, params CreateParams) (*Expense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.categories.GetOrCreate(ctx, params.UserID, params.Category, category.TypeDespesa)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	if params.PaymentType != PaymentCredito {
		exp, err := s.repo.Create(ctx, CreateRecordParams{
			UserID:          params.UserID,
			Date:            TruncateToDay(params.Date),
			Value:           params.Value,
			Category:        cat.Name,
			PaymentType:     params.PaymentType,
			TransactionType: TransactionAVista,
			Description:     params.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create expense: %w", err)
		}
		return exp, nil
	}

	return s.addCreditExpense(ctx, params, cat.Name)
}

func (s *Service) addCreditExpense(ctx context.Context, params CreateParams, categoryName string) (*Expense, error) {
	count := params.InstallmentCount
	if count == 0 {
		count = 1
	}
	installmentValue := params.InstallmentValue
	if installmentValue.IsZero() {
		installmentValue = params.Value
	}
	if count < 1 || !installmentValue.IsPositive() {
		return nil, ErrInvalidInput
	}

	transactionType := TransactionAVista
	suffix := "Compra à vista no crédito"
	if count > 1 {
		transactionType = TransactionParcelado
		suffix = fmt.Sprintf("Compra parcelada em %dx no crédito", count)
	}
	description := suffix
	if params.Description != "" {
		description = params.Description + " - " + suffix
	}

	purchaseDate := TruncateToDay(params.Date)

	exp, err := s.repo.Create(ctx, CreateRecordParams{
		UserID:          params.UserID,
		Date:            purchaseDate,
		Value:           params.Value,
		Category:        categoryName,
		PaymentType:     PaymentCredito,
		TransactionType: transactionType,
		Description:     description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	installments, err := s.repo.CreateInstallments(ctx, exp.ID, BuildInstallments(purchaseDate, count, installmentValue))
	if err != nil {
		return nil, fmt.Errorf("failed to create installments: %w", err)
	}
	exp.Installments = installments

	return exp, nil
}

// BuildInstallments produces the schedule for a credit purchase: count
// parcelas of the given value, all PENDENTE, due on successive months.
func BuildInstallments(purchaseDate time.Time, count int, value decimal.Decimal) []CreateInstallmentParams {
	installments := make([]CreateInstallmentParams, 0, count)
	for i := 1; i <= count; i++ {
		installments = append(installments, CreateInstallmentParams{
			Number:  i,
			Value:   value,
			DueDate: AddMonths(purchaseDate, i),
			Status:  StatusPendente,
		})
	}
	return installments
}

// GetInstallmentPlan returns a credit purchase with its installments and the
// total still pending, after verifying ownership.
func (s *Service) GetInstallmentPlan(ctx context.Context, expenseID, userID int64) (*InstallmentPlan, error) {
	if expenseID <= 0 {
		return nil, ErrInvalidInput
	}

	exp, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if exp == nil {
		return nil, ErrExpenseNotFound
	}
	if exp.UserID != userID {
		return nil, ErrForbidden
	}
	if len(exp.Installments) == 0 {
		return nil, ErrNoInstallments
	}

	pending := decimal.Zero
	for _, inst := range exp.Installments {
		if inst.Status == StatusPendente {
			pending = pending.Add(inst.Value)
		}
	}

	return &InstallmentPlan{
		ExpenseID:     exp.ID,
		Category:      exp.Category,
		PaymentType:   exp.PaymentType,
		Date:          exp.Date,
		PurchaseTotal: exp.Value.Round(2),
		PendingTotal:  pending.Round(2),
		Installments:  exp.Installments,
	}, nil
}

// PayInstallment marks a parcela as paid with today's date. Paying inside
// the due month yields PAGO; paying in any other month yields
// PAGOANTECIPADO and the amount is attributed to the month actually paid.
// The underlying update only succeeds while the parcela is still PENDENTE,
// so a concurrent double pay leaves exactly one winner.
func (s *Service) PayInstallment(ctx context.Context, installmentID, userID int64) (*PaymentReceipt, error) {
	if installmentID <= 0 {
		return nil, ErrInvalidInput
	}

	inst, err := s.repo.GetInstallment(ctx, installmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	if inst == nil {
		return nil, ErrInstallmentNotFound
	}

	exp, err := s.repo.GetByID(ctx, inst.ExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owning expense: %w", err)
	}
	if exp == nil {
		return nil, ErrExpenseNotFound
	}
	if exp.UserID != userID {
		return nil, ErrForbidden
	}

	if inst.Status != StatusPendente {
		return nil, ErrAlreadyPaid
	}

	today := TruncateToDay(s.now())
	status := StatusPagoAntecipado
	if sameMonth(today, inst.DueDate) {
		status = StatusPago
	}

	updated, err := s.repo.MarkInstallmentPaid(ctx, inst.ID, status, today)
	if err != nil {
		return nil, err
	}

	return &PaymentReceipt{
		Installment:  *updated,
		Category:     exp.Category,
		ExpenseValue: exp.Value,
		Description:  exp.Description,
	}, nil
}

// ListOverdue reports pending installments past their due date.
func (s *Service) ListOverdue(ctx context.Context, userID int64) ([]*OverdueInstallment, error) {
	return s.repo.ListOverdue(ctx, userID, TruncateToDay(s.now()))
}
