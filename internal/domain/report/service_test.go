package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financeiro/internal/domain/expense"
	"financeiro/internal/domain/income"
)

// MockIncomeSource is a mock implementation of IncomeSource
type MockIncomeSource struct {
	ListForPeriodFunc func(ctx context.Context, userID int64, start, end time.Time) ([]*income.Income, error)
	ListYearsFunc     func(ctx context.Context, userID int64) ([]int, error)
}

func (m *MockIncomeSource) ListForPeriod(ctx context.Context, userID int64, start, end time.Time) ([]*income.Income, error) {
	return m.ListForPeriodFunc(ctx, userID, start, end)
}

func (m *MockIncomeSource) ListYears(ctx context.Context, userID int64) ([]int, error) {
	return m.ListYearsFunc(ctx, userID)
}

// MockExpenseSource is a mock implementation of ExpenseSource
type MockExpenseSource struct {
	ListForPeriodFunc func(ctx context.Context, userID int64, start, end time.Time) ([]*expense.Expense, error)
	ListYearsFunc     func(ctx context.Context, userID int64) ([]int, error)
}

func (m *MockExpenseSource) ListForPeriod(ctx context.Context, userID int64, start, end time.Time) ([]*expense.Expense, error) {
	return m.ListForPeriodFunc(ctx, userID, start, end)
}

func (m *MockExpenseSource) ListYears(ctx context.Context, userID int64) ([]int, error) {
	return m.ListYearsFunc(ctx, userID)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func fixedIncomes(incomes []*income.Income) *MockIncomeSource {
	return &MockIncomeSource{
		ListForPeriodFunc: func(ctx context.Context, userID int64, start, end time.Time) ([]*income.Income, error) {
			return incomes, nil
		},
	}
}

func fixedExpenses(expenses []*expense.Expense) *MockExpenseSource {
	return &MockExpenseSource{
		ListForPeriodFunc: func(ctx context.Context, userID int64, start, end time.Time) ([]*expense.Expense, error) {
			return expenses, nil
		},
	}
}

func TestSummarizeMonth_NonCreditBuckets(t *testing.T) {
	incomes := []*income.Income{
		{ID: 1, UserID: 1, Date: date(2024, time.March, 5), Value: dec(4500), Category: "Salário"},
		{ID: 2, UserID: 1, Date: date(2024, time.March, 20), Value: dec(500), Category: "Freelance"},
	}
	expenses := []*expense.Expense{
		{ID: 1, UserID: 1, Date: date(2024, time.March, 2), Value: dec(200), PaymentType: expense.PaymentPix, Category: "Mercado"},
		{ID: 2, UserID: 1, Date: date(2024, time.March, 10), Value: dec(150), PaymentType: expense.PaymentDebito, Category: "Farmácia"},
		{ID: 3, UserID: 1, Date: date(2024, time.March, 12), Value: dec(50), PaymentType: expense.PaymentDinheiro, Category: "Lanche"},
	}

	service := NewService(fixedIncomes(incomes), fixedExpenses(expenses))

	r, err := service.SummarizeMonth(context.Background(), 1, 2024, time.March)
	require.NoError(t, err)

	assert.True(t, r.TotalReceitas.Equal(dec(5000)), "TotalReceitas = %s", r.TotalReceitas)
	assert.True(t, r.TotalDespesas.Equal(dec(400)), "TotalDespesas = %s", r.TotalDespesas)
	assert.True(t, r.Saldo.Equal(dec(4600)), "Saldo = %s", r.Saldo)
	assert.True(t, r.TotalPix.Equal(dec(200)))
	assert.True(t, r.TotalDebito.Equal(dec(150)))
	assert.True(t, r.TotalDinheiro.Equal(dec(50)))
	assert.Len(t, r.Receitas, 2)
	assert.Len(t, r.Despesas, 3)
}

func TestSummarizeMonth_CreditAttribution(t *testing.T) {
	// A 3x purchase made Jan 15: parcelas due Feb, Mar, Apr.
	paid := date(2024, time.March, 20)
	early := date(2024, time.January, 20)
	purchase := &expense.Expense{
		ID:              1,
		UserID:          1,
		Date:            date(2024, time.January, 15),
		Value:           dec(300),
		PaymentType:     expense.PaymentCredito,
		TransactionType: expense.TransactionParcelado,
		Category:        "Eletrônicos",
		Installments: []*expense.Installment{
			{ID: 1, Number: 1, Value: dec(100), DueDate: date(2024, time.February, 15), PaymentDate: &early, Status: expense.StatusPagoAntecipado},
			{ID: 2, Number: 2, Value: dec(100), DueDate: date(2024, time.March, 15), PaymentDate: &paid, Status: expense.StatusPago},
			{ID: 3, Number: 3, Value: dec(100), DueDate: date(2024, time.April, 15), Status: expense.StatusPendente},
		},
	}

	service := NewService(fixedIncomes(nil), fixedExpenses([]*expense.Expense{purchase}))

	t.Run("purchase month counts usage and the early payment", func(t *testing.T) {
		r, err := service.SummarizeMonth(context.Background(), 1, 2024, time.January)
		require.NoError(t, err)

		assert.True(t, r.Credit.Used.Equal(dec(300)), "Used = %s", r.Credit.Used)
		// Parcela 1 was paid early in January, so it lands here.
		assert.True(t, r.TotalDespesas.Equal(dec(100)), "TotalDespesas = %s", r.TotalDespesas)
		assert.True(t, r.Credit.Paid.Equal(dec(100)), "Paid = %s", r.Credit.Paid)
		assert.True(t, r.Credit.Pending.IsZero())

		require.Len(t, r.ComprasCredito, 1)
		compra := r.ComprasCredito[0]
		assert.Equal(t, int64(1), compra.ExpenseID)
		assert.True(t, compra.Value.Equal(dec(300)))
		assert.Equal(t, 3, compra.InstallmentCount)
		assert.False(t, compra.FullyPaid, "a PENDENTE parcela remains")
	})

	t.Run("early-paid parcela leaves its due month", func(t *testing.T) {
		r, err := service.SummarizeMonth(context.Background(), 1, 2024, time.February)
		require.NoError(t, err)

		assert.True(t, r.TotalDespesas.IsZero(), "TotalDespesas = %s", r.TotalDespesas)
		assert.True(t, r.Credit.Used.IsZero())
		assert.True(t, r.Credit.Paid.IsZero())
		assert.True(t, r.Credit.Pending.IsZero())
	})

	t.Run("parcela paid in its due month", func(t *testing.T) {
		r, err := service.SummarizeMonth(context.Background(), 1, 2024, time.March)
		require.NoError(t, err)

		assert.True(t, r.TotalDespesas.Equal(dec(100)))
		assert.True(t, r.Credit.Paid.Equal(dec(100)))
		assert.True(t, r.Credit.Pending.IsZero())
	})

	t.Run("pending parcela counts in its due month", func(t *testing.T) {
		r, err := service.SummarizeMonth(context.Background(), 1, 2024, time.April)
		require.NoError(t, err)

		assert.True(t, r.TotalDespesas.Equal(dec(100)))
		assert.True(t, r.Credit.Pending.Equal(dec(100)))
		assert.True(t, r.Credit.Paid.IsZero())
	})
}

func TestSummarizeMonth_CreditWithoutInstallments(t *testing.T) {
	purchase := &expense.Expense{
		ID:          1,
		UserID:      1,
		Date:        date(2024, time.May, 10),
		Value:       dec(80),
		PaymentType: expense.PaymentCredito,
		Category:    "Assinatura",
	}

	service := NewService(fixedIncomes(nil), fixedExpenses([]*expense.Expense{purchase}))

	r, err := service.SummarizeMonth(context.Background(), 1, 2024, time.May)
	require.NoError(t, err)

	assert.True(t, r.TotalDespesas.Equal(dec(80)))
	assert.True(t, r.Credit.Used.Equal(dec(80)))
	assert.True(t, r.TotalPix.IsZero())
}

func TestSummarizeMonth_InvalidPeriod(t *testing.T) {
	service := NewService(fixedIncomes(nil), fixedExpenses(nil))

	_, err := service.SummarizeMonth(context.Background(), 1, 2024, time.Month(13))
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = service.SummarizeMonth(context.Background(), 1, 0, time.March)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestSummarizeYear(t *testing.T) {
	incomes := []*income.Income{
		{ID: 1, UserID: 1, Date: date(2024, time.January, 5), Value: dec(1000)},
		{ID: 2, UserID: 1, Date: date(2024, time.June, 5), Value: dec(2000)},
	}
	expenses := []*expense.Expense{
		{ID: 1, UserID: 1, Date: date(2024, time.June, 10), Value: dec(300), PaymentType: expense.PaymentPix},
	}

	service := NewService(fixedIncomes(incomes), fixedExpenses(expenses))

	seq, err := service.SummarizeYear(context.Background(), 1, 2024)
	require.NoError(t, err)

	var months []MonthSummary
	for m := range seq {
		months = append(months, m)
	}

	require.Len(t, months, 2, "empty months must be skipped")
	assert.Equal(t, time.January, months[0].Month)
	assert.True(t, months[0].TotalReceitas.Equal(dec(1000)))
	assert.Equal(t, time.June, months[1].Month)
	assert.True(t, months[1].Saldo.Equal(dec(1700)))

	t.Run("sequence is restartable", func(t *testing.T) {
		count := 0
		for range seq {
			count++
		}
		assert.Equal(t, 2, count)
	})

	t.Run("early break", func(t *testing.T) {
		for range seq {
			break
		}
	})
}

func TestYears(t *testing.T) {
	incomeSrc := &MockIncomeSource{
		ListYearsFunc: func(ctx context.Context, userID int64) ([]int, error) {
			return []int{2023, 2024}, nil
		},
	}
	expenseSrc := &MockExpenseSource{
		ListYearsFunc: func(ctx context.Context, userID int64) ([]int, error) {
			return []int{2022, 2024}, nil
		},
	}

	service := NewService(incomeSrc, expenseSrc)

	years, err := service.Years(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2022, 2023, 2024}, years)
}
