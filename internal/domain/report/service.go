package report

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"financeiro/internal/domain/expense"
	"financeiro/internal/domain/income"
)

// IncomeSource is the slice of income storage the aggregator reads from.
// Satisfied by income.Repository.
type IncomeSource interface {
	ListForPeriod(ctx context.Context, userID int64, start, end time.Time) ([]*income.Income, error)
	ListYears(ctx context.Context, userID int64) ([]int, error)
}

// ExpenseSource is the slice of expense storage the aggregator reads from.
// Satisfied by expense.Repository.
type ExpenseSource interface {
	ListForPeriod(ctx context.Context, userID int64, start, end time.Time) ([]*expense.Expense, error)
	ListYears(ctx context.Context, userID int64) ([]int, error)
}

// Service aggregates incomes and expenses into monthly and yearly reports.
//
// Attribution rules: an income counts in the month of its date. A non-credit
// expense counts in the month of its date. A credit installment counts in the
// month of its due date, except a PAGOANTECIPADO parcela which counts in the
// month it was actually paid. The purchase value of a credit expense never
// counts as spending directly; only its parcelas do.
type Service struct {
	incomes  IncomeSource
	expenses ExpenseSource
}

func NewService(incomes IncomeSource, expenses ExpenseSource) *Service {
	return &Service{incomes: incomes, expenses: expenses}
}

func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

func inMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

// fullyPaid reports whether every parcela of a purchase has been settled.
// A purchase without parcelas is settled by definition.
func fullyPaid(installments []*expense.Installment) bool {
	for _, inst := range installments {
		if inst.Status == expense.StatusPendente {
			return false
		}
	}
	return true
}

// attributionDate is the date an installment's value counts against
func attributionDate(inst *expense.Installment) time.Time {
	if inst.Status == expense.StatusPagoAntecipado && inst.PaymentDate != nil {
		return *inst.PaymentDate
	}
	return inst.DueDate
}

// SummarizeMonth builds the detailed report for one calendar month
func (s *Service) SummarizeMonth(ctx context.Context, userID int64, year int, month time.Month) (*MonthlyReport, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, ErrInvalidPeriod
	}

	start, end := monthBounds(year, month)

	incomes, err := s.incomes.ListForPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	expenses, err := s.expenses.ListForPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return buildMonthlyReport(incomes, expenses, year, month), nil
}

func buildMonthlyReport(incomes []*income.Income, expenses []*expense.Expense, year int, month time.Month) *MonthlyReport {
	r := &MonthlyReport{
		Year:           year,
		Month:          month,
		Receitas:       []*income.Income{},
		Despesas:       []ExpenseEntry{},
		ComprasCredito: []CreditPurchase{},
	}

	for _, inc := range incomes {
		if !inMonth(inc.Date, year, month) {
			continue
		}
		r.Receitas = append(r.Receitas, inc)
		r.TotalReceitas = r.TotalReceitas.Add(inc.Value)
	}

	for _, exp := range expenses {
		if exp.PaymentType != expense.PaymentCredito {
			if !inMonth(exp.Date, year, month) {
				continue
			}
			r.TotalDespesas = r.TotalDespesas.Add(exp.Value)
			switch exp.PaymentType {
			case expense.PaymentPix:
				r.TotalPix = r.TotalPix.Add(exp.Value)
			case expense.PaymentDebito:
				r.TotalDebito = r.TotalDebito.Add(exp.Value)
			case expense.PaymentDinheiro:
				r.TotalDinheiro = r.TotalDinheiro.Add(exp.Value)
			}
			r.Despesas = append(r.Despesas, entryFor(exp, exp.Date, exp.Value, nil))
			continue
		}

		if inMonth(exp.Date, year, month) {
			r.Credit.Used = r.Credit.Used.Add(exp.Value)
			r.ComprasCredito = append(r.ComprasCredito, CreditPurchase{
				ExpenseID:        exp.ID,
				Value:            exp.Value.Round(2),
				InstallmentCount: len(exp.Installments),
				FullyPaid:        fullyPaid(exp.Installments),
			})
		}

		// A credit row without parcelas behaves like a plain purchase.
		if len(exp.Installments) == 0 {
			if inMonth(exp.Date, year, month) {
				r.TotalDespesas = r.TotalDespesas.Add(exp.Value)
				r.Despesas = append(r.Despesas, entryFor(exp, exp.Date, exp.Value, nil))
			}
			continue
		}

		for _, inst := range exp.Installments {
			when := attributionDate(inst)
			if inMonth(when, year, month) {
				r.TotalDespesas = r.TotalDespesas.Add(inst.Value)
				r.Despesas = append(r.Despesas, entryFor(exp, when, inst.Value, inst))
			}

			switch inst.Status {
			case expense.StatusPago:
				if inMonth(inst.DueDate, year, month) {
					r.Credit.Paid = r.Credit.Paid.Add(inst.Value)
				}
			case expense.StatusPagoAntecipado:
				if inst.PaymentDate != nil && inMonth(*inst.PaymentDate, year, month) {
					r.Credit.Paid = r.Credit.Paid.Add(inst.Value)
				}
			case expense.StatusPendente:
				if inMonth(inst.DueDate, year, month) {
					r.Credit.Pending = r.Credit.Pending.Add(inst.Value)
				}
			}
		}
	}

	sort.Slice(r.Despesas, func(i, j int) bool {
		return r.Despesas[i].Date.Before(r.Despesas[j].Date)
	})

	r.TotalReceitas = r.TotalReceitas.Round(2)
	r.TotalDespesas = r.TotalDespesas.Round(2)
	r.Saldo = r.TotalReceitas.Sub(r.TotalDespesas)
	r.Credit.Used = r.Credit.Used.Round(2)
	r.Credit.Paid = r.Credit.Paid.Round(2)
	r.Credit.Pending = r.Credit.Pending.Round(2)
	r.TotalPix = r.TotalPix.Round(2)
	r.TotalDebito = r.TotalDebito.Round(2)
	r.TotalDinheiro = r.TotalDinheiro.Round(2)

	return r
}

func entryFor(exp *expense.Expense, when time.Time, value decimal.Decimal, inst *expense.Installment) ExpenseEntry {
	e := ExpenseEntry{
		ExpenseID:       exp.ID,
		Date:            when,
		Value:           value,
		Category:        exp.Category,
		PaymentType:     exp.PaymentType,
		TransactionType: exp.TransactionType,
		Description:     exp.Description,
	}
	if inst != nil {
		e.InstallmentNumber = inst.Number
		e.InstallmentStatus = inst.Status
	}
	return e
}

// SummarizeYear returns the year's months as a sequence. The data is fetched
// once up front; each iteration of the sequence re-derives the per-month
// figures, so the sequence can be ranged over more than once. Months with no
// activity are skipped.
func (s *Service) SummarizeYear(ctx context.Context, userID int64, year int) (iter.Seq[MonthSummary], error) {
	if year < 1 {
		return nil, ErrInvalidPeriod
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)

	incomes, err := s.incomes.ListForPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	expenses, err := s.expenses.ListForPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return func(yield func(MonthSummary) bool) {
		for month := time.January; month <= time.December; month++ {
			r := buildMonthlyReport(incomes, expenses, year, month)
			summary := MonthSummary{
				Month:         month,
				TotalReceitas: r.TotalReceitas,
				TotalDespesas: r.TotalDespesas,
				Saldo:         r.Saldo,
				CreditoUsado:  r.Credit.Used,
				CreditoPago:   r.Credit.Paid,
				CreditoAPagar: r.Credit.Pending,
			}
			if summary.isZero() {
				continue
			}
			if !yield(summary) {
				return
			}
		}
	}, nil
}

// Years returns every calendar year in which the user has any activity,
// merged across incomes and expenses, ascending.
func (s *Service) Years(ctx context.Context, userID int64) ([]int, error) {
	incomeYears, err := s.incomes.ListYears(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income years: %w", err)
	}
	expenseYears, err := s.expenses.ListYears(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense years: %w", err)
	}

	seen := make(map[int]struct{}, len(incomeYears)+len(expenseYears))
	years := make([]int, 0, len(incomeYears)+len(expenseYears))
	for _, y := range incomeYears {
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}
	for _, y := range expenseYears {
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}
	slices.Sort(years)
	return years, nil
}
