package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"financeiro/internal/domain/expense"
)

type ExpenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, params expense.CreateRecordParams) (*expense.Expense, error) {
	query := `
		INSERT INTO despesas (user_id, date, value, category, payment_type, transaction_type, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, date, value, category, payment_type, transaction_type, description, created_at
	`

	var e expense.Expense
	err := r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.Date, params.Value, params.Category,
		params.PaymentType, params.TransactionType, params.Description,
	).Scan(
		&e.ID, &e.UserID, &e.Date, &e.Value, &e.Category,
		&e.PaymentType, &e.TransactionType, &e.Description, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return &e, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*expense.Expense, error) {
	query := `
		SELECT id, user_id, date, value, category, payment_type, transaction_type, description, created_at
		FROM despesas
		WHERE id = $1
	`

	var e expense.Expense
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.UserID, &e.Date, &e.Value, &e.Category,
		&e.PaymentType, &e.TransactionType, &e.Description, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	installments, err := r.installmentsFor(ctx, []int64{e.ID})
	if err != nil {
		return nil, err
	}
	e.Installments = installments[e.ID]

	return &e, nil
}

func (r *ExpenseRepository) ListForPeriod(ctx context.Context, userID int64, start, end time.Time) ([]*expense.Expense, error) {
	// An expense is relevant to the period if it was purchased in it, or if
	// any of its parcelas falls due in it, or if an early-paid parcela was
	// actually paid in it.
	query := `
		SELECT d.id, d.user_id, d.date, d.value, d.category, d.payment_type, d.transaction_type, d.description, d.created_at
		FROM despesas d
		WHERE d.user_id = $1
		  AND (
		        d.date BETWEEN $2 AND $3
		     OR EXISTS (
		            SELECT 1 FROM parcelas p
		            WHERE p.despesa_id = d.id
		              AND (p.due_date BETWEEN $2 AND $3
		               OR (p.status = 'PAGOANTECIPADO' AND p.payment_date BETWEEN $2 AND $3))
		        )
		  )
		ORDER BY d.date, d.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense
	var ids []int64
	for rows.Next() {
		var e expense.Expense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Date, &e.Value, &e.Category,
			&e.PaymentType, &e.TransactionType, &e.Description, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	installments, err := r.installmentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Installments = installments[e.ID]
	}

	return expenses, nil
}

func (r *ExpenseRepository) installmentsFor(ctx context.Context, expenseIDs []int64) (map[int64][]*expense.Installment, error) {
	if len(expenseIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, despesa_id, parcela_number, value, due_date, payment_date, status
		FROM parcelas
		WHERE despesa_id = ANY($1)
		ORDER BY despesa_id, parcela_number
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(expenseIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	byExpense := make(map[int64][]*expense.Installment)
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		byExpense[inst.ExpenseID] = append(byExpense[inst.ExpenseID], inst)
	}

	return byExpense, rows.Err()
}

func (r *ExpenseRepository) ListYears(ctx context.Context, userID int64) ([]int, error) {
	// A year counts if a purchase, a due date or an early payment lands in it.
	query := `
		SELECT DISTINCT year FROM (
			SELECT EXTRACT(YEAR FROM date)::int AS year FROM despesas WHERE user_id = $1
			UNION
			SELECT EXTRACT(YEAR FROM p.due_date)::int
			FROM parcelas p JOIN despesas d ON d.id = p.despesa_id
			WHERE d.user_id = $1
			UNION
			SELECT EXTRACT(YEAR FROM p.payment_date)::int
			FROM parcelas p JOIN despesas d ON d.id = p.despesa_id
			WHERE d.user_id = $1 AND p.status = 'PAGOANTECIPADO' AND p.payment_date IS NOT NULL
		) years
		ORDER BY year
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}

	return years, rows.Err()
}

func (r *ExpenseRepository) CreateInstallments(ctx context.Context, expenseID int64, params []expense.CreateInstallmentParams) ([]*expense.Installment, error) {
	if len(params) == 0 {
		return nil, nil
	}

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`
		INSERT INTO parcelas (despesa_id, parcela_number, value, due_date, status)
		VALUES `)
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, expenseID, p.Number, p.Value, p.DueDate, p.Status)
	}
	sb.WriteString(`
		RETURNING id, despesa_id, parcela_number, value, due_date, payment_date, status`)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create installments: %w", err)
	}
	defer rows.Close()

	var installments []*expense.Installment
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}

	return installments, rows.Err()
}

func (r *ExpenseRepository) GetInstallment(ctx context.Context, id int64) (*expense.Installment, error) {
	query := `
		SELECT id, despesa_id, parcela_number, value, due_date, payment_date, status
		FROM parcelas
		WHERE id = $1
	`

	var inst expense.Installment
	var paymentDate sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inst.ID, &inst.ExpenseID, &inst.Number, &inst.Value, &inst.DueDate, &paymentDate, &inst.Status,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	if paymentDate.Valid {
		inst.PaymentDate = &paymentDate.Time
	}

	return &inst, nil
}

func (r *ExpenseRepository) MarkInstallmentPaid(ctx context.Context, id int64, status string, paymentDate time.Time) (*expense.Installment, error) {
	// The status guard makes the update a compare-and-swap: of two
	// concurrent payments only one matches PENDENTE.
	query := `
		UPDATE parcelas
		SET status = $1, payment_date = $2
		WHERE id = $3 AND status = 'PENDENTE'
		RETURNING id, despesa_id, parcela_number, value, due_date, payment_date, status
	`

	var inst expense.Installment
	var paid sql.NullTime
	err := r.db.QueryRowContext(ctx, query, status, paymentDate, id).Scan(
		&inst.ID, &inst.ExpenseID, &inst.Number, &inst.Value, &inst.DueDate, &paid, &inst.Status,
	)
	if err == sql.ErrNoRows {
		existing, lookupErr := r.GetInstallment(ctx, id)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing == nil {
			return nil, expense.ErrInstallmentNotFound
		}
		return nil, expense.ErrAlreadyPaid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark installment paid: %w", err)
	}
	if paid.Valid {
		inst.PaymentDate = &paid.Time
	}

	return &inst, nil
}

func (r *ExpenseRepository) ListOverdue(ctx context.Context, userID int64, asOf time.Time) ([]*expense.OverdueInstallment, error) {
	query := `
		SELECT p.id, p.despesa_id, p.parcela_number, p.value, p.due_date, p.payment_date, p.status,
		       d.user_id, d.category, d.description
		FROM parcelas p
		JOIN despesas d ON d.id = p.despesa_id
		WHERE p.status = 'PENDENTE'
		  AND p.due_date < $1
		  AND ($2 = 0 OR d.user_id = $2)
		ORDER BY p.due_date, p.id
	`

	rows, err := r.db.QueryContext(ctx, query, asOf, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue installments: %w", err)
	}
	defer rows.Close()

	var overdue []*expense.OverdueInstallment
	for rows.Next() {
		var o expense.OverdueInstallment
		var paymentDate sql.NullTime
		if err := rows.Scan(
			&o.ID, &o.ExpenseID, &o.Number, &o.Value, &o.DueDate, &paymentDate, &o.Status,
			&o.UserID, &o.Category, &o.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan overdue installment: %w", err)
		}
		if paymentDate.Valid {
			o.PaymentDate = &paymentDate.Time
		}
		overdue = append(overdue, &o)
	}

	return overdue, rows.Err()
}

func scanInstallment(rows *sql.Rows) (*expense.Installment, error) {
	var inst expense.Installment
	var paymentDate sql.NullTime
	if err := rows.Scan(
		&inst.ID, &inst.ExpenseID, &inst.Number, &inst.Value, &inst.DueDate, &paymentDate, &inst.Status,
	); err != nil {
		return nil, fmt.Errorf("failed to scan installment: %w", err)
	}
	if paymentDate.Valid {
		inst.PaymentDate = &paymentDate.Time
	}
	return &inst, nil
}
