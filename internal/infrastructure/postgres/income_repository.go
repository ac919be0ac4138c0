package postgres

import (
	"context"
	"fmt"
	"time"

	"financeiro/internal/domain/income"
)

type IncomeRepository struct {
	db *DB
}

func NewIncomeRepository(db *DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

func (r *IncomeRepository) Create(ctx context.Context, params income.CreateParams) (*income.Income, error) {
	query := `
		INSERT INTO receitas (user_id, date, value, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, date, value, category, created_at
	`

	var inc income.Income
	err := r.db.QueryRowContext(ctx, query, params.UserID, params.Date, params.Value, params.Category).Scan(
		&inc.ID, &inc.UserID, &inc.Date, &inc.Value, &inc.Category, &inc.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}

	return &inc, nil
}

func (r *IncomeRepository) ListForPeriod(ctx context.Context, userID int64, start, end time.Time) ([]*income.Income, error) {
	query := `
		SELECT id, user_id, date, value, category, created_at
		FROM receitas
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []*income.Income
	for rows.Next() {
		var inc income.Income
		if err := rows.Scan(&inc.ID, &inc.UserID, &inc.Date, &inc.Value, &inc.Category, &inc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, &inc)
	}

	return incomes, rows.Err()
}

func (r *IncomeRepository) ListYears(ctx context.Context, userID int64) ([]int, error) {
	query := `
		SELECT DISTINCT EXTRACT(YEAR FROM date)::int AS year
		FROM receitas
		WHERE user_id = $1
		ORDER BY year
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income years: %w", err)
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
