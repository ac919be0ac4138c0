package postgres

import (
	"context"
	"fmt"

	"financeiro/internal/domain/category"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetOrCreate(ctx context.Context, userID int64, name, categoryType string) (*category.Category, error) {
	// The upsert keeps concurrent first uses of the same category name from
	// racing; DO UPDATE makes RETURNING yield the row either way.
	query := `
		INSERT INTO categories (user_id, name, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, name, type) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, user_id, name, type, created_at
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, userID, name, categoryType).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create category: %w", err)
	}

	return &c, nil
}

func (r *CategoryRepository) ListByUserID(ctx context.Context, userID int64) ([]*category.Category, error) {
	query := `
		SELECT id, user_id, name, type, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY type, name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}
