package income

import (
	"context"
	"fmt"
	"time"

	"financeiro/internal/domain/category"
)

// Service contains the business logic for income recording
type Service struct {
	repo       Repository
	categories category.Repository
}

func NewService(repo Repository, categories category.Repository) *Service {
	return &Service{repo: repo, categories: categories}
}

// AddIncome records a receita under the given category, creating the
// category on first use.
func (s *Service) AddIncome(ctx context.Context, params CreateParams) (*Income, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.categories.GetOrCreate(ctx, params.UserID, params.Category, category.TypeReceita)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	params.Category = cat.Name
	params.Date = truncateToDay(params.Date)

	inc, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	return inc, nil
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
