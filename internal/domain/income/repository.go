package income

import (
	"context"
	"time"
)

// Repository defines the interface for income data access
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Income, error)
	// ListForPeriod returns the user's incomes dated within [start, end].
	ListForPeriod(ctx context.Context, userID int64, start, end time.Time) ([]*Income, error)
	// ListYears returns the distinct calendar years of the user's incomes.
	ListYears(ctx context.Context, userID int64) ([]int, error)
}
