package category

import "context"

// Repository defines the interface for category data access
type Repository interface {
	// GetOrCreate returns the user's category with the given name, creating
	// it with the provided type when absent.
	GetOrCreate(ctx context.Context, userID int64, name, categoryType string) (*Category, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Category, error)
}
