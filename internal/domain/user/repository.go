package user

import "context"

// Repository defines the interface for user data access.
// Lookup methods return (nil, nil) when the user does not exist.
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*User, error)
}
