package income

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrIncomeNotFound = errors.New("income not found")
	ErrInvalidInput   = errors.New("invalid input")
)

// Income is a recorded receita
type Income struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Date      time.Time       `json:"date"`
	Value     decimal.Decimal `json:"value"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateParams is the input for recording a new income
type CreateParams struct {
	UserID   int64
	Date     time.Time
	Value    decimal.Decimal
	Category string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return ErrInvalidInput
	}
	if p.Category == "" {
		return ErrInvalidInput
	}
	if p.Date.IsZero() {
		return ErrInvalidInput
	}
	if !p.Value.IsPositive() {
		return ErrInvalidInput
	}
	return nil
}
