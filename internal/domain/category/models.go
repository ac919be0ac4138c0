package category

import (
	"errors"
	"time"
)

// Category kinds
const (
	TypeDespesa = "DESPESA"
	TypeReceita = "RECEITA"
)

var ErrInvalidInput = errors.New("invalid input")

// Category is a per-user label for financial records. Categories are created
// lazily the first time an expense references them.
type Category struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
