package user

import (
	"errors"
	"time"
)

// Account statuses. A new account starts pending and is only allowed to log
// in after the confirmation link in the e-mail is accepted.
const (
	StatusVerificacaoPendente = "VERIFICACAOPENDENTE"
	StatusLiberado            = "LIBERADO"
	StatusRecusado            = "RECUSADO"
)

// Domain errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotActive   = errors.New("account not released for login")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Status       string
}

// RegisterParams is the input for account registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

func (p RegisterParams) Validate() error {
	if p.Name == "" || p.Email == "" || p.Password == "" {
		return ErrInvalidInput
	}
	return nil
}
