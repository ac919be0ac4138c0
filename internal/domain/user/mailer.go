package user

import "context"

// Mailer sends the account-confirmation e-mail with accept/reject links.
// Implemented by the SMTP client in the infrastructure layer.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, name string, userID int64, token string) error
}

// TokenIssuer mints and checks the tokens used by registration and login.
// Implemented by the shared JWT component.
type TokenIssuer interface {
	GenerateSession(userID int64, email string) (string, error)
	GenerateConfirmation(email string) (string, error)
	ValidateConfirmation(token string) error
}
