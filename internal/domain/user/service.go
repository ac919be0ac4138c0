package user

import (
	"context"
	"fmt"

	"financeiro/internal/shared/auth"
)

// Actions accepted by ValidateEmail, taken from the confirmation link.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// Service contains the business logic for registration and authentication.
type Service struct {
	repo   Repository
	mailer Mailer
	tokens TokenIssuer
}

func NewService(repo Repository, mailer Mailer, tokens TokenIssuer) *Service {
	return &Service{repo: repo, mailer: mailer, tokens: tokens}
}

// Register creates a pending account and sends the confirmation e-mail.
// The account cannot log in until the e-mail link is accepted.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, CreateUserParams{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Status:       StatusVerificacaoPendente,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateConfirmation(u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	if err := s.mailer.SendConfirmation(ctx, u.Email, u.Name, u.ID, token); err != nil {
		return nil, fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return u, nil
}

// Login authenticates a released account and returns a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidInput
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil {
		return nil, "", ErrUserNotFound
	}

	if u.Status != StatusLiberado {
		return nil, "", ErrAccountNotActive
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSession(u.ID, u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return u, token, nil
}

// ValidateEmail resolves the confirmation link: accept releases the account,
// reject refuses it. The transition is final; a released or refused account
// is never moved back to pending.
func (s *Service) ValidateEmail(ctx context.Context, userID int64, token, action string) (*User, error) {
	if userID <= 0 || token == "" {
		return nil, ErrInvalidInput
	}

	var status string
	switch action {
	case ActionAccept:
		status = StatusLiberado
	case ActionReject:
		status = StatusRecusado
	default:
		return nil, ErrInvalidInput
	}

	if err := s.tokens.ValidateConfirmation(token); err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	updated, err := s.repo.UpdateStatus(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	return updated, nil
}
