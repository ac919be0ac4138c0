package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"financeiro/internal/shared/auth"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc       func(ctx context.Context, params CreateUserParams) (*User, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*User, error)
	GetByEmailFunc   func(ctx context.Context, email string) (*User, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status string) (*User, error)
}

func (m *MockRepository) Create(ctx context.Context, params CreateUserParams) (*User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int64, status string) (*User, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil, nil
}

// MockMailer records the last confirmation e-mail request
type MockMailer struct {
	SendConfirmationFunc func(ctx context.Context, to, name string, userID int64, token string) error
	Sent                 int
}

func (m *MockMailer) SendConfirmation(ctx context.Context, to, name string, userID int64, token string) error {
	m.Sent++
	if m.SendConfirmationFunc != nil {
		return m.SendConfirmationFunc(ctx, to, name, userID, token)
	}
	return nil
}

// MockTokens is a stub TokenIssuer
type MockTokens struct {
	ValidateErr error
}

func (m *MockTokens) GenerateSession(userID int64, email string) (string, error) {
	return "session-token", nil
}

func (m *MockTokens) GenerateConfirmation(email string) (string, error) {
	return "confirmation-token", nil
}

func (m *MockTokens) ValidateConfirmation(token string) error {
	return m.ValidateErr
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		params   RegisterParams
		mock     func() *MockRepository
		wantErr  error
		wantMail bool
	}{
		{
			name:   "Success",
			params: RegisterParams{Name: "Maria", Email: "maria@example.com", Password: "s3cret"},
			mock: func() *MockRepository {
				return &MockRepository{
					CreateFunc: func(ctx context.Context, params CreateUserParams) (*User, error) {
						if params.Status != StatusVerificacaoPendente {
							t.Errorf("Create() status = %q, want %q", params.Status, StatusVerificacaoPendente)
						}
						if params.PasswordHash == "s3cret" {
							t.Error("Create() received plaintext password")
						}
						return &User{
							ID:        1,
							Name:      params.Name,
							Email:     params.Email,
							Status:    params.Status,
							CreatedAt: time.Now(),
						}, nil
					},
				}
			},
			wantMail: true,
		},
		{
			name:    "MissingFields",
			params:  RegisterParams{Email: "maria@example.com"},
			mock:    func() *MockRepository { return &MockRepository{} },
			wantErr: ErrInvalidInput,
		},
		{
			name:   "EmailTaken",
			params: RegisterParams{Name: "Maria", Email: "maria@example.com", Password: "s3cret"},
			mock: func() *MockRepository {
				return &MockRepository{
					GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
						return &User{ID: 9, Email: email}, nil
					},
				}
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &MockMailer{}
			svc := NewService(tt.mock(), mailer, &MockTokens{})

			u, err := svc.Register(ctx, tt.params)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() failed: %v", err)
			}
			if u.Status != StatusVerificacaoPendente {
				t.Errorf("Register() status = %q, want %q", u.Status, StatusVerificacaoPendente)
			}
			if tt.wantMail && mailer.Sent != 1 {
				t.Errorf("Register() sent %d confirmation mails, want 1", mailer.Sent)
			}
		})
	}
}

func TestRegister_MailerFailure(t *testing.T) {
	ctx := context.Background()

	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, params CreateUserParams) (*User, error) {
			return &User{ID: 1, Email: params.Email, Status: params.Status}, nil
		},
	}
	mailer := &MockMailer{
		SendConfirmationFunc: func(ctx context.Context, to, name string, userID int64, token string) error {
			return errors.New("smtp unreachable")
		},
	}

	svc := NewService(repo, mailer, &MockTokens{})
	if _, err := svc.Register(ctx, RegisterParams{Name: "M", Email: "m@x.com", Password: "p"}); err == nil {
		t.Error("Register() succeeded despite mailer failure")
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	activeUser := &User{ID: 3, Email: "ana@example.com", PasswordHash: hash, Status: StatusLiberado}

	tests := []struct {
		name     string
		email    string
		password string
		mock     func() *MockRepository
		wantErr  error
	}{
		{
			name:     "Success",
			email:    "ana@example.com",
			password: "correct-password",
			mock: func() *MockRepository {
				return &MockRepository{
					GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
						return activeUser, nil
					},
				}
			},
		},
		{
			name:     "MissingCredentials",
			email:    "",
			password: "",
			mock:     func() *MockRepository { return &MockRepository{} },
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "UnknownUser",
			email:    "ghost@example.com",
			password: "whatever",
			mock:     func() *MockRepository { return &MockRepository{} },
			wantErr:  ErrUserNotFound,
		},
		{
			name:     "PendingAccount",
			email:    "ana@example.com",
			password: "correct-password",
			mock: func() *MockRepository {
				return &MockRepository{
					GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
						return &User{ID: 3, Email: email, PasswordHash: hash, Status: StatusVerificacaoPendente}, nil
					},
				}
			},
			wantErr: ErrAccountNotActive,
		},
		{
			name:     "RefusedAccount",
			email:    "ana@example.com",
			password: "correct-password",
			mock: func() *MockRepository {
				return &MockRepository{
					GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
						return &User{ID: 3, Email: email, PasswordHash: hash, Status: StatusRecusado}, nil
					},
				}
			},
			wantErr: ErrAccountNotActive,
		},
		{
			name:     "WrongPassword",
			email:    "ana@example.com",
			password: "wrong-password",
			mock: func() *MockRepository {
				return &MockRepository{
					GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
						return activeUser, nil
					},
				}
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.mock(), &MockMailer{}, &MockTokens{})

			u, token, err := svc.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() failed: %v", err)
			}
			if u.ID != 3 {
				t.Errorf("Login() user id = %d, want 3", u.ID)
			}
			if token == "" {
				t.Error("Login() returned empty session token")
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	ctx := context.Background()

	pending := &User{ID: 5, Email: "p@example.com", Status: StatusVerificacaoPendente}

	repo := func() *MockRepository {
		return &MockRepository{
			GetByIDFunc: func(ctx context.Context, id int64) (*User, error) {
				if id == pending.ID {
					return pending, nil
				}
				return nil, nil
			},
			UpdateStatusFunc: func(ctx context.Context, id int64, status string) (*User, error) {
				u := *pending
				u.Status = status
				return &u, nil
			},
		}
	}

	t.Run("Accept", func(t *testing.T) {
		svc := NewService(repo(), &MockMailer{}, &MockTokens{})
		u, err := svc.ValidateEmail(ctx, 5, "confirmation-token", ActionAccept)
		if err != nil {
			t.Fatalf("ValidateEmail() failed: %v", err)
		}
		if u.Status != StatusLiberado {
			t.Errorf("ValidateEmail() status = %q, want %q", u.Status, StatusLiberado)
		}
	})

	t.Run("Reject", func(t *testing.T) {
		svc := NewService(repo(), &MockMailer{}, &MockTokens{})
		u, err := svc.ValidateEmail(ctx, 5, "confirmation-token", ActionReject)
		if err != nil {
			t.Fatalf("ValidateEmail() failed: %v", err)
		}
		if u.Status != StatusRecusado {
			t.Errorf("ValidateEmail() status = %q, want %q", u.Status, StatusRecusado)
		}
	})

	t.Run("InvalidAction", func(t *testing.T) {
		svc := NewService(repo(), &MockMailer{}, &MockTokens{})
		if _, err := svc.ValidateEmail(ctx, 5, "confirmation-token", "maybe"); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ValidateEmail() error = %v, want %v", err, ErrInvalidInput)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		svc := NewService(repo(), &MockMailer{}, &MockTokens{ValidateErr: errors.New("token expired")})
		if _, err := svc.ValidateEmail(ctx, 5, "stale-token", ActionAccept); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ValidateEmail() error = %v, want %v", err, ErrInvalidToken)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc := NewService(repo(), &MockMailer{}, &MockTokens{})
		if _, err := svc.ValidateEmail(ctx, 404, "confirmation-token", ActionAccept); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("ValidateEmail() error = %v, want %v", err, ErrUserNotFound)
		}
	})
}
