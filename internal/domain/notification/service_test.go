package notification

import (
	"context"
	"errors"
	"testing"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	UpsertDeviceTokenFunc       func(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error)
	GetActiveTokensByUserIDFunc func(ctx context.Context, userID int64) ([]*DeviceToken, error)
	DeactivateTokenFunc         func(ctx context.Context, token string) error
}

func (m *MockRepository) UpsertDeviceToken(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error) {
	return m.UpsertDeviceTokenFunc(ctx, params)
}

func (m *MockRepository) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*DeviceToken, error) {
	return m.GetActiveTokensByUserIDFunc(ctx, userID)
}

func (m *MockRepository) DeactivateToken(ctx context.Context, token string) error {
	return m.DeactivateTokenFunc(ctx, token)
}

// MockMessenger is a mock implementation of the Messenger interface
type MockMessenger struct {
	SendFunc          func(ctx context.Context, token string, title, body string, data map[string]string) error
	SendMulticastFunc func(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

func (m *MockMessenger) Send(ctx context.Context, token string, title, body string, data map[string]string) error {
	return m.SendFunc(ctx, token, title, body, data)
}

func (m *MockMessenger) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	return m.SendMulticastFunc(ctx, tokens, title, body, data)
}

func TestRegisterDevice(t *testing.T) {
	repo := &MockRepository{
		UpsertDeviceTokenFunc: func(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error) {
			return &DeviceToken{ID: "dt-1", UserID: params.UserID, Token: params.Token, DeviceType: params.DeviceType, IsActive: true}, nil
		},
	}
	service := NewService(repo, nil)

	t.Run("success", func(t *testing.T) {
		dt, err := service.RegisterDevice(context.Background(), RegisterDeviceParams{UserID: 1, Token: "abc", DeviceType: "android"})
		if err != nil {
			t.Fatalf("RegisterDevice() error = %v", err)
		}
		if !dt.IsActive {
			t.Error("IsActive = false, want true")
		}
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := service.RegisterDevice(context.Background(), RegisterDeviceParams{UserID: 1, DeviceType: "android"})
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("bad device type", func(t *testing.T) {
		_, err := service.RegisterDevice(context.Background(), RegisterDeviceParams{UserID: 1, Token: "abc", DeviceType: "blackberry"})
		if !errors.Is(err, ErrInvalidDeviceType) {
			t.Errorf("error = %v, want ErrInvalidDeviceType", err)
		}
	})
}

func TestNotifyUser(t *testing.T) {
	t.Run("sends to all active tokens", func(t *testing.T) {
		repo := &MockRepository{
			GetActiveTokensByUserIDFunc: func(ctx context.Context, userID int64) ([]*DeviceToken, error) {
				return []*DeviceToken{{Token: "t1"}, {Token: "t2"}}, nil
			},
		}
		var got []string
		messenger := &MockMessenger{
			SendMulticastFunc: func(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
				got = tokens
				return nil
			},
		}
		service := NewService(repo, messenger)

		if err := service.NotifyUser(context.Background(), 1, "Parcela paga", "ok", nil); err != nil {
			t.Fatalf("NotifyUser() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("sent to %d tokens, want 2", len(got))
		}
	})

	t.Run("no devices is not an error", func(t *testing.T) {
		repo := &MockRepository{
			GetActiveTokensByUserIDFunc: func(ctx context.Context, userID int64) ([]*DeviceToken, error) {
				return nil, nil
			},
		}
		service := NewService(repo, &MockMessenger{})
		if err := service.NotifyUser(context.Background(), 1, "t", "b", nil); err != nil {
			t.Errorf("NotifyUser() error = %v", err)
		}
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		repo := &MockRepository{
			GetActiveTokensByUserIDFunc: func(ctx context.Context, userID int64) ([]*DeviceToken, error) {
				return []*DeviceToken{{Token: "t1"}}, nil
			},
		}
		messenger := &MockMessenger{
			SendMulticastFunc: func(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
				return errors.New("fcm unavailable")
			},
		}
		service := NewService(repo, messenger)
		if err := service.NotifyUser(context.Background(), 1, "t", "b", nil); err != nil {
			t.Errorf("NotifyUser() error = %v, want nil", err)
		}
	})
}
