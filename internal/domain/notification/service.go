package notification

import (
	"context"
	"log"
)

// Service contains the business logic for push notification delivery
type Service struct {
	repo      Repository
	messenger Messenger
}

func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice registers a device token for the authenticated user.
// If the token already belongs to another user, it is reassigned.
func (s *Service) RegisterDevice(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpsertDeviceToken(ctx, params)
}

// NotifyUser pushes a message to every active device of a user. A user
// with no registered devices is not an error; delivery is best effort.
func (s *Service) NotifyUser(ctx context.Context, userID int64, title, body string, data map[string]string) error {
	tokens, err := s.repo.GetActiveTokensByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	if s.messenger == nil {
		return nil
	}

	tokenStrings := make([]string, len(tokens))
	for i, t := range tokens {
		tokenStrings[i] = t.Token
	}

	if err := s.messenger.SendMulticast(ctx, tokenStrings, title, body, data); err != nil {
		log.Printf("Error sending notification to user %d: %v", userID, err)
	}
	return nil
}
