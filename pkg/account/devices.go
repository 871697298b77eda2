package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mealboard/mealboard/pkg/domain"
)

// DeviceTokenStore is the push token persistence the device service needs.
type DeviceTokenStore interface {
	Upsert(ctx context.Context, t *domain.DeviceToken) error
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DeviceToken, error)
	DeactivateByToken(ctx context.Context, token string) error
}

// DeviceService manages push notification tokens. Registration is an
// upsert so a token handed to a new user, or re-registered after sign-out,
// lands on the right account.
type DeviceService struct {
	logger *slog.Logger
	tokens DeviceTokenStore
}

func NewDeviceService(logger *slog.Logger, tokens DeviceTokenStore) *DeviceService {
	return &DeviceService{logger: logger, tokens: tokens}
}

// RegisterDevice records a push token for a user, reclaiming and
// reactivating it if the token is already known.
func (s *DeviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, token, platform string) (*domain.DeviceToken, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: device token is required", domain.ErrInvalidRequest)
	}
	if platform != domain.PlatformIOS && platform != domain.PlatformAndroid {
		return nil, fmt.Errorf("%w: unknown platform %q", domain.ErrInvalidRequest, platform)
	}

	t := domain.NewDeviceToken(userID, token, platform)
	if err := s.tokens.Upsert(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("device registered", "user_id", userID, "platform", platform)
	return t, nil
}

// ListDevices returns a user's active push tokens.
func (s *DeviceService) ListDevices(ctx context.Context, userID uuid.UUID) ([]*domain.DeviceToken, error) {
	return s.tokens.ListActiveByUser(ctx, userID)
}

// RevokeDevice deactivates a push token, typically on sign-out.
func (s *DeviceService) RevokeDevice(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: device token is required", domain.ErrInvalidRequest)
	}
	return s.tokens.DeactivateByToken(ctx, token)
}
