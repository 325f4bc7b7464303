package webhook

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/staxpay/gateway/internal/models"
	"github.com/staxpay/gateway/pkg/types"
)

// Store is the persistence surface the dispatcher works against.
type Store interface {
	// ActiveSubscriptions returns the merchant's active subscriptions whose
	// events set contains event.
	ActiveSubscriptions(ctx context.Context, merchantID string, event types.EventType) ([]*models.WebhookSubscription, error)
	CreateEvent(ctx context.Context, ev *models.WebhookEvent) error
	// SaveEventAttempt persists the mutable delivery fields after an attempt.
	SaveEventAttempt(ctx context.Context, ev *models.WebhookEvent) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ActiveSubscriptions(ctx context.Context, merchantID string, event types.EventType) ([]*models.WebhookSubscription, error) {
	var subs []*models.WebhookSubscription
	if err := s.db.WithContext(ctx).
		Where("merchant_id = ? AND active = ? AND events @> ?", merchantID, true, fmt.Sprintf(`["%s"]`, event)).
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	return subs, nil
}

func (s *gormStore) CreateEvent(ctx context.Context, ev *models.WebhookEvent) error {
	if err := s.db.WithContext(ctx).Create(ev).Error; err != nil {
		return fmt.Errorf("failed to create delivery record: %w", err)
	}
	return nil
}

func (s *gormStore) SaveEventAttempt(ctx context.Context, ev *models.WebhookEvent) error {
	err := s.db.WithContext(ctx).Model(&models.WebhookEvent{}).
		Where("id = ?", ev.ID).
		Updates(map[string]any{
			"status":          ev.Status,
			"attempts":        ev.Attempts,
			"last_attempt_at": ev.LastAttemptAt,
			"response_code":   ev.ResponseCode,
			"response_body":   ev.ResponseBody,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update delivery record: %w", err)
	}
	return nil
}
