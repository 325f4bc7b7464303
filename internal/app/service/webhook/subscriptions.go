package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/staxpay/gateway/internal/models"
	"github.com/staxpay/gateway/pkg/logctx"
	"github.com/staxpay/gateway/pkg/tool"
	"github.com/staxpay/gateway/pkg/types"
)

type CreateSubscriptionRequest struct {
	MerchantID string   `json:"-"`
	URL        string   `json:"url" binding:"required"`
	Events     []string `json:"events" binding:"required"`
}

type CreateSubscriptionResponse struct {
	Subscription *models.WebhookSubscription `json:"subscription"`
	// Secret is returned exactly once, at creation. Later reads omit it.
	Secret string `json:"secret"`
}

type UpdateSubscriptionRequest struct {
	SubscriptionID string   `json:"-"`
	MerchantID     string   `json:"-"`
	URL            *string  `json:"url"`
	Events         []string `json:"events"`
	Active         *bool    `json:"active"`
}

type ListDeliveriesRequest struct {
	MerchantID     string `json:"-"`
	SubscriptionID string `json:"subscription_id"`
	From           int    `json:"from"`
	Size           int    `json:"size"`
}

type ListDeliveriesResponse struct {
	Items []*models.WebhookEvent `json:"items"`
	Total int64                  `json:"total"`
}

// Subscriptions manages merchant webhook endpoint registrations and exposes
// the delivery audit trail.
type Subscriptions interface {
	CreateSubscription(ctx context.Context, req *CreateSubscriptionRequest) (*CreateSubscriptionResponse, error)
	UpdateSubscription(ctx context.Context, req *UpdateSubscriptionRequest) (*models.WebhookSubscription, error)
	ListSubscriptions(ctx context.Context, merchantID string) ([]*models.WebhookSubscription, error)
	ListDeliveries(ctx context.Context, req *ListDeliveriesRequest) (*ListDeliveriesResponse, error)
}

type subscriptionService struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func NewSubscriptions(log *zap.SugaredLogger, db *gorm.DB) Subscriptions {
	return &subscriptionService{log: log, db: db}
}

func validateEvents(events []string) error {
	if len(events) == 0 {
		return fmt.Errorf("%w: at least one event type required", ErrUnknownEvent)
	}
	for _, e := range events {
		if !types.KnownEvent(e) {
			return fmt.Errorf("%w: %q", ErrUnknownEvent, e)
		}
	}
	return nil
}

func validateEndpointURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, raw)
	}
	return nil
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req *CreateSubscriptionRequest) (*CreateSubscriptionResponse, error) {
	if req == nil || req.MerchantID == "" {
		return nil, fmt.Errorf("invalid params: merchant_id required")
	}
	if err := validateEndpointURL(req.URL); err != nil {
		return nil, err
	}
	if err := validateEvents(req.Events); err != nil {
		return nil, err
	}

	secret, err := tool.GenerateSecret(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing secret: %w", err)
	}

	sub := &models.WebhookSubscription{
		ID:         tool.GenerateUUIDV7(),
		MerchantID: req.MerchantID,
		URL:        req.URL,
		Events:     datatypes.NewJSONSlice(req.Events),
		Secret:     secret,
		Active:     true,
	}
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("webhook subscription created",
		"subscription_id", sub.ID, "merchant_id", sub.MerchantID, "events", req.Events)
	return &CreateSubscriptionResponse{Subscription: sub, Secret: secret}, nil
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, req *UpdateSubscriptionRequest) (*models.WebhookSubscription, error) {
	if req == nil || req.SubscriptionID == "" || req.MerchantID == "" {
		return nil, fmt.Errorf("invalid params: subscription_id and merchant_id required")
	}

	var sub models.WebhookSubscription
	err := s.db.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", req.SubscriptionID, req.MerchantID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	if req.URL != nil {
		if err := validateEndpointURL(*req.URL); err != nil {
			return nil, err
		}
		sub.URL = *req.URL
	}
	if req.Events != nil {
		if err := validateEvents(req.Events); err != nil {
			return nil, err
		}
		sub.Events = datatypes.NewJSONSlice(req.Events)
	}
	if req.Active != nil {
		sub.Active = *req.Active
	}

	if err := s.db.WithContext(ctx).Save(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return &sub, nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, merchantID string) ([]*models.WebhookSubscription, error) {
	if merchantID == "" {
		return nil, fmt.Errorf("invalid params: merchant_id required")
	}
	var subs []*models.WebhookSubscription
	if err := s.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at desc").
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

func (s *subscriptionService) ListDeliveries(ctx context.Context, req *ListDeliveriesRequest) (*ListDeliveriesResponse, error) {
	if req == nil || req.MerchantID == "" {
		return nil, fmt.Errorf("invalid params: merchant_id required")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.WebhookEvent{}).Where("merchant_id = ?", req.MerchantID)
	if req.SubscriptionID != "" {
		tx = tx.Where("subscription_id = ?", req.SubscriptionID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count deliveries: %w", err)
	}

	var rows []*models.WebhookEvent
	q := tx.Order("id desc").Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	return &ListDeliveriesResponse{Items: rows, Total: total}, nil
}
