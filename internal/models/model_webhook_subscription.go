package models

import (
	"time"

	"github.com/staxpay/gateway/pkg/types"

	"gorm.io/datatypes"
)

// WebhookSubscription is one merchant endpoint plus the event types it
// receives. The secret signs every payload delivered to it and is only
// returned once, on creation.
type WebhookSubscription struct {
	ID         string                      `gorm:"column:id;primary_key;type:uuid" json:"id"`
	MerchantID string                      `gorm:"column:merchant_id;type:varchar(64);not null;index" json:"merchant_id"`
	URL        string                      `gorm:"column:url;type:varchar(512);not null" json:"url"`
	Events     datatypes.JSONSlice[string] `gorm:"column:events;type:jsonb;default:'[]'" json:"events"`
	Secret     string                      `gorm:"column:secret;type:varchar(128);not null" json:"-"`
	Active     bool                        `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

func (WebhookSubscription) TableName() string {
	return "webhook_subscription"
}

func (s *WebhookSubscription) SubscribedTo(event types.EventType) bool {
	if s == nil {
		return false
	}
	for _, e := range s.Events {
		if e == string(event) {
			return true
		}
	}
	return false
}
