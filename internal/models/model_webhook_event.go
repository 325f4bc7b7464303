package models

import (
	"time"

	"github.com/staxpay/gateway/pkg/types"

	"gorm.io/datatypes"
)

// WebhookEvent is one delivery to one subscription. Payload holds the exact
// bytes that were signed and POSTed, so a delivery can be audited or
// replayed verbatim. Rows are immutable once Status is terminal.
type WebhookEvent struct {
	ID             string               `gorm:"column:id;primary_key;type:uuid;index:idx_webhook_event_merchant_id_id,priority:2,sort:desc" json:"id"`
	SubscriptionID string               `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscription_id"`
	MerchantID     string               `gorm:"column:merchant_id;type:varchar(64);not null;index:idx_webhook_event_merchant_id_id,priority:1" json:"merchant_id"`
	EventType      types.EventType      `gorm:"column:event_type;type:varchar(64);not null" json:"event_type"`
	Payload        datatypes.JSON       `gorm:"column:payload;type:jsonb" json:"payload"`
	Status         types.DeliveryStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	Attempts       int                  `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastAttemptAt  *time.Time           `gorm:"column:last_attempt_at;default:null" json:"last_attempt_at"`
	// ResponseCode 0 means the attempt never got an HTTP response.
	ResponseCode int       `gorm:"column:response_code;not null;default:0" json:"response_code"`
	ResponseBody string    `gorm:"column:response_body;type:varchar(1024)" json:"response_body"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (WebhookEvent) TableName() string {
	return "webhook_event"
}
