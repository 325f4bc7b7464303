package models

import (
	"time"

	"github.com/staxpay/gateway/pkg/types"
)

// Refund reverses a confirmed payment. The merchant moves the funds with
// their own wallet; completion records the resulting transaction hash.
type Refund struct {
	ID         string             `gorm:"column:id;primary_key;type:uuid;index:idx_refund_merchant_id_id,priority:2,sort:desc" json:"id"`
	PaymentID  string             `gorm:"column:payment_id;type:uuid;not null;index" json:"payment_id"`
	MerchantID string             `gorm:"column:merchant_id;type:varchar(64);not null;index:idx_refund_merchant_id_id,priority:1" json:"merchant_id"`
	Amount     string             `gorm:"column:amount;type:decimal(36,18);not null" json:"amount"`
	Currency   string             `gorm:"column:currency;type:varchar(16);not null" json:"currency"`
	Status     types.RefundStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	TxHash     *string            `gorm:"column:tx_hash;type:varchar(128)" json:"tx_hash"`
	Reason     string             `gorm:"column:reason;type:varchar(256)" json:"reason"`

	CompletedAt *time.Time `gorm:"column:completed_at;default:null" json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Refund) TableName() string {
	return "refund"
}
