package models

import (
	"time"

	"github.com/staxpay/gateway/pkg/types"

	"gorm.io/datatypes"
)

// Payment is one checkout intent. Amounts are decimal strings end to end,
// never floats.
type Payment struct {
	ID                 string              `gorm:"column:id;primary_key;type:uuid;index:idx_payment_merchant_id_id,priority:2,sort:desc" json:"id"`
	MerchantID         string              `gorm:"column:merchant_id;type:varchar(64);not null;index:idx_payment_merchant_id_id,priority:1" json:"merchant_id"`
	Amount             string              `gorm:"column:amount;type:decimal(36,18);not null" json:"amount"`
	Currency           string              `gorm:"column:currency;type:varchar(16);not null" json:"currency"`
	SettlementCurrency string              `gorm:"column:settlement_currency;type:varchar(16);not null" json:"settlement_currency"`
	Status             types.PaymentStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	MerchantWallet     string              `gorm:"column:merchant_wallet;type:varchar(128);not null" json:"merchant_wallet"`
	// PayerWallet is unknown until the payer submits a transaction.
	PayerWallet *string `gorm:"column:payer_wallet;type:varchar(128)" json:"payer_wallet"`
	TxHash      *string `gorm:"column:tx_hash;type:varchar(128);index" json:"tx_hash"`
	// SettlementTime is seconds from creation to on-chain confirmation.
	SettlementTime *int64            `gorm:"column:settlement_time;type:bigint" json:"settlement_time"`
	ExpiresAt      time.Time         `gorm:"column:expires_at;not null;index" json:"expires_at"`
	Metadata       datatypes.JSONMap `gorm:"column:metadata;type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payment"
}

// FailureReason returns the recorded reason for a failed payment, empty
// otherwise.
func (p *Payment) FailureReason() string {
	if p == nil || p.Metadata == nil {
		return ""
	}
	if v, ok := p.Metadata["failure_reason"].(string); ok {
		return v
	}
	return ""
}
