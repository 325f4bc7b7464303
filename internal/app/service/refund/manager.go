package refund

import (
	"context"

	models "github.com/staxpay/gateway/internal/models"
)

type CreateRefundRequest struct {
	MerchantID string `json:"-"`
	PaymentID  string `json:"payment_id" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	Reason     string `json:"reason"`
}

type CompleteRefundRequest struct {
	MerchantID string `json:"-"`
	RefundID   string `json:"-"`
	// TxHash is the merchant's reversing transaction. It is trusted as a
	// receipt, the watcher never re-verifies it.
	TxHash string `json:"tx_hash" binding:"required"`
}

// Manager orchestrates refunds of confirmed payments. The gateway is
// non-custodial: it records the intent and the merchant-signed transaction,
// it never moves funds itself.
type Manager interface {
	// Validate and record a refund intent for a confirmed payment.
	CreateRefundIntent(ctx context.Context, req *CreateRefundRequest) (*models.Refund, error)
	// Attach the reversing transaction and settle the refund.
	CompleteRefund(ctx context.Context, req *CompleteRefundRequest) (*models.Refund, error)
	// Fetch one refund scoped to its merchant.
	GetRefund(ctx context.Context, merchantID, refundID string) (*models.Refund, error)
}
