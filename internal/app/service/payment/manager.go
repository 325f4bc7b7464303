package payment

import (
	"context"
	"time"

	models "github.com/staxpay/gateway/internal/models"
	types "github.com/staxpay/gateway/pkg/types"
)

type CreatePaymentRequest struct {
	MerchantID         string         `json:"-"`
	Amount             string         `json:"amount" binding:"required"`
	Currency           string         `json:"currency" binding:"required"`
	SettlementCurrency string         `json:"settlement_currency"`
	MerchantWallet     string         `json:"merchant_wallet" binding:"required"`
	ExpiresInMinutes   *int64         `json:"expires_in_minutes"`
	Metadata           map[string]any `json:"metadata"`
}

type SubmitTransactionRequest struct {
	MerchantID  string `json:"-"`
	PaymentID   string `json:"-"`
	TxHash      string `json:"tx_hash" binding:"required"`
	PayerWallet string `json:"payer_wallet"`
	// Customer carries optional payer details, stored under
	// metadata["customer"].
	Customer map[string]any `json:"customer"`
}

type ConfirmPaymentRequest struct {
	PaymentID   string `json:"-"`
	TxHash      string `json:"tx_hash"`
	PayerWallet string `json:"payer_wallet"`
	// ConfirmedAt is the block timestamp when the watcher knows it;
	// nil falls back to wall clock.
	ConfirmedAt *time.Time `json:"-"`
}

type FailPaymentRequest struct {
	PaymentID string `json:"-"`
	Reason    string `json:"reason"`
}

// List payments request/response.
type ListPaymentsRequest struct {
	MerchantID string                `json:"-"`
	Filters    []*types.CommonFilter `json:"filters"`
	From       int                   `json:"from"`
	Size       int                   `json:"size"`
	SortBy     string                `json:"sort_by"`
	SortOrder  string                `json:"sort_order"`
}

type ListPaymentsResponse struct {
	Items []*models.Payment `json:"items"`
	Total int64             `json:"total"`
}

// Manager owns the payment lifecycle. All status transitions go through the
// machine in machine.go and are persisted with status-guarded updates;
// webhook dispatch happens only after a successful write.
type Manager interface {
	// Create a payment intent in created status.
	CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*models.Payment, error)
	// Fetch one payment scoped to its merchant.
	GetPayment(ctx context.Context, merchantID, paymentID string) (*models.Payment, error)
	// List payments (used by merchant dashboard pages).
	ListPayments(ctx context.Context, req *ListPaymentsRequest) (*ListPaymentsResponse, error)
	// Record a payer-submitted transaction hash.
	SubmitTransaction(ctx context.Context, req *SubmitTransactionRequest) (*models.Payment, error)
	// Confirm a payment once its transaction is final on chain.
	ConfirmPayment(ctx context.Context, req *ConfirmPaymentRequest) (*models.Payment, error)
	// Fail a payment with a recorded reason.
	FailPayment(ctx context.Context, req *FailPaymentRequest) (*models.Payment, error)
	// Expire an overdue payment; no-op on terminal statuses.
	ExpirePayment(ctx context.Context, paymentID string) (*models.Payment, error)
	// Pending payments with a transaction hash, for the watcher.
	ListAwaitingConfirmation(ctx context.Context) ([]*models.Payment, error)
	// Open payments whose deadline has passed.
	ListExpiryCandidates(ctx context.Context, now time.Time) ([]*models.Payment, error)
}
