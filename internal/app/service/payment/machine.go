package payment

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	models "github.com/staxpay/gateway/internal/models"
	types "github.com/staxpay/gateway/pkg/types"
)

// The status graph is forward-only:
//
//	created → pending → confirmed → refunded
//	created|pending → failed
//	created|pending → expired
//
// Each apply function mutates p in memory and reports whether anything
// changed. Callers persist the result with a status-guarded UPDATE so a
// concurrent transition can never double-apply.

// applySubmit records a payer transaction and moves the payment to pending.
// Submitting the hash the payment already carries is a no-op. Submitting a
// different hash while still pending replaces it (the payer re-sent the
// transaction).
func applySubmit(p *models.Payment, txHash, payerWallet string) (bool, error) {
	if p.Status == types.PaymentStatusPending && p.TxHash != nil && *p.TxHash == txHash {
		return false, nil
	}
	if !p.Status.Open() {
		return false, fmt.Errorf("%w: cannot submit transaction on %s payment", ErrInvalidTransition, p.Status)
	}
	p.Status = types.PaymentStatusPending
	p.TxHash = lo.ToPtr(txHash)
	if payerWallet != "" {
		p.PayerWallet = lo.ToPtr(payerWallet)
	}
	return true, nil
}

// applyConfirm settles the payment at time at. An already confirmed payment
// returns (false, nil) so callers never re-dispatch webhooks. The payment
// must carry a transaction hash once confirmed, either stored earlier by
// submit or passed here.
func applyConfirm(p *models.Payment, txHash, payerWallet string, at time.Time) (bool, error) {
	if p.Status == types.PaymentStatusConfirmed {
		return false, nil
	}
	if !p.Status.Open() {
		return false, fmt.Errorf("%w: cannot confirm %s payment", ErrInvalidTransition, p.Status)
	}
	if txHash != "" {
		p.TxHash = lo.ToPtr(txHash)
	}
	if p.TxHash == nil || *p.TxHash == "" {
		return false, fmt.Errorf("%w: confirmation requires a transaction hash", ErrInvalidTxHash)
	}
	if payerWallet != "" {
		p.PayerWallet = lo.ToPtr(payerWallet)
	}
	secs := int64(at.Sub(p.CreatedAt) / time.Second)
	if secs < 0 {
		secs = 0
	}
	p.Status = types.PaymentStatusConfirmed
	p.SettlementTime = lo.ToPtr(secs)
	return true, nil
}

// applyFail marks the payment failed and records the reason in metadata.
func applyFail(p *models.Payment, reason string) (bool, error) {
	if p.Status == types.PaymentStatusFailed {
		return false, nil
	}
	if !p.Status.Open() {
		return false, fmt.Errorf("%w: cannot fail %s payment", ErrInvalidTransition, p.Status)
	}
	p.Status = types.PaymentStatusFailed
	if p.Metadata == nil {
		p.Metadata = datatypes.JSONMap{}
	}
	p.Metadata["failure_reason"] = reason
	return true, nil
}

// applyExpire moves an open payment to expired. Terminal payments are left
// untouched, expiry never errors.
func applyExpire(p *models.Payment) bool {
	if p.Status.Terminal() {
		return false
	}
	p.Status = types.PaymentStatusExpired
	return true
}

// applyRefunded moves a confirmed payment to refunded.
func applyRefunded(p *models.Payment) (bool, error) {
	if p.Status == types.PaymentStatusRefunded {
		return false, nil
	}
	if p.Status != types.PaymentStatusConfirmed {
		return false, fmt.Errorf("%w: cannot refund %s payment", ErrInvalidTransition, p.Status)
	}
	p.Status = types.PaymentStatusRefunded
	return true, nil
}
