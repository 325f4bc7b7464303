package refund

import "errors"

var (
	ErrRefundNotFound       = errors.New("refund not found")
	ErrPaymentNotRefundable = errors.New("payment is not refundable")
	ErrAmountExceedsPayment = errors.New("refund amount exceeds payment amount")
	ErrRefundCompleted      = errors.New("refund already completed")
)
