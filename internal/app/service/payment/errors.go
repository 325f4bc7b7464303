package payment

import "errors"

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrInvalidTransition   = errors.New("invalid payment status transition")
	ErrInvalidAmount       = errors.New("invalid payment amount")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidTxHash       = errors.New("invalid transaction hash")
)
