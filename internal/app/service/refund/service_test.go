package refund

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/staxpay/gateway/internal/app/service/payment"
)

func TestValidateRefundAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		payment string
		wantErr error
	}{
		{name: "partial refund", amount: "5", payment: "10"},
		{name: "full refund", amount: "10", payment: "10"},
		{name: "equal with different scale", amount: "10.00", payment: "10"},
		{name: "exceeds by a wei", amount: "10.000000000000000001", payment: "10", wantErr: ErrAmountExceedsPayment},
		{name: "exceeds", amount: "11", payment: "10", wantErr: ErrAmountExceedsPayment},
		{name: "zero", amount: "0", payment: "10", wantErr: payment.ErrInvalidAmount},
		{name: "negative", amount: "-1", payment: "10", wantErr: payment.ErrInvalidAmount},
		{name: "not a number", amount: "ten", payment: "10", wantErr: payment.ErrInvalidAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateRefundAmount(tc.amount, tc.payment)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCompleteRefund_RejectsMalformedHash(t *testing.T) {
	svc := &Service{log: zap.NewNop().Sugar()}

	tests := []string{"", "0xdead", "not-a-hash"}
	for _, hash := range tests {
		_, err := svc.CompleteRefund(context.Background(), &CompleteRefundRequest{
			RefundID: "ref-1",
			TxHash:   hash,
		})
		assert.ErrorIs(t, err, payment.ErrInvalidTxHash, "hash %q", hash)
	}
}
