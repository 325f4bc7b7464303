package payment

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/staxpay/gateway/internal/models"
	types "github.com/staxpay/gateway/pkg/types"
)

const (
	hashA = "0x" + "aa11223344556677889900aabbccddeeff00112233445566778899aabbccddee"
	hashB = "0x" + "bb11223344556677889900aabbccddeeff00112233445566778899aabbccddee"
)

func paymentWith(status types.PaymentStatus) *models.Payment {
	return &models.Payment{
		ID:        "pay-1",
		Status:    status,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestApplySubmit(t *testing.T) {
	t.Run("created moves to pending", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusCreated)
		changed, err := applySubmit(p, hashA, "0xpayer")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, types.PaymentStatusPending, p.Status)
		require.NotNil(t, p.TxHash)
		assert.Equal(t, hashA, *p.TxHash)
		require.NotNil(t, p.PayerWallet)
		assert.Equal(t, "0xpayer", *p.PayerWallet)
	})

	t.Run("same hash is a no-op", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusPending)
		p.TxHash = lo.ToPtr(hashA)
		p.PayerWallet = lo.ToPtr("0xpayer")
		changed, err := applySubmit(p, hashA, "0xother")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "0xpayer", *p.PayerWallet)
	})

	t.Run("different hash while pending replaces it", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusPending)
		p.TxHash = lo.ToPtr(hashA)
		changed, err := applySubmit(p, hashB, "")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, hashB, *p.TxHash)
		assert.Equal(t, types.PaymentStatusPending, p.Status)
	})

	t.Run("terminal statuses reject submission", func(t *testing.T) {
		for _, status := range []types.PaymentStatus{
			types.PaymentStatusConfirmed,
			types.PaymentStatusFailed,
			types.PaymentStatusExpired,
			types.PaymentStatusRefunded,
		} {
			p := paymentWith(status)
			changed, err := applySubmit(p, hashA, "")
			assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
			assert.False(t, changed)
			assert.Equal(t, status, p.Status)
		}
	})
}

func TestApplyConfirm(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 1, 30, 0, time.UTC)

	t.Run("pending with stored hash", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusPending)
		p.TxHash = lo.ToPtr(hashA)
		changed, err := applyConfirm(p, "", "", at)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, types.PaymentStatusConfirmed, p.Status)
		assert.Equal(t, hashA, *p.TxHash)
		require.NotNil(t, p.SettlementTime)
		assert.Equal(t, int64(90), *p.SettlementTime)
	})

	t.Run("created with hash argument", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusCreated)
		changed, err := applyConfirm(p, hashA, "0xpayer", at)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, hashA, *p.TxHash)
		assert.Equal(t, "0xpayer", *p.PayerWallet)
	})

	t.Run("hash argument overrides stored hash", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusPending)
		p.TxHash = lo.ToPtr(hashA)
		_, err := applyConfirm(p, hashB, "", at)
		require.NoError(t, err)
		assert.Equal(t, hashB, *p.TxHash)
	})

	t.Run("no hash anywhere is rejected", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusCreated)
		changed, err := applyConfirm(p, "", "", at)
		assert.ErrorIs(t, err, ErrInvalidTxHash)
		assert.False(t, changed)
		assert.Equal(t, types.PaymentStatusCreated, p.Status)
	})

	t.Run("already confirmed is idempotent", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusConfirmed)
		p.TxHash = lo.ToPtr(hashA)
		p.SettlementTime = lo.ToPtr(int64(42))
		changed, err := applyConfirm(p, hashB, "", at)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, hashA, *p.TxHash)
		assert.Equal(t, int64(42), *p.SettlementTime)
	})

	t.Run("settlement time never negative", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusPending)
		p.TxHash = lo.ToPtr(hashA)
		_, err := applyConfirm(p, "", "", p.CreatedAt.Add(-time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(0), *p.SettlementTime)
	})

	t.Run("failed, expired and refunded reject confirmation", func(t *testing.T) {
		for _, status := range []types.PaymentStatus{
			types.PaymentStatusFailed,
			types.PaymentStatusExpired,
			types.PaymentStatusRefunded,
		} {
			p := paymentWith(status)
			_, err := applyConfirm(p, hashA, "", at)
			assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
		}
	})
}

func TestApplyFail(t *testing.T) {
	t.Run("open payments fail with reason", func(t *testing.T) {
		for _, status := range []types.PaymentStatus{types.PaymentStatusCreated, types.PaymentStatusPending} {
			p := paymentWith(status)
			changed, err := applyFail(p, "transaction reverted on chain")
			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, types.PaymentStatusFailed, p.Status)
			assert.Equal(t, "transaction reverted on chain", p.FailureReason())
		}
	})

	t.Run("already failed is idempotent", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusFailed)
		changed, err := applyFail(p, "another reason")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, p.FailureReason())
	})

	t.Run("confirmed, expired and refunded reject failure", func(t *testing.T) {
		for _, status := range []types.PaymentStatus{
			types.PaymentStatusConfirmed,
			types.PaymentStatusExpired,
			types.PaymentStatusRefunded,
		} {
			p := paymentWith(status)
			_, err := applyFail(p, "nope")
			assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
		}
	})
}

func TestApplyExpire(t *testing.T) {
	t.Run("open payments expire", func(t *testing.T) {
		for _, status := range []types.PaymentStatus{types.PaymentStatusCreated, types.PaymentStatusPending} {
			p := paymentWith(status)
			assert.True(t, applyExpire(p))
			assert.Equal(t, types.PaymentStatusExpired, p.Status)
		}
	})

	t.Run("terminal payments are untouched", func(t *testing.T) {
		for _, status := range []types.PaymentStatus{
			types.PaymentStatusConfirmed,
			types.PaymentStatusFailed,
			types.PaymentStatusExpired,
			types.PaymentStatusRefunded,
		} {
			p := paymentWith(status)
			assert.False(t, applyExpire(p), "status %s", status)
			assert.Equal(t, status, p.Status)
		}
	})
}

func TestApplyRefunded(t *testing.T) {
	t.Run("confirmed moves to refunded", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusConfirmed)
		changed, err := applyRefunded(p)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, types.PaymentStatusRefunded, p.Status)
	})

	t.Run("already refunded is idempotent", func(t *testing.T) {
		p := paymentWith(types.PaymentStatusRefunded)
		changed, err := applyRefunded(p)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("anything else is rejected", func(t *testing.T) {
		for _, status := range []types.PaymentStatus{
			types.PaymentStatusCreated,
			types.PaymentStatusPending,
			types.PaymentStatusFailed,
			types.PaymentStatusExpired,
		} {
			p := paymentWith(status)
			_, err := applyRefunded(p)
			assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
		}
	})
}
