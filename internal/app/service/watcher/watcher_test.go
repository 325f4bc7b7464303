package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/staxpay/gateway/internal/app/service/payment"
	"github.com/staxpay/gateway/internal/platform/chain"
	models "github.com/staxpay/gateway/internal/models"
	"github.com/staxpay/gateway/pkg/config"
	types "github.com/staxpay/gateway/pkg/types"
)

const testHash = "0x" + "aa11223344556677889900aabbccddeeff00112233445566778899aabbccddee"

// fakePayments keeps payment rows in memory and mimics the status guards of
// the real service.
type fakePayments struct {
	mu          sync.Mutex
	payments    map[string]*models.Payment
	failReasons map[string]string
	confirmedAt map[string]*time.Time
}

func newFakePayments(ps ...*models.Payment) *fakePayments {
	f := &fakePayments{
		payments:    map[string]*models.Payment{},
		failReasons: map[string]string{},
		confirmedAt: map[string]*time.Time{},
	}
	for _, p := range ps {
		f.payments[p.ID] = p
	}
	return f
}

func (f *fakePayments) ListAwaitingConfirmation(context.Context) ([]*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Payment
	for _, p := range f.payments {
		if p.Status == types.PaymentStatusPending && p.TxHash != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) ListExpiryCandidates(_ context.Context, now time.Time) ([]*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Payment
	for _, p := range f.payments {
		if p.Status.Open() && p.ExpiresAt.Before(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) ConfirmPayment(_ context.Context, req *payment.ConfirmPaymentRequest) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.payments[req.PaymentID]
	if p == nil {
		return nil, payment.ErrPaymentNotFound
	}
	if p.Status == types.PaymentStatusConfirmed {
		return p, nil
	}
	if !p.Status.Open() {
		return nil, payment.ErrInvalidTransition
	}
	p.Status = types.PaymentStatusConfirmed
	f.confirmedAt[p.ID] = req.ConfirmedAt
	return p, nil
}

func (f *fakePayments) FailPayment(_ context.Context, req *payment.FailPaymentRequest) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.payments[req.PaymentID]
	if p == nil {
		return nil, payment.ErrPaymentNotFound
	}
	if p.Status == types.PaymentStatusFailed {
		return p, nil
	}
	if !p.Status.Open() {
		return nil, payment.ErrInvalidTransition
	}
	p.Status = types.PaymentStatusFailed
	f.failReasons[p.ID] = req.Reason
	return p, nil
}

func (f *fakePayments) ExpirePayment(_ context.Context, paymentID string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.payments[paymentID]
	if p == nil {
		return nil, payment.ErrPaymentNotFound
	}
	if !p.Status.Open() {
		return p, nil
	}
	p.Status = types.PaymentStatusExpired
	return p, nil
}

func (f *fakePayments) status(id string) types.PaymentStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payments[id].Status
}

func (f *fakePayments) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.payments, id)
}

type fakeChain struct {
	mu          sync.Mutex
	receipts    map[string]*chain.Receipt
	receiptErrs map[string]error
	blockTime   time.Time
	blockErr    error
	calls       map[string]int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		receipts:    map[string]*chain.Receipt{},
		receiptErrs: map[string]error{},
		calls:       map[string]int{},
	}
}

func (c *fakeChain) TransactionReceipt(_ context.Context, hash string) (*chain.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[hash]++
	if err := c.receiptErrs[hash]; err != nil {
		return nil, err
	}
	if r, ok := c.receipts[hash]; ok {
		return r, nil
	}
	return &chain.Receipt{}, nil
}

func (c *fakeChain) TransactionByHash(context.Context, string) (bool, bool, error) {
	return false, false, nil
}

func (c *fakeChain) BlockTimestamp(context.Context, uint64) (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blockTime, c.blockErr
}

func (c *fakeChain) ExplorerLink(hash string) string {
	return "https://scan.test/tx/" + hash
}

func (c *fakeChain) receiptCalls(hash string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[hash]
}

func newTestWatcher(payments PaymentSource, ch chain.Client) *Watcher {
	cfg := &config.Config{Watcher: config.WatcherConfig{
		Interval:       10 * time.Second,
		InitialBackoff: 5 * time.Second,
		MaxBackoff:     60 * time.Second,
		MaxAttempts:    20,
		Workers:        4,
	}}
	return New(cfg, zap.NewNop().Sugar(), payments, ch)
}

func pendingPayment(id string) *models.Payment {
	return &models.Payment{
		ID:         id,
		MerchantID: "m1",
		Status:     types.PaymentStatusPending,
		TxHash:     lo.ToPtr(testHash),
		CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ExpiresAt:  time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
	}
}

func TestConfirmationSweep_ConfirmsMinedPayment(t *testing.T) {
	p := pendingPayment("pay-1")
	payments := newFakePayments(p)
	ch := newFakeChain()
	ch.receipts[testHash] = &chain.Receipt{Confirmed: true, BlockNumber: 7}
	ch.blockTime = time.Date(2025, 6, 1, 12, 2, 0, 0, time.UTC)

	w := newTestWatcher(payments, ch)
	w.confirmationSweep(context.Background())

	assert.Equal(t, types.PaymentStatusConfirmed, payments.status("pay-1"))
	require.NotNil(t, payments.confirmedAt["pay-1"])
	assert.True(t, ch.blockTime.Equal(*payments.confirmedAt["pay-1"]))
	assert.Equal(t, 0, w.table.size())
}

func TestConfirmationSweep_FallsBackToWallClock(t *testing.T) {
	p := pendingPayment("pay-1")
	payments := newFakePayments(p)
	ch := newFakeChain()
	ch.receipts[testHash] = &chain.Receipt{Confirmed: true, BlockNumber: 7}
	ch.blockErr = errors.New("header fetch failed")

	w := newTestWatcher(payments, ch)
	w.confirmationSweep(context.Background())

	assert.Equal(t, types.PaymentStatusConfirmed, payments.status("pay-1"))
	assert.Nil(t, payments.confirmedAt["pay-1"])
}

func TestConfirmationSweep_FailsRevertedTransaction(t *testing.T) {
	p := pendingPayment("pay-1")
	payments := newFakePayments(p)
	ch := newFakeChain()
	ch.receipts[testHash] = &chain.Receipt{Failed: true, BlockNumber: 7}

	w := newTestWatcher(payments, ch)
	w.confirmationSweep(context.Background())

	assert.Equal(t, types.PaymentStatusFailed, payments.status("pay-1"))
	assert.Equal(t, "transaction reverted on chain", payments.failReasons["pay-1"])
	assert.Equal(t, 0, w.table.size())
}

func TestConfirmationSweep_BacksOffBetweenPolls(t *testing.T) {
	p := pendingPayment("pay-1")
	payments := newFakePayments(p)
	ch := newFakeChain() // no receipt: unmined

	w := newTestWatcher(payments, ch)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	w.confirmationSweep(context.Background())
	st := w.table.get("pay-1")
	assert.Equal(t, 1, ch.receiptCalls(testHash))
	assert.Equal(t, 1, st.Attempts)
	assert.Equal(t, 10*time.Second, st.Backoff)

	// Within backoff: the payment is skipped.
	now = now.Add(9 * time.Second)
	w.confirmationSweep(context.Background())
	assert.Equal(t, 1, ch.receiptCalls(testHash))

	now = now.Add(time.Second)
	w.confirmationSweep(context.Background())
	assert.Equal(t, 2, ch.receiptCalls(testHash))
	assert.Equal(t, 2, st.Attempts)
	assert.Equal(t, 20*time.Second, st.Backoff)
}

func TestNextBackoff(t *testing.T) {
	cfg := config.WatcherConfig{InitialBackoff: 5 * time.Second, MaxBackoff: 60 * time.Second}

	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{attempts: 1, want: 10 * time.Second},
		{attempts: 2, want: 20 * time.Second},
		{attempts: 3, want: 40 * time.Second},
		{attempts: 4, want: 60 * time.Second},
		{attempts: 5, want: 60 * time.Second},
		{attempts: 19, want: 60 * time.Second},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, nextBackoff(cfg, tc.attempts), "attempts %d", tc.attempts)
	}

	prev := time.Duration(0)
	for n := 1; n < 25; n++ {
		b := nextBackoff(cfg, n)
		assert.GreaterOrEqual(t, b, prev, "backoff must never shrink")
		prev = b
	}
}

func TestConfirmationSweep_FailsAtAttemptsCeiling(t *testing.T) {
	p := pendingPayment("pay-1")
	payments := newFakePayments(p)
	ch := newFakeChain() // never mined

	w := newTestWatcher(payments, ch)
	w.cfg.Watcher.MaxAttempts = 3
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		w.confirmationSweep(context.Background())
		now = now.Add(2 * time.Minute)
	}
	assert.Equal(t, types.PaymentStatusPending, payments.status("pay-1"))

	w.confirmationSweep(context.Background())
	assert.Equal(t, types.PaymentStatusFailed, payments.status("pay-1"))
	assert.Equal(t, "confirmation timeout", payments.failReasons["pay-1"])
	assert.Equal(t, 0, w.table.size())
}

func TestConfirmationSweep_AbandonsOnPersistentInfraErrors(t *testing.T) {
	p := pendingPayment("pay-1")
	payments := newFakePayments(p)
	ch := newFakeChain()
	ch.receiptErrs[testHash] = errors.New("rpc: node unreachable")

	w := newTestWatcher(payments, ch)
	w.cfg.Watcher.MaxAttempts = 2
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	w.confirmationSweep(context.Background())
	assert.Equal(t, types.PaymentStatusPending, payments.status("pay-1"))
	assert.Equal(t, 1, w.table.size())

	now = now.Add(2 * time.Minute)
	w.confirmationSweep(context.Background())

	// The checks are dropped but the payment is never failed.
	assert.Equal(t, 0, w.table.size())
	assert.Equal(t, types.PaymentStatusPending, payments.status("pay-1"))
	assert.Empty(t, payments.failReasons)
}

func TestCycle_ConfirmationWinsOverExpiry(t *testing.T) {
	p := pendingPayment("pay-1")
	p.ExpiresAt = time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC) // already overdue
	payments := newFakePayments(p)
	ch := newFakeChain()
	ch.receipts[testHash] = &chain.Receipt{Confirmed: true, BlockNumber: 7}
	ch.blockTime = time.Date(2025, 6, 1, 12, 2, 0, 0, time.UTC)

	w := newTestWatcher(payments, ch)
	w.now = func() time.Time { return time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC) }
	w.cycle(context.Background())

	assert.Equal(t, types.PaymentStatusConfirmed, payments.status("pay-1"))
}

func TestExpirySweep_ExpiresOverduePayments(t *testing.T) {
	overdue := &models.Payment{
		ID:         "pay-1",
		MerchantID: "m1",
		Status:     types.PaymentStatusCreated,
		CreatedAt:  time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
		ExpiresAt:  time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC),
	}
	fresh := pendingPayment("pay-2")
	payments := newFakePayments(overdue, fresh)

	w := newTestWatcher(payments, newFakeChain())
	w.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	w.expirySweep(context.Background())

	assert.Equal(t, types.PaymentStatusExpired, payments.status("pay-1"))
	assert.Equal(t, types.PaymentStatusPending, payments.status("pay-2"))
}

func TestConfirmationSweep_PrunesGonePayments(t *testing.T) {
	p1 := pendingPayment("pay-1")
	p2 := pendingPayment("pay-2")
	payments := newFakePayments(p1, p2)
	ch := newFakeChain() // unmined, so state sticks around

	w := newTestWatcher(payments, ch)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	w.confirmationSweep(context.Background())
	assert.Equal(t, 2, w.table.size())

	payments.remove("pay-2")
	now = now.Add(time.Minute)
	w.confirmationSweep(context.Background())
	assert.Equal(t, 1, w.table.size())
}
