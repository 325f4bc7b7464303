package watcher

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/staxpay/gateway/internal/app/service/payment"
	"github.com/staxpay/gateway/internal/platform/chain"
	models "github.com/staxpay/gateway/internal/models"
	"github.com/staxpay/gateway/pkg/config"
	"github.com/staxpay/gateway/pkg/metrics"
	"github.com/staxpay/gateway/pkg/retry"
	types "github.com/staxpay/gateway/pkg/types"
)

// PaymentSource is the slice of the payment service the watcher drives.
type PaymentSource interface {
	ListAwaitingConfirmation(ctx context.Context) ([]*models.Payment, error)
	ListExpiryCandidates(ctx context.Context, now time.Time) ([]*models.Payment, error)
	ConfirmPayment(ctx context.Context, req *payment.ConfirmPaymentRequest) (*models.Payment, error)
	FailPayment(ctx context.Context, req *payment.FailPaymentRequest) (*models.Payment, error)
	ExpirePayment(ctx context.Context, paymentID string) (*models.Payment, error)
}

// Watcher polls the chain for pending payments and drives their transitions.
// It is the only component that decides an outcome itself: "confirmation
// timeout" once a payment exhausts its attempts ceiling.
type Watcher struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	payments PaymentSource
	chain    chain.Client
	table    *checkTable
	now      func() time.Time

	quit chan struct{}
	done chan struct{}
}

func New(cfg *config.Config, log *zap.SugaredLogger, payments PaymentSource, chainClient chain.Client) *Watcher {
	return &Watcher{
		cfg:      cfg,
		log:      log,
		payments: payments,
		chain:    chainClient,
		table:    newCheckTable(),
		now:      time.Now,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (w *Watcher) Start() {
	go w.run()
}

// Stop blocks until the in-flight cycle finishes.
func (w *Watcher) Stop() {
	close(w.quit)
	<-w.done
}

func (w *Watcher) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.cfg.Watcher.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.quit:
			return
		case <-ticker.C:
			w.cycle(context.Background())
		}
	}
}

// cycle runs one confirmation sweep followed by one expiry sweep. Expiry
// runs second so a payment confirmed in this cycle can no longer expire.
func (w *Watcher) cycle(ctx context.Context) {
	w.confirmationSweep(ctx)
	w.expirySweep(ctx)
}

func (w *Watcher) confirmationSweep(ctx context.Context) {
	pending, err := w.payments.ListAwaitingConfirmation(ctx)
	if err != nil {
		w.log.Errorw("watcher: failed to list pending payments", "err", err)
		metrics.WatcherPollError()
		return
	}

	live := make(map[string]struct{}, len(pending))
	for _, p := range pending {
		live[p.ID] = struct{}{}
	}
	w.table.prune(live)

	g := &errgroup.Group{}
	workers := w.cfg.Watcher.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)
	for _, p := range pending {
		g.Go(func() error {
			w.checkPayment(ctx, p)
			return nil
		})
	}
	_ = g.Wait()
}

func (w *Watcher) checkPayment(ctx context.Context, p *models.Payment) {
	if p.TxHash == nil {
		return
	}
	st := w.table.get(p.ID)
	now := w.now()
	if !st.LastCheck.IsZero() && now.Sub(st.LastCheck) < st.Backoff {
		return
	}
	st.LastCheck = now

	var receipt *chain.Receipt
	err := retry.Do(ctx, 3, time.Second, func() error {
		var rerr error
		receipt, rerr = w.chain.TransactionReceipt(ctx, *p.TxHash)
		return rerr
	})
	if err != nil {
		w.observeInfraError(p, st, err)
		return
	}
	st.InfraErrors = 0

	switch {
	case receipt.Confirmed:
		w.confirm(ctx, p, receipt)
	case receipt.Failed:
		w.fail(ctx, p, "transaction reverted on chain", "failed")
	default:
		w.observeUnmined(ctx, p, st)
	}
}

func (w *Watcher) confirm(ctx context.Context, p *models.Payment, receipt *chain.Receipt) {
	req := &payment.ConfirmPaymentRequest{PaymentID: p.ID}
	if ts, err := w.chain.BlockTimestamp(ctx, receipt.BlockNumber); err != nil {
		w.log.Warnw("watcher: block timestamp unavailable, using wall clock",
			"payment_id", p.ID, "block", receipt.BlockNumber, "err", err)
	} else {
		req.ConfirmedAt = &ts
	}

	if _, err := w.payments.ConfirmPayment(ctx, req); err != nil {
		if errors.Is(err, payment.ErrInvalidTransition) {
			w.table.drop(p.ID)
			return
		}
		w.log.Errorw("watcher: failed to confirm payment", "payment_id", p.ID, "err", err)
		metrics.WatcherPollError()
		return
	}
	w.table.drop(p.ID)
	metrics.WatcherOutcome("confirmed")
	w.log.Infow("watcher: payment confirmed", "payment_id", p.ID, "tx_hash", lo.FromPtr(p.TxHash))
}

func (w *Watcher) fail(ctx context.Context, p *models.Payment, reason, outcome string) {
	if _, err := w.payments.FailPayment(ctx, &payment.FailPaymentRequest{PaymentID: p.ID, Reason: reason}); err != nil {
		if errors.Is(err, payment.ErrInvalidTransition) {
			w.table.drop(p.ID)
			return
		}
		w.log.Errorw("watcher: failed to mark payment failed", "payment_id", p.ID, "err", err)
		metrics.WatcherPollError()
		return
	}
	w.table.drop(p.ID)
	metrics.WatcherOutcome(outcome)
	w.log.Infow("watcher: payment failed", "payment_id", p.ID, "reason", reason)
}

func (w *Watcher) observeUnmined(ctx context.Context, p *models.Payment, st *checkState) {
	st.Attempts++
	st.Backoff = nextBackoff(w.cfg.Watcher, st.Attempts)

	if st.Attempts == 1 {
		// One diagnostic on the first miss: does the node know the tx at all?
		if found, inMempool, err := w.chain.TransactionByHash(ctx, *p.TxHash); err == nil {
			w.log.Debugw("watcher: transaction not yet mined",
				"payment_id", p.ID, "tx_hash", *p.TxHash, "known_to_node", found, "in_mempool", inMempool)
		}
	}

	if st.Attempts >= w.cfg.Watcher.MaxAttempts {
		w.fail(ctx, p, "confirmation timeout", "timeout")
	}
}

// observeInfraError counts a chain/store failure like an unmined poll, but
// crossing the ceiling on one abandons the checks instead of failing the
// payment; the payment stays pending for the next watch or an operator.
func (w *Watcher) observeInfraError(p *models.Payment, st *checkState, err error) {
	st.Attempts++
	st.InfraErrors++
	st.Backoff = nextBackoff(w.cfg.Watcher, st.Attempts)
	metrics.WatcherPollError()
	w.log.Warnw("watcher: receipt poll failed",
		"payment_id", p.ID, "attempts", st.Attempts, "consecutive_errors", st.InfraErrors, "err", err)

	if st.Attempts >= w.cfg.Watcher.MaxAttempts {
		w.table.drop(p.ID)
		metrics.WatcherAbandoned()
		w.log.Errorw("watcher: abandoning payment checks after repeated rpc errors",
			"payment_id", p.ID, "tx_hash", lo.FromPtr(p.TxHash), "consecutive_errors", st.InfraErrors)
	}
}

func (w *Watcher) expirySweep(ctx context.Context) {
	now := w.now()
	due, err := w.payments.ListExpiryCandidates(ctx, now)
	if err != nil {
		w.log.Errorw("watcher: failed to list expiry candidates", "err", err)
		metrics.WatcherPollError()
		return
	}
	for _, p := range due {
		res, err := w.payments.ExpirePayment(ctx, p.ID)
		if err != nil {
			w.log.Errorw("watcher: failed to expire payment", "payment_id", p.ID, "err", err)
			continue
		}
		if res.Status != types.PaymentStatusExpired {
			// Another transition won the race between listing and updating,
			// typically confirmation. Keep it.
			continue
		}
		w.table.drop(p.ID)
		metrics.WatcherOutcome("expired")
		w.log.Infow("watcher: payment expired", "payment_id", p.ID)
	}
}

// nextBackoff computes min(initial * 2^attempts, max): 10s, 20s, 40s, 60s…
// for the 5s/60s defaults.
func nextBackoff(cfg config.WatcherConfig, attempts int) time.Duration {
	b := cfg.InitialBackoff
	for i := 0; i < attempts; i++ {
		b *= 2
		if b >= cfg.MaxBackoff {
			return cfg.MaxBackoff
		}
	}
	return b
}
