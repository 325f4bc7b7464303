package refund

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/staxpay/gateway/internal/app/service/payment"
	"github.com/staxpay/gateway/internal/app/service/webhook"
	models "github.com/staxpay/gateway/internal/models"
	"github.com/staxpay/gateway/internal/platform/chain"
	"github.com/staxpay/gateway/pkg/config"
	"github.com/staxpay/gateway/pkg/logctx"
	"github.com/staxpay/gateway/pkg/tool"
	types "github.com/staxpay/gateway/pkg/types"
)

type Service struct {
	cfg        *config.Config
	log        *zap.SugaredLogger
	db         *gorm.DB
	dispatcher webhook.Dispatcher
	chain      chain.Client
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, db *gorm.DB, dispatcher webhook.Dispatcher, chainClient chain.Client) Manager {
	return &Service{cfg: cfg, log: log, db: db, dispatcher: dispatcher, chain: chainClient}
}

// validateRefundAmount parses the requested amount and checks it against the
// payment's. Equal is allowed (full refund), more is not. Partial amounts are
// fine, the chain does not care how the merchant splits the reversal.
func validateRefundAmount(amount, paymentAmount string) error {
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("%w: %q is not a decimal", payment.ErrInvalidAmount, amount)
	}
	if !a.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", payment.ErrInvalidAmount, amount)
	}
	pa, err := decimal.NewFromString(paymentAmount)
	if err != nil {
		return fmt.Errorf("failed to parse payment amount %q: %w", paymentAmount, err)
	}
	if a.GreaterThan(pa) {
		return fmt.Errorf("%w: %s > %s", ErrAmountExceedsPayment, amount, paymentAmount)
	}
	return nil
}

func (s *Service) CreateRefundIntent(ctx context.Context, req *CreateRefundRequest) (*models.Refund, error) {
	log := logctx.FromCtx(ctx, s.log)

	var p models.Payment
	if err := s.db.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", req.PaymentID, req.MerchantID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	if p.Status != types.PaymentStatusConfirmed {
		return nil, fmt.Errorf("%w: payment is %s", ErrPaymentNotRefundable, p.Status)
	}
	if err := validateRefundAmount(req.Amount, p.Amount); err != nil {
		return nil, err
	}

	var completed int64
	if err := s.db.WithContext(ctx).Model(&models.Refund{}).
		Where("payment_id = ? AND status = ?", p.ID, types.RefundStatusCompleted).
		Count(&completed).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing refunds: %w", err)
	}
	if completed > 0 {
		return nil, fmt.Errorf("%w: a completed refund already exists", ErrPaymentNotRefundable)
	}

	r := &models.Refund{
		ID:         tool.GenerateUUIDV7(),
		PaymentID:  p.ID,
		MerchantID: p.MerchantID,
		Amount:     req.Amount,
		Currency:   p.Currency,
		Status:     types.RefundStatusPending,
		Reason:     req.Reason,
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	log.Infow("refund intent created",
		"refund_id", r.ID, "payment_id", p.ID, "merchant_id", p.MerchantID, "amount", r.Amount)
	return r, nil
}

// refundEventData is the payment.refunded webhook payload.
type refundEventData struct {
	Payment      *models.Payment `json:"payment"`
	Refund       *models.Refund  `json:"refund"`
	ExplorerLink string          `json:"explorer_link"`
}

func (s *Service) CompleteRefund(ctx context.Context, req *CompleteRefundRequest) (*models.Refund, error) {
	log := logctx.FromCtx(ctx, s.log)

	if !payment.ValidTxHash(req.TxHash) {
		return nil, fmt.Errorf("%w: %q", payment.ErrInvalidTxHash, req.TxHash)
	}

	r, err := s.GetRefund(ctx, req.MerchantID, req.RefundID)
	if err != nil {
		return nil, err
	}
	if r.Status == types.RefundStatusCompleted {
		if r.TxHash != nil && *r.TxHash == req.TxHash {
			return r, nil
		}
		return nil, fmt.Errorf("%w: recorded hash %s", ErrRefundCompleted, lo.FromPtr(r.TxHash))
	}

	now := time.Now()
	var parent *models.Payment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Refund{}).
			Where("id = ? AND status = ?", r.ID, types.RefundStatusPending).
			Updates(map[string]any{
				"status":       types.RefundStatusCompleted,
				"tx_hash":      req.TxHash,
				"completed_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to complete refund: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrRefundCompleted
		}

		p, err := payment.MarkRefunded(ctx, tx, r.PaymentID)
		if err != nil {
			return err
		}
		parent = p
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRefundCompleted) {
			// Lost a race to a concurrent completion; same hash is still fine.
			cur, gerr := s.GetRefund(ctx, req.MerchantID, req.RefundID)
			if gerr == nil && cur.Status == types.RefundStatusCompleted &&
				cur.TxHash != nil && *cur.TxHash == req.TxHash {
				return cur, nil
			}
			return nil, fmt.Errorf("%w: recorded hash %s", ErrRefundCompleted, lo.FromPtr(r.TxHash))
		}
		return nil, err
	}

	r.Status = types.RefundStatusCompleted
	r.TxHash = lo.ToPtr(req.TxHash)
	r.CompletedAt = &now

	log.Infow("refund completed",
		"refund_id", r.ID, "payment_id", r.PaymentID, "tx_hash", req.TxHash)
	s.dispatcher.Dispatch(ctx, r.MerchantID, types.EventPaymentRefunded, refundEventData{
		Payment:      parent,
		Refund:       r,
		ExplorerLink: s.chain.ExplorerLink(req.TxHash),
	})
	return r, nil
}

func (s *Service) GetRefund(ctx context.Context, merchantID, refundID string) (*models.Refund, error) {
	var r models.Refund
	q := s.db.WithContext(ctx).Where("id = ?", refundID)
	if merchantID != "" {
		q = q.Where("merchant_id = ?", merchantID)
	}
	if err := q.First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefundNotFound
		}
		return nil, fmt.Errorf("failed to get refund: %w", err)
	}
	return &r, nil
}
