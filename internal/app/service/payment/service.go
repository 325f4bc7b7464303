package payment

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/staxpay/gateway/internal/app/service/webhook"
	models "github.com/staxpay/gateway/internal/models"
	"github.com/staxpay/gateway/pkg/config"
	"github.com/staxpay/gateway/pkg/logctx"
	"github.com/staxpay/gateway/pkg/tool"
	types "github.com/staxpay/gateway/pkg/types"
)

var txHashRe = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// ValidTxHash reports whether h looks like a 32-byte EVM transaction hash.
func ValidTxHash(h string) bool {
	return txHashRe.MatchString(h)
}

// openStatuses guard every transition UPDATE away from created/pending.
var openStatuses = []types.PaymentStatus{types.PaymentStatusCreated, types.PaymentStatusPending}

type Service struct {
	cfg        *config.Config
	log        *zap.SugaredLogger
	db         *gorm.DB
	dispatcher webhook.Dispatcher
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, db *gorm.DB, dispatcher webhook.Dispatcher) Manager {
	return &Service{cfg: cfg, log: log, db: db, dispatcher: dispatcher}
}

func (s *Service) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*models.Payment, error) {
	log := logctx.FromCtx(ctx, s.log)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a decimal", ErrInvalidAmount, req.Amount)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidAmount, req.Amount)
	}

	currency := strings.ToUpper(req.Currency)
	if !s.cfg.CurrencySupported(currency) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, req.Currency)
	}
	settlement := strings.ToUpper(req.SettlementCurrency)
	if settlement == "" {
		settlement = currency
	} else if !s.cfg.CurrencySupported(settlement) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, req.SettlementCurrency)
	}

	if req.MerchantWallet == "" {
		return nil, fmt.Errorf("merchant wallet is required")
	}

	expiry := s.cfg.Payments.DefaultExpiry
	if req.ExpiresInMinutes != nil {
		if *req.ExpiresInMinutes <= 0 {
			return nil, fmt.Errorf("expires_in_minutes must be positive")
		}
		expiry = time.Duration(*req.ExpiresInMinutes) * time.Minute
	}

	meta := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		meta[k] = v
	}

	p := &models.Payment{
		ID:                 tool.GenerateUUIDV7(),
		MerchantID:         req.MerchantID,
		Amount:             req.Amount,
		Currency:           currency,
		SettlementCurrency: settlement,
		Status:             types.PaymentStatusCreated,
		MerchantWallet:     req.MerchantWallet,
		ExpiresAt:          time.Now().Add(expiry),
		Metadata:           meta,
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	log.Infow("payment created",
		"payment_id", p.ID, "merchant_id", p.MerchantID,
		"amount", p.Amount, "currency", p.Currency, "expires_at", p.ExpiresAt)
	s.dispatcher.Dispatch(ctx, p.MerchantID, types.EventPaymentCreated, p)
	return p, nil
}

func (s *Service) GetPayment(ctx context.Context, merchantID, paymentID string) (*models.Payment, error) {
	var p models.Payment
	q := s.db.WithContext(ctx).Where("id = ?", paymentID)
	if merchantID != "" {
		q = q.Where("merchant_id = ?", merchantID)
	}
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &p, nil
}

// filtersAnd is a helper to combine multiple CommonFilter into a single clause.Expression
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// ListPayments implements paginated listing with filters
func (s *Service) ListPayments(ctx context.Context, req *ListPaymentsRequest) (*ListPaymentsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Payment{})
	if req.MerchantID != "" {
		tx = tx.Where("merchant_id = ?", req.MerchantID)
	}
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}

	var rows []*models.Payment

	q := tx.Limit(req.Size)

	if req.From > 0 {
		q = q.Offset(req.From)
	}

	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &ListPaymentsResponse{Items: rows, Total: total}, nil
}

func (s *Service) SubmitTransaction(ctx context.Context, req *SubmitTransactionRequest) (*models.Payment, error) {
	log := logctx.FromCtx(ctx, s.log)

	if !ValidTxHash(req.TxHash) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTxHash, req.TxHash)
	}

	p, err := s.GetPayment(ctx, req.MerchantID, req.PaymentID)
	if err != nil {
		return nil, err
	}

	changed, err := applySubmit(p, req.TxHash, req.PayerWallet)
	if err != nil {
		return nil, err
	}
	if !changed {
		return p, nil
	}

	if len(req.Customer) > 0 {
		if p.Metadata == nil {
			p.Metadata = datatypes.JSONMap{}
		}
		p.Metadata["customer"] = req.Customer
	}

	res := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status IN ?", p.ID, openStatuses).
		Updates(map[string]any{
			"status":       p.Status,
			"tx_hash":      p.TxHash,
			"payer_wallet": p.PayerWallet,
			"metadata":     p.Metadata,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		cur, err := s.GetPayment(ctx, "", p.ID)
		if err != nil {
			return nil, err
		}
		if cur.Status == types.PaymentStatusPending && cur.TxHash != nil && *cur.TxHash == req.TxHash {
			return cur, nil
		}
		return nil, fmt.Errorf("%w: cannot submit transaction on %s payment", ErrInvalidTransition, cur.Status)
	}

	log.Infow("transaction submitted", "payment_id", p.ID, "tx_hash", req.TxHash)
	return p, nil
}

func (s *Service) ConfirmPayment(ctx context.Context, req *ConfirmPaymentRequest) (*models.Payment, error) {
	log := logctx.FromCtx(ctx, s.log)

	if req.TxHash != "" && !ValidTxHash(req.TxHash) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTxHash, req.TxHash)
	}

	p, err := s.GetPayment(ctx, "", req.PaymentID)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if req.ConfirmedAt != nil {
		at = *req.ConfirmedAt
	}
	changed, err := applyConfirm(p, req.TxHash, req.PayerWallet, at)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Already confirmed, no re-dispatch.
		return p, nil
	}

	res := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status IN ?", p.ID, openStatuses).
		Updates(map[string]any{
			"status":          p.Status,
			"tx_hash":         p.TxHash,
			"payer_wallet":    p.PayerWallet,
			"settlement_time": p.SettlementTime,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to confirm payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		cur, err := s.GetPayment(ctx, "", p.ID)
		if err != nil {
			return nil, err
		}
		if cur.Status == types.PaymentStatusConfirmed {
			return cur, nil
		}
		return nil, fmt.Errorf("%w: cannot confirm %s payment", ErrInvalidTransition, cur.Status)
	}

	log.Infow("payment confirmed",
		"payment_id", p.ID, "tx_hash", lo.FromPtr(p.TxHash),
		"settlement_time", lo.FromPtr(p.SettlementTime))
	s.dispatcher.Dispatch(ctx, p.MerchantID, types.EventPaymentSucceeded, p)
	return p, nil
}

func (s *Service) FailPayment(ctx context.Context, req *FailPaymentRequest) (*models.Payment, error) {
	log := logctx.FromCtx(ctx, s.log)

	p, err := s.GetPayment(ctx, "", req.PaymentID)
	if err != nil {
		return nil, err
	}
	changed, err := applyFail(p, req.Reason)
	if err != nil {
		return nil, err
	}
	if !changed {
		return p, nil
	}

	res := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status IN ?", p.ID, openStatuses).
		Updates(map[string]any{"status": p.Status, "metadata": p.Metadata})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to fail payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		cur, err := s.GetPayment(ctx, "", p.ID)
		if err != nil {
			return nil, err
		}
		if cur.Status == types.PaymentStatusFailed {
			return cur, nil
		}
		return nil, fmt.Errorf("%w: cannot fail %s payment", ErrInvalidTransition, cur.Status)
	}

	log.Infow("payment failed", "payment_id", p.ID, "reason", req.Reason)
	s.dispatcher.Dispatch(ctx, p.MerchantID, types.EventPaymentFailed, p)
	return p, nil
}

func (s *Service) ExpirePayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	p, err := s.GetPayment(ctx, "", paymentID)
	if err != nil {
		return nil, err
	}
	if !applyExpire(p) {
		return p, nil
	}

	res := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status IN ?", p.ID, openStatuses).
		Update("status", types.PaymentStatusExpired)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to expire payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Another transition won the race, typically confirmation. Keep it.
		return s.GetPayment(ctx, "", p.ID)
	}

	logctx.FromCtx(ctx, s.log).Infow("payment expired", "payment_id", p.ID)
	return p, nil
}

func (s *Service) ListAwaitingConfirmation(ctx context.Context) ([]*models.Payment, error) {
	var rows []*models.Payment
	if err := s.db.WithContext(ctx).
		Where("status = ? AND tx_hash IS NOT NULL", types.PaymentStatusPending).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments awaiting confirmation: %w", err)
	}
	return rows, nil
}

func (s *Service) ListExpiryCandidates(ctx context.Context, now time.Time) ([]*models.Payment, error) {
	var rows []*models.Payment
	if err := s.db.WithContext(ctx).
		Where("status IN ? AND expires_at < ?", openStatuses, now).
		Order("expires_at asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list expiry candidates: %w", err)
	}
	return rows, nil
}

// MarkRefunded moves a confirmed payment to refunded inside the caller's
// transaction. The refund service calls this after completing the refund row
// so both writes commit or roll back together.
func MarkRefunded(ctx context.Context, tx *gorm.DB, paymentID string) (*models.Payment, error) {
	var p models.Payment
	if err := tx.WithContext(ctx).Where("id = ?", paymentID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	changed, err := applyRefunded(&p)
	if err != nil {
		return nil, err
	}
	if !changed {
		return &p, nil
	}

	res := tx.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", p.ID, types.PaymentStatusConfirmed).
		Update("status", types.PaymentStatusRefunded)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to mark payment refunded: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: payment %s is no longer confirmed", ErrInvalidTransition, p.ID)
	}
	return &p, nil
}
