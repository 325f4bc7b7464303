package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	mw "github.com/staxpay/gateway/internal/app/api/middleware"
	"github.com/staxpay/gateway/internal/app/service/payment"
	"github.com/staxpay/gateway/internal/models"
	"github.com/staxpay/gateway/pkg/types"
)

type stubPaymentMgr struct {
	payment    *models.Payment
	getErr     error
	lastSubmit *payment.SubmitTransactionRequest
	confirmed  int
}

func (s *stubPaymentMgr) CreatePayment(_ context.Context, req *payment.CreatePaymentRequest) (*models.Payment, error) {
	return s.payment, nil
}

func (s *stubPaymentMgr) GetPayment(_ context.Context, _, _ string) (*models.Payment, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.payment, nil
}

func (s *stubPaymentMgr) ListPayments(_ context.Context, _ *payment.ListPaymentsRequest) (*payment.ListPaymentsResponse, error) {
	return &payment.ListPaymentsResponse{Items: []*models.Payment{s.payment}, Total: 1}, nil
}

func (s *stubPaymentMgr) SubmitTransaction(_ context.Context, req *payment.SubmitTransactionRequest) (*models.Payment, error) {
	s.lastSubmit = req
	return s.payment, nil
}

func (s *stubPaymentMgr) ConfirmPayment(_ context.Context, _ *payment.ConfirmPaymentRequest) (*models.Payment, error) {
	s.confirmed++
	return s.payment, nil
}

func (s *stubPaymentMgr) FailPayment(_ context.Context, _ *payment.FailPaymentRequest) (*models.Payment, error) {
	panic("not used")
}

func (s *stubPaymentMgr) ExpirePayment(_ context.Context, _ string) (*models.Payment, error) {
	panic("not used")
}

func (s *stubPaymentMgr) ListAwaitingConfirmation(_ context.Context) ([]*models.Payment, error) {
	panic("not used")
}

func (s *stubPaymentMgr) ListExpiryCandidates(_ context.Context, _ time.Time) ([]*models.Payment, error) {
	panic("not used")
}

func testPayment() *models.Payment {
	return &models.Payment{
		ID:                 "pay-1",
		MerchantID:         "m-1",
		Amount:             "25.00",
		Currency:           "USDC",
		SettlementCurrency: "USDC",
		Status:             types.PaymentStatusCreated,
		MerchantWallet:     "0xabc",
	}
}

func paymentTestRouter(mgr payment.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1/payments")
	g.Use(mw.MerchantMiddleware())
	RegisterPaymentRoutes(g, mgr)
	return r
}

func TestApiCreatePayment_ReturnsPayment(t *testing.T) {
	r := paymentTestRouter(&stubPaymentMgr{payment: testPayment()})

	body, _ := json.Marshal(map[string]any{"amount": "25.00", "currency": "USDC", "merchant_wallet": "0xabc"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Merchant-ID", "m-1")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":0`)
	require.Contains(t, w.Body.String(), "pay-1")
}

func TestApiCreatePayment_RequiresMerchantHeader(t *testing.T) {
	r := paymentTestRouter(&stubPaymentMgr{payment: testPayment()})

	body, _ := json.Marshal(map[string]any{"amount": "25.00", "currency": "USDC", "merchant_wallet": "0xabc"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)
	require.Contains(t, w.Body.String(), "X-Merchant-ID")
}

func TestApiGetPayment_NotFoundMapsToBadRequest(t *testing.T) {
	r := paymentTestRouter(&stubPaymentMgr{getErr: payment.ErrPaymentNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/missing", nil)
	req.Header.Set("X-Merchant-ID", "m-1")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)
	require.Contains(t, w.Body.String(), "payment not found")
}

func TestApiSubmitTransaction_ScopesToPathAndMerchant(t *testing.T) {
	stub := &stubPaymentMgr{payment: testPayment()}
	r := paymentTestRouter(stub)

	body, _ := json.Marshal(map[string]any{"tx_hash": "0xabcd", "payer_wallet": "0xpayer"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/pay-1/submit_transaction", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Merchant-ID", "m-1")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.lastSubmit)
	require.Equal(t, "pay-1", stub.lastSubmit.PaymentID)
	require.Equal(t, "m-1", stub.lastSubmit.MerchantID)
}

func TestApiConfirmPayment_ChecksOwnershipFirst(t *testing.T) {
	stub := &stubPaymentMgr{getErr: payment.ErrPaymentNotFound}
	r := paymentTestRouter(stub)

	body, _ := json.Marshal(map[string]any{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/pay-1/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Merchant-ID", "other-merchant")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)
	require.Zero(t, stub.confirmed)
}
