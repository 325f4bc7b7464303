package handlers

import (
    "time"

    "github.com/staxpay/gateway/internal/app/service/payment"
    "github.com/staxpay/gateway/internal/app/service/statistics"
    "github.com/staxpay/gateway/internal/app/service/webhook"
    "github.com/staxpay/gateway/pkg/response"
    types "github.com/staxpay/gateway/pkg/types"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
    Code    response.APIResponseCode `json:"code"`
    Message string                   `json:"message"`
    Data    interface{}              `json:"data"`
}

// SwaggerPayment is a simplified view of models.Payment for documentation purposes.
type SwaggerPayment struct {
    ID                 string              `json:"id"`
    MerchantID         string              `json:"merchant_id"`
    Amount             string              `json:"amount"`
    Currency           string              `json:"currency"`
    SettlementCurrency string              `json:"settlement_currency"`
    Status             types.PaymentStatus `json:"status"`
    MerchantWallet     string              `json:"merchant_wallet"`
    PayerWallet        *string             `json:"payer_wallet"`
    TxHash             *string             `json:"tx_hash"`
    SettlementTime     *int64              `json:"settlement_time"`
    ExpiresAt          time.Time           `json:"expires_at"`
    CreatedAt          time.Time           `json:"created_at"`
    UpdatedAt          time.Time           `json:"updated_at"`
}

// RespPayment wraps a single payment in the standard envelope.
type RespPayment struct {
    Code    response.APIResponseCode `json:"code"`
    Message string                   `json:"message"`
    Data    SwaggerPayment           `json:"data"`
}

// RespListPayments wraps ListPaymentsResponse in the standard envelope.
type RespListPayments struct {
    Code    response.APIResponseCode     `json:"code"`
    Message string                       `json:"message"`
    Data    payment.ListPaymentsResponse `json:"data"`
}

// SwaggerRefund is a simplified view of models.Refund for documentation purposes.
type SwaggerRefund struct {
    ID          string             `json:"id"`
    PaymentID   string             `json:"payment_id"`
    MerchantID  string             `json:"merchant_id"`
    Amount      string             `json:"amount"`
    Currency    string             `json:"currency"`
    Status      types.RefundStatus `json:"status"`
    TxHash      *string            `json:"tx_hash"`
    Reason      string             `json:"reason"`
    CompletedAt *time.Time         `json:"completed_at"`
    CreatedAt   time.Time          `json:"created_at"`
}

// RespRefund wraps a single refund in the standard envelope.
type RespRefund struct {
    Code    response.APIResponseCode `json:"code"`
    Message string                   `json:"message"`
    Data    SwaggerRefund            `json:"data"`
}

// SwaggerSubscription is a secret-free view of models.WebhookSubscription.
type SwaggerSubscription struct {
    ID         string    `json:"id"`
    MerchantID string    `json:"merchant_id"`
    URL        string    `json:"url"`
    Events     []string  `json:"events"`
    Active     bool      `json:"active"`
    CreatedAt  time.Time `json:"created_at"`
    UpdatedAt  time.Time `json:"updated_at"`
}

// RespCreateSubscription wraps CreateSubscriptionResponse in the standard envelope.
type RespCreateSubscription struct {
    Code    response.APIResponseCode           `json:"code"`
    Message string                             `json:"message"`
    Data    webhook.CreateSubscriptionResponse `json:"data"`
}

// RespSubscription wraps a single subscription in the standard envelope.
type RespSubscription struct {
    Code    response.APIResponseCode `json:"code"`
    Message string                   `json:"message"`
    Data    SwaggerSubscription      `json:"data"`
}

// RespListSubscriptions wraps a list of subscriptions in the standard envelope.
type RespListSubscriptions struct {
    Code    response.APIResponseCode `json:"code"`
    Message string                   `json:"message"`
    Data    []SwaggerSubscription    `json:"data"`
}

// RespListDeliveries wraps ListDeliveriesResponse in the standard envelope.
type RespListDeliveries struct {
    Code    response.APIResponseCode      `json:"code"`
    Message string                        `json:"message"`
    Data    webhook.ListDeliveriesResponse `json:"data"`
}

// RespPaymentStatistic wraps PaymentStatisticResponse in the standard envelope.
type RespPaymentStatistic struct {
    Code    response.APIResponseCode             `json:"code"`
    Message string                               `json:"message"`
    Data    statistics.PaymentStatisticResponse  `json:"data"`
}
