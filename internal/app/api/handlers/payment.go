package handlers

import (
	"errors"
	"net/http"

	"github.com/staxpay/gateway/internal/app/service/payment"
	"github.com/staxpay/gateway/pkg/response"
	"github.com/gin-gonic/gin"
)

// requireMerchant pulls the merchant identity attached by MerchantMiddleware.
// Writes the bad-request envelope and returns false when the header is absent.
func requireMerchant(c *gin.Context) (string, bool) {
	merchantID := c.GetString("merchant_id")
	if merchantID == "" {
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing X-Merchant-ID header"))
		return "", false
	}
	return merchantID, true
}

// paymentErrCode maps payment service errors onto envelope codes. Validation
// and transition violations are the caller's fault, everything else is ours.
func paymentErrCode(err error) response.APIResponseCode {
	for _, bad := range []error{
		payment.ErrPaymentNotFound,
		payment.ErrInvalidTransition,
		payment.ErrInvalidAmount,
		payment.ErrUnsupportedCurrency,
		payment.ErrInvalidTxHash,
	} {
		if errors.Is(err, bad) {
			return response.APIResponseCodeBadRequest
		}
	}
	return response.APIResponseCodeError
}

// @Summary      Create Payment
// @Description  Creates a payment intent in created status with an expiry deadline.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        request body payment.CreatePaymentRequest true "Payment creation request"
// @Success      200  {object}  handlers.RespPayment
// @Router       /api/v1/payments [post]
func ApiCreatePayment(mgr payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		var req payment.CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.MerchantID = merchantID

		p, err := mgr.CreatePayment(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](paymentErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      Get Payment
// @Description  Fetches a single payment owned by the calling merchant.
// @Tags         Payment
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        id path string true "Payment ID"
// @Success      200  {object}  handlers.RespPayment
// @Router       /api/v1/payments/{id} [get]
func ApiGetPayment(mgr payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		p, err := mgr.GetPayment(c.Request.Context(), merchantID, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](paymentErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      List Payments
// @Description  Retrieves a paginated and filterable list of the merchant's payments.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        request body payment.ListPaymentsRequest true "List payments request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespListPayments
// @Router       /api/v1/payments/list [post]
func ApiListPayments(mgr payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		var req payment.ListPaymentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.MerchantID = merchantID

		res, err := mgr.ListPayments(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](paymentErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Submit Transaction
// @Description  Records the payer's transaction hash and moves the payment to pending.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        id path string true "Payment ID"
// @Param        request body payment.SubmitTransactionRequest true "Submitted transaction details"
// @Success      200  {object}  handlers.RespPayment
// @Router       /api/v1/payments/{id}/submit_transaction [post]
func ApiSubmitTransaction(mgr payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		var req payment.SubmitTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.MerchantID = merchantID
		req.PaymentID = c.Param("id")

		p, err := mgr.SubmitTransaction(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](paymentErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      Confirm Payment
// @Description  Marks a payment confirmed. Normally driven by the chain watcher; exposed for operator tooling.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        id path string true "Payment ID"
// @Param        request body payment.ConfirmPaymentRequest true "Confirmation details"
// @Success      200  {object}  handlers.RespPayment
// @Router       /api/v1/payments/{id}/confirm [post]
func ApiConfirmPayment(mgr payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		var req payment.ConfirmPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.PaymentID = c.Param("id")

		// ConfirmPayment itself is merchant-agnostic (the watcher calls it
		// too), so ownership is checked up front.
		if _, err := mgr.GetPayment(c.Request.Context(), merchantID, req.PaymentID); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](paymentErrCode(err), err.Error()))
			return
		}

		p, err := mgr.ConfirmPayment(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](paymentErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      Fail Payment
// @Description  Marks a payment failed with a recorded reason.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        id path string true "Payment ID"
// @Param        request body payment.FailPaymentRequest true "Failure details"
// @Success      200  {object}  handlers.RespPayment
// @Router       /api/v1/payments/{id}/fail [post]
func ApiFailPayment(mgr payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		var req payment.FailPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.PaymentID = c.Param("id")

		if _, err := mgr.GetPayment(c.Request.Context(), merchantID, req.PaymentID); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](paymentErrCode(err), err.Error()))
			return
		}

		p, err := mgr.FailPayment(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](paymentErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

// @Summary      Expire Payment
// @Description  Expires an overdue payment. No-op when the payment is already terminal.
// @Tags         Payment
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        id path string true "Payment ID"
// @Success      200  {object}  handlers.RespPayment
// @Router       /api/v1/payments/{id}/expire [post]
func ApiExpirePayment(mgr payment.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		paymentID := c.Param("id")

		if _, err := mgr.GetPayment(c.Request.Context(), merchantID, paymentID); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](paymentErrCode(err), err.Error()))
			return
		}

		p, err := mgr.ExpirePayment(c.Request.Context(), paymentID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](paymentErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(p))
	}
}

func RegisterPaymentRoutes(r gin.IRouter, mgr payment.Manager) {
	r.POST("", ApiCreatePayment(mgr))
	r.POST("/list", ApiListPayments(mgr))
	r.GET("/:id", ApiGetPayment(mgr))
	r.POST("/:id/submit_transaction", ApiSubmitTransaction(mgr))
	r.POST("/:id/confirm", ApiConfirmPayment(mgr))
	r.POST("/:id/fail", ApiFailPayment(mgr))
	r.POST("/:id/expire", ApiExpirePayment(mgr))
}
