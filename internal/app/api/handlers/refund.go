package handlers

import (
	"errors"
	"net/http"

	"github.com/staxpay/gateway/internal/app/service/payment"
	"github.com/staxpay/gateway/internal/app/service/refund"
	"github.com/staxpay/gateway/pkg/response"
	"github.com/gin-gonic/gin"
)

// refundErrCode mirrors paymentErrCode for the refund service surface.
func refundErrCode(err error) response.APIResponseCode {
	for _, bad := range []error{
		refund.ErrRefundNotFound,
		refund.ErrPaymentNotRefundable,
		refund.ErrAmountExceedsPayment,
		refund.ErrRefundCompleted,
		payment.ErrPaymentNotFound,
		payment.ErrInvalidAmount,
		payment.ErrInvalidTxHash,
		payment.ErrInvalidTransition,
	} {
		if errors.Is(err, bad) {
			return response.APIResponseCodeBadRequest
		}
	}
	return response.APIResponseCodeError
}

// @Summary      Create Refund
// @Description  Creates a pending refund intent for a confirmed payment.
// @Tags         Refund
// @Accept       json
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        request body refund.CreateRefundRequest true "Refund creation request"
// @Success      200  {object}  handlers.RespRefund
// @Router       /api/v1/refunds [post]
func ApiCreateRefund(mgr refund.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		var req refund.CreateRefundRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.MerchantID = merchantID

		r, err := mgr.CreateRefundIntent(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](refundErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(r))
	}
}

// @Summary      Get Refund
// @Description  Fetches a single refund owned by the calling merchant.
// @Tags         Refund
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        id path string true "Refund ID"
// @Success      200  {object}  handlers.RespRefund
// @Router       /api/v1/refunds/{id} [get]
func ApiGetRefund(mgr refund.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		r, err := mgr.GetRefund(c.Request.Context(), merchantID, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](refundErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(r))
	}
}

// @Summary      Complete Refund
// @Description  Records the merchant's refund transaction hash and marks the payment refunded.
// @Tags         Refund
// @Accept       json
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        id path string true "Refund ID"
// @Param        request body refund.CompleteRefundRequest true "Refund completion details"
// @Success      200  {object}  handlers.RespRefund
// @Router       /api/v1/refunds/{id}/complete [post]
func ApiCompleteRefund(mgr refund.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		var req refund.CompleteRefundRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.MerchantID = merchantID
		req.RefundID = c.Param("id")

		r, err := mgr.CompleteRefund(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](refundErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(r))
	}
}

func RegisterRefundRoutes(r gin.IRouter, mgr refund.Manager) {
	r.POST("", ApiCreateRefund(mgr))
	r.GET("/:id", ApiGetRefund(mgr))
	r.POST("/:id/complete", ApiCompleteRefund(mgr))
}
