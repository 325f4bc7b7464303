package handlers

import (
	"net/http"

	"github.com/staxpay/gateway/internal/app/service/statistics"
	"github.com/staxpay/gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary      Get Payment Statistics
// @Description  Computes daily payment, volume, settlement, and webhook delivery statistics for the calling merchant.
// @Tags         Statistics
// @Accept       json
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        request body statistics.PaymentStatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespPaymentStatistic
// @Router       /api/v1/payments/statistics [post]
func ApiGetPaymentStatistics(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		var req statistics.PaymentStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.MerchantID = merchantID
		res, err := svc.GetPaymentStatistic(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// RegisterStatisticsRoutes mounts statistics endpoints on the payments group.
func RegisterStatisticsRoutes(r gin.IRouter, svc *statistics.Service) {
	r.POST("/statistics", ApiGetPaymentStatistics(svc))
}
